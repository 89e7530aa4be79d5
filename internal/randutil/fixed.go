package randutil

// Fixed is a Source that replays a scripted sequence of draws, cycling when
// exhausted. Intended for tests that need exact outcomes.
type Fixed struct {
	values []float64
	next   int
}

// NewFixed returns a Fixed source over the given values. It panics if no
// values are provided.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		panic("randutil: NewFixed requires at least one value")
	}
	return &Fixed{values: values}
}

func (f *Fixed) Uniform() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
