package cases

import (
	"errors"
	"fmt"
	"math"

	"gemrush/internal/randutil"
)

// probability table tolerance for floating-point drift
const probabilityEpsilon = 1e-9

// ErrInvalidTiers is returned when a tier table's probabilities do not sum
// to 1 or a tier is malformed.
var ErrInvalidTiers = errors.New("cases: invalid tier table")

// Tier is a reward category: a value multiplier applied to the case price
// and the probability of drawing it.
type Tier struct {
	Name        string
	ValueFactor float64
	Probability float64
}

// Reward is one sampled case opening
type Reward struct {
	Tier  Tier
	Value int
}

// DefaultTiers mirrors the original client's reward table
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Common", ValueFactor: 0.5, Probability: 0.5},
		{Name: "Uncommon", ValueFactor: 1, Probability: 0.25},
		{Name: "Rare", ValueFactor: 2, Probability: 0.15},
		{Name: "Epic", ValueFactor: 5, Probability: 0.07},
		{Name: "Legendary", ValueFactor: 10, Probability: 0.03},
	}
}

// CaseMultiplier derives the value multiplier for a case type index
func CaseMultiplier(caseType int) float64 {
	if caseType < 0 {
		caseType = 0
	}
	return float64(caseType+1) * 0.2
}

// Sampler draws rewards from a static ordered tier table by walking
// cumulative probabilities.
type Sampler struct {
	tiers []Tier
}

// NewSampler validates the tier table and returns a sampler over it
func NewSampler(tiers []Tier) (*Sampler, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}
	sum := 0.0
	for _, tier := range tiers {
		if tier.Name == "" {
			return nil, fmt.Errorf("%w: tier with empty name", ErrInvalidTiers)
		}
		if tier.Probability <= 0 || tier.Probability > 1 {
			return nil, fmt.Errorf("%w: tier %s probability %v", ErrInvalidTiers, tier.Name, tier.Probability)
		}
		if tier.ValueFactor <= 0 {
			return nil, fmt.Errorf("%w: tier %s value factor %v", ErrInvalidTiers, tier.Name, tier.ValueFactor)
		}
		sum += tier.Probability
	}
	if math.Abs(sum-1) > probabilityEpsilon {
		return nil, fmt.Errorf("%w: probabilities sum to %v, want 1", ErrInvalidTiers, sum)
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return &Sampler{tiers: out}, nil
}

// Tiers returns a copy of the tier table in draw order
func (s *Sampler) Tiers() []Tier {
	out := make([]Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// Sample draws one reward. The tier is the first whose cumulative probability
// bound exceeds the uniform draw; a draw at the very top of the range lands
// on the final tier so exactly one tier is always selected.
func (s *Sampler) Sample(rng randutil.Source, caseMultiplier float64, basePrice int) Reward {
	u := rng.Uniform()
	tier := s.tiers[len(s.tiers)-1]
	cumulative := 0.0
	for _, t := range s.tiers {
		cumulative += t.Probability
		if u < cumulative {
			tier = t
			break
		}
	}
	value := int(math.Floor(tier.ValueFactor * caseMultiplier * float64(basePrice)))
	return Reward{Tier: tier, Value: value}
}
