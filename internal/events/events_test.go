package events

import "testing"

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func TestPublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	a := &recorder{}
	b := &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(New(KindWin, "You won 250 gems!", 250))

	for _, r := range []*recorder{a, b} {
		if len(r.events) != 1 {
			t.Fatalf("subscriber got %d events, want 1", len(r.events))
		}
		if r.events[0].Kind != KindWin || r.events[0].Amount != 250 {
			t.Errorf("unexpected event: %+v", r.events[0])
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	r := &recorder{}
	bus.Subscribe(r)
	bus.Unsubscribe(r)

	bus.Publish(New(KindInfo, "hello", 0))

	if len(r.events) != 0 {
		t.Errorf("unsubscribed recorder got %d events", len(r.events))
	}
}
