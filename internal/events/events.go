package events

import (
	"sync"
	"time"
)

// Kind classifies an outcome notification with type safety
type Kind string

const (
	KindWin          Kind = "win"
	KindLose         Kind = "lose"
	KindPush         Kind = "push"
	KindInfo         Kind = "info"
	KindInsufficient Kind = "insufficient_funds"
	KindRainJoined   Kind = "rain_joined"
	KindRainPayout   Kind = "rain_payout"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Event is a human-readable outcome notification emitted by the game
// engines. Amount carries the balance delta for win/payout kinds and is zero
// otherwise. Rendering is the consumer's concern.
type Event struct {
	Kind    Kind
	Message string
	Amount  int
	At      time.Time
}

// New creates an event stamped with the current time
func New(kind Kind, message string, amount int) Event {
	return Event{Kind: kind, Message: message, Amount: amount, At: time.Now()}
}

// Subscriber can subscribe to outcome events
type Subscriber interface {
	OnEvent(event Event)
}

// Bus manages event publishing and subscription
type Bus interface {
	Subscribe(subscriber Subscriber)
	Unsubscribe(subscriber Subscriber)
	Publish(event Event)
}

// simpleBus is a basic in-memory bus. The mutex matters because the rain
// scheduler publishes from timer goroutines.
type simpleBus struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates a new event bus
func NewBus() Bus {
	return &simpleBus{subscribers: make([]Subscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (b *simpleBus) Subscribe(subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (b *simpleBus) Unsubscribe(subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub == subscriber {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (b *simpleBus) Publish(event Event) {
	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
