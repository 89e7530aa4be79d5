package rain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"gemrush/internal/account"
	"gemrush/internal/events"
)

// Status is the rain lifecycle state
type Status int

const (
	// Pending rains accept joins while the countdown runs
	Pending Status = iota
	// Active rains are mid-distribution (the animation window)
	Active
	// Completed rains have credited their participants
	Completed
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Config controls rain timing and size. Defaults mirror the original client.
type Config struct {
	TotalAmount     int
	Countdown       time.Duration
	DisplayDuration time.Duration
	RenewalInterval time.Duration
}

// DefaultConfig returns the original constants: a 5000-gem pool on a
// 30-minute cycle with a 3-second distribution animation.
func DefaultConfig() Config {
	return Config{
		TotalAmount:     5000,
		Countdown:       30 * time.Minute,
		DisplayDuration: 3 * time.Second,
		RenewalInterval: 30 * time.Minute,
	}
}

// Rain is one pooled-reward cycle. The participant set only grows while
// Pending; the per-participant share is computed once at distribution.
type Rain struct {
	ID               string
	TotalAmount      int
	Status           Status
	RemainingSeconds int
	Participants     []string
	DistributedAt    time.Time
}

func (r *Rain) joined(id string) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Scheduler drives the rain lifecycle off an injected clock: countdown ticks
// once per second, distribution runs after a fixed display window, and a
// fresh rain begins immediately after each distribution or discard and on a
// fixed renewal interval, whichever comes first. The renewal ticker is
// process-global and runs until the context is cancelled.
type Scheduler struct {
	mu     sync.Mutex
	clock  quartz.Clock
	store  *account.Store
	bus    events.Bus
	logger *log.Logger
	cfg    Config

	current *Rain
	last    *Rain
}

// NewScheduler creates a scheduler; call Start to begin the first rain
func NewScheduler(cfg Config, clock quartz.Clock, store *account.Store, bus events.Bus, logger *log.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		store:  store,
		bus:    bus,
		logger: logger.WithPrefix("rain"),
		cfg:    cfg,
	}
}

// Start creates the first rain and launches the countdown and renewal
// tickers. Both stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.newRainLocked()
	s.mu.Unlock()

	s.clock.TickerFunc(ctx, time.Second, s.tick, "countdown")
	s.clock.TickerFunc(ctx, s.cfg.RenewalInterval, s.renew, "renewal")
}

// Current returns a copy of the rain currently accepting joins or
// distributing.
func (s *Scheduler) Current() Rain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.current)
}

// Last returns a copy of the most recently completed rain and whether one
// exists.
func (s *Scheduler) Last() (Rain, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Rain{}, false
	}
	return s.snapshotLocked(s.last), true
}

// Join registers a participant in the current rain. It reports whether the
// join took effect: joins are ignored outside Pending and for participants
// already in.
func (s *Scheduler) Join(participantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Status != Pending || s.current.joined(participantID) {
		return false
	}
	s.current.Participants = append(s.current.Participants, participantID)
	s.logger.Debug("Participant joined", "rain", s.current.ID, "participants", len(s.current.Participants))
	if participantID == s.store.Profile().ID {
		s.bus.Publish(events.New(events.KindRainJoined, "You've joined the rain! Wait for distribution.", 0))
	}
	return true
}

func (s *Scheduler) tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Status != Pending {
		return nil
	}
	if s.current.RemainingSeconds > 0 {
		s.current.RemainingSeconds--
	}
	if s.current.RemainingSeconds > 0 {
		return nil
	}

	if len(s.current.Participants) == 0 {
		// Nobody joined: discard with no distribution and start over.
		s.logger.Debug("Rain discarded", "rain", s.current.ID)
		s.newRainLocked()
		return nil
	}

	s.current.Status = Active
	rainID := s.current.ID
	s.clock.AfterFunc(s.cfg.DisplayDuration, func() {
		s.distribute(rainID)
	}, "distribution")
	return nil
}

// renew replaces the current rain on the fixed interval regardless of its
// countdown state, matching the original client's behaviour.
func (s *Scheduler) renew() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.Status == Active {
		// Mid-distribution; the post-distribution rain supersedes this
		// renewal.
		return nil
	}
	s.newRainLocked()
	return nil
}

func (s *Scheduler) distribute(rainID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.current
	if r == nil || r.ID != rainID || r.Status != Active {
		return
	}

	share := r.TotalAmount / len(r.Participants)
	r.Status = Completed
	r.DistributedAt = s.clock.Now()

	if r.joined(s.store.Profile().ID) {
		s.store.ApplyDelta(share)
		s.bus.Publish(events.New(events.KindRainPayout,
			fmt.Sprintf("Rain completed! You received %d gems from the rain.", share), share))
	}
	s.logger.Info("Rain distributed", "rain", r.ID, "participants", len(r.Participants), "share", share)

	s.last = r
	s.newRainLocked()
}

func (s *Scheduler) newRainLocked() {
	s.current = &Rain{
		ID:               uuid.NewString(),
		TotalAmount:      s.cfg.TotalAmount,
		Status:           Pending,
		RemainingSeconds: int(s.cfg.Countdown / time.Second),
	}
	s.logger.Debug("New rain", "rain", s.current.ID, "amount", s.current.TotalAmount)
}

func (s *Scheduler) snapshotLocked(r *Rain) Rain {
	out := *r
	out.Participants = append([]string(nil), r.Participants...)
	return out
}
