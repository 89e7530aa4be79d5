package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	profileKey = "gemrush/profile"
	historyKey = "gemrush/history"

	// StartingBalance is granted to a freshly created profile
	StartingBalance = 5000

	historyLimit = 200
)

// ErrInsufficientFunds is returned when a bet or price exceeds the available
// balance.
var ErrInsufficientFunds = errors.New("account: insufficient funds")

// Profile is the single local user profile
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

// HistoryEntry records one settled round for display
type HistoryEntry struct {
	ID        string    `json:"id"`
	Game      string    `json:"game"`
	BetAmount int       `json:"bet_amount"`
	WinAmount int       `json:"win_amount"`
	IsWin     bool      `json:"is_win"`
	Timestamp time.Time `json:"timestamp"`
}

// Store owns the process-wide account state. The balance is mutated only
// through signed deltas so concurrently active engines cannot lose updates,
// and every mutation is persisted before it returns.
type Store struct {
	mu       sync.Mutex
	kv       KV
	logger   *log.Logger
	starting int
	profile  Profile
	history  []HistoryEntry
}

// Option configures a Store
type Option func(*Store)

// WithStartingBalance overrides the balance granted to fresh profiles
func WithStartingBalance(amount int) Option {
	return func(s *Store) {
		s.starting = amount
	}
}

// Open loads the profile from kv, creating a default one with the starting
// balance when none exists.
func Open(kv KV, logger *log.Logger, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, logger: logger, starting: StartingBalance}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(profileKey)
	if err != nil {
		return nil, fmt.Errorf("account: load profile: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &s.profile); err != nil {
			return nil, fmt.Errorf("account: decode profile: %w", err)
		}
	} else {
		s.profile = s.newProfile("player")
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		logger.Info("Created default profile", "username", s.profile.Username, "balance", s.profile.Balance)
	}

	if raw, ok, err = kv.Get(historyKey); err == nil && ok {
		// History is best-effort display state; a decode failure just
		// starts it fresh.
		_ = json.Unmarshal(raw, &s.history)
	}
	return s, nil
}

func (s *Store) newProfile(username string) Profile {
	return Profile{
		ID:       uuid.NewString(),
		Username: username,
		Balance:  s.starting,
	}
}

// Login replaces the current profile with a fresh one for username, granting
// the starting balance.
func (s *Store) Login(username string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = s.newProfile(username)
	s.history = nil
	if err := s.persistLocked(); err != nil {
		return Profile{}, err
	}
	s.logger.Info("Profile created", "username", username, "balance", s.profile.Balance)
	return s.profile, nil
}

// Profile returns a copy of the current profile
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Balance returns the current balance
func (s *Store) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Balance
}

// ApplyDelta mutates the balance by a signed amount, clamping at zero the way
// the original client did, and persists the result. It returns the new
// balance.
func (s *Store) ApplyDelta(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Balance += delta
	if s.profile.Balance < 0 {
		s.profile.Balance = 0
	}
	if err := s.persistLocked(); err != nil {
		s.logger.Error("Failed to persist balance", "error", err)
	}
	return s.profile.Balance
}

// Debit atomically checks that amount is covered and applies the negative
// delta. The balance is untouched when it returns ErrInsufficientFunds.
func (s *Store) Debit(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount > s.profile.Balance {
		return ErrInsufficientFunds
	}
	s.profile.Balance -= amount
	if err := s.persistLocked(); err != nil {
		s.logger.Error("Failed to persist balance", "error", err)
	}
	return nil
}

// AppendHistory records a settled round, trimming the log to the most recent
// entries.
func (s *Store) AppendHistory(game string, bet, win int, isWin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, HistoryEntry{
		ID:        uuid.NewString(),
		Game:      game,
		BetAmount: bet,
		WinAmount: win,
		IsWin:     isWin,
		Timestamp: time.Now(),
	})
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
	if raw, err := json.Marshal(s.history); err == nil {
		if err := s.kv.Put(historyKey, raw); err != nil {
			s.logger.Error("Failed to persist history", "error", err)
		}
	}
}

// History returns a copy of recorded rounds, oldest first
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("account: encode profile: %w", err)
	}
	if err := s.kv.Put(profileKey, raw); err != nil {
		return fmt.Errorf("account: persist profile: %w", err)
	}
	return nil
}
