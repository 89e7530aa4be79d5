package cases

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gemrush/internal/account"
	"gemrush/internal/events"
	"gemrush/internal/randutil"
)

// Lobby manages open battles for the local session. All opponents are
// simulated; only the local participant's stake and winnings move through
// the account store.
type Lobby struct {
	mu      sync.Mutex
	rng     randutil.Source
	sampler *Sampler
	store   *account.Store
	bus     events.Bus
	logger  *log.Logger
	battles []*Battle
}

// NewLobby creates an empty battle lobby
func NewLobby(rng randutil.Source, sampler *Sampler, store *account.Store, bus events.Bus, logger *log.Logger) *Lobby {
	return &Lobby{
		rng:     rng,
		sampler: sampler,
		store:   store,
		bus:     bus,
		logger:  logger.WithPrefix("cases"),
	}
}

// Battles returns the open battles, newest first
func (l *Lobby) Battles() []*Battle {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Battle, len(l.battles))
	copy(out, l.battles)
	return out
}

// Battle returns the battle with the given ID
func (l *Lobby) Battle(id string) (*Battle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.findLocked(id)
}

// Create opens a new battle with the local player in the first seat,
// debiting the entry price. An empty name defaults to "<username>'s Battle".
func (l *Lobby) Create(name string, pricePerPlayer, casesToOpen, maxPlayers, caseType int) (*Battle, error) {
	profile := l.store.Profile()
	if name == "" {
		name = fmt.Sprintf("%s's Battle", profile.Username)
	}
	b, err := NewBattle(name, pricePerPlayer, casesToOpen, maxPlayers, caseType)
	if err != nil {
		return nil, err
	}
	if err := l.store.Debit(pricePerPlayer); err != nil {
		l.bus.Publish(events.New(events.KindInsufficient, "Insufficient balance to create this battle", 0))
		return nil, err
	}
	b.Participants = append(b.Participants, Participant{ID: profile.ID, Name: profile.Username})

	l.mu.Lock()
	l.battles = append([]*Battle{b}, l.battles...)
	l.mu.Unlock()

	l.logger.Info("Battle created", "id", b.ID, "name", b.Name, "price", pricePerPlayer)
	return b, nil
}

// Join seats the local player in an existing battle, debiting the entry
// price. Filling the last seat starts and settles the battle; the returned
// settlement is nil while seats remain.
func (l *Lobby) Join(id string) (*Settlement, error) {
	profile := l.store.Profile()

	l.mu.Lock()
	b, err := l.findLocked(id)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if b.CurrentPlayers() >= b.MaxPlayers {
		return nil, ErrBattleFull
	}
	for _, p := range b.Participants {
		if p.ID == profile.ID {
			return nil, ErrAlreadyJoined
		}
	}
	if err := l.store.Debit(b.PricePerPlayer); err != nil {
		l.bus.Publish(events.New(events.KindInsufficient, "Insufficient balance to join this battle", 0))
		return nil, err
	}
	b.Participants = append(b.Participants, Participant{ID: profile.ID, Name: profile.Username})
	l.logger.Info("Joined battle", "id", b.ID, "players", b.CurrentPlayers())

	if b.CurrentPlayers() >= b.MaxPlayers {
		return l.run(b), nil
	}
	return nil, nil
}

// FillWithBots seats simulated opponents in every remaining seat and runs
// the battle.
func (l *Lobby) FillWithBots(id string) (*Settlement, error) {
	l.mu.Lock()
	b, err := l.findLocked(id)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for i := b.CurrentPlayers(); b.CurrentPlayers() < b.MaxPlayers; i++ {
		b.Participants = append(b.Participants, Participant{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Opponent %d", i),
			Simulated: true,
		})
	}
	return l.run(b), nil
}

// run settles a full battle and applies the local participant's balance
// delta: the pot on a win, the returned stake on a push, nothing on a loss.
func (l *Lobby) run(b *Battle) *Settlement {
	b.Status = InProgress
	settlement := Settle(b, l.sampler, l.rng)

	profile := l.store.Profile()
	for i, opening := range settlement.Openings {
		if opening.Participant.ID != profile.ID {
			continue
		}
		win := 0
		switch {
		case settlement.Push:
			l.store.ApplyDelta(b.PricePerPlayer)
			l.bus.Publish(events.New(events.KindPush, "It's a tie! Your bet has been returned.", b.PricePerPlayer))
		case i == settlement.WinnerIndex:
			win = settlement.Pot
			l.store.ApplyDelta(win)
			l.bus.Publish(events.New(events.KindWin, fmt.Sprintf("You won %d gems!", win), win))
		default:
			l.bus.Publish(events.New(events.KindLose, "Better luck next time!", 0))
		}
		l.store.AppendHistory("cases", b.PricePerPlayer, win, win > 0)
	}

	l.mu.Lock()
	for i, battle := range l.battles {
		if battle.ID == b.ID {
			l.battles = append(l.battles[:i], l.battles[i+1:]...)
			break
		}
	}
	l.mu.Unlock()

	l.logger.Info("Battle settled", "id", b.ID, "push", settlement.Push, "pot", settlement.Pot)
	return settlement
}

func (l *Lobby) findLocked(id string) (*Battle, error) {
	for _, b := range l.battles {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBattleNotFound
}
