package cases

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"gemrush/internal/randutil"
)

// feeRate is the house cut taken from the winner's pot
const feeRate = 0.10

var (
	// ErrInvalidBattle is returned when battle parameters are out of range
	ErrInvalidBattle = errors.New("cases: invalid battle parameters")
	// ErrBattleNotFound is returned for an unknown battle ID
	ErrBattleNotFound = errors.New("cases: battle not found")
	// ErrBattleFull is returned when joining a battle with no free seats
	ErrBattleFull = errors.New("cases: battle is full")
	// ErrAlreadyJoined is returned when a participant joins twice
	ErrAlreadyJoined = errors.New("cases: already joined")
)

// Status is the battle lifecycle state
type Status int

const (
	Waiting Status = iota
	InProgress
	Completed
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Participant is one seat in a battle. Simulated participants stand in for
// remote opponents; their stakes and winnings never touch the local account.
type Participant struct {
	ID        string
	Name      string
	Simulated bool
}

// Battle is a case battle lobby entry. CurrentPlayers never exceeds
// MaxPlayers; status moves Waiting -> InProgress when the last seat fills
// and -> Completed once settled.
type Battle struct {
	ID             string
	Name           string
	PricePerPlayer int
	CasesToOpen    int
	MaxPlayers     int
	Status         Status
	CaseType       int
	Participants   []Participant
}

// CurrentPlayers returns the number of filled seats
func (b *Battle) CurrentPlayers() int {
	return len(b.Participants)
}

// Pot returns the winner payout: the full pot net of the house fee
func (b *Battle) Pot() int {
	return int(math.Floor(float64(b.PricePerPlayer*b.MaxPlayers) * (1 - feeRate)))
}

// NewBattle validates parameters and creates a Waiting battle with no seats
// filled.
func NewBattle(name string, pricePerPlayer, casesToOpen, maxPlayers, caseType int) (*Battle, error) {
	if pricePerPlayer <= 0 {
		return nil, fmt.Errorf("%w: price %d", ErrInvalidBattle, pricePerPlayer)
	}
	if casesToOpen < 1 || casesToOpen > 10 {
		return nil, fmt.Errorf("%w: cases to open %d", ErrInvalidBattle, casesToOpen)
	}
	if maxPlayers < 2 || maxPlayers > 4 {
		return nil, fmt.Errorf("%w: max players %d", ErrInvalidBattle, maxPlayers)
	}
	return &Battle{
		ID:             uuid.NewString(),
		Name:           name,
		PricePerPlayer: pricePerPlayer,
		CasesToOpen:    casesToOpen,
		MaxPlayers:     maxPlayers,
		Status:         Waiting,
		CaseType:       caseType,
	}, nil
}

// Opening is one participant's full case-opening sequence. Final is the last
// revealed reward, the value the battle is decided on.
type Opening struct {
	Participant Participant
	Rewards     []Reward
	Final       Reward
}

// Settlement is the outcome of a completed battle
type Settlement struct {
	BattleID    string
	Openings    []Opening
	WinnerIndex int // index into Openings, -1 on a tie
	Pot         int
	Push        bool
}

// Winner returns the winning opening, or nil on a push
func (s *Settlement) Winner() *Opening {
	if s.WinnerIndex < 0 {
		return nil
	}
	return &s.Openings[s.WinnerIndex]
}

// Settle runs every participant's opening sequence and decides the battle.
// Each case slot is one sampler draw at the battle's case multiplier and
// price. The participant with the highest final revealed value takes the pot
// net of the fee; when the top value is shared the pot is withheld and every
// participant's stake is returned instead.
func Settle(b *Battle, sampler *Sampler, rng randutil.Source) *Settlement {
	multiplier := CaseMultiplier(b.CaseType)
	settlement := &Settlement{
		BattleID:    b.ID,
		Openings:    make([]Opening, 0, len(b.Participants)),
		WinnerIndex: -1,
		Pot:         b.Pot(),
	}

	for _, p := range b.Participants {
		opening := Opening{Participant: p, Rewards: make([]Reward, 0, b.CasesToOpen)}
		for i := 0; i < b.CasesToOpen; i++ {
			opening.Rewards = append(opening.Rewards, sampler.Sample(rng, multiplier, b.PricePerPlayer))
		}
		opening.Final = opening.Rewards[len(opening.Rewards)-1]
		settlement.Openings = append(settlement.Openings, opening)
	}

	best, tied := -1, false
	for i, opening := range settlement.Openings {
		switch {
		case best < 0 || opening.Final.Value > settlement.Openings[best].Final.Value:
			best, tied = i, false
		case opening.Final.Value == settlement.Openings[best].Final.Value:
			tied = true
		}
	}
	if tied {
		settlement.Push = true
	} else {
		settlement.WinnerIndex = best
	}

	b.Status = Completed
	return settlement
}
