package mines

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"gemrush/internal/account"
	"gemrush/internal/events"
	"gemrush/internal/randutil"
)

const (
	// GridSize is the number of cells in the 5x5 field
	GridSize = 25

	// MinMines and MaxMines bound the mine count; the upper bound leaves
	// at least one safe cell.
	MinMines = 1
	MaxMines = 24

	// houseEdge keeps 5% of the fair multiplier
	houseEdge = 0.95
)

var (
	// ErrInvalidBet is returned for a non-positive bet
	ErrInvalidBet = errors.New("mines: invalid bet")
	// ErrInvalidMinesCount is returned when the mine count falls outside
	// [MinMines, MaxMines].
	ErrInvalidMinesCount = errors.New("mines: mines count out of range")
	// ErrInvalidAction is returned for cashing out with no reveals or
	// starting over an active game.
	ErrInvalidAction = errors.New("mines: invalid action for current state")
)

// Result is the settled outcome of a game
type Result int

const (
	Pending Result = iota
	Win
	Lose
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Cell is one field cell. Multiplier is the display multiplier recorded when
// a safe cell is revealed.
type Cell struct {
	Revealed   bool
	Mine       bool
	Multiplier float64
}

// Multiplier returns the cashout multiplier after revealed safe cells with
// mines mines on the field: a 5% house edge redistributed across the
// shrinking safe-cell pool, floored at 1x. revealed must be below
// GridSize - mines.
func Multiplier(mines, revealed int) float64 {
	m := houseEdge * float64(GridSize) / float64(GridSize-mines-revealed)
	return math.Max(m, 1)
}

// Engine drives a single mines session. One game is active at a time;
// Start replaces any settled game.
type Engine struct {
	rng    randutil.Source
	store  *account.Store
	bus    events.Bus
	logger *log.Logger

	cells        [GridSize]Cell
	bet          int
	minesCount   int
	revealedSafe int
	active       bool
	result       Result
}

// NewEngine creates a mines engine with no active game
func NewEngine(rng randutil.Source, store *account.Store, bus events.Bus, logger *log.Logger) *Engine {
	return &Engine{
		rng:    rng,
		store:  store,
		bus:    bus,
		logger: logger.WithPrefix("mines"),
		result: Pending,
	}
}

// Active reports whether a game is in progress
func (e *Engine) Active() bool { return e.active }

// Result returns the settled result, Pending while a game runs
func (e *Engine) Result() Result { return e.result }

// Bet returns the active bet amount
func (e *Engine) Bet() int { return e.bet }

// MinesCount returns the configured number of mines
func (e *Engine) MinesCount() int { return e.minesCount }

// RevealedSafe returns the count of safe cells revealed so far
func (e *Engine) RevealedSafe() int { return e.revealedSafe }

// Cells returns a copy of the grid
func (e *Engine) Cells() [GridSize]Cell { return e.cells }

// PotentialWin returns the cashout amount at the current reveal count
func (e *Engine) PotentialWin() int {
	return int(math.Floor(float64(e.bet) * Multiplier(e.minesCount, e.revealedSafe)))
}

// NextMultiplier returns the multiplier the next safe reveal locks in
func (e *Engine) NextMultiplier() float64 {
	return Multiplier(e.minesCount, e.revealedSafe+1)
}

// Start validates and debits the bet, then lays out a fresh field with
// minesCount mines placed uniformly without replacement.
func (e *Engine) Start(bet, minesCount int) error {
	if e.active {
		return ErrInvalidAction
	}
	if bet <= 0 {
		return ErrInvalidBet
	}
	if minesCount < MinMines || minesCount > MaxMines {
		return ErrInvalidMinesCount
	}
	if err := e.store.Debit(bet); err != nil {
		e.bus.Publish(events.New(events.KindInsufficient, "Insufficient balance", 0))
		return err
	}

	e.cells = [GridSize]Cell{}
	e.bet = bet
	e.minesCount = minesCount
	e.revealedSafe = 0
	e.result = Pending
	e.active = true

	// Partial Fisher-Yates over the cell indices; the first minesCount
	// slots become mines.
	var indices [GridSize]int
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < minesCount; i++ {
		j := i + randutil.IntN(e.rng, GridSize-i)
		indices[i], indices[j] = indices[j], indices[i]
		e.cells[indices[i]].Mine = true
	}

	e.logger.Debug("Game started", "bet", bet, "mines", minesCount)
	return nil
}

// Reveal opens the cell at index. It is a no-op when the game is inactive,
// the index is out of range, or the cell is already revealed. Hitting a mine
// settles the game as a loss; clearing the last safe cell settles it as a
// win.
func (e *Engine) Reveal(index int) {
	if !e.active || index < 0 || index >= GridSize || e.cells[index].Revealed {
		return
	}

	if e.cells[index].Mine {
		e.revealAllMines()
		e.cells[index].Revealed = true
		e.active = false
		e.result = Lose
		e.bus.Publish(events.New(events.KindLose, "BOOM! You hit a mine!", 0))
		e.store.AppendHistory("mines", e.bet, 0, false)
		e.logger.Info("Mine hit", "cell", index, "revealed", e.revealedSafe)
		return
	}

	e.cells[index].Revealed = true
	e.cells[index].Multiplier = e.NextMultiplier()

	if e.revealedSafe+1 == GridSize-e.minesCount {
		// Full clear pays out at the pre-final reveal count; the final
		// cell would otherwise divide by an empty safe pool.
		win := e.PotentialWin()
		e.revealedSafe++
		e.active = false
		e.result = Win
		e.store.ApplyDelta(win)
		e.store.AppendHistory("mines", e.bet, win, true)
		e.bus.Publish(events.New(events.KindWin, fmt.Sprintf("Perfect! You revealed all safe cells and won %d gems!", win), win))
		e.logger.Info("Full clear", "win", win)
		return
	}
	e.revealedSafe++
}

// Cashout settles an active game at the current multiplier. At least one
// safe cell must have been revealed.
func (e *Engine) Cashout() (int, error) {
	if !e.active || e.revealedSafe == 0 {
		return 0, ErrInvalidAction
	}

	win := e.PotentialWin()
	e.revealAllMines()
	e.active = false
	e.result = Win
	e.store.ApplyDelta(win)
	e.store.AppendHistory("mines", e.bet, win, true)
	e.bus.Publish(events.New(events.KindWin, fmt.Sprintf("You cashed out %d gems!", win), win))
	e.logger.Info("Cashed out", "win", win, "revealed", e.revealedSafe)
	return win, nil
}

// Reset clears the field. Resetting an active game abandons it and forfeits
// the stake.
func (e *Engine) Reset() {
	e.active = false
	e.cells = [GridSize]Cell{}
	e.bet = 0
	e.minesCount = 0
	e.revealedSafe = 0
	e.result = Pending
}

func (e *Engine) revealAllMines() {
	for i := range e.cells {
		if e.cells[i].Mine {
			e.cells[i].Revealed = true
		}
	}
}
