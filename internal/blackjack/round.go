package blackjack

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"gemrush/internal/account"
	"gemrush/internal/deck"
	"gemrush/internal/events"
	"gemrush/internal/randutil"
)

// Dealer stands on all 17s, soft or hard
const dealerStandsAt = 17

var (
	// ErrInvalidBet is returned for a non-positive bet
	ErrInvalidBet = errors.New("blackjack: invalid bet")
	// ErrInvalidAction is returned when an action is attempted outside the
	// state that allows it.
	ErrInvalidAction = errors.New("blackjack: invalid action for current state")
)

// State is the round lifecycle state
type State int

const (
	Betting State = iota
	Playing
	DealerTurn
	Complete
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Betting:
		return "betting"
	case Playing:
		return "playing"
	case DealerTurn:
		return "dealer-turn"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result is the settled outcome of a round
type Result int

const (
	Pending Result = iota
	PlayerBlackjack
	PlayerWin
	DealerWin
	Push
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case PlayerBlackjack:
		return "player-blackjack"
	case PlayerWin:
		return "player-win"
	case DealerWin:
		return "dealer-win"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Engine drives a single blackjack session as a state machine:
// Betting -> Playing -> DealerTurn -> Complete -> (Reset back to Betting).
// The engine is synchronous; the dealer turn advances one card per
// DealerStep call so a caller can pace the reveals.
type Engine struct {
	rng     randutil.Source
	store   *account.Store
	bus     events.Bus
	logger  *log.Logger
	newDeck func() *deck.Deck
	deck    *deck.Deck
	player  Hand
	dealer  Hand
	bet     int
	state   State
	result  Result
	lastWin int
}

// Option configures an Engine
type Option func(*Engine)

// WithDeckBuilder overrides how a fresh deck is produced on deal. Intended
// for tests that need a stacked deck.
func WithDeckBuilder(build func() *deck.Deck) Option {
	return func(e *Engine) {
		e.newDeck = build
	}
}

// NewEngine creates a blackjack engine in the Betting state
func NewEngine(rng randutil.Source, store *account.Store, bus events.Bus, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		rng:    rng,
		store:  store,
		bus:    bus,
		logger: logger.WithPrefix("blackjack"),
		state:  Betting,
		result: Pending,
	}
	e.newDeck = func() *deck.Deck {
		return deck.NewShuffled(e.rng)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current round state
func (e *Engine) State() State { return e.state }

// Result returns the settled result, Pending while the round runs
func (e *Engine) Result() Result { return e.result }

// Bet returns the active bet amount
func (e *Engine) Bet() int { return e.bet }

// LastPayout returns the amount credited by the most recent settlement
func (e *Engine) LastPayout() int { return e.lastWin }

// PlayerHand returns a copy of the player's hand
func (e *Engine) PlayerHand() Hand {
	return append(Hand(nil), e.player...)
}

// DealerHand returns a copy of the dealer's hand
func (e *Engine) DealerHand() Hand {
	return append(Hand(nil), e.dealer...)
}

// Deal starts a round: validates and debits the bet, builds a fresh shuffled
// deck and deals player, dealer, player, dealer. A natural settles
// immediately without dealer draws (push when the dealer also has one).
func (e *Engine) Deal(bet int) error {
	if e.state != Betting {
		return ErrInvalidAction
	}
	if bet <= 0 {
		return ErrInvalidBet
	}
	if err := e.store.Debit(bet); err != nil {
		e.bus.Publish(events.New(events.KindInsufficient, "Insufficient balance", 0))
		return err
	}

	e.deck = e.newDeck()
	e.bet = bet
	e.player = nil
	e.dealer = nil
	e.result = Pending
	e.lastWin = 0

	// Deal order is fixed: player, dealer, player, dealer.
	for i := 0; i < 4; i++ {
		card, err := e.deck.Draw()
		if err != nil {
			return fmt.Errorf("blackjack: initial deal: %w", err)
		}
		if i%2 == 0 {
			e.player = append(e.player, card)
		} else {
			e.dealer = append(e.dealer, card)
		}
	}
	e.state = Playing
	e.logger.Debug("Dealt", "player", e.player, "dealer", e.dealer, "bet", bet)

	if e.player.IsBlackjack() {
		if e.dealer.IsBlackjack() {
			e.settle(Push)
		} else {
			e.settle(PlayerBlackjack)
		}
	}
	return nil
}

// Hit draws one card into the player's hand. A bust settles the round as a
// dealer win.
func (e *Engine) Hit() error {
	if e.state != Playing {
		return ErrInvalidAction
	}
	card, err := e.deck.Draw()
	if err != nil {
		return fmt.Errorf("blackjack: hit: %w", err)
	}
	e.player = append(e.player, card)
	e.logger.Debug("Player hits", "card", card, "value", e.player.Value())

	if e.player.IsBust() {
		e.settle(DealerWin)
	}
	return nil
}

// Stand ends the player's turn and hands control to the dealer. The dealer's
// cards are drawn one per DealerStep call.
func (e *Engine) Stand() error {
	if e.state != Playing {
		return ErrInvalidAction
	}
	e.state = DealerTurn
	return nil
}

// DealerStep advances the dealer's turn by a single discrete step: one card
// drawn while the dealer total is below 17, or settlement once the dealer
// stands or busts. It returns true when the round is complete.
func (e *Engine) DealerStep() (bool, error) {
	if e.state != DealerTurn {
		return false, ErrInvalidAction
	}
	if e.dealer.Value() < dealerStandsAt {
		card, err := e.deck.Draw()
		if err != nil {
			return false, fmt.Errorf("blackjack: dealer draw: %w", err)
		}
		e.dealer = append(e.dealer, card)
		e.logger.Debug("Dealer draws", "card", card, "value", e.dealer.Value())
		if e.dealer.Value() < dealerStandsAt {
			return false, nil
		}
	}

	playerValue, dealerValue := e.player.Value(), e.dealer.Value()
	switch {
	case dealerValue > 21:
		e.settle(PlayerWin)
	case playerValue > dealerValue:
		e.settle(PlayerWin)
	case dealerValue > playerValue:
		e.settle(DealerWin)
	default:
		e.settle(Push)
	}
	return true, nil
}

// Reset clears the round and returns to the Betting state
func (e *Engine) Reset() {
	e.deck = nil
	e.player = nil
	e.dealer = nil
	e.bet = 0
	e.state = Betting
	e.result = Pending
	e.lastWin = 0
}

func (e *Engine) settle(result Result) {
	e.state = Complete
	e.result = result

	payout := 0
	switch result {
	case PlayerBlackjack:
		// Naturals pay 3:2 on top of the returned stake.
		payout = e.bet * 5 / 2
		e.bus.Publish(events.New(events.KindWin, fmt.Sprintf("Blackjack! You won %d gems!", payout), payout))
	case PlayerWin:
		payout = e.bet * 2
		e.bus.Publish(events.New(events.KindWin, fmt.Sprintf("You won %d gems!", payout), payout))
	case Push:
		payout = e.bet
		e.bus.Publish(events.New(events.KindPush, "Push! Your bet is returned.", payout))
	case DealerWin:
		e.bus.Publish(events.New(events.KindLose, "Dealer wins. Better luck next time!", 0))
	}

	if payout > 0 {
		e.store.ApplyDelta(payout)
	}
	won := result == PlayerWin || result == PlayerBlackjack
	e.store.AppendHistory("blackjack", e.bet, payout, won)
	e.lastWin = payout
	e.logger.Info("Round settled", "result", result, "bet", e.bet, "payout", payout)
}
