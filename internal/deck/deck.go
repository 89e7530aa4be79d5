package deck

import (
	"errors"

	"gemrush/internal/randutil"
)

// ErrEmptyDeck is returned by Draw when no cards remain. Game rules bound the
// number of cards dealt per round well below 52, so hitting this during play
// indicates a logic bug rather than a recoverable condition.
var ErrEmptyDeck = errors.New("deck: empty deck")

// Deck represents an ordered deck of playing cards. Cards are drawn from the
// front.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck in suit-major enumeration order:
// all spades A..K, then hearts, diamonds, clubs. The order is stable and
// documented so stacked decks in tests can rely on it.
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewShuffled creates a fresh 52-card deck shuffled with src.
func NewShuffled(src randutil.Source) *Deck {
	d := New()
	d.Shuffle(src)
	return d
}

// Stacked creates a deck containing exactly the given cards in the given
// order. Intended for deterministic tests.
func Stacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the deck in place with a Fisher-Yates walk driven by
// src. Given a uniform source every permutation is equally likely.
func (d *Deck) Shuffle(src randutil.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := randutil.IntN(src, i+1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in draw order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
