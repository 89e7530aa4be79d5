package blackjack

import (
	"strings"

	"gemrush/internal/deck"
)

// Hand is an ordered sequence of cards held by the player or dealer during a
// round. Value is derived, never stored.
type Hand []deck.Card

// Value computes the blackjack total: aces count 11, then one ace at a time
// is demoted to 1 while the total busts. Returns the best total <= 21 when
// achievable, otherwise the minimum achievable (bust) total.
func (h Hand) Value() int {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totalling 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// IsSoft reports whether an ace is still counted as 11
func (h Hand) IsSoft() bool {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return aces > 0
}

// IsBust reports whether the hand value exceeds 21
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// String renders the hand as space-separated cards (e.g., "A♠ K♦")
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
