package blackjack

import (
	"testing"

	"gemrush/internal/deck"
)

func card(rank deck.Rank) deck.Card {
	return deck.NewCard(deck.Spades, rank)
}

func TestHandValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hand Hand
		want int
	}{
		{"two aces", Hand{card(deck.Ace), card(deck.Ace)}, 12},
		{"natural", Hand{card(deck.Ace), card(deck.King)}, 21},
		{"ace nine ace", Hand{card(deck.Ace), card(deck.Nine), card(deck.Ace)}, 21},
		{"hard bust", Hand{card(deck.Ten), card(deck.Ten), card(deck.Five)}, 25},
		{"soft seventeen", Hand{card(deck.Ace), card(deck.Six)}, 17},
		{"demoted ace", Hand{card(deck.Ace), card(deck.Nine), card(deck.Five)}, 15},
		{"empty", Hand{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.hand.Value(); got != tt.want {
				t.Errorf("Value(%s) = %d, want %d", tt.hand, got, tt.want)
			}
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	t.Parallel()

	if !(Hand{card(deck.Ace), card(deck.King)}).IsBlackjack() {
		t.Error("A K should be blackjack")
	}
	if (Hand{card(deck.Seven), card(deck.Seven), card(deck.Seven)}).IsBlackjack() {
		t.Error("three-card 21 is not blackjack")
	}
	if (Hand{card(deck.Ten), card(deck.Nine)}).IsBlackjack() {
		t.Error("19 is not blackjack")
	}
}

func TestIsSoft(t *testing.T) {
	t.Parallel()

	if !(Hand{card(deck.Ace), card(deck.Six)}).IsSoft() {
		t.Error("A 6 is soft seventeen")
	}
	if (Hand{card(deck.Ace), card(deck.Nine), card(deck.Five)}).IsSoft() {
		t.Error("demoted ace makes the hand hard")
	}
	if (Hand{card(deck.Ten), card(deck.Seven)}).IsSoft() {
		t.Error("no ace means hard")
	}
}

func TestIsBust(t *testing.T) {
	t.Parallel()

	if (Hand{card(deck.Ten), card(deck.King), card(deck.Ace)}).IsBust() {
		t.Error("10 K A is 21, not bust")
	}
	if !(Hand{card(deck.Ten), card(deck.King), card(deck.Five)}).IsBust() {
		t.Error("25 should be bust")
	}
}
