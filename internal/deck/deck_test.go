package deck

import (
	"errors"
	"testing"

	"gemrush/internal/randutil"
)

func TestNewHas52UniqueCards(t *testing.T) {
	t.Parallel()

	d := New()
	if d.Len() != 52 {
		t.Fatalf("deck has %d cards, want 52", d.Len())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestEnumerationOrder(t *testing.T) {
	t.Parallel()

	d := New()
	cards := d.Cards()

	// Suit-major: spades first, ace low within each suit.
	if cards[0] != (Card{Suit: Spades, Rank: Ace}) {
		t.Errorf("first card = %s, want A♠", cards[0])
	}
	if cards[12] != (Card{Suit: Spades, Rank: King}) {
		t.Errorf("card 12 = %s, want K♠", cards[12])
	}
	if cards[13] != (Card{Suit: Hearts, Rank: Ace}) {
		t.Errorf("card 13 = %s, want A♥", cards[13])
	}
	if cards[51] != (Card{Suit: Clubs, Rank: King}) {
		t.Errorf("last card = %s, want K♣", cards[51])
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		d := NewShuffled(randutil.New(seed))
		if d.Len() != 52 {
			t.Fatalf("seed %d: shuffled deck has %d cards", seed, d.Len())
		}
		seen := make(map[Card]bool)
		for _, c := range d.Cards() {
			seen[c] = true
		}
		if len(seen) != 52 {
			t.Errorf("seed %d: shuffle lost or duplicated cards, %d unique", seed, len(seen))
		}
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewShuffled(randutil.New(99))
	b := NewShuffled(randutil.New(99))
	ac, bc := a.Cards(), b.Cards()
	for i := range ac {
		if ac[i] != bc[i] {
			t.Fatalf("card %d differs: %s != %s", i, ac[i], bc[i])
		}
	}
}

func TestDrawShrinksDeck(t *testing.T) {
	t.Parallel()

	d := New()
	first, err := d.Draw()
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if first != (Card{Suit: Spades, Rank: Ace}) {
		t.Errorf("drew %s, want A♠", first)
	}
	if d.Len() != 51 {
		t.Errorf("deck has %d cards after draw, want 51", d.Len())
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	t.Parallel()

	d := New()
	for i := 0; i < 52; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
	}
	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("draw from empty deck: err = %v, want ErrEmptyDeck", err)
	}
}

func TestCardValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank Rank
		want int
	}{
		{Ace, 11},
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}
	for _, tt := range tests {
		if got := tt.rank.Value(); got != tt.want {
			t.Errorf("%s.Value() = %d, want %d", tt.rank, got, tt.want)
		}
	}
}
