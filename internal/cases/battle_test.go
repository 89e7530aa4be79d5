package cases

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"gemrush/internal/account"
	"gemrush/internal/events"
	"gemrush/internal/randutil"
)

func newTestLobby(t *testing.T, rng randutil.Source) (*Lobby, *account.Store) {
	t.Helper()

	store, err := account.Open(account.NewMemoryKV(), log.New(io.Discard))
	require.NoError(t, err)
	sampler, err := NewSampler(DefaultTiers())
	require.NoError(t, err)
	lobby := NewLobby(rng, sampler, store, events.NewBus(), log.New(io.Discard))
	return lobby, store
}

func TestNewBattleValidation(t *testing.T) {
	t.Parallel()

	_, err := NewBattle("x", 0, 3, 2, 0)
	require.ErrorIs(t, err, ErrInvalidBattle)
	_, err = NewBattle("x", 100, 0, 2, 0)
	require.ErrorIs(t, err, ErrInvalidBattle)
	_, err = NewBattle("x", 100, 11, 2, 0)
	require.ErrorIs(t, err, ErrInvalidBattle)
	_, err = NewBattle("x", 100, 3, 1, 0)
	require.ErrorIs(t, err, ErrInvalidBattle)
	_, err = NewBattle("x", 100, 3, 5, 0)
	require.ErrorIs(t, err, ErrInvalidBattle)

	b, err := NewBattle("x", 100, 3, 2, 0)
	require.NoError(t, err)
	require.Equal(t, Waiting, b.Status)
	require.Equal(t, 0, b.CurrentPlayers())
}

func TestBattlePotTakesFee(t *testing.T) {
	t.Parallel()

	b, err := NewBattle("x", 500, 3, 4, 0)
	require.NoError(t, err)
	// 500 * 4 * 0.9
	require.Equal(t, 1800, b.Pot())
}

func TestCreateDebitsAndSeatsLocalPlayer(t *testing.T) {
	t.Parallel()

	lobby, store := newTestLobby(t, randutil.New(1))
	before := store.Balance()

	b, err := lobby.Create("", 100, 3, 2, 0)
	require.NoError(t, err)
	require.Equal(t, before-100, store.Balance())
	require.Equal(t, 1, b.CurrentPlayers())
	require.Equal(t, store.Profile().ID, b.Participants[0].ID)
	require.Equal(t, "player's Battle", b.Name)
	require.Len(t, lobby.Battles(), 1)
}

func TestCreateInsufficientFunds(t *testing.T) {
	t.Parallel()

	lobby, store := newTestLobby(t, randutil.New(1))

	_, err := lobby.Create("big", store.Balance()+1, 3, 2, 0)
	require.ErrorIs(t, err, account.ErrInsufficientFunds)
	require.Empty(t, lobby.Battles())
}

func TestJoinUnknownBattle(t *testing.T) {
	t.Parallel()

	lobby, _ := newTestLobby(t, randutil.New(1))
	_, err := lobby.Join("nope")
	require.ErrorIs(t, err, ErrBattleNotFound)
}

func TestJoinTwiceRejected(t *testing.T) {
	t.Parallel()

	lobby, _ := newTestLobby(t, randutil.New(1))
	b, err := lobby.Create("", 100, 3, 3, 0)
	require.NoError(t, err)

	_, err = lobby.Join(b.ID)
	require.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestFillWithBotsSettlesAndRemovesBattle(t *testing.T) {
	t.Parallel()

	lobby, store := newTestLobby(t, randutil.New(42))
	b, err := lobby.Create("", 100, 3, 2, 0)
	require.NoError(t, err)
	afterEntry := store.Balance()

	settlement, err := lobby.FillWithBots(b.ID)
	require.NoError(t, err)
	require.NotNil(t, settlement)
	require.Len(t, settlement.Openings, 2)
	require.Equal(t, Completed, b.Status)
	require.Empty(t, lobby.Battles())

	for _, opening := range settlement.Openings {
		require.Len(t, opening.Rewards, 3)
		require.Equal(t, opening.Rewards[2], opening.Final)
	}

	switch {
	case settlement.Push:
		require.Equal(t, afterEntry+100, store.Balance())
	case settlement.Winner().Participant.ID == store.Profile().ID:
		require.Equal(t, afterEntry+settlement.Pot, store.Balance())
	default:
		require.Equal(t, afterEntry, store.Balance())
	}
}

func TestSettleWinnerHasHighestFinalValue(t *testing.T) {
	t.Parallel()

	sampler, err := NewSampler(DefaultTiers())
	require.NoError(t, err)

	b, err := NewBattle("x", 100, 1, 2, 0)
	require.NoError(t, err)
	b.Participants = []Participant{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}}

	// One draw per participant: first Common (u=0.1), second Legendary
	// (u=0.99).
	rng := randutil.NewFixed(0.1, 0.99)
	settlement := Settle(b, sampler, rng)

	require.False(t, settlement.Push)
	require.Equal(t, 1, settlement.WinnerIndex)
	require.Equal(t, "b", settlement.Winner().Participant.ID)
	require.Greater(t, settlement.Openings[1].Final.Value, settlement.Openings[0].Final.Value)
}

func TestSettleEqualFinalsIsPush(t *testing.T) {
	t.Parallel()

	sampler, err := NewSampler(DefaultTiers())
	require.NoError(t, err)

	b, err := NewBattle("x", 100, 1, 2, 0)
	require.NoError(t, err)
	b.Participants = []Participant{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}}

	// Same tier for both draws.
	rng := randutil.NewFixed(0.1, 0.1)
	settlement := Settle(b, sampler, rng)

	require.True(t, settlement.Push)
	require.Equal(t, -1, settlement.WinnerIndex)
	require.Nil(t, settlement.Winner())
}

func TestJoinLastSeatRunsBattle(t *testing.T) {
	t.Parallel()

	lobby, store := newTestLobby(t, randutil.New(7))

	b, err := lobby.Create("", 100, 2, 2, 1)
	require.NoError(t, err)

	// Simulate another profile joining by swapping the local profile: the
	// lobby reads the store's current profile on join.
	_, err = store.Login("rival")
	require.NoError(t, err)

	settlement, err := lobby.Join(b.ID)
	require.NoError(t, err)
	require.NotNil(t, settlement)
	require.Equal(t, Completed, b.Status)
	require.Len(t, settlement.Openings, 2)
}
