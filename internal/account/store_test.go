package account

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestOpenCreatesDefaultProfile(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	store, err := Open(kv, testLogger())
	require.NoError(t, err)

	p := store.Profile()
	require.NotEmpty(t, p.ID)
	require.Equal(t, "player", p.Username)
	require.Equal(t, StartingBalance, p.Balance)
}

func TestOpenLoadsExistingProfile(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	store, err := Open(kv, testLogger())
	require.NoError(t, err)
	store.ApplyDelta(-1200)
	id := store.Profile().ID

	reopened, err := Open(kv, testLogger())
	require.NoError(t, err)
	require.Equal(t, id, reopened.Profile().ID)
	require.Equal(t, StartingBalance-1200, reopened.Balance())
}

func TestApplyDeltaClampsAtZero(t *testing.T) {
	t.Parallel()

	store, err := Open(NewMemoryKV(), testLogger())
	require.NoError(t, err)

	got := store.ApplyDelta(-(StartingBalance + 500))
	require.Equal(t, 0, got)
	require.Equal(t, 0, store.Balance())
}

func TestDebitInsufficientFundsLeavesBalance(t *testing.T) {
	t.Parallel()

	store, err := Open(NewMemoryKV(), testLogger())
	require.NoError(t, err)

	err = store.Debit(StartingBalance + 1)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, StartingBalance, store.Balance())

	require.NoError(t, store.Debit(100))
	require.Equal(t, StartingBalance-100, store.Balance())
}

func TestLoginResetsProfileAndHistory(t *testing.T) {
	t.Parallel()

	store, err := Open(NewMemoryKV(), testLogger())
	require.NoError(t, err)
	store.AppendHistory("mines", 100, 0, false)

	p, err := store.Login("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", p.Username)
	require.Equal(t, StartingBalance, p.Balance)
	require.Empty(t, store.History())
}

func TestWithStartingBalance(t *testing.T) {
	t.Parallel()

	store, err := Open(NewMemoryKV(), testLogger(), WithStartingBalance(250))
	require.NoError(t, err)
	require.Equal(t, 250, store.Balance())

	p, err := store.Login("bob")
	require.NoError(t, err)
	require.Equal(t, 250, p.Balance)
}

func TestHistoryPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	store, err := Open(kv, testLogger())
	require.NoError(t, err)
	store.AppendHistory("blackjack", 100, 250, true)

	reopened, err := Open(kv, testLogger())
	require.NoError(t, err)
	history := reopened.History()
	require.Len(t, history, 1)
	require.Equal(t, "blackjack", history[0].Game)
	require.Equal(t, 250, history[0].WinAmount)
	require.True(t, history[0].IsWin)
}

func TestFileKVRoundTrip(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/profile.json"
	kv, err := NewFileKV(path)
	require.NoError(t, err)

	store, err := Open(kv, testLogger())
	require.NoError(t, err)
	store.ApplyDelta(250)

	kv2, err := NewFileKV(path)
	require.NoError(t, err)
	reopened, err := Open(kv2, testLogger())
	require.NoError(t, err)
	require.Equal(t, StartingBalance+250, reopened.Balance())
}
