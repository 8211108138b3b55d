package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(start time.Time) (*Manager, *time.Time) {
	now := start
	m := NewManager()
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManager_FirstDecodeWins(t *testing.T) {
	m, _ := newTestManager(time.Now())

	s := m.Start("emp-001")
	assert.Equal(t, StateScanning, s.State)

	require.NoError(t, m.BeginDecode(s.ID, "emp-001"))
	assert.Equal(t, StateValidating, m.SessionState(s.ID))

	// A second decode callback within the same session must not fire again.
	err := m.BeginDecode(s.ID, "emp-001")
	assert.ErrorIs(t, err, ErrSessionConsumed)
}

func TestManager_SuccessIsTerminal(t *testing.T) {
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m, now := newTestManager(clock)

	s := m.Start("emp-001")
	require.NoError(t, m.BeginDecode(s.ID, "emp-001"))
	require.NoError(t, m.Complete(s.ID, true))

	assert.Equal(t, StateSuccess, m.SessionState(s.ID))

	// Still consumed during the success hold.
	assert.ErrorIs(t, m.BeginDecode(s.ID, "emp-001"), ErrSessionFinished)

	// After the 5s hold the session is gone; a rescan needs a new session.
	*now = now.Add(6 * time.Second)
	assert.Equal(t, StateIdle, m.SessionState(s.ID))
	assert.ErrorIs(t, m.BeginDecode(s.ID, "emp-001"), ErrSessionNotFound)
}

func TestManager_RejectionReturnsToScanning(t *testing.T) {
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m, now := newTestManager(clock)

	s := m.Start("emp-001")
	require.NoError(t, m.BeginDecode(s.ID, "emp-001"))
	require.NoError(t, m.Complete(s.ID, false))

	assert.Equal(t, StateRejected, m.SessionState(s.ID))

	// During the 2s rejected hold the session is still consumed.
	assert.ErrorIs(t, m.BeginDecode(s.ID, "emp-001"), ErrSessionConsumed)

	// After the hold the user may rescan within the same session.
	*now = now.Add(3 * time.Second)
	assert.Equal(t, StateScanning, m.SessionState(s.ID))
	assert.NoError(t, m.BeginDecode(s.ID, "emp-001"))
}

func TestManager_StartDiscardsPreviousSession(t *testing.T) {
	m, _ := newTestManager(time.Now())

	old := m.Start("emp-001")
	require.NoError(t, m.BeginDecode(old.ID, "emp-001"))

	fresh := m.Start("emp-001")
	assert.NotEqual(t, old.ID, fresh.ID)

	// The stale session can no longer trigger anything.
	assert.ErrorIs(t, m.BeginDecode(old.ID, "emp-001"), ErrSessionNotFound)
	assert.NoError(t, m.BeginDecode(fresh.ID, "emp-001"))
}

func TestManager_OwnershipEnforced(t *testing.T) {
	m, _ := newTestManager(time.Now())

	s := m.Start("emp-001")
	assert.ErrorIs(t, m.BeginDecode(s.ID, "emp-002"), ErrSessionOwnership)
}

func TestManager_CompleteRequiresValidating(t *testing.T) {
	m, _ := newTestManager(time.Now())

	s := m.Start("emp-001")
	assert.ErrorIs(t, m.Complete(s.ID, true), ErrNotValidating)
}

func TestManager_PurgeExpired(t *testing.T) {
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m, now := newTestManager(clock)

	m.Start("emp-001")
	m.Start("emp-002")
	assert.Equal(t, 2, m.ActiveSessions())

	*now = now.Add(11 * time.Minute)
	assert.Equal(t, 2, m.PurgeExpired())
	assert.Equal(t, 0, m.ActiveSessions())
}
