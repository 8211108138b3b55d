package scan

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the explicit scan session state. Camera decode callbacks can fire
// repeatedly per second, so the session tracks whether a decode has already
// been honored; only the first decode within a session reaches the clock
// reconciler until the session is reset by starting a new scan.
type State string

const (
	StateIdle       State = "idle"
	StateScanning   State = "scanning"
	StateValidating State = "validating"
	StateSuccess    State = "success"
	StateRejected   State = "rejected"
)

const (
	// successHold is how long a successful session displays before the
	// client returns to the dashboard; the session is terminal afterwards.
	successHold = 5 * time.Second

	// rejectedHold is how long a rejected session displays before it
	// returns to scanning so the user may rescan.
	rejectedHold = 2 * time.Second

	// sessionTTL bounds how long an abandoned session is kept.
	sessionTTL = 10 * time.Minute
)

var (
	ErrSessionNotFound  = errors.New("scan session not found or expired")
	ErrSessionConsumed  = errors.New("scan session has already decoded a code")
	ErrSessionFinished  = errors.New("scan session is finished; start a new scan")
	ErrNotValidating    = errors.New("scan session is not awaiting a decision")
	ErrSessionOwnership = errors.New("scan session belongs to a different user")
)

// Session is one camera scan session owned by a single user.
type Session struct {
	ID      string
	OwnerID string
	State   State

	hasDecoded bool
	startedAt  time.Time
	holdUntil  time.Time
}

// Manager tracks active scan sessions in memory. State is resolved lazily
// against the clock, so timed transitions (success hold, rejected hold,
// expiry) need no timers.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Start opens a new scan session for the owner and returns its token.
// Any previous session of the same owner is discarded, which is what makes
// a stale decode from an old camera session unable to re-trigger a clock
// action.
func (m *Manager) Start(ownerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if s.OwnerID == ownerID {
			delete(m.sessions, id)
		}
	}

	s := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		State:     StateScanning,
		startedAt: m.now(),
	}
	m.sessions[s.ID] = s
	return s
}

// BeginDecode moves the session from scanning to validating. The first decode
// wins; subsequent decodes within the same session fail with
// ErrSessionConsumed until the session returns to scanning.
func (m *Manager) BeginDecode(id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.resolve(id)
	if err != nil {
		return err
	}
	if s.OwnerID != ownerID {
		return ErrSessionOwnership
	}

	switch s.State {
	case StateScanning:
		if s.hasDecoded {
			return ErrSessionConsumed
		}
		s.hasDecoded = true
		s.State = StateValidating
		return nil
	case StateValidating:
		return ErrSessionConsumed
	case StateSuccess:
		return ErrSessionFinished
	case StateRejected:
		return ErrSessionConsumed
	default:
		return ErrSessionNotFound
	}
}

// Complete records the reconciler's outcome for a validating session.
// Success holds for 5 seconds and then the session is terminal; rejection
// holds for 2 seconds and then the session returns to scanning with the
// decode flag cleared so the user may rescan.
func (m *Manager) Complete(id string, success bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.resolve(id)
	if err != nil {
		return err
	}
	if s.State != StateValidating {
		return ErrNotValidating
	}

	if success {
		s.State = StateSuccess
		s.holdUntil = m.now().Add(successHold)
	} else {
		s.State = StateRejected
		s.holdUntil = m.now().Add(rejectedHold)
	}
	return nil
}

// SessionState reports the current state of a session, resolving any elapsed
// hold periods first. Unknown or expired sessions are idle.
func (m *Manager) SessionState(id string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.resolve(id)
	if err != nil {
		return StateIdle
	}
	return s.State
}

// PurgeExpired drops abandoned sessions and returns how many were removed.
// Run periodically from the scheduler.
func (m *Manager) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	cutoff := m.now().Add(-sessionTTL)
	for id, s := range m.sessions {
		if s.startedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// ActiveSessions returns the number of tracked sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// resolve fetches a session and applies lazy timed transitions. Callers must
// hold the mutex.
func (m *Manager) resolve(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := m.now()
	if now.Sub(s.startedAt) > sessionTTL {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}

	if !s.holdUntil.IsZero() && now.After(s.holdUntil) {
		switch s.State {
		case StateSuccess:
			// Terminal for this session; a new scan must be started.
			delete(m.sessions, id)
			return nil, ErrSessionNotFound
		case StateRejected:
			s.State = StateScanning
			s.hasDecoded = false
			s.holdUntil = time.Time{}
		}
	}

	return s, nil
}
