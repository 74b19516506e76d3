// Package session owns the process-wide authentication session state.
// There is exactly one writer path (the auth service plus expiry detection
// in the session middleware); everything else observes.
package session

import (
	"sync"

	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
)

// State is the lifecycle state of the process-wide session.
type State int

const (
	// StateUnresolved means the initial auth state has not been confirmed yet.
	// Dependents should treat this as "loading" and take no redirect action.
	StateUnresolved State = iota
	// StateAnonymous means no principal is signed in.
	StateAnonymous
	// StateAuthenticated means a principal is signed in.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity describes the authenticated principal.
type Identity struct {
	UserID string
	Email  string
}

// Event is delivered to listeners on every identity transition, including
// the initial resolution. Identity is nil unless State is StateAuthenticated.
type Event struct {
	State    State
	Identity *Identity
}

// Listener receives identity-changed events. Listeners are invoked
// synchronously in registration order and must not block.
type Listener func(Event)

// Manager holds the single authoritative session state and notifies
// subscribers of every transition.
type Manager struct {
	mu        sync.Mutex
	state     State
	identity  *Identity
	listeners []Listener
}

// NewManager creates a Manager in the Unresolved state.
func NewManager() *Manager {
	metrics.SessionState.Set(float64(StateUnresolved))
	return &Manager{state: StateUnresolved}
}

// Subscribe registers a listener for identity-changed events. Registration
// happens once at process start; there is no unsubscribe before teardown.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Current returns the current state and identity. Identity is nil unless
// the state is StateAuthenticated.
func (m *Manager) Current() (State, *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.identity
}

// Loading reports whether the initial auth state is still unresolved.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateUnresolved
}

// Resolve delivers the first backend notification. It transitions
// Unresolved to Anonymous (identity == nil) or Authenticated exactly once;
// later calls are ignored. Login and logout never bring the state back to
// Unresolved.
func (m *Manager) Resolve(identity *Identity) {
	m.mu.Lock()
	if m.state != StateUnresolved {
		m.mu.Unlock()
		return
	}
	m.apply(identity)
	listeners, ev := m.snapshotLocked()
	m.mu.Unlock()

	dispatch(listeners, ev)
}

// SetAuthenticated records a successful login or signup.
func (m *Manager) SetAuthenticated(identity Identity) {
	m.mu.Lock()
	m.apply(&identity)
	listeners, ev := m.snapshotLocked()
	m.mu.Unlock()

	dispatch(listeners, ev)
}

// SetAnonymous records a logout or external session expiry.
func (m *Manager) SetAnonymous() {
	m.mu.Lock()
	m.apply(nil)
	listeners, ev := m.snapshotLocked()
	m.mu.Unlock()

	dispatch(listeners, ev)
}

// apply mutates state under the lock held by the caller.
func (m *Manager) apply(identity *Identity) {
	if identity != nil {
		m.state = StateAuthenticated
		m.identity = identity
	} else {
		m.state = StateAnonymous
		m.identity = nil
	}
	metrics.SessionState.Set(float64(m.state))
}

func (m *Manager) snapshotLocked() ([]Listener, Event) {
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	return listeners, Event{State: m.state, Identity: m.identity}
}

// dispatch runs outside the lock so listeners may read Manager state.
func dispatch(listeners []Listener, ev Event) {
	for _, l := range listeners {
		l(ev)
	}
}
