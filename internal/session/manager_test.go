package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
)

func TestManager_StartsUnresolved(t *testing.T) {
	m := session.NewManager()

	state, identity := m.Current()
	assert.Equal(t, session.StateUnresolved, state)
	assert.Nil(t, identity)
	assert.True(t, m.Loading())
}

func TestManager_ResolveAnonymous(t *testing.T) {
	m := session.NewManager()

	m.Resolve(nil)

	state, identity := m.Current()
	assert.Equal(t, session.StateAnonymous, state)
	assert.Nil(t, identity)
	assert.False(t, m.Loading())
}

func TestManager_ResolveAuthenticated(t *testing.T) {
	m := session.NewManager()

	m.Resolve(&session.Identity{UserID: "user-1", Email: "admin@school.edu"})

	state, identity := m.Current()
	assert.Equal(t, session.StateAuthenticated, state)
	assert.Equal(t, "user-1", identity.UserID)
}

func TestManager_ResolveHappensExactlyOnce(t *testing.T) {
	m := session.NewManager()

	m.Resolve(nil)
	// A second resolution is ignored, whatever it carries
	m.Resolve(&session.Identity{UserID: "user-1"})

	state, identity := m.Current()
	assert.Equal(t, session.StateAnonymous, state)
	assert.Nil(t, identity)
}

func TestManager_LoginThenLogout(t *testing.T) {
	m := session.NewManager()
	m.Resolve(nil)

	m.SetAuthenticated(session.Identity{UserID: "user-1", Email: "admin@school.edu"})
	state, identity := m.Current()
	assert.Equal(t, session.StateAuthenticated, state)
	assert.Equal(t, "admin@school.edu", identity.Email)

	m.SetAnonymous()
	state, identity = m.Current()
	assert.Equal(t, session.StateAnonymous, state)
	assert.Nil(t, identity)

	// Logout never brings the state back to unresolved
	assert.False(t, m.Loading())
}

func TestManager_ListenersReceiveEveryTransition(t *testing.T) {
	m := session.NewManager()

	var events []session.Event
	m.Subscribe(func(ev session.Event) {
		events = append(events, ev)
	})

	m.Resolve(nil)
	m.SetAuthenticated(session.Identity{UserID: "user-1"})
	m.SetAnonymous()

	assert.Len(t, events, 3)
	assert.Equal(t, session.StateAnonymous, events[0].State)
	assert.Nil(t, events[0].Identity)
	assert.Equal(t, session.StateAuthenticated, events[1].State)
	assert.Equal(t, "user-1", events[1].Identity.UserID)
	assert.Equal(t, session.StateAnonymous, events[2].State)
}

func TestManager_ListenerMayReadState(t *testing.T) {
	m := session.NewManager()

	// Listeners run outside the manager lock, so reading back is safe
	var observed session.State
	m.Subscribe(func(ev session.Event) {
		observed, _ = m.Current()
	})

	m.Resolve(&session.Identity{UserID: "user-1"})
	assert.Equal(t, session.StateAuthenticated, observed)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unresolved", session.StateUnresolved.String())
	assert.Equal(t, "anonymous", session.StateAnonymous.String())
	assert.Equal(t, "authenticated", session.StateAuthenticated.String())
}

func TestRevocationStore(t *testing.T) {
	store := session.NewRevocationStore()

	assert.False(t, store.IsRevoked("token-1"))

	store.Revoke("token-1", time.Minute)
	assert.True(t, store.IsRevoked("token-1"))
	assert.False(t, store.IsRevoked("token-2"))
}

func TestRevocationStore_ExpiredTokenStaysRevokedBriefly(t *testing.T) {
	store := session.NewRevocationStore()

	// A token at (or past) its natural expiry still gets a short hold so
	// clock skew cannot resurrect it
	store.Revoke("token-1", 0)
	assert.True(t, store.IsRevoked("token-1"))
}
