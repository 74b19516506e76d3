package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RevocationStore remembers revoked session token IDs until their natural
// expiry, so logout invalidates a JWT before it times out on its own.
// Entries evict themselves once the token would have expired anyway.
type RevocationStore struct {
	cache *gocache.Cache
}

// NewRevocationStore creates an empty revocation store
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Revoke marks a token ID as revoked for the remaining token lifetime.
// Tokens at or past their natural expiry still get a short hold so clock
// skew between issuer and validator cannot resurrect them.
func (s *RevocationStore) Revoke(tokenID string, remaining time.Duration) {
	if tokenID == "" {
		return
	}
	if remaining < time.Minute {
		remaining = time.Minute
	}
	s.cache.Set(tokenID, struct{}{}, remaining)
}

// IsRevoked reports whether a token ID has been revoked
func (s *RevocationStore) IsRevoked(tokenID string) bool {
	if tokenID == "" {
		return false
	}
	_, found := s.cache.Get(tokenID)
	return found
}
