package api

import "sync"

// MemoryTokenStore is an in-memory TokenStore for ephemeral sessions
// and tests. Writes are serialized; the logical last-write-wins
// invariant of the durable store is preserved.
type MemoryTokenStore struct {
	mu   sync.Mutex
	pair TokenPair
}

var _ TokenStore = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Access returns the stored access token, or "" if absent.
func (s *MemoryTokenStore) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.AccessToken
}

// Refresh returns the stored refresh token, or "" if absent.
func (s *MemoryTokenStore) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.RefreshToken
}

// Store persists both tokens of the pair.
func (s *MemoryTokenStore) Store(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

// Clear removes both tokens.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	return nil
}
