package metadata

import "sync"

// Store holds the metadata currently served. It is nil until the first Set.
type Store struct {
	mu   sync.RWMutex
	meta *ImageMetadata
}

func NewStore(m *ImageMetadata) *Store {
	return &Store{meta: m}
}

// Get returns the current metadata and whether any has been loaded.
func (s *Store) Get() (*ImageMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta, s.meta != nil
}

// Set swaps in a new metadata document. Callers must not mutate m afterwards.
func (s *Store) Set(m *ImageMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = m
}
