package session

import (
	"errors"
	"sync"
)

// Store errors.
var (
	ErrRecordNotFound = errors.New("session record not found")
)

// Store is the persistence boundary for pairing records. Hosts provide
// their own implementation (file, keychain, database); the protocol core
// only reads and writes through this interface.
type Store interface {
	// Save stores or replaces a record.
	Save(rec *Record) error

	// Load returns the record with the given ID.
	Load(id string) (*Record, error)

	// List returns all stored records.
	List() ([]*Record, error)

	// Delete removes the record with the given ID.
	Delete(id string) error
}

// MemoryStore is an in-memory implementation of the Store interface.
// This is primarily useful for testing and hosts that don't persist
// pairings across restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates a new in-memory session record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Save stores or replaces a record.
func (s *MemoryStore) Save(rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// Load returns the record with the given ID.
func (s *MemoryStore) Load(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return nil, ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

// List returns all stored records.
func (s *MemoryStore) List() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
