package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileVersion is the current version of the record file format.
const fileVersion = 1

// fileState is the on-disk layout: one JSON document holding every record.
type fileState struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Records []*Record `json:"records,omitempty"`
}

// FileStore persists session records to a single JSON file. Records hold
// only public key material, but the file is still written with owner-only
// permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed session record store at path. The file
// and its parent directory are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save stores or replaces a record.
func (s *FileStore) Save(rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range state.Records {
		if existing.ID == rec.ID {
			cp := *rec
			state.Records[i] = &cp
			replaced = true
			break
		}
	}
	if !replaced {
		cp := *rec
		state.Records = append(state.Records, &cp)
	}

	return s.write(state)
}

// Load returns the record with the given ID.
func (s *FileStore) Load(id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range state.Records {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrRecordNotFound
}

// List returns all stored records.
func (s *FileStore) List() ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]*Record, 0, len(state.Records))
	for _, rec := range state.Records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}

	for i, rec := range state.Records {
		if rec.ID == id {
			state.Records = append(state.Records[:i], state.Records[i+1:]...)
			return s.write(state)
		}
	}
	return ErrRecordNotFound
}

// load reads the state file. A missing file yields an empty state.
// Caller must hold s.mu.
func (s *FileStore) load() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &fileState{Version: fileVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// write persists the state file. Caller must hold s.mu.
func (s *FileStore) write(state *fileState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	state.Version = fileVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
