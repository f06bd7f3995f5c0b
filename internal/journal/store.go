package journal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Store abstracts journal persistence for testability.
type Store interface {
	Load() (*Journal, error)
	Save(*Journal) error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	File string
}

func NewFileStore(file string) *FileStore {
	return &FileStore{File: file}
}

// Load returns an empty journal when the file does not exist yet.
func (s *FileStore) Load() (*Journal, error) {
	f, err := os.Open(s.File)
	if errors.Is(err, fs.ErrNotExist) {
		return &Journal{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var j Journal
	if err := json.NewDecoder(f).Decode(&j); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &j, nil
}

func (s *FileStore) Save(j *Journal) error {
	f, err := os.Create(s.File)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	return f.Close()
}

// MemoryStore implements Store for testing (no disk I/O).
type MemoryStore struct {
	mu      sync.Mutex
	journal *Journal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (*Journal, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.journal == nil {
		return &Journal{}, nil
	}
	return clone(ms.journal), nil
}

func (ms *MemoryStore) Save(j *Journal) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.journal = clone(j)
	return nil
}

// clone copies j so callers cannot mutate stored records.
func clone(j *Journal) *Journal {
	cp := *j
	cp.Records = make([]Record, len(j.Records))
	copy(cp.Records, j.Records)
	return &cp
}
