// Package jsonstore provides flat-file persistence for the clinic API.
// Each collection lives in its own JSON document of the form
// {"<name>": [ {...}, {...} ]}, read and rewritten wholesale per operation.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Record is a free-form JSON object with a numeric "id" field.
type Record = map[string]interface{}

// Store owns a directory of JSON documents, one per collection.
// Access to each document is serialized through a per-collection mutex so
// concurrent read-modify-write cycles cannot interleave.
type Store struct {
	dir    string
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at dir. The directory is created if missing.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Lock acquires the mutex for the named collection and returns its release
// function. Repository operations hold it across the full load-persist cycle.
func (s *Store) Lock(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads the named document and returns its record array. A missing or
// malformed file yields an empty array: persist always rewrites the full set,
// so the document heals on the next write.
func (s *Store) Load(name string) []Record {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("collection", name).Msg("read document failed, treating as empty")
		}
		return []Record{}
	}

	var doc map[string][]Record
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn().Err(err).Str("collection", name).Msg("malformed document, treating as empty")
		return []Record{}
	}

	records, ok := doc[name]
	if !ok || records == nil {
		return []Record{}
	}
	return records
}

// Persist writes the full record array for the named document. The document is
// written to a temp file in the same directory and renamed into place, so a
// concurrent reader never observes a half-written file.
func (s *Store) Persist(name string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.MarshalIndent(map[string][]Record{name: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s into place: %w", name, err)
	}
	return nil
}
