// Package staging holds the working set of records the user currently sees,
// whether or not they are durably persisted yet.
package staging

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gestdata/registrosgo/internal/registro"
)

// RejectedDraft pairs an invalid draft's position with the reason it was
// dropped during a bulk add.
type RejectedDraft struct {
	Index int
	Err   error
}

// Store is the staging cache. When opened with a snapshot path every
// mutation mirrors the full set to disk, so the working set survives a
// restart; with an empty path the store is purely transient.
type Store struct {
	mu      sync.Mutex
	records []registro.Record
	path    string
}

// Open creates a staging store. If path is non-empty and a snapshot exists
// there, the previous working set is restored; the second return value
// reports whether that happened.
func Open(path string) (*Store, bool, error) {
	s := &Store{path: path}
	if path == "" {
		return s, false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read staging snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, false, fmt.Errorf("failed to parse staging snapshot: %w", err)
	}
	return s, true, nil
}

// AddOne validates a draft, assigns it a temporary id and appends it.
// Display order is append order, newest last.
func (s *Store) AddOne(draft registro.Record) (registro.Record, error) {
	if err := draft.Validate(); err != nil {
		return registro.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := draft.WithDefaults()
	rec.ID = registro.NewTemporaryID()
	s.records = append(s.records, rec)

	if err := s.snapshot(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return registro.Record{}, err
	}
	return rec, nil
}

// AddMany appends the valid subset of drafts in their original order.
// Invalid drafts are reported, not fatal.
func (s *Store) AddMany(drafts []registro.Record) ([]registro.Record, []RejectedDraft, error) {
	var added []registro.Record
	var rejected []RejectedDraft

	for i, draft := range drafts {
		if err := draft.Validate(); err != nil {
			rejected = append(rejected, RejectedDraft{Index: i, Err: err})
			continue
		}
		rec := draft.WithDefaults()
		rec.ID = registro.NewTemporaryID()
		added = append(added, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.records)
	s.records = append(s.records, added...)
	if err := s.snapshot(); err != nil {
		s.records = s.records[:before]
		return nil, rejected, err
	}
	return added, rejected, nil
}

// Remove drops the record with the given id from the visible set. This is a
// local-only removal; durable deletion of authoritative records is the sync
// client's job. Returns whether a record was found.
func (s *Store) Remove(id registro.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, s.snapshot()
		}
	}
	return false, nil
}

// Clear empties the visible set and removes the durable snapshot
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove staging snapshot: %w", err)
	}
	return nil
}

// ReplaceAll swaps in a whole new set, used after reconciling with the store
func (s *Store) ReplaceAll(records []registro.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]registro.Record(nil), records...)
	return s.snapshot()
}

// Records returns a copy of the current working set in display order
func (s *Store) Records() []registro.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]registro.Record(nil), s.records...)
}

// Len returns the number of staged records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// snapshot mirrors the full set to disk. The write goes to a temp file
// first and is swapped in with a rename, so a reader never observes a
// partial set. Callers must hold s.mu.
func (s *Store) snapshot() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write staging snapshot: %w", err)
	}
	return os.Rename(tempPath, s.path)
}
