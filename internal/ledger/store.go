// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// StoreSnapshot is an immutable view of the store at one revision.
type StoreSnapshot struct {
	Records  []models.Record
	Revision uint64
}

// RecordStore is the local mirror of the user's collection.
//
// The only way to change it is ReplaceAll with a full snapshot; readers never
// observe a mix of two snapshots. Every replace bumps Revision and signals
// Changes. Signals coalesce: a slow reader sees one pending signal, then
// reads the latest snapshot.
type RecordStore struct {
	mu       sync.RWMutex
	records  []models.Record
	byID     map[string]int
	revision uint64
	changes  chan struct{}
}

// NewRecordStore returns an empty store at revision 0.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		byID:    make(map[string]int),
		changes: make(chan struct{}, 1),
	}
}

// ReplaceAll installs records as the whole collection and returns the new
// revision. A nil slice empties the store. The slice is copied.
func (s *RecordStore) ReplaceAll(records []models.Record) uint64 {
	next := slices.Clone(records)
	index := make(map[string]int, len(next))
	for i, rec := range next {
		index[rec.ID] = i
	}

	s.mu.Lock()
	s.records = next
	s.byID = index
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}

	return rev
}

// Snapshot returns a copy of the current collection with its revision.
func (s *RecordStore) Snapshot() StoreSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreSnapshot{
		Records:  slices.Clone(s.records),
		Revision: s.revision,
	}
}

// Get looks a record up by id.
func (s *RecordStore) Get(id string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Revision returns the number of replaces so far.
func (s *RecordStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Changes delivers one signal per burst of replaces.
func (s *RecordStore) Changes() <-chan struct{} {
	return s.changes
}
