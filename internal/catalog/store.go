package catalog

import (
	"sync"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

// Store is the local mirror of the remote event catalog. Records are held
// newest-created first with no duplicate identifiers. The store only mirrors
// what the change feed reports; it never originates mutations of its own.
//
// All mutations and reads are serialized behind a mutex so a Snapshot never
// observes a partially-applied change.
type Store struct {
	mu      sync.Mutex
	records []domain.EventRecord
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// Initialize replaces the entire snapshot with the result of a full fetch.
// The fetch is authoritative: any change events applied before it completes
// are overwritten here.
func (s *Store) Initialize(records []domain.EventRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]domain.EventRecord, len(records))
	copy(s.records, records)
}

// ApplyChange mutates the snapshot according to the change variant. It never
// fails: anomalous events (insert for an existing id, update for an unknown
// id, delete for an absent id) degrade to an overwrite or a no-op, because
// the store cannot validate against the remote source of truth and must stay
// available. The returned bool reports whether the snapshot changed.
func (s *Store) ApplyChange(event domain.ChangeEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Op {
	case domain.ChangeInsert:
		if event.Record == nil {
			return false
		}
		return s.insert(*event.Record)
	case domain.ChangeUpdate:
		if event.Patch == nil {
			return false
		}
		return s.merge(*event.Patch)
	case domain.ChangeDelete:
		return s.remove(event.ID)
	}
	return false
}

// insert prepends the record, keeping the newest-first convention. A record
// with the same id is overwritten in place rather than duplicated.
func (s *Store) insert(record domain.EventRecord) bool {
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return true
		}
	}
	s.records = append([]domain.EventRecord{record}, s.records...)
	return true
}

// merge applies the present patch fields onto the matching record. An update
// for an unknown id cannot be materialized without losing data, so it is
// dropped.
func (s *Store) merge(patch domain.EventPatch) bool {
	for i := range s.records {
		if s.records[i].ID != patch.ID {
			continue
		}
		r := &s.records[i]
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Description != nil {
			r.Description = *patch.Description
		}
		if patch.Date != nil {
			r.Date = *patch.Date
		}
		if patch.Location != nil {
			r.Location = *patch.Location
		}
		if patch.Category != nil {
			r.Category = *patch.Category
		}
		if patch.ImageURLSet {
			if patch.ImageURL != nil {
				r.ImageURL = *patch.ImageURL
			} else {
				r.ImageURL = ""
			}
		}
		if patch.Price != nil {
			r.Price = *patch.Price
		}
		if patch.MaxAttendeesSet {
			r.MaxAttendees = patch.MaxAttendees
		}
		if patch.UpdatedAt != nil {
			r.UpdatedAt = *patch.UpdatedAt
		}
		return true
	}
	return false
}

func (s *Store) remove(id string) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a defensive copy of the current records. Callers may hold
// and read it freely; it never changes under them.
func (s *Store) Snapshot() []domain.EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.EventRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records currently mirrored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Get returns the record with the given id, if mirrored.
func (s *Store) Get(id string) (domain.EventRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], true
		}
	}
	return domain.EventRecord{}, false
}
