package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

func testRecord(id, title, category string) domain.EventRecord {
	return domain.EventRecord{
		ID:          id,
		Title:       title,
		Description: "description of " + title,
		Date:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Berlin",
		Category:    category,
		Price:       10,
		OrganizerID: "org-1",
		CreatedAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func insertEvent(record domain.EventRecord) domain.ChangeEvent {
	return domain.ChangeEvent{Op: domain.ChangeInsert, ID: record.ID, Record: &record}
}

func deleteEvent(id string) domain.ChangeEvent {
	return domain.ChangeEvent{Op: domain.ChangeDelete, ID: id}
}

func TestStore_Initialize_ReplacesSnapshot(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("old", "Old", "Other")})

	store.Initialize([]domain.EventRecord{
		testRecord("1", "Tech Talk", "Conference"),
		testRecord("2", "Jazz Night", "Music Concert"),
	})

	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "1", snapshot[0].ID)
	assert.Equal(t, "2", snapshot[1].ID)
}

func TestStore_Insert_PrependsNewRecord(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	changed := store.ApplyChange(insertEvent(testRecord("2", "Art Fair", "Entertainment")))

	assert.True(t, changed)
	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "2", snapshot[0].ID)
	assert.Equal(t, "1", snapshot[1].ID)
}

func TestStore_Insert_DuplicateIDOverwrites(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	replacement := testRecord("1", "Tech Talk v2", "Conference")
	store.ApplyChange(insertEvent(replacement))

	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "Tech Talk v2", snapshot[0].Title)
}

func TestStore_Update_ShallowMergeKeepsAbsentFields(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	price := 25.0
	changed := store.ApplyChange(domain.ChangeEvent{
		Op:    domain.ChangeUpdate,
		ID:    "1",
		Patch: &domain.EventPatch{ID: "1", Price: &price},
	})

	assert.True(t, changed)
	snapshot := store.Snapshot()
	assert.Equal(t, 25.0, snapshot[0].Price)
	assert.Equal(t, "Tech Talk", snapshot[0].Title)
	assert.Equal(t, "Conference", snapshot[0].Category)
}

func TestStore_Update_PresentNullClearsNullableFields(t *testing.T) {
	store := NewStore()
	record := testRecord("1", "Tech Talk", "Conference")
	max := 10
	record.MaxAttendees = &max
	record.ImageURL = "https://example.com/a.png"
	store.Initialize([]domain.EventRecord{record})

	changed := store.ApplyChange(domain.ChangeEvent{
		Op:    domain.ChangeUpdate,
		ID:    "1",
		Patch: &domain.EventPatch{ID: "1", ImageURLSet: true, MaxAttendeesSet: true},
	})

	assert.True(t, changed)
	got, ok := store.Get("1")
	assert.True(t, ok)
	assert.Nil(t, got.MaxAttendees)
	assert.Empty(t, got.ImageURL)
	assert.Equal(t, "Tech Talk", got.Title)
}

func TestStore_Update_UnknownIDIsNoOp(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	title := "Ghost"
	changed := store.ApplyChange(domain.ChangeEvent{
		Op:    domain.ChangeUpdate,
		ID:    "missing",
		Patch: &domain.EventPatch{ID: "missing", Title: &title},
	})

	assert.False(t, changed)
	assert.Equal(t, "Tech Talk", store.Snapshot()[0].Title)
}

func TestStore_Delete_IsIdempotent(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{
		testRecord("1", "Tech Talk", "Conference"),
		testRecord("2", "Art Fair", "Entertainment"),
	})

	assert.True(t, store.ApplyChange(deleteEvent("2")))
	assert.False(t, store.ApplyChange(deleteEvent("2")))

	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "1", snapshot[0].ID)
}

func TestStore_ApplyChange_NeverProducesDuplicateIDs(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	// Arbitrary event sequence hammering the same small id space.
	price := 5.0
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("%d", i%4)
		store.ApplyChange(insertEvent(testRecord(id, "Event "+id, "Other")))
		store.ApplyChange(domain.ChangeEvent{
			Op:    domain.ChangeUpdate,
			ID:    id,
			Patch: &domain.EventPatch{ID: id, Price: &price},
		})
		if i%3 == 0 {
			store.ApplyChange(deleteEvent(id))
		}
	}

	seen := make(map[string]bool)
	for _, record := range store.Snapshot() {
		assert.False(t, seen[record.ID], "duplicate id %s in snapshot", record.ID)
		seen[record.ID] = true
	}
}

func TestStore_ApplyChange_MalformedEventsDegradeToNoOps(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	assert.False(t, store.ApplyChange(domain.ChangeEvent{Op: domain.ChangeInsert}))
	assert.False(t, store.ApplyChange(domain.ChangeEvent{Op: domain.ChangeUpdate, ID: "1"}))
	assert.False(t, store.ApplyChange(domain.ChangeEvent{Op: "TRUNCATE", ID: "1"}))
	assert.Equal(t, 1, store.Len())
}

func TestStore_Snapshot_IsDefensiveCopy(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	snapshot := store.Snapshot()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "Tech Talk", store.Snapshot()[0].Title)
}

func TestStore_Scenario_InsertUpdateDelete(t *testing.T) {
	store := NewStore()
	store.Initialize([]domain.EventRecord{testRecord("1", "Tech Talk", "Conference")})

	store.ApplyChange(insertEvent(testRecord("2", "Art Fair", "Entertainment")))
	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "2", snapshot[0].ID)

	price := 25.0
	store.ApplyChange(domain.ChangeEvent{
		Op:    domain.ChangeUpdate,
		ID:    "1",
		Patch: &domain.EventPatch{ID: "1", Price: &price},
	})
	record, ok := store.Get("1")
	assert.True(t, ok)
	assert.Equal(t, 25.0, record.Price)
	assert.Equal(t, "Tech Talk", record.Title)

	store.ApplyChange(deleteEvent("2"))
	snapshot = store.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "1", snapshot[0].ID)
}
