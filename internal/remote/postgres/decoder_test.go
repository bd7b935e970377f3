package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatherhub/event-catalog-service/internal/catalog"
	"github.com/gatherhub/event-catalog-service/internal/domain"
)

func TestDecodeChange_Insert(t *testing.T) {
	payload := `{
		"op": "INSERT",
		"record": {
			"id": "evt-1",
			"title": "Tech Talk",
			"description": "Distributed systems",
			"date": "2025-06-01T18:00:00+00:00",
			"location": "Berlin",
			"category": "Conference",
			"image_url": "https://example.com/a.png",
			"price": 12.5,
			"max_attendees": 100,
			"organizer_id": "org-1",
			"created_at": "2025-05-01T12:00:00+00:00",
			"updated_at": "2025-05-01T12:00:00+00:00"
		}
	}`

	event, err := DecodeChange([]byte(payload))

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeInsert, event.Op)
	assert.Equal(t, "evt-1", event.ID)
	assert.NotNil(t, event.Record)
	assert.Equal(t, "Tech Talk", event.Record.Title)
	assert.Equal(t, 12.5, event.Record.Price)
	if assert.NotNil(t, event.Record.MaxAttendees) {
		assert.Equal(t, 100, *event.Record.MaxAttendees)
	}
}

func TestDecodeChange_UpdateTracksPresentFieldsOnly(t *testing.T) {
	payload := `{"op": "UPDATE", "record": {"id": "evt-1", "price": 25}}`

	event, err := DecodeChange([]byte(payload))

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeUpdate, event.Op)
	assert.Equal(t, "evt-1", event.ID)
	if assert.NotNil(t, event.Patch.Price) {
		assert.Equal(t, 25.0, *event.Patch.Price)
	}
	assert.Nil(t, event.Patch.Title)
	assert.Nil(t, event.Patch.Description)
	assert.Nil(t, event.Patch.MaxAttendees)
	assert.False(t, event.Patch.MaxAttendeesSet)
	assert.False(t, event.Patch.ImageURLSet)
}

func TestDecodeChange_UpdateNullOnRequiredFieldIgnored(t *testing.T) {
	payload := `{"op": "UPDATE", "record": {"id": "evt-1", "title": null, "location": "Online"}}`

	event, err := DecodeChange([]byte(payload))

	assert.NoError(t, err)
	assert.Nil(t, event.Patch.Title)
	if assert.NotNil(t, event.Patch.Location) {
		assert.Equal(t, "Online", *event.Patch.Location)
	}
}

func TestDecodeChange_UpdateNullClearsNullableFields(t *testing.T) {
	payload := `{"op": "UPDATE", "record": {"id": "evt-1", "image_url": null, "max_attendees": null}}`

	event, err := DecodeChange([]byte(payload))

	assert.NoError(t, err)
	assert.True(t, event.Patch.ImageURLSet)
	assert.Nil(t, event.Patch.ImageURL)
	assert.True(t, event.Patch.MaxAttendeesSet)
	assert.Nil(t, event.Patch.MaxAttendees)
}

func TestDecodeChange_NullCapacityClearsMirroredRecord(t *testing.T) {
	store := catalog.NewStore()
	max := 10
	store.Initialize([]domain.EventRecord{{ID: "evt-1", Title: "Tech Talk", MaxAttendees: &max}})

	// Full-row payload from the trigger after the organizer removed the cap.
	payload := `{"op": "UPDATE", "record": {"id": "evt-1", "title": "Tech Talk", "max_attendees": null}}`
	event, err := DecodeChange([]byte(payload))
	assert.NoError(t, err)
	assert.True(t, store.ApplyChange(*event))

	record, ok := store.Get("evt-1")
	assert.True(t, ok)
	assert.Nil(t, record.MaxAttendees)
}

func TestDecodeChange_Delete(t *testing.T) {
	payload := `{"op": "DELETE", "old": {"id": "evt-9"}}`

	event, err := DecodeChange([]byte(payload))

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeDelete, event.Op)
	assert.Equal(t, "evt-9", event.ID)
	assert.Nil(t, event.Record)
	assert.Nil(t, event.Patch)
}

func TestDecodeChange_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"op": "INSERT", "record":`,
		"unknown op":        `{"op": "TRUNCATE"}`,
		"insert no record":  `{"op": "INSERT"}`,
		"insert no id":      `{"op": "INSERT", "record": {"title": "x"}}`,
		"update no record":  `{"op": "UPDATE"}`,
		"update no id":      `{"op": "UPDATE", "record": {"price": 1}}`,
		"delete no old row": `{"op": "DELETE"}`,
		"delete no id":      `{"op": "DELETE", "old": {}}`,
		"bad field type":    `{"op": "UPDATE", "record": {"id": "evt-1", "price": "abc"}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			event, err := DecodeChange([]byte(payload))
			assert.Error(t, err)
			assert.Nil(t, event)
		})
	}
}
