package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

// changePayload is the wire envelope produced by the notify trigger.
type changePayload struct {
	Op     string          `json:"op"`
	Record json.RawMessage `json:"record"`
	Old    json.RawMessage `json:"old"`
}

// DecodeChange parses a notify payload into a ChangeEvent. Updates are
// decoded with key-presence tracking so the mirror can merge exactly the
// fields the payload carried. Null on a non-nullable column is ignored; null
// on image_url or max_attendees is recorded so the merge clears the field.
func DecodeChange(body []byte) (*domain.ChangeEvent, error) {
	var payload changePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal change payload: %w", err)
	}

	switch domain.ChangeOp(payload.Op) {
	case domain.ChangeInsert:
		record, err := decodeRecord(payload.Record)
		if err != nil {
			return nil, err
		}
		return &domain.ChangeEvent{Op: domain.ChangeInsert, ID: record.ID, Record: record}, nil

	case domain.ChangeUpdate:
		patch, err := decodePatch(payload.Record)
		if err != nil {
			return nil, err
		}
		return &domain.ChangeEvent{Op: domain.ChangeUpdate, ID: patch.ID, Patch: patch}, nil

	case domain.ChangeDelete:
		id, err := decodeID(payload.Old)
		if err != nil {
			return nil, err
		}
		return &domain.ChangeEvent{Op: domain.ChangeDelete, ID: id}, nil
	}

	return nil, fmt.Errorf("unknown change op %q", payload.Op)
}

func decodeRecord(raw json.RawMessage) (*domain.EventRecord, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("insert payload has no record")
	}
	var record domain.EventRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	if record.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}
	return &record, nil
}

func decodePatch(raw json.RawMessage) (*domain.EventPatch, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("update payload has no record")
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update fields: %w", err)
	}

	var patch domain.EventPatch
	if err := decodeField(fields, "id", &patch.ID); err != nil {
		return nil, err
	}
	if patch.ID == "" {
		return nil, fmt.Errorf("update has no id")
	}

	if err := decodeOptional(fields, "title", &patch.Title); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "description", &patch.Description); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "date", &patch.Date); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "location", &patch.Location); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "category", &patch.Category); err != nil {
		return nil, err
	}
	if err := decodeNullable(fields, "image_url", &patch.ImageURL, &patch.ImageURLSet); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "price", &patch.Price); err != nil {
		return nil, err
	}
	if err := decodeNullable(fields, "max_attendees", &patch.MaxAttendees, &patch.MaxAttendeesSet); err != nil {
		return nil, err
	}
	if err := decodeOptional(fields, "updated_at", &patch.UpdatedAt); err != nil {
		return nil, err
	}

	return &patch, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("delete payload has no old row")
	}
	var old struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &old); err != nil {
		return "", fmt.Errorf("failed to unmarshal old row: %w", err)
	}
	if old.ID == "" {
		return "", fmt.Errorf("old row has no id")
	}
	return old.ID, nil
}

func decodeField(fields map[string]json.RawMessage, key string, out any) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal field %q: %w", key, err)
	}
	return nil
}

// decodeOptional sets *out only when the key is present and non-null.
func decodeOptional[T any](fields map[string]json.RawMessage, key string, out **T) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal field %q: %w", key, err)
	}
	*out = value
	return nil
}

// decodeNullable is decodeOptional for nullable columns: set reports key
// presence, and a present null leaves *out nil so the merge clears the value.
func decodeNullable[T any](fields map[string]json.RawMessage, key string, out **T, set *bool) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	*set = true
	if isNull(raw) {
		return nil
	}
	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal field %q: %w", key, err)
	}
	*out = value
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
