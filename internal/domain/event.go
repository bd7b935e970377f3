package domain

import "time"

// DefaultImageURL is used by consumers when a record carries no image.
const DefaultImageURL = "https://images.unsplash.com/photo-1540575467063-178a50c2df87"

// SuggestedCategories is advisory only; category values are free text and
// are not validated against this list.
var SuggestedCategories = []string{
	"Conference",
	"Workshop",
	"Seminar",
	"Webinar",
	"Music Concert",
	"Education",
	"Networking Event",
	"Other",
}

// EventRecord is a row of the event catalog as held by the system of record.
// ID and OrganizerID are immutable once created.
type EventRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url,omitempty"`
	Price        float64   `json:"price"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	OrganizerID  string    `json:"organizer_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventPatch carries the mutable fields of an update change event. A nil
// field means the key was absent from the wire payload and must not be
// merged. ImageURL and MaxAttendees map to nullable columns, so their key
// presence is tracked separately: a Set flag with a nil value means the
// payload carried an explicit null and the merge must clear the field. ID
// identifies the record; it is never merged itself.
type EventPatch struct {
	ID              string     `json:"id"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Category        *string    `json:"category,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	ImageURLSet     bool       `json:"-"`
	Price           *float64   `json:"price,omitempty"`
	MaxAttendees    *int       `json:"max_attendees,omitempty"`
	MaxAttendeesSet bool       `json:"-"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ChangeOp tags the variant of a ChangeEvent.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
)

// ChangeEvent is a single committed mutation reported by the change feed.
// Record is set for inserts, Patch for updates; deletes carry only ID.
type ChangeEvent struct {
	Op     ChangeOp
	ID     string
	Record *EventRecord
	Patch  *EventPatch
}

// FilterCriteria narrows the visible subset of the catalog. A nil Category
// means no category filter; an empty Query means no text filter.
type FilterCriteria struct {
	Query    string
	Category *string
}

// Registration records a user's tickets for an event.
type Registration struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	TicketQuantity int       `json:"ticket_quantity"`
	CreatedAt      time.Time `json:"created_at"`
}
