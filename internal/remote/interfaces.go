package remote

import (
	"context"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

// EventStore defines the operations this service needs from the system of
// record. FetchAll feeds the catalog mirror; the write operations originate
// the change events the mirror reacts to.
type EventStore interface {
	// FetchAll returns every event, newest created_at first.
	FetchAll(ctx context.Context) ([]domain.EventRecord, error)

	// GetEvent returns a single event by id.
	GetEvent(ctx context.Context, id string) (*domain.EventRecord, error)

	// InsertEvent creates a new event row.
	InsertEvent(ctx context.Context, record *domain.EventRecord) error

	// UpdateEvent updates an event owned by organizerID. Returns the number
	// of rows affected so callers can distinguish not-found/not-owner.
	UpdateEvent(ctx context.Context, organizerID string, record *domain.EventRecord) (int64, error)

	// DeleteEvent removes an event owned by organizerID.
	DeleteEvent(ctx context.Context, organizerID, id string) (int64, error)

	// InsertRegistration records tickets for a user.
	InsertRegistration(ctx context.Context, reg *domain.Registration) error

	// RegistrationExists reports whether the user already registered for the
	// event.
	RegistrationExists(ctx context.Context, eventID, userID string) (bool, error)

	// SumTickets returns the total tickets registered for the event.
	SumTickets(ctx context.Context, eventID string) (int, error)

	// EventsByOrganizer returns events created by the user, newest first.
	EventsByOrganizer(ctx context.Context, organizerID string) ([]domain.EventRecord, error)

	// EventsByRegistrant returns events the user registered for, newest first.
	EventsByRegistrant(ctx context.Context, userID string) ([]domain.EventRecord, error)

	// Ping checks the connection to the system of record.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close()
}

// Subscription is a live change-event stream. Events() delivers committed
// changes in commit order until Close is called or the subscribe context is
// cancelled, at which point the channel is closed.
type Subscription interface {
	Events() <-chan domain.ChangeEvent
	Close() error
}

// ChangeFeed opens change-event subscriptions against the system of record.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (Subscription, error)
}
