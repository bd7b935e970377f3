package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

const eventColumns = `id, title, description, date, location, category,
	COALESCE(image_url, ''), price, max_attendees, organizer_id, created_at, updated_at`

// Store implements remote.EventStore against Postgres. The notify trigger
// installed by InitSchema turns every committed row change into a change
// event on the feed channel, so writes made here come back through the
// mirror without any extra bookkeeping.
type Store struct {
	client *Client
	log    *zap.Logger
}

// NewStore creates a new Postgres-backed event store.
func NewStore(client *Client, log *zap.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
	}
}

// InitSchema creates the tables and the change-notify trigger. Timestamps
// are timestamptz so row_to_json payloads carry an offset and round-trip
// through encoding/json.
func (s *Store) InitSchema(ctx context.Context, channel string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			location TEXT NOT NULL,
			category TEXT NOT NULL,
			image_url TEXT,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			max_attendees INTEGER,
			organizer_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			ticket_quantity INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (event_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC)`,
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_catalog_change() RETURNS trigger AS $$
		BEGIN
			IF TG_OP = 'DELETE' THEN
				PERFORM pg_notify('%s',
					json_build_object('op', TG_OP, 'old', json_build_object('id', OLD.id))::text);
				RETURN OLD;
			END IF;
			PERFORM pg_notify('%s',
				json_build_object('op', TG_OP, 'record', row_to_json(NEW))::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`, channel, channel),
		`DROP TRIGGER IF EXISTS events_notify_change ON events`,
		`CREATE TRIGGER events_notify_change
			AFTER INSERT OR UPDATE OR DELETE ON events
			FOR EACH ROW EXECUTE FUNCTION notify_catalog_change()`,
	}

	for _, stmt := range statements {
		if _, err := s.client.Pool().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	s.log.Info("Postgres schema initialized successfully")
	return nil
}

// FetchAll returns every event, newest created_at first.
func (s *Store) FetchAll(ctx context.Context) ([]domain.EventRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY created_at DESC`, eventColumns)

	rows, err := s.client.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer rows.Close()

	records := make([]domain.EventRecord, 0)
	for rows.Next() {
		record, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return records, nil
}

// GetEvent returns a single event by id, or nil when it does not exist.
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.EventRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	record, err := scanEvent(s.client.Pool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// InsertEvent creates a new event row.
func (s *Store) InsertEvent(ctx context.Context, record *domain.EventRecord) error {
	query := `INSERT INTO events
		(id, title, description, date, location, category, image_url, price,
		 max_attendees, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)`

	_, err := s.client.Pool().Exec(ctx, query,
		record.ID,
		record.Title,
		record.Description,
		record.Date,
		record.Location,
		record.Category,
		record.ImageURL,
		record.Price,
		record.MaxAttendees,
		record.OrganizerID,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// UpdateEvent updates an event scoped to its organizer. The row count lets
// callers distinguish not-found/not-owner from success.
func (s *Store) UpdateEvent(ctx context.Context, organizerID string, record *domain.EventRecord) (int64, error) {
	query := `UPDATE events SET
			title = $1, description = $2, date = $3, location = $4, category = $5,
			image_url = NULLIF($6, ''), price = $7, max_attendees = $8, updated_at = $9
		WHERE id = $10 AND organizer_id = $11`

	tag, err := s.client.Pool().Exec(ctx, query,
		record.Title,
		record.Description,
		record.Date,
		record.Location,
		record.Category,
		record.ImageURL,
		record.Price,
		record.MaxAttendees,
		record.UpdatedAt,
		record.ID,
		organizerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update event: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteEvent removes an event scoped to its organizer.
func (s *Store) DeleteEvent(ctx context.Context, organizerID, id string) (int64, error) {
	tag, err := s.client.Pool().Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND organizer_id = $2`, id, organizerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete event: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertRegistration records tickets for a user.
func (s *Store) InsertRegistration(ctx context.Context, reg *domain.Registration) error {
	query := `INSERT INTO registrations (id, event_id, user_id, ticket_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.client.Pool().Exec(ctx, query,
		reg.ID, reg.EventID, reg.UserID, reg.TicketQuantity, reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// RegistrationExists reports whether the user already registered for the event.
func (s *Store) RegistrationExists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := s.client.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return exists, nil
}

// SumTickets returns the total tickets registered for the event.
func (s *Store) SumTickets(ctx context.Context, eventID string) (int, error) {
	var total int
	err := s.client.Pool().QueryRow(ctx,
		`SELECT COALESCE(SUM(ticket_quantity), 0) FROM registrations WHERE event_id = $1`,
		eventID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum tickets: %w", err)
	}
	return total, nil
}

// EventsByOrganizer returns events created by the user, newest first.
func (s *Store) EventsByOrganizer(ctx context.Context, organizerID string) ([]domain.EventRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`, eventColumns)
	return s.queryEvents(ctx, query, organizerID)
}

// EventsByRegistrant returns events the user registered for, newest first.
func (s *Store) EventsByRegistrant(ctx context.Context, userID string) ([]domain.EventRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM events
		WHERE id IN (SELECT event_id FROM registrations WHERE user_id = $1)
		ORDER BY created_at DESC`, eventColumns)
	return s.queryEvents(ctx, query, userID)
}

// Ping checks the connection to the system of record.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Pool().Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.client.Close()
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]domain.EventRecord, error) {
	rows, err := s.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	records := make([]domain.EventRecord, 0)
	for rows.Next() {
		record, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return records, nil
}

func scanEvent(row pgx.Row) (domain.EventRecord, error) {
	var record domain.EventRecord
	err := row.Scan(
		&record.ID,
		&record.Title,
		&record.Description,
		&record.Date,
		&record.Location,
		&record.Category,
		&record.ImageURL,
		&record.Price,
		&record.MaxAttendees,
		&record.OrganizerID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("failed to scan event: %w", err)
	}
	return record, nil
}
