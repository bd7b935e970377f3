package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/catalog"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/dto"
	"github.com/gatherhub/event-catalog-service/internal/remote"
)

var (
	// ErrNotFound covers both a missing event and an event not owned by the
	// caller; ownership failures are not distinguishable to the client.
	ErrNotFound = errors.New("event not found")

	// ErrValidation marks request payloads rejected by the service.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyRegistered is returned on a duplicate registration.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrCapacityExceeded is returned when the requested tickets do not fit
	// within the event's remaining capacity.
	ErrCapacityExceeded = errors.New("not enough tickets available")
)

// CatalogService implements CatalogServicer on top of the catalog mirror
// (reads) and the remote store (writes). Writes flow back into the mirror
// through the change feed; the service never mutates the mirror directly.
type CatalogService struct {
	store   remote.EventStore
	view    CatalogView
	tickets TicketCache
	log     *zap.Logger
}

// NewCatalogService creates a new catalog service. tickets may be nil, in
// which case capacity checks always go to the store.
func NewCatalogService(store remote.EventStore, view CatalogView, tickets TicketCache, log *zap.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		view:    view,
		tickets: tickets,
		log:     log,
	}
}

// Browse filters the mirrored catalog under the request criteria. The
// request criteria are independent of the coordinator's own active filter;
// browsing never disturbs other consumers of the mirror.
func (s *CatalogService) Browse(req *dto.BrowseEventsRequest) *dto.CatalogResponse {
	view := s.view.CurrentView()

	criteria := domain.FilterCriteria{Query: req.Query}
	if req.Category != "" {
		criteria.Category = &req.Category
	}

	events := withDefaultImages(catalog.Filter(s.view.Snapshot(), criteria))

	return &dto.CatalogResponse{
		Status: string(view.Status),
		Error:  view.Err,
		Count:  len(events),
		Events: events,
	}
}

// GetEvent serves a single event from the mirror, falling back to the
// system of record when the mirror does not hold it (not yet Ready, or the
// row raced ahead of the feed).
func (s *CatalogService) GetEvent(ctx context.Context, id string) (*domain.EventRecord, error) {
	if record, ok := s.view.Get(id); ok {
		record = withDefaultImage(record)
		return &record, nil
	}

	record, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	out := withDefaultImage(*record)
	return &out, nil
}

// CreateEvent validates the request and inserts the event. The mirror picks
// the new row up from the change feed.
func (s *CatalogService) CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*domain.EventRecord, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.EventRecord{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		Location:     req.Location,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		MaxAttendees: req.MaxAttendees,
		OrganizerID:  userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.InsertEvent(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", record.ID),
		zap.String("organizer_id", userID),
		zap.String("category", record.Category))

	created := withDefaultImage(*record)
	return &created, nil
}

// UpdateEvent applies a full-record update scoped to the organizer.
func (s *CatalogService) UpdateEvent(ctx context.Context, userID, id string, req *dto.UpdateEventRequest) (*domain.EventRecord, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	record := &domain.EventRecord{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		Location:     req.Location,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		MaxAttendees: req.MaxAttendees,
		UpdatedAt:    time.Now().UTC(),
	}

	affected, err := s.store.UpdateEvent(ctx, userID, record)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	s.log.Info("Event updated",
		zap.String("event_id", id),
		zap.String("organizer_id", userID))

	updated, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated event: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	out := withDefaultImage(*updated)
	return &out, nil
}

// DeleteEvent removes an event scoped to the organizer.
func (s *CatalogService) DeleteEvent(ctx context.Context, userID, id string) error {
	affected, err := s.store.DeleteEvent(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.log.Info("Event deleted",
		zap.String("event_id", id),
		zap.String("organizer_id", userID))

	return nil
}

// Register records tickets for the caller. Duplicate registrations are
// rejected, and when the event carries a capacity the requested quantity
// must fit within the remaining tickets.
func (s *CatalogService) Register(ctx context.Context, userID, eventID string, req *dto.RegisterRequest) (*domain.Registration, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.RegistrationExists(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	if event.MaxAttendees != nil {
		total, err := s.ticketTotal(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if total+req.TicketQuantity > *event.MaxAttendees {
			return nil, ErrCapacityExceeded
		}
	}

	registration := &domain.Registration{
		ID:             uuid.NewString(),
		EventID:        eventID,
		UserID:         userID,
		TicketQuantity: req.TicketQuantity,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.InsertRegistration(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	if s.tickets != nil {
		s.tickets.Invalidate(ctx, eventID)
	}

	s.log.Info("Registration created",
		zap.String("event_id", eventID),
		zap.String("user_id", userID),
		zap.Int("ticket_quantity", req.TicketQuantity))

	return registration, nil
}

// MyEvents returns the caller's created and registered events.
func (s *CatalogService) MyEvents(ctx context.Context, userID string) (*dto.MyEventsResponse, error) {
	created, err := s.store.EventsByOrganizer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created events: %w", err)
	}

	registered, err := s.store.EventsByRegistrant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered events: %w", err)
	}

	return &dto.MyEventsResponse{
		Created:    withDefaultImages(created),
		Registered: withDefaultImages(registered),
	}, nil
}

// ticketTotal reads the registered total through the cache when one is
// configured; cache failures fall through to the store.
func (s *CatalogService) ticketTotal(ctx context.Context, eventID string) (int, error) {
	if s.tickets != nil {
		if total, ok := s.tickets.GetTotal(ctx, eventID); ok {
			return total, nil
		}
	}

	total, err := s.store.SumTickets(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum tickets: %w", err)
	}

	if s.tickets != nil {
		s.tickets.SetTotal(ctx, eventID, total)
	}
	return total, nil
}

// withDefaultImage substitutes the stock image for records carrying none.
// Applied on the way out only; stored rows keep an empty image_url.
func withDefaultImage(record domain.EventRecord) domain.EventRecord {
	if record.ImageURL == "" {
		record.ImageURL = domain.DefaultImageURL
	}
	return record
}

func withDefaultImages(records []domain.EventRecord) []domain.EventRecord {
	out := make([]domain.EventRecord, len(records))
	for i, record := range records {
		out[i] = withDefaultImage(record)
	}
	return out
}

func parseEventDate(value string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be RFC 3339: %v", ErrValidation, err)
	}
	return date, nil
}
