package service

import (
	"context"

	"github.com/gatherhub/event-catalog-service/internal/coordinator"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/dto"
)

// CatalogServicer defines the interface for catalog service operations
type CatalogServicer interface {
	Browse(req *dto.BrowseEventsRequest) *dto.CatalogResponse
	GetEvent(ctx context.Context, id string) (*domain.EventRecord, error)
	CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*domain.EventRecord, error)
	UpdateEvent(ctx context.Context, userID, id string, req *dto.UpdateEventRequest) (*domain.EventRecord, error)
	DeleteEvent(ctx context.Context, userID, id string) error
	Register(ctx context.Context, userID, eventID string, req *dto.RegisterRequest) (*domain.Registration, error)
	MyEvents(ctx context.Context, userID string) (*dto.MyEventsResponse, error)
}

// CatalogView is the slice of the coordinator the service reads from.
type CatalogView interface {
	CurrentView() coordinator.View
	Snapshot() []domain.EventRecord
	Get(id string) (domain.EventRecord, bool)
}

// TicketCache caches registered-ticket totals per event. Implementations
// are fail-open: a miss or error just sends the caller to the store.
type TicketCache interface {
	GetTotal(ctx context.Context, eventID string) (int, bool)
	SetTotal(ctx context.Context, eventID string, total int)
	Invalidate(ctx context.Context, eventID string)
}
