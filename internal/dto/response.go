package dto

import "github.com/gatherhub/event-catalog-service/internal/domain"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"title is required"`
}

// CatalogResponse is the browse read model: the lifecycle status of the
// mirror, its initial-load error if any, and the filtered events.
type CatalogResponse struct {
	Status string               `json:"status" example:"ready"`
	Error  string               `json:"error,omitempty" example:""`
	Count  int                  `json:"count" example:"2"`
	Events []domain.EventRecord `json:"events"`
}

// EventResponse wraps a single event.
type EventResponse struct {
	Event domain.EventRecord `json:"event"`
}

// RegistrationResponse wraps a created registration.
type RegistrationResponse struct {
	Registration domain.Registration `json:"registration"`
	TotalAmount  float64             `json:"total_amount" example:"50.00"`
}

// CategoriesResponse lists the suggested event categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// MyEventsResponse lists the caller's created and registered events.
type MyEventsResponse struct {
	Created    []domain.EventRecord `json:"created"`
	Registered []domain.EventRecord `json:"registered"`
}
