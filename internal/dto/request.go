package dto

// CreateEventRequest represents a create event request. Date is RFC 3339.
// Category is free text; the suggested list is advisory only.
type CreateEventRequest struct {
	Title        string  `json:"title" binding:"required" example:"Tech Talk"`
	Description  string  `json:"description" binding:"required" example:"An evening about distributed systems"`
	Date         string  `json:"date" binding:"required" example:"2025-06-01T18:00:00Z"`
	Location     string  `json:"location" binding:"required" example:"Berlin HQ"`
	Category     string  `json:"category" binding:"required" example:"Conference"`
	ImageURL     string  `json:"image_url" example:"https://example.com/banner.png"`
	Price        float64 `json:"price" binding:"gte=0" example:"25.00"`
	MaxAttendees *int    `json:"max_attendees" binding:"omitempty,gt=0" example:"100"`
}

// UpdateEventRequest represents a full-record event update. Identifier and
// organizer are taken from the path and auth context, never from the body.
type UpdateEventRequest struct {
	Title        string  `json:"title" binding:"required" example:"Tech Talk"`
	Description  string  `json:"description" binding:"required" example:"An evening about distributed systems"`
	Date         string  `json:"date" binding:"required" example:"2025-06-01T18:00:00Z"`
	Location     string  `json:"location" binding:"required" example:"Berlin HQ"`
	Category     string  `json:"category" binding:"required" example:"Conference"`
	ImageURL     string  `json:"image_url" example:"https://example.com/banner.png"`
	Price        float64 `json:"price" binding:"gte=0" example:"25.00"`
	MaxAttendees *int    `json:"max_attendees" binding:"omitempty,gt=0" example:"100"`
}

// RegisterRequest represents an event registration request.
type RegisterRequest struct {
	TicketQuantity int `json:"ticket_quantity" binding:"required,min=1,max=10" example:"2"`
}

// BrowseEventsRequest represents the catalog browse query parameters.
type BrowseEventsRequest struct {
	Query    string `form:"q" example:"jazz"`
	Category string `form:"category" example:"Music Concert"`
}
