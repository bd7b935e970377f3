package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/gatherhub/event-catalog-service/docs"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/dto"
	"github.com/gatherhub/event-catalog-service/internal/service"
)

// userIDHeader carries the signed-in user identifier, injected by the
// upstream auth proxy. Authentication itself is outside this service.
const userIDHeader = "X-User-ID"

type Handler struct {
	catalogService service.CatalogServicer
	router         *gin.Engine
	log            *zap.Logger
}

func NewHandler(catalogService service.CatalogServicer, log *zap.Logger) *Handler {
	h := &Handler{
		catalogService: catalogService,
		router:         gin.Default(),
		log:            log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/categories", h.listCategories)
	h.router.GET("/events", h.browseEvents)
	h.router.GET("/events/:id", h.getEvent)
	h.router.POST("/events", h.createEvent)
	h.router.PUT("/events/:id", h.updateEvent)
	h.router.DELETE("/events/:id", h.deleteEvent)
	h.router.POST("/events/:id/registrations", h.register)
	h.router.GET("/my/events", h.myEvents)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// listCategories handles GET /categories
// @Summary List suggested categories
// @Description Advisory list for event creation; category values are free text
// @Tags events
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /categories [get]
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: domain.SuggestedCategories})
}

// browseEvents handles GET /events
// @Summary Browse the event catalog
// @Description List events from the synchronized catalog mirror, optionally narrowed by a free-text query and/or a category
// @Tags events
// @Produce json
// @Param q query string false "Free-text query over title, category, location, description" example:"jazz"
// @Param category query string false "Category, matched case-insensitively" example:"Music Concert"
// @Success 200 {object} dto.CatalogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /events [get]
func (h *Handler) browseEvents(c *gin.Context) {
	var req dto.BrowseEventsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid browse request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.catalogService.Browse(&req))
}

// getEvent handles GET /events/:id
// @Summary Get a single event
// @Tags events
// @Produce json
// @Param id path string true "Event identifier"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	event, err := h.catalogService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "event_id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, dto.EventResponse{Event: *event})
}

// createEvent handles POST /events
// @Summary Create an event
// @Description Create an event owned by the calling user; the catalog mirror picks it up through the change feed
// @Tags events
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Signed-in user identifier"
// @Param event body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	event, err := h.catalogService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err, "title", req.Title)
		return
	}

	c.JSON(http.StatusCreated, dto.EventResponse{Event: *event})
}

// updateEvent handles PUT /events/:id
// @Summary Update an event
// @Description Full-record update, allowed only for the event's organizer
// @Tags events
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Signed-in user identifier"
// @Param id path string true "Event identifier"
// @Param event body dto.UpdateEventRequest true "Event data"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [put]
func (h *Handler) updateEvent(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid update event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	event, err := h.catalogService.UpdateEvent(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err, "event_id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, dto.EventResponse{Event: *event})
}

// deleteEvent handles DELETE /events/:id
// @Summary Delete an event
// @Description Allowed only for the event's organizer
// @Tags events
// @Produce json
// @Param X-User-ID header string true "Signed-in user identifier"
// @Param id path string true "Event identifier"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteEvent(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err, "event_id", c.Param("id"))
		return
	}

	c.Status(http.StatusNoContent)
}

// register handles POST /events/:id/registrations
// @Summary Register for an event
// @Description Register the calling user with a ticket quantity; duplicate registrations and over-capacity requests are rejected
// @Tags registrations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Signed-in user identifier"
// @Param id path string true "Event identifier"
// @Param registration body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id}/registrations [post]
func (h *Handler) register(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventID := c.Param("id")
	registration, err := h.catalogService.Register(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		h.writeError(c, err, "event_id", eventID)
		return
	}

	event, err := h.catalogService.GetEvent(c.Request.Context(), eventID)
	totalAmount := 0.0
	if err == nil {
		totalAmount = event.Price * float64(registration.TicketQuantity)
	}

	c.JSON(http.StatusCreated, dto.RegistrationResponse{
		Registration: *registration,
		TotalAmount:  totalAmount,
	})
}

// myEvents handles GET /my/events
// @Summary List the caller's events
// @Description Events the calling user created, and events they registered for
// @Tags events
// @Produce json
// @Param X-User-ID header string true "Signed-in user identifier"
// @Success 200 {object} dto.MyEventsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /my/events [get]
func (h *Handler) myEvents(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	resp, err := h.catalogService.MyEvents(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// requireUser extracts the signed-in user identifier or rejects the request.
func (h *Handler) requireUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthenticated",
			Message: "missing " + userIDHeader + " header",
		})
		return "", false
	}
	return userID, true
}

// writeError maps service errors onto HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error, key, value string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "already_registered",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "capacity_exceeded",
			Message: err.Error(),
		})
	default:
		h.log.Error("Request failed", zap.String(key, value), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
