package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/calendar"
	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// EventHandler handles event requests
type EventHandler struct {
	service service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// ListEvents handles GET /api/v1/portal/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(middleware.GetMemberID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load events", err)
		return
	}
	common.SuccessResponse(c, events, nil)
}

// GetEvent handles GET /api/v1/portal/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	event, err := h.service.GetEvent(uint(id), middleware.GetMemberID(c))
	if h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, event, nil)
}

// CreateEvent handles POST /api/v1/portal/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req domain.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	event, err := h.service.CreateEvent(middleware.GetMemberID(c), &req)
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid event date, expected RFC3339", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create event", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: event})
}

// UpdateEvent handles PUT /api/v1/portal/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	var req domain.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	event, err := h.service.UpdateEvent(uint(id), middleware.GetMemberID(c), &req)
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid event date, expected RFC3339", err)
		return
	}
	if h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, event, nil)
}

// DeleteEvent handles DELETE /api/v1/portal/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	if err := h.service.DeleteEvent(uint(id), middleware.GetMemberID(c)); h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Event deleted"}, nil)
}

// Register handles POST /api/v1/portal/events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	err = h.service.Register(uint(id), middleware.GetMemberID(c))
	if errors.Is(err, common.ErrAlreadyRegistered) {
		common.ErrorResponse(c, 409, "Already registered for this event", err)
		return
	}
	if errors.Is(err, common.ErrEventFull) {
		common.ErrorResponse(c, 409, "Event is at capacity", err)
		return
	}
	if h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Registered"}, nil)
}

// MyRegistrations handles GET /api/v1/portal/events/registrations
// ListMine returns the events the authenticated member created.
func (h *EventHandler) ListMine(c *gin.Context) {
	events, err := h.service.ListMine(middleware.GetMemberID(c))
	if h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, events, nil)
}

func (h *EventHandler) MyRegistrations(c *gin.Context) {
	events, err := h.service.MyRegistrations(middleware.GetMemberID(c))
	if h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, events, nil)
}

// Unregister handles DELETE /api/v1/portal/events/:id/register
func (h *EventHandler) Unregister(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	if err := h.service.Unregister(uint(id), middleware.GetMemberID(c)); h.eventError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Registration cancelled"}, nil)
}

// Calendar handles GET /api/v1/portal/events/calendar?year=&month=.
// Defaults to the current month.
func (h *EventHandler) Calendar(c *gin.Context) {
	now := time.Now().UTC()
	current := calendar.Current(now)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(current.Year)))
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(current.Month))))
	if err != nil || month < 1 || month > 12 {
		common.ErrorResponse(c, 400, "Invalid month", err)
		return
	}

	view, err := h.service.CalendarMonth(year, time.Month(month), middleware.GetMemberID(c), now)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to build calendar", err)
		return
	}
	common.SuccessResponse(c, view, nil)
}

func (h *EventHandler) eventError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, common.ErrEventNotFound):
		common.ErrorResponse(c, 404, "Event not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Only the event creator may do this", err)
	default:
		common.ErrorResponse(c, 500, "Event operation failed", err)
	}
	return true
}
