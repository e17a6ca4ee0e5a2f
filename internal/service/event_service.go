package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/BjornOnGit/adec-web/internal/calendar"
	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
)

// CalendarDay is one grid cell annotated with the events on that date
type CalendarDay struct {
	calendar.Day
	Events []*domain.EventResponse `json:"events,omitempty"`
}

// CalendarMonthResponse is the events calendar for one displayed
// month, with the adjacent months precomputed for navigation
type CalendarMonthResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Prev  calendar.Month `json:"prev"`
	Next  calendar.Month `json:"next"`
	Days  []CalendarDay  `json:"days"`
}

// EventService event business logic
type EventService interface {
	ListEvents(viewerID uint) ([]*domain.EventResponse, error)
	ListMine(memberID uint) ([]*domain.EventResponse, error)
	GetEvent(id, viewerID uint) (*domain.EventResponse, error)
	CreateEvent(creatorID uint, req *domain.CreateEventRequest) (*domain.EventResponse, error)
	UpdateEvent(id, memberID uint, req *domain.CreateEventRequest) (*domain.EventResponse, error)
	DeleteEvent(id, memberID uint) error
	Register(eventID, memberID uint) error
	Unregister(eventID, memberID uint) error
	MyRegistrations(memberID uint) ([]*domain.EventResponse, error)
	CalendarMonth(year int, month time.Month, viewerID uint, now time.Time) (*CalendarMonthResponse, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

// ListEvents returns all events newest date first, annotated for the viewer
func (s *eventService) ListEvents(viewerID uint) ([]*domain.EventResponse, error) {
	events, err := s.eventRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return s.annotate(events, viewerID)
}

// ListMine returns the events the member created, soonest date first
func (s *eventService) ListMine(memberID uint) ([]*domain.EventResponse, error) {
	events, err := s.eventRepo.FindByCreator(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created events: %w", err)
	}
	return s.annotate(events, memberID)
}

// GetEvent returns one event annotated for the viewer
func (s *eventService) GetEvent(id, viewerID uint) (*domain.EventResponse, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrEventNotFound
	}

	count, err := s.eventRepo.CountRegistrations(id)
	if err != nil {
		return nil, err
	}
	registered, err := s.eventRepo.IsRegistered(id, viewerID)
	if err != nil {
		return nil, err
	}

	return event.ToResponse(count, registered), nil
}

// CreateEvent creates an event owned by the creator
func (s *eventService) CreateEvent(creatorID uint, req *domain.CreateEventRequest) (*domain.EventResponse, error) {
	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Location:    req.Location,
		IsVirtual:   req.IsVirtual,
		Capacity:    req.Capacity,
		CreatedBy:   creatorID,
	}
	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event.ToResponse(0, false), nil
}

// UpdateEvent replaces the event fields. Only the creator may update.
func (s *eventService) UpdateEvent(id, memberID uint, req *domain.CreateEventRequest) (*domain.EventResponse, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrEventNotFound
	}
	if event.CreatedBy != memberID {
		return nil, common.ErrForbidden
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventDate = eventDate
	event.Location = req.Location
	event.IsVirtual = req.IsVirtual
	event.Capacity = req.Capacity

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	count, err := s.eventRepo.CountRegistrations(id)
	if err != nil {
		return nil, err
	}
	registered, err := s.eventRepo.IsRegistered(id, memberID)
	if err != nil {
		return nil, err
	}

	return event.ToResponse(count, registered), nil
}

// DeleteEvent removes the event and its registrations. Only the creator
// may delete.
func (s *eventService) DeleteEvent(id, memberID uint) error {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		return common.ErrEventNotFound
	}
	if event.CreatedBy != memberID {
		return common.ErrForbidden
	}
	return s.eventRepo.Delete(id)
}

// Register signs the member up for the event
func (s *eventService) Register(eventID, memberID uint) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return common.ErrEventNotFound
	}

	registered, err := s.eventRepo.IsRegistered(eventID, memberID)
	if err != nil {
		return err
	}
	if registered {
		return common.ErrAlreadyRegistered
	}

	if event.Capacity > 0 {
		count, err := s.eventRepo.CountRegistrations(eventID)
		if err != nil {
			return err
		}
		if count >= int64(event.Capacity) {
			return common.ErrEventFull
		}
	}

	return s.eventRepo.Register(eventID, memberID)
}

// Unregister removes the member's registration
func (s *eventService) Unregister(eventID, memberID uint) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		return common.ErrEventNotFound
	}
	return s.eventRepo.Unregister(eventID, memberID)
}

// MyRegistrations returns the events the member is registered for,
// soonest first
func (s *eventService) MyRegistrations(memberID uint) ([]*domain.EventResponse, error) {
	regs, err := s.eventRepo.FindRegistrationsByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	events := make([]*domain.Event, 0, len(regs))
	for _, reg := range regs {
		event, err := s.eventRepo.FindByID(reg.EventID)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })

	out := make([]*domain.EventResponse, 0, len(events))
	for _, event := range events {
		count, err := s.eventRepo.CountRegistrations(event.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, event.ToResponse(count, true))
	}
	return out, nil
}

// CalendarMonth builds the month grid and places each event of the
// displayed range (padding cells included) on its date cell.
func (s *eventService) CalendarMonth(year int, month time.Month, viewerID uint, now time.Time) (*CalendarMonthResponse, error) {
	grid := calendar.BuildGrid(year, month, now)

	from := grid[0].Date
	to := grid[len(grid)-1].Date.AddDate(0, 0, 1)
	events, err := s.eventRepo.FindBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar events: %w", err)
	}

	annotated, err := s.annotate(events, viewerID)
	if err != nil {
		return nil, err
	}

	ref := calendar.Month{Year: year, Month: month}
	resp := &CalendarMonthResponse{
		Year:  year,
		Month: int(month),
		Prev:  ref.Prev(),
		Next:  ref.Next(),
		Days:  make([]CalendarDay, 0, len(grid)),
	}
	for _, cell := range grid {
		day := CalendarDay{Day: cell}
		for i, event := range events {
			if calendar.SameDay(event.EventDate, cell.Date) {
				day.Events = append(day.Events, annotated[i])
			}
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

func (s *eventService) annotate(events []*domain.Event, viewerID uint) ([]*domain.EventResponse, error) {
	out := make([]*domain.EventResponse, 0, len(events))
	for _, event := range events {
		count, err := s.eventRepo.CountRegistrations(event.ID)
		if err != nil {
			return nil, err
		}
		registered, err := s.eventRepo.IsRegistered(event.ID, viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, event.ToResponse(count, registered))
	}
	return out, nil
}
