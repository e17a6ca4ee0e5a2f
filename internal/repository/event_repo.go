package repository

import (
	"time"

	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// EventRepository event data access interface
type EventRepository interface {
	Create(event *domain.Event) error
	FindByID(id uint) (*domain.Event, error)
	FindAll() ([]*domain.Event, error)
	FindBetween(from, to time.Time) ([]*domain.Event, error)
	FindByCreator(memberID uint) ([]*domain.Event, error)
	Update(event *domain.Event) error
	Delete(id uint) error

	Register(eventID, memberID uint) error
	Unregister(eventID, memberID uint) error
	IsRegistered(eventID, memberID uint) (bool, error)
	CountRegistrations(eventID uint) (int64, error)
	FindRegistrationsByMember(memberID uint) ([]*domain.EventRegistration, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *domain.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) FindByID(id uint) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll() ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.Order("event_date ASC").Find(&events).Error
	return events, err
}

// FindBetween returns events within [from, to), used by the calendar view
func (r *eventRepository) FindBetween(from, to time.Time) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.Where("event_date >= ? AND event_date < ?", from, to).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByCreator(memberID uint) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.Where("created_by = ?", memberID).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(event *domain.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&domain.EventRegistration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Event{}, id).Error
	})
}

func (r *eventRepository) Register(eventID, memberID uint) error {
	return r.db.Create(&domain.EventRegistration{EventID: eventID, MemberID: memberID}).Error
}

func (r *eventRepository) Unregister(eventID, memberID uint) error {
	result := r.db.Where("event_id = ? AND member_id = ?", eventID, memberID).
		Delete(&domain.EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) IsRegistered(eventID, memberID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.EventRegistration{}).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) CountRegistrations(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) FindRegistrationsByMember(memberID uint) ([]*domain.EventRegistration, error) {
	var regs []*domain.EventRegistration
	err := r.db.Where("member_id = ?", memberID).Find(&regs).Error
	return regs, err
}
