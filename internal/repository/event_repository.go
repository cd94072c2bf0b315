package repository

import (
	"context"
	"errors"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"gorm.io/gorm"
)

// ErrEventFull is returned by Register when the event has no seats left.
var ErrEventFull = errors.New("event repository: event is full")

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event and its registrations in a transaction
func (r *GormEventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Event{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormEventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events ordered by date
func (r *GormEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var events []models.Event
	if err := query.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Register counts existing registrations and inserts the new one in the same transaction.
func (r *GormEventRepository) Register(ctx context.Context, reg *models.EventRegistration, maxParticipants *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if maxParticipants != nil {
			var count int64
			if err := tx.Model(&models.EventRegistration{}).
				Where("event_id = ?", reg.EventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*maxParticipants) {
				return ErrEventFull
			}
		}

		return tx.Omit("Event").Create(reg).Error
	})
}

func (r *GormEventRepository) CountRegistrations(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *GormEventRepository) FindRegistration(ctx context.Context, eventID, userID string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}
