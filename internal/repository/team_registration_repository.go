package repository

import (
	"context"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRegistrationRepository is a GORM implementation of TeamRegistrationRepository
type GormTeamRegistrationRepository struct {
	db *gorm.DB
}

// NewTeamRegistrationRepository creates a new TeamRegistrationRepository
func NewTeamRegistrationRepository(db *gorm.DB) TeamRegistrationRepository {
	return &GormTeamRegistrationRepository{db: db}
}

func (r *GormTeamRegistrationRepository) Create(ctx context.Context, reg *models.TeamRegistration) error {
	return r.db.WithContext(ctx).Omit("Problem").Create(reg).Error
}

func (r *GormTeamRegistrationRepository) Update(ctx context.Context, reg *models.TeamRegistration) error {
	return r.db.WithContext(ctx).Omit("Problem").Save(reg).Error
}

func (r *GormTeamRegistrationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every registration
func (r *GormTeamRegistrationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.TeamRegistration{})
	return result.RowsAffected, result.Error
}

func (r *GormTeamRegistrationRepository) FindByID(ctx context.Context, id string) (*models.TeamRegistration, error) {
	var reg models.TeamRegistration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns every registration, newest first
func (r *GormTeamRegistrationRepository) List(ctx context.Context) ([]models.TeamRegistration, error) {
	var regs []models.TeamRegistration
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// ListByUser returns a user's registrations with their problem, newest first
func (r *GormTeamRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]models.TeamRegistration, error) {
	var regs []models.TeamRegistration
	if err := r.db.WithContext(ctx).Preload("Problem").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
