package repository

import (
	"context"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"gorm.io/gorm"
)

// GormQueryRepository is a GORM implementation of QueryRepository
type GormQueryRepository struct {
	db *gorm.DB
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &GormQueryRepository{db: db}
}

func (r *GormQueryRepository) Create(ctx context.Context, query *models.UserQuery) error {
	return r.db.WithContext(ctx).Create(query).Error
}

func (r *GormQueryRepository) FindByID(ctx context.Context, id string) (*models.UserQuery, error) {
	var query models.UserQuery
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&query).Error; err != nil {
		return nil, err
	}
	return &query, nil
}

// List returns a page of queries, newest first, and the total count
func (r *GormQueryRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.UserQuery, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserQuery{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var queries []models.UserQuery
	if err := query.Scopes(database.Paginate(page)).
		Order("created_at DESC").
		Find(&queries).Error; err != nil {
		return nil, 0, err
	}
	return queries, total, nil
}

// MarkResolved sets status to resolved and stamps resolvedAt
func (r *GormQueryRepository) MarkResolved(ctx context.Context, id string, resolvedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.UserQuery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.QueryStatusResolved,
			"resolved_at": resolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormQueryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserQuery{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteResolvedBefore removes resolved queries whose resolved_at is before cutoff
func (r *GormQueryRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND resolved_at < ?", models.QueryStatusResolved, cutoff).
		Delete(&models.UserQuery{})
	return result.RowsAffected, result.Error
}
