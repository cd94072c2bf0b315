package repository

import (
	"context"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

func (r *GormResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *GormResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *GormResourceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Resource{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormResourceRepository) FindByID(ctx context.Context, id string) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *GormResourceRepository) SectionKeyExists(ctx context.Context, sectionKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Resource{}).
		Where("section_key = ?", sectionKey).
		Count(&count).Error
	return count > 0, err
}

// List returns resources oldest first
func (r *GormResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// GormPageContentRepository is a GORM implementation of PageContentRepository
type GormPageContentRepository struct {
	db *gorm.DB
}

// NewPageContentRepository creates a new PageContentRepository
func NewPageContentRepository(db *gorm.DB) PageContentRepository {
	return &GormPageContentRepository{db: db}
}

func (r *GormPageContentRepository) Get(ctx context.Context, key string) (*models.PageContent, error) {
	var content models.PageContent
	if err := r.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *GormPageContentRepository) Upsert(ctx context.Context, content *models.PageContent) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(content).Error
}
