package repository

import (
	"context"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProblemRepository is a GORM implementation of ProblemRepository
type GormProblemRepository struct {
	db *gorm.DB
}

// NewProblemRepository creates a new ProblemRepository
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &GormProblemRepository{db: db}
}

func (r *GormProblemRepository) Create(ctx context.Context, problem *models.ProblemStatement) error {
	return r.db.WithContext(ctx).Create(problem).Error
}

func (r *GormProblemRepository) Update(ctx context.Context, problem *models.ProblemStatement) error {
	return r.db.WithContext(ctx).Save(problem).Error
}

func (r *GormProblemRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProblemStatement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProblemRepository) FindByID(ctx context.Context, id string) (*models.ProblemStatement, error) {
	var problem models.ProblemStatement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&problem).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

// FindByProblemStatementID finds a problem by its human-facing ID
func (r *GormProblemRepository) FindByProblemStatementID(ctx context.Context, problemStatementID string) (*models.ProblemStatement, error) {
	var problem models.ProblemStatement
	if err := r.db.WithContext(ctx).Where("problem_statement_id = ?", problemStatementID).
		First(&problem).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

// List returns problems ordered by human-facing ID, narrowed by theme and a
// case-insensitive search over title, description and human-facing ID.
func (r *GormProblemRepository) List(ctx context.Context, filter ProblemFilter) ([]models.ProblemStatement, error) {
	query := r.db.WithContext(ctx).Model(&models.ProblemStatement{})

	if theme := strings.TrimSpace(filter.Theme); theme != "" && !strings.EqualFold(theme, constants.FilterAll) {
		query = query.Where("theme = ?", theme)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(problem_statement_id) LIKE ?",
			like, like, like,
		)
	}

	var problems []models.ProblemStatement
	if err := query.Order("problem_statement_id ASC").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

// Upsert inserts a problem or updates the row with the same human-facing ID
func (r *GormProblemRepository) Upsert(ctx context.Context, problem *models.ProblemStatement) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "problem_statement_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "theme", "department", "updated_at"}),
		}).
		Create(problem).Error
}
