package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("page content not found")

// ContentService serves editable page copy.
type ContentService struct {
	repo repository.PageContentRepository
}

func NewContentService(repo repository.PageContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

func (s *ContentService) Get(ctx context.Context, key string) (*models.PageContent, error) {
	content, err := s.repo.Get(ctx, strings.TrimSpace(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to load page content: %w", err)
	}
	return content, nil
}

// Upsert creates or replaces the content stored under key.
func (s *ContentService) Upsert(ctx context.Context, actor Actor, key, content string) (*models.PageContent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, FieldErrors{"key": "Key is required"}
	}

	row := &models.PageContent{Key: key, Content: content}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save page content: %w", err)
	}
	return row, nil
}
