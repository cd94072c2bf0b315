package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound     = errors.New("resource not found")
	ErrResourceUploadFailed = errors.New("failed to upload resource file")
)

// ResourceInput is the editable content of a resource.
type ResourceInput struct {
	Title       string
	Description string
}

// ResourceService manages downloadable resources.
type ResourceService struct {
	repo  repository.ResourceRepository
	files storage.Bucket
	now   func() time.Time
}

// NewResourceService creates a new ResourceService. Uploaded files go to files.
func NewResourceService(repo repository.ResourceRepository, files storage.Bucket) *ResourceService {
	return &ResourceService{
		repo:  repo,
		files: files,
		now:   time.Now,
	}
}

// List returns every resource.
func (s *ResourceService) List(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// sectionKey derives a unique slug from title, suffixing -2, -3... on collision.
func (s *ResourceService) sectionKey(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "resource"
	}

	key := base
	for n := 2; ; n++ {
		exists, err := s.repo.SectionKeyExists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check section key: %w", err)
		}
		if !exists {
			return key, nil
		}
		key = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *ResourceService) attach(ctx context.Context, resource *models.Resource, file *FileUpload) error {
	key := storage.ResourceKey(resource.SectionKey, s.now(), file.Name)
	if err := s.files.Upload(ctx, key, file.Reader, true); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceUploadFailed, err)
	}
	resource.FileURL = s.files.PublicURL(key)
	resource.FileType = file.Name
	return nil
}

// Create adds a resource, uploading file first when given.
func (s *ResourceService) Create(ctx context.Context, actor Actor, input ResourceInput, file *FileUpload) (*models.Resource, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, FieldErrors{"title": "Title is required"}
	}

	key, err := s.sectionKey(ctx, title)
	if err != nil {
		return nil, err
	}
	resource := &models.Resource{
		SectionKey:  key,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
	}
	if file != nil {
		if err := s.attach(ctx, resource, file); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

// Update edits a resource. The section key never changes; a new file replaces the old link.
func (s *ResourceService) Update(ctx context.Context, actor Actor, id string, input ResourceInput, file *FileUpload) (*models.Resource, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, FieldErrors{"title": "Title is required"}
	}

	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	resource.Title = title
	resource.Description = strings.TrimSpace(input.Description)
	if file != nil {
		if err := s.attach(ctx, resource, file); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return resource, nil
}

// Delete removes a resource row. Its file stays in storage.
func (s *ResourceService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}
