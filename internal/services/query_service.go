package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrQueryNotFound          = errors.New("query not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// ReplyDrafter writes a suggested answer to a user query.
type ReplyDrafter interface {
	DraftQueryReply(ctx context.Context, question string) (string, error)
}

// SubmitQueryInput is a question sent from the contact form.
type SubmitQueryInput struct {
	Text  string
	Email string
	Name  string
}

// QueryService handles user queries and their retention.
type QueryService struct {
	repo      repository.QueryRepository
	drafter   ReplyDrafter
	retention time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewQueryService creates a new QueryService. Resolved queries older than retention
// are removed by CleanupResolved. drafter may be nil.
func NewQueryService(repo repository.QueryRepository, drafter ReplyDrafter, retention time.Duration, log *zap.Logger) *QueryService {
	return &QueryService{
		repo:      repo,
		drafter:   drafter,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Submit stores a query. Signed-in callers are identified by their account; anonymous
// callers must give an email.
func (s *QueryService) Submit(ctx context.Context, actor Actor, input SubmitQueryInput) (*models.UserQuery, error) {
	text := strings.TrimSpace(input.Text)
	fields := FieldErrors{}
	if text == "" {
		fields["query_text"] = "Query is required"
	}

	query := &models.UserQuery{
		QueryText: text,
		Status:    models.QueryStatusPending,
	}
	if actor.Authenticated() {
		query.UserID = &actor.UserID
		query.UserEmail = &actor.Email
		if actor.Name != "" {
			query.UserName = &actor.Name
		}
	} else {
		email := strings.TrimSpace(input.Email)
		if email == "" {
			fields["user_email"] = "Email is required"
		} else if msg := validation.ValidateEmail(email, ""); msg != "" {
			fields["user_email"] = msg
		}
		query.UserEmail = &email
		if name := strings.TrimSpace(input.Name); name != "" {
			query.UserName = &name
		}
	}
	if err := fields.orNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to save query: %w", err)
	}
	return query, nil
}

// CleanupResolved deletes resolved queries older than the retention window.
func (s *QueryService) CleanupResolved(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.repo.DeleteResolvedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up resolved queries: %w", err)
	}
	if deleted > 0 {
		s.log.Info("Removed resolved queries", zap.Int64("count", deleted), zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}

// List returns a page of queries, newest first. Expired resolved queries are swept
// first; a failed sweep is logged and does not fail the listing.
func (s *QueryService) List(ctx context.Context, actor Actor, page utils.PaginationParams) ([]models.UserQuery, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}

	if _, err := s.CleanupResolved(ctx); err != nil {
		s.log.Warn("Resolved query cleanup failed", zap.Error(err))
	}

	queries, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list queries: %w", err)
	}
	return queries, total, nil
}

// Resolve marks a query resolved now.
func (s *QueryService) Resolve(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.MarkResolved(ctx, id, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQueryNotFound
		}
		return fmt.Errorf("failed to resolve query: %w", err)
	}
	return nil
}

func (s *QueryService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQueryNotFound
		}
		return fmt.Errorf("failed to delete query: %w", err)
	}
	return nil
}

// DraftReply asks the configured drafter for a suggested answer to a query.
func (s *QueryService) DraftReply(ctx context.Context, actor Actor, id string) (string, error) {
	if err := requireAdmin(actor); err != nil {
		return "", err
	}
	if s.drafter == nil {
		return "", ErrAIServiceNotConfigured
	}

	query, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrQueryNotFound
		}
		return "", fmt.Errorf("failed to find query: %w", err)
	}

	reply, err := s.drafter.DraftQueryReply(ctx, query.QueryText)
	if err != nil {
		return "", fmt.Errorf("failed to draft reply: %w", err)
	}
	return reply, nil
}
