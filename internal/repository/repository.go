package repository

import (
	"context"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfileAndRole creates a user, their profile, and their role in one transaction.
	CreateWithProfileAndRole(ctx context.Context, user *models.User, profile *models.Profile, role *models.UserRole) error

	// FindByID finds a user by ID with profile and role loaded
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email with profile and role loaded
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// SetRole creates or replaces a user's role
	SetRole(ctx context.Context, userID string, role models.Role) error

	// ListRoles lists every role row
	ListRoles(ctx context.Context) ([]models.UserRole, error)
}

// ProblemFilter holds filtering options for listing problem statements
type ProblemFilter struct {
	Theme  string
	Search string
}

// ProblemRepository defines the interface for problem statement data access
type ProblemRepository interface {
	Create(ctx context.Context, problem *models.ProblemStatement) error
	Update(ctx context.Context, problem *models.ProblemStatement) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.ProblemStatement, error)

	// FindByProblemStatementID finds a problem by its human-facing ID
	FindByProblemStatementID(ctx context.Context, problemStatementID string) (*models.ProblemStatement, error)

	// List returns problems ordered by human-facing ID
	List(ctx context.Context, filter ProblemFilter) ([]models.ProblemStatement, error)

	// Upsert inserts a problem or updates the row with the same human-facing ID
	Upsert(ctx context.Context, problem *models.ProblemStatement) error
}

// TeamRegistrationRepository defines the interface for team registration data access
type TeamRegistrationRepository interface {
	Create(ctx context.Context, reg *models.TeamRegistration) error
	Update(ctx context.Context, reg *models.TeamRegistration) error
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every registration and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)

	FindByID(ctx context.Context, id string) (*models.TeamRegistration, error)

	// List returns every registration, newest first
	List(ctx context.Context) ([]models.TeamRegistration, error)

	// ListByUser returns a user's registrations with their problem, newest first
	ListByUser(ctx context.Context, userID string) ([]models.TeamRegistration, error)
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	ActiveOnly bool
}

// EventRepository defines the interface for event and event registration data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error

	// Delete removes an event and its registrations
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*models.Event, error)

	// List returns events ordered by date
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)

	// Register records a user's registration, failing with ErrEventFull when the
	// event has reached maxParticipants.
	Register(ctx context.Context, reg *models.EventRegistration, maxParticipants *int) error

	CountRegistrations(ctx context.Context, eventID string) (int64, error)
	FindRegistration(ctx context.Context, eventID, userID string) (*models.EventRegistration, error)
}

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Resource, error)

	// SectionKeyExists reports whether a resource already uses the section key
	SectionKeyExists(ctx context.Context, sectionKey string) (bool, error)

	// List returns resources oldest first
	List(ctx context.Context) ([]models.Resource, error)
}

// PageContentRepository defines the interface for editable page copy
type PageContentRepository interface {
	Get(ctx context.Context, key string) (*models.PageContent, error)
	Upsert(ctx context.Context, content *models.PageContent) error
}

// QueryRepository defines the interface for user query data access
type QueryRepository interface {
	Create(ctx context.Context, query *models.UserQuery) error
	FindByID(ctx context.Context, id string) (*models.UserQuery, error)

	// List returns a page of queries, newest first, and the total count
	List(ctx context.Context, page utils.PaginationParams) ([]models.UserQuery, int64, error)

	// MarkResolved sets status to resolved and stamps resolvedAt
	MarkResolved(ctx context.Context, id string, resolvedAt time.Time) error

	Delete(ctx context.Context, id string) error

	// DeleteResolvedBefore removes resolved queries whose resolved_at is before cutoff
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
