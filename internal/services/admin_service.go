package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/aggregate"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrDashboardLoad = errors.New("failed to load dashboard data")
	ErrTeamNotFound  = errors.New("team registration not found")
	ErrNoDocument    = errors.New("team has no document")
)

// UserStats summarizes accounts by role.
type UserStats struct {
	TotalProblems int `json:"total_problems"`
	TotalUsers    int `json:"total_users"`
	Admins        int `json:"admin_count"`
	Students      int `json:"student_count"`
}

// Dashboard is the admin overview.
type Dashboard struct {
	aggregate.Stats
	Users    UserStats
	Problems []models.ProblemStatement
	LoadedAt time.Time
}

// TeamPage is one page of the filtered registration table.
type TeamPage struct {
	Rows  []aggregate.Row
	Total int
}

// AdminTeamInput is a registration created or edited from the dashboard. ProblemID is
// the internal key.
type AdminTeamInput struct {
	TeamInput
	ProblemID string
}

// AdminService serves the admin dashboard from one in-process snapshot. Admin writes go
// to the database first and are then applied to the snapshot without re-fetching.
type AdminService struct {
	problems  repository.ProblemRepository
	regs      repository.TeamRegistrationRepository
	users     repository.UserRepository
	documents storage.Bucket
	signer    *storage.URLSigner
	log       *zap.Logger
	now       func() time.Time
	maxAge    time.Duration

	mu       sync.Mutex
	snapshot *aggregate.Snapshot
	roles    []models.UserRole
	loadedAt time.Time
}

// NewAdminService creates a new AdminService. A snapshot older than maxAge is
// re-fetched on next use; zero keeps it until an explicit refresh.
func NewAdminService(
	problems repository.ProblemRepository,
	regs repository.TeamRegistrationRepository,
	users repository.UserRepository,
	documents storage.Bucket,
	signer *storage.URLSigner,
	maxAge time.Duration,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		problems:  problems,
		regs:      regs,
		users:     users,
		documents: documents,
		signer:    signer,
		log:       log,
		now:       time.Now,
		maxAge:    maxAge,
	}
}

// load fetches problems, registrations and roles concurrently. Caller holds s.mu.
func (s *AdminService) load(ctx context.Context) error {
	var (
		problems []models.ProblemStatement
		regs     []models.TeamRegistration
		roles    []models.UserRole
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		problems, err = s.problems.List(gctx, repository.ProblemFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		regs, err = s.regs.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = s.users.ListRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrDashboardLoad, err)
	}

	snap := aggregate.NewSnapshot(problems, regs)
	s.snapshot = &snap
	s.roles = roles
	s.loadedAt = s.now()
	s.log.Debug("Dashboard snapshot loaded",
		zap.Int("problems", len(problems)),
		zap.Int("registrations", len(regs)),
		zap.Int("users", len(roles)))
	return nil
}

// ensureLoaded loads the snapshot when missing, stale, or refresh is set. Caller holds s.mu.
func (s *AdminService) ensureLoaded(ctx context.Context, refresh bool) error {
	stale := s.maxAge > 0 && s.now().Sub(s.loadedAt) > s.maxAge
	if s.snapshot == nil || refresh || stale {
		return s.load(ctx)
	}
	return nil
}

// Invalidate drops the snapshot so the next request re-fetches it.
func (s *AdminService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

// RegistrationCreated folds a student submission into a loaded snapshot.
func (s *AdminService) RegistrationCreated(reg models.TeamRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}
	next := s.snapshot.WithCreated(reg)
	s.snapshot = &next
}

func (s *AdminService) userStats() UserStats {
	stats := UserStats{
		TotalProblems: len(s.snapshot.Problems()),
		TotalUsers:    len(s.roles),
	}
	for _, r := range s.roles {
		switch r.Role {
		case models.RoleAdmin:
			stats.Admins++
		case models.RoleStudent:
			stats.Students++
		}
	}
	return stats
}

// Dashboard returns counts per problem and theme plus account totals.
func (s *AdminService) Dashboard(ctx context.Context, actor Actor, refresh bool) (*Dashboard, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, refresh); err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:    aggregate.Recompute(*s.snapshot),
		Users:    s.userStats(),
		Problems: s.snapshot.Problems(),
		LoadedAt: s.loadedAt,
	}, nil
}

// Teams returns one page of the joined registration table after filtering and sorting.
func (s *AdminService) Teams(ctx context.Context, actor Actor, query aggregate.Query, page utils.PaginationParams, refresh bool) (*TeamPage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	rowsErr := s.ensureLoaded(ctx, refresh)
	var rows []aggregate.Row
	if rowsErr == nil {
		rows = aggregate.Join(*s.snapshot)
	}
	s.mu.Unlock()
	if rowsErr != nil {
		return nil, rowsErr
	}

	rows = aggregate.Apply(rows, query)
	total := len(rows)
	if page.Limit > 0 {
		start := min(page.Offset, total)
		end := min(start+page.Limit, total)
		rows = rows[start:end]
	}
	return &TeamPage{Rows: rows, Total: total}, nil
}

func (s *AdminService) validateTeam(input AdminTeamInput) error {
	fields := FieldErrors{}
	input.validate(fields)
	if strings.TrimSpace(input.ProblemID) == "" {
		fields["problem_id"] = "Problem is required"
	} else if _, ok := s.snapshot.Problem(input.ProblemID); !ok {
		fields["problem_id"] = validation.InvalidProblemIDMessage
	}
	return fields.orNil()
}

// CreateTeam inserts a registration on behalf of the admin.
func (s *AdminService) CreateTeam(ctx context.Context, actor Actor, input AdminTeamInput) (*models.TeamRegistration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, false); err != nil {
		return nil, err
	}
	if err := s.validateTeam(input); err != nil {
		return nil, err
	}

	reg := &models.TeamRegistration{
		UserID:    actor.UserID,
		ProblemID: input.ProblemID,
	}
	input.apply(reg)
	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSaveRegistration, err)
	}

	next := s.snapshot.WithCreated(*reg)
	s.snapshot = &next
	return reg, nil
}

// UpdateTeam edits a registration's team data and problem. Submitter and document are kept.
func (s *AdminService) UpdateTeam(ctx context.Context, actor Actor, id string, input AdminTeamInput) (*models.TeamRegistration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, false); err != nil {
		return nil, err
	}
	if err := s.validateTeam(input); err != nil {
		return nil, err
	}

	reg, err := s.findTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	reg.ProblemID = input.ProblemID
	input.apply(reg)
	if err := s.regs.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSaveRegistration, err)
	}

	next := s.snapshot.WithUpdated(*reg)
	s.snapshot = &next
	return reg, nil
}

// DeleteTeam removes one registration.
func (s *AdminService) DeleteTeam(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, false); err != nil {
		return err
	}

	if err := s.regs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	next := s.snapshot.WithoutRegistration(id)
	s.snapshot = &next
	return nil
}

// DeleteAllTeams removes every registration and reports how many were removed.
func (s *AdminService) DeleteAllTeams(ctx context.Context, actor Actor) (int64, error) {
	if err := requireAdmin(actor); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, false); err != nil {
		return 0, err
	}

	removed, err := s.regs.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete registrations: %w", err)
	}

	next := s.snapshot.WithoutAll()
	s.snapshot = &next
	s.log.Warn("All team registrations deleted",
		zap.String("admin_id", actor.UserID),
		zap.Int64("removed", removed))
	return removed, nil
}

func (s *AdminService) findTeam(ctx context.Context, id string) (*models.TeamRegistration, error) {
	reg, err := s.regs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return reg, nil
}

// DocumentURL returns a short-lived link to view a team's uploaded document.
func (s *AdminService) DocumentURL(ctx context.Context, actor Actor, id string) (string, error) {
	if err := requireAdmin(actor); err != nil {
		return "", err
	}

	reg, err := s.findTeam(ctx, id)
	if err != nil {
		return "", err
	}
	if reg.DocumentURL == "" {
		return "", ErrNoDocument
	}
	return s.signer.SignedURL(s.documents.Name(), reg.DocumentURL)
}

// Document is an opened team document. Callers close Body.
type Document struct {
	Body     io.ReadCloser
	Filename string
}

// OpenDocument streams a team's uploaded document for download.
func (s *AdminService) OpenDocument(ctx context.Context, actor Actor, id string) (*Document, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	reg, err := s.findTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.DocumentURL == "" {
		return nil, ErrNoDocument
	}

	body, err := s.documents.Download(ctx, reg.DocumentURL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	filename := reg.DocumentFilename
	if filename == "" {
		filename = constants.DefaultDocFileName
	}
	return &Document{Body: body, Filename: filename}, nil
}
