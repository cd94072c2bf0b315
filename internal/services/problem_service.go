package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrProblemNotFound  = errors.New("problem statement not found")
	ErrProblemIDTaken   = errors.New("problem statement ID already exists")
	ErrInvalidProblemID = validation.ErrInvalidProblemID
)

// ProblemService handles the problem statement catalog.
type ProblemService struct {
	repo     repository.ProblemRepository
	resolver *validation.ProblemResolver
	onChange func()
}

// NewProblemService creates a new ProblemService. onChange, when set, runs after every
// successful catalog write.
func NewProblemService(repo repository.ProblemRepository, onChange func()) *ProblemService {
	return &ProblemService{
		repo:     repo,
		resolver: validation.NewProblemResolver(repo),
		onChange: onChange,
	}
}

func (s *ProblemService) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ThemeSummary is the number of catalog entries under one theme.
type ThemeSummary struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Catalog is a filtered problem list plus per-theme totals over the whole catalog.
type Catalog struct {
	Problems []models.ProblemStatement
	Themes   []ThemeSummary
	Total    int
}

// List returns the problems matching filter and theme totals for the unfiltered catalog.
func (s *ProblemService) List(ctx context.Context, filter repository.ProblemFilter) (*Catalog, error) {
	all, err := s.repo.List(ctx, repository.ProblemFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	problems := all
	if filter.Theme != "" || filter.Search != "" {
		problems, err = s.repo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list problems: %w", err)
		}
	}

	return &Catalog{
		Problems: problems,
		Themes:   summarizeThemes(all),
		Total:    len(all),
	}, nil
}

func summarizeThemes(problems []models.ProblemStatement) []ThemeSummary {
	index := make(map[string]int)
	themes := []ThemeSummary{}
	for _, p := range problems {
		i, ok := index[p.Theme]
		if !ok {
			i = len(themes)
			index[p.Theme] = i
			themes = append(themes, ThemeSummary{Theme: p.Theme})
		}
		themes[i].Count++
	}
	return themes
}

// Get returns a problem by its human-facing ID.
func (s *ProblemService) Get(ctx context.Context, problemStatementID string) (*models.ProblemStatement, error) {
	problem, err := s.repo.FindByProblemStatementID(ctx, strings.TrimSpace(problemStatementID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to find problem: %w", err)
	}
	return problem, nil
}

// Resolve maps a human-facing problem ID to the key registrations reference.
func (s *ProblemService) Resolve(ctx context.Context, problemStatementID string) (string, error) {
	return s.resolver.Resolve(ctx, problemStatementID)
}

// ProblemInput is the editable content of a problem statement.
type ProblemInput struct {
	ProblemStatementID string `yaml:"problem_statement_id"`
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	Category           string `yaml:"category"`
	Theme              string `yaml:"theme"`
	Department         string `yaml:"department"`
}

func (in ProblemInput) validate() FieldErrors {
	fields := FieldErrors{}
	if strings.TrimSpace(in.ProblemStatementID) == "" {
		fields["problem_statement_id"] = "Problem statement ID is required"
	}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(in.Theme) == "" {
		fields["theme"] = "Theme is required"
	}
	return fields
}

func (in ProblemInput) apply(p *models.ProblemStatement) {
	p.ProblemStatementID = strings.TrimSpace(in.ProblemStatementID)
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Category = strings.TrimSpace(in.Category)
	p.Theme = strings.TrimSpace(in.Theme)
	p.Department = strings.TrimSpace(in.Department)
}

// Create adds a problem to the catalog.
func (s *ProblemService) Create(ctx context.Context, actor Actor, input ProblemInput) (*models.ProblemStatement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := input.validate().orNil(); err != nil {
		return nil, err
	}

	problem := &models.ProblemStatement{}
	input.apply(problem)
	if err := s.repo.Create(ctx, problem); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProblemIDTaken
		}
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}

	s.changed()
	return problem, nil
}

// Update replaces a problem's content. id is the internal key.
func (s *ProblemService) Update(ctx context.Context, actor Actor, id string, input ProblemInput) (*models.ProblemStatement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := input.validate().orNil(); err != nil {
		return nil, err
	}

	problem, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to find problem: %w", err)
	}

	input.apply(problem)
	if err := s.repo.Update(ctx, problem); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProblemIDTaken
		}
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}

	s.changed()
	return problem, nil
}

// Delete removes a problem. Registrations that referenced it are kept.
func (s *ProblemService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProblemNotFound
		}
		return fmt.Errorf("failed to delete problem: %w", err)
	}

	s.changed()
	return nil
}

// Seed upserts catalog entries keyed by human-facing ID. It runs outside any session
// and is meant for operator tooling.
func (s *ProblemService) Seed(ctx context.Context, inputs []ProblemInput) (int, error) {
	for i, input := range inputs {
		if err := input.validate().orNil(); err != nil {
			return i, fmt.Errorf("entry %d: %w", i+1, err)
		}
		problem := &models.ProblemStatement{}
		input.apply(problem)
		if err := s.repo.Upsert(ctx, problem); err != nil {
			return i, fmt.Errorf("entry %d (%s): %w", i+1, problem.ProblemStatementID, err)
		}
	}

	if len(inputs) > 0 {
		s.changed()
	}
	return len(inputs), nil
}
