package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"go.uber.org/zap"
)

var (
	ErrDocumentUploadFailed     = errors.New("failed to upload team document")
	ErrFailedToSaveRegistration = errors.New("failed to save registration")
)

// RegistrationObserver is told about registrations created outside the admin dashboard.
type RegistrationObserver interface {
	RegistrationCreated(reg models.TeamRegistration)
}

// TeamInput is the team data shared by student submissions and admin edits.
type TeamInput struct {
	TeamName   string
	Members    []models.Member
	Year       string
	Department string
	Phone      string
	Email      string
}

func (in TeamInput) validate(fields FieldErrors) {
	if strings.TrimSpace(in.TeamName) == "" {
		fields["team_name"] = "Team name is required"
	}

	if len(in.Members) > constants.MaxTeamMembers {
		fields["members"] = fmt.Sprintf("A team can have at most %d members", constants.MaxTeamMembers)
	}
	var lead models.Member
	if len(in.Members) > 0 {
		lead = in.Members[0]
	}
	if strings.TrimSpace(lead.Name) == "" {
		fields["member1_name"] = "Team leader name is required"
	}
	if strings.TrimSpace(lead.Roll) == "" {
		fields["member1_roll"] = "Team leader roll number is required"
	}
	for i := 1; i < len(in.Members) && i < constants.MaxTeamMembers; i++ {
		name, roll := strings.TrimSpace(in.Members[i].Name), strings.TrimSpace(in.Members[i].Roll)
		if name != "" && roll == "" {
			fields[fmt.Sprintf("member%d_roll", i+1)] = "Roll number is required"
		}
		if roll != "" && name == "" {
			fields[fmt.Sprintf("member%d_name", i+1)] = "Name is required"
		}
	}

	if strings.TrimSpace(in.Year) == "" {
		fields["year"] = "Year is required"
	}
	if strings.TrimSpace(in.Department) == "" {
		fields["department"] = "Department is required"
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		fields["phone"] = "Phone number is required"
	} else if msg := validation.ValidatePhone(phone); msg != "" {
		fields["phone"] = msg
	}

	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "Email is required"
	} else if msg := validation.ValidateEmail(in.Email, ""); msg != "" {
		fields["email"] = msg
	}
}

// apply copies the team fields onto reg, dropping blank member slots.
func (in TeamInput) apply(reg *models.TeamRegistration) {
	members := make([]models.Member, 0, len(in.Members))
	for _, m := range in.Members {
		m.Name, m.Roll = strings.TrimSpace(m.Name), strings.TrimSpace(m.Roll)
		if m.Name == "" && m.Roll == "" {
			continue
		}
		members = append(members, m)
	}

	reg.TeamName = strings.TrimSpace(in.TeamName)
	reg.SetMembers(members)
	reg.Year = strings.TrimSpace(in.Year)
	reg.Department = strings.TrimSpace(in.Department)
	reg.Phone = strings.TrimSpace(in.Phone)
	reg.Email = strings.TrimSpace(in.Email)
}

// SubmitRegistrationInput is a student's registration form.
type SubmitRegistrationInput struct {
	TeamInput
	ProblemStatementID string
}

// RegistrationService handles student team registration.
type RegistrationService struct {
	regs     repository.TeamRegistrationRepository
	resolver *validation.ProblemResolver
	bucket   storage.Bucket
	observer RegistrationObserver
	log      *zap.Logger
	now      func() time.Time
}

// NewRegistrationService creates a new RegistrationService. Documents go to bucket;
// observer may be nil.
func NewRegistrationService(
	regs repository.TeamRegistrationRepository,
	problems validation.ProblemLookup,
	bucket storage.Bucket,
	observer RegistrationObserver,
	log *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		regs:     regs,
		resolver: validation.NewProblemResolver(problems),
		bucket:   bucket,
		observer: observer,
		log:      log,
		now:      time.Now,
	}
}

// Submit validates the form, uploads the optional document, then inserts the row.
// A failed upload leaves no row. A failed insert leaves the uploaded object behind;
// its key is logged.
func (s *RegistrationService) Submit(ctx context.Context, actor Actor, input SubmitRegistrationInput, document *FileUpload) (*models.TeamRegistration, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	fields := FieldErrors{}
	input.validate(fields)
	if strings.TrimSpace(input.ProblemStatementID) == "" {
		fields["problem_id"] = "Problem ID is required"
	}
	if err := fields.orNil(); err != nil {
		return nil, err
	}

	problemKey, err := s.resolver.Resolve(ctx, input.ProblemStatementID)
	if err != nil {
		s.log.Debug("Problem ID did not resolve",
			zap.String("problem_statement_id", input.ProblemStatementID),
			zap.Error(err))
		return nil, FieldErrors{"problem_id": validation.InvalidProblemIDMessage}
	}

	reg := &models.TeamRegistration{
		UserID:    actor.UserID,
		ProblemID: problemKey,
	}
	input.apply(reg)

	if document != nil {
		key := storage.DocumentKey(actor.UserID, s.now(), document.Name)
		if err := s.bucket.Upload(ctx, key, document.Reader, false); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDocumentUploadFailed, err)
		}
		reg.DocumentURL = key
		reg.DocumentFilename = document.Name
	}

	if err := s.regs.Create(ctx, reg); err != nil {
		if reg.DocumentURL != "" {
			s.log.Error("Registration insert failed after document upload; object left orphaned",
				zap.String("bucket", s.bucket.Name()),
				zap.String("key", reg.DocumentURL),
				zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToSaveRegistration, err)
	}

	s.log.Info("Team registered",
		zap.String("registration_id", reg.ID),
		zap.String("user_id", actor.UserID),
		zap.String("problem_id", problemKey))

	if s.observer != nil {
		s.observer.RegistrationCreated(*reg)
	}
	return reg, nil
}

// ListMine returns the caller's registrations with their problems.
func (s *RegistrationService) ListMine(ctx context.Context, actor Actor) ([]models.TeamRegistration, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	regs, err := s.regs.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}
