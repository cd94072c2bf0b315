package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo      repository.UserRepository
	allowedDomain string
}

// NewAuthService creates a new AuthService. Signups must use an address in allowedDomain.
func NewAuthService(userRepo repository.UserRepository, allowedDomain string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		allowedDomain: allowedDomain,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in SignupInput) validate(domain string) FieldErrors {
	fields := FieldErrors{}
	if len([]rune(strings.TrimSpace(in.Name))) < constants.MinNameLength {
		fields["name"] = fmt.Sprintf("Name must be at least %d characters", constants.MinNameLength)
	}
	if msg := validation.ValidateEmail(normalizeEmail(in.Email), domain); msg != "" {
		fields["email"] = msg
	}
	if len(in.Password) < constants.MinPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)
	}
	if in.ConfirmPassword != in.Password {
		fields["confirm_password"] = "Passwords do not match"
	}
	return fields
}

// Signup creates a student account with its profile.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if err := input.validate(s.allowedDomain).orNil(); err != nil {
		return nil, err
	}
	return s.createUser(ctx, strings.TrimSpace(input.Name), normalizeEmail(input.Email), input.Password, models.RoleStudent)
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	profile := &models.Profile{FullName: name}
	userRole := &models.UserRole{Role: role}

	if err := s.userRepo.CreateWithProfileAndRole(ctx, user, profile, userRole); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ActorFor loads the user behind a session and describes them as an Actor.
func (s *AuthService) ActorFor(ctx context.Context, userID string) (Actor, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return Actor{}, err
	}
	return ActorFromUser(user), nil
}

// ActorFromUser describes a loaded user as an Actor.
func ActorFromUser(user *models.User) Actor {
	return Actor{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Profile.FullName,
		Admin:  user.Role.Role == models.RoleAdmin,
	}
}

// CreateAdminInput describes an operator-provisioned admin account.
type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin creates an admin account, or promotes the existing account with that
// email. The college-domain rule does not apply. Reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, input CreateAdminInput) (*models.User, bool, error) {
	email := normalizeEmail(input.Email)
	if msg := validation.ValidateEmail(email, ""); msg != "" {
		return nil, false, FieldErrors{"email": msg}
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.userRepo.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return nil, false, fmt.Errorf("failed to promote user: %w", err)
		}
		existing.Role.Role = models.RoleAdmin
		return existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, fmt.Errorf("failed to check email: %w", err)
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, false, FieldErrors{"password": fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)}
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Administrator"
	}

	user, err := s.createUser(ctx, name, email, input.Password, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
