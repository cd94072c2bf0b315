package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventInactive        = errors.New("event is not active")
	ErrRegistrationClosed   = errors.New("registration deadline has passed")
	ErrEventFull            = errors.New("event has reached maximum participants")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageUploadFailed    = errors.New("failed to upload event image")
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// EventInput is the editable content of an event.
type EventInput struct {
	Title                string
	Description          string
	EventDate            time.Time
	Location             string
	EventType            string
	Mode                 string
	IsActive             bool
	OrganizerName        string
	OrganizerContact     string
	RegistrationDeadline *time.Time
	MaxParticipants      *int
}

// EventView is an event with the registration state derived at read time.
type EventView struct {
	models.Event
	RegistrationOpen bool
	Registered       int64
}

// EventService handles event listing, admin management and user sign-ups.
type EventService struct {
	repo   repository.EventRepository
	images storage.Bucket
	log    *zap.Logger
	now    func() time.Time
}

// NewEventService creates a new EventService. Uploaded images go to images.
func NewEventService(repo repository.EventRepository, images storage.Bucket, log *zap.Logger) *EventService {
	return &EventService{
		repo:   repo,
		images: images,
		log:    log,
		now:    time.Now,
	}
}

func (s *EventService) view(ctx context.Context, event models.Event) (EventView, error) {
	count, err := s.repo.CountRegistrations(ctx, event.ID)
	if err != nil {
		return EventView{}, fmt.Errorf("failed to count registrations: %w", err)
	}
	open := event.RegistrationOpen(s.now())
	if event.MaxParticipants != nil && count >= int64(*event.MaxParticipants) {
		open = false
	}
	return EventView{Event: event, RegistrationOpen: open, Registered: count}, nil
}

func (s *EventService) views(ctx context.Context, events []models.Event) ([]EventView, error) {
	views := make([]EventView, len(events))
	for i, e := range events {
		v, err := s.view(ctx, e)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

// ListActive returns active events ordered by date.
func (s *EventService) ListActive(ctx context.Context) ([]EventView, error) {
	events, err := s.repo.List(ctx, repository.EventFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return s.views(ctx, events)
}

// ListAll returns every event, active or not.
func (s *EventService) ListAll(ctx context.Context, actor Actor) ([]EventView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	events, err := s.repo.List(ctx, repository.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return s.views(ctx, events)
}

func (s *EventService) find(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// Get returns one event. Inactive events are visible to admins only.
func (s *EventService) Get(ctx context.Context, actor Actor, id string) (*EventView, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsActive && !actor.Admin {
		return nil, ErrEventNotFound
	}
	v, err := s.view(ctx, *event)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// validate checks input. previous is the stored date when editing; keeping an
// already-past date is allowed.
func (in EventInput) validate(now time.Time, previous *time.Time) FieldErrors {
	fields := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	switch {
	case in.EventDate.IsZero():
		fields["event_date"] = "Event date is required"
	case in.EventDate.Before(now):
		if previous == nil || !previous.Equal(in.EventDate) {
			fields["event_date"] = "Event date cannot be in the past"
		}
	}
	if in.MaxParticipants != nil && *in.MaxParticipants < 1 {
		fields["max_participants"] = "Maximum participants must be at least 1"
	}
	if in.RegistrationDeadline != nil && !in.EventDate.IsZero() && in.RegistrationDeadline.After(in.EventDate) {
		fields["registration_deadline"] = "Registration deadline must be before the event date"
	}
	return fields
}

func (in EventInput) apply(e *models.Event) {
	e.Title = strings.TrimSpace(in.Title)
	e.Description = strings.TrimSpace(in.Description)
	e.EventDate = in.EventDate
	e.Location = strings.TrimSpace(in.Location)
	e.EventType = strings.TrimSpace(in.EventType)
	e.Mode = strings.TrimSpace(in.Mode)
	e.IsActive = in.IsActive
	e.OrganizerName = strings.TrimSpace(in.OrganizerName)
	e.OrganizerContact = strings.TrimSpace(in.OrganizerContact)
	e.RegistrationDeadline = in.RegistrationDeadline
	e.MaxParticipants = in.MaxParticipants
}

// uploadImage stores an event image and returns its public URL.
func (s *EventService) uploadImage(ctx context.Context, image *FileUpload) (string, error) {
	if !imageExtensions[strings.ToLower(filepath.Ext(image.Name))] {
		return "", ErrUnsupportedImageType
	}
	key := storage.EventImageKey(s.now(), image.Name)
	if err := s.images.Upload(ctx, key, image.Reader, true); err != nil {
		return "", fmt.Errorf("%w: %w", ErrImageUploadFailed, err)
	}
	return s.images.PublicURL(key), nil
}

// Create adds an event, uploading image first when given.
func (s *EventService) Create(ctx context.Context, actor Actor, input EventInput, image *FileUpload) (*models.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := input.validate(s.now(), nil).orNil(); err != nil {
		return nil, err
	}

	event := &models.Event{}
	input.apply(event)
	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		event.ImageURL = url
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.log.Info("Event created", zap.String("event_id", event.ID), zap.String("title", event.Title))
	return event, nil
}

// Update replaces an event's content. Without a new image the current one is kept.
func (s *EventService) Update(ctx context.Context, actor Actor, id string, input EventInput, image *FileUpload) (*models.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := event.EventDate
	if err := input.validate(s.now(), &previous).orNil(); err != nil {
		return nil, err
	}

	input.apply(event)
	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		event.ImageURL = url
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes an event and its registrations.
func (s *EventService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// Register signs the caller up for an event.
func (s *EventService) Register(ctx context.Context, actor Actor, eventID string) (*models.EventRegistration, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	event, err := s.find(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, ErrEventInactive
	}
	if !event.RegistrationOpen(s.now()) {
		return nil, ErrRegistrationClosed
	}

	if _, err := s.repo.FindRegistration(ctx, eventID, actor.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}

	reg := &models.EventRegistration{EventID: eventID, UserID: actor.UserID}
	if err := s.repo.Register(ctx, reg, event.MaxParticipants); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventFull):
			return nil, ErrEventFull
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyRegistered
		default:
			return nil, fmt.Errorf("failed to register for event: %w", err)
		}
	}
	return reg, nil
}

// IsRegistered reports whether the caller is registered for the event.
func (s *EventService) IsRegistered(ctx context.Context, actor Actor, eventID string) (bool, error) {
	if err := requireUser(actor); err != nil {
		return false, err
	}
	if _, err := s.find(ctx, eventID); err != nil {
		return false, err
	}

	_, err := s.repo.FindRegistration(ctx, eventID, actor.UserID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
}
