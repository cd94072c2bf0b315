package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event listings, sign-ups, and admin management.
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns active events.
func (h *EventHandler) ListEvents(c *gin.Context) {
	views, err := h.eventService.ListActive(c.Request.Context())
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": dto.ToEventDTOs(views)})
}

// ListAllEvents returns every event for the admin dashboard.
func (h *EventHandler) ListAllEvents(c *gin.Context) {
	views, err := h.eventService.ListAll(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": dto.ToEventDTOs(views)})
}

// GetEvent returns one event.
func (h *EventHandler) GetEvent(c *gin.Context) {
	view, err := h.eventService.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*view))
}

// Register signs the caller up for an event.
func (h *EventHandler) Register(c *gin.Context) {
	reg, err := h.eventService.Register(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         reg.ID,
		"event_id":   reg.EventID,
		"created_at": reg.CreatedAt,
	})
}

// RegistrationStatus reports whether the caller is registered for an event.
func (h *EventHandler) RegistrationStatus(c *gin.Context) {
	registered, err := h.eventService.IsRegistered(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": registered})
}

// CreateEvent adds an event from a multipart form with an optional "image" file.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	input, ok := bindEventInput(c)
	if !ok {
		return
	}
	image, closeImage, ok := formFile(c, "image", constants.MaxEventImageSize)
	if !ok {
		return
	}
	defer closeImage()

	event, err := h.eventService.Create(c.Request.Context(), middleware.CurrentActor(c), input, image)
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eventResponse(*event))
}

// UpdateEvent replaces an event's content, optionally swapping its image.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	input, ok := bindEventInput(c)
	if !ok {
		return
	}
	image, closeImage, ok := formFile(c, "image", constants.MaxEventImageSize)
	if !ok {
		return
	}
	defer closeImage()

	event, err := h.eventService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), input, image)
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventResponse(*event))
}

// DeleteEvent removes an event and its sign-ups.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func eventResponse(event models.Event) dto.EventDTO {
	return dto.ToEventDTO(services.EventView{
		Event:            event,
		RegistrationOpen: event.RegistrationOpen(time.Now()),
	})
}

// bindEventInput parses the event form. New events are active unless is_active says otherwise.
func bindEventInput(c *gin.Context) (services.EventInput, bool) {
	var req dto.EventRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.EventInput{}, false
	}

	fields := map[string]string{}
	input := services.EventInput{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		EventType:        req.EventType,
		Mode:             req.Mode,
		IsActive:         req.IsActive == nil || *req.IsActive,
		OrganizerName:    req.OrganizerName,
		OrganizerContact: req.OrganizerContact,
		MaxParticipants:  req.MaxParticipants,
	}
	if v := strings.TrimSpace(req.EventDate); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fields["event_date"] = "Event date must be an RFC 3339 timestamp"
		}
		input.EventDate = t
	}
	if v := strings.TrimSpace(req.RegistrationDeadline); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fields["registration_deadline"] = "Registration deadline must be an RFC 3339 timestamp"
		}
		input.RegistrationDeadline = &t
	}

	if len(fields) > 0 {
		apierrors.ValidationFailed(c, "", fields)
		return services.EventInput{}, false
	}
	return input, true
}

func respondEventError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyRegistered):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrEventInactive),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrEventFull):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrUnsupportedImageType):
		apierrors.ValidationFailed(c, "", map[string]string{"image": "Image must be a JPG, PNG, GIF or WebP file"})
	case errors.Is(err, services.ErrImageUploadFailed):
		apierrors.InternalError(c, "Failed to upload image")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
