package dto

import (
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
)

// EventRequest is the multipart admin event form. Dates are RFC 3339.
type EventRequest struct {
	Title                string `form:"title"`
	Description          string `form:"description"`
	EventDate            string `form:"event_date"`
	Location             string `form:"location"`
	EventType            string `form:"event_type"`
	Mode                 string `form:"mode"`
	IsActive             *bool  `form:"is_active"`
	OrganizerName        string `form:"organizer_name"`
	OrganizerContact     string `form:"organizer_contact"`
	RegistrationDeadline string `form:"registration_deadline"`
	MaxParticipants      *int   `form:"max_participants"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	EventDate            time.Time  `json:"event_date"`
	Location             string     `json:"location"`
	EventType            string     `json:"event_type"`
	Mode                 string     `json:"mode"`
	IsActive             bool       `json:"is_active"`
	ImageURL             string     `json:"image_url,omitempty"`
	OrganizerName        string     `json:"organizer_name,omitempty"`
	OrganizerContact     string     `json:"organizer_contact,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	MaxParticipants      *int       `json:"max_participants"`
	RegisteredCount      int64      `json:"registered_count"`
	RegistrationOpen     bool       `json:"registration_open"`
}

func ToEventDTO(v services.EventView) EventDTO {
	return EventDTO{
		ID:                   v.ID,
		Title:                v.Title,
		Description:          v.Description,
		EventDate:            v.EventDate,
		Location:             v.Location,
		EventType:            v.EventType,
		Mode:                 v.Mode,
		IsActive:             v.IsActive,
		ImageURL:             v.ImageURL,
		OrganizerName:        v.OrganizerName,
		OrganizerContact:     v.OrganizerContact,
		RegistrationDeadline: v.RegistrationDeadline,
		MaxParticipants:      v.MaxParticipants,
		RegisteredCount:      v.Registered,
		RegistrationOpen:     v.RegistrationOpen,
	}
}

func ToEventDTOs(views []services.EventView) []EventDTO {
	out := make([]EventDTO, len(views))
	for i, v := range views {
		out[i] = ToEventDTO(v)
	}
	return out
}
