package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID                   string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title                string     `gorm:"type:varchar(255);not null" json:"title"`
	Description          string     `gorm:"type:text" json:"description"`
	EventDate            time.Time  `gorm:"not null;index" json:"event_date"`
	Location             string     `gorm:"type:varchar(255)" json:"location"`
	EventType            string     `gorm:"type:varchar(100)" json:"event_type"`
	Mode                 string     `gorm:"type:varchar(50)" json:"mode"`
	IsActive             bool       `gorm:"not null;index" json:"is_active"`
	ImageURL             string     `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	OrganizerName        string     `gorm:"type:varchar(255)" json:"organizer_name,omitempty"`
	OrganizerContact     string     `gorm:"type:varchar(255)" json:"organizer_contact,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	MaxParticipants      *int       `json:"max_participants"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = newID()
	}
	return nil
}

// RegistrationOpen reports whether the event accepts registrations at now.
func (e Event) RegistrationOpen(now time.Time) bool {
	if !e.IsActive {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return true
}

type EventRegistration struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (r *EventRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}
