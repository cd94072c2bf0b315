package models

import (
	"time"

	"gorm.io/gorm"
)

// ProblemStatement is a catalog entry teams pick when registering. ProblemStatementID is the
// human-facing identifier ("25001"); ID is the key registrations reference.
type ProblemStatement struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProblemStatementID string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"problem_statement_id"`
	Title              string    `gorm:"type:varchar(255);not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	Category           string    `gorm:"type:varchar(100)" json:"category"`
	Theme              string    `gorm:"type:varchar(100);index" json:"theme"`
	Department         string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *ProblemStatement) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
