package models

import (
	"time"

	"gorm.io/gorm"
)

type QueryStatus string

const (
	QueryStatusPending  QueryStatus = "pending"
	QueryStatusResolved QueryStatus = "resolved"
)

type UserQuery struct {
	ID         string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	QueryText  string      `gorm:"type:text;not null" json:"query_text"`
	UserID     *string     `gorm:"type:varchar(36);index" json:"user_id"`
	UserEmail  *string     `gorm:"type:varchar(255)" json:"user_email"`
	UserName   *string     `gorm:"type:varchar(255)" json:"user_name"`
	Status     QueryStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ResolvedAt *time.Time  `gorm:"index" json:"resolved_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (q *UserQuery) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = newID()
	}
	return nil
}

// EligibleForCleanup reports whether a resolved query has aged past the retention window.
func (q UserQuery) EligibleForCleanup(now time.Time, retention time.Duration) bool {
	if q.Status != QueryStatusResolved || q.ResolvedAt == nil {
		return false
	}
	return q.ResolvedAt.Before(now.Add(-retention))
}
