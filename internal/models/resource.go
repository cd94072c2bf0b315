package models

import (
	"time"

	"gorm.io/gorm"
)

type Resource struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SectionKey  string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"section_key"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"type:varchar(512)" json:"file_url"`
	FileType    string    `gorm:"type:varchar(255)" json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// PageContent is an editable block of site copy addressed by key.
type PageContent struct {
	Key       string    `gorm:"type:varchar(191);primaryKey" json:"key"`
	Content   string    `gorm:"type:text" json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PageContent) TableName() string {
	return "page_content"
}
