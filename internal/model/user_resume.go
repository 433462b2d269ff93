package model

import (
	"time"

	"gorm.io/gorm"
)

// UserResume holds the AI-generated summary of an uploaded resume. Upload
// and parsing happen elsewhere; the interview flow only reads Summary as
// optional context, and its absence is valid input.
type UserResume struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	OriginalFilename string         `json:"original_filename,omitempty"`
	Summary          string         `json:"summary,omitempty" gorm:"type:text"`
	UploadedAt       time.Time      `json:"uploaded_at" gorm:"autoUpdateTime"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
