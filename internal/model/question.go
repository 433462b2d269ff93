package model

import (
	"time"

	"gorm.io/gorm"
)

// Question provenance values.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
	SourceManual    = "manual"
)

// Question is a multiple-choice question in the (skill, level) pool.
// CorrectIndex is never serialized to clients.
type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Skill        string         `json:"skill" gorm:"not null;index:idx_questions_skill_level"`
	Level        string         `json:"level" gorm:"not null;index:idx_questions_skill_level"` // "beginner", "intermediate", "advanced"
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	CodeSnippet  string         `json:"code_snippet,omitempty" gorm:"type:text"`
	Options      []string       `json:"options" gorm:"serializer:json;not null"` // exactly 4
	CorrectIndex int            `json:"-" gorm:"not null"`                       // 0-3
	Explanation  string         `json:"explanation,omitempty" gorm:"type:text"`
	Source       string         `json:"source" gorm:"default:'generated'"` // "generated", "fallback", "manual"
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
