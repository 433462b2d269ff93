package model

import (
	"time"

	"gorm.io/gorm"
)

// SkippedOption is the sentinel SelectedOption value for a skipped question.
const SkippedOption = -1

// AssessmentAnswer records one submitted answer. IsCorrect is captured at
// submission time against the session snapshot and never recomputed.
type AssessmentAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SessionID      uint           `json:"session_id" gorm:"not null;index"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index"`
	Question       Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption int            `json:"selected_option"` // 0-3, -1 if skipped
	IsCorrect      bool           `json:"is_correct"`
	AnsweredAt     time.Time      `json:"answered_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
