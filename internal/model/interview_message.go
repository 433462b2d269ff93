package model

import (
	"time"

	"gorm.io/gorm"
)

// Interview message roles.
const (
	RoleAI   = "ai"
	RoleUser = "user"
)

// InterviewMessage is one append-only transcript entry. The transcript is
// reconstructed purely by replaying messages in Timestamp order.
type InterviewMessage struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SessionID      uint           `json:"session_id" gorm:"not null;index"`
	Role           string         `json:"role" gorm:"not null"` // "ai" or "user"
	Content        string         `json:"content" gorm:"type:text;not null"`
	QuestionNumber *int           `json:"question_number,omitempty"` // 1-based
	Score          *float64       `json:"score,omitempty"`           // 0-10 per-turn score
	Timestamp      time.Time      `json:"timestamp" gorm:"autoCreateTime;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
