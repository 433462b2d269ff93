package model

import (
	"time"

	"gorm.io/gorm"
)

// Interview session lifecycle states. A failed plan generation never
// materializes a session row, so "failed" only appears when an admin
// marks a session as such.
const (
	InterviewPending   = "pending"
	InterviewActive    = "active"
	InterviewCompleted = "completed"
	InterviewFailed    = "failed"
)

// InterviewSession is a sequential AI-scored free-response interview.
// InterviewPlan holds the JSON-serialized ordered question plan, generated
// once at session start and never mutated afterwards.
type InterviewSession struct {
	ID              uint               `gorm:"primarykey" json:"id"`
	UserID          uint               `json:"user_id" gorm:"not null;index"`
	Skill           string             `json:"skill" gorm:"not null"`
	GithubURL       string             `json:"github_url,omitempty"`
	ResumeSummary   string             `json:"resume_summary,omitempty" gorm:"type:text"`
	RepoContext     string             `json:"repo_context,omitempty" gorm:"type:text"`
	InterviewPlan   string             `json:"-" gorm:"type:text"`
	Status          string             `json:"status" gorm:"default:'pending'"`
	Score           *float64           `json:"score,omitempty"`
	Passed          bool               `json:"passed" gorm:"default:false"`
	TotalQuestions  int                `json:"total_questions" gorm:"default:7"`
	CurrentQuestion int                `json:"current_question" gorm:"default:0"` // 0-based pointer
	Messages        []InterviewMessage `json:"messages,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time          `json:"created_at"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}
