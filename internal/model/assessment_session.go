package model

import (
	"time"

	"gorm.io/gorm"
)

// Assessment session lifecycle states.
const (
	AssessmentInProgress = "in_progress"
	AssessmentCompleted  = "completed"
	AssessmentAbandoned  = "abandoned"
)

// AssessmentSession is a single-attempt timed quiz for one user.
// The associated Questions are a snapshot frozen at creation time; all
// later scoring runs against this set, not a live pool query.
type AssessmentSession struct {
	ID             uint               `gorm:"primarykey" json:"id"`
	UserID         uint               `json:"user_id" gorm:"not null;index"`
	Skill          string             `json:"skill" gorm:"not null"`
	Level          string             `json:"level" gorm:"not null"`
	Questions      []Question         `json:"questions,omitempty" gorm:"many2many:assessment_session_questions;"`
	Score          *float64           `json:"score,omitempty"` // 0-100, nil until completed
	TotalQuestions int                `json:"total_questions" gorm:"default:10"`
	CorrectAnswers int                `json:"correct_answers" gorm:"default:0"`
	TabSwitches    int                `json:"tab_switches" gorm:"default:0"`
	Status         string             `json:"status" gorm:"default:'in_progress'"`
	Answers        []AssessmentAnswer `json:"answers,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StartedAt      time.Time          `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`
}
