package model

import (
	"time"

	"gorm.io/gorm"
)

// Skill levels, used both self-reported and as verified outcomes.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// UserSkill is the skill ledger entry: one per (user, skill-name) pair,
// matched case-insensitively. VerifiedScore is 0-100, set by the
// assessment and interview flows.
type UserSkill struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_skill"`
	SkillName         string         `json:"skill_name" gorm:"not null;uniqueIndex:idx_user_skill"`
	SelfReportedLevel string         `json:"self_reported_level" gorm:"default:'beginner'"`
	VerifiedScore     *float64       `json:"verified_score,omitempty"`
	IsVerified        bool           `json:"is_verified" gorm:"default:false"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
