package repository

import (
	"errors"

	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type UserResumeRepository interface {
	// SummaryForUser returns the stored resume summary, or "" when the user
	// has no resume on file. Absence is not an error.
	SummaryForUser(userID uint) (string, error)
}

type userResumeRepository struct {
	db *gorm.DB
}

func NewUserResumeRepository(db *gorm.DB) UserResumeRepository {
	return &userResumeRepository{db: db}
}

func (r *userResumeRepository) SummaryForUser(userID uint) (string, error) {
	var resume model.UserResume
	err := r.db.Where("user_id = ?", userID).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return resume.Summary, nil
}
