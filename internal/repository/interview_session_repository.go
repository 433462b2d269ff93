package repository

import (
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type InterviewSessionRepository interface {
	FindByIDAndUser(id, userID uint) (*model.InterviewSession, error)
	FindRecentByUser(userID uint, limit int) ([]model.InterviewSession, error)
}

type interviewSessionRepository struct {
	db *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) InterviewSessionRepository {
	return &interviewSessionRepository{db: db}
}

func (r *interviewSessionRepository) FindByIDAndUser(id, userID uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.Where("user_id = ?", userID).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *interviewSessionRepository) FindRecentByUser(userID uint, limit int) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
