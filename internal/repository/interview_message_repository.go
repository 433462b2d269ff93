package repository

import (
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type InterviewMessageRepository interface {
	// FindBySession returns the append-only log in strict timestamp order.
	FindBySession(sessionID uint) ([]model.InterviewMessage, error)
}

type interviewMessageRepository struct {
	db *gorm.DB
}

func NewInterviewMessageRepository(db *gorm.DB) InterviewMessageRepository {
	return &interviewMessageRepository{db: db}
}

func (r *interviewMessageRepository) FindBySession(sessionID uint) ([]model.InterviewMessage, error) {
	var messages []model.InterviewMessage
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("timestamp asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
