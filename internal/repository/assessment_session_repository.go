package repository

import (
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type AssessmentSessionRepository interface {
	// Create persists the session together with its frozen question
	// snapshot (GORM writes the many2many join rows).
	Create(session *model.AssessmentSession) error
	FindByIDAndUser(id, userID uint) (*model.AssessmentSession, error)
	// FindByIDAndUserWithQuestions preloads the snapshot for scoring.
	FindByIDAndUserWithQuestions(id, userID uint) (*model.AssessmentSession, error)
	FindCompletedByUser(userID uint) ([]model.AssessmentSession, error)
}

type assessmentSessionRepository struct {
	db *gorm.DB
}

func NewAssessmentSessionRepository(db *gorm.DB) AssessmentSessionRepository {
	return &assessmentSessionRepository{db: db}
}

func (r *assessmentSessionRepository) Create(session *model.AssessmentSession) error {
	return r.db.Create(session).Error
}

func (r *assessmentSessionRepository) FindByIDAndUser(id, userID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.Where("user_id = ?", userID).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *assessmentSessionRepository) FindByIDAndUserWithQuestions(id, userID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.
		Preload("Questions").
		Where("user_id = ?", userID).
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *assessmentSessionRepository) FindCompletedByUser(userID uint) ([]model.AssessmentSession, error) {
	var sessions []model.AssessmentSession
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.AssessmentCompleted).
		Order("started_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
