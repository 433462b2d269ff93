package repository

import (
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	CreateBatch(questions []model.Question) ([]model.Question, error)
	FindByID(id uint) (*model.Question, error)
	// FindBySkillAndLevel matches skill case-insensitively and level exactly.
	FindBySkillAndLevel(skill, level string) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) CreateBatch(questions []model.Question) ([]model.Question, error) {
	if len(questions) == 0 {
		return questions, nil
	}
	if err := r.db.Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySkillAndLevel(skill, level string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("LOWER(skill) = LOWER(?) AND level = ?", skill, level).
		Order("created_at desc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
