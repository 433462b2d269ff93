package repository

import (
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
)

type UserSkillRepository interface {
	// WithTx returns a repository bound to the given transaction handle so
	// ledger writes can join the caller's transaction.
	WithTx(tx *gorm.DB) UserSkillRepository
	// FindByUserAndName matches the skill name case-insensitively.
	FindByUserAndName(userID uint, skillName string) (*model.UserSkill, error)
	Save(skill *model.UserSkill) error
	FindAllByUser(userID uint) ([]model.UserSkill, error)
}

type userSkillRepository struct {
	db *gorm.DB
}

func NewUserSkillRepository(db *gorm.DB) UserSkillRepository {
	return &userSkillRepository{db: db}
}

func (r *userSkillRepository) WithTx(tx *gorm.DB) UserSkillRepository {
	if tx == nil {
		return r
	}
	return &userSkillRepository{db: tx}
}

func (r *userSkillRepository) FindByUserAndName(userID uint, skillName string) (*model.UserSkill, error) {
	var skill model.UserSkill
	err := r.db.
		Where("user_id = ? AND LOWER(skill_name) = LOWER(?)", userID, skillName).
		First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *userSkillRepository) Save(skill *model.UserSkill) error {
	return r.db.Save(skill).Error
}

func (r *userSkillRepository) FindAllByUser(userID uint) ([]model.UserSkill, error) {
	var skills []model.UserSkill
	err := r.db.
		Where("user_id = ?", userID).
		Order("verified_score desc, skill_name asc").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}
