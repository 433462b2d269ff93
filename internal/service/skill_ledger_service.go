package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"gorm.io/gorm"
)

// SkillLedgerService maintains the per-user record of self-reported vs.
// externally verified skill levels.
type SkillLedgerService interface {
	// UpsertVerified writes a verified outcome for (user, skillName),
	// matched case-insensitively. A non-empty verifiedLevel overwrites the
	// self-reported level; an empty one leaves it untouched on update and
	// defaults it to beginner on create. Pass the caller's transaction
	// handle so the write joins the request's transaction; nil uses the
	// service's own connection.
	UpsertVerified(tx *gorm.DB, userID uint, skillName string, verifiedScore float64, verifiedLevel string) error
	ListForUser(userID uint) ([]model.UserSkill, error)
}

type skillLedgerService struct {
	skillRepo repository.UserSkillRepository
}

func NewSkillLedgerService(skillRepo repository.UserSkillRepository) SkillLedgerService {
	return &skillLedgerService{skillRepo: skillRepo}
}

func (s *skillLedgerService) UpsertVerified(tx *gorm.DB, userID uint, skillName string, verifiedScore float64, verifiedLevel string) error {
	repo := s.skillRepo.WithTx(tx)

	record, err := repo.FindByUserAndName(userID, skillName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error looking up skill record for user %d, skill %q: %w", userID, skillName, err)
	}

	if record == nil {
		level := verifiedLevel
		if level == "" {
			level = model.LevelBeginner
		}
		record = &model.UserSkill{
			UserID:            userID,
			SkillName:         skillName,
			SelfReportedLevel: level,
		}
	} else if verifiedLevel != "" {
		record.SelfReportedLevel = verifiedLevel
	}

	record.VerifiedScore = &verifiedScore
	record.IsVerified = true

	if err := repo.Save(record); err != nil {
		return fmt.Errorf("error saving skill record for user %d, skill %q: %w", userID, skillName, err)
	}
	log.Info().Uint("userID", userID).Str("skill", skillName).Float64("verifiedScore", verifiedScore).
		Msg("Skill ledger updated")
	return nil
}

func (s *skillLedgerService) ListForUser(userID uint) ([]model.UserSkill, error) {
	return s.skillRepo.FindAllByUser(userID)
}
