package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"gorm.io/gorm"
)

// DefaultAssessmentQuestions is the question count for a new session.
const DefaultAssessmentQuestions = 10

// TabViolationThreshold is the number of tab switches that raises the
// violation flag. The flag never blocks scoring.
const TabViolationThreshold = 3

// AssessmentService manages the single-attempt quiz lifecycle: issuing a
// frozen question snapshot, scoring a bulk submission against it, and
// feeding the verified result into the skill ledger.
type AssessmentService interface {
	Create(ctx context.Context, userID uint, req dto.GenerateAssessmentRequest) (*dto.GenerateAssessmentResponse, error)
	Submit(ctx context.Context, userID uint, req dto.SubmitAssessmentRequest) (*dto.SubmitAssessmentResponse, error)
	History(userID uint) ([]dto.AssessmentSessionDTO, error)
	Result(userID, sessionID uint) (*dto.AssessmentSessionDTO, error)
}

type assessmentService struct {
	sessionRepo  repository.AssessmentSessionRepository
	questionBank QuestionBankService
	levels       LevelConverterService
	ledger       SkillLedgerService
	db           *gorm.DB
}

func NewAssessmentService(
	sessionRepo repository.AssessmentSessionRepository,
	questionBank QuestionBankService,
	levels LevelConverterService,
	ledger SkillLedgerService,
	db *gorm.DB,
) AssessmentService {
	return &assessmentService{
		sessionRepo:  sessionRepo,
		questionBank: questionBank,
		levels:       levels,
		ledger:       ledger,
		db:           db,
	}
}

// normalizeLevel lowercases and trims the input, defaulting anything
// still unrecognized to beginner.
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
		return level
	default:
		return model.LevelBeginner
	}
}

func (s *assessmentService) Create(ctx context.Context, userID uint, req dto.GenerateAssessmentRequest) (*dto.GenerateAssessmentResponse, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, fmt.Errorf("skill is required: %w", apperr.ErrValidation)
	}
	level := normalizeLevel(req.Level)

	questions, err := s.questionBank.EnsurePool(ctx, skill, level, DefaultAssessmentQuestions)
	if err != nil {
		return nil, err
	}

	session := model.AssessmentSession{
		UserID:         userID,
		Skill:          skill,
		Level:          level,
		TotalQuestions: DefaultAssessmentQuestions,
		Status:         model.AssessmentInProgress,
		Questions:      questions,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Str("skill", req.Skill).Msg("Failed to create assessment session")
		return nil, fmt.Errorf("error creating assessment session: %w", err)
	}

	resp := dto.GenerateAssessmentResponse{
		SessionID: session.ID,
		Skill:     session.Skill,
		Level:     session.Level,
		Questions: make([]dto.AssessmentQuestionDTO, 0, len(questions)),
	}
	// The DTO has no correct-index field, so the answer key never appears
	// in the payload.
	for _, q := range questions {
		var qDTO dto.AssessmentQuestionDTO
		if err := copier.Copy(&qDTO, &q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		resp.Questions = append(resp.Questions, qDTO)
	}
	return &resp, nil
}

func (s *assessmentService) Submit(ctx context.Context, userID uint, req dto.SubmitAssessmentRequest) (*dto.SubmitAssessmentResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUserWithQuestions(req.SessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment session %d: %w", req.SessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("error loading assessment session %d: %w", req.SessionID, err)
	}
	if session.Status == model.AssessmentCompleted {
		return nil, fmt.Errorf("assessment already submitted: %w", apperr.ErrConflict)
	}

	// Scoring always runs against the snapshot frozen at creation, never a
	// live pool query.
	snapshot := make(map[uint]model.Question, len(session.Questions))
	for _, q := range session.Questions {
		snapshot[q.ID] = q
	}

	var resp *dto.SubmitAssessmentResponse
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction to keep a double submit from
		// producing two completions.
		var current model.AssessmentSession
		if err := tx.Where("user_id = ?", userID).First(&current, session.ID).Error; err != nil {
			return fmt.Errorf("error re-reading session %d: %w", session.ID, err)
		}
		if current.Status == model.AssessmentCompleted {
			return fmt.Errorf("assessment already submitted: %w", apperr.ErrConflict)
		}

		correct := 0
		seen := make(map[uint]bool, len(req.Answers))
		details := make([]dto.AnswerResultDTO, 0, len(req.Answers))

		for _, submitted := range req.Answers {
			question, inSnapshot := snapshot[submitted.QuestionID]
			if !inSnapshot {
				// Unknown ids are skipped, not fatal; the log line is the
				// audit trail for partial batches.
				log.Warn().Uint("sessionID", session.ID).Uint("questionID", submitted.QuestionID).
					Msg("Submitted answer references a question outside the session snapshot, skipping")
				continue
			}
			if seen[submitted.QuestionID] {
				log.Warn().Uint("sessionID", session.ID).Uint("questionID", submitted.QuestionID).
					Msg("Duplicate answer for question, keeping first occurrence")
				continue
			}
			seen[submitted.QuestionID] = true

			isCorrect := submitted.SelectedOption >= 0 && submitted.SelectedOption == question.CorrectIndex
			if isCorrect {
				correct++
			}

			answer := model.AssessmentAnswer{
				SessionID:      session.ID,
				QuestionID:     question.ID,
				SelectedOption: submitted.SelectedOption,
				IsCorrect:      isCorrect,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return fmt.Errorf("error persisting answer for question %d: %w", question.ID, err)
			}

			yourAnswer := "Skipped"
			if submitted.SelectedOption >= 0 && submitted.SelectedOption < len(question.Options) {
				yourAnswer = question.Options[submitted.SelectedOption]
			}
			correctAnswer := ""
			if question.CorrectIndex >= 0 && question.CorrectIndex < len(question.Options) {
				correctAnswer = question.Options[question.CorrectIndex]
			}
			details = append(details, dto.AnswerResultDTO{
				QuestionID:    question.ID,
				QuestionText:  question.QuestionText,
				YourAnswer:    yourAnswer,
				CorrectAnswer: correctAnswer,
				IsCorrect:     isCorrect,
				Explanation:   question.Explanation,
			})
		}

		score := s.levels.AssessmentScore(correct, session.TotalQuestions)
		verifiedLevel := s.levels.LevelFromScore(score)
		now := time.Now()

		updates := map[string]interface{}{
			"score":           score,
			"correct_answers": correct,
			"tab_switches":    req.TabSwitches,
			"status":          model.AssessmentCompleted,
			"completed_at":    now,
		}
		if err := tx.Model(&model.AssessmentSession{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("error completing session %d: %w", session.ID, err)
		}

		// Verification overwrites whatever level the user self-reported.
		if err := s.ledger.UpsertVerified(tx, userID, session.Skill, score, verifiedLevel); err != nil {
			return err
		}

		resp = &dto.SubmitAssessmentResponse{
			SessionID:    session.ID,
			Skill:        session.Skill,
			Score:        score,
			Correct:      correct,
			Total:        session.TotalQuestions,
			TabSwitches:  req.TabSwitches,
			TabViolation: req.TabSwitches >= TabViolationThreshold,
			Passed:       s.levels.AssessmentPassed(score),
			LevelAwarded: verifiedLevel,
			Details:      details,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Uint("sessionID", session.ID).Uint("userID", userID).Float64("score", resp.Score).
		Str("levelAwarded", resp.LevelAwarded).Msg("Assessment submission scored")
	return resp, nil
}

func (s *assessmentService) History(userID uint) ([]dto.AssessmentSessionDTO, error) {
	sessions, err := s.sessionRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching assessment history: %w", err)
	}
	dtos := make([]dto.AssessmentSessionDTO, 0, len(sessions))
	for _, session := range sessions {
		var summary dto.AssessmentSessionDTO
		if err := copier.Copy(&summary, &session); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("Error copying session to summary DTO")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *assessmentService) Result(userID, sessionID uint) (*dto.AssessmentSessionDTO, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment session %d: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("error loading assessment session %d: %w", sessionID, err)
	}
	var resp dto.AssessmentSessionDTO
	if err := copier.Copy(&resp, session); err != nil {
		return nil, fmt.Errorf("error preparing session response: %w", err)
	}
	return &resp, nil
}
