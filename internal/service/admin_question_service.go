package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
)

// AdminQuestionService lets operators author questions into the bank
// without going through generation.
type AdminQuestionService interface {
	CreateQuestion(req dto.CreateQuestionDTO) (*dto.CreateQuestionResponse, error)
}

type adminQuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewAdminQuestionService(questionRepo repository.QuestionRepository) AdminQuestionService {
	return &adminQuestionService{questionRepo: questionRepo}
}

func (s *adminQuestionService) CreateQuestion(req dto.CreateQuestionDTO) (*dto.CreateQuestionResponse, error) {
	for i, option := range req.Options {
		if strings.TrimSpace(option) == "" {
			return nil, fmt.Errorf("option %d is empty: %w", i, apperr.ErrValidation)
		}
	}

	question := model.Question{
		Skill:        strings.TrimSpace(req.Skill),
		Level:        req.Level,
		QuestionText: req.QuestionText,
		CodeSnippet:  req.CodeSnippet,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Explanation:  req.Explanation,
		Source:       model.SourceManual,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	log.Info().Uint("questionID", question.ID).Str("skill", question.Skill).Str("level", question.Level).
		Msg("Manual question created")
	return &dto.CreateQuestionResponse{
		ID:     question.ID,
		Skill:  question.Skill,
		Level:  question.Level,
		Source: question.Source,
	}, nil
}
