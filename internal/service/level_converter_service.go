package service

import (
	"math"

	"github.com/skilltrek/backend/internal/model"
)

// Scoring thresholds shared by the assessment and interview flows.
const (
	// AdvancedScoreThreshold and IntermediateScoreThreshold map a 0-100
	// verified score onto a level.
	AdvancedScoreThreshold     = 71.0
	IntermediateScoreThreshold = 41.0

	// AssessmentPassThreshold is the 0-100 pass mark for assessments.
	AssessmentPassThreshold = 60.0

	// InterviewPassThreshold is the 0-10 pass mark for interviews.
	InterviewPassThreshold = 7.0

	// InterviewScoreScale maps a 0-10 interview score onto the 0-100
	// verified-score scale used by the skill ledger.
	InterviewScoreScale = 10.0
)

// LevelConverterService converts raw scores into verified levels and
// pass/fail outcomes.
type LevelConverterService interface {
	// AssessmentScore computes the 0-100 score, rounded to one decimal.
	// The denominator is the session's configured total, so unanswered
	// questions count as zero.
	AssessmentScore(correct, totalQuestions int) float64
	LevelFromScore(score float64) string
	AssessmentPassed(score float64) bool
	InterviewPassed(lastScore float64) bool
	InterviewVerifiedScore(score float64) float64
}

type levelConverterService struct{}

func NewLevelConverterService() LevelConverterService {
	return &levelConverterService{}
}

func (s *levelConverterService) AssessmentScore(correct, totalQuestions int) float64 {
	if totalQuestions < 1 {
		totalQuestions = 1
	}
	score := float64(correct) / float64(totalQuestions) * 100
	return math.Round(score*10) / 10
}

func (s *levelConverterService) LevelFromScore(score float64) string {
	switch {
	case score >= AdvancedScoreThreshold:
		return model.LevelAdvanced
	case score >= IntermediateScoreThreshold:
		return model.LevelIntermediate
	default:
		return model.LevelBeginner
	}
}

func (s *levelConverterService) AssessmentPassed(score float64) bool {
	return score >= AssessmentPassThreshold
}

func (s *levelConverterService) InterviewPassed(lastScore float64) bool {
	return lastScore >= InterviewPassThreshold
}

func (s *levelConverterService) InterviewVerifiedScore(score float64) float64 {
	return score * InterviewScoreScale
}
