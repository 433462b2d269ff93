package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// InterviewPlanSize is the fixed number of questions in an interview plan.
const InterviewPlanSize = 7

// GeneratedQuestion is one multiple-choice item returned by the question
// generator, validated at the boundary before anything is persisted.
type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Code         string   `json:"code,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// PlannedQuestion is one entry in an interview plan.
type PlannedQuestion struct {
	Question       string   `json:"question"`
	ExpectedTopics []string `json:"expected_topics"`
	MaxScore       float64  `json:"max_score"`
}

// AnswerEvaluation is the scored verdict for a single interview answer.
type AnswerEvaluation struct {
	Score    float64 `json:"score"` // 0-10
	Feedback string  `json:"feedback"`
	FollowUp string  `json:"follow_up,omitempty"`
}

// GeneratorService abstracts the external language model. Every call is
// synchronous, bounded by the configured timeout, and attempted exactly
// once per request; callers decide whether a failure degrades or aborts.
type GeneratorService interface {
	GenerateQuestions(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error)
	GenerateInterviewPlan(ctx context.Context, skill, background string) ([]PlannedQuestion, error)
	ScoreInterviewAnswer(ctx context.Context, question string, expectedTopics []string, answer string) (*AnswerEvaluation, error)
}

// cleanJSONContent strips markdown code fences that models wrap around
// raw JSON responses.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// parseGeneratedQuestions decodes and validates a raw question batch.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleanJSONContent(raw)), &questions); err != nil {
		return nil, fmt.Errorf("generator returned invalid JSON: %w", err)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("generated question %d has empty text", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("generated question %d has %d options, want 4", i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return nil, fmt.Errorf("generated question %d has correct_index %d out of range 0-3", i, q.CorrectIndex)
		}
	}
	return questions, nil
}

// parseInterviewPlan decodes and validates a raw interview plan.
func parseInterviewPlan(raw string) ([]PlannedQuestion, error) {
	var plan []PlannedQuestion
	if err := json.Unmarshal([]byte(cleanJSONContent(raw)), &plan); err != nil {
		return nil, fmt.Errorf("generator returned invalid JSON: %w", err)
	}
	if len(plan) != InterviewPlanSize {
		return nil, fmt.Errorf("interview plan has %d questions, want %d", len(plan), InterviewPlanSize)
	}
	for i := range plan {
		if strings.TrimSpace(plan[i].Question) == "" {
			return nil, fmt.Errorf("planned question %d has empty text", i)
		}
		if plan[i].MaxScore <= 0 {
			plan[i].MaxScore = 10
		}
	}
	return plan, nil
}

// parseAnswerEvaluation decodes and validates a raw answer score, clamping
// the score into [0, 10].
func parseAnswerEvaluation(raw string) (*AnswerEvaluation, error) {
	var eval AnswerEvaluation
	if err := json.Unmarshal([]byte(cleanJSONContent(raw)), &eval); err != nil {
		return nil, fmt.Errorf("generator returned invalid JSON: %w", err)
	}
	if strings.TrimSpace(eval.Feedback) == "" {
		return nil, fmt.Errorf("answer evaluation is missing feedback")
	}
	if eval.Score < 0 {
		eval.Score = 0
	}
	if eval.Score > 10 {
		eval.Score = 10
	}
	return &eval, nil
}
