package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/skilltrek/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.Question{},
		&model.AssessmentSession{},
		&model.AssessmentAnswer{},
		&model.InterviewSession{},
		&model.InterviewMessage{},
		&model.UserSkill{},
		&model.UserResume{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// fakeGenerator lets each test script the generator's behavior per call.
type fakeGenerator struct {
	questionsFn func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error)
	planFn      func(ctx context.Context, skill, background string) ([]PlannedQuestion, error)
	scoreFn     func(ctx context.Context, question string, expectedTopics []string, answer string) (*AnswerEvaluation, error)
}

func (f *fakeGenerator) GenerateQuestions(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
	if f.questionsFn == nil {
		return nil, fmt.Errorf("questionsFn not configured")
	}
	return f.questionsFn(ctx, skill, level, count)
}

func (f *fakeGenerator) GenerateInterviewPlan(ctx context.Context, skill, background string) ([]PlannedQuestion, error) {
	if f.planFn == nil {
		return nil, fmt.Errorf("planFn not configured")
	}
	return f.planFn(ctx, skill, background)
}

func (f *fakeGenerator) ScoreInterviewAnswer(ctx context.Context, question string, expectedTopics []string, answer string) (*AnswerEvaluation, error) {
	if f.scoreFn == nil {
		return nil, fmt.Errorf("scoreFn not configured")
	}
	return f.scoreFn(ctx, question, expectedTopics, answer)
}

// makeGeneratedQuestions builds n distinct questions whose correct answer
// is always option 0.
func makeGeneratedQuestions(n int) []GeneratedQuestion {
	out := make([]GeneratedQuestion, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, GeneratedQuestion{
			Question:     fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"right", "wrong A", "wrong B", "wrong C"},
			CorrectIndex: 0,
			Explanation:  fmt.Sprintf("Explanation %d", i+1),
		})
	}
	return out
}

// makeTestPlan builds a full-length interview plan.
func makeTestPlan() []PlannedQuestion {
	plan := make([]PlannedQuestion, 0, InterviewPlanSize)
	for i := 0; i < InterviewPlanSize; i++ {
		plan = append(plan, PlannedQuestion{
			Question:       fmt.Sprintf("Interview question %d?", i+1),
			ExpectedTopics: []string{"topic"},
			MaxScore:       10,
		})
	}
	return plan
}
