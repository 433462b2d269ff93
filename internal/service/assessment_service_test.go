package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type assessmentFixture struct {
	db     *gorm.DB
	svc    AssessmentService
	ledger SkillLedgerService
}

// newAssessmentFixture wires the full assessment stack onto an in-memory
// database. The generator always returns questions whose correct answer
// is option 0.
func newAssessmentFixture(t *testing.T) *assessmentFixture {
	t.Helper()
	db := newTestDB(t)

	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			return makeGeneratedQuestions(count), nil
		},
	}
	questionRepo := repository.NewQuestionRepository(db)
	bank := NewQuestionBankService(questionRepo, gen, rand.New(rand.NewSource(1)))
	levels := NewLevelConverterService()
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))
	svc := NewAssessmentService(repository.NewAssessmentSessionRepository(db), bank, levels, ledger, db)

	return &assessmentFixture{db: db, svc: svc, ledger: ledger}
}

func (f *assessmentFixture) createSession(t *testing.T, userID uint) *dto.GenerateAssessmentResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), userID, dto.GenerateAssessmentRequest{
		Skill: "python",
		Level: model.LevelBeginner,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateAssessmentIssuesFullSnapshot(t *testing.T) {
	f := newAssessmentFixture(t)

	resp := f.createSession(t, 1)
	assert.NotZero(t, resp.SessionID)
	assert.Equal(t, "python", resp.Skill)
	require.Len(t, resp.Questions, DefaultAssessmentQuestions)
	for _, q := range resp.Questions {
		assert.Len(t, q.Options, 4)
	}
}

func TestCreateAssessmentNormalizesLevelInput(t *testing.T) {
	f := newAssessmentFixture(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Intermediate", model.LevelIntermediate},
		{" advanced ", model.LevelAdvanced},
		{"BEGINNER", model.LevelBeginner},
	}
	for _, tt := range tests {
		resp, err := f.svc.Create(context.Background(), 1, dto.GenerateAssessmentRequest{
			Skill: "python",
			Level: tt.in,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.Level, "level %q", tt.in)
	}
}

func TestCreateAssessmentRejectsBlankSkill(t *testing.T) {
	f := newAssessmentFixture(t)

	_, err := f.svc.Create(context.Background(), 1, dto.GenerateAssessmentRequest{
		Skill: "   ",
		Level: model.LevelBeginner,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, f.db.Model(&model.AssessmentSession{}).Count(&count).Error)
	assert.Zero(t, count, "rejected input must not leave a session behind")
}

func TestCreateAssessmentTrimsSkill(t *testing.T) {
	f := newAssessmentFixture(t)

	resp, err := f.svc.Create(context.Background(), 1, dto.GenerateAssessmentRequest{
		Skill: "  python  ",
		Level: model.LevelBeginner,
	})
	require.NoError(t, err)
	assert.Equal(t, "python", resp.Skill)
}

func TestCreateAssessmentDefaultsInvalidLevel(t *testing.T) {
	f := newAssessmentFixture(t)

	resp, err := f.svc.Create(context.Background(), 1, dto.GenerateAssessmentRequest{
		Skill: "python",
		Level: "wizard",
	})
	require.NoError(t, err)
	assert.Equal(t, model.LevelBeginner, resp.Level)
}

func TestSubmitScoresAgainstConfiguredTotal(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	// 7 correct, 3 skipped out of 10.
	answers := make([]dto.SubmittedAnswerDTO, 0, 10)
	for i, q := range created.Questions {
		selected := 0
		if i >= 7 {
			selected = model.SkippedOption
		}
		answers = append(answers, dto.SubmittedAnswerDTO{QuestionID: q.ID, SelectedOption: selected})
	}

	resp, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID:   created.SessionID,
		Answers:     answers,
		TabSwitches: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 70.0, resp.Score)
	assert.Equal(t, 7, resp.Correct)
	assert.Equal(t, 10, resp.Total)
	assert.True(t, resp.Passed)
	assert.False(t, resp.TabViolation)
	assert.Equal(t, model.LevelIntermediate, resp.LevelAwarded)
	require.Len(t, resp.Details, 10)

	skipped := 0
	for _, d := range resp.Details {
		if d.YourAnswer == "Skipped" {
			skipped++
			assert.False(t, d.IsCorrect)
		}
	}
	assert.Equal(t, 3, skipped)
}

func TestSubmitPartialBatchCountsMissingAsZero(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	// Only 5 of 10 answered; the denominator stays the configured total.
	answers := make([]dto.SubmittedAnswerDTO, 0, 5)
	for _, q := range created.Questions[:5] {
		answers = append(answers, dto.SubmittedAnswerDTO{QuestionID: q.ID, SelectedOption: 0})
	}

	resp, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID: created.SessionID,
		Answers:   answers,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Score)
	assert.False(t, resp.Passed)
}

func TestSubmitSkipsUnknownAndDuplicateQuestions(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	first := created.Questions[0].ID
	answers := []dto.SubmittedAnswerDTO{
		{QuestionID: first, SelectedOption: 0},
		{QuestionID: first, SelectedOption: 1},  // duplicate, ignored
		{QuestionID: 999999, SelectedOption: 0}, // outside the snapshot
	}

	resp, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID: created.SessionID,
		Answers:   answers,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Correct)
	require.Len(t, resp.Details, 1, "unknown and duplicate ids never reach the results")
}

func TestSubmitFlagsTabViolation(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	resp, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID:   created.SessionID,
		Answers:     []dto.SubmittedAnswerDTO{{QuestionID: created.Questions[0].ID, SelectedOption: 0}},
		TabSwitches: 3,
	})
	require.NoError(t, err)
	assert.True(t, resp.TabViolation)
	// The flag never voids the score.
	assert.Equal(t, 10.0, resp.Score)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	req := dto.SubmitAssessmentRequest{
		SessionID: created.SessionID,
		Answers:   []dto.SubmittedAnswerDTO{{QuestionID: created.Questions[0].ID, SelectedOption: 0}},
	}
	_, err := f.svc.Submit(context.Background(), 1, req)
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), 1, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSubmitUpdatesSkillLedger(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	answers := make([]dto.SubmittedAnswerDTO, 0, 10)
	for _, q := range created.Questions {
		answers = append(answers, dto.SubmittedAnswerDTO{QuestionID: q.ID, SelectedOption: 0})
	}
	_, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID: created.SessionID,
		Answers:   answers,
	})
	require.NoError(t, err)

	skills, err := f.ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "python", skills[0].SkillName)
	assert.Equal(t, model.LevelAdvanced, skills[0].SelfReportedLevel)
	require.NotNil(t, skills[0].VerifiedScore)
	assert.Equal(t, 100.0, *skills[0].VerifiedScore)
	assert.True(t, skills[0].IsVerified)
}

func TestSubmitForeignSessionNotFound(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	_, err := f.svc.Submit(context.Background(), 2, dto.SubmitAssessmentRequest{
		SessionID: created.SessionID,
		Answers:   []dto.SubmittedAnswerDTO{{QuestionID: created.Questions[0].ID, SelectedOption: 0}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestHistoryListsOnlyCompletedSessions(t *testing.T) {
	f := newAssessmentFixture(t)

	open := f.createSession(t, 1)
	done := f.createSession(t, 1)
	_, err := f.svc.Submit(context.Background(), 1, dto.SubmitAssessmentRequest{
		SessionID: done.SessionID,
		Answers:   []dto.SubmittedAnswerDTO{{QuestionID: done.Questions[0].ID, SelectedOption: 0}},
	})
	require.NoError(t, err)

	history, err := f.svc.History(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, done.SessionID, history[0].ID)
	assert.NotEqual(t, open.SessionID, history[0].ID)
	assert.Equal(t, model.AssessmentCompleted, history[0].Status)
}

func TestResultChecksOwnership(t *testing.T) {
	f := newAssessmentFixture(t)
	created := f.createSession(t, 1)

	got, err := f.svc.Result(1, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, got.ID)

	_, err = f.svc.Result(2, created.SessionID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
