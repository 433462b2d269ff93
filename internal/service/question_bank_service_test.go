package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBankForTest(t *testing.T, gen GeneratorService) (QuestionBankService, repository.QuestionRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewQuestionRepository(db)
	bank := NewQuestionBankService(repo, gen, rand.New(rand.NewSource(1)))
	return bank, repo
}

func seedPool(t *testing.T, repo repository.QuestionRepository, skill, level string, n int) {
	t.Helper()
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			Skill:        skill,
			Level:        level,
			QuestionText: fmt.Sprintf("Seeded question %d?", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 0,
			Source:       model.SourceGenerated,
		})
	}
	_, err := repo.CreateBatch(questions)
	require.NoError(t, err)
}

func TestEnsurePoolSamplesWithoutDuplicates(t *testing.T) {
	gen := &fakeGenerator{}
	bank, repo := newBankForTest(t, gen)
	seedPool(t, repo, "python", model.LevelBeginner, 15)

	got, err := bank.EnsurePool(context.Background(), "python", model.LevelBeginner, 10)
	require.NoError(t, err)
	require.Len(t, got, 10)

	seen := make(map[uint]bool)
	for _, q := range got {
		assert.False(t, seen[q.ID], "question %d sampled twice", q.ID)
		seen[q.ID] = true
	}
}

func TestEnsurePoolGeneratesMinimumBatch(t *testing.T) {
	var requested int
	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			requested = count
			return makeGeneratedQuestions(count), nil
		},
	}
	bank, repo := newBankForTest(t, gen)
	seedPool(t, repo, "go", model.LevelIntermediate, 8)

	got, err := bank.EnsurePool(context.Background(), "go", model.LevelIntermediate, 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	// A shortfall of 2 still requests the minimum batch of 5.
	assert.Equal(t, 5, requested)

	pool, err := repo.FindBySkillAndLevel("go", model.LevelIntermediate)
	require.NoError(t, err)
	assert.Len(t, pool, 13, "generated questions must be persisted")
}

func TestEnsurePoolPersistsGeneratedProvenance(t *testing.T) {
	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			return makeGeneratedQuestions(count), nil
		},
	}
	bank, repo := newBankForTest(t, gen)

	_, err := bank.EnsurePool(context.Background(), "go", model.LevelBeginner, 3)
	require.NoError(t, err)

	pool, err := repo.FindBySkillAndLevel("go", model.LevelBeginner)
	require.NoError(t, err)
	require.NotEmpty(t, pool)
	for _, q := range pool {
		assert.Equal(t, model.SourceGenerated, q.Source)
	}
}

func TestEnsurePoolFallsBackForUnknownSkill(t *testing.T) {
	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			return nil, fmt.Errorf("model unavailable")
		},
	}
	bank, repo := newBankForTest(t, gen)

	// "rust" has no fallback bucket; the default bucket covers it.
	got, err := bank.EnsurePool(context.Background(), "rust", model.LevelBeginner, 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	pool, err := repo.FindBySkillAndLevel("rust", model.LevelBeginner)
	require.NoError(t, err)
	require.NotEmpty(t, pool)
	for _, q := range pool {
		assert.Equal(t, "rust", q.Skill, "fallback questions are stored under the requested skill")
		assert.Equal(t, model.SourceFallback, q.Source)
	}
}

func TestEnsurePoolGeneratorFailureKeepsExistingPool(t *testing.T) {
	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			return nil, fmt.Errorf("model unavailable")
		},
	}
	bank, repo := newBankForTest(t, gen)
	seedPool(t, repo, "html", model.LevelBeginner, 4)

	got, err := bank.EnsurePool(context.Background(), "html", model.LevelBeginner, 10)
	require.NoError(t, err)
	assert.Len(t, got, 4, "a partial pool is returned rather than an error")

	// No fallback seeding happens while the stored pool is non-empty.
	pool, err := repo.FindBySkillAndLevel("html", model.LevelBeginner)
	require.NoError(t, err)
	assert.Len(t, pool, 4)
}

func TestEnsurePoolErrorsWhenNoSourceYields(t *testing.T) {
	gen := &fakeGenerator{
		questionsFn: func(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
			return []GeneratedQuestion{}, nil
		},
	}
	bank, _ := newBankForTest(t, gen)

	_, err := bank.EnsurePool(context.Background(), "cobol", model.LevelBeginner, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDependency)
}
