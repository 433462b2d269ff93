package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
)

// minimumGenerationBatch is the smallest batch requested from the
// generator when the stored pool falls short.
const minimumGenerationBatch = 5

// fallbackSkillKey is the bucket used when a skill has no fallback entry.
const fallbackSkillKey = "javascript"

// fallbackQuestions seeds an otherwise-empty pool when the external
// generator is unavailable. Keys are lowercased skill names.
var fallbackQuestions = map[string][]GeneratedQuestion{
	"html": {
		{
			Question:     "Which HTML element is used for the largest heading?",
			Options:      []string{"<head>", "<h6>", "<h1>", "<heading>"},
			CorrectIndex: 2,
			Explanation:  "<h1> is the standard tag for the most important, top-level heading.",
		},
		{
			Question:     "What is the correct HTML for creating a hyperlink?",
			Options:      []string{"<a>http://google.com</a>", "<a href='http://google.com'>Google</a>", "<a name='http://google.com'>Google</a>", "<a>Google</a>"},
			CorrectIndex: 1,
			Explanation:  "The <a> tag with the 'href' attribute is used to create links.",
		},
	},
	"javascript": {
		{
			Question:     "Which keyword is used to declare a block-scoped variable that can be reassigned?",
			Options:      []string{"var", "const", "let", "static"},
			CorrectIndex: 2,
			Explanation:  "'let' allows reassignment and is block-scoped.",
		},
		{
			Question:     "What does JSON.parse do?",
			Options:      []string{"Serializes an object to a JSON string", "Parses a JSON string into a value", "Validates JSON syntax without parsing", "Deep-clones an object"},
			CorrectIndex: 1,
			Explanation:  "JSON.parse turns a JSON-encoded string into the corresponding value.",
		},
	},
	"python": {
		{
			Question:     "Which data structure preserves insertion order and allows duplicate elements?",
			Options:      []string{"set", "dict", "list", "frozenset"},
			CorrectIndex: 2,
			Explanation:  "Lists are ordered sequences that allow duplicates.",
		},
	},
}

// QuestionBankService maintains the per-(skill, level) question pool,
// generating new questions on demand with a built-in fallback.
type QuestionBankService interface {
	// EnsurePool returns exactly count questions for the bucket, or an
	// error when no source can supply a single question.
	EnsurePool(ctx context.Context, skill, level string, count int) ([]model.Question, error)
}

type questionBankService struct {
	questionRepo repository.QuestionRepository
	generator    GeneratorService
	rng          *rand.Rand
}

// NewQuestionBankService builds a QuestionBankService. The random source
// is injected so tests can substitute a seeded one.
func NewQuestionBankService(questionRepo repository.QuestionRepository, generator GeneratorService, rng *rand.Rand) QuestionBankService {
	return &questionBankService{questionRepo: questionRepo, generator: generator, rng: rng}
}

func (s *questionBankService) EnsurePool(ctx context.Context, skill, level string, count int) ([]model.Question, error) {
	existing, err := s.questionRepo.FindBySkillAndLevel(skill, level)
	if err != nil {
		return nil, fmt.Errorf("error querying question pool for %s/%s: %w", skill, level, err)
	}

	if len(existing) >= count {
		return s.sample(existing, count), nil
	}

	// Generator errors are swallowed here; the pool and the fallback table
	// keep the call alive as long as one of them yields questions.
	needed := count - len(existing)
	if needed < minimumGenerationBatch {
		needed = minimumGenerationBatch
	}
	generated, genErr := s.generator.GenerateQuestions(ctx, skill, level, needed)
	if genErr != nil {
		log.Warn().Err(genErr).Str("skill", skill).Str("level", level).Int("needed", needed).
			Msg("Question generation failed; considering fallback pool")
		if len(existing) == 0 {
			seeded, seedErr := s.seedFallback(skill, level)
			if seedErr != nil {
				return nil, seedErr
			}
			existing = seeded
		}
	} else {
		persisted, persistErr := s.persistGenerated(skill, level, generated, model.SourceGenerated)
		if persistErr != nil {
			return nil, persistErr
		}
		existing = append(existing, persisted...)
	}

	if len(existing) == 0 {
		return nil, fmt.Errorf("no questions available for %s/%s: %w", skill, level, apperr.ErrDependency)
	}

	s.rng.Shuffle(len(existing), func(i, j int) {
		existing[i], existing[j] = existing[j], existing[i]
	})
	if len(existing) > count {
		existing = existing[:count]
	}
	return existing, nil
}

// sample picks count questions uniformly without replacement.
func (s *questionBankService) sample(pool []model.Question, count int) []model.Question {
	picked := make([]model.Question, 0, count)
	for _, idx := range s.rng.Perm(len(pool))[:count] {
		picked = append(picked, pool[idx])
	}
	return picked
}

func (s *questionBankService) seedFallback(skill, level string) ([]model.Question, error) {
	key := strings.ToLower(strings.TrimSpace(skill))
	entries, ok := fallbackQuestions[key]
	if !ok {
		entries = fallbackQuestions[fallbackSkillKey]
	}
	log.Info().Str("skill", skill).Str("level", level).Int("count", len(entries)).
		Msg("Seeding question pool from built-in fallback table")
	return s.persistGenerated(skill, level, entries, model.SourceFallback)
}

func (s *questionBankService) persistGenerated(skill, level string, items []GeneratedQuestion, source string) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, model.Question{
			Skill:        skill,
			Level:        level,
			QuestionText: item.Question,
			CodeSnippet:  item.Code,
			Options:      item.Options,
			CorrectIndex: item.CorrectIndex,
			Explanation:  item.Explanation,
			Source:       source,
		})
	}
	persisted, err := s.questionRepo.CreateBatch(questions)
	if err != nil {
		return nil, fmt.Errorf("error persisting %s questions for %s/%s: %w", source, skill, level, err)
	}
	return persisted, nil
}
