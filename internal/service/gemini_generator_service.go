package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/config"
	"google.golang.org/api/option"
)

// geminiGeneratorService is the Gemini-backed GeneratorService. The client
// is built once at construction from injected config; no per-call
// credential lookup happens.
type geminiGeneratorService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiGeneratorService(cfg *config.Config) (GeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeneratorService will be non-functional.")
		return &geminiGeneratorService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiGeneratorService{client: model, cfg: cfg}, nil
}

func (s *geminiGeneratorService) GenerateQuestions(ctx context.Context, skill, level string, count int) ([]GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Generate exactly %d multiple-choice questions for a developer skill assessment.
Skill: %s
Level: %s

Return ONLY a valid JSON array (no markdown, no extra text) in this exact format:
[
  {
    "question": "Question text here",
    "code": "optional code snippet (empty string if none)",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_index": 0,
    "explanation": "Brief explanation of why the answer is correct"
  }
]

Rules:
- Questions must be practical and test real knowledge, not trivia
- Beginner: syntax, basic concepts
- Intermediate: patterns, debugging, real-world scenarios
- Advanced: performance, architecture, edge cases
- All code snippets must be valid %s code
- correct_index is 0-3 matching the options array`, count, skill, level, skill)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("skill", skill).Str("level", level).Msg("Gemini API error during question generation")
		return nil, err
	}
	questions, err := parseGeneratedQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("skill", skill).Str("level", level).Msg("Failed to parse generated questions")
		return nil, err
	}
	return questions, nil
}

func (s *geminiGeneratorService) GenerateInterviewPlan(ctx context.Context, skill, background string) ([]PlannedQuestion, error) {
	if strings.TrimSpace(background) == "" {
		background = "Skill: " + skill
	}

	prompt := fmt.Sprintf(`You are a senior %s engineer conducting a technical interview.
Based on this candidate's background:
%s

Generate exactly %d progressive interview questions for %s that:
1. Start conversational (Q1: "Tell me about a project where you used %s")
2. Get progressively more technical (Q4-5: specific implementation details)
3. End with advanced/architecture questions (Q6-7)
4. Reference their actual repos/projects if available

Return ONLY valid JSON array:
[
  {"question": "...", "expected_topics": ["topic1", "topic2"], "max_score": 10},
  ...%d items
]`, skill, background, InterviewPlanSize, skill, skill, InterviewPlanSize)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("skill", skill).Msg("Gemini API error during interview plan generation")
		return nil, err
	}
	plan, err := parseInterviewPlan(raw)
	if err != nil {
		log.Warn().Err(err).Str("skill", skill).Msg("Failed to parse interview plan")
		return nil, err
	}
	return plan, nil
}

func (s *geminiGeneratorService) ScoreInterviewAnswer(ctx context.Context, question string, expectedTopics []string, answer string) (*AnswerEvaluation, error) {
	prompt := fmt.Sprintf(`You are a senior engineer scoring an interview answer.

Question: %s
Expected topics to cover: %s
Candidate's answer: %s

Score this answer out of 10 and provide brief feedback.
Return ONLY valid JSON:
{"score": 7.5, "feedback": "Good explanation of X, but missed Y...", "follow_up": "Can you elaborate on Z?"}`,
		question, strings.Join(expectedTopics, ", "), answer)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("question", question).Msg("Gemini API error during answer scoring")
		return nil, err
	}
	eval, err := parseAnswerEvaluation(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse answer evaluation")
		return nil, err
	}
	return eval, nil
}

// generate issues one bounded Gemini call and returns the concatenated
// text content of the first candidate.
func (s *geminiGeneratorService) generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Generator.Timeout)
	defer cancel()

	resp, err := s.client.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}
