package service

import (
	"context"
	"encoding/json"
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

// interviewHistoryLimit caps the history listing.
const interviewHistoryLimit = 10

// neutralAnswerScore is the degraded per-turn score used when the scorer
// is unavailable; the interview keeps moving rather than failing.
const neutralAnswerScore = 5.0

// InterviewService runs the sequential AI-scored interview: context
// gathering, plan generation, per-turn scoring, progression, completion.
type InterviewService interface {
	Start(ctx context.Context, userID uint, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, userID uint, req dto.SubmitInterviewAnswerRequest) (*dto.SubmitInterviewAnswerResponse, error)
	History(userID uint) ([]dto.InterviewSessionSummaryDTO, error)
	Transcript(userID, sessionID uint) (*dto.InterviewTranscriptResponse, error)
}

type interviewService struct {
	sessionRepo repository.InterviewSessionRepository
	messageRepo repository.InterviewMessageRepository
	resumeRepo  repository.UserResumeRepository
	generator   GeneratorService
	profiles    ProfileContextService
	levels      LevelConverterService
	ledger      SkillLedgerService
	db          *gorm.DB
}

func NewInterviewService(
	sessionRepo repository.InterviewSessionRepository,
	messageRepo repository.InterviewMessageRepository,
	resumeRepo repository.UserResumeRepository,
	generator GeneratorService,
	profiles ProfileContextService,
	levels LevelConverterService,
	ledger SkillLedgerService,
	db *gorm.DB,
) InterviewService {
	return &interviewService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		resumeRepo:  resumeRepo,
		generator:   generator,
		profiles:    profiles,
		levels:      levels,
		ledger:      ledger,
		db:          db,
	}
}

func (s *interviewService) Start(ctx context.Context, userID uint, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, fmt.Errorf("skill is required: %w", apperr.ErrValidation)
	}

	// Context gathering is best-effort; the interview works without it.
	resumeSummary, err := s.resumeRepo.SummaryForUser(userID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("Resume summary lookup failed, continuing without it")
		resumeSummary = ""
	}
	repoContext := s.profiles.FetchContext(ctx, req.GithubURL, skill)

	var contextParts []string
	if repoContext != "" {
		contextParts = append(contextParts, "GitHub context:\n"+repoContext)
	}
	if resumeSummary != "" {
		contextParts = append(contextParts, "Resume/skills: "+resumeSummary)
	}

	// Plan generation has no fallback: a failure here aborts the whole
	// start and nothing is persisted.
	plan, err := s.generator.GenerateInterviewPlan(ctx, skill, strings.Join(contextParts, "\n"))
	if err != nil {
		log.Error().Err(err).Str("skill", skill).Uint("userID", userID).Msg("Interview plan generation failed")
		return nil, fmt.Errorf("failed to prepare interview for %s: %w", skill, apperr.ErrDependency)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("error serializing interview plan: %w", err)
	}

	opener := fmt.Sprintf("Hi! I'll be assessing your %s skills today. ", skill)
	if repoContext != "" {
		opener += "I've had a look at your GitHub, nice work on your repos! "
	}
	opener += "Let's start with something comfortable. " + plan[0].Question

	session := model.InterviewSession{
		UserID:         userID,
		Skill:          skill,
		GithubURL:      req.GithubURL,
		ResumeSummary:  resumeSummary,
		RepoContext:    repoContext,
		InterviewPlan:  string(planJSON),
		Status:         model.InterviewActive,
		TotalQuestions: InterviewPlanSize,
	}
	firstQuestion := 1
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("error creating interview session: %w", err)
		}
		opening := model.InterviewMessage{
			SessionID:      session.ID,
			Role:           model.RoleAI,
			Content:        opener,
			QuestionNumber: &firstQuestion,
		}
		if err := tx.Create(&opening).Error; err != nil {
			return fmt.Errorf("error creating opening message: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Uint("sessionID", session.ID).Uint("userID", userID).Str("skill", skill).Msg("Interview started")
	return &dto.StartInterviewResponse{
		SessionID:      session.ID,
		QuestionNumber: firstQuestion,
		TotalQuestions: InterviewPlanSize,
		Message:        opener,
		RepoContext:    repoContext,
	}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID uint, req dto.SubmitInterviewAnswerRequest) (*dto.SubmitInterviewAnswerResponse, error) {
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return nil, fmt.Errorf("answer is required: %w", apperr.ErrValidation)
	}

	session, err := s.sessionRepo.FindByIDAndUser(req.SessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview session %d: %w", req.SessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("error loading interview session %d: %w", req.SessionID, err)
	}
	if session.Status != model.InterviewActive {
		return nil, fmt.Errorf("interview session is %s: %w", session.Status, apperr.ErrConflict)
	}

	var plan []PlannedQuestion
	if err := json.Unmarshal([]byte(session.InterviewPlan), &plan); err != nil {
		return nil, fmt.Errorf("error decoding interview plan for session %d: %w", session.ID, err)
	}
	if session.CurrentQuestion >= len(plan) {
		return nil, fmt.Errorf("interview has no remaining questions: %w", apperr.ErrConflict)
	}
	current := plan[session.CurrentQuestion]
	questionNumber := session.CurrentQuestion + 1

	// Scoring failure degrades to a neutral default; the request never
	// fails on the scorer.
	eval, err := s.generator.ScoreInterviewAnswer(ctx, current.Question, current.ExpectedTopics, answer)
	if err != nil {
		log.Warn().Err(err).Uint("sessionID", session.ID).Int("question", questionNumber).
			Msg("Answer scoring failed, using neutral default")
		eval = &AnswerEvaluation{Score: neutralAnswerScore, Feedback: "Good answer."}
	}
	score := eval.Score

	var resp *dto.SubmitInterviewAnswerResponse
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction so concurrent submissions cannot
		// advance the pointer twice for one question.
		var fresh model.InterviewSession
		if err := tx.Where("user_id = ?", userID).First(&fresh, session.ID).Error; err != nil {
			return fmt.Errorf("error re-reading interview session %d: %w", session.ID, err)
		}
		if fresh.Status != model.InterviewActive || fresh.CurrentQuestion != session.CurrentQuestion {
			return fmt.Errorf("interview state changed during submission: %w", apperr.ErrConflict)
		}

		userMessage := model.InterviewMessage{
			SessionID:      session.ID,
			Role:           model.RoleUser,
			Content:        answer,
			QuestionNumber: &questionNumber,
		}
		if err := tx.Create(&userMessage).Error; err != nil {
			return fmt.Errorf("error persisting user message: %w", err)
		}

		next := session.CurrentQuestion + 1
		if next >= session.TotalQuestions {
			return s.complete(tx, session, eval, score, next, questionNumber, userID, &resp)
		}
		return s.advance(tx, session, plan, eval, score, next, &resp)
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// complete finalizes the session once the pointer reaches the plan size.
// The final score is the last answered question's score, matching the
// platform's established behavior.
func (s *interviewService) complete(
	tx *gorm.DB,
	session *model.InterviewSession,
	eval *AnswerEvaluation,
	score float64,
	next, questionNumber int,
	userID uint,
	resp **dto.SubmitInterviewAnswerResponse,
) error {
	passed := s.levels.InterviewPassed(score)
	now := time.Now()

	updates := map[string]interface{}{
		"current_question": next,
		"status":           model.InterviewCompleted,
		"score":            score,
		"passed":           passed,
		"completed_at":     now,
	}
	if err := tx.Model(&model.InterviewSession{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("error completing interview session %d: %w", session.ID, err)
	}

	if passed {
		verifiedScore := s.levels.InterviewVerifiedScore(score)
		if err := s.ledger.UpsertVerified(tx, userID, session.Skill, verifiedScore, ""); err != nil {
			return err
		}
	}

	closing := "That wraps up our interview! " + eval.Feedback + " "
	if passed {
		closing += "Great job overall. You've earned a Verified badge for " + session.Skill + ". Well done!"
	} else {
		closing += "Good effort! Keep practicing and come back when you feel more confident."
	}
	closingMessage := model.InterviewMessage{
		SessionID: session.ID,
		Role:      model.RoleAI,
		Content:   closing,
		Score:     &score,
	}
	if err := tx.Create(&closingMessage).Error; err != nil {
		return fmt.Errorf("error persisting closing message: %w", err)
	}

	log.Info().Uint("sessionID", session.ID).Float64("finalScore", score).Bool("passed", passed).
		Msg("Interview completed")
	finalScore := score
	*resp = &dto.SubmitInterviewAnswerResponse{
		SessionID:       session.ID,
		AIMessage:       closing,
		QuestionNumber:  questionNumber,
		ScoreThisAnswer: score,
		Feedback:        eval.Feedback,
		IsComplete:      true,
		Passed:          &passed,
		FinalScore:      &finalScore,
	}
	return nil
}

// advance moves the pointer to the next planned question mid-interview.
func (s *interviewService) advance(
	tx *gorm.DB,
	session *model.InterviewSession,
	plan []PlannedQuestion,
	eval *AnswerEvaluation,
	score float64,
	next int,
	resp **dto.SubmitInterviewAnswerResponse,
) error {
	if err := tx.Model(&model.InterviewSession{}).Where("id = ?", session.ID).
		Update("current_question", next).Error; err != nil {
		return fmt.Errorf("error advancing interview session %d: %w", session.ID, err)
	}

	aiContent := eval.Feedback + " "
	if eval.FollowUp != "" {
		aiContent += eval.FollowUp + " "
	}
	aiContent += "Next question: " + plan[next].Question

	nextNumber := next + 1
	aiMessage := model.InterviewMessage{
		SessionID:      session.ID,
		Role:           model.RoleAI,
		Content:        aiContent,
		QuestionNumber: &nextNumber,
		Score:          &score,
	}
	if err := tx.Create(&aiMessage).Error; err != nil {
		return fmt.Errorf("error persisting interviewer message: %w", err)
	}

	*resp = &dto.SubmitInterviewAnswerResponse{
		SessionID:       session.ID,
		AIMessage:       aiContent,
		QuestionNumber:  nextNumber,
		ScoreThisAnswer: score,
		Feedback:        eval.Feedback,
		IsComplete:      false,
		Passed:          nil,
	}
	return nil
}

func (s *interviewService) History(userID uint) ([]dto.InterviewSessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindRecentByUser(userID, interviewHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching interview history: %w", err)
	}
	dtos := make([]dto.InterviewSessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		var summary dto.InterviewSessionSummaryDTO
		if err := copier.Copy(&summary, &session); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("Error copying session to summary DTO")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *interviewService) Transcript(userID, sessionID uint) (*dto.InterviewTranscriptResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview session %d: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("error loading interview session %d: %w", sessionID, err)
	}

	messages, err := s.messageRepo.FindBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching transcript for session %d: %w", session.ID, err)
	}

	resp := dto.InterviewTranscriptResponse{
		SessionID: session.ID,
		Skill:     session.Skill,
		Status:    session.Status,
		Passed:    session.Passed,
		Messages:  make([]dto.InterviewMessageDTO, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.InterviewMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return &resp, nil
}
