package dto

import "time"

type StartInterviewRequest struct {
	Skill     string `json:"skill" binding:"required"`
	GithubURL string `json:"github_url"`
}

type StartInterviewResponse struct {
	SessionID      uint   `json:"session_id"`
	QuestionNumber int    `json:"question_number"`
	TotalQuestions int    `json:"total_questions"`
	Message        string `json:"message"`
	RepoContext    string `json:"repo_context,omitempty"`
}

type SubmitInterviewAnswerRequest struct {
	SessionID uint   `json:"session_id" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

// SubmitInterviewAnswerResponse covers both the mid-interview and the
// completion case. Passed is nil until the session completes.
type SubmitInterviewAnswerResponse struct {
	SessionID       uint     `json:"session_id"`
	AIMessage       string   `json:"ai_message"`
	QuestionNumber  int      `json:"question_number"`
	ScoreThisAnswer float64  `json:"score_this_answer"`
	Feedback        string   `json:"feedback"`
	IsComplete      bool     `json:"is_complete"`
	Passed          *bool    `json:"passed"`
	FinalScore      *float64 `json:"final_score,omitempty"`
}

type InterviewSessionSummaryDTO struct {
	ID        uint      `json:"id"`
	Skill     string    `json:"skill"`
	Status    string    `json:"status"`
	Passed    bool      `json:"passed"`
	Score     *float64  `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type InterviewMessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type InterviewTranscriptResponse struct {
	SessionID uint                  `json:"session_id"`
	Skill     string                `json:"skill"`
	Status    string                `json:"status"`
	Passed    bool                  `json:"passed"`
	Messages  []InterviewMessageDTO `json:"messages"`
}
