package dto

import "time"

// AssessmentQuestionDTO is a question as shown to a user taking an
// assessment. It deliberately carries no correct-answer index.
type AssessmentQuestionDTO struct {
	ID           uint     `json:"id"`
	Skill        string   `json:"skill"`
	Level        string   `json:"level"`
	QuestionText string   `json:"question_text"`
	CodeSnippet  string   `json:"code_snippet,omitempty"`
	Options      []string `json:"options"`
}

type GenerateAssessmentRequest struct {
	Skill string `json:"skill" binding:"required"`
	Level string `json:"level"`
}

type GenerateAssessmentResponse struct {
	SessionID uint                    `json:"session_id"`
	Skill     string                  `json:"skill"`
	Level     string                  `json:"level"`
	Questions []AssessmentQuestionDTO `json:"questions"`
}

// SubmittedAnswerDTO is one answer in a bulk submission. SelectedOption -1
// means the question was skipped.
type SubmittedAnswerDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option" binding:"gte=-1,lte=3"`
}

type SubmitAssessmentRequest struct {
	SessionID   uint                 `json:"session_id" binding:"required"`
	Answers     []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
	TabSwitches int                  `json:"tab_switches" binding:"gte=0"`
}

// AnswerResultDTO reveals per-question outcomes after submission. Correct
// answers may appear here because the session is terminal by then.
type AnswerResultDTO struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

type SubmitAssessmentResponse struct {
	SessionID    uint              `json:"session_id"`
	Skill        string            `json:"skill"`
	Score        float64           `json:"score"`
	Correct      int               `json:"correct"`
	Total        int               `json:"total"`
	TabSwitches  int               `json:"tab_switches"`
	TabViolation bool              `json:"tab_violation"`
	Passed       bool              `json:"passed"`
	LevelAwarded string            `json:"level_awarded"`
	Details      []AnswerResultDTO `json:"details"`
}

type AssessmentSessionDTO struct {
	ID             uint       `json:"id"`
	Skill          string     `json:"skill"`
	Level          string     `json:"level"`
	Score          *float64   `json:"score,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	TabSwitches    int        `json:"tab_switches"`
	Status         string     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
