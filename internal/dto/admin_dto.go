package dto

// CreateQuestionDTO lets an administrator author a question directly into
// the bank. Manually authored questions carry provenance "manual".
type CreateQuestionDTO struct {
	Skill        string   `json:"skill" binding:"required"`
	Level        string   `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	QuestionText string   `json:"question_text" binding:"required"`
	CodeSnippet  string   `json:"code_snippet"`
	Options      []string `json:"options" binding:"required,len=4"`
	CorrectIndex int      `json:"correct_index" binding:"gte=0,lte=3"`
	Explanation  string   `json:"explanation"`
}

type CreateQuestionResponse struct {
	ID     uint   `json:"id"`
	Skill  string `json:"skill"`
	Level  string `json:"level"`
	Source string `json:"source"`
}
