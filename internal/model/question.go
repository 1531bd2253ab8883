package model

// Choice is a single selectable answer for a question.
type Choice struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question represents a single exam question. Questions are loaded from the
// question bank and never mutated at runtime.
type Question struct {
	ID             int64    `json:"id"`
	Class          int      `json:"class"`
	Section        int      `json:"section"`
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Choices        []Choice `json:"choices"`
	CorrectAnswer  string   `json:"correct_answer"`
}

// QuestionForClient is a question without the correct answer, sent to the
// frontend while an exam is in progress.
type QuestionForClient struct {
	ID             int64    `json:"id"`
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Choices        []Choice `json:"choices"`
}

// ForClient strips the correct answer.
func (q Question) ForClient() QuestionForClient {
	return QuestionForClient{
		ID:             q.ID,
		QuestionNumber: q.QuestionNumber,
		QuestionText:   q.QuestionText,
		Choices:        q.Choices,
	}
}
