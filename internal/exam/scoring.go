package exam

import "github.com/lzradio/lzradio-backend/internal/model"

// AnswerStatus is the correctness classification of one answer.
type AnswerStatus string

const (
	AnswerUnanswered AnswerStatus = "unanswered"
	AnswerCorrect    AnswerStatus = "correct"
	AnswerIncorrect  AnswerStatus = "incorrect"
)

// Result holds the outcome of a scored exam. Immutable once computed.
type Result struct {
	CorrectCount    int  `json:"correct_count"`
	WrongCount      int  `json:"wrong_count"`
	UnansweredCount int  `json:"unanswered_count"`
	TotalQuestions  int  `json:"total_questions"`
	Passed          bool `json:"passed"`
}

// StatusFor classifies a single answer. userAnswer is nil when the
// question was never answered; an explicit empty answer is still compared
// against the correct key (and scored incorrect).
func StatusFor(question model.Question, userAnswer *string) AnswerStatus {
	if userAnswer == nil {
		return AnswerUnanswered
	}
	if *userAnswer == question.CorrectAnswer {
		return AnswerCorrect
	}
	return AnswerIncorrect
}

// ScoreExam tallies correct/wrong/unanswered over all questions and
// determines pass/fail against passThreshold (minimum correct answers).
// Inputs are not mutated; the result is a fresh aggregate.
func ScoreExam(questions []model.Question, answers AnswerMap, passThreshold int) Result {
	result := Result{TotalQuestions: len(questions)}

	for i, q := range questions {
		var userAnswer *string
		if a, ok := answers[i]; ok {
			userAnswer = &a
		}
		switch StatusFor(q, userAnswer) {
		case AnswerCorrect:
			result.CorrectCount++
		case AnswerIncorrect:
			result.WrongCount++
		default:
			result.UnansweredCount++
		}
	}

	result.Passed = result.CorrectCount >= passThreshold
	return result
}

// Percentage is the rounded score percentage, 0 when total is 0.
func Percentage(correctCount, totalQuestions int) int {
	return roundedPercent(correctCount, totalQuestions)
}
