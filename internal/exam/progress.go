package exam

import "math"

// AnswerMap maps a question index to the chosen choice key. Sparse: a
// missing index means unanswered. An explicit empty string still counts
// as answered.
type AnswerMap map[int]string

// Progress summarizes how much of a session has been answered.
type Progress struct {
	AnsweredCount   int `json:"answered_count"`
	UnansweredCount int `json:"unanswered_count"`
	Percentage      int `json:"percentage"`
}

// CalculateProgress computes answered/unanswered counts and the rounded
// completion percentage. Percentage is 0 when totalQuestions is 0.
func CalculateProgress(answers AnswerMap, totalQuestions int) Progress {
	answered := len(answers)
	return Progress{
		AnsweredCount:   answered,
		UnansweredCount: totalQuestions - answered,
		Percentage:      roundedPercent(answered, totalQuestions),
	}
}

// IsComplete reports whether every question is answered. Vacuously true
// when totalQuestions is 0.
func IsComplete(answers AnswerMap, totalQuestions int) bool {
	return len(answers) == totalQuestions
}

// UnansweredIndices returns the ascending indices in [0, totalQuestions)
// with no entry in answers.
func UnansweredIndices(answers AnswerMap, totalQuestions int) []int {
	unanswered := []int{}
	for i := 0; i < totalQuestions; i++ {
		if _, ok := answers[i]; !ok {
			unanswered = append(unanswered, i)
		}
	}
	return unanswered
}

// IsAnswered reports whether a specific question index has an answer.
func IsAnswered(answers AnswerMap, questionIndex int) bool {
	_, ok := answers[questionIndex]
	return ok
}

// roundedPercent is round-half-up of 100*count/total, 0 when total is 0.
func roundedPercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
