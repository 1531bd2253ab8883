package exam

import (
	"fmt"
	"testing"

	"github.com/lzradio/lzradio-backend/internal/model"
)

// makeQuestions builds n four-choice questions whose correct answer is
// always "a".
func makeQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			ID:             int64(i + 1),
			QuestionNumber: i + 1,
			QuestionText:   fmt.Sprintf("question %d", i+1),
			Choices: []model.Choice{
				{Key: "a", Text: "first"},
				{Key: "b", Text: "second"},
				{Key: "c", Text: "third"},
				{Key: "d", Text: "fourth"},
			},
			CorrectAnswer: "a",
		}
	}
	return qs
}

func strPtr(s string) *string { return &s }

func TestStatusFor(t *testing.T) {
	q := makeQuestions(1)[0]

	tests := []struct {
		name   string
		answer *string
		want   AnswerStatus
	}{
		{"nil is unanswered", nil, AnswerUnanswered},
		{"matching key is correct", strPtr("a"), AnswerCorrect},
		{"other key is incorrect", strPtr("b"), AnswerIncorrect},
		{"explicit empty answer is incorrect, not unanswered", strPtr(""), AnswerIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(q, tt.answer); got != tt.want {
				t.Errorf("StatusFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreExam(t *testing.T) {
	questions := makeQuestions(5)
	answers := AnswerMap{
		0: "a", // correct
		1: "b", // wrong
		3: "a", // correct
		// 2 and 4 unanswered
	}

	result := ScoreExam(questions, answers, 3)

	want := Result{CorrectCount: 2, WrongCount: 1, UnansweredCount: 2, TotalQuestions: 5, Passed: false}
	if result != want {
		t.Errorf("ScoreExam() = %+v, want %+v", result, want)
	}

	// Inputs must not be mutated.
	if len(answers) != 3 {
		t.Errorf("answer map mutated, len = %d", len(answers))
	}
}

func TestScoreExamLatestAnswerWins(t *testing.T) {
	questions := makeQuestions(1)
	answers := AnswerMap{}
	answers[0] = "b"
	answers[0] = "a" // reassignment before scoring must win

	result := ScoreExam(questions, answers, 1)
	if result.CorrectCount != 1 || !result.Passed {
		t.Errorf("ScoreExam() = %+v, want 1 correct and passed", result)
	}
}

func TestScoreExamPassThreshold(t *testing.T) {
	questions := makeQuestions(60)

	answerCorrectly := func(n int) AnswerMap {
		answers := make(AnswerMap)
		for i := 0; i < n; i++ {
			answers[i] = "a"
		}
		return answers
	}

	if r := ScoreExam(questions, answerCorrectly(48), 48); !r.Passed {
		t.Errorf("48 of 60 correct at threshold 48 should pass, got %+v", r)
	}
	if r := ScoreExam(questions, answerCorrectly(47), 48); r.Passed {
		t.Errorf("47 of 60 correct at threshold 48 should fail, got %+v", r)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0}, // guard divide by zero
		{0, 10, 0},
		{2, 3, 67}, // 66.67 rounds up
		{1, 3, 33},
		{1, 2, 50},
		{60, 60, 100},
	}
	for _, tt := range tests {
		if got := Percentage(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
