package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamAttempt is the persisted record of a finished simulated exam.
// Prep sessions are never recorded; they have no score.
type ExamAttempt struct {
	ID              int64     `json:"id,omitempty"`
	SessionID       uuid.UUID `json:"session_id"`
	Class           int       `json:"class"`
	TotalQuestions  int       `json:"total_questions"`
	CorrectCount    int       `json:"correct_count"`
	WrongCount      int       `json:"wrong_count"`
	UnansweredCount int       `json:"unanswered_count"`
	Passed          bool      `json:"passed"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// StartSessionRequest is the payload for starting a prep or simulated session.
type StartSessionRequest struct {
	Mode      string `json:"mode" binding:"required,oneof=PREP SIMULATED"`
	Class     int    `json:"class" binding:"required,min=1,max=2"`
	Sections  []int  `json:"sections" binding:"omitempty,dive,min=1,max=3"`
	Randomize bool   `json:"randomize"`
}

// SelectAnswerRequest is the payload for answering the current question.
type SelectAnswerRequest struct {
	ChoiceKey string `json:"choice_key" binding:"required,max=10"`
}

// NavigateRequest is the payload for moving the question cursor.
type NavigateRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next previous jump"`
	Index     *int   `json:"index" binding:"omitempty,min=0"`
}
