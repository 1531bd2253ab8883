package exam

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lzradio/lzradio-backend/internal/model"
)

// Mode selects between untimed practice and the timed pass/fail exam.
type Mode string

const (
	ModePrep      Mode = "PREP"
	ModeSimulated Mode = "SIMULATED"
)

// State enumerates session lifecycle states. PREP sessions only ever use
// NOT_STARTED and IN_PROGRESS.
type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateInProgress State = "IN_PROGRESS"
	StateSubmitted  State = "SUBMITTED"
	StateReview     State = "REVIEW"
)

// SessionOptions configures a session at creation. Every recognized option
// is explicit; zero values fall back to nothing (no timer callbacks, no
// pass threshold).
type SessionOptions struct {
	// DurationSeconds drives the countdown timer in SIMULATED mode.
	DurationSeconds int
	// PassThreshold is the minimum correct answers to pass.
	PassThreshold int
	// OnTick is forwarded to the timer once per second with the new
	// remaining count. SIMULATED mode only.
	OnTick func(remaining int)
	// OnFinished fires exactly once when the session is scored, whether by
	// explicit submit or by timer expiry.
	OnFinished func(result Result)
}

// Session is the aggregate root of one exam attempt: the fixed question
// sequence, the user's answer map, the cursor, and the lifecycle state.
//
// Invalid transitions are defensive no-ops, never panics: the state
// machine must survive out-of-order calls from a misbehaving client.
// All mutations are serialized through one mutex so timer ticks and
// answer selections never interleave mid-update.
type Session struct {
	mu        sync.Mutex
	id        uuid.UUID
	mode      Mode
	state     State
	questions []model.Question
	answers   AnswerMap
	current   int
	timer     *Timer
	results   *Result
	opts      SessionOptions

	startedAt  time.Time
	finishedAt time.Time
}

// NewSession creates a NOT_STARTED session over a fixed question sequence.
// The question slice is owned by the session from here on.
func NewSession(mode Mode, questions []model.Question, opts SessionOptions) *Session {
	return &Session{
		id:        uuid.New(),
		mode:      mode,
		state:     StateNotStarted,
		questions: questions,
		answers:   make(AnswerMap),
		opts:      opts,
	}
}

// Start transitions NOT_STARTED → IN_PROGRESS and, in SIMULATED mode,
// creates and starts the countdown timer. No-op from any other state.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return
	}
	s.state = StateInProgress
	s.startedAt = time.Now()

	if s.mode == ModeSimulated {
		s.timer = NewTimer(s.opts.DurationSeconds, s.opts.OnTick, s.expire)
		s.timer.Start()
	}
}

// SelectAnswer records the choice for the current question, overwriting
// any prior value. Only allowed while IN_PROGRESS; silently ignored in
// REVIEW and every other state.
func (s *Session) SelectAnswer(choiceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return
	}
	s.answers[s.current] = choiceKey
}

// GoNext moves the cursor forward one question, clamped at the end.
func (s *Session) GoNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(s.current + 1)
}

// GoPrevious moves the cursor back one question, clamped at zero.
func (s *Session) GoPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(s.current - 1)
}

// JumpTo moves the cursor to an absolute index, clamped to the valid range.
func (s *Session) JumpTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(index)
}

// moveTo clamps and applies a cursor move. Navigation is available while
// answering and during read-only review.
func (s *Session) moveTo(index int) {
	if s.state != StateInProgress && s.state != StateReview {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := len(s.questions) - 1; index > max {
		index = max
	}
	if index >= 0 {
		s.current = index
	}
}

// Submit scores the session and transitions IN_PROGRESS → SUBMITTED.
// SIMULATED mode only; PREP sessions have nothing to submit. Results are
// computed exactly once, and the timer is stopped if still running.
func (s *Session) Submit() {
	s.mu.Lock()
	finished, result := s.submitLocked()
	s.mu.Unlock()

	if finished && s.opts.OnFinished != nil {
		s.opts.OnFinished(result)
	}
}

// expire is the timer's expiry callback: an automatic submit.
func (s *Session) expire() {
	s.Submit()
}

func (s *Session) submitLocked() (bool, Result) {
	if s.mode != ModeSimulated || s.state != StateInProgress {
		return false, Result{}
	}

	result := ScoreExam(s.questions, s.answers, s.opts.PassThreshold)
	s.results = &result
	s.state = StateSubmitted
	s.finishedAt = time.Now()
	if s.timer != nil {
		s.timer.Stop()
	}
	return true, result
}

// EnterReview transitions SUBMITTED → REVIEW and resets the cursor to the
// first question. Review is read-only with respect to answers.
func (s *Session) EnterReview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitted {
		return
	}
	s.state = StateReview
	s.current = 0
}

// Close tears the session down, stopping the timer so no orphaned tick
// fires after the session is abandoned.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}

// PauseTimer suspends the countdown (SIMULATED mode, e.g. connection loss).
func (s *Session) PauseTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Pause()
	}
}

// ResumeTimer restarts the countdown after PauseTimer.
func (s *Session) ResumeTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Resume()
	}
}

// RestoreRemaining overwrites the timer's remaining seconds from persisted
// state. No-op for PREP sessions.
func (s *Session) RestoreRemaining(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.SetRemaining(seconds)
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns the question under the cursor, or nil for an
// empty session.
func (s *Session) CurrentQuestion() *model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return nil
	}
	q := s.questions[s.current]
	return &q
}

// Questions returns the fixed question sequence.
func (s *Session) Questions() []model.Question {
	return s.questions
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(AnswerMap, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Results returns the scored result, or nil before submission.
func (s *Session) Results() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return nil
	}
	r := *s.results
	return &r
}

// RemainingSeconds returns the countdown value, or -1 for PREP sessions.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return -1
	}
	return s.timer.GetRemaining()
}

// StartedAt returns when the session entered IN_PROGRESS.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// FinishedAt returns when the session was submitted, zero until then.
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

// Progress computes the answered/unanswered summary for the session.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalculateProgress(s.answers, len(s.questions))
}
