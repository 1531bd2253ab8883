package exam

import (
	"testing"
)

func newTestSession(mode Mode, n int, opts SessionOptions) *Session {
	s := NewSession(mode, makeQuestions(n), opts)
	if s.mode == ModeSimulated && opts.DurationSeconds == 0 {
		s.opts.DurationSeconds = 60
	}
	return s
}

func TestSessionStartTransition(t *testing.T) {
	s := newTestSession(ModePrep, 3, SessionOptions{})

	if s.State() != StateNotStarted {
		t.Fatalf("new session state = %q, want NOT_STARTED", s.State())
	}
	s.Start()
	if s.State() != StateInProgress {
		t.Fatalf("state after Start = %q, want IN_PROGRESS", s.State())
	}

	// Starting again is a defensive no-op.
	s.Start()
	if s.State() != StateInProgress {
		t.Errorf("double Start changed state to %q", s.State())
	}
}

func TestSessionSelectAnswer(t *testing.T) {
	s := newTestSession(ModePrep, 3, SessionOptions{})

	// Before Start, selection is ignored.
	s.SelectAnswer("a")
	if len(s.Answers()) != 0 {
		t.Error("SelectAnswer recorded before Start")
	}

	s.Start()
	s.SelectAnswer("b")
	s.SelectAnswer("a") // overwrite
	answers := s.Answers()
	if answers[0] != "a" {
		t.Errorf("answers[0] = %q, want overwritten value \"a\"", answers[0])
	}

	s.GoNext()
	s.SelectAnswer("c")
	if got := s.Answers(); got[1] != "c" || got[0] != "a" {
		t.Errorf("answers = %v, want {0:a 1:c}", got)
	}
}

func TestSessionNavigationClamping(t *testing.T) {
	s := newTestSession(ModePrep, 3, SessionOptions{})
	s.Start()

	s.GoPrevious() // already at 0
	if got := s.CurrentIndex(); got != 0 {
		t.Errorf("GoPrevious at lower bound moved cursor to %d", got)
	}

	for i := 0; i < 10; i++ {
		s.GoNext()
	}
	if got := s.CurrentIndex(); got != 2 {
		t.Errorf("GoNext past upper bound left cursor at %d, want 2", got)
	}

	s.JumpTo(1)
	if got := s.CurrentIndex(); got != 1 {
		t.Errorf("JumpTo(1) left cursor at %d", got)
	}
	s.JumpTo(99)
	if got := s.CurrentIndex(); got != 2 {
		t.Errorf("JumpTo(99) left cursor at %d, want clamped 2", got)
	}
	s.JumpTo(-5)
	if got := s.CurrentIndex(); got != 0 {
		t.Errorf("JumpTo(-5) left cursor at %d, want clamped 0", got)
	}
}

func TestSessionPrepNeverSubmits(t *testing.T) {
	s := newTestSession(ModePrep, 3, SessionOptions{})
	s.Start()

	s.Submit()
	if s.State() != StateInProgress {
		t.Errorf("Submit on PREP session moved state to %q", s.State())
	}
	if s.Results() != nil {
		t.Error("PREP session produced results")
	}
	s.EnterReview()
	if s.State() != StateInProgress {
		t.Errorf("EnterReview on PREP session moved state to %q", s.State())
	}
	if s.RemainingSeconds() != -1 {
		t.Error("PREP session should not own a timer")
	}
}

func TestSessionSimulatedLifecycle(t *testing.T) {
	var finished []Result
	s := newTestSession(ModeSimulated, 60, SessionOptions{
		DurationSeconds: 2400,
		PassThreshold:   48,
		OnFinished:      func(r Result) { finished = append(finished, r) },
	})
	s.Start()

	if s.RemainingSeconds() != 2400 {
		t.Fatalf("RemainingSeconds() = %d, want 2400", s.RemainingSeconds())
	}

	// Answer 48 questions correctly.
	for i := 0; i < 48; i++ {
		s.JumpTo(i)
		s.SelectAnswer("a")
	}

	s.Submit()
	if s.State() != StateSubmitted {
		t.Fatalf("state after Submit = %q, want SUBMITTED", s.State())
	}
	r := s.Results()
	if r == nil {
		t.Fatal("Results() nil after submit")
	}
	if !r.Passed || r.CorrectCount != 48 || r.UnansweredCount != 12 {
		t.Errorf("results = %+v, want 48 correct, 12 unanswered, passed", *r)
	}
	if len(finished) != 1 {
		t.Fatalf("OnFinished fired %d times, want 1", len(finished))
	}

	// Results are computed exactly once; re-submit is a no-op.
	s.Submit()
	if len(finished) != 1 {
		t.Error("second Submit re-fired OnFinished")
	}

	// Answer mutation is disallowed after submission.
	s.SelectAnswer("b")
	if got := s.Answers()[s.CurrentIndex()]; got == "b" {
		t.Error("SelectAnswer mutated answers after submission")
	}

	s.EnterReview()
	if s.State() != StateReview {
		t.Fatalf("state after EnterReview = %q, want REVIEW", s.State())
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("review cursor = %d, want reset to 0", s.CurrentIndex())
	}

	// Navigation works in review, answering does not.
	s.GoNext()
	if s.CurrentIndex() != 1 {
		t.Error("navigation blocked in review")
	}
	s.SelectAnswer("d")
	if s.Answers()[1] == "d" {
		t.Error("answer mutated in review")
	}
}

func TestSessionFailsBelowThreshold(t *testing.T) {
	s := newTestSession(ModeSimulated, 60, SessionOptions{DurationSeconds: 2400, PassThreshold: 48})
	s.Start()
	for i := 0; i < 47; i++ {
		s.JumpTo(i)
		s.SelectAnswer("a")
	}
	s.Submit()

	if r := s.Results(); r == nil || r.Passed {
		t.Errorf("47 correct at threshold 48 should fail, got %+v", r)
	}
}

func TestSessionTimerExpiryAutoSubmits(t *testing.T) {
	done := make(chan Result, 1)
	s := newTestSession(ModeSimulated, 3, SessionOptions{
		DurationSeconds: 3,
		PassThreshold:   2,
		OnFinished:      func(r Result) { done <- r },
	})
	s.Start()
	s.SelectAnswer("a")

	// Drive the timer to expiry directly.
	for i := 0; i < 3; i++ {
		s.timer.step()
	}

	select {
	case r := <-done:
		if r.CorrectCount != 1 || r.Passed {
			t.Errorf("auto-submitted result = %+v", r)
		}
	default:
		t.Fatal("timer expiry did not auto-submit")
	}

	if s.State() != StateSubmitted {
		t.Errorf("state after expiry = %q, want SUBMITTED", s.State())
	}
	if s.RemainingSeconds() != 0 {
		t.Errorf("RemainingSeconds() = %d after expiry, want 0", s.RemainingSeconds())
	}
}

func TestSessionCloseStopsTimer(t *testing.T) {
	s := newTestSession(ModeSimulated, 3, SessionOptions{DurationSeconds: 100})
	s.Start()
	s.Close()

	if s.timer.IsActive() {
		t.Error("timer still active after Close")
	}

	// No tick fires after teardown.
	before := s.RemainingSeconds()
	s.timer.step()
	if got := s.RemainingSeconds(); got != before {
		t.Errorf("remaining changed from %d to %d after Close", before, got)
	}
}

func TestSessionEnterReviewGuard(t *testing.T) {
	s := newTestSession(ModeSimulated, 3, SessionOptions{DurationSeconds: 100})
	s.Start()

	// Review before submission is a no-op.
	s.EnterReview()
	if s.State() != StateInProgress {
		t.Errorf("EnterReview from IN_PROGRESS moved state to %q", s.State())
	}
	s.Close()
}
