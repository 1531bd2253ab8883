package exam

import (
	"testing"

	"github.com/lzradio/lzradio-backend/internal/model"
)

type keyboardRecorder struct {
	prev, next int
	selected   []string
	question   *model.Question
	modalOpen  bool
}

func (r *keyboardRecorder) handlers() KeyboardHandlers {
	return KeyboardHandlers{
		OnPrevious:      func() { r.prev++ },
		OnNext:          func() { r.next++ },
		OnSelectAnswer:  func(key string) { r.selected = append(r.selected, key) },
		CurrentQuestion: func() *model.Question { return r.question },
		IsModalOpen:     func() bool { return r.modalOpen },
	}
}

func TestKeyboardArrowNavigation(t *testing.T) {
	rec := &keyboardRecorder{question: &makeQuestions(1)[0]}
	handle := KeyboardHandler(rec.handlers())

	if !handle(KeyEvent{Key: KeyArrowLeft}) {
		t.Error("ArrowLeft should suppress default")
	}
	if !handle(KeyEvent{Key: KeyArrowRight}) {
		t.Error("ArrowRight should suppress default")
	}
	if rec.prev != 1 || rec.next != 1 {
		t.Errorf("prev=%d next=%d, want 1 each", rec.prev, rec.next)
	}
}

func TestKeyboardDigitSelection(t *testing.T) {
	rec := &keyboardRecorder{question: &makeQuestions(1)[0]} // 4 choices a-d
	handle := KeyboardHandler(rec.handlers())

	for _, tt := range []struct {
		key  string
		want string
	}{
		{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"},
	} {
		if !handle(KeyEvent{Key: tt.key}) {
			t.Errorf("digit %q should suppress default", tt.key)
		}
		if got := rec.selected[len(rec.selected)-1]; got != tt.want {
			t.Errorf("digit %q selected %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyboardDigitBeyondChoices(t *testing.T) {
	q := makeQuestions(1)[0]
	q.Choices = q.Choices[:2] // only two choices
	rec := &keyboardRecorder{question: &q}
	handle := KeyboardHandler(rec.handlers())

	// "3" with 2 choices: no selection, but the event is still consumed.
	if !handle(KeyEvent{Key: "3"}) {
		t.Error("digit beyond choice count should still suppress default")
	}
	if len(rec.selected) != 0 {
		t.Errorf("selected %v, want no selection", rec.selected)
	}
}

func TestKeyboardNilQuestion(t *testing.T) {
	rec := &keyboardRecorder{question: nil}
	handle := KeyboardHandler(rec.handlers())

	if !handle(KeyEvent{Key: "1"}) {
		t.Error("digit with no current question should still suppress default")
	}
	if len(rec.selected) != 0 {
		t.Error("selection fired with no current question")
	}
}

func TestKeyboardSuppressionRules(t *testing.T) {
	rec := &keyboardRecorder{question: &makeQuestions(1)[0]}
	handle := KeyboardHandler(rec.handlers())

	// Modal open: ignored entirely, default not suppressed.
	rec.modalOpen = true
	if handle(KeyEvent{Key: KeyArrowRight}) {
		t.Error("event handled while modal open")
	}
	rec.modalOpen = false

	// Interactive focus targets are ignored.
	for _, tag := range []string{"input", "textarea", "select", "button"} {
		if handle(KeyEvent{Key: "1", TargetTag: tag}) {
			t.Errorf("event handled with focus on <%s>", tag)
		}
	}
	if rec.next != 0 || len(rec.selected) != 0 {
		t.Errorf("callbacks fired despite suppression rules: next=%d selected=%v", rec.next, rec.selected)
	}

	// Non-interactive target passes through.
	if !handle(KeyEvent{Key: "1", TargetTag: "div"}) {
		t.Error("digit with non-interactive target should be handled")
	}

	// Unmapped keys are a no-op and not suppressed.
	for _, key := range []string{"Enter", "Escape", "5", "a", " "} {
		if handle(KeyEvent{Key: key}) {
			t.Errorf("key %q should pass through unhandled", key)
		}
	}
}
