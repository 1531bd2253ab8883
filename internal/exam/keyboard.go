package exam

import (
	"strconv"

	"github.com/lzradio/lzradio-backend/internal/model"
)

// Key names follow the DOM KeyboardEvent convention the frontend sends.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// interactiveTags are focus targets that swallow shortcuts: typing "2" in
// a remarks field must not select an answer.
var interactiveTags = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
	"button":   true,
}

// KeyEvent is one discrete keyboard input as reported by the client.
type KeyEvent struct {
	Key string `json:"key"`
	// TargetTag is the lowercase tag name of the focused element.
	TargetTag string `json:"target_tag"`
}

// KeyboardHandlers are the collaborator functions a dispatcher is built
// from. The dispatcher itself holds no state; its behavior is fully
// determined by these five functions.
type KeyboardHandlers struct {
	OnPrevious      func()
	OnNext          func()
	OnSelectAnswer  func(choiceKey string)
	CurrentQuestion func() *model.Question
	IsModalOpen     func() bool
}

// KeyboardHandler maps key events to session commands. The returned
// function reports whether the event's default action should be
// suppressed.
//
//   - Events are ignored entirely while a modal is open or when focus is
//     on an interactive control.
//   - Left/right arrows navigate and are suppressed.
//   - Digits 1–4 select the choice at that 1-based position when it
//     exists, and are suppressed either way.
//   - Everything else passes through untouched.
func KeyboardHandler(h KeyboardHandlers) func(KeyEvent) bool {
	return func(ev KeyEvent) bool {
		if h.IsModalOpen() || interactiveTags[ev.TargetTag] {
			return false
		}

		switch ev.Key {
		case KeyArrowLeft:
			h.OnPrevious()
			return true
		case KeyArrowRight:
			h.OnNext()
			return true
		case "1", "2", "3", "4":
			choiceIndex, _ := strconv.Atoi(ev.Key)
			choiceIndex--
			if q := h.CurrentQuestion(); q != nil && choiceIndex < len(q.Choices) {
				h.OnSelectAnswer(q.Choices[choiceIndex].Key)
			}
			return true
		}
		return false
	}
}
