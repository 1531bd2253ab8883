// Package exam implements the exam session core: the countdown timer,
// progress and scoring calculators, the session state machine, and the
// keyboard command dispatcher. Everything here is independent of transport
// and storage so it can be tested in isolation.
package exam

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// WarningLevel classifies how much exam time remains.
type WarningLevel string

const (
	WarningNormal   WarningLevel = "normal"
	WarningWarning  WarningLevel = "warning"  // 10 minutes or less
	WarningCritical WarningLevel = "critical" // 5 minutes or less
)

// Timer is a pausable, cancellable once-per-second countdown.
//
// All state transitions go through a single mutex, so a tick can never run
// concurrently with Stop, Pause, or SetRemaining: after Stop returns no
// further callback fires, and calling Start on a running timer never
// doubles the decrement rate.
type Timer struct {
	mu        sync.Mutex
	remaining int
	running   bool
	paused    bool
	stopc     chan struct{}

	onTick    func(remaining int)
	onExpired func()
	interval  time.Duration
}

// NewTimer creates a stopped timer with remaining = durationSeconds.
// onTick fires once per elapsed second with the new remaining count;
// onExpired fires exactly once when the countdown reaches zero.
// Either callback may be nil.
func NewTimer(durationSeconds int, onTick func(remaining int), onExpired func()) *Timer {
	return &Timer{
		remaining: durationSeconds,
		onTick:    onTick,
		onExpired: onExpired,
		interval:  time.Second,
	}
}

// Start begins the countdown. No-op if already running or already
// expired: once the count reaches zero the timer is spent and never
// fires onExpired again.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.running || t.remaining <= 0 {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.paused = false
	t.stopc = make(chan struct{})
	stopc := t.stopc
	t.mu.Unlock()

	go t.run(stopc)
}

func (t *Timer) run(stopc chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopc:
			return
		case <-ticker.C:
			t.step()
		}
	}
}

// step performs one countdown beat. The run goroutine calls it every
// interval; tests drive it directly to simulate elapsed time.
func (t *Timer) step() {
	t.mu.Lock()
	if !t.running || t.paused {
		t.mu.Unlock()
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	remaining := t.remaining
	expired := remaining == 0
	if expired {
		t.stopLocked()
	}
	onTick, onExpired := t.onTick, t.onExpired
	t.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired && onExpired != nil {
		onExpired()
	}
}

// Pause suspends decrementing without cancelling the periodic mechanism.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = true
}

// Resume re-enables decrementing after Pause.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = false
}

// Stop cancels the countdown. The remaining count is preserved.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if t.stopc != nil {
		close(t.stopc)
		t.stopc = nil
	}
	t.running = false
	t.paused = false
}

// GetRemaining returns the current remaining seconds.
func (t *Timer) GetRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// SetRemaining overwrites the remaining seconds. Used to restore persisted
// state; while running it takes effect on the next tick.
func (t *Timer) SetRemaining(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = seconds
}

// IsActive reports whether the timer is running and not paused.
func (t *Timer) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && !t.paused
}

// FormatTime renders seconds as MM:SS with zero padding. The minutes field
// is unbounded ("120:00" for two hours).
func FormatTime(totalSeconds int) string {
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// ParseTime converts an MM:SS string back into total seconds.
func ParseTime(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time string %q, expected MM:SS", s)
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	return mins*60 + secs, nil
}

// TimerWarningLevel classifies remaining time. Boundaries are inclusive at
// the lower tier: exactly 300s is critical, exactly 600s is warning.
func TimerWarningLevel(remainingSeconds int) WarningLevel {
	switch {
	case remainingSeconds <= 300:
		return WarningCritical
	case remainingSeconds <= 600:
		return WarningWarning
	default:
		return WarningNormal
	}
}
