// Package search debounces live filter input before it becomes a request.
package search

import (
	"fmt"
	"sync"
	"time"
)

// Mode selects how a scheduled filter is checked when its delay elapses.
type Mode string

const (
	// ModeGuard fires only if the input still equals the text captured
	// when the check was scheduled.
	ModeGuard Mode = "guard"
	// ModeEvery fires once per scheduled check, whatever the input is now.
	// Responses are told apart by their correlation data instead.
	ModeEvery Mode = "every"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGuard, ModeEvery:
		return Mode(s), nil
	case "":
		return ModeGuard, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want %q or %q)", s, ModeGuard, ModeEvery)
	}
}

// Debouncer decides whether a delayed filter check should fire.
type Debouncer struct {
	Delay time.Duration
	Mode  Mode

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

// NewDebouncer returns a debouncer with the given delay and mode.
func NewDebouncer(delay time.Duration, mode Mode) *Debouncer {
	return &Debouncer{Delay: delay, Mode: mode}
}

// Check reports whether a check scheduled with captured should fire now
// that the input reads current.
func (d *Debouncer) Check(captured, current string) bool {
	if d.Mode == ModeEvery {
		return true
	}
	return captured == current
}

// Schedule arranges for fire(captured) to run after Delay, provided Check
// passes against current() at that moment.
func (d *Debouncer) Schedule(captured string, current func() string, fire func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		d.pending = make(map[*time.Timer]struct{})
	}

	var t *time.Timer
	t = time.AfterFunc(d.Delay, func() {
		d.mu.Lock()
		delete(d.pending, t)
		d.mu.Unlock()

		if d.Check(captured, current()) {
			fire(captured)
		}
	})
	d.pending[t] = struct{}{}
}

// Pending returns the number of checks that have not fired yet.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop cancels every check that has not fired yet.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for t := range d.pending {
		t.Stop()
	}
	d.pending = nil
}
