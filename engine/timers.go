package engine

import (
	"errors"
	"fmt"
)

var ErrTimersFull = errors.New("timer table full")

type timer struct {
	remaining int
	fn        func()
	active    bool
}

// Timers is a fixed table of one-shot frame countdowns
type Timers struct {
	slots   []timer
	pending int
}

func NewTimers(capacity int) *Timers {
	return &Timers{slots: make([]timer, capacity)}
}

// Schedule runs fn after delay ticks and returns the slot id. A delay of
// zero or less fires on the next Tick.
func (t *Timers) Schedule(delay int, fn func()) (int, error) {
	for i := range t.slots {
		if !t.slots[i].active {
			t.slots[i] = timer{remaining: max(delay, 1), fn: fn, active: true}
			t.pending++
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d slots", ErrTimersFull, len(t.slots))
}

// Cancel drops a pending timer; false if the slot was idle
func (t *Timers) Cancel(id int) bool {
	if id < 0 || id >= len(t.slots) || !t.slots[id].active {
		return false
	}
	t.slots[id] = timer{}
	t.pending--
	return true
}

// Tick counts every timer down and runs those reaching zero in slot order.
// Callbacks may schedule new timers; those start counting next Tick.
func (t *Timers) Tick() int {
	var due []func()
	for i := range t.slots {
		s := &t.slots[i]
		if !s.active {
			continue
		}
		s.remaining--
		if s.remaining <= 0 {
			due = append(due, s.fn)
			*s = timer{}
			t.pending--
		}
	}
	for _, fn := range due {
		if fn != nil {
			fn()
		}
	}
	return len(due)
}

func (t *Timers) Pending() int { return t.pending }
func (t *Timers) Cap() int     { return len(t.slots) }

func (t *Timers) Clear() {
	clear(t.slots)
	t.pending = 0
}
