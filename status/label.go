package status

import "sync/atomic"

// MaxLabelLen keeps overlay rows a fixed width
const MaxLabelLen = 20

// Label is a short text metric such as the player's state
type Label struct {
	v atomic.Value
}

func (l *Label) Store(s string) {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	l.v.Store(s)
}

func (l *Label) Load() string {
	s, _ := l.v.Load().(string)
	return s
}
