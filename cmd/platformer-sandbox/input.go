package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-platformer/systems"
)

// Terminals report presses and repeats but no releases, so a button counts
// as held for holdFrames after its last press.
const holdFrames = 8

type button uint8

const (
	buttonLeft button = iota
	buttonRight
	buttonJump
	buttonInteract
	buttonCount
)

type keyState struct {
	last [buttonCount]int64
	seen [buttonCount]bool
}

func (k *keyState) press(b button, frame int64) {
	k.last[b] = frame
	k.seen[b] = true
}

func (k *keyState) held(b button, frame int64) bool {
	return k.seen[b] && frame-k.last[b] < holdFrames
}

// input builds the frame's controller state. Interact and jump are edges,
// so only their press frame counts.
func (k *keyState) input(frame int64) systems.Input {
	return systems.Input{
		Left:     k.held(buttonLeft, frame),
		Right:    k.held(buttonRight, frame),
		Jump:     k.held(buttonJump, frame),
		Interact: k.seen[buttonInteract] && k.last[buttonInteract] == frame,
	}
}

// mapKey returns the button for a key event
func mapKey(ev *tcell.EventKey) (button, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return buttonLeft, true
	case tcell.KeyRight:
		return buttonRight, true
	case tcell.KeyUp:
		return buttonJump, true
	case tcell.KeyEnter:
		return buttonInteract, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return buttonLeft, true
		case 'l', 'd':
			return buttonRight, true
		case ' ', 'k', 'w':
			return buttonJump, true
		case 'e':
			return buttonInteract, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}
