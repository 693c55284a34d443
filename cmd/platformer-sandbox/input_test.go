package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

// Test key mapping covers arrows and letter aliases
func TestMapKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want button
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), buttonLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), buttonRight},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), buttonJump},
		{tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), buttonInteract},
	}
	for _, tt := range tests {
		got, ok := mapKey(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("mapKey(%v) = %v %v, want %v", tt.ev.Name(), got, ok, tt.want)
		}
	}
	if _, ok := mapKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("unmapped rune should not map")
	}
	if !isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
}

// Test presses stay held for the hold window and interact is one frame
func TestKeyHold(t *testing.T) {
	var k keyState
	if in := k.input(1); in.Left || in.Jump || in.Interact {
		t.Fatal("no buttons before any press")
	}
	k.press(buttonRight, 10)
	k.press(buttonInteract, 10)

	in := k.input(10)
	if !in.Right || !in.Interact {
		t.Errorf("press frame input = %+v", in)
	}
	in = k.input(11)
	if !in.Right || in.Interact {
		t.Errorf("next frame input = %+v, want right held and no interact", in)
	}
	if k.input(10 + holdFrames).Right {
		t.Error("right still held after the hold window")
	}
}
