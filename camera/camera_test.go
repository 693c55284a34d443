package camera

import (
	"testing"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/vmath"
)

type mockTarget struct {
	box core.AABB
}

func (m *mockTarget) Bounds() core.AABB { return m.box }
func (m *mockTarget) Translate(dx, dy int) {
	m.box = m.box.Translate(core.Point{X: dx, Y: dy})
}

func newTestCamera() *Camera {
	return New(DefaultConfig(), 1000, 600)
}

// Test deadzone is centered on screen
func TestDeadzoneCentered(t *testing.T) {
	c := newTestCamera()
	dz := c.Deadzone()
	want := core.AABB{Min: core.Point{X: 128, Y: 88}, Max: core.Point{X: 192, Y: 136}}
	if dz != want {
		t.Errorf("Deadzone = %+v, want %+v", dz, want)
	}
}

// Test the camera does not move while the target stays inside the deadzone
func TestFollowInsideDeadzone(t *testing.T) {
	c := newTestCamera()
	target := &mockTarget{box: core.Box(150, 100, 16, 16)}
	c.Update(target)
	if c.Position() != (core.Point{}) {
		t.Errorf("Position = %+v, want origin", c.Position())
	}
}

// Test follow moves the minimum amount to keep the center in the deadzone
func TestFollowMinimalMove(t *testing.T) {
	c := newTestCamera()
	target := &mockTarget{box: core.Box(292, 192, 16, 16)} // center 300,200
	c.Update(target)
	want := core.Point{X: 300 - 192, Y: 200 - 136}
	if c.Position() != want {
		t.Errorf("Position = %+v, want %+v", c.Position(), want)
	}

	target.Translate(-100, 0) // center 200
	c.Update(target)
	if got := c.Position().X; got != 200-128 {
		t.Errorf("X after moving left = %d, want %d", got, 200-128)
	}
}

// Test clamping uses the level height for Y
func TestClampUsesLevelHeight(t *testing.T) {
	c := New(DefaultConfig(), 2000, 300)
	target := &mockTarget{box: core.Box(1000, 5000, 16, 16)}
	c.Update(target)
	if got := c.Position().Y; got != 300-224 {
		t.Errorf("Y = %d, want %d", got, 300-224)
	}

	c.SetPosition(core.Point{X: -50, Y: -50})
	if c.Position() != (core.Point{}) {
		t.Errorf("negative position should clamp to origin, got %+v", c.Position())
	}

	small := New(DefaultConfig(), 100, 100)
	small.SetPosition(core.Point{X: 40, Y: 40})
	if small.Position() != (core.Point{}) {
		t.Errorf("level smaller than screen should pin to origin, got %+v", small.Position())
	}
}

// Test autoscroll accumulates sub-pixel speed and drags the target
func TestAutoscrollDrag(t *testing.T) {
	c := newTestCamera()
	target := &mockTarget{box: core.Box(10, 100, 16, 16)}
	c.StartAutoscroll(vmath.FromFloat(0.5), 0, true, false)

	for i := 0; i < 4; i++ {
		c.Update(target)
	}
	if got := c.Position().X; got != 2 {
		t.Errorf("X after 4 frames at 0.5 = %d, want 2", got)
	}
	if got := target.box.Min.X; got != 12 {
		t.Errorf("target X = %d, want 12", got)
	}
	if !c.Autoscrolling() {
		t.Error("Autoscrolling should be true")
	}
	c.StopAutoscroll()
	if c.Autoscrolling() {
		t.Error("Autoscrolling should be false after stop")
	}
}

// Test clampTarget keeps a dragged target inside the screen
func TestAutoscrollClampTarget(t *testing.T) {
	c := newTestCamera()
	target := &mockTarget{box: core.Box(0, 100, 16, 16)}
	c.StartAutoscroll(vmath.FromInt(8), 0, false, true)
	c.Update(target)
	if target.box.Min.X != 0 {
		t.Errorf("no drag means no translation, got X=%d", target.box.Min.X)
	}

	c.StartAutoscroll(vmath.FromInt(8), 0, true, true)
	target.box = core.Box(-30, 100, 16, 16)
	c.Update(target)
	if got := target.box.Min.X; got != c.ScreenBounds().Min.X {
		t.Errorf("target should be pushed to screen left edge %d, got %d", c.ScreenBounds().Min.X, got)
	}
}

func TestBoundsAndPolicy(t *testing.T) {
	c := newTestCamera()
	c.SetPosition(core.Point{X: 100, Y: 50})

	if got := c.ScreenBounds(); got != core.Box(100, 50, 320, 224) {
		t.Errorf("ScreenBounds = %+v", got)
	}
	if got := c.ExpandedBounds(); got != core.Box(68, 18, 384, 288) {
		t.Errorf("ExpandedBounds = %+v", got)
	}

	onScreen := core.Box(200, 100, 16, 16)
	nearby := core.Box(80, 100, 16, 16)
	far := core.Box(900, 500, 16, 16)

	tests := []struct {
		policy core.UpdatePolicy
		box    core.AABB
		want   bool
	}{
		{core.UpdateAlways, far, true},
		{core.UpdateDisabled, onScreen, false},
		{core.UpdateVisibleOnly, onScreen, true},
		{core.UpdateVisibleOnly, nearby, false},
		{core.UpdateNearCamera, nearby, true},
		{core.UpdateNearCamera, far, false},
	}
	for _, tt := range tests {
		if got := c.ShouldUpdate(tt.policy, tt.box); got != tt.want {
			t.Errorf("ShouldUpdate(%d, %+v) = %v, want %v", tt.policy, tt.box, got, tt.want)
		}
	}

	if !c.Visible(core.Point{X: 70, Y: 20}) || c.Visible(core.Point{X: 60, Y: 20}) {
		t.Error("Visible should use expanded bounds")
	}
	if p := c.ToScreen(core.Point{X: 150, Y: 60}); p != (core.Point{X: 50, Y: 10}) {
		t.Errorf("ToScreen = %+v", p)
	}
	if p := c.ParallaxOffset(0); p != (core.Point{X: 50, Y: 25}) {
		t.Errorf("ParallaxOffset = %+v", p)
	}
}
