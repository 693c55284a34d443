// Package camera tracks the viewport over a level and gates updates of
// objects by their on-screen status.
package camera

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Config sizes the viewport and its follow behavior
type Config struct {
	ScreenWidth    int
	ScreenHeight   int
	DeadzoneWidth  int
	DeadzoneHeight int
	Margin         int // expanded bounds padding
	Parallax       int // 10.6 background factor
}

func DefaultConfig() Config {
	return Config{
		ScreenWidth:    parameter.ScreenWidth,
		ScreenHeight:   parameter.ScreenHeight,
		DeadzoneWidth:  parameter.DeadzoneWidth,
		DeadzoneHeight: parameter.DeadzoneHeight,
		Margin:         parameter.CameraMargin,
		Parallax:       parameter.Parallax,
	}
}

// Target is what the camera follows; Translate is used when autoscroll drags it
type Target interface {
	Bounds() core.AABB
	Translate(dx, dy int)
}

type Camera struct {
	cfg      Config
	position core.Point
	deadzone core.AABB // screen space
	maxX     int
	maxY     int

	autoscroll  bool
	scrollVel   core.Point // 10.6 pixels per frame
	scrollAcc   core.Point // sub-pixel remainder
	drag        bool
	clampTarget bool

	screen   core.AABB
	expanded core.AABB
}

// New creates a camera at the origin of a level of the given pixel size
func New(cfg Config, levelWidth, levelHeight int) *Camera {
	c := &Camera{cfg: cfg}
	halfW, halfH := cfg.ScreenWidth>>1, cfg.ScreenHeight>>1
	dzW, dzH := cfg.DeadzoneWidth>>1, cfg.DeadzoneHeight>>1
	c.deadzone = core.AABB{
		Min: core.Point{X: halfW - dzW, Y: halfH - dzH},
		Max: core.Point{X: halfW + dzW, Y: halfH + dzH},
	}
	c.SetLevelSize(levelWidth, levelHeight)
	return c
}

// SetLevelSize updates the clamp range and re-clamps the viewport
func (c *Camera) SetLevelSize(levelWidth, levelHeight int) {
	c.maxX = max(levelWidth-c.cfg.ScreenWidth, 0)
	c.maxY = max(levelHeight-c.cfg.ScreenHeight, 0)
	c.SetPosition(c.position)
}

func (c *Camera) Config() Config          { return c.cfg }
func (c *Camera) Position() core.Point    { return c.position }
func (c *Camera) ScreenBounds() core.AABB { return c.screen }

// ExpandedBounds is the screen padded by the configured margin
func (c *Camera) ExpandedBounds() core.AABB { return c.expanded }

// Deadzone returns the deadzone rectangle in screen space
func (c *Camera) Deadzone() core.AABB { return c.deadzone }

// SetPosition moves the viewport, clamped to the level
func (c *Camera) SetPosition(p core.Point) {
	c.position = core.Point{
		X: vmath.Clamp(p.X, 0, c.maxX),
		Y: vmath.Clamp(p.Y, 0, c.maxY),
	}
	c.refreshBounds()
}

// CenterOn snaps the viewport so the target's center is mid-screen
func (c *Camera) CenterOn(t Target) {
	center := t.Bounds().Center()
	c.SetPosition(core.Point{
		X: center.X - c.cfg.ScreenWidth>>1,
		Y: center.Y - c.cfg.ScreenHeight>>1,
	})
}

// StartAutoscroll moves the camera by velocity (10.6) every frame. With drag
// the target is carried by the same delta; clampTarget keeps it on screen.
func (c *Camera) StartAutoscroll(velX, velY int, drag, clampTarget bool) {
	c.autoscroll = true
	c.scrollVel = core.Point{X: velX, Y: velY}
	c.scrollAcc = core.Point{}
	c.drag = drag
	c.clampTarget = clampTarget
}

func (c *Camera) StopAutoscroll() {
	c.autoscroll = false
	c.scrollAcc = core.Point{}
}

func (c *Camera) Autoscrolling() bool { return c.autoscroll }

// Update advances the viewport one frame; target may be nil
func (c *Camera) Update(t Target) {
	if c.autoscroll {
		c.scroll(t)
		return
	}
	if t == nil {
		return
	}

	center := t.Bounds().Center()
	p := c.position
	if center.X > p.X+c.deadzone.Max.X {
		p.X = center.X - c.deadzone.Max.X
	} else if center.X < p.X+c.deadzone.Min.X {
		p.X = center.X - c.deadzone.Min.X
	}
	if center.Y > p.Y+c.deadzone.Max.Y {
		p.Y = center.Y - c.deadzone.Max.Y
	} else if center.Y < p.Y+c.deadzone.Min.Y {
		p.Y = center.Y - c.deadzone.Min.Y
	}
	c.SetPosition(p)
}

func (c *Camera) scroll(t Target) {
	prev := c.position

	c.scrollAcc.X += c.scrollVel.X
	c.scrollAcc.Y += c.scrollVel.Y
	step := core.Point{X: vmath.ToInt(c.scrollAcc.X), Y: vmath.ToInt(c.scrollAcc.Y)}
	c.scrollAcc.X -= vmath.FromInt(step.X)
	c.scrollAcc.Y -= vmath.FromInt(step.Y)

	c.SetPosition(c.position.Add(step))

	if !c.drag || t == nil {
		return
	}
	d := c.position.Sub(prev)
	if d.X != 0 || d.Y != 0 {
		t.Translate(d.X, d.Y)
	}
	if c.clampTarget {
		c.keepOnScreen(t)
	}
}

func (c *Camera) keepOnScreen(t Target) {
	b := t.Bounds()
	dx, dy := 0, 0
	if b.Min.X < c.screen.Min.X {
		dx = c.screen.Min.X - b.Min.X
	} else if b.Max.X > c.screen.Max.X {
		dx = c.screen.Max.X - b.Max.X
	}
	if b.Min.Y < c.screen.Min.Y {
		dy = c.screen.Min.Y - b.Min.Y
	} else if b.Max.Y > c.screen.Max.Y {
		dy = c.screen.Max.Y - b.Max.Y
	}
	if dx != 0 || dy != 0 {
		t.Translate(dx, dy)
	}
}

func (c *Camera) refreshBounds() {
	c.screen = core.Box(c.position.X, c.position.Y, c.cfg.ScreenWidth, c.cfg.ScreenHeight)
	c.expanded = c.screen.Expand(c.cfg.Margin)
}

// ToScreen converts a world position to screen space
func (c *Camera) ToScreen(p core.Point) core.Point { return p.Sub(c.position) }

// Visible reports whether a world point is inside the expanded bounds
func (c *Camera) Visible(p core.Point) bool { return c.expanded.Contains(p) }

// ParallaxOffset is the background scroll for a 10.6 factor; zero uses the configured one
func (c *Camera) ParallaxOffset(factor int) core.Point {
	if factor == 0 {
		factor = c.cfg.Parallax
	}
	return core.Point{
		X: vmath.ToInt(vmath.Mul(vmath.FromInt(c.position.X), factor)),
		Y: vmath.ToInt(vmath.Mul(vmath.FromInt(c.position.Y), factor)),
	}
}

// ShouldUpdate applies an update policy to a world box
func (c *Camera) ShouldUpdate(policy core.UpdatePolicy, box core.AABB) bool {
	switch policy {
	case core.UpdateAlways:
		return true
	case core.UpdateVisibleOnly:
		return box.Intersects(c.screen)
	case core.UpdateNearCamera:
		return box.Intersects(c.expanded)
	}
	return false
}
