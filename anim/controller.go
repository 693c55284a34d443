// Package anim selects which animation an entity shows from its body state.
package anim

import "github.com/lixenwraith/vi-platformer/core"

// Set maps states to renderer animation ids
type Set struct {
	Idle   int
	Walk   int
	Run    int
	Jump   int
	Fall   int
	Attack int
	Hurt   int
	Climb  int
}

// DefaultSet numbers the animations in sheet order
var DefaultSet = Set{Idle: 0, Walk: 1, Run: 2, Jump: 3, Fall: 4, Attack: 5, Hurt: 6, Climb: 7}

// NoAnimation is the Current value before the first Update
const NoAnimation = -1

// Input is the body state the controller reads
type Input struct {
	VState core.VerticalState
	MState core.MovementState
	AState core.ActionState
	VelX   int // pixels per frame
	FixY   int // 10.6, negative rising
}

// Controller tracks the active animation and facing. It never writes body state.
type Controller struct {
	Set     *Set
	Current int
	Facing  int // 1 right, -1 left
	Frames  int // frames since Current last changed
	Visible bool
}

func NewController(set *Set) Controller {
	if set == nil {
		set = &DefaultSet
	}
	return Controller{Set: set, Current: NoAnimation, Facing: 1, Visible: true}
}

// Select returns the animation for in: action first, then airborne, then movement
func (s *Set) Select(in Input) int {
	switch in.AState {
	case core.Attacking:
		return s.Attack
	case core.Hurt:
		return s.Hurt
	case core.Climbing:
		return s.Climb
	}

	if in.VState != core.Grounded {
		if in.FixY < 0 {
			return s.Jump
		}
		return s.Fall
	}

	switch in.MState {
	case core.Running, core.Dashing:
		return s.Run
	case core.Walking:
		return s.Walk
	}
	return s.Idle
}

// Update applies one frame of state; it reports whether the animation changed
func (c *Controller) Update(in Input) bool {
	if c.Set == nil {
		c.Set = &DefaultSet
	}
	if in.VelX > 0 {
		c.Facing = 1
	} else if in.VelX < 0 {
		c.Facing = -1
	}

	next := c.Set.Select(in)
	if next != c.Current {
		c.Current = next
		c.Frames = 0
		return true
	}
	c.Frames++
	return false
}
