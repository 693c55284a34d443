// Package entity holds game objects, their kind-specific payloads and the
// optional behavior capabilities the engine calls each frame.
package entity

import (
	"github.com/lixenwraith/vi-platformer/anim"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/pool"
)

// Capabilities a Behavior may implement; missing ones are skipped

type Updater interface {
	Update(self *Entity)
}

type Drawer interface {
	Draw(self *Entity)
}

type InputHandler interface {
	HandleInput(self *Entity)
}

type Destroyer interface {
	Destroy(self *Entity)
}

type PathEnder interface {
	PathEnded(self *Entity)
}

type Interactor interface {
	Interact(self, actor *Entity)
}

type EventHandler interface {
	HandleEvent(self *Entity, ev core.Event)
}

// Entity is a pooled game object. Body is a handle, not ownership.
type Entity struct {
	Self        pool.Handle
	Kind        Kind
	Flags       core.Flags
	Active      bool
	Body        pool.Handle
	Anim        anim.Controller
	LogicPolicy core.UpdatePolicy
	DrawPolicy  core.UpdatePolicy
	Payload     Payload
	Behavior    any
	WasOnGround bool
}

// BodyLocator resolves the world box of a body handle
type BodyLocator interface {
	BodyBounds(h pool.Handle) (core.AABB, bool)
}

// Bounds returns the entity's world box from its body or payload hitbox
func (e *Entity) Bounds(loc BodyLocator) (core.AABB, bool) {
	if !e.Body.IsNil() && loc != nil {
		if box, ok := loc.BodyBounds(e.Body); ok {
			return box, true
		}
	}
	switch p := e.Payload.(type) {
	case *ItemData:
		return p.Hitbox, true
	case *NPCData:
		return p.Hitbox, true
	case *TriggerData:
		return p.Hitbox, true
	}
	return core.AABB{}, false
}

func (e *Entity) HasBody() bool { return !e.Body.IsNil() }

// Platform returns the platform payload if e carries one
func (e *Entity) Platform() (*PlatformData, bool) {
	p, ok := e.Payload.(*PlatformData)
	return p, ok
}

func (e *Entity) Item() (*ItemData, bool) {
	p, ok := e.Payload.(*ItemData)
	return p, ok
}

func (e *Entity) NPC() (*NPCData, bool) {
	p, ok := e.Payload.(*NPCData)
	return p, ok
}

func (e *Entity) Trigger() (*TriggerData, bool) {
	p, ok := e.Payload.(*TriggerData)
	return p, ok
}

// --- Capability dispatch ---

func (e *Entity) RunUpdate() {
	if u, ok := e.Behavior.(Updater); ok {
		u.Update(e)
	}
}

func (e *Entity) RunDraw() {
	if d, ok := e.Behavior.(Drawer); ok {
		d.Draw(e)
	}
}

func (e *Entity) RunInput() {
	if h, ok := e.Behavior.(InputHandler); ok {
		h.HandleInput(e)
	}
}

// Notify delivers ev; false when the behavior has no event capability
func (e *Entity) Notify(ev core.Event) bool {
	h, ok := e.Behavior.(EventHandler)
	if ok {
		h.HandleEvent(e, ev)
	}
	return ok
}

// EndPath reports path completion; false when nothing listens
func (e *Entity) EndPath() bool {
	p, ok := e.Behavior.(PathEnder)
	if ok {
		p.PathEnded(e)
	}
	return ok
}

// CanInteract reports whether the behavior implements Interactor
func (e *Entity) CanInteract() bool {
	_, ok := e.Behavior.(Interactor)
	return ok
}

// InteractWith runs the interaction capability with actor as the initiator
func (e *Entity) InteractWith(actor *Entity) bool {
	i, ok := e.Behavior.(Interactor)
	if ok {
		i.Interact(e, actor)
	}
	return ok
}
