package physics

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/pool"
)

// Velocity mixes a 10.6 horizontal accumulator with the whole-pixel step
// integration reads and a 10.6 vertical component
type Velocity struct {
	FixX int
	X    int
	FixY int
}

// RigidBody is a pooled physical box. References to other objects are handles.
type RigidBody struct {
	Self         pool.Handle
	Position     core.Point // world pixels
	Previous     core.Point
	Screen       core.Point
	AABB         core.AABB // relative to Position
	CenterOffset core.Point
	Velocity     Velocity
	Delta        core.Point // sub-pixel movement this frame

	Layer core.Layer
	Mask  core.Mask
	Tag   core.Tag

	VState core.VerticalState
	MState core.MovementState
	AState core.ActionState

	Support pool.Handle // recomputed every frame
	Owner   pool.Handle

	Active     bool
	Collidable bool
	Policy     core.UpdatePolicy
}

// Bounds returns the world-space box
func (b *RigidBody) Bounds() core.AABB { return b.AABB.Translate(b.Position) }

// Translate moves the body without touching velocity
func (b *RigidBody) Translate(dx, dy int) {
	b.Position.X += dx
	b.Position.Y += dy
}

// Center returns the world-space center point
func (b *RigidBody) Center() core.Point { return b.Position.Add(b.CenterOffset) }

// Foot is the world Y of the bottom edge
func (b *RigidBody) Foot() int { return b.Position.Y + b.AABB.Max.Y }

func (b *RigidBody) Grounded() bool { return b.VState == core.Grounded }

// BodyDef describes a body to create
type BodyDef struct {
	Position   core.Point
	AABB       core.AABB
	Layer      core.Layer
	Mask       core.Mask
	Tag        core.Tag
	Policy     core.UpdatePolicy
	Owner      pool.Handle
	Collidable bool
}

// Bodies is the fixed rigid body pool
type Bodies struct {
	pool *pool.Pool[RigidBody]
}

func NewBodies(capacity int) *Bodies {
	return &Bodies{pool: pool.New[RigidBody](capacity)}
}

// Create allocates an active, airborne body from def
func (r *Bodies) Create(def BodyDef) (pool.Handle, *RigidBody, error) {
	h, b, err := r.pool.Create()
	if err != nil {
		return pool.Nil, nil, err
	}
	*b = RigidBody{
		Self:         h,
		Position:     def.Position,
		Previous:     def.Position,
		AABB:         def.AABB,
		CenterOffset: def.AABB.Center(),
		Layer:        def.Layer,
		Mask:         def.Mask,
		Tag:          def.Tag,
		VState:       core.Airborne,
		Owner:        def.Owner,
		Active:       true,
		Collidable:   def.Collidable,
		Policy:       def.Policy,
	}
	return h, b, nil
}

func (r *Bodies) Destroy(h pool.Handle) error           { return r.pool.Destroy(h) }
func (r *Bodies) Get(h pool.Handle) (*RigidBody, error) { return r.pool.Get(h) }
func (r *Bodies) Alive(h pool.Handle) bool              { return r.pool.Alive(h) }
func (r *Bodies) Len() int                              { return r.pool.Len() }
func (r *Bodies) Cap() int                              { return r.pool.Cap() }
func (r *Bodies) Reset()                                { r.pool.Reset() }

// Each visits live bodies in pool index order until fn returns false
func (r *Bodies) Each(fn func(b *RigidBody) bool) {
	r.pool.Each(func(_ pool.Handle, b *RigidBody) bool { return fn(b) })
}

// BodyBounds resolves a handle to its world box
func (r *Bodies) BodyBounds(h pool.Handle) (core.AABB, bool) {
	b, err := r.pool.Get(h)
	if err != nil {
		return core.AABB{}, false
	}
	return b.Bounds(), true
}

// ApplyImpulse adds dy (10.6) to the vertical velocity
func ApplyImpulse(b *RigidBody, dy int) {
	b.Velocity.FixY += dy
}
