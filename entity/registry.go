package entity

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-platformer/anim"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/pool"
)

var ErrPayloadKind = errors.New("payload does not match entity kind")

// Registry is the fixed entity pool
type Registry struct {
	pool *pool.Pool[Entity]
}

func NewRegistry(capacity int) *Registry {
	return &Registry{pool: pool.New[Entity](capacity)}
}

// Spawn allocates an active entity. payload may be nil for kinds without one.
func (r *Registry) Spawn(kind Kind, payload Payload) (pool.Handle, *Entity, error) {
	if payload != nil && payload.payloadKind() != kind {
		return pool.Nil, nil, fmt.Errorf("%w: %s payload on %s", ErrPayloadKind, payload.payloadKind(), kind)
	}
	h, e, err := r.pool.Create()
	if err != nil {
		return pool.Nil, nil, fmt.Errorf("spawn %s: %w", kind, err)
	}
	*e = Entity{
		Self:        h,
		Kind:        kind,
		Active:      true,
		Anim:        anim.NewController(nil),
		LogicPolicy: core.UpdateAlways,
		DrawPolicy:  core.UpdateVisibleOnly,
		Payload:     payload,
	}
	return h, e, nil
}

// Destroy runs the destroy capability and frees the slot. The body, if any,
// is left for the caller to release.
func (r *Registry) Destroy(h pool.Handle) error {
	e, err := r.pool.Get(h)
	if err != nil {
		return err
	}
	if d, ok := e.Behavior.(Destroyer); ok {
		d.Destroy(e)
	}
	return r.pool.Destroy(h)
}

func (r *Registry) Get(h pool.Handle) (*Entity, error) { return r.pool.Get(h) }

// At returns the live entity at a pool index
func (r *Registry) At(index int) (*Entity, error) {
	_, e, err := r.pool.At(index)
	return e, err
}

func (r *Registry) Alive(h pool.Handle) bool { return r.pool.Alive(h) }

// Each visits live entities in pool index order until fn returns false
func (r *Registry) Each(fn func(e *Entity) bool) {
	r.pool.Each(func(_ pool.Handle, e *Entity) bool { return fn(e) })
}

func (r *Registry) Len() int { return r.pool.Len() }
func (r *Registry) Cap() int { return r.pool.Cap() }

// Reset frees every entity without running destroy capabilities
func (r *Registry) Reset() { r.pool.Reset() }
