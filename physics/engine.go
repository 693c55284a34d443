// Package physics integrates rigid bodies and resolves them against the
// tile map, slopes, ride-able platforms and blocking zones.
package physics

import (
	"github.com/lixenwraith/vi-platformer/camera"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/tilemap"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Params are the 10.6 integration constants
type Params struct {
	Gravity      int
	MaxFallSpeed int
}

func DefaultParams() Params {
	return Params{Gravity: parameter.Gravity, MaxFallSpeed: parameter.MaxFallSpeed}
}

// Engine holds the static collision world of a level
type Engine struct {
	Params Params
	Map    *tilemap.Map
	Slopes []Slope // evaluated in table order
	Zones  *Zones
}

func NewEngine(params Params, m *tilemap.Map, slopes []Slope, zones *Zones) *Engine {
	if zones == nil {
		zones = NewZones(parameter.MaxBlockingZones)
	}
	return &Engine{Params: params, Map: m, Slopes: slopes, Zones: zones}
}

// Frame is the mutable state one Step operates on
type Frame struct {
	Bodies   *Bodies
	Entities *entity.Registry
	Camera   *camera.Camera
}

// Stats counts what a Step did
type Stats struct {
	Stepped  int
	Skipped  int
	Landings int
	Supports int
}

// Step runs one physics frame. Path-driven platform bodies go first so
// riders see this frame's platform position.
func (e *Engine) Step(f Frame) Stats {
	var st Stats
	f.Bodies.Each(func(b *RigidBody) bool {
		if b.Layer == core.LayerPlatform {
			e.stepBody(f, b, &st)
		}
		return true
	})
	f.Bodies.Each(func(b *RigidBody) bool {
		if b.Layer != core.LayerPlatform {
			e.stepBody(f, b, &st)
		}
		return true
	})

	f.Bodies.Each(func(b *RigidBody) bool {
		if b.Active {
			b.Screen = f.Camera.ToScreen(b.Position)
		}
		return true
	})
	return st
}

func (e *Engine) stepBody(f Frame, b *RigidBody, st *Stats) {
	if !b.Active {
		return
	}
	if !f.Camera.ShouldUpdate(b.Policy, b.Bounds()) {
		st.Skipped++
		return
	}
	st.Stepped++

	owner := e.owner(f, b)
	var flags core.Flags
	if owner != nil {
		flags = owner.Flags
	}

	e.integrate(b, flags)
	b.Support = pool.Nil

	if b.Collidable && flags.Has(core.FlagSolid) {
		e.resolveWalls(b)
		e.resolveGround(b)
		e.resolveSlopes(b, f.Camera)
		if e.resolveSupport(f, b) {
			st.Supports++
		}
		e.resolveZones(b)
	}

	if owner != nil {
		grounded := b.VState == core.Grounded
		if grounded && !owner.WasOnGround {
			owner.Notify(core.EventLand)
			st.Landings++
		}
		owner.WasOnGround = grounded
	}
}

func (e *Engine) owner(f Frame, b *RigidBody) *entity.Entity {
	if b.Owner.IsNil() || f.Entities == nil {
		return nil
	}
	ent, err := f.Entities.Get(b.Owner)
	if err != nil {
		return nil
	}
	return ent
}

// integrate applies gravity and velocity. Platform bodies keep the delta
// their path follower wrote.
func (e *Engine) integrate(b *RigidBody, flags core.Flags) {
	b.Previous = b.Position
	if !flags.Has(core.FlagIgnoreGravity) {
		b.Velocity.FixY = min(b.Velocity.FixY+e.Params.Gravity, e.Params.MaxFallSpeed)
	}
	b.Position.X += b.Velocity.X
	b.Position.Y += vmath.ToInt(b.Velocity.FixY)

	if b.Layer == core.LayerPlatform {
		return
	}
	b.Delta = core.Point{
		X: vmath.PosFromInt(b.Position.X - b.Previous.X),
		Y: vmath.PosFromInt(b.Position.Y - b.Previous.Y),
	}
}

// skin returns head and foot rows shifted back by this frame's vertical
// movement so the surface a body stands on is not read as a wall
func skin(b *RigidBody, bounds core.AABB) (head, feet int) {
	yv := vmath.ToRoundedInt(b.Velocity.FixY)
	return bounds.Min.Y - yv, bounds.Max.Y - yv
}

func (e *Engine) resolveWalls(b *RigidBody) {
	room := e.Map.RoomBounds()
	limits := room
	bounds := b.Bounds()
	head, feet := skin(b, bounds)

	minT := tilemap.PosToTile(bounds.Min)
	maxT := tilemap.PosToTile(bounds.Max)
	leftHit, rightHit := false, false

	for ty := minT.Y; ty <= maxT.Y && !(leftHit && rightHit); ty++ {
		if !leftHit && e.Map.Tile(minT.X, ty) == tilemap.Solid {
			tb := tilemap.TileBounds(minT.X, ty)
			if tb.Max.X > limits.Min.X && tb.Min.Y < feet && tb.Max.Y > head {
				limits.Min.X = tb.Max.X
				leftHit = true
			}
		}
		if !rightHit && e.Map.Tile(maxT.X, ty) == tilemap.Solid {
			tb := tilemap.TileBounds(maxT.X, ty)
			if tb.Min.X < limits.Max.X && tb.Min.Y < feet && tb.Max.Y > head {
				limits.Max.X = tb.Min.X
				rightHit = true
			}
		}
	}

	if limits.Min.X > bounds.Min.X {
		b.Position.X = limits.Min.X - b.AABB.Min.X
		b.Velocity.X, b.Velocity.FixX = 0, 0
	}
	if limits.Max.X < bounds.Max.X {
		b.Position.X = limits.Max.X - b.AABB.Max.X
		b.Velocity.X, b.Velocity.FixX = 0, 0
	}
}

func (e *Engine) resolveGround(b *RigidBody) {
	room := e.Map.RoomBounds()
	limits := room
	bounds := b.Bounds()
	_, feet := skin(b, bounds)

	minT := tilemap.PosToTile(bounds.Min)
	maxT := tilemap.PosToTile(core.Point{X: bounds.Max.X - 1, Y: bounds.Max.Y})

	if b.Velocity.FixY >= 0 {
		top := tilemap.TileTopEdge(maxT.Y)
		for tx := minT.X; tx <= maxT.X; tx++ {
			switch e.Map.Tile(tx, maxT.Y) {
			case tilemap.Solid, tilemap.OneWayPlatform, tilemap.Slope:
				if top < limits.Max.Y && top >= feet-parameter.GroundSnapTolerance {
					limits.Max.Y = top
				}
			}
		}
	} else {
		bottom := tilemap.TileBottomEdge(minT.Y)
		for tx := minT.X; tx <= maxT.X; tx++ {
			if e.Map.Tile(tx, minT.Y) == tilemap.Solid && bottom > limits.Min.Y {
				limits.Min.Y = bottom
				break
			}
		}
	}

	if limits.Min.Y > bounds.Min.Y {
		b.Position.Y = limits.Min.Y - b.AABB.Min.Y
		b.Velocity.FixY = 0
	}

	// The room's outer bottom edge never grounds a body
	if limits.Max.Y <= bounds.Max.Y && limits.Max.Y != room.Max.Y {
		b.Position.Y = limits.Max.Y - b.AABB.Max.Y
		b.Velocity.FixY = 0
		b.VState = core.Grounded
		return
	}
	if b.Velocity.FixY < 0 {
		b.VState = core.Jumping
	} else {
		b.VState = core.Falling
	}
}

func (e *Engine) resolveSlopes(b *RigidBody, cam *camera.Camera) {
	if len(e.Slopes) == 0 || b.Velocity.FixY < 0 {
		return
	}
	view := cam.ScreenBounds()
	px := b.Position.X + b.CenterOffset.X
	py := b.Foot()

	for _, s := range e.Slopes {
		if !s.Overlaps(view) {
			continue
		}
		sy, ok := s.SurfaceY(px)
		if !ok {
			continue
		}
		if py >= sy-parameter.SlopeAbove && py <= sy+parameter.SlopeBelow {
			b.Position.Y = sy - b.AABB.Max.Y
			b.Velocity.FixY = 0
			b.VState = core.Grounded
			b.Position.X += s.Nudge()
			return
		}
	}
}

// resolveSupport finds the first ride-able platform under b and snaps onto it
func (e *Engine) resolveSupport(f Frame, b *RigidBody) bool {
	if f.Entities == nil || b.Velocity.FixY < 0 {
		return false
	}
	bounds := b.Bounds()

	var support *RigidBody
	f.Entities.Each(func(ent *entity.Entity) bool {
		if !ent.Active || ent.Kind != entity.KindPlatform || !ent.HasBody() || !ent.Flags.Has(core.FlagCanRide) {
			return true
		}
		pb, err := f.Bodies.Get(ent.Body)
		if err != nil || pb == b || !pb.Active || !pb.Collidable {
			return true
		}
		if !b.Mask.Has(pb.Layer) || !pb.Mask.Has(b.Layer) {
			return true
		}
		if onTop(bounds, pb.Bounds()) {
			support = pb
			return false
		}
		return true
	})
	if support == nil {
		return false
	}

	b.Position.Y = support.Bounds().Min.Y - b.AABB.Max.Y
	b.Position.X += vmath.PosToInt(support.Delta.X)
	b.Velocity.FixY = 0
	b.VState = core.Grounded
	b.Support = support.Self
	return true
}

// onTop checks horizontal overlap and a foot inside the support band
func onTop(self, other core.AABB) bool {
	if self.Max.X <= other.Min.X || self.Min.X >= other.Max.X {
		return false
	}
	top := other.Min.Y
	return self.Max.Y >= top-parameter.SupportMargin && self.Max.Y <= top+parameter.SupportEpsilon
}

func (e *Engine) resolveZones(b *RigidBody) {
	if e.Zones == nil {
		return
	}
	for i := range e.Zones.zones {
		z := &e.Zones.zones[i]
		if !z.Active {
			continue
		}
		bounds := b.Bounds()

		// Standing exactly on top keeps the body grounded
		if bounds.Max.Y == z.Bounds.Min.Y && bounds.Max.X > z.Bounds.Min.X && bounds.Min.X < z.Bounds.Max.X && b.Velocity.FixY >= 0 {
			b.Velocity.FixY = 0
			b.VState = core.Grounded
			continue
		}
		if !z.Bounds.Intersects(bounds) {
			continue
		}

		if b.Delta.Y == 0 {
			b.Position.X -= vmath.PosToInt(b.Delta.X)
		}
		b.Delta.X = 0
		b.Velocity.X, b.Velocity.FixX = 0, 0

		switch {
		case b.Delta.Y > 0:
			b.Position.Y = z.Bounds.Min.Y - b.AABB.Max.Y
			b.Delta.Y = 0
			b.Velocity.FixY = 0
			b.VState = core.Grounded
		case b.Delta.Y < 0:
			b.Position.Y = z.Bounds.Max.Y - b.AABB.Min.Y
			b.Delta.Y = 0
			b.Velocity.FixY = 0
		}
	}
}
