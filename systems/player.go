package systems

import (
	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Input is the held state of the player buttons for one frame
type Input struct {
	Left     bool
	Right    bool
	Jump     bool
	Interact bool
}

// PlayerParams are the movement tunables, 10.6 unless noted
type PlayerParams struct {
	Acceleration     int
	Deceleration     int
	MaxRunSpeed      int
	JumpSpeed        int
	CoyoteFrames     int // frames
	JumpBufferFrames int // frames
}

func DefaultPlayerParams() PlayerParams {
	return PlayerParams{
		Acceleration:     parameter.Acceleration,
		Deceleration:     parameter.Deceleration,
		MaxRunSpeed:      parameter.MaxRunSpeed,
		JumpSpeed:        parameter.JumpSpeed,
		CoyoteFrames:     parameter.CoyoteFrames,
		JumpBufferFrames: parameter.JumpBufferFrames,
	}
}

// Player turns button state into velocity on the player body
type Player struct {
	Handle  pool.Handle
	Params  PlayerParams
	Sensors *Sensors

	input  Input
	prev   Input
	coyote int
	buffer int
	landed bool
}

// SpawnPlayer creates the player entity, makes it the camera target and
// returns its controller
func SpawnPlayer(w *engine.World, pos core.Point, params PlayerParams, s *Sensors) (*Player, error) {
	h, e, err := w.Spawn(entity.KindPlayer, nil, &physics.BodyDef{
		Position: pos,
		AABB: core.AABB{
			Min: core.Point{X: parameter.PlayerBoxMinX},
			Max: core.Point{X: parameter.PlayerBoxMaxX, Y: parameter.PlayerBoxMaxY},
		},
		Layer:      core.LayerPlayer,
		Mask:       core.MaskPlayer,
		Policy:     core.UpdateAlways,
		Collidable: true,
	})
	if err != nil {
		return nil, err
	}
	p := &Player{Handle: h, Params: params, Sensors: s}
	e.Flags = core.FlagSolid
	e.Behavior = p
	w.Player = h
	return p, nil
}

func (p *Player) Priority() int { return parameter.PriorityPlayer }

// SetInput stores the buttons for the next Update
func (p *Player) SetInput(in Input) { p.input = in }

// HandleEvent records landings; the cue plays on the next update
func (p *Player) HandleEvent(_ *entity.Entity, ev core.Event) {
	if ev == core.EventLand {
		p.landed = true
	}
}

func (p *Player) Update(w *engine.World) {
	e, b, ok := w.Body(p.Handle)
	if !ok || !e.Active {
		return
	}
	in, prev := p.input, p.prev
	p.prev = in

	if p.landed {
		p.landed = false
		w.Cue(audio.CueLand)
	}

	// Buttons
	if in.Jump && !prev.Jump {
		p.buffer = p.Params.JumpBufferFrames
	} else if !in.Jump && prev.Jump && b.VState == core.Jumping && b.Velocity.FixY < 0 {
		b.Velocity.FixY /= 2
	}
	if in.Interact && !prev.Interact {
		Interact(w, p.Sensors, p.Handle)
	}

	p.steer(b, in)

	if b.VState == core.Grounded {
		p.coyote = p.Params.CoyoteFrames
	} else if p.coyote > 0 {
		p.coyote--
	}
	if p.coyote > 0 && p.buffer > 0 {
		b.Velocity.FixY = 0
		physics.ApplyImpulse(b, -p.Params.JumpSpeed)
		b.VState = core.Jumping
		p.coyote, p.buffer = 0, 0
		e.Notify(core.EventJump)
		w.Cue(audio.CueJump)
	}

	if p.buffer > 0 {
		p.buffer--
	}
}

// steer accelerates toward the held direction, or brakes on the ground
func (p *Player) steer(b *physics.RigidBody, in Input) {
	v := &b.Velocity
	switch {
	case in.Left && !in.Right:
		v.FixX = max(v.FixX-p.Params.Acceleration, -p.Params.MaxRunSpeed)
	case in.Right && !in.Left:
		v.FixX = min(v.FixX+p.Params.Acceleration, p.Params.MaxRunSpeed)
	case b.VState == core.Grounded:
		if v.FixX > 0 {
			v.FixX = max(v.FixX-p.Params.Deceleration, 0)
		} else if v.FixX < 0 {
			v.FixX = min(v.FixX+p.Params.Deceleration, 0)
		}
	}
	v.X = vmath.Sign(v.FixX) * vmath.ToInt(vmath.Abs(v.FixX))

	speed := vmath.Abs(v.FixX)
	switch {
	case speed == 0:
		b.MState = core.Idle
	case speed >= p.Params.MaxRunSpeed:
		b.MState = core.Running
	default:
		b.MState = core.Walking
	}
}
