// Package engine owns the world context and runs the fixed frame order:
// timers, systems, entity hooks, paths, physics, camera.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/camera"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/status"
	"github.com/lixenwraith/vi-platformer/tilemap"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// System runs once per frame in ascending priority
type System interface {
	Update(w *World)
	Priority() int // lower runs first
}

// CuePlayer receives audio cues
type CuePlayer interface {
	Play(c audio.Cue)
}

// DialogueSink receives NPC lines
type DialogueSink interface {
	Say(speaker pool.Handle, line string)
}

// FrameRecorder persists body state after each frame
type FrameRecorder interface {
	RecordFrame(frame int64, bodies *physics.Bodies) error
}

// Options sizes the world tables
type Options struct {
	Logger   *log.Logger
	Entities int
	Bodies   int
	Zones    int
	Timers   int
	Camera   camera.Config
	Physics  physics.Params
}

func DefaultOptions() Options {
	return Options{
		Entities: parameter.MaxEntities,
		Bodies:   parameter.MaxBodies,
		Zones:    parameter.MaxBlockingZones,
		Timers:   parameter.MaxTimers,
		Camera:   camera.DefaultConfig(),
		Physics:  physics.DefaultParams(),
	}
}

// World is the per-run context every system receives
type World struct {
	ID     string
	Logger *log.Logger
	Frame  int64

	Map      *tilemap.Map
	Bodies   *physics.Bodies
	Entities *entity.Registry
	Zones    *physics.Zones
	Physics  *physics.Engine
	Camera   *camera.Camera
	Timers   *Timers
	Metrics  *status.Registry

	Audio    CuePlayer
	Dialogue DialogueSink
	Recorder FrameRecorder

	// Player is the entity the camera follows
	Player pool.Handle

	LastStats physics.Stats
	systems   []System

	statFrame    *atomic.Int64
	statBodies   *atomic.Int64
	statEntities *atomic.Int64
	statStepped  *atomic.Int64
	statSkipped  *atomic.Int64
	statLandings *atomic.Int64
	statSupports *atomic.Int64
	statTimers   *atomic.Int64
	statCamX     *atomic.Int64
	statCamY     *atomic.Int64
	statScroll   *atomic.Bool
	statState    *status.Label
}

// NewWorld builds an empty world over m
func NewWorld(m *tilemap.Map, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	zones := physics.NewZones(opts.Zones)
	metrics := status.NewRegistry()

	w := &World{
		ID:       uuid.New().String(),
		Logger:   logger,
		Map:      m,
		Bodies:   physics.NewBodies(opts.Bodies),
		Entities: entity.NewRegistry(opts.Entities),
		Zones:    zones,
		Physics:  physics.NewEngine(opts.Physics, m, nil, zones),
		Camera:   camera.New(opts.Camera, m.PixelWidth(), m.PixelHeight()),
		Timers:   NewTimers(opts.Timers),
		Metrics:  metrics,

		statFrame:    metrics.Ints.Get(status.KeyFrame),
		statBodies:   metrics.Ints.Get(status.KeyBodies),
		statEntities: metrics.Ints.Get(status.KeyEntities),
		statStepped:  metrics.Ints.Get(status.KeyStepped),
		statSkipped:  metrics.Ints.Get(status.KeySkipped),
		statLandings: metrics.Ints.Get(status.KeyLandings),
		statSupports: metrics.Ints.Get(status.KeySupports),
		statTimers:   metrics.Ints.Get(status.KeyTimers),
		statCamX:     metrics.Ints.Get(status.KeyCameraX),
		statCamY:     metrics.Ints.Get(status.KeyCameraY),
		statScroll:   metrics.Bools.Get(status.KeyAutoscroll),
		statState:    metrics.Labels.Get(status.KeyPlayerState),
	}
	w.Logger.Printf("world %s: created %dx%d tiles, %d entities, %d bodies",
		w.ID, m.Width(), m.Height(), opts.Entities, opts.Bodies)
	return w
}

// AddSystem registers s, keeping the list sorted by priority
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// SetSlopes replaces the slope table
func (w *World) SetSlopes(slopes []physics.Slope) { w.Physics.Slopes = slopes }

// Reset empties every table for a new level on m
func (w *World) Reset(m *tilemap.Map) {
	w.Entities.Reset()
	w.Bodies.Reset()
	w.Zones.Clear()
	w.Timers.Clear()
	w.Physics.Map = m
	w.Physics.Slopes = nil
	w.Map = m
	w.Camera.SetLevelSize(m.PixelWidth(), m.PixelHeight())
	w.Player = pool.Nil
	w.Frame = 0
}

// Spawn creates an entity and, when def is non-nil, a body owned by it.
// Pool exhaustion is logged and returned; the frame continues.
func (w *World) Spawn(kind entity.Kind, payload entity.Payload, def *physics.BodyDef) (pool.Handle, *entity.Entity, error) {
	h, e, err := w.Entities.Spawn(kind, payload)
	if err != nil {
		w.logSpawnFailure(kind, err)
		return pool.Nil, nil, err
	}
	if def == nil {
		return h, e, nil
	}

	d := *def
	d.Owner = h
	bh, _, err := w.Bodies.Create(d)
	if err != nil {
		w.Entities.Destroy(h)
		err = fmt.Errorf("spawn %s body: %w", kind, err)
		w.logSpawnFailure(kind, err)
		return pool.Nil, nil, err
	}
	e.Body = bh
	return h, e, nil
}

func (w *World) logSpawnFailure(kind entity.Kind, err error) {
	if errors.Is(err, pool.ErrPoolExhausted) {
		w.Logger.Printf("world %s: frame %d: %s not spawned: %v", w.ID, w.Frame, kind, err)
	}
}

// Destroy removes an entity and releases its body
func (w *World) Destroy(h pool.Handle) error {
	e, err := w.Entities.Get(h)
	if err != nil {
		return err
	}
	if e.HasBody() {
		w.Bodies.Destroy(e.Body)
	}
	return w.Entities.Destroy(h)
}

// Body returns the body of entity h
func (w *World) Body(h pool.Handle) (*entity.Entity, *physics.RigidBody, bool) {
	e, err := w.Entities.Get(h)
	if err != nil || !e.HasBody() {
		return e, nil, false
	}
	b, err := w.Bodies.Get(e.Body)
	if err != nil {
		return e, nil, false
	}
	return e, b, true
}

// PlayerBody returns the followed body, if any
func (w *World) PlayerBody() (*physics.RigidBody, bool) {
	if w.Player.IsNil() {
		return nil, false
	}
	_, b, ok := w.Body(w.Player)
	return b, ok
}

// Cue plays c when an audio sink is attached
func (w *World) Cue(c audio.Cue) {
	if w.Audio != nil {
		w.Audio.Play(c)
	}
}

// Step advances the world one frame
func (w *World) Step() {
	w.Frame++
	w.Timers.Tick()

	for _, s := range w.systems {
		s.Update(w)
	}
	w.runHooks()
	w.drivePaths()

	w.LastStats = w.Physics.Step(physics.Frame{Bodies: w.Bodies, Entities: w.Entities, Camera: w.Camera})

	if b, ok := w.PlayerBody(); ok {
		w.Camera.Update(b)
	} else {
		w.Camera.Update(nil)
	}
	w.publish()

	if w.Recorder != nil {
		if err := w.Recorder.RecordFrame(w.Frame, w.Bodies); err != nil {
			w.Logger.Printf("world %s: frame %d: recording stopped: %v", w.ID, w.Frame, err)
			w.Recorder = nil
		}
	}
}

// gated applies a policy to an entity's box; entities without one follow
// only the always and disabled policies
func (w *World) gated(e *entity.Entity, policy core.UpdatePolicy) bool {
	box, ok := e.Bounds(w.Bodies)
	if !ok {
		return policy == core.UpdateAlways
	}
	return w.Camera.ShouldUpdate(policy, box)
}

func (w *World) runHooks() {
	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Active && w.gated(e, e.LogicPolicy) {
			e.RunInput()
			e.RunUpdate()
		}
		return true
	})
}

// drivePaths ticks every platform follower and writes the movement into
// its body as velocity and sub-pixel delta for physics to consume
func (w *World) drivePaths() {
	w.Entities.Each(func(e *entity.Entity) bool {
		p, ok := e.Platform()
		if !ok || !e.Active || p.Follower == nil || !e.HasBody() {
			return true
		}
		b, err := w.Bodies.Get(e.Body)
		if err != nil || !w.Camera.ShouldUpdate(e.LogicPolicy, b.Bounds()) {
			return true
		}

		step := p.Follower.Tick()
		b.Velocity.X = step.Delta.X
		b.Velocity.FixX = vmath.FromInt(step.Delta.X)
		b.Velocity.FixY = vmath.FromInt(step.Delta.Y)
		b.Delta.X = vmath.PosFromInt(step.Delta.X)
		b.Delta.Y = vmath.PosFromInt(step.Delta.Y)
		if step.Ended {
			e.EndPath()
		}
		return true
	})
}

// Draw runs draw hooks for entities passing their draw policy
func (w *World) Draw() {
	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Active && e.Anim.Visible && w.gated(e, e.DrawPolicy) {
			e.RunDraw()
		}
		return true
	})
}

func (w *World) publish() {
	st := w.LastStats
	w.statFrame.Store(w.Frame)
	w.statBodies.Store(int64(w.Bodies.Len()))
	w.statEntities.Store(int64(w.Entities.Len()))
	w.statStepped.Store(int64(st.Stepped))
	w.statSkipped.Store(int64(st.Skipped))
	w.statLandings.Add(int64(st.Landings))
	w.statSupports.Store(int64(st.Supports))
	w.statTimers.Store(int64(w.Timers.Pending()))
	pos := w.Camera.Position()
	w.statCamX.Store(int64(pos.X))
	w.statCamY.Store(int64(pos.Y))
	w.statScroll.Store(w.Camera.Autoscrolling())
	if b, ok := w.PlayerBody(); ok {
		w.statState.Store(b.VState.String() + "/" + b.MState.String())
	}
}
