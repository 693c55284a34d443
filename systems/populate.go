package systems

import (
	"fmt"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/level"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Scene is the set of systems driving one populated level
type Scene struct {
	Player    *Player
	Sensors   *Sensors
	Triggers  *Triggers
	Animation *Animation
}

// Populate resets w onto lvl and spawns every object it declares. Zones go
// in before triggers so trigger links resolve; the player is spawned last.
func Populate(w *engine.World, lvl *level.Level, params PlayerParams) (*Scene, error) {
	m, err := lvl.TileMap()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	w.Reset(m)
	w.SetSlopes(lvl.PhysicsSlopes())

	for i, z := range lvl.Zones {
		if _, err := w.Zones.Add(z.Box(), z.Active); err != nil {
			return nil, fmt.Errorf("level %s: zone %d: %w", lvl.Name, i, err)
		}
	}

	sc := &Scene{
		Sensors:   NewSensors(m.PixelWidth(), m.PixelHeight()),
		Animation: &Animation{},
	}
	sc.Triggers = NewTriggers(sc.Sensors)

	for i, p := range lvl.Platforms {
		_, err := SpawnPlatform(w, PlatformDef{
			Start:    p.Start.Core(),
			Path:     p.Paths(),
			Mode:     p.NavMode(),
			Metric:   p.NavMetric(),
			Velocity: vmath.FromFloat(p.Velocity),
			Delay:    p.Delay,
			Width:    p.Width,
			Height:   p.Height,
		})
		if err != nil {
			return nil, fmt.Errorf("level %s: platform %d: %w", lvl.Name, i, err)
		}
	}
	for i, it := range lvl.Items {
		_, err := SpawnItem(w, ItemDef{
			Position: core.Point{X: it.X, Y: it.Y},
			Size:     core.Point{X: it.W, Y: it.H},
			ID:       it.ID,
			Name:     it.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("level %s: item %d: %w", lvl.Name, i, err)
		}
	}
	for i, n := range lvl.NPCs {
		_, err := SpawnNPC(w, NPCDef{
			Position: core.Point{X: n.X, Y: n.Y},
			Size:     core.Point{X: n.W, Y: n.H},
			Texts:    n.Texts,
			Mode:     n.TextMode(),
		})
		if err != nil {
			return nil, fmt.Errorf("level %s: npc %d: %w", lvl.Name, i, err)
		}
	}
	for i, t := range lvl.Triggers {
		_, err := SpawnTrigger(w, TriggerDef{
			Bounds: t.Box(),
			Type:   t.TriggerType(),
			Action: t.ZoneAction(),
			Zone:   t.ZoneIndex(),
		})
		if err != nil {
			return nil, fmt.Errorf("level %s: trigger %d: %w", lvl.Name, i, err)
		}
	}

	p, err := SpawnPlayer(w, lvl.Player.Core(), params, sc.Sensors)
	if err != nil {
		return nil, fmt.Errorf("level %s: player: %w", lvl.Name, err)
	}
	sc.Player = p
	if b, ok := w.PlayerBody(); ok {
		w.Camera.CenterOn(b)
	}

	w.Logger.Printf("world %s: level %s: %d entities, %d bodies, %d zones",
		w.ID, lvl.Name, w.Entities.Len(), w.Bodies.Len(), w.Zones.Len())
	return sc, nil
}

// Install registers the scene systems on w
func (sc *Scene) Install(w *engine.World) {
	w.AddSystem(sc.Sensors)
	w.AddSystem(sc.Player)
	w.AddSystem(sc.Triggers)
	w.AddSystem(sc.Animation)
}
