package systems

import (
	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/status"
)

// Triggers tests the player's box against every trigger region each frame
type Triggers struct {
	Sensors *Sensors
	near    map[pool.Handle]bool
}

func NewTriggers(s *Sensors) *Triggers {
	return &Triggers{Sensors: s, near: make(map[pool.Handle]bool)}
}

func (t *Triggers) Priority() int { return parameter.PriorityTriggers }

func (t *Triggers) Update(w *engine.World) {
	pb, ok := w.PlayerBody()
	if !ok {
		return
	}
	box := pb.Bounds()

	if t.Sensors != nil {
		clear(t.near)
		for _, h := range t.Sensors.Query(box, TagTrigger) {
			t.near[h] = true
		}
	}

	w.Entities.Each(func(e *entity.Entity) bool {
		data, ok := e.Trigger()
		if !ok || !e.Active {
			return true
		}
		hit := data.Hitbox.Intersects(box)
		if t.Sensors != nil && !t.near[e.Self] {
			hit = false
		}
		t.evaluate(w, e, data, hit)
		return true
	})
}

func (t *Triggers) evaluate(w *engine.World, e *entity.Entity, data *entity.TriggerData, hit bool) {
	switch data.Type {
	case entity.TriggerOnce:
		if hit && !data.Triggered {
			data.Triggered = true
			fire(w, e, data)
		}
	case entity.TriggerRepeat:
		if hit && !data.Triggered {
			data.Triggered = true
			fire(w, e, data)
		} else if !hit {
			data.Triggered = false
		}
	case entity.TriggerEnterExit:
		if hit && !data.Triggered {
			data.Triggered = true
			fire(w, e, data)
		} else if !hit && data.Triggered {
			data.Triggered = false
			if hooks, ok := e.Behavior.(*triggerHooks); ok && hooks.onExit != nil {
				hooks.onExit(w, e)
			}
		}
	}
}

func fire(w *engine.World, e *entity.Entity, data *entity.TriggerData) {
	ApplyZoneAction(w, data)
	w.Metrics.Ints.Get(status.KeyTriggers).Add(1)
	w.Cue(audio.CueTrigger)
	if hooks, ok := e.Behavior.(*triggerHooks); ok && hooks.onEnter != nil {
		hooks.onEnter(w, e)
	}
}

// ApplyZoneAction runs the trigger's action on its linked blocking zone
func ApplyZoneAction(w *engine.World, data *entity.TriggerData) {
	if data.Zone == entity.NoZone {
		return
	}
	var err error
	switch data.Action {
	case entity.ZoneEnable:
		err = w.Zones.Enable(data.Zone)
	case entity.ZoneDisable:
		err = w.Zones.Disable(data.Zone)
	case entity.ZoneToggle:
		err = w.Zones.Toggle(data.Zone)
	}
	if err != nil {
		w.Logger.Printf("world %s: frame %d: zone action: %v", w.ID, w.Frame, err)
	}
}
