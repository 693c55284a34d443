package systems

import (
	"testing"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/pool"
)

type touchCounter struct{ n int }

func (c *touchCounter) Interact(_, _ *entity.Entity) { c.n++ }

func spawnItemAt(t *testing.T, w *engine.World, x, y, width, height int) pool.Handle {
	t.Helper()
	h, err := SpawnItem(w, ItemDef{Position: core.Point{X: x, Y: y}, Size: core.Point{X: width, Y: height}})
	if err != nil {
		t.Fatalf("SpawnItem: %v", err)
	}
	return h
}

func collected(t *testing.T, w *engine.World, h pool.Handle) bool {
	t.Helper()
	e, err := w.Entities.Get(h)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	d, _ := e.Item()
	return d.Collected
}

// Test the lowest-index candidate wins and only one is handled
func TestInteractFirstByIndex(t *testing.T) {
	for _, withSensors := range []bool{false, true} {
		w, _, _ := newWorld(t)
		first := spawnItemAt(t, w, 110, 116, 16, 16)
		second := spawnItemAt(t, w, 112, 118, 16, 16)

		var s *Sensors
		if withSensors {
			s = NewSensors(w.Map.PixelWidth(), w.Map.PixelHeight())
		}
		p := newPlayer(t, w, 100, 100, s)
		if s != nil {
			s.Update(w)
		}

		if !Interact(w, s, p.Handle) {
			t.Fatalf("sensors %v: no interaction", withSensors)
		}
		if !collected(t, w, first) || collected(t, w, second) {
			t.Errorf("sensors %v: first %v second %v, want only first",
				withSensors, collected(t, w, first), collected(t, w, second))
		}

		// The collected item is inactive, so the next press reaches the second
		if s != nil {
			s.Update(w)
		}
		Interact(w, s, p.Handle)
		if !collected(t, w, second) {
			t.Errorf("sensors %v: second item not reached", withSensors)
		}
	}
}

// Test distance, overlap and screen requirements
func TestInteractRequirements(t *testing.T) {
	tests := []struct {
		name       string
		px, py     int
		x, y, w, h int
		want       bool
	}{
		{"overlapping and near", 100, 100, 110, 116, 16, 16, true},
		{"overlapping but far center", 100, 100, 110, 140, 16, 60, false},
		{"near but apart", 100, 100, 130, 116, 16, 16, false},
		{"off screen", 400, 300, 410, 316, 16, 16, false},
	}
	for _, tt := range tests {
		w, _, _ := newWorld(t)
		h := spawnItemAt(t, w, tt.x, tt.y, tt.w, tt.h)
		p := newPlayer(t, w, tt.px, tt.py, nil)
		if got := Interact(w, nil, p.Handle); got != tt.want {
			t.Errorf("%s: Interact = %v, want %v", tt.name, got, tt.want)
		}
		if collected(t, w, h) != tt.want {
			t.Errorf("%s: collected = %v", tt.name, collected(t, w, h))
		}
	}
}

// Test body-backed targets must be in the actor's mask
func TestInteractMask(t *testing.T) {
	for _, tt := range []struct {
		layer core.Layer
		want  bool
	}{
		{core.LayerScenery, false},
		{core.LayerEnemy, true},
	} {
		w, _, _ := newWorld(t)
		_, e, err := w.Spawn(entity.KindGeneric, nil, &physics.BodyDef{
			Position: core.Point{X: 110, Y: 116},
			AABB:     core.Box(0, 0, 16, 16),
			Layer:    tt.layer,
			Policy:   core.UpdateAlways,
		})
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		touch := &touchCounter{}
		e.Flags = core.FlagInteractable
		e.Behavior = touch

		p := newPlayer(t, w, 100, 100, nil)
		Interact(w, nil, p.Handle)
		if got := touch.n == 1; got != tt.want {
			t.Errorf("layer %d: interacted = %v, want %v", tt.layer, got, tt.want)
		}
	}
}

// Test entities without an interaction capability are skipped
func TestInteractNeedsCapability(t *testing.T) {
	w, _, _ := newWorld(t)
	_, e, err := w.Entities.Spawn(entity.KindItem, &entity.ItemData{Hitbox: core.Box(110, 116, 16, 16)})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	e.Flags = core.FlagInteractable
	p := newPlayer(t, w, 100, 100, nil)
	if Interact(w, nil, p.Handle) {
		t.Error("interaction without an Interactor behavior")
	}
}

// Test the broadphase tracks, filters and drops sensor boxes
func TestSensorsQuery(t *testing.T) {
	w, _, _ := newWorld(t)
	item := spawnItemAt(t, w, 100, 100, 16, 16)
	trig, err := SpawnTrigger(w, TriggerDef{Bounds: core.Box(400, 300, 16, 16), Zone: entity.NoZone})
	if err != nil {
		t.Fatalf("SpawnTrigger: %v", err)
	}
	newPlayer(t, w, 0, 0, nil)

	s := NewSensors(w.Map.PixelWidth(), w.Map.PixelHeight())
	s.Update(w)
	if s.Len() != 2 {
		t.Fatalf("sensors = %d, want item and trigger", s.Len())
	}

	if got := s.Query(core.Box(96, 96, 8, 8), TagInteractable); len(got) != 1 || got[0] != item {
		t.Errorf("item query = %v", got)
	}
	if got := s.Query(core.Box(96, 96, 8, 8), TagTrigger); len(got) != 0 {
		t.Errorf("trigger tag near item = %v, want none", got)
	}
	if got := s.Query(core.Box(390, 290, 20, 20), TagTrigger); len(got) != 1 || got[0] != trig {
		t.Errorf("trigger query = %v", got)
	}

	if err := w.Destroy(item); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	s.Update(w)
	if s.Len() != 1 {
		t.Errorf("sensors after destroy = %d, want 1", s.Len())
	}
	if got := s.Query(core.Box(96, 96, 8, 8), TagInteractable); len(got) != 0 {
		t.Errorf("destroyed item still found: %v", got)
	}
}
