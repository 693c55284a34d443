package systems

import (
	"testing"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/level"
	"github.com/lixenwraith/vi-platformer/parameter"
)

func populateDefault(t *testing.T) (*engine.World, *Scene) {
	t.Helper()
	lvl, err := level.Default()
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	w, _, _ := newWorld(t)
	sc, err := Populate(w, lvl, DefaultPlayerParams())
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	sc.Install(w)
	return w, sc
}

// Test the default level spawns every declared object
func TestPopulateDefault(t *testing.T) {
	w, sc := populateDefault(t)
	if w.Map.Width() != 48 || w.Map.Height() != 42 {
		t.Errorf("map = %dx%d, want 48x42", w.Map.Width(), w.Map.Height())
	}
	if got := w.Entities.Len(); got != 7 {
		t.Errorf("entities = %d, want 7", got)
	}
	if got := w.Bodies.Len(); got != 3 {
		t.Errorf("bodies = %d, want 3", got)
	}
	if w.Zones.Len() != 1 || len(w.Physics.Slopes) != 3 {
		t.Errorf("zones %d slopes %d, want 1 and 3", w.Zones.Len(), len(w.Physics.Slopes))
	}
	if w.Player != sc.Player.Handle {
		t.Error("scene player is not the world player")
	}

	systems := w.Systems()
	if len(systems) != 4 {
		t.Fatalf("systems = %d, want 4", len(systems))
	}
	if systems[0].Priority() != parameter.PrioritySensors || systems[3].Priority() != parameter.PriorityAnimation {
		t.Error("systems not ordered by priority")
	}
}

// Test the player settles on the floor of the default level
func TestDefaultLevelLanding(t *testing.T) {
	w, sc := populateDefault(t)
	for range 120 {
		w.Step()
	}
	b := playerBody(t, w, sc.Player)
	if b.VState != core.Grounded || b.Foot() != 640 {
		t.Errorf("VState = %v foot = %d, want Grounded 640", b.VState, b.Foot())
	}
	e, _, _ := w.Body(sc.Player.Handle)
	if e.Anim.Current != e.Anim.Set.Idle {
		t.Errorf("animation = %d, want idle", e.Anim.Current)
	}
}

// Test walking into the gate trigger opens the zone
func TestDefaultLevelTriggerOpensZone(t *testing.T) {
	w, sc := populateDefault(t)
	z, _ := w.Zones.Get(0)
	if !z.Active {
		t.Fatal("gate should start closed")
	}
	b := playerBody(t, w, sc.Player)
	b.Position = core.Point{X: 520 - b.AABB.Min.X, Y: 592}
	w.Step()

	z, _ = w.Zones.Get(0)
	if z.Active {
		t.Error("trigger did not disable the gate")
	}
}

// Test populating again replaces the previous level
func TestPopulateTwice(t *testing.T) {
	w, _ := populateDefault(t)
	lvl, _ := level.Default()
	if _, err := Populate(w, lvl, DefaultPlayerParams()); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if got := w.Entities.Len(); got != 7 {
		t.Errorf("entities after reload = %d, want 7", got)
	}
}
