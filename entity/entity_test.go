package entity

import (
	"errors"
	"testing"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/pool"
)

type recordingBehavior struct {
	events    []core.Event
	ended     int
	destroyed int
	actor     *Entity
}

func (b *recordingBehavior) HandleEvent(_ *Entity, ev core.Event) { b.events = append(b.events, ev) }
func (b *recordingBehavior) PathEnded(*Entity)                    { b.ended++ }
func (b *recordingBehavior) Destroy(*Entity)                      { b.destroyed++ }
func (b *recordingBehavior) Interact(_, actor *Entity)            { b.actor = actor }

type mockLocator map[pool.Handle]core.AABB

func (m mockLocator) BodyBounds(h pool.Handle) (core.AABB, bool) {
	box, ok := m[h]
	return box, ok
}

func TestSpawnDefaults(t *testing.T) {
	r := NewRegistry(4)
	h, e, err := r.Spawn(KindPlayer, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if e.Self != h || !e.Active || e.Kind != KindPlayer {
		t.Errorf("spawned entity = %+v", e)
	}
	if e.LogicPolicy != core.UpdateAlways || e.DrawPolicy != core.UpdateVisibleOnly {
		t.Error("unexpected default policies")
	}
	if e.HasBody() {
		t.Error("new entity should have no body")
	}
}

func TestSpawnRejectsMismatchedPayload(t *testing.T) {
	r := NewRegistry(4)
	_, _, err := r.Spawn(KindNPC, &ItemData{})
	if !errors.Is(err, ErrPayloadKind) {
		t.Errorf("got %v, want ErrPayloadKind", err)
	}
	if r.Len() != 0 {
		t.Error("failed spawn must not consume a slot")
	}
}

func TestSpawnExhaustion(t *testing.T) {
	r := NewRegistry(1)
	if _, _, err := r.Spawn(KindGeneric, nil); err != nil {
		t.Fatal(err)
	}
	_, _, err := r.Spawn(KindGeneric, nil)
	if !errors.Is(err, pool.ErrPoolExhausted) {
		t.Errorf("got %v, want ErrPoolExhausted", err)
	}
}

// Test absent capabilities are skipped and present ones dispatched
func TestCapabilityDispatch(t *testing.T) {
	r := NewRegistry(4)
	_, bare, _ := r.Spawn(KindGeneric, nil)
	if bare.Notify(core.EventLand) || bare.EndPath() || bare.InteractWith(nil) || bare.CanInteract() {
		t.Error("entity without behavior should report no capability")
	}
	bare.RunUpdate()
	bare.RunDraw()
	bare.RunInput()

	b := &recordingBehavior{}
	h, e, _ := r.Spawn(KindNPC, &NPCData{})
	e.Behavior = b
	e.Notify(core.EventLand)
	e.EndPath()
	e.InteractWith(bare)
	if len(b.events) != 1 || b.events[0] != core.EventLand {
		t.Errorf("events = %v", b.events)
	}
	if b.ended != 1 || b.actor != bare || !e.CanInteract() {
		t.Error("path end or interact not dispatched")
	}

	if err := r.Destroy(h); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if b.destroyed != 1 {
		t.Error("destroy capability not run")
	}
	if _, err := r.Get(h); !errors.Is(err, pool.ErrStaleHandle) {
		t.Errorf("Get after destroy: %v", err)
	}
}

// Test Bounds fills the box for hitbox payloads as well as bodies
func TestBounds(t *testing.T) {
	r := NewRegistry(8)
	loc := mockLocator{}

	_, item, _ := r.Spawn(KindItem, &ItemData{Hitbox: core.Box(10, 10, 8, 8)})
	_, npc, _ := r.Spawn(KindNPC, &NPCData{Hitbox: core.Box(20, 0, 16, 32)})
	_, trig, _ := r.Spawn(KindTrigger, &TriggerData{Hitbox: core.Box(0, 0, 4, 4), Zone: NoZone})
	_, player, _ := r.Spawn(KindPlayer, nil)
	_, gen, _ := r.Spawn(KindGeneric, nil)

	bodyHandle := pool.Handle(1<<32 | 3)
	player.Body = bodyHandle
	loc[bodyHandle] = core.Box(50, 60, 16, 24)

	tests := []struct {
		name string
		e    *Entity
		want core.AABB
		ok   bool
	}{
		{"item", item, core.Box(10, 10, 8, 8), true},
		{"npc", npc, core.Box(20, 0, 16, 32), true},
		{"trigger", trig, core.Box(0, 0, 4, 4), true},
		{"body", player, core.Box(50, 60, 16, 24), true},
		{"none", gen, core.AABB{}, false},
	}
	for _, tt := range tests {
		got, ok := tt.e.Bounds(loc)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: Bounds = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	if p, ok := item.Item(); !ok || p.Hitbox.Width() != 8 {
		t.Error("Item accessor failed")
	}
	if _, ok := item.NPC(); ok {
		t.Error("NPC accessor should fail on item")
	}
}

func TestEachOrder(t *testing.T) {
	r := NewRegistry(4)
	r.Spawn(KindPlayer, nil)
	h, _, _ := r.Spawn(KindEnemy, nil)
	r.Spawn(KindGeneric, nil)
	r.Destroy(h)

	var kinds []Kind
	r.Each(func(e *Entity) bool {
		kinds = append(kinds, e.Kind)
		return true
	})
	if len(kinds) != 2 || kinds[0] != KindPlayer || kinds[1] != KindGeneric {
		t.Errorf("Each visited %v", kinds)
	}
}
