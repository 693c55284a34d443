package systems

import (
	"fmt"

	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/navigation"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/status"
)

// --- Platforms ---

// PlatformDef places a ride-able body on a path. Start is the body's
// top-left corner; waypoints are in the same frame.
type PlatformDef struct {
	Start    core.Point
	Path     []core.Point
	Mode     navigation.Mode
	Metric   navigation.Metric
	Velocity int // 10.6 pixels per frame
	Delay    int
	Width    int
	Height   int
	OnEnd    func(w *engine.World, e *entity.Entity)
}

type platformHooks struct {
	w     *engine.World
	onEnd func(w *engine.World, e *entity.Entity)
}

func (p *platformHooks) PathEnded(e *entity.Entity) {
	if p.onEnd != nil {
		p.onEnd(p.w, e)
	}
}

func SpawnPlatform(w *engine.World, def PlatformDef) (pool.Handle, error) {
	width, height := def.Width, def.Height
	if width <= 0 {
		width = parameter.PlatformWidth
	}
	if height <= 0 {
		height = parameter.PlatformHeight
	}
	f := navigation.New(navigation.Def{
		Start:    def.Start,
		Path:     def.Path,
		Mode:     def.Mode,
		Metric:   def.Metric,
		Velocity: def.Velocity,
		Delay:    def.Delay,
	})
	h, e, err := w.Spawn(entity.KindPlatform, &entity.PlatformData{Follower: f}, &physics.BodyDef{
		Position:   def.Start,
		AABB:       core.Box(0, 0, width, height),
		Layer:      core.LayerPlatform,
		Mask:       core.MaskPlatform,
		Tag:        core.TagMoving,
		Policy:     core.UpdateAlways,
		Collidable: true,
	})
	if err != nil {
		return pool.Nil, err
	}
	e.Flags = core.FlagIgnoreGravity | core.FlagCanRide
	e.Behavior = &platformHooks{w: w, onEnd: def.OnEnd}
	return h, nil
}

// --- Items ---

type ItemDef struct {
	Position  core.Point
	Size      core.Point // zero means one tile
	ID        int
	Name      string
	OnCollect func(w *engine.World, item *entity.Entity)
}

type itemHooks struct {
	w         *engine.World
	onCollect func(w *engine.World, item *entity.Entity)
}

// Interact collects the item once: hide, deactivate, count, cue
func (h *itemHooks) Interact(self, _ *entity.Entity) {
	data, ok := self.Item()
	if !ok || data.Collected {
		return
	}
	data.Collected = true
	self.Active = false
	self.Anim.Visible = false
	h.w.Metrics.Ints.Get(status.KeyCollected).Add(1)
	h.w.Cue(audio.CueCollect)
	if h.onCollect != nil {
		h.onCollect(h.w, self)
	}
}

func SpawnItem(w *engine.World, def ItemDef) (pool.Handle, error) {
	size := sizeOr(def.Size)
	payload := &entity.ItemData{
		Hitbox: core.Box(def.Position.X, def.Position.Y, size.X, size.Y),
		ID:     def.ID,
		Name:   def.Name,
	}
	h, e, err := w.Spawn(entity.KindItem, payload, nil)
	if err != nil {
		return pool.Nil, err
	}
	e.Flags = core.FlagInteractable
	e.LogicPolicy = core.UpdateVisibleOnly
	e.Behavior = &itemHooks{w: w, onCollect: def.OnCollect}
	return h, nil
}

// --- NPCs ---

type NPCDef struct {
	Position core.Point
	Size     core.Point
	Texts    []string
	Mode     entity.TextMode
}

type npcHooks struct {
	w *engine.World
}

// Interact sends the current line and advances per the text mode
func (h *npcHooks) Interact(self, _ *entity.Entity) {
	data, ok := self.NPC()
	if !ok {
		return
	}
	line, ok := NextLine(data)
	if !ok {
		return
	}
	if h.w.Dialogue != nil {
		h.w.Dialogue.Say(self.Self, line)
	}
	h.w.Cue(audio.CueTalk)
}

// NextLine returns the current line and moves the cursor; false once an
// advance-mode NPC has run out of lines
func NextLine(d *entity.NPCData) (string, bool) {
	n := len(d.Texts)
	if n == 0 || d.TextIndex >= n {
		return "", false
	}
	line := d.Texts[d.TextIndex]
	switch d.TextMode {
	case entity.TextLoop:
		d.TextIndex = (d.TextIndex + 1) % n
	case entity.TextStopLast:
		if d.TextIndex < n-1 {
			d.TextIndex++
		}
	case entity.TextAdvance:
		d.TextIndex++
	}
	return line, true
}

func SpawnNPC(w *engine.World, def NPCDef) (pool.Handle, error) {
	texts := def.Texts
	if len(texts) > parameter.MaxNPCTexts {
		w.Logger.Printf("world %s: npc at %d,%d: %d lines, keeping %d",
			w.ID, def.Position.X, def.Position.Y, len(texts), parameter.MaxNPCTexts)
		texts = texts[:parameter.MaxNPCTexts]
	}
	size := sizeOr(def.Size)
	payload := &entity.NPCData{
		Hitbox:   core.Box(def.Position.X, def.Position.Y, size.X, size.Y),
		Texts:    texts,
		TextMode: def.Mode,
	}
	h, e, err := w.Spawn(entity.KindNPC, payload, nil)
	if err != nil {
		return pool.Nil, err
	}
	e.Flags = core.FlagInteractable
	e.LogicPolicy = core.UpdateVisibleOnly
	e.Behavior = &npcHooks{w: w}
	return h, nil
}

// --- Triggers ---

type TriggerDef struct {
	Bounds  core.AABB
	Type    entity.TriggerType
	Action  entity.ZoneAction
	Zone    int // blocking zone index or entity.NoZone
	OnEnter func(w *engine.World, e *entity.Entity)
	OnExit  func(w *engine.World, e *entity.Entity)
}

type triggerHooks struct {
	onEnter func(w *engine.World, e *entity.Entity)
	onExit  func(w *engine.World, e *entity.Entity)
}

func SpawnTrigger(w *engine.World, def TriggerDef) (pool.Handle, error) {
	if def.Action != entity.ZoneNone && def.Zone != entity.NoZone {
		if _, err := w.Zones.Get(def.Zone); err != nil {
			return pool.Nil, fmt.Errorf("trigger zone: %w", err)
		}
	}
	payload := &entity.TriggerData{
		Hitbox: def.Bounds,
		Type:   def.Type,
		Action: def.Action,
		Zone:   def.Zone,
	}
	h, e, err := w.Spawn(entity.KindTrigger, payload, nil)
	if err != nil {
		return pool.Nil, err
	}
	e.Flags = core.FlagTrigger
	e.LogicPolicy = core.UpdateVisibleOnly
	e.Behavior = &triggerHooks{onEnter: def.OnEnter, onExit: def.OnExit}
	return h, nil
}

func sizeOr(p core.Point) core.Point {
	if p.X <= 0 {
		p.X = parameter.ObjectSize
	}
	if p.Y <= 0 {
		p.Y = parameter.ObjectSize
	}
	return p
}
