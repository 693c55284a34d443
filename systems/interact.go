package systems

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Interact hands the interaction to the first entity, by index, that is
// interactable, on screen, within the Manhattan radius of the actor's
// center and overlapping the actor. Body-backed targets must also be in
// the actor's mask. A nil sensors visits every entity.
func Interact(w *engine.World, s *Sensors, actor pool.Handle) bool {
	ae, ab, ok := w.Body(actor)
	if !ok {
		return false
	}
	actorBox := ab.Bounds()
	center := ab.Center()
	view := w.Camera.ScreenBounds()

	for _, e := range interactCandidates(w, s, actorBox.Expand(parameter.InteractRadius)) {
		if e.Self == actor || !e.Active || !e.Flags.Has(core.FlagInteractable) || !e.CanInteract() {
			continue
		}
		box, ok := e.Bounds(w.Bodies)
		if !ok {
			continue
		}
		if e.HasBody() {
			eb, err := w.Bodies.Get(e.Body)
			if err != nil || !ab.Mask.Has(eb.Layer) {
				continue
			}
		}
		if !box.Intersects(view) {
			continue
		}
		c := box.Center()
		if vmath.ManhattanDistance(center.X-c.X, center.Y-c.Y) >= parameter.InteractRadius {
			continue
		}
		if box.Intersects(actorBox) {
			e.InteractWith(ae)
			return true
		}
	}
	return false
}

func interactCandidates(w *engine.World, s *Sensors, area core.AABB) []*entity.Entity {
	var out []*entity.Entity
	if s == nil {
		w.Entities.Each(func(e *entity.Entity) bool {
			out = append(out, e)
			return true
		})
		return out
	}
	for _, h := range s.Query(area, TagInteractable) {
		if e, err := w.Entities.Get(h); err == nil {
			out = append(out, e)
		}
	}
	return out
}
