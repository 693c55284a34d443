package systems

import (
	"github.com/lixenwraith/vi-platformer/anim"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
)

// Animation feeds body state into each entity's animation controller
type Animation struct {
	Changes int // controllers that switched animation last frame
}

func (a *Animation) Priority() int { return parameter.PriorityAnimation }

func (a *Animation) Update(w *engine.World) {
	a.Changes = 0
	w.Entities.Each(func(e *entity.Entity) bool {
		if !e.Active || !e.HasBody() {
			return true
		}
		b, err := w.Bodies.Get(e.Body)
		if err != nil {
			return true
		}
		if e.Anim.Update(anim.Input{
			VState: b.VState,
			MState: b.MState,
			AState: b.AState,
			VelX:   b.Velocity.X,
			FixY:   b.Velocity.FixY,
		}) {
			a.Changes++
		}
		return true
	})
}
