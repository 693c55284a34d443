package systems

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/pool"
)

// Broadphase tags
const (
	TagInteractable = "interactable"
	TagTrigger      = "trigger"
)

// Sensors mirrors interactable and trigger boxes into a resolv grid so
// queries only visit nearby candidates. Results still need an exact test.
type Sensors struct {
	space   *resolv.Space
	objects map[pool.Handle]*resolv.Object
	seen    map[pool.Handle]bool
}

func NewSensors(levelWidth, levelHeight int) *Sensors {
	return &Sensors{
		space:   resolv.NewSpace(levelWidth, levelHeight, parameter.SensorCellSize, parameter.SensorCellSize),
		objects: make(map[pool.Handle]*resolv.Object),
		seen:    make(map[pool.Handle]bool),
	}
}

func (s *Sensors) Priority() int { return parameter.PrioritySensors }

// Update syncs one object per active sensor entity and drops the rest
func (s *Sensors) Update(w *engine.World) {
	clear(s.seen)
	w.Entities.Each(func(e *entity.Entity) bool {
		tag := sensorTag(e)
		if tag == "" || !e.Active {
			return true
		}
		box, ok := e.Bounds(w.Bodies)
		if !ok {
			return true
		}
		s.seen[e.Self] = true
		s.place(e.Self, box, tag)
		return true
	})
	for h, obj := range s.objects {
		if !s.seen[h] {
			s.space.Remove(obj)
			delete(s.objects, h)
		}
	}
}

func sensorTag(e *entity.Entity) string {
	switch {
	case e.Flags.Has(core.FlagTrigger):
		return TagTrigger
	case e.Flags.Has(core.FlagInteractable):
		return TagInteractable
	}
	return ""
}

func (s *Sensors) place(h pool.Handle, box core.AABB, tag string) {
	obj, ok := s.objects[h]
	if !ok {
		obj = resolv.NewObject(0, 0, 0, 0, tag)
		obj.Data = h
		s.objects[h] = obj
		s.space.Add(obj)
	}
	obj.X, obj.Y = float64(box.Min.X), float64(box.Min.Y)
	obj.W, obj.H = float64(box.Width()), float64(box.Height())
	obj.Update()
}

// Query returns handles of sensors sharing grid cells with box, ordered by
// entity index
func (s *Sensors) Query(box core.AABB, tag string) []pool.Handle {
	probe := resolv.NewObject(float64(box.Min.X), float64(box.Min.Y), float64(box.Width()), float64(box.Height()))
	s.space.Add(probe)
	defer s.space.Remove(probe)

	col := probe.Check(0, 0, tag)
	if col == nil {
		return nil
	}
	out := make([]pool.Handle, 0, len(col.Objects))
	for _, obj := range col.Objects {
		if h, ok := obj.Data.(pool.Handle); ok {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func (s *Sensors) Len() int { return len(s.objects) }
