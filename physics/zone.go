package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-platformer/core"
)

var (
	ErrZonesFull  = errors.New("blocking zone table full")
	ErrNoSuchZone = errors.New("no such blocking zone")
)

// Zone is a rectangle that blocks bodies while active
type Zone struct {
	Bounds  core.AABB
	Active  bool
	Visible bool
}

// Zones is a fixed table of blocking zones addressed by index
type Zones struct {
	zones []Zone
	limit int
}

func NewZones(capacity int) *Zones {
	return &Zones{zones: make([]Zone, 0, capacity), limit: capacity}
}

// Add appends a zone and returns its index
func (z *Zones) Add(bounds core.AABB, active bool) (int, error) {
	if len(z.zones) >= z.limit {
		return -1, ErrZonesFull
	}
	z.zones = append(z.zones, Zone{Bounds: bounds, Active: active, Visible: active})
	return len(z.zones) - 1, nil
}

func (z *Zones) Enable(i int) error  { return z.set(i, func(zn *Zone) { zn.Active = true }) }
func (z *Zones) Disable(i int) error { return z.set(i, func(zn *Zone) { zn.Active = false }) }
func (z *Zones) Toggle(i int) error  { return z.set(i, func(zn *Zone) { zn.Active = !zn.Active }) }

func (z *Zones) set(i int, fn func(*Zone)) error {
	if i < 0 || i >= len(z.zones) {
		return fmt.Errorf("%w: %d", ErrNoSuchZone, i)
	}
	fn(&z.zones[i])
	z.zones[i].Visible = z.zones[i].Active
	return nil
}

// Get returns a copy of zone i
func (z *Zones) Get(i int) (Zone, error) {
	if i < 0 || i >= len(z.zones) {
		return Zone{}, fmt.Errorf("%w: %d", ErrNoSuchZone, i)
	}
	return z.zones[i], nil
}

func (z *Zones) Len() int { return len(z.zones) }

// Clear removes every zone
func (z *Zones) Clear() { z.zones = z.zones[:0] }
