// Package status exposes frame counters for the debug overlay and logs.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known keys written by the world step
const (
	KeyFrame       = "frame"
	KeyBodies      = "bodies.live"
	KeyEntities    = "entities.live"
	KeyStepped     = "physics.stepped"
	KeySkipped     = "physics.skipped"
	KeyLandings    = "physics.landings"
	KeySupports    = "physics.supports"
	KeyTimers      = "timers.pending"
	KeyCollected   = "items.collected"
	KeyTriggers    = "triggers.fired"
	KeyCameraX     = "camera.x"
	KeyCameraY     = "camera.y"
	KeyPlayerState = "player.state"
	KeyAutoscroll  = "camera.autoscroll"
)

// Registry groups metrics by value type. The world loop writes them and the
// renderer goroutine reads them.
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Labels  *MetricMap[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Labels:  NewMetricMap[Label](),
	}
}

func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Labels.Count()
}

// Lines renders every metric as "key=value": ints, then bools, then labels
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Labels.Range(func(k string, v *Label) {
		out = append(out, k+"="+v.Load())
	})
	return out
}

// String joins Lines with spaces for single-line log output
func (r *Registry) String() string { return strings.Join(r.Lines(), " ") }
