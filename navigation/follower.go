// Package navigation moves agents along fixed waypoint paths in sub-pixel
// units, one tick per frame.
package navigation

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Mode selects what happens at the ends of a path
type Mode uint8

const (
	Loop Mode = iota
	PingPong
	OneShot
)

func (m Mode) String() string {
	switch m {
	case Loop:
		return "loop"
	case PingPong:
		return "pingpong"
	case OneShot:
		return "oneshot"
	}
	return "unknown"
}

// Metric selects the distance strategy used to approach a waypoint
type Metric uint8

const (
	Manhattan Metric = iota
	Euclidean
)

// Def describes a follower; Path is shared and never modified
type Def struct {
	Start    core.Point
	Path     []core.Point
	Mode     Mode
	Metric   Metric
	Velocity int // 10.6 pixels per tick
	Delay    int // frames to wait at each waypoint
}

// Step is the outcome of one tick
type Step struct {
	Delta  core.Point // whole-pixel movement this tick
	Ticked bool       // the follower consumed the frame (moving or waiting)
	Ended  bool       // an end of the path was reached this tick
}

// Follower is the per-agent traversal state
type Follower struct {
	path      []core.Point
	mode      Mode
	metric    Metric
	velocity  int
	delayInit int
	delay     int

	index     int
	direction int
	active    bool

	posX, posY int // sub-pixel
	errX, errY int // Euclidean remainders
}

// New creates an active follower positioned at def.Start aiming at waypoint 0
func New(def Def) *Follower {
	return &Follower{
		path:      def.Path,
		mode:      def.Mode,
		metric:    def.Metric,
		velocity:  def.Velocity,
		delayInit: def.Delay,
		delay:     def.Delay,
		direction: 1,
		active:    len(def.Path) > 0,
		posX:      vmath.PosFromInt(def.Start.X),
		posY:      vmath.PosFromInt(def.Start.Y),
	}
}

func (f *Follower) Active() bool   { return f.active }
func (f *Follower) Index() int     { return f.index }
func (f *Follower) Direction() int { return f.direction }
func (f *Follower) Mode() Mode     { return f.mode }

// Position returns the follower's whole-pixel position
func (f *Follower) Position() core.Point {
	return core.Point{X: vmath.PosToInt(f.posX), Y: vmath.PosToInt(f.posY)}
}

// SubPosition returns the raw sub-pixel position
func (f *Follower) SubPosition() (x, y int) { return f.posX, f.posY }

// Target returns the current waypoint
func (f *Follower) Target() core.Point { return f.path[f.index] }

// SetActive resumes or pauses the follower; an empty path stays inactive
func (f *Follower) SetActive(active bool) { f.active = active && len(f.path) > 0 }

// Tick advances one frame. Inactive followers report a zero Step.
func (f *Follower) Tick() Step {
	if !f.active {
		return Step{}
	}
	if f.delay > 0 {
		f.delay--
		return Step{Ticked: true}
	}

	before := f.Position()
	var ended bool
	switch f.metric {
	case Euclidean:
		ended = f.tickEuclidean()
	default:
		ended = f.tickManhattan()
	}
	return Step{Delta: f.Position().Sub(before), Ticked: true, Ended: ended}
}

func (f *Follower) tickManhattan() bool {
	target := f.path[f.index]
	dx := vmath.PosFromInt(target.X) - f.posX
	dy := vmath.PosFromInt(target.Y) - f.posY

	dist := vmath.ManhattanDistance(dx, dy)
	if dist <= parameter.PathArrivalEpsilon {
		return f.arrive(target)
	}

	// 16.16 share of the speed per axis
	ratioX := (vmath.Abs(dx) << 16) / dist
	ratioY := (vmath.Abs(dy) << 16) / dist
	stepX := (f.velocity * ratioX) >> 16
	stepY := (f.velocity * ratioY) >> 16
	if stepX == 0 && stepY == 0 {
		if ratioX >= ratioY {
			stepX = 1
		} else {
			stepY = 1
		}
	}

	f.posX += vmath.Sign(dx) * min(stepX, vmath.Abs(dx))
	f.posY += vmath.Sign(dy) * min(stepY, vmath.Abs(dy))
	return false
}

func (f *Follower) tickEuclidean() bool {
	target := f.path[f.index]
	dx := (vmath.PosFromInt(target.X) - f.posX) >> vmath.Shift
	dy := (vmath.PosFromInt(target.Y) - f.posY) >> vmath.Shift

	if vmath.Abs(dx) <= 1 && vmath.Abs(dy) <= 1 {
		f.errX, f.errY = 0, 0
		return f.arrive(target)
	}

	dist := int(vmath.ISqrt(uint32(dx*dx + dy*dy)))
	step := max(vmath.ToInt(f.velocity), 1)
	step = min(step, dist)

	f.errX += dx * step
	f.errY += dy * step
	moveX := f.errX / dist
	moveY := f.errY / dist
	f.errX -= moveX * dist
	f.errY -= moveY * dist

	f.posX += vmath.PosFromInt(moveX)
	f.posY += vmath.PosFromInt(moveY)
	return false
}

// arrive snaps to target, restarts the delay and steps the index; it
// reports whether the step hit an end of the path
func (f *Follower) arrive(target core.Point) bool {
	f.posX = vmath.PosFromInt(target.X)
	f.posY = vmath.PosFromInt(target.Y)
	f.delay = f.delayInit
	return f.advance()
}

func (f *Follower) advance() bool {
	n := len(f.path)
	next := f.index + f.direction
	if next >= 0 && next < n {
		f.index = next
		return false
	}

	switch f.mode {
	case Loop:
		if f.direction > 0 {
			f.index = 0
		} else {
			f.index = n - 1
		}
	case PingPong:
		f.direction = -f.direction
		if n > 1 {
			f.index += f.direction
		}
	case OneShot:
		f.active = false
	}
	return true
}
