package parameter

import "github.com/lixenwraith/vi-platformer/vmath"

// Float sources for tunables, exposed so configuration can default to them
const (
	GravityFloat      = 0.50
	MaxFallSpeedFloat = 9.0
	JumpSpeedFloat    = 7.0
	AccelerationFloat = 0.25
	DecelerationFloat = 0.20
	MaxRunSpeedFloat  = 3.5
)

// Pre-computed 10.6 defaults
var (
	Gravity      = vmath.FromFloat(GravityFloat)
	MaxFallSpeed = vmath.FromFloat(MaxFallSpeedFloat)
	JumpSpeed    = vmath.FromFloat(JumpSpeedFloat)
	Acceleration = vmath.FromFloat(AccelerationFloat)
	Deceleration = vmath.FromFloat(DecelerationFloat)
	MaxRunSpeed  = vmath.FromFloat(MaxRunSpeedFloat)
)

// Frame counters for jump forgiveness
const (
	CoyoteFrames     = 10
	JumpBufferFrames = 10
)

// Collision tolerances in pixels
const (
	// Ground tile top may sit this far above the previous foot position
	GroundSnapTolerance = 5

	// Support band around a platform top: [top-SupportMargin, top+SupportEpsilon]
	SupportMargin  = 6
	SupportEpsilon = 4

	// Slope band around the interpolated surface: [y-SlopeAbove, y+SlopeBelow]
	SlopeAbove = 6
	SlopeBelow = 8
)

// Path following
const (
	// Manhattan arrival threshold in sub-pixel units
	PathArrivalEpsilon = 64
)
