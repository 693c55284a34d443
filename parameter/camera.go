package parameter

import "github.com/lixenwraith/vi-platformer/vmath"

// Camera defaults
const (
	DeadzoneWidth  = 64
	DeadzoneHeight = 48
	CameraMargin   = 32
	ParallaxFloat  = 0.5
)

var Parallax = vmath.FromFloat(ParallaxFloat)
