package parameter

import "time"

// Screen
const (
	ScreenWidth  = 320
	ScreenHeight = 224
	FrameRate    = 60

	FrameInterval = time.Second / FrameRate
)

// Tile grid, 16 pixel square tiles
const (
	TileShift = 4
	TileSize  = 1 << TileShift
)

// Fixed pools
const (
	MaxEntities      = 32
	MaxBodies        = 16
	MaxBlockingZones = 4
	MaxTimers        = 8
	MaxNPCTexts      = 4
)

// Interaction
const (
	InteractRadius = 32
)

// Player body box relative to its position
const (
	PlayerBoxMinX = 8
	PlayerBoxMaxX = 28
	PlayerBoxMaxY = 48
)

// Default object sizes
const (
	PlatformWidth  = 80
	PlatformHeight = 16
	ObjectSize     = 16
)

// System priorities, lower runs first
const (
	PrioritySensors   = 0
	PriorityPlayer    = 10
	PriorityTriggers  = 20
	PriorityAnimation = 90
)

// SensorCellSize is the broadphase grid cell edge in pixels
const SensorCellSize = 2 * TileSize
