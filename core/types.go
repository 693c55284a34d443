package core

// Layer is the single collision group a body belongs to
type Layer uint8

const (
	LayerPlayer Layer = iota
	LayerEnemy
	LayerPlatform
	LayerItem
	LayerTrigger
	LayerScenery
)

// Mask is the set of layers a body collides with
type Mask uint16

// Bit returns the mask containing only l
func (l Layer) Bit() Mask { return 1 << l }

// Has reports whether the mask accepts layer l
func (m Mask) Has(l Layer) bool { return m&l.Bit() != 0 }

var (
	MaskPlayer   = LayerPlatform.Bit() | LayerEnemy.Bit() | LayerItem.Bit() | LayerTrigger.Bit()
	MaskEnemy    = LayerPlayer.Bit() | LayerPlatform.Bit()
	MaskPlatform = LayerPlayer.Bit()
)

// Flags are entity capability bits consulted by physics and interaction
type Flags uint16

const (
	FlagSolid Flags = 1 << iota
	FlagPushable
	FlagIgnoreGravity
	FlagNoCollision
	FlagCanRide
	FlagInteractable
	FlagTrigger
)

func (f Flags) Has(bits Flags) bool { return f&bits == bits }

// Tag is a body subtype id
type Tag uint8

const (
	TagNotApplicable Tag = iota
	TagPlatformNormal
	TagOneWay
	TagMoving
	TagFalling
)

type VerticalState uint8

const (
	Grounded VerticalState = iota
	Jumping
	Falling
	Airborne
)

func (s VerticalState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	case Airborne:
		return "airborne"
	}
	return "unknown"
}

type MovementState uint8

const (
	Idle MovementState = iota
	Walking
	Running
	Dashing
)

func (s MovementState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Running:
		return "running"
	case Dashing:
		return "dashing"
	}
	return "unknown"
}

type ActionState uint8

const (
	ActionNone ActionState = iota
	Attacking
	Casting
	Interacting
	Hurt
	Climbing
)

// UpdatePolicy gates whether a system touches an object this frame
type UpdatePolicy uint8

const (
	UpdateAlways UpdatePolicy = iota
	UpdateVisibleOnly
	UpdateNearCamera
	UpdateDisabled
)

// Event is delivered to entities through their event capability
type Event uint8

const (
	EventLand Event = iota
	EventJump
	EventHit
	EventDie
)

func (e Event) String() string {
	switch e {
	case EventLand:
		return "land"
	case EventJump:
		return "jump"
	case EventHit:
		return "hit"
	case EventDie:
		return "die"
	}
	return "unknown"
}
