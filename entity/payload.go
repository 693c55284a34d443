package entity

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/navigation"
)

// Kind tags the entity variant
type Kind uint8

const (
	KindPlayer Kind = iota
	KindGeneric
	KindNPC
	KindEnemy
	KindPlatform
	KindItem
	KindTrigger
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGeneric:
		return "generic"
	case KindNPC:
		return "npc"
	case KindEnemy:
		return "enemy"
	case KindPlatform:
		return "platform"
	case KindItem:
		return "item"
	case KindTrigger:
		return "trigger"
	}
	return "unknown"
}

// Payload is the kind-specific data; the set of implementations is closed
type Payload interface {
	payloadKind() Kind
}

// PlatformData drives a ride-able body along a path
type PlatformData struct {
	Follower *navigation.Follower
}

// ItemData is a collectible with a world hitbox
type ItemData struct {
	Hitbox    core.AABB
	ID        int
	Name      string
	Collected bool
}

// TextMode selects how an NPC advances through its lines
type TextMode uint8

const (
	TextLoop     TextMode = iota // wrap to the first line
	TextStopLast                 // repeat the last line forever
	TextAdvance                  // go silent after the last line
)

// NPCData holds dialogue lines and the cursor into them
type NPCData struct {
	Hitbox    core.AABB
	Texts     []string
	TextIndex int
	TextMode  TextMode
}

// TriggerType controls when a trigger fires
type TriggerType uint8

const (
	TriggerOnce TriggerType = iota
	TriggerRepeat
	TriggerEnterExit
)

// ZoneAction is applied to the linked blocking zone on enter
type ZoneAction uint8

const (
	ZoneNone ZoneAction = iota
	ZoneEnable
	ZoneDisable
	ZoneToggle
)

// NoZone marks a trigger without a linked blocking zone
const NoZone = -1

// TriggerData is a sensor region watching one target entity
type TriggerData struct {
	Hitbox    core.AABB
	Type      TriggerType
	Triggered bool
	Action    ZoneAction
	Zone      int
}

func (*PlatformData) payloadKind() Kind { return KindPlatform }
func (*ItemData) payloadKind() Kind     { return KindItem }
func (*NPCData) payloadKind() Kind      { return KindNPC }
func (*TriggerData) payloadKind() Kind  { return KindTrigger }
