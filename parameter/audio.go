package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100
	AudioBuffer     = 100 * time.Millisecond
	AudioVolume     = 0.6
)

// Cue shapes
const (
	JumpCueDuration    = 90 * time.Millisecond
	LandCueDuration    = 50 * time.Millisecond
	CollectCueNote     = 70 * time.Millisecond
	TriggerCueDuration = 160 * time.Millisecond
	TalkCueDuration    = 40 * time.Millisecond
	CueAttack          = 5 * time.Millisecond
	CueRelease         = 30 * time.Millisecond
)
