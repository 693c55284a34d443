package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/vi-platformer/parameter"
)

// Cue names a short gameplay sound
type Cue uint8

const (
	CueJump Cue = iota
	CueLand
	CueCollect
	CueTrigger
	CueTalk
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueCollect:
		return "collect"
	case CueTrigger:
		return "trigger"
	case CueTalk:
		return "talk"
	}
	return "unknown"
}

// cueTones are the synthesized cues; the trigger cue uses beep's sine generator
var cueTones = map[Cue][]Tone{
	CueJump: {{Shape: ShapeSquare, From: 330, To: 660, Length: parameter.JumpCueDuration,
		Attack: parameter.CueAttack, Release: parameter.CueRelease, Gain: 0.4}},
	CueLand: {{Shape: ShapeNoise, Length: parameter.LandCueDuration,
		Release: parameter.LandCueDuration, Gain: 0.5}},
	CueCollect: {
		{Shape: ShapeSquare, From: 987.77, To: 987.77, Length: parameter.CollectCueNote,
			Attack: parameter.CueAttack, Release: parameter.CueRelease, Gain: 0.35},
		{Shape: ShapeSquare, From: 1318.51, To: 1318.51, Length: parameter.CollectCueNote * 2,
			Attack: parameter.CueAttack, Release: parameter.CueRelease, Gain: 0.35},
	},
	CueTalk: {{Shape: ShapeSaw, From: 520, To: 480, Length: parameter.TalkCueDuration,
		Attack: parameter.CueAttack, Release: parameter.CueRelease, Gain: 0.25}},
}

// Synth builds a fresh streamer for c; nil for an unknown cue
func Synth(c Cue, rate beep.SampleRate) beep.Streamer {
	if c == CueTrigger {
		tone, err := generators.SineTone(rate, 220)
		if err != nil {
			return nil
		}
		d := parameter.TriggerCueDuration
		return withGain(Ramp(tone, d, parameter.CueAttack, parameter.CueRelease*3, rate), 0.6)
	}

	tones, ok := cueTones[c]
	if !ok {
		return nil
	}
	if len(tones) == 1 {
		return tones[0].Streamer(rate)
	}
	parts := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		parts[i] = t.Streamer(rate)
	}
	return beep.Seq(parts...)
}
