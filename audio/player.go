// Package audio synthesizes short gameplay cues and mixes them to the speaker.
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/vi-platformer/parameter"
)

// CuePlayer mixes cues into one output. Without Init it still mixes, so the
// output can be pulled through Stream.
type CuePlayer struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      float64
	initialized bool
	played      [cueCount]int
}

func NewCuePlayer(volume float64) *CuePlayer {
	mixer := &beep.Mixer{}
	return &CuePlayer{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  mixer,
		ctrl:   &beep.Ctrl{Streamer: mixer},
		volume: volume,
	}
}

// Init opens the speaker and starts playback of the mix
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBuffer)); err != nil {
		return err
	}
	speaker.Play(p.ctrl)
	p.initialized = true
	return nil
}

// Play queues a cue; unknown cues are ignored
func (p *CuePlayer) Play(c Cue) {
	s := Synth(c, p.rate)
	if s == nil {
		return
	}
	s = withGain(s, p.volume)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.played[c]++
	if p.initialized {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
		return
	}
	p.mixer.Add(s)
}

// SetMuted pauses the whole mix
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.ctrl.Paused = muted
}

// Played returns how many times c was queued
func (p *CuePlayer) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c >= cueCount {
		return 0
	}
	return p.played[c]
}

// Active is the number of cues still sounding
func (p *CuePlayer) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Stream pulls mixed samples directly; only valid before Init
func (p *CuePlayer) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Stream(samples)
}

// Close clears the mix; the speaker stays open for process lifetime
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Clear()
	p.ctrl.Paused = true
}
