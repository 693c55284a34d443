package systems

import (
	"testing"

	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/tilemap"
)

// cueLog records played cues
type cueLog struct {
	cues []audio.Cue
}

func (c *cueLog) Play(cue audio.Cue) { c.cues = append(c.cues, cue) }

func (c *cueLog) count(cue audio.Cue) int {
	n := 0
	for _, got := range c.cues {
		if got == cue {
			n++
		}
	}
	return n
}

// dialogueLog records spoken lines
type dialogueLog struct {
	lines []string
	from  []pool.Handle
}

func (d *dialogueLog) Say(speaker pool.Handle, line string) {
	d.from = append(d.from, speaker)
	d.lines = append(d.lines, line)
}

// newWorld builds a world over an empty 40x30 tile map with recording sinks
func newWorld(t *testing.T) (*engine.World, *cueLog, *dialogueLog) {
	t.Helper()
	m, err := tilemap.Load(make([]byte, 40*30), 40, 30, false)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	w := engine.NewWorld(m, engine.DefaultOptions())
	cues, talk := &cueLog{}, &dialogueLog{}
	w.Audio = cues
	w.Dialogue = talk
	return w, cues, talk
}

func newPlayer(t *testing.T, w *engine.World, x, y int, s *Sensors) *Player {
	t.Helper()
	p, err := SpawnPlayer(w, core.Point{X: x, Y: y}, DefaultPlayerParams(), s)
	if err != nil {
		t.Fatalf("SpawnPlayer: %v", err)
	}
	return p
}
