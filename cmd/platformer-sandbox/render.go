package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/entity"
	"github.com/lixenwraith/vi-platformer/pool"
	"github.com/lixenwraith/vi-platformer/tilemap"
)

// One terminal cell covers cellW x cellH pixels; cells are about twice as
// tall as wide.
const (
	cellW = 8
	cellH = 16
)

var (
	styleSolid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOneWay   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleSlope    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleItem     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleNPC      = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleZone     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTrigger  = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDialogue = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

type renderer struct {
	screen tcell.Screen
	debug  bool
}

// draw paints the camera view, objects and the status lines
func (r *renderer) draw(w *engine.World, talk *dialogue) {
	r.screen.Clear()
	view := w.Camera.ScreenBounds()
	cols := view.Width() / cellW
	rows := view.Height() / cellH

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			px, py := view.Min.X+cx*cellW, view.Min.Y+cy*cellH
			switch w.Map.TileAt(px, py) {
			case tilemap.Solid:
				r.screen.SetContent(cx, cy, '█', nil, styleSolid)
			case tilemap.OneWayPlatform:
				r.screen.SetContent(cx, cy, '▔', nil, styleOneWay)
			}
		}
	}

	for _, s := range w.Physics.Slopes {
		for cx := 0; cx < cols; cx++ {
			px := view.Min.X + cx*cellW
			if y, ok := s.SurfaceY(px); ok {
				r.put(view, px, y, '/', styleSlope)
			}
		}
	}

	for i := 0; i < w.Zones.Len(); i++ {
		z, err := w.Zones.Get(i)
		if err != nil || !z.Active {
			continue
		}
		r.fill(view, z.Bounds, '|', styleZone)
	}

	w.Entities.Each(func(e *entity.Entity) bool {
		if !e.Active || !e.Anim.Visible {
			return true
		}
		box, ok := e.Bounds(w.Bodies)
		if !ok {
			return true
		}
		switch e.Kind {
		case entity.KindPlayer:
			r.fill(view, box, '@', stylePlayer)
		case entity.KindPlatform:
			r.fill(view, box, '=', stylePlatform)
		case entity.KindItem:
			r.fill(view, box, '*', styleItem)
		case entity.KindNPC:
			r.fill(view, box, '&', styleNPC)
		case entity.KindTrigger:
			if r.debug {
				r.fill(view, box, '.', styleTrigger)
			}
		}
		return true
	})

	y := rows
	if line := talk.current(w.Frame); line != "" {
		r.text(0, y, line, styleDialogue)
	}
	y++
	for _, line := range w.Metrics.Lines() {
		r.text(0, y, line, styleStatus)
		y++
		if !r.debug && y > rows+3 {
			break
		}
	}
	r.screen.Show()
}

// put draws one world pixel position into its cell when on screen
func (r *renderer) put(view core.AABB, px, py int, ch rune, style tcell.Style) {
	if !view.Contains(core.Point{X: px, Y: py}) {
		return
	}
	r.screen.SetContent((px-view.Min.X)/cellW, (py-view.Min.Y)/cellH, ch, nil, style)
}

// fill covers every cell a world box touches
func (r *renderer) fill(view core.AABB, box core.AABB, ch rune, style tcell.Style) {
	for py := box.Min.Y; py < box.Max.Y; py += cellH {
		for px := box.Min.X; px < box.Max.X; px += cellW {
			r.put(view, px, py, ch, style)
		}
	}
}

func (r *renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// dialogue shows the latest NPC line for a few seconds
type dialogue struct {
	world   *engine.World
	line    string
	expires int64
}

const dialogueFrames = 180

func (d *dialogue) Say(_ pool.Handle, line string) {
	d.line = line
	d.expires = d.world.Frame + dialogueFrames
	d.world.Logger.Printf("world %s: frame %d: npc says %q", d.world.ID, d.world.Frame, line)
}

func (d *dialogue) current(frame int64) string {
	if frame >= d.expires {
		return ""
	}
	return d.line
}
