package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Shape is the waveform of a tone
type Shape uint8

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeSaw
	ShapeNoise
)

// sample evaluates the shape at phase in [0, 1)
func (s Shape) sample(phase float64) float64 {
	switch s {
	case ShapeSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case ShapeSaw:
		return 2*phase - 1
	case ShapeNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// Tone is one synthesized note: a waveform swept linearly From to To Hz
// over Length, shaped by a linear attack and release, scaled by Gain
type Tone struct {
	Shape   Shape
	From    float64
	To      float64
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
	Gain    float64
}

// Streamer renders the tone at rate; it ends after Length
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	n := rate.N(t.Length)
	w := &wave{shape: t.Shape, hz: t.From, rate: float64(rate), left: n}
	if n > 0 {
		w.step = (t.To - t.From) / float64(n)
	}
	return withGain(Ramp(w, t.Length, t.Attack, t.Release, rate), t.Gain)
}

type wave struct {
	shape Shape
	hz    float64
	step  float64 // Hz per sample
	rate  float64
	phase float64
	left  int
}

func (w *wave) Stream(samples [][2]float64) (int, bool) {
	if w.left <= 0 {
		return 0, false
	}
	n := min(len(samples), w.left)
	for i := 0; i < n; i++ {
		v := w.shape.sample(w.phase)
		samples[i] = [2]float64{v, v}
		w.phase += w.hz / w.rate
		w.phase -= math.Floor(w.phase)
		w.hz += w.step
	}
	w.left -= n
	return n, true
}

func (w *wave) Err() error { return nil }

// ramp multiplies a source by a linear attack/release curve and cuts it at
// the total length
type ramp struct {
	src     beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// Ramp shapes s; sources longer than length are truncated
func Ramp(s beep.Streamer, length, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &ramp{src: s, total: rate.N(length), attack: rate.N(attack), release: rate.N(release)}
}

func (r *ramp) level(pos int) float64 {
	if pos < r.attack {
		return float64(pos) / float64(r.attack)
	}
	if tail := r.total - pos; r.release > 0 && tail < r.release {
		return float64(tail) / float64(r.release)
	}
	return 1
}

func (r *ramp) Stream(samples [][2]float64) (int, bool) {
	if r.pos >= r.total {
		return 0, false
	}
	samples = samples[:min(len(samples), r.total-r.pos)]
	n, ok := r.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := r.level(r.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		r.pos++
	}
	return n, ok || n > 0
}

func (r *ramp) Err() error { return r.src.Err() }

// withGain scales linearly through beep's exponential volume control;
// non-positive gain is silent
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
