package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain pulls a streamer to completion and returns the sample count and peak
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("streamer did not finish within %d samples", limit)
	return 0, 0
}

// Test a tone ends after its length at full amplitude
func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := Tone{Shape: ShapeSine, From: 440, To: 440, Length: 100 * time.Millisecond, Gain: 1}.Streamer(rate)
	n, peak := drain(t, s, rate.N(time.Second))
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("samples = %d, want %d", n, rate.N(100*time.Millisecond))
	}
	if peak > 1.0 || peak < 0.9 {
		t.Errorf("peak = %f, want near 1", peak)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v", s.Err())
	}
}

// Test square waves only emit the two rails
func TestShapeSquare(t *testing.T) {
	for _, phase := range []float64{0, 0.25, 0.5, 0.99} {
		if v := ShapeSquare.sample(phase); v != 1 && v != -1 {
			t.Errorf("square(%f) = %f", phase, v)
		}
	}
	if v := ShapeSaw.sample(0); v != -1 {
		t.Errorf("saw(0) = %f, want -1", v)
	}
}

// Test the ramp starts silent and cuts an endless source
func TestRamp(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond
	endless := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	r := Ramp(endless, d, 10*time.Millisecond, 10*time.Millisecond, rate)
	buf := make([][2]float64, 8)
	r.Stream(buf)
	if buf[0][0] != 0 || buf[7][0] <= 0 {
		t.Errorf("attack samples = %f .. %f", buf[0][0], buf[7][0])
	}
	n, _ := drain(t, r, rate.N(time.Second))
	if n+8 != rate.N(d) {
		t.Errorf("ramped length = %d, want %d", n+8, rate.N(d))
	}
}

// Test every cue synthesizes finite, bounded audio
func TestCuesFinish(t *testing.T) {
	rate := beep.SampleRate(44100)
	for c := CueJump; c < cueCount; c++ {
		s := Synth(c, rate)
		if s == nil {
			t.Fatalf("%s: nil streamer", c)
		}
		n, peak := drain(t, s, rate.N(2*time.Second))
		if n == 0 {
			t.Errorf("%s: no samples", c)
		}
		if peak > 1.0 {
			t.Errorf("%s: peak %f clips", c, peak)
		}
	}
	if Synth(cueCount, rate) != nil {
		t.Error("unknown cue should not synthesize")
	}
}

// Test queued cues mix and then leave the mixer
func TestCuePlayerMixesWithoutSpeaker(t *testing.T) {
	p := NewCuePlayer(1.0)
	p.Play(CueJump)
	p.Play(CueLand)
	if p.Active() != 2 {
		t.Fatalf("Active = %d, want 2", p.Active())
	}
	if p.Played(CueJump) != 1 || p.Played(CueCollect) != 0 {
		t.Error("Played counters mismatch")
	}

	buf := make([][2]float64, 1024)
	heard := false
	for i := 0; i < 20; i++ {
		n, ok := p.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("mixer stream stopped: n=%d ok=%v", n, ok)
		}
		for j := 0; j < n; j++ {
			if buf[j][0] != 0 {
				heard = true
			}
		}
	}
	if !heard {
		t.Error("mix was silent")
	}
	if p.Active() != 0 {
		t.Errorf("Active after drain = %d, want 0", p.Active())
	}
}

// Test muting silences the mix
func TestCuePlayerMute(t *testing.T) {
	p := NewCuePlayer(1.0)
	p.SetMuted(true)
	p.Play(CueTrigger)
	buf := make([][2]float64, 256)
	p.Stream(buf)
	for i := range buf {
		if buf[i][0] != 0 {
			t.Fatal("muted player produced sound")
		}
	}
}
