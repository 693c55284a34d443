package trace

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/physics"
)

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closeBuffer) Close() error {
	c.closed = true
	return nil
}

// Test recorded frames read back in order with body state
func TestRecordAndRead(t *testing.T) {
	bodies := physics.NewBodies(4)
	h, b, err := bodies.Create(physics.BodyDef{Position: core.Point{X: 10, Y: 20}, AABB: core.Box(0, 0, 16, 16)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b.Velocity.FixY = -128

	out := &closeBuffer{}
	rec, err := NewRecorder(out, "run-1", "fase1")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if err := rec.RecordFrame(1, bodies); err != nil {
		t.Fatalf("RecordFrame: %v", err)
	}
	b.Position.Y = 22
	b.VState = core.Grounded
	if err := rec.RecordFrame(2, bodies); err != nil {
		t.Fatalf("RecordFrame: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !out.closed || rec.Frames() != 2 {
		t.Errorf("closed %v frames %d, want true 2", out.closed, rec.Frames())
	}

	r, err := NewReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if hd := r.Header(); hd.RunID != "run-1" || hd.Level != "fase1" {
		t.Errorf("header = %+v", hd)
	}

	f1, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if f1.Number != 1 || len(f1.Bodies) != 1 {
		t.Fatalf("frame 1 = %+v", f1)
	}
	s := f1.Bodies[0]
	if s.Index != h.Index() || s.Gen != h.Generation() || s.Y != 20 || s.FixY != -128 || s.VState != core.Airborne {
		t.Errorf("frame 1 body = %+v", s)
	}

	f2, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if f2.Bodies[0].Y != 22 || f2.Bodies[0].VState != core.Grounded {
		t.Errorf("frame 2 body = %+v", f2.Bodies[0])
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("after last frame err = %v, want io.EOF", err)
	}
}

// Test a trace from another layout version is refused
func TestVersionMismatch(t *testing.T) {
	data, err := msgpack.Marshal(&Header{RunID: "x", Version: Version + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := NewReader(bytes.NewReader(data)); !errors.Is(err, ErrVersion) {
		t.Errorf("err = %v, want ErrVersion", err)
	}
}

// Test an empty input has no header
func TestEmptyTrace(t *testing.T) {
	if _, err := NewReader(bytes.NewReader(nil)); err == nil {
		t.Error("expected error for empty trace")
	}
}
