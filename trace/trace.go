// Package trace records per-frame body snapshots as a msgpack stream for
// offline replay and diffing.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/physics"
)

// Version is bumped when the record layout changes
const Version = 1

var ErrVersion = errors.New("unsupported trace version")

// Header opens every trace
type Header struct {
	RunID   string `msgpack:"run"`
	Level   string `msgpack:"level"`
	Version int    `msgpack:"v"`
}

// BodySnapshot is the replay-relevant state of one live body
type BodySnapshot struct {
	Index   int                `msgpack:"i"`
	Gen     uint32             `msgpack:"g"`
	X       int                `msgpack:"x"`
	Y       int                `msgpack:"y"`
	FixY    int                `msgpack:"vy"`
	VState  core.VerticalState `msgpack:"vs"`
	Support uint64             `msgpack:"sup,omitempty"`
}

type Frame struct {
	Number int64          `msgpack:"n"`
	Bodies []BodySnapshot `msgpack:"b"`
}

// Recorder appends frames to a writer; it satisfies the world's frame recorder
type Recorder struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int64
}

// NewRecorder writes the header immediately. If w is an io.Closer it is
// closed by Close.
func NewRecorder(w io.Writer, runID, level string) (*Recorder, error) {
	buf := bufio.NewWriter(w)
	r := &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	if err := r.enc.Encode(&Header{RunID: runID, Level: level, Version: Version}); err != nil {
		return nil, fmt.Errorf("trace header: %w", err)
	}
	return r, nil
}

func (r *Recorder) RecordFrame(frame int64, bodies *physics.Bodies) error {
	f := Frame{Number: frame, Bodies: make([]BodySnapshot, 0, bodies.Len())}
	bodies.Each(func(b *physics.RigidBody) bool {
		f.Bodies = append(f.Bodies, BodySnapshot{
			Index:   b.Self.Index(),
			Gen:     b.Self.Generation(),
			X:       b.Position.X,
			Y:       b.Position.Y,
			FixY:    b.Velocity.FixY,
			VState:  b.VState,
			Support: uint64(b.Support),
		})
		return true
	})
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("trace frame %d: %w", frame, err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int64 { return r.frames }

// Flush pushes buffered frames to the writer
func (r *Recorder) Flush() error { return r.buf.Flush() }

func (r *Recorder) Close() error {
	err := r.buf.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader iterates the frames of a trace
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the header
func NewReader(r io.Reader) (*Reader, error) {
	tr := &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
	if err := tr.dec.Decode(&tr.header); err != nil {
		return nil, fmt.Errorf("trace header: %w", err)
	}
	if tr.header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, tr.header.Version)
	}
	return tr, nil
}

func (r *Reader) Header() Header { return r.header }

// Next returns the next frame, io.EOF after the last
func (r *Reader) Next() (*Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("trace frame: %w", err)
	}
	return &f, nil
}
