// Package pool provides fixed-capacity slot allocation with generation
// checked handles; slots never move, so handles stay valid until destroyed.
package pool

import "errors"

var (
	ErrPoolExhausted = errors.New("pool exhausted")
	ErrInvalidIndex  = errors.New("invalid pool index")
	ErrStaleHandle   = errors.New("stale pool handle")
)

// Handle packs generation<<32 | index; the zero Handle is never issued
type Handle uint64

// Nil is the empty handle
const Nil Handle = 0

func makeHandle(index int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(uint32(index)))
}

// Index returns the slot index encoded in h
func (h Handle) Index() int { return int(uint32(h)) }

// Generation returns the generation encoded in h
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

// IsNil reports whether h is the empty handle
func (h Handle) IsNil() bool { return h == Nil }

const endOfList = -1

type slot[T any] struct {
	value T
	gen   uint32
	next  int // free-list link, valid while !live
	live  bool
}

// Pool is a fixed array of T with an embedded free list
type Pool[T any] struct {
	slots []slot[T]
	free  int
	live  int
}

// New creates a pool holding at most capacity values
func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{slots: make([]slot[T], capacity)}
	p.Reset()
	return p
}

// Reset releases every slot; outstanding handles become stale
func (p *Pool[T]) Reset() {
	for i := range p.slots {
		s := &p.slots[i]
		if s.live || s.gen == 0 {
			s.gen++
		}
		s.live = false
		s.next = i + 1
	}
	if n := len(p.slots); n > 0 {
		p.slots[n-1].next = endOfList
		p.free = 0
	} else {
		p.free = endOfList
	}
	p.live = 0
}

// Create takes a free slot, zeroes it and returns its handle
func (p *Pool[T]) Create() (Handle, *T, error) {
	if p.free == endOfList {
		return Nil, nil, ErrPoolExhausted
	}
	i := p.free
	s := &p.slots[i]
	p.free = s.next
	s.next = endOfList
	s.live = true
	var zero T
	s.value = zero
	p.live++
	return makeHandle(i, s.gen), &s.value, nil
}

// Destroy returns the slot to the free list and invalidates h
func (p *Pool[T]) Destroy(h Handle) error {
	s, err := p.slot(h)
	if err != nil {
		return err
	}
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.next = p.free
	p.free = h.Index()
	p.live--
	return nil
}

// Get resolves a handle to its value
func (p *Pool[T]) Get(h Handle) (*T, error) {
	s, err := p.slot(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Alive reports whether h still refers to a live slot
func (p *Pool[T]) Alive(h Handle) bool {
	_, err := p.slot(h)
	return err == nil
}

// At returns the live value at a raw index with its current handle
func (p *Pool[T]) At(index int) (Handle, *T, error) {
	if index < 0 || index >= len(p.slots) {
		return Nil, nil, ErrInvalidIndex
	}
	s := &p.slots[index]
	if !s.live {
		return Nil, nil, ErrStaleHandle
	}
	return makeHandle(index, s.gen), &s.value, nil
}

// Each visits live slots in index order; returning false stops iteration
func (p *Pool[T]) Each(fn func(h Handle, v *T) bool) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.live {
			continue
		}
		if !fn(makeHandle(i, s.gen), &s.value) {
			return
		}
	}
}

// Len returns the number of live slots
func (p *Pool[T]) Len() int { return p.live }

// Cap returns the fixed capacity
func (p *Pool[T]) Cap() int { return len(p.slots) }

func (p *Pool[T]) slot(h Handle) (*slot[T], error) {
	i := h.Index()
	if h.IsNil() || i >= len(p.slots) {
		return nil, ErrInvalidIndex
	}
	s := &p.slots[i]
	if !s.live || s.gen != h.Generation() {
		return nil, ErrStaleHandle
	}
	return s, nil
}
