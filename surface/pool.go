// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/vaout/va"
)

// ErrAllocate is wrapped by Allocate failures.
var ErrAllocate = errors.New("surface: allocation failed")

// Pool is the arena of decode surfaces plus its free ring.
type Pool struct {
	arena  []*Surface
	ids    []va.SurfaceID
	ring   *FreeRing
	gen    uint32
	direct bool
	debug  bool
	log    *slog.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger for driver call failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithDebug enables conservation checks on every push and pop.
func WithDebug(on bool) Option {
	return func(p *Pool) {
		p.debug = on
	}
}

// NewPool returns an empty pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		ring: NewFreeRing(0),
		gen:  1,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDirectMapping selects direct index mapping instead of LRU recycling.
func (p *Pool) SetDirectMapping(on bool) { p.direct = on }

// DirectMapping reports whether direct index mapping is in effect.
func (p *Pool) DirectMapping() bool { return p.direct }

// SetDebug toggles the per-operation checks.
func (p *Pool) SetDebug(on bool) { p.debug = on }

// Debug reports whether per-operation checks are enabled.
func (p *Pool) Debug() bool { return p.debug }

// Len returns the number of surfaces in the arena.
func (p *Pool) Len() int { return len(p.arena) }

// Free returns the number of surfaces in the free ring.
func (p *Pool) Free() int { return p.ring.Len() }

// IDs returns the driver handles of every surface, in arena order.
// The slice is shared with the pool and must not be modified.
func (p *Pool) IDs() []va.SurfaceID { return p.ids }

// Allocate creates count surfaces and appends them to the arena. Each
// surface is created with its own driver call; on the first failure the
// surfaces created so far stay in the arena, to be released by
// ReleaseAll, and the error wraps the driver status.
//
// The free ring is rebuilt to hold every surface in arena order.
func (p *Pool) Allocate(d va.Display, width, height, count int, rt va.RTFormat) error {
	var err error
	for range count {
		var ids []va.SurfaceID
		ids, err = d.CreateSurfaces(width, height, rt, 1)
		if !va.Check(p.log, err, "vaCreateSurfaces()") {
			break
		}
		if len(ids) != 1 {
			err = fmt.Errorf("driver returned %d surfaces", len(ids))
			break
		}
		p.arena = append(p.arena, &Surface{
			ID:    ids[0],
			Image: va.NoImage(),
			Index: len(p.arena),
			gen:   p.gen,
		})
		p.ids = append(p.ids, ids[0])
	}
	p.resetRing()
	if err != nil {
		return fmt.Errorf("%w: %d of %d surfaces: %w", ErrAllocate, len(p.arena), count, err)
	}
	return nil
}

func (p *Pool) resetRing() {
	p.ring = NewFreeRing(len(p.arena))
	for _, s := range p.arena {
		p.ring.Push(s.Index)
		s.inRing = true
		s.state = Free
	}
}

func (p *Pool) handle(s *Surface) Handle {
	return Handle{index: int32(s.Index), gen: s.gen}
}

// Lookup resolves a handle. Stale and invalid handles fail.
func (p *Pool) Lookup(h Handle) (*Surface, bool) {
	if !h.Valid() || h.gen != p.gen {
		return nil, false
	}
	i := int(h.index)
	if i < 0 || i >= len(p.arena) || p.arena[i] == nil {
		return nil, false
	}
	return p.arena[i], true
}

// At returns the handle of arena slot i. It panics if i is out of range.
func (p *Pool) At(i int) Handle {
	if i < 0 || i >= len(p.arena) {
		panic(violation("at", "index %d out of range [0,%d)", i, len(p.arena)))
	}
	return p.handle(p.arena[i])
}

// Acquire returns the least recently released surface. If prev is valid
// it is released to the ring tail first.
func (p *Pool) Acquire(prev Handle) Handle {
	if prev.Valid() {
		s, ok := p.Lookup(prev)
		if !ok {
			panic(violation("acquire", "released %v is stale", prev))
		}
		if s.inRing {
			panic(violation("acquire", "surface %d released twice", s.Index))
		}
		p.ring.Push(s.Index)
		s.inRing = true
		if s.state == Decoding {
			s.state = Free
		}
		p.validate("push")
	}

	i := p.ring.Pop()
	s := p.arena[i]
	if p.debug && s.state != Free {
		panic(violation("acquire", "surface %d popped while %v", i, s.state))
	}
	s.inRing = false
	s.state = Decoding
	p.validate("pop")
	return p.handle(s)
}

// AcquireIndex returns arena slot i under direct mapping. An index out of
// range panics with an *InvariantError.
func (p *Pool) AcquireIndex(i int) Handle {
	if i < 0 || i >= len(p.arena) {
		panic(violation("acquire", "index %d out of range [0,%d)", i, len(p.arena)))
	}
	s := p.arena[i]
	if p.debug && s.state == Queued {
		panic(violation("acquire", "surface %d reacquired while queued", i))
	}
	s.state = Decoding
	return p.handle(s)
}

// SetState records the busy state of a surface. Stale handles are
// ignored.
func (p *Pool) SetState(h Handle, st State) {
	s, ok := p.Lookup(h)
	if !ok {
		return
	}
	s.state = st
}

// Release marks a surface as no longer queued or displayed. Surfaces
// the decoder still holds keep their state.
func (p *Pool) Release(h Handle) {
	s, ok := p.Lookup(h)
	if !ok {
		return
	}
	if s.state == Queued || s.state == Displayed {
		if s.inRing || p.direct {
			s.state = Free
		} else {
			s.state = Decoding
		}
	}
}

// Check validates surface conservation: in LRU mode every surface is
// either in the free ring exactly once or held by a caller.
func (p *Pool) Check() error {
	if p.direct {
		return nil
	}
	seen := make([]bool, len(p.arena))
	for _, i := range p.ring.Contents() {
		if i < 0 || i >= len(p.arena) {
			return violation("check", "ring holds out of range index %d", i)
		}
		if seen[i] {
			return violation("check", "surface %d is in the ring twice", i)
		}
		seen[i] = true
	}
	for i, s := range p.arena {
		if s == nil {
			continue
		}
		if seen[i] != s.inRing {
			return violation("check", "surface %d ring membership is %v, flag says %v", i, seen[i], s.inRing)
		}
		if s.inRing && s.state == Decoding {
			return violation("check", "surface %d is free and decoding", i)
		}
	}
	return nil
}

func (p *Pool) validate(op string) {
	if !p.debug {
		return
	}
	if err := p.Check(); err != nil {
		var ie *InvariantError
		if errors.As(err, &ie) {
			ie.Op = op + ": " + ie.Op
		}
		panic(err)
	}
}

// ReleaseAll destroys every surface image and every surface, then
// empties the arena and invalidates outstanding handles. It tolerates a
// partially built pool and may be called any number of times.
func (p *Pool) ReleaseAll(d va.Display) {
	for _, s := range p.arena {
		if s == nil || !s.Image.Valid() {
			continue
		}
		va.Check(p.log, d.DestroyImage(s.Image.ID), "vaDestroyImage()")
		s.Image = va.NoImage()
		s.Bound = false
	}
	if len(p.ids) > 0 {
		va.Check(p.log, d.DestroySurfaces(p.ids), "vaDestroySurfaces()")
	}
	p.arena = nil
	p.ids = nil
	p.ring = NewFreeRing(0)
	p.gen++
}
