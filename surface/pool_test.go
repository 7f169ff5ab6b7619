// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/va/software"
)

func newPool(t *testing.T, count int, opts ...Option) (*Pool, *software.Display) {
	t.Helper()
	d := software.New()
	if _, _, err := d.Initialize(); err != nil {
		t.Fatal(err)
	}
	p := NewPool(opts...)
	if err := p.Allocate(d, 64, 64, count, va.RTFormatYUV420); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	return p, d
}

func TestAllocate(t *testing.T) {
	p, d := newPool(t, 21)
	if p.Len() != 21 || p.Free() != 21 || len(p.IDs()) != 21 {
		t.Fatalf("Len/Free/IDs = %d/%d/%d, want 21", p.Len(), p.Free(), len(p.IDs()))
	}
	if n := d.Calls("CreateSurfaces"); n != 21 {
		t.Errorf("CreateSurfaces calls = %d, want one per surface", n)
	}
	if err := p.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestAllocatePartialFailure(t *testing.T) {
	d := software.New()
	if _, _, err := d.Initialize(); err != nil {
		t.Fatal(err)
	}
	d.FailAfter("CreateSurfaces", 2, va.StatusErrorAllocationFailed)

	p := NewPool()
	err := p.Allocate(d, 32, 32, 5, va.RTFormatYUV420)
	if !errors.Is(err, ErrAllocate) {
		t.Fatalf("err = %v, want ErrAllocate", err)
	}
	if va.StatusOf(err) != va.StatusErrorAllocationFailed {
		t.Errorf("status = %v", va.StatusOf(err))
	}
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want the 2 surfaces created before the failure", p.Len())
	}

	p.ReleaseAll(d)
	p.ReleaseAll(d)
	if n, _, _ := d.Live(); n != 0 {
		t.Errorf("%d surfaces leaked", n)
	}
}

func TestAcquireIsFIFO(t *testing.T) {
	p, _ := newPool(t, 3)

	a := p.Acquire(Handle{})
	b := p.Acquire(a) // a goes to the tail behind 1 and 2
	if b.Index() != 1 {
		t.Fatalf("second acquire = %d, want 1", b.Index())
	}
	c := p.Acquire(b)
	if c.Index() != 2 {
		t.Fatalf("third acquire = %d, want 2", c.Index())
	}
	d := p.Acquire(c)
	if d.Index() != a.Index() {
		t.Fatalf("fourth acquire = %d, want the oldest free surface %d", d.Index(), a.Index())
	}
}

func TestPoolConservation(t *testing.T) {
	const n = 21
	p, _ := newPool(t, n, WithDebug(true))
	rng := rand.New(rand.NewPCG(1, 2))

	var held []Handle
	for step := range 2000 {
		switch {
		case len(held) == n:
			// Only releasing is possible; give one back via Acquire.
			k := rng.IntN(len(held))
			h := p.Acquire(held[k])
			held[k] = h
		case len(held) > 0 && rng.IntN(2) == 0:
			k := rng.IntN(len(held))
			h := p.Acquire(held[k])
			held[k] = h
		default:
			held = append(held, p.Acquire(Handle{}))
		}
		if err := p.Check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if p.Free()+len(held) != n {
			t.Fatalf("step %d: free %d + held %d != %d", step, p.Free(), len(held), n)
		}
		seen := make(map[int]bool)
		for _, h := range held {
			if seen[h.Index()] {
				t.Fatalf("step %d: surface %d held twice", step, h.Index())
			}
			seen[h.Index()] = true
		}
	}
}

func TestAcquireInvariants(t *testing.T) {
	expectInvariant(t, "pop empty", func() {
		p, _ := newPool(t, 2)
		p.Acquire(Handle{})
		p.Acquire(Handle{})
		p.Acquire(Handle{})
	})
	expectInvariant(t, "double release", func() {
		p, _ := newPool(t, 3)
		a := p.Acquire(Handle{})
		p.Acquire(a)
		p.Acquire(a)
	})
	expectInvariant(t, "stale release", func() {
		p, d := newPool(t, 3)
		a := p.Acquire(Handle{})
		p.ReleaseAll(d)
		if err := p.Allocate(d, 64, 64, 3, va.RTFormatYUV420); err != nil {
			t.Fatal(err)
		}
		p.Acquire(a)
	})
	expectInvariant(t, "index out of range", func() {
		p, _ := newPool(t, 3)
		p.SetDirectMapping(true)
		p.AcquireIndex(3)
	})
}

func TestDebugRefusesDisplayedSurface(t *testing.T) {
	p, _ := newPool(t, 2, WithDebug(true))
	h1 := p.Acquire(Handle{})
	p.SetState(h1, Displayed)
	h2 := p.Acquire(h1) // h1 is free again but still on screen
	expectInvariant(t, "pop displayed", func() {
		p.Acquire(h2)
	})
}

func TestDirectMappingBijection(t *testing.T) {
	p, _ := newPool(t, 5)
	p.SetDirectMapping(true)

	first := make([]va.SurfaceID, p.Len())
	for i := range first {
		s, ok := p.Lookup(p.AcquireIndex(i))
		if !ok {
			t.Fatalf("Lookup(%d) failed", i)
		}
		first[i] = s.ID
	}
	seen := make(map[va.SurfaceID]bool)
	for round := range 3 {
		for i := p.Len() - 1; i >= 0; i-- {
			s, _ := p.Lookup(p.AcquireIndex(i))
			if s.ID != first[i] {
				t.Fatalf("round %d: index %d = %v, want %v", round, i, s.ID, first[i])
			}
			seen[s.ID] = true
		}
	}
	if len(seen) != p.Len() {
		t.Errorf("%d distinct surfaces, want %d", len(seen), p.Len())
	}
}

func TestReleaseAllInvalidatesHandles(t *testing.T) {
	p, d := newPool(t, 3)
	h := p.Acquire(Handle{})
	s, _ := p.Lookup(h)

	img, err := d.DeriveImage(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	s.Image, s.Bound = img, true

	p.ReleaseAll(d)
	if _, ok := p.Lookup(h); ok {
		t.Error("handle survived ReleaseAll")
	}
	if p.Len() != 0 || p.Free() != 0 {
		t.Errorf("Len/Free = %d/%d after ReleaseAll", p.Len(), p.Free())
	}
	if n, imgs, _ := d.Live(); n != 0 || imgs != 0 {
		t.Errorf("live surfaces/images = %d/%d", n, imgs)
	}
	if d.Calls("DestroyImage") != 1 {
		t.Errorf("DestroyImage calls = %d", d.Calls("DestroyImage"))
	}
}

func TestRelease(t *testing.T) {
	p, _ := newPool(t, 3)
	h := p.Acquire(Handle{})
	p.SetState(h, Queued)
	p.SetState(h, Displayed)
	p.Release(h)
	s, _ := p.Lookup(h)
	if s.State() != Decoding {
		t.Errorf("held surface left display as %v, want decoding", s.State())
	}

	h2 := p.Acquire(h)
	p.SetState(h, Displayed) // stale reference from the output ring
	p.Release(h)
	if s.State() != Free {
		t.Errorf("ring surface left display as %v, want free", s.State())
	}
	_ = h2
}
