// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package osdtext

import (
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestRender(t *testing.T) {
	r, err := New(DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	if r.Height() <= 0 || r.Ascent() <= 0 || r.Ascent() > r.Height() {
		t.Fatalf("Height/Ascent = %d/%d", r.Height(), r.Ascent())
	}

	mask := r.Render("vaout: 12.5% of CPU @ 1600 MHz")
	if mask == nil {
		t.Fatal("Render returned nil")
	}
	b := mask.Bounds()
	if b.Dy() != r.Height() {
		t.Errorf("mask height = %d, want %d", b.Dy(), r.Height())
	}
	if w := r.Measure("vaout: 12.5% of CPU @ 1600 MHz"); b.Dx() != w {
		t.Errorf("mask width = %d, Measure = %d", b.Dx(), w)
	}

	var covered int
	for _, a := range mask.Pix {
		if a != 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Fatal("no pixel covered")
	}
	if covered == len(mask.Pix) {
		t.Fatal("every pixel covered")
	}
}

func TestRenderEmpty(t *testing.T) {
	r, err := New(DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	if m := r.Render(""); m != nil {
		t.Errorf("Render(\"\") = %v, want nil", m.Bounds())
	}
	if w := r.Measure(""); w != 0 {
		t.Errorf("Measure(\"\") = %d", w)
	}
}

func TestLongerTextIsWider(t *testing.T) {
	r, err := New(DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	short, long := r.Measure("1 MHz"), r.Measure("1000 MHz")
	if long <= short {
		t.Errorf("Measure: %d for the longer text, %d for the shorter", long, short)
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("New(0) succeeded")
	}
	if _, err := NewFromTTF([]byte("not a font"), 12); err == nil {
		t.Error("NewFromTTF(garbage) succeeded")
	}
}

func TestOutlineCache(t *testing.T) {
	r, err := New(DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	first := r.Render("00:00")
	misses := r.CacheStats().Misses
	if misses == 0 || misses > 3 {
		t.Fatalf("first render missed %d times, want one per distinct glyph", misses)
	}

	second := r.Render("00:00")
	s := r.CacheStats()
	if s.Misses != misses {
		t.Errorf("second render missed %d more times", s.Misses-misses)
	}
	if s.Hits == 0 {
		t.Error("no cache hits")
	}
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("cached outlines render differently at %d", i)
		}
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		text string
		want di.Direction
	}{
		{"vaout: 1.0% of CPU @ 800 MHz", di.DirectionLTR},
		{"12.5%", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"مرحبا", di.DirectionRTL},
	}
	for _, tt := range tests {
		if got := direction(tt.text); got != tt.want {
			t.Errorf("direction(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
