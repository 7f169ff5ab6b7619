// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, MappingAuto, c.Mapping)
	assert.Equal(t, DeintOff, c.Deint)
	assert.Equal(t, ColorspaceBT601, c.Colorspace)
	assert.Equal(t, ScalingDefault, c.Scaling)
	assert.False(t, c.GL)
	assert.Equal(t, DeintBob, c.DeintType())
	assert.NoError(t, c.Validate())
	assert.Empty(t, c.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		subopts string
		check   func(t *testing.T, c Config)
	}{
		{"empty", "", func(t *testing.T, c Config) {
			assert.Equal(t, Default(), c)
		}},
		{"mapping", "dm=0", func(t *testing.T, c Config) {
			assert.Equal(t, MappingLRU, c.Mapping)
		}},
		{"deint sets deint type", "deint=1", func(t *testing.T, c Config) {
			assert.Equal(t, DeintFirstField, c.Deint)
			assert.Equal(t, DeintFirstField, c.DeintType())
		}},
		{"bare flags", "gl:bind:reflect:stats", func(t *testing.T, c Config) {
			assert.True(t, c.GL)
			assert.True(t, c.Bind)
			assert.True(t, c.Reflect)
			assert.True(t, c.Stats)
		}},
		{"negated flag", "stats:nostats", func(t *testing.T, c Config) {
			assert.False(t, c.Stats)
		}},
		{"explicit bool", "glfinish=1:tfp=false", func(t *testing.T, c Config) {
			assert.True(t, c.GLFinish)
			assert.False(t, c.TFP)
		}},
		{"colorspace smpte240m", "colorspace=3", func(t *testing.T, c Config) {
			assert.Equal(t, ColorspaceSMPTE240M, c.Colorspace)
		}},
		{"scaling", "scaling=HQ", func(t *testing.T, c Config) {
			assert.Equal(t, ScalingHQ, c.Scaling)
		}},
		{"whitespace and empty tokens", " xrender :: dm=1 ", func(t *testing.T, c Config) {
			assert.True(t, c.XRender)
			assert.Equal(t, MappingDirect, c.Mapping)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.subopts)
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		subopts string
		want    error
	}{
		{"dm=3", ErrInvalidValue},
		{"dm=-1", ErrInvalidValue},
		{"deint=5", ErrInvalidValue},
		{"colorspace=4", ErrInvalidValue},
		{"dm=abc", ErrInvalidValue},
		{"dm", ErrInvalidValue},
		{"gl=maybe", ErrInvalidValue},
		{"scaling=bicubic", ErrInvalidValue},
		{"bogus", ErrUnknownOption},
		{"nodm", ErrUnknownOption},
		{"bogus=1", ErrUnknownOption},
		{"gl:xrender", ErrExclusiveBackends},
	}
	for _, tt := range tests {
		t.Run(tt.subopts, func(t *testing.T) {
			_, err := Parse(tt.subopts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	in := "dm=1:deint=2:colorspace=0:stats:gl:bind:reflect:tfp:glfinish:scaling=nla"
	c, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, in, c.String())

	again, err := Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]any{
		"dm":       0,
		"deint":    "2",
		"xrender":  true,
		"scaling":  "fast",
		"glfinish": "yes",
	})
	require.Error(t, err, "cast rejects yes as a bool")

	c, err = FromMap(map[string]any{
		"dm":      0,
		"deint":   "2",
		"xrender": true,
		"scaling": "fast",
	})
	require.NoError(t, err)
	assert.Equal(t, MappingLRU, c.Mapping)
	assert.Equal(t, DeintBob, c.Deint)
	assert.True(t, c.XRender)
	assert.Equal(t, ScalingFast, c.Scaling)

	_, err = FromMap(map[string]any{"gl": true, "xrender": true})
	assert.ErrorIs(t, err, ErrExclusiveBackends)
	_, err = FromMap(map[string]any{"window": 1})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestKeysAndHelp(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 11)
	assert.IsNonDecreasing(t, keys)
	for _, k := range keys {
		assert.Contains(t, Help, k)
	}
}

func TestScalingString(t *testing.T) {
	assert.Equal(t, "hq", ScalingHQ.String())
	assert.Equal(t, "Scaling(9)", Scaling(9).String())
	s, err := ParseScaling("default")
	require.NoError(t, err)
	assert.Equal(t, ScalingDefault, s)
}
