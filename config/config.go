// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config parses the video output suboptions.
//
// Suboptions are colon separated. A key is either key=value, a bare key
// (true) or a key prefixed with "no" (false):
//
//	dm=0:deint=2:gl:reflect:scaling=hq
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Errors returned by Parse and Validate.
var (
	ErrUnknownOption     = errors.New("config: unknown option")
	ErrInvalidValue      = errors.New("config: invalid value")
	ErrExclusiveBackends = errors.New("config: gl and xrender are mutually exclusive")
)

// Mapping selects how decoder pictures map to surfaces.
type Mapping int

const (
	// MappingLRU recycles the least recently used surface.
	MappingLRU Mapping = iota
	// MappingDirect ties each picture index to one surface.
	MappingDirect
	// MappingAuto uses direct mapping when the driver displays surfaces
	// in place.
	MappingAuto
)

// Deint is the deinterlacing mode.
type Deint int

const (
	DeintOff Deint = iota
	// DeintFirstField shows only the first field.
	DeintFirstField
	// DeintBob shows both fields one after the other.
	DeintBob
)

// Colorspace is the source color standard.
type Colorspace int

const (
	// ColorspaceAuto picks BT.709 for HD sizes and BT.601 otherwise.
	ColorspaceAuto Colorspace = iota
	ColorspaceBT601
	ColorspaceBT709
	ColorspaceSMPTE240M
)

// Scaling is the scaling filter hint.
type Scaling int

const (
	ScalingDefault Scaling = iota
	ScalingFast
	ScalingHQ
	ScalingNLA
)

var scalingNames = []string{"default", "fast", "hq", "nla"}

func (s Scaling) String() string {
	if s >= 0 && int(s) < len(scalingNames) {
		return scalingNames[s]
	}
	return fmt.Sprintf("Scaling(%d)", int(s))
}

// ParseScaling parses a scaling filter name.
func ParseScaling(name string) (Scaling, error) {
	i := slices.Index(scalingNames, strings.ToLower(name))
	if i < 0 {
		return 0, fmt.Errorf("%w: scaling=%q", ErrInvalidValue, name)
	}
	return Scaling(i), nil
}

// Config holds the video output options.
type Config struct {
	Mapping    Mapping
	Stats      bool
	Deint      Deint
	Colorspace Colorspace

	// GL presents through an OpenGL context.
	GL bool
	// Bind renders surfaces into the GL texture by binding instead of
	// copying.
	Bind bool
	// Reflect draws the frame tilted above a reflection.
	Reflect bool
	// TFP routes GL presentation through a compositing pixmap bound as
	// texture.
	TFP bool
	// GLFinish waits for the GL pipeline before every swap.
	GLFinish bool
	// XRender presents through a compositing pixmap.
	XRender bool

	Scaling Scaling
}

// Default returns the default options.
func Default() Config {
	return Config{
		Mapping:    MappingAuto,
		Colorspace: ColorspaceBT601,
	}
}

// DeintType returns the mode used when deinterlacing is switched on at
// run time: the configured mode, or bob when none was configured.
func (c Config) DeintType() Deint {
	if c.Deint != DeintOff {
		return c.Deint
	}
	return DeintBob
}

// Validate checks ranges and option combinations.
func (c Config) Validate() error {
	switch {
	case c.Mapping < MappingLRU || c.Mapping > MappingAuto:
		return fmt.Errorf("%w: dm=%d", ErrInvalidValue, c.Mapping)
	case c.Deint < DeintOff || c.Deint > DeintBob:
		return fmt.Errorf("%w: deint=%d", ErrInvalidValue, c.Deint)
	case c.Colorspace < ColorspaceAuto || c.Colorspace > ColorspaceSMPTE240M:
		return fmt.Errorf("%w: colorspace=%d", ErrInvalidValue, c.Colorspace)
	case c.Scaling < ScalingDefault || c.Scaling > ScalingNLA:
		return fmt.Errorf("%w: scaling=%d", ErrInvalidValue, c.Scaling)
	case c.GL && c.XRender:
		return ErrExclusiveBackends
	}
	return nil
}

// option binds a key to a Config field.
type option struct {
	boolean bool
	set     func(c *Config, v any) error
}

func intOption(field func(*Config) *int) option {
	return option{set: func(c *Config, v any) error {
		n, err := cast.ToIntE(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}}
}

func boolOption(field func(*Config) *bool) option {
	return option{boolean: true, set: func(c *Config, v any) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}}
}

var options = map[string]option{
	"dm":         intOption(func(c *Config) *int { return (*int)(&c.Mapping) }),
	"stats":      boolOption(func(c *Config) *bool { return &c.Stats }),
	"deint":      intOption(func(c *Config) *int { return (*int)(&c.Deint) }),
	"colorspace": intOption(func(c *Config) *int { return (*int)(&c.Colorspace) }),
	"gl":         boolOption(func(c *Config) *bool { return &c.GL }),
	"bind":       boolOption(func(c *Config) *bool { return &c.Bind }),
	"reflect":    boolOption(func(c *Config) *bool { return &c.Reflect }),
	"tfp":        boolOption(func(c *Config) *bool { return &c.TFP }),
	"glfinish":   boolOption(func(c *Config) *bool { return &c.GLFinish }),
	"xrender":    boolOption(func(c *Config) *bool { return &c.XRender }),
	"scaling": {set: func(c *Config, v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		c.Scaling, err = ParseScaling(s)
		return err
	}},
}

// Keys returns the option names in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(options))
}

// Set assigns one option. Values are coerced with spf13/cast, so
// strings, numbers and booleans are all accepted where they make sense.
func (c *Config) Set(key string, value any) error {
	opt, ok := options[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	if err := opt.set(c, value); err != nil {
		if errors.Is(err, ErrInvalidValue) {
			return err
		}
		return fmt.Errorf("%w: %s=%v: %w", ErrInvalidValue, key, value, err)
	}
	return nil
}

// Parse applies a suboption string to the defaults and validates the
// result.
func Parse(subopts string) (Config, error) {
	c := Default()
	for tok := range strings.SplitSeq(subopts, ":") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if err := c.apply(tok); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) apply(tok string) error {
	if key, value, ok := strings.Cut(tok, "="); ok {
		return c.Set(key, value)
	}
	if opt, ok := options[tok]; ok {
		if !opt.boolean {
			return fmt.Errorf("%w: %s needs a value", ErrInvalidValue, tok)
		}
		return c.Set(tok, true)
	}
	if key, ok := strings.CutPrefix(tok, "no"); ok {
		if opt, ok := options[key]; ok && opt.boolean {
			return c.Set(key, false)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownOption, tok)
}

// FromMap builds a Config from key/value pairs, such as the settings
// of a configuration file. Unknown keys are errors.
func FromMap(m map[string]any) (Config, error) {
	c := Default()
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := c.Set(key, m[key]); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// String renders the options that differ from the defaults as a
// suboption string that Parse accepts.
func (c Config) String() string {
	d := Default()
	var parts []string
	if c.Mapping != d.Mapping {
		parts = append(parts, fmt.Sprintf("dm=%d", c.Mapping))
	}
	if c.Deint != d.Deint {
		parts = append(parts, fmt.Sprintf("deint=%d", c.Deint))
	}
	if c.Colorspace != d.Colorspace {
		parts = append(parts, fmt.Sprintf("colorspace=%d", c.Colorspace))
	}
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"stats", c.Stats}, {"gl", c.GL}, {"bind", c.Bind}, {"reflect", c.Reflect},
		{"tfp", c.TFP}, {"glfinish", c.GLFinish}, {"xrender", c.XRender},
	} {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if c.Scaling != d.Scaling {
		parts = append(parts, "scaling="+c.Scaling.String())
	}
	return strings.Join(parts, ":")
}

// Help describes every option.
const Help = `Options:
  dm=0|1|2          surface mapping: 0 least recently used, 1 one surface
                    per picture index, 2 auto-detect (default)
  deint=0|1|2       0 off (default), 1 first field only, 2 bob
  colorspace=0..3   0 guess from size, 1 BT.601 (default), 2 BT.709,
                    3 SMPTE-240M
  scaling=NAME      default, fast, hq or nla
  stats             show CPU usage
  gl                present through OpenGL
  bind              bind surfaces to the texture instead of copying
  reflect           OpenGL reflection effect
  tfp               present through a pixmap bound as texture
  glfinish          wait for OpenGL before every swap
  xrender           present through a compositing pixmap
`
