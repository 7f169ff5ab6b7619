// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/va/software"
)

const defaultDevice = "/dev/dri/renderD128"

// openFunc opens a driver. device is only meaningful to hardware drivers.
type openFunc func(device string) (va.Display, error)

var drivers = map[string]openFunc{
	"software": func(string) (va.Display, error) { return software.New(), nil },
}

func driverNames() []string {
	return slices.Sorted(maps.Keys(drivers))
}

// openDriver opens the driver selected by --driver.
func (a *app) openDriver() (va.Display, string, error) {
	name := a.v.GetString("driver")
	open, ok := drivers[name]
	if !ok {
		return nil, name, fmt.Errorf("unknown driver %q (available: %v)", name, driverNames())
	}
	d, err := open(a.v.GetString("device"))
	if err != nil {
		return nil, name, fmt.Errorf("open %s driver: %w", name, err)
	}
	return d, name, nil
}
