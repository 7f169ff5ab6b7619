// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"slices"

	"github.com/gogpu/vaout/va"
)

type subpicture struct {
	image va.ImageID
}

// CreateSubpicture implements va.Display.
func (d *Display) CreateSubpicture(image va.ImageID) (va.SubpictureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateSubpicture"); err != nil {
		return va.InvalidSubpicture, err
	}
	obj, ok := d.images[image]
	if !ok {
		return va.InvalidSubpicture, va.StatusErrorInvalidImage
	}
	supported := false
	for _, f := range d.cfg.subpictureFormats {
		supported = supported || f.FourCC == obj.desc.Format.FourCC
	}
	if !supported {
		return va.InvalidSubpicture, va.StatusErrorInvalidImageFormat
	}
	id := va.SubpictureID(d.newID())
	d.subpictures[id] = &subpicture{image: image}
	return id, nil
}

// DestroySubpicture implements va.Display. Remaining associations are
// dropped.
func (d *Display) DestroySubpicture(id va.SubpictureID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroySubpicture"); err != nil {
		return err
	}
	if _, ok := d.subpictures[id]; !ok {
		return va.StatusErrorInvalidSubpicture
	}
	for _, s := range d.surfaces {
		s.assoc = slices.DeleteFunc(s.assoc, func(a association) bool { return a.sub == id })
	}
	delete(d.subpictures, id)
	return nil
}

// AssociateSubpicture implements va.Display. Associating an already
// associated subpicture replaces its rectangles.
func (d *Display) AssociateSubpicture(id va.SubpictureID, surfaces []va.SurfaceID, src, dst va.Rect, _ va.SubpictureFlags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("AssociateSubpicture"); err != nil {
		return err
	}
	if _, ok := d.subpictures[id]; !ok {
		return va.StatusErrorInvalidSubpicture
	}
	for _, sid := range surfaces {
		if _, ok := d.surfaces[sid]; !ok {
			return va.StatusErrorInvalidSurface
		}
	}
	for _, sid := range surfaces {
		s := d.surfaces[sid]
		s.assoc = slices.DeleteFunc(s.assoc, func(a association) bool { return a.sub == id })
		s.assoc = append(s.assoc, association{sub: id, src: src, dst: dst})
	}
	return nil
}

// DeassociateSubpicture implements va.Display.
func (d *Display) DeassociateSubpicture(id va.SubpictureID, surfaces []va.SurfaceID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DeassociateSubpicture"); err != nil {
		return err
	}
	if _, ok := d.subpictures[id]; !ok {
		return va.StatusErrorInvalidSubpicture
	}
	for _, sid := range surfaces {
		if s, ok := d.surfaces[sid]; ok {
			s.assoc = slices.DeleteFunc(s.assoc, func(a association) bool { return a.sub == id })
		}
	}
	return nil
}

// Associations returns the subpictures associated with a surface.
func (d *Display) Associations(id va.SurfaceID) []va.SubpictureID {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.surfaces[id]
	if !ok {
		return nil
	}
	out := make([]va.SubpictureID, len(s.assoc))
	for i, a := range s.assoc {
		out[i] = a.sub
	}
	return out
}
