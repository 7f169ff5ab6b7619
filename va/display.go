// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Display is a connection to a video acceleration driver.
//
// Every method maps onto one driver entry point and returns a Status
// (wrapped or bare) on failure. Calls are synchronous: they may block on
// GPU synchronization and run to completion.
//
// Implementations:
//   - software.Display: in-memory reference driver
//   - libva.Display: cgo binding (build tag vaapi)
type Display interface {
	// Initialize opens the driver and returns the API version.
	Initialize() (major, minor int, err error)

	// Terminate closes the driver. All objects become invalid.
	Terminate() error

	// VendorString identifies the driver implementation.
	VendorString() string

	// QueryImageFormats lists the image formats PutImage/CreateImage accept.
	QueryImageFormats() ([]ImageFormat, error)

	// QuerySubpictureFormats lists the overlay formats and their
	// capability flags. Both slices have the same length.
	QuerySubpictureFormats() ([]ImageFormat, []SubpictureFlags, error)

	// QueryConfigProfiles lists the decodable codec profiles.
	QueryConfigProfiles() ([]Profile, error)

	// QueryConfigEntrypoints lists the pipeline stages available for p.
	QueryConfigEntrypoints(p Profile) ([]Entrypoint, error)

	// GetConfigAttributes fills in the Value of each attribute for the
	// profile/entry point pair.
	GetConfigAttributes(p Profile, e Entrypoint, attribs []ConfigAttrib) error

	CreateConfig(p Profile, e Entrypoint, attribs []ConfigAttrib) (ConfigID, error)
	DestroyConfig(id ConfigID) error

	// CreateSurfaces allocates count decode surfaces.
	CreateSurfaces(width, height int, format RTFormat, count int) ([]SurfaceID, error)
	DestroySurfaces(ids []SurfaceID) error

	// CreateContext binds a decode context to every render target.
	CreateContext(config ConfigID, width, height int, flags ContextFlags, targets []SurfaceID) (ContextID, error)
	DestroyContext(id ContextID) error

	// SyncSurface blocks until all pending operations on the surface
	// have completed.
	SyncSurface(id SurfaceID) error

	CreateImage(format ImageFormat, width, height int) (Image, error)
	DestroyImage(id ImageID) error

	// DeriveImage returns an image aliasing the surface's pixel memory.
	DeriveImage(id SurfaceID) (Image, error)

	// SetImagePalette uploads NumPaletteEntries*EntryBytes bytes.
	SetImagePalette(id ImageID, palette []byte) error

	// MapBuffer returns the CPU view of an image buffer. The slice is
	// valid until UnmapBuffer.
	MapBuffer(id BufferID) ([]byte, error)
	UnmapBuffer(id BufferID) error

	// PutImage copies src of the image into dst of the surface.
	PutImage(surface SurfaceID, image ImageID, src, dst Rect) error

	CreateSubpicture(image ImageID) (SubpictureID, error)
	DestroySubpicture(id SubpictureID) error

	// AssociateSubpicture attaches the subpicture to every listed surface.
	AssociateSubpicture(id SubpictureID, surfaces []SurfaceID, src, dst Rect, flags SubpictureFlags) error
	DeassociateSubpicture(id SubpictureID, surfaces []SurfaceID) error

	// QueryDisplayAttributes lists the presentation attributes with their
	// ranges and current values.
	QueryDisplayAttributes() ([]DisplayAttribute, error)

	// GetDisplayAttributes fills in Value (and Flags) for each requested Type.
	GetDisplayAttributes(attrs []DisplayAttribute) error
	SetDisplayAttributes(attrs []DisplayAttribute) error

	// PutSurface scales src of the surface into dst of the drawable.
	PutSurface(id SurfaceID, d Drawable, src, dst Rect, flags PutFlags) error
}

// GLSurface is a driver object tying a GL texture to decode surfaces.
type GLSurface uintptr

// GLTexture is the texture a GLSurface renders into. The driver writes
// whole frames through UpdateData in the texture's Format.
type GLTexture interface {
	gpucontext.Texture
	gpucontext.TextureUpdater

	// Format is the pixel layout expected by UpdateData.
	Format() gputypes.TextureFormat
}

// GLXDisplay is implemented by displays that can render surfaces into GL
// textures.
type GLXDisplay interface {
	Display

	CreateSurfaceGLX(tex GLTexture) (GLSurface, error)
	DestroySurfaceGLX(gl GLSurface) error

	// AssociateSurfaceGLX binds the surface to the texture. The pixels
	// become visible between BeginRenderSurfaceGLX and EndRenderSurfaceGLX.
	AssociateSurfaceGLX(gl GLSurface, id SurfaceID, flags PutFlags) error
	DeassociateSurfaceGLX(gl GLSurface) error
	BeginRenderSurfaceGLX(gl GLSurface) error
	EndRenderSurfaceGLX(gl GLSurface) error

	// CopySurfaceGLX copies the surface into the texture. Drivers without
	// copy support return StatusErrorUnimplemented.
	CopySurfaceGLX(gl GLSurface, id SurfaceID, flags PutFlags) error
}

// PutFlagsQuerier is implemented by displays that report which PutFlags
// they honor. Displays that do not implement it are assumed to support
// field selection and the BT.601/BT.709 color standards.
type PutFlagsQuerier interface {
	SupportedPutFlags() PutFlags
}

// DefaultPutFlags are the flags assumed for displays that do not
// implement PutFlagsQuerier.
const DefaultPutFlags = FieldMask | SrcBT601 | SrcBT709

// SupportedPutFlags returns the flags d honors.
func SupportedPutFlags(d Display) PutFlags {
	if q, ok := d.(PutFlagsQuerier); ok {
		return q.SupportedPutFlags()
	}
	return DefaultPutFlags
}
