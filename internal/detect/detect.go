// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package detect picks the accelerated format for the video track of an
// MP4 file.
package detect

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/va"
)

var (
	// ErrNoVideo is returned for files without a video track.
	ErrNoVideo = errors.New("detect: no video track found")

	// ErrUnsupportedCodec is returned for video tracks no accelerated
	// format decodes.
	ErrUnsupportedCodec = errors.New("detect: unsupported codec")
)

// Stream describes the first video track of a file.
type Stream struct {
	// SampleEntry is the four character sample entry type, e.g. "avc1".
	SampleEntry string
	Format      imgfmt.Format
	Profile     va.Profile
	Width       int
	Height      int
}

// sampleEntries maps sample entry types to accelerated formats.
var sampleEntries = map[string]imgfmt.Format{
	"avc1": imgfmt.VAAPIH264,
	"avc3": imgfmt.VAAPIH264,
	"mp4v": imgfmt.VAAPIMPEG4,
	"mp2v": imgfmt.VAAPIMPEG2,
	"s263": imgfmt.VAAPIH263,
	"h263": imgfmt.VAAPIH263,
	"vc-1": imgfmt.VAAPIVC1,
}

// H.264 profile_idc values.
const (
	avcBaseline = 66
	avcMain     = 77
	avcHigh     = 100
)

// FromFile detects the video stream of the MP4 file at path.
func FromFile(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stream{}, fmt.Errorf("detect: open file: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader detects the video stream of an MP4 file. The reader is
// left positioned at the start.
func FromReader(r io.ReadSeeker) (Stream, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return Stream{}, fmt.Errorf("detect: decode mp4: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Stream{}, fmt.Errorf("detect: seek: %w", err)
	}
	return fromFile(file)
}

func fromFile(file *mp4.File) (Stream, error) {
	var traks []*mp4.TrakBox
	if file.IsFragmented() && file.Init != nil && file.Init.Moov != nil {
		traks = file.Init.Moov.Traks
	} else if file.Moov != nil {
		traks = file.Moov.Traks
	}

	for _, trak := range traks {
		s, ok := fromTrack(trak)
		if !ok {
			continue
		}
		if s.Format == 0 {
			return s, fmt.Errorf("%w: %q", ErrUnsupportedCodec, s.SampleEntry)
		}
		return s, nil
	}
	return Stream{}, ErrNoVideo
}

// fromTrack inspects a video track. It reports false for other tracks.
func fromTrack(trak *mp4.TrakBox) (Stream, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return Stream{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return Stream{}, false
	}

	s := Stream{Profile: va.ProfileNone}
	if trak.Tkhd != nil {
		s.Width = int(uint32(trak.Tkhd.Width) >> 16)
		s.Height = int(uint32(trak.Tkhd.Height) >> 16)
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		typ := child.Type()
		f, known := sampleEntries[typ]
		if s.SampleEntry == "" || known {
			s.SampleEntry = typ
		}
		if !known {
			continue
		}
		s.Format = f
		s.Profile = defaultProfile(f)
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			if vse.Width != 0 && vse.Height != 0 {
				s.Width, s.Height = int(vse.Width), int(vse.Height)
			}
			if vse.AvcC != nil {
				s.Profile = avcProfile(vse.AvcC.AVCProfileIndication)
			}
		}
		break
	}
	return s, true
}

func avcProfile(idc byte) va.Profile {
	switch {
	case idc == avcBaseline:
		return va.ProfileH264Baseline
	case idc == avcMain:
		return va.ProfileH264Main
	case idc >= avcHigh:
		return va.ProfileH264High
	default:
		return va.ProfileH264Main
	}
}

func defaultProfile(f imgfmt.Format) va.Profile {
	switch f.Codec() {
	case imgfmt.CodecMPEG2:
		return va.ProfileMPEG2Main
	case imgfmt.CodecMPEG4:
		return va.ProfileMPEG4AdvancedSimple
	case imgfmt.CodecH264:
		return va.ProfileH264High
	case imgfmt.CodecVC1:
		return va.ProfileVC1Advanced
	default:
		return va.ProfileNone
	}
}
