// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package detect

import (
	"bytes"
	"io"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/va"
)

// initSegment encodes an init segment with one track. A non-empty entry
// adds a visual sample entry of that type.
func initSegment(t *testing.T, media, entry string, w, h uint16) *bytes.Reader {
	t.Helper()
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(90000, media, "und")
	trak := init.Moov.Trak
	if entry != "" {
		trak.Mdia.Minf.Stbl.Stsd.AddChild(mp4.CreateVisualSampleEntryBox(entry, w, h, nil))
		trak.Tkhd.Width = mp4.Fixed32(uint32(w) << 16)
		trak.Tkhd.Height = mp4.Fixed32(uint32(h) << 16)
	}
	var buf bytes.Buffer
	require.NoError(t, init.Encode(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestFromReader(t *testing.T) {
	tests := []struct {
		entry   string
		format  imgfmt.Format
		profile va.Profile
	}{
		{"avc1", imgfmt.VAAPIH264, va.ProfileH264High},
		{"avc3", imgfmt.VAAPIH264, va.ProfileH264High},
		{"mp4v", imgfmt.VAAPIMPEG4, va.ProfileMPEG4AdvancedSimple},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			r := initSegment(t, "video", tt.entry, 1280, 720)
			s, err := FromReader(r)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, s.SampleEntry)
			assert.Equal(t, tt.format, s.Format)
			assert.Equal(t, tt.profile, s.Profile)
			assert.Equal(t, 1280, s.Width)
			assert.Equal(t, 720, s.Height)

			pos, err := r.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Zero(t, pos, "reader is rewound")
		})
	}
}

func TestFromReaderUnsupported(t *testing.T) {
	s, err := FromReader(initSegment(t, "video", "hvc1", 640, 360))
	require.ErrorIs(t, err, ErrUnsupportedCodec)
	assert.Equal(t, "hvc1", s.SampleEntry)
}

func TestFromReaderNoVideo(t *testing.T) {
	_, err := FromReader(initSegment(t, "audio", "", 0, 0))
	assert.ErrorIs(t, err, ErrNoVideo)
}

func TestFromReaderGarbage(t *testing.T) {
	_, err := FromReader(bytes.NewReader([]byte("not an mp4 file")))
	assert.Error(t, err)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(t.TempDir() + "/missing.mp4")
	assert.Error(t, err)
}

func TestAVCProfile(t *testing.T) {
	assert.Equal(t, va.ProfileH264Baseline, avcProfile(66))
	assert.Equal(t, va.ProfileH264Main, avcProfile(77))
	assert.Equal(t, va.ProfileH264High, avcProfile(100))
	assert.Equal(t, va.ProfileH264High, avcProfile(110))
	assert.Equal(t, va.ProfileH264Main, avcProfile(88))
}
