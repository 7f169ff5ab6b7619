// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

import "fmt"

// Profile is a codec profile understood by the decoder.
type Profile int32

const (
	ProfileMPEG2Simple Profile = iota
	ProfileMPEG2Main
	ProfileMPEG4Simple
	ProfileMPEG4AdvancedSimple
	ProfileMPEG4Main
	ProfileH264Baseline
	ProfileH264Main
	ProfileH264High
	ProfileVC1Simple
	ProfileVC1Main
	ProfileVC1Advanced
)

// ProfileNone is returned when no profile could be selected.
const ProfileNone Profile = -1

var profileNames = [...]string{
	ProfileMPEG2Simple:         "MPEG2Simple",
	ProfileMPEG2Main:           "MPEG2Main",
	ProfileMPEG4Simple:         "MPEG4Simple",
	ProfileMPEG4AdvancedSimple: "MPEG4AdvancedSimple",
	ProfileMPEG4Main:           "MPEG4Main",
	ProfileH264Baseline:        "H264Baseline",
	ProfileH264Main:            "H264Main",
	ProfileH264High:            "H264High",
	ProfileVC1Simple:           "VC1Simple",
	ProfileVC1Main:             "VC1Main",
	ProfileVC1Advanced:         "VC1Advanced",
}

// String returns the profile name, e.g. "VAProfileH264High".
func (p Profile) String() string {
	if p >= 0 && int(p) < len(profileNames) {
		return "VAProfile" + profileNames[p]
	}
	return fmt.Sprintf("<unknown profile %d>", int32(p))
}

// Entrypoint is a stage of the hardware decode pipeline.
type Entrypoint int32

const (
	EntrypointVLD Entrypoint = iota + 1
	EntrypointIZZ
	EntrypointIDCT
	EntrypointMoComp
	EntrypointDeblocking
)

var entrypointNames = [...]string{
	EntrypointVLD:        "VLD",
	EntrypointIZZ:        "IZZ",
	EntrypointIDCT:       "IDCT",
	EntrypointMoComp:     "MoComp",
	EntrypointDeblocking: "Deblocking",
}

// String returns the entry point name, e.g. "VAEntrypointVLD".
func (e Entrypoint) String() string {
	if e > 0 && int(e) < len(entrypointNames) {
		return "VAEntrypoint" + entrypointNames[e]
	}
	return fmt.Sprintf("<unknown entrypoint %d>", int32(e))
}
