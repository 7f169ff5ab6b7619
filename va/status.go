// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

import (
	"errors"
	"fmt"
	"log/slog"
)

// Status is a driver status code. A non-success Status is an error.
type Status uint32

const (
	StatusSuccess                     Status = 0x00000000
	StatusErrorOperationFailed        Status = 0x00000001
	StatusErrorAllocationFailed       Status = 0x00000002
	StatusErrorInvalidDisplay         Status = 0x00000003
	StatusErrorInvalidConfig          Status = 0x00000004
	StatusErrorInvalidContext         Status = 0x00000005
	StatusErrorInvalidSurface         Status = 0x00000006
	StatusErrorInvalidBuffer          Status = 0x00000007
	StatusErrorInvalidImage           Status = 0x00000008
	StatusErrorInvalidSubpicture      Status = 0x00000009
	StatusErrorAttrNotSupported       Status = 0x0000000a
	StatusErrorMaxNumExceeded         Status = 0x0000000b
	StatusErrorUnsupportedProfile     Status = 0x0000000c
	StatusErrorUnsupportedEntrypoint  Status = 0x0000000d
	StatusErrorUnsupportedRTFormat    Status = 0x0000000e
	StatusErrorUnsupportedBufferType  Status = 0x0000000f
	StatusErrorSurfaceBusy            Status = 0x00000010
	StatusErrorFlagNotSupported       Status = 0x00000011
	StatusErrorInvalidParameter       Status = 0x00000012
	StatusErrorResolutionNotSupported Status = 0x00000013
	StatusErrorUnimplemented          Status = 0x00000014
	StatusErrorSurfaceInDisplaying    Status = 0x00000015
	StatusErrorInvalidImageFormat     Status = 0x00000016
	StatusErrorUnknown                Status = 0xffffffff
)

var statusMessages = map[Status]string{
	StatusSuccess:                     "success (no error)",
	StatusErrorOperationFailed:        "operation failed",
	StatusErrorAllocationFailed:       "resource allocation failed",
	StatusErrorInvalidDisplay:         "invalid VADisplay",
	StatusErrorInvalidConfig:          "invalid VAConfigID",
	StatusErrorInvalidContext:         "invalid VAContextID",
	StatusErrorInvalidSurface:         "invalid VASurfaceID",
	StatusErrorInvalidBuffer:          "invalid VABufferID",
	StatusErrorInvalidImage:           "invalid VAImageID",
	StatusErrorInvalidSubpicture:      "invalid VASubpictureID",
	StatusErrorAttrNotSupported:       "attribute not supported",
	StatusErrorMaxNumExceeded:         "list argument exceeds maximum number",
	StatusErrorUnsupportedProfile:     "the requested VAProfile is not supported",
	StatusErrorUnsupportedEntrypoint:  "the requested VAEntryPoint is not supported",
	StatusErrorUnsupportedRTFormat:    "the requested RT Format is not supported",
	StatusErrorUnsupportedBufferType:  "the requested VABufferType is not supported",
	StatusErrorSurfaceBusy:            "surface is in use",
	StatusErrorFlagNotSupported:       "flag not supported",
	StatusErrorInvalidParameter:       "invalid parameter",
	StatusErrorResolutionNotSupported: "resolution not supported",
	StatusErrorUnimplemented:          "the requested function is not implemented",
	StatusErrorSurfaceInDisplaying:    "surface is in displaying (may by overlay)",
	StatusErrorInvalidImageFormat:     "invalid VAImageFormat",
	StatusErrorUnknown:                "unknown libva error",
}

// Error returns the decoded status string.
func (s Status) Error() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("unknown libva error 0x%x", uint32(s))
}

// Err converts a status code to an error, nil for StatusSuccess.
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return s
}

// StatusOf extracts the Status carried by err.
// It returns StatusSuccess for a nil error and StatusErrorUnknown for
// errors that do not wrap a Status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusErrorUnknown
}

// IsUnimplemented reports whether err is StatusErrorUnimplemented.
func IsUnimplemented(err error) bool {
	return StatusOf(err) == StatusErrorUnimplemented
}

// Check logs a failed driver call with its name and decoded status and
// reports whether the call succeeded.
func Check(log *slog.Logger, err error, call string) bool {
	if err == nil {
		return true
	}
	if log != nil {
		log.Error("va call failed", "call", call, "status", err.Error())
	}
	return false
}

// CallError records which driver call failed.
type CallError struct {
	Call string
	Err  error
}

func (e *CallError) Error() string { return e.Call + ": " + e.Err.Error() }

func (e *CallError) Unwrap() error { return e.Err }

// Wrap annotates err with the failing call. It returns nil for a nil error.
func Wrap(err error, call string) error {
	if err == nil {
		return nil
	}
	return &CallError{Call: call, Err: err}
}
