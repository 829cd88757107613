// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compat

// ScreenshotError mirrors the legacy screenshot status codes.
type ScreenshotError uint32

const (
	ScreenshotErrorNone                ScreenshotError = 0
	ScreenshotErrorRequestFailed       ScreenshotError = 1
	ScreenshotErrorIncompatibleVersion ScreenshotError = 100
	ScreenshotErrorNotFound            ScreenshotError = 101
	ScreenshotErrorBufferTooSmall      ScreenshotError = 102
	ScreenshotErrorAlreadyInProgress   ScreenshotError = 108
)

// ScreenshotHandle identifies a screenshot request.
type ScreenshotHandle uint32

// ScreenshotType enumerates legacy capture modes.
type ScreenshotType int32

const (
	ScreenshotTypeNone           ScreenshotType = 0
	ScreenshotTypeMono           ScreenshotType = 1
	ScreenshotTypeStereo         ScreenshotType = 2
	ScreenshotTypeCubemap        ScreenshotType = 3
	ScreenshotTypeMonoPanorama   ScreenshotType = 4
	ScreenshotTypeStereoPanorama ScreenshotType = 5
)

// Screenshots is the stateless screenshot interface. Nothing is ever
// captured: hook registration is accepted so applications that require it
// at startup keep running, and every capture request reports an
// incompatible version, the code legacy callers already handle as
// "runtime cannot take screenshots".
type Screenshots struct{}

func (Screenshots) RequestScreenshot(handle *ScreenshotHandle, typ ScreenshotType, previewFile, finalFile string) ScreenshotError {
	return ScreenshotErrorIncompatibleVersion
}

func (Screenshots) HookScreenshot(types []ScreenshotType) ScreenshotError {
	return ScreenshotErrorNone
}

func (Screenshots) TakeStereoScreenshot(handle *ScreenshotHandle, previewFile, finalFile string) ScreenshotError {
	return ScreenshotErrorIncompatibleVersion
}

func (Screenshots) SubmitScreenshot(handle ScreenshotHandle, typ ScreenshotType, previewFile, finalFile string) ScreenshotError {
	return ScreenshotErrorIncompatibleVersion
}

func (Screenshots) UpdateScreenshotProgress(handle ScreenshotHandle, progress float32) ScreenshotError {
	return ScreenshotErrorIncompatibleVersion
}

func (Screenshots) GetScreenshotPropertyType(handle ScreenshotHandle, err *ScreenshotError) ScreenshotType {
	if err != nil {
		*err = ScreenshotErrorIncompatibleVersion
	}
	return ScreenshotTypeNone
}

func (Screenshots) GetScreenshotPropertyFilename(handle ScreenshotHandle, err *ScreenshotError) string {
	if err != nil {
		*err = ScreenshotErrorIncompatibleVersion
	}
	return ""
}
