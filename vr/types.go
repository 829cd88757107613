// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vr defines the vocabulary of the legacy VR client ABI: overlay
// handles and status codes, texture descriptors with their graphics-API tag,
// normalized texture bounds, tracking origins, and the row-major 3x4 pose
// matrix the legacy interface uses for absolute transforms.
//
// These types mirror the shapes legacy applications pass across the
// interface boundary; they carry no behavior beyond conversions.
package vr

// OverlayHandle identifies a live overlay. Handles are process-unique and
// never reused while the overlay lives; the zero handle is never issued.
type OverlayHandle uint64

// OverlayHandleInvalid is the reserved "no overlay" handle value.
const OverlayHandleInvalid OverlayHandle = 0

// OverlayError is the status code set of the legacy overlay interface.
// The numeric values are part of the ABI and must not change.
type OverlayError uint32

const (
	// OverlayErrorNone reports success.
	OverlayErrorNone OverlayError = 0

	// OverlayErrorUnknownOverlay reports a handle or key that does not
	// name a live overlay.
	OverlayErrorUnknownOverlay OverlayError = 10

	// OverlayErrorKeyInUse reports a create with a key that already names
	// a live overlay.
	OverlayErrorKeyInUse OverlayError = 17

	// OverlayErrorInvalidParameter reports a null required pointer.
	OverlayErrorInvalidParameter OverlayError = 20

	// OverlayErrorRequestFailed reports an operation the bridge cannot
	// service (unsupported legacy surface, backend fault).
	OverlayErrorRequestFailed OverlayError = 23

	// OverlayErrorInvalidTexture reports a texture submission the bound
	// graphics backend rejected, including API-tag conflicts.
	OverlayErrorInvalidTexture OverlayError = 24
)

// String returns the legacy enum name for the status code.
func (e OverlayError) String() string {
	switch e {
	case OverlayErrorNone:
		return "None"
	case OverlayErrorUnknownOverlay:
		return "UnknownOverlay"
	case OverlayErrorKeyInUse:
		return "KeyInUse"
	case OverlayErrorInvalidParameter:
		return "InvalidParameter"
	case OverlayErrorRequestFailed:
		return "RequestFailed"
	case OverlayErrorInvalidTexture:
		return "InvalidTexture"
	default:
		return "UnknownError"
	}
}

// TextureType tags which graphics API a submitted texture belongs to.
// The tag selects the backend bound to an overlay on first submission.
type TextureType int32

const (
	// TextureTypeSoftware marks a CPU-side texture. Handle holds an
	// image.Image.
	TextureTypeSoftware TextureType = iota

	// TextureTypeWGPU marks a wgpu texture. Handle holds a
	// *native.Texture from the vrbridge backend/native package.
	TextureTypeWGPU
)

// String returns the backend name for the tag.
func (t TextureType) String() string {
	switch t {
	case TextureTypeSoftware:
		return "software"
	case TextureTypeWGPU:
		return "wgpu"
	default:
		return "invalid"
	}
}

// ColorSpace declares how a submitted texture's color values are encoded.
type ColorSpace int32

const (
	// ColorSpaceAuto lets the backend pick based on the texture format.
	ColorSpaceAuto ColorSpace = iota

	// ColorSpaceGamma marks gamma-encoded (sRGB) texels.
	ColorSpaceGamma

	// ColorSpaceLinear marks linear texels.
	ColorSpaceLinear
)

// Texture is a texture submission. Handle is the backend-specific texture
// object; Type tags which backend may interpret it.
type Texture struct {
	Handle     any
	Type       TextureType
	ColorSpace ColorSpace
}

// TextureBounds is a normalized UV sub-rectangle of a texture.
type TextureBounds struct {
	UMin, VMin float32
	UMax, VMax float32
}

// FullBounds covers the whole texture; it is the default for new overlays.
var FullBounds = TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 1}

// TrackingOrigin selects the reference frame a pose is expressed in.
type TrackingOrigin int32

const (
	// TrackingOriginSeated is the seated-zero reference frame.
	TrackingOriginSeated TrackingOrigin = iota

	// TrackingOriginStanding is the standing (floor-level) frame.
	TrackingOriginStanding

	// TrackingOriginRaw is the raw, uncalibrated tracker frame.
	TrackingOriginRaw
)

// String returns the legacy enum name for the origin.
func (o TrackingOrigin) String() string {
	switch o {
	case TrackingOriginSeated:
		return "Seated"
	case TrackingOriginStanding:
		return "Standing"
	case TrackingOriginRaw:
		return "Raw"
	default:
		return "invalid"
	}
}

// HmdMatrix34 is the legacy row-major 3x4 affine transform: a 3x3 rotation
// with the translation in the last column.
type HmdMatrix34 [3][4]float32
