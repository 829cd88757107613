// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend defines the graphics backend contract of the overlay
// engine. A backend owns the API-specific texture knowledge: it derives
// swapchain requirements from a submitted texture, keeps the swapchain's
// backing images, and copies submitted content into them.
//
// Concrete backends live in subpackages (software, native) and register
// themselves by texture type. The engine never depends on a concrete
// graphics API; it resolves a backend from the tag a submitted texture
// carries.
package backend

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// Common backend errors.
var (
	// ErrNotRegistered is returned when no backend serves a texture type.
	ErrNotRegistered = errors.New("backend: no backend registered for texture type")

	// ErrUnsupportedTexture is returned when a texture's handle is not
	// what its type tag promises.
	ErrUnsupportedTexture = errors.New("backend: unsupported texture handle")

	// ErrImageMismatch is returned when stored swapchain images belong
	// to a different graphics API than this backend.
	ErrImageMismatch = errors.New("backend: swapchain image from a different graphics API")

	// ErrNoImages is returned when a copy is requested before swapchain
	// images were stored, or with an out-of-range image index.
	ErrNoImages = errors.New("backend: no swapchain image at index")
)

// Backend is one graphics API's texture path. A Backend instance is bound
// to a single overlay at first texture submission and stores that overlay's
// swapchain images between submissions.
//
// Backends are driven with the session swapchain-table lock held; they do
// not need internal locking for the Store/Copy cycle.
type Backend interface {
	// API returns the texture type tag this backend serves.
	API() vr.TextureType

	// SwapchainInfo derives the swapchain requirements for a submitted
	// texture cropped to the given UV bounds, honoring the texture's
	// declared color space.
	SwapchainInfo(tex *vr.Texture, bounds vr.TextureBounds) (xr.SwapchainCreateInfo, error)

	// StoreImages keeps the swapchain's backing images for later copies.
	// format is the format the swapchain was actually created with,
	// after runtime negotiation.
	StoreImages(images []xr.Image, format gputypes.TextureFormat) error

	// CopyToSwapchain copies the texture's UV sub-rectangle into the
	// stored image at index and returns the pixel extent written.
	CopyToSwapchain(tex *vr.Texture, bounds vr.TextureBounds, index uint32) (xr.Extent2Di, error)
}

// CropExtent converts normalized UV bounds over a w x h texture into the
// pixel extent of the covered sub-rectangle. Inverted bounds (min > max,
// used by callers to flip a texture) cover the same texels as their
// upright counterpart.
func CropExtent(w, h uint32, bounds vr.TextureBounds) (uint32, uint32) {
	du := bounds.UMax - bounds.UMin
	if du < 0 {
		du = -du
	}
	dv := bounds.VMax - bounds.VMin
	if dv < 0 {
		dv = -dv
	}
	cw := uint32(float32(w)*du + 0.5)
	ch := uint32(float32(h)*dv + 0.5)
	if cw == 0 {
		cw = 1
	}
	if ch == 0 {
		ch = 1
	}
	return cw, ch
}
