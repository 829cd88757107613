// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"math"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vrbridge/vr"
)

// InfiniteDuration makes Swapchain.Wait block until an image is available.
const InfiniteDuration time.Duration = math.MaxInt64

// Space is an opaque reference space handle issued by the host runtime.
type Space uint64

// Image is a backend-specific swapchain image. The graphics backend that
// created the owning swapchain's session defines the concrete type
// (*image.RGBA for the software backend, hal.Texture for wgpu) and checks
// the tag before use.
type Image any

// Capabilities reports which optional layer features the host runtime
// advertises. Absent capabilities gate the corresponding overlay properties
// into documented no-ops.
type Capabilities struct {
	// CylinderLayers reports support for curved (cylinder) layers.
	CylinderLayers bool

	// ColorScaleBias reports support for per-layer color scale/bias,
	// which overlay alpha is implemented with.
	ColorScaleBias bool

	// EquirectLayers reports support for full-sphere equirect layers,
	// which the single-texture skybox is implemented with.
	EquirectLayers bool
}

// SwapchainCreateInfo describes the swapchain a submitted texture requires.
// The struct is comparable; the resource manager reuses an existing
// swapchain only while its creation info still matches.
type SwapchainCreateInfo struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	SampleCount uint32
	ArraySize   uint32
	MipCount    uint32
}

// Swapchain is a ring of images negotiated with the host runtime.
// The acquire/wait/copy/release cycle is driven by texture submission;
// layer descriptors reference the swapchain until it is destroyed.
type Swapchain interface {
	// EnumerateImages returns the backing images in index order.
	EnumerateImages() ([]Image, error)

	// Acquire reserves the next writable image and returns its index.
	Acquire() (uint32, error)

	// Wait blocks until the acquired image is ready for writing.
	// Pass InfiniteDuration to wait without bound.
	Wait(timeout time.Duration) error

	// Release hands the written image back to the runtime.
	Release() error

	// Destroy frees the swapchain. The swapchain must not be used after.
	Destroy() error
}

// Session is the session/space collaborator provided by the host runtime
// integration. All methods may be called from multiple goroutines.
type Session interface {
	// CurrentOrigin returns the application's active tracking origin.
	CurrentOrigin() vr.TrackingOrigin

	// SpaceForOrigin returns the reference space for the given origin.
	SpaceForOrigin(origin vr.TrackingOrigin) Space

	// NegotiateFormat adjusts info.Format in place to a format the
	// runtime supports (typically promoting to an sRGB-compatible
	// format). Called once per swapchain creation; the adjustment is
	// preserved across reuse checks.
	NegotiateFormat(info *SwapchainCreateInfo)

	// CreateSwapchain creates a swapchain matching info.
	CreateSwapchain(info *SwapchainCreateInfo) (Swapchain, error)
}
