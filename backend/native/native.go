// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the wgpu graphics backend using gogpu/wgpu's
// HAL. Submitted textures carry CPU-side RGBA8 pixels that the backend
// uploads into the swapchain's hal.Texture images via queue.WriteTexture.
//
// The backend does not create a device; the host integration owns device
// and queue and hands them in through Configure.
package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vrbridge/backend"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// Package errors.
var (
	// ErrNotConfigured is returned when a wgpu texture is submitted
	// before Configure provided a device and queue.
	ErrNotConfigured = errors.New("native: backend not configured with a device and queue")

	// ErrBadPixelData is returned when a texture's pixel buffer does not
	// match its declared dimensions.
	ErrBadPixelData = errors.New("native: pixel buffer does not match texture dimensions")
)

// Texture is the handle type behind vr.TextureTypeWGPU submissions:
// an RGBA8 pixel buffer with its dimensions. Stride is in bytes; zero
// means tightly packed (Width*4).
type Texture struct {
	Pixels []byte
	Width  uint32
	Height uint32
	Stride uint32
}

func (t *Texture) stride() uint32 {
	if t.Stride != 0 {
		return t.Stride
	}
	return t.Width * 4
}

var (
	configMu sync.Mutex
	device   hal.Device
	queue    hal.Queue
)

// Configure supplies the shared wgpu device and queue and registers the
// backend for vr.TextureTypeWGPU. The host integration calls this once
// after device creation.
func Configure(d hal.Device, q hal.Queue) {
	configMu.Lock()
	device = d
	queue = q
	configMu.Unlock()

	backend.Register(vr.TextureTypeWGPU, func() (backend.Backend, error) {
		configMu.Lock()
		defer configMu.Unlock()
		if device == nil || queue == nil {
			return nil, ErrNotConfigured
		}
		return &Backend{device: device, queue: queue}, nil
	})
}

// uploader is the slice of hal.Queue the copy path uses.
type uploader interface {
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error
}

// Backend is the wgpu texture path. One instance serves one overlay
// binding and holds that overlay's swapchain images.
type Backend struct {
	device hal.Device
	queue  uploader

	images []hal.Texture
	format gputypes.TextureFormat
}

// API returns vr.TextureTypeWGPU.
func (b *Backend) API() vr.TextureType { return vr.TextureTypeWGPU }

func texture(tex *vr.Texture) (*Texture, error) {
	t, ok := tex.Handle.(*Texture)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: wgpu texture handle is %T", backend.ErrUnsupportedTexture, tex.Handle)
	}
	if uint64(len(t.Pixels)) < uint64(t.stride())*uint64(t.Height) {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d stride %d",
			ErrBadPixelData, len(t.Pixels), t.Width, t.Height, t.stride())
	}
	return t, nil
}

// SwapchainInfo derives requirements from the texture dimensions cropped
// to bounds. Gamma (and auto) color spaces request an sRGB format.
func (b *Backend) SwapchainInfo(tex *vr.Texture, bounds vr.TextureBounds) (xr.SwapchainCreateInfo, error) {
	t, err := texture(tex)
	if err != nil {
		return xr.SwapchainCreateInfo{}, err
	}

	w, h := backend.CropExtent(t.Width, t.Height, bounds)

	format := gputypes.TextureFormatRGBA8UnormSrgb
	if tex.ColorSpace == vr.ColorSpaceLinear {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	return xr.SwapchainCreateInfo{
		Format:      format,
		Width:       w,
		Height:      h,
		SampleCount: 1,
		ArraySize:   1,
		MipCount:    1,
	}, nil
}

// StoreImages keeps the swapchain's hal textures.
func (b *Backend) StoreImages(images []xr.Image, format gputypes.TextureFormat) error {
	stored := make([]hal.Texture, len(images))
	for i, img := range images {
		halTex, ok := img.(hal.Texture)
		if !ok {
			return fmt.Errorf("%w: got %T, want hal.Texture", backend.ErrImageMismatch, img)
		}
		stored[i] = halTex
	}
	b.images = stored
	b.format = format
	return nil
}

// CopyToSwapchain uploads the texture's UV sub-rectangle into the stored
// image at index and returns the pixel extent written.
func (b *Backend) CopyToSwapchain(tex *vr.Texture, bounds vr.TextureBounds, index uint32) (xr.Extent2Di, error) {
	if int(index) >= len(b.images) {
		return xr.Extent2Di{}, fmt.Errorf("%w: index %d of %d", backend.ErrNoImages, index, len(b.images))
	}
	t, err := texture(tex)
	if err != nil {
		return xr.Extent2Di{}, err
	}

	x0, y0, w, h := cropOrigin(t.Width, t.Height, bounds)
	stride := t.stride()

	dst := &hal.ImageCopyTexture{
		Texture:  b.images[index],
		MipLevel: 0,
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   gputypes.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  stride,
		RowsPerImage: h,
	}
	size := &hal.Extent3D{
		Width:              w,
		Height:             h,
		DepthOrArrayLayers: 1,
	}

	data := t.Pixels[uint64(y0)*uint64(stride)+uint64(x0)*4:]
	if err := b.queue.WriteTexture(dst, data, layout, size); err != nil {
		return xr.Extent2Di{}, fmt.Errorf("writing swapchain image: %w", err)
	}

	return xr.Extent2Di{Width: int32(w), Height: int32(h)}, nil
}

// cropOrigin maps normalized UV bounds onto a pixel origin and extent.
func cropOrigin(tw, th uint32, bounds vr.TextureBounds) (x0, y0, w, h uint32) {
	u0 := bounds.UMin
	if bounds.UMax < u0 {
		u0 = bounds.UMax
	}
	v0 := bounds.VMin
	if bounds.VMax < v0 {
		v0 = bounds.VMax
	}
	w, h = backend.CropExtent(tw, th, bounds)
	x0 = uint32(u0*float32(tw) + 0.5)
	y0 = uint32(v0*float32(th) + 0.5)
	if x0+w > tw && tw >= w {
		x0 = tw - w
	}
	if y0+h > th && th >= h {
		y0 = th - h
	}
	return x0, y0, w, h
}
