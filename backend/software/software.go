// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements the CPU graphics backend. Textures are
// image.Image values and swapchain images are *image.RGBA; copies go
// through golang.org/x/image/draw so UV crops that do not match the
// swapchain extent are rescaled rather than rejected.
package software

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/vrbridge/backend"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

func init() {
	backend.Register(vr.TextureTypeSoftware, func() (backend.Backend, error) {
		return New(), nil
	})
}

// Backend is the software rendering backend. One instance serves one
// overlay binding and holds that overlay's swapchain images.
type Backend struct {
	images []*image.RGBA
	format gputypes.TextureFormat
}

// New creates a software backend instance.
func New() *Backend {
	return &Backend{}
}

// API returns vr.TextureTypeSoftware.
func (b *Backend) API() vr.TextureType { return vr.TextureTypeSoftware }

// texture extracts the image.Image behind a software texture.
func texture(tex *vr.Texture) (image.Image, error) {
	img, ok := tex.Handle.(image.Image)
	if !ok || img == nil {
		return nil, fmt.Errorf("%w: software texture handle is %T", backend.ErrUnsupportedTexture, tex.Handle)
	}
	return img, nil
}

// SwapchainInfo derives requirements from the texture's pixel size cropped
// to bounds. Gamma (and auto) color spaces request an sRGB format; the
// runtime may still promote the format during negotiation.
func (b *Backend) SwapchainInfo(tex *vr.Texture, bounds vr.TextureBounds) (xr.SwapchainCreateInfo, error) {
	img, err := texture(tex)
	if err != nil {
		return xr.SwapchainCreateInfo{}, err
	}

	size := img.Bounds().Size()
	w, h := backend.CropExtent(uint32(size.X), uint32(size.Y), bounds)

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

// StoreImages keeps the swapchain's backing images.
func (b *Backend) StoreImages(images []xr.Image, format gputypes.TextureFormat) error {
	stored := make([]*image.RGBA, len(images))
	for i, img := range images {
		rgba, ok := img.(*image.RGBA)
		if !ok {
			return fmt.Errorf("%w: got %T, want *image.RGBA", backend.ErrImageMismatch, img)
		}
		stored[i] = rgba
	}
	b.images = stored
	b.format = format
	return nil
}

// CopyToSwapchain copies the texture's UV sub-rectangle into the stored
// image at index and returns the pixel extent written.
func (b *Backend) CopyToSwapchain(tex *vr.Texture, bounds vr.TextureBounds, index uint32) (xr.Extent2Di, error) {
	if int(index) >= len(b.images) {
		return xr.Extent2Di{}, fmt.Errorf("%w: index %d of %d", backend.ErrNoImages, index, len(b.images))
	}
	img, err := texture(tex)
	if err != nil {
		return xr.Extent2Di{}, err
	}
	dst := b.images[index]

	src := cropRect(img.Bounds(), bounds)
	dstRect := dst.Bounds()

	if src.Dx() == dstRect.Dx() && src.Dy() == dstRect.Dy() {
		xdraw.Copy(dst, dstRect.Min, img, src, xdraw.Src, nil)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dstRect, img, src, xdraw.Src, nil)
	}

	return xr.Extent2Di{Width: int32(dstRect.Dx()), Height: int32(dstRect.Dy())}, nil
}

// cropRect maps normalized UV bounds onto a pixel rectangle of r.
// Inverted bounds select the same texels as their upright counterpart.
func cropRect(r image.Rectangle, bounds vr.TextureBounds) image.Rectangle {
	u0, u1 := bounds.UMin, bounds.UMax
	if u0 > u1 {
		u0, u1 = u1, u0
	}
	v0, v1 := bounds.VMin, bounds.VMax
	if v0 > v1 {
		v0, v1 = v1, v0
	}

	w := float32(r.Dx())
	h := float32(r.Dy())
	out := image.Rect(
		r.Min.X+int(u0*w+0.5),
		r.Min.Y+int(v0*h+0.5),
		r.Min.X+int(u1*w+0.5),
		r.Min.Y+int(v1*h+0.5),
	)
	if out.Empty() {
		out = image.Rect(out.Min.X, out.Min.Y, out.Min.X+1, out.Min.Y+1)
	}
	return out
}
