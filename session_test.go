// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"errors"
	"image"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

var errAcquireFault = errors.New("acquire fault")

// fakeSwapchain is an in-memory swapchain backed by *image.RGBA images.
type fakeSwapchain struct {
	images       []xr.Image
	next         uint32
	waits        int
	releases     int
	destroyed    bool
	failAcquires int
}

func (s *fakeSwapchain) EnumerateImages() ([]xr.Image, error) { return s.images, nil }

func (s *fakeSwapchain) Acquire() (uint32, error) {
	if s.failAcquires > 0 {
		s.failAcquires--
		return 0, errAcquireFault
	}
	idx := s.next % uint32(len(s.images))
	s.next++
	return idx, nil
}

func (s *fakeSwapchain) Wait(timeout time.Duration) error {
	s.waits++
	return nil
}

func (s *fakeSwapchain) Release() error {
	s.releases++
	return nil
}

func (s *fakeSwapchain) Destroy() error {
	s.destroyed = true
	return nil
}

// fakeSession fabricates software-backend swapchains and records every
// creation so tests can assert on reuse.
type fakeSession struct {
	origin       vr.TrackingOrigin
	promote      bool // promote linear formats to sRGB during negotiation
	imageCount   int
	failAcquires int // injected into the next created swapchain
	created      []*fakeSwapchain
}

func (s *fakeSession) CurrentOrigin() vr.TrackingOrigin { return s.origin }

func (s *fakeSession) SpaceForOrigin(origin vr.TrackingOrigin) xr.Space {
	return xr.Space(origin) + 1
}

func (s *fakeSession) NegotiateFormat(info *xr.SwapchainCreateInfo) {
	if s.promote && info.Format == gputypes.TextureFormatRGBA8Unorm {
		info.Format = gputypes.TextureFormatRGBA8UnormSrgb
	}
}

func (s *fakeSession) CreateSwapchain(info *xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	count := s.imageCount
	if count == 0 {
		count = 3
	}
	images := make([]xr.Image, count)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, int(info.Width), int(info.Height)))
	}
	sc := &fakeSwapchain{images: images, failAcquires: s.failAcquires}
	s.failAcquires = 0
	s.created = append(s.created, sc)
	return sc, nil
}

func newTestSession() (*fakeSession, *SessionData) {
	fs := &fakeSession{origin: vr.TrackingOriginStanding}
	return fs, NewSessionData(fs)
}

func testImage(w, h int, c uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

func softwareTexture(img image.Image) *vr.Texture {
	return &vr.Texture{
		Handle:     img,
		Type:       vr.TextureTypeSoftware,
		ColorSpace: vr.ColorSpaceAuto,
	}
}
