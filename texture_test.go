// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/vrbridge/backend/software"
	"github.com/gogpu/vrbridge/vr"
)

func TestSetOverlayTexture(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	if status := m.SetOverlayTexture(h, sd, softwareTexture(testImage(4, 2, 200))); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayTexture = %v, want None", status)
	}

	if len(fs.created) != 1 {
		t.Fatalf("created %d swapchains, want 1", len(fs.created))
	}
	sc := fs.created[0]
	if sc.waits != 1 || sc.releases != 1 {
		t.Errorf("cycle ran %d waits, %d releases, want 1, 1", sc.waits, sc.releases)
	}

	dst := sc.images[0].(*image.RGBA)
	if got := dst.Bounds().Size(); got.X != 4 || got.Y != 2 {
		t.Errorf("swapchain image size = %v, want 4x2", got)
	}
	if dst.Pix[0] != 200 {
		t.Errorf("image not written: first byte = %d, want 200", dst.Pix[0])
	}

	m.mu.RLock()
	ov, _ := m.get(h)
	rect := ov.rect
	m.mu.RUnlock()
	if rect == nil {
		t.Fatal("submission did not publish a rect")
	}
	if rect.Extent.Width != 4 || rect.Extent.Height != 2 {
		t.Errorf("rect extent = %+v, want 4x2", rect.Extent)
	}
}

func TestSetOverlayTextureNil(t *testing.T) {
	m := NewOverlayManager(allCaps())
	_, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	if status := m.SetOverlayTexture(h, sd, nil); status != vr.OverlayErrorInvalidParameter {
		t.Errorf("SetOverlayTexture(nil) = %v, want InvalidParameter", status)
	}
}

func TestSwapchainReuse(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	tex := softwareTexture(testImage(4, 4, 10))
	m.SetOverlayTexture(h, sd, tex)
	m.SetOverlayTexture(h, sd, tex)
	m.SetOverlayTexture(h, sd, softwareTexture(testImage(4, 4, 20)))

	if len(fs.created) != 1 {
		t.Errorf("created %d swapchains across equal-sized submissions, want 1", len(fs.created))
	}
	// The ring advances: three submissions touch three images.
	if fs.created[0].next != 3 {
		t.Errorf("acquired %d images, want 3", fs.created[0].next)
	}
}

func TestSwapchainRecreatedOnResize(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	m.SetOverlayTexture(h, sd, softwareTexture(testImage(4, 4, 10)))
	m.SetOverlayTexture(h, sd, softwareTexture(testImage(8, 8, 10)))

	if len(fs.created) != 2 {
		t.Fatalf("created %d swapchains, want 2 after resize", len(fs.created))
	}
	if !fs.created[0].destroyed {
		t.Error("stale swapchain was not destroyed")
	}
	if fs.created[1].destroyed {
		t.Error("replacement swapchain was destroyed")
	}
}

func TestSwapchainReuseSurvivesFormatNegotiation(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	fs.promote = true
	h, _ := m.CreateOverlay("key", "name")

	// Linear color space requests a non-sRGB format, which the session
	// promotes during negotiation. The promoted format must not force a
	// recreate on the next identical submission.
	tex := softwareTexture(testImage(4, 4, 10))
	tex.ColorSpace = vr.ColorSpaceLinear
	m.SetOverlayTexture(h, sd, tex)
	m.SetOverlayTexture(h, sd, tex)

	if len(fs.created) != 1 {
		t.Errorf("created %d swapchains, want 1 despite format promotion", len(fs.created))
	}

	sd.swapchains.mu.Lock()
	data := sd.swapchains.entries[h]
	sd.swapchains.mu.Unlock()
	if data.info.Format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("stored format = %v, want negotiated sRGB", data.info.Format)
	}
	if data.initialFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("initial format = %v, want pre-negotiation linear", data.initialFormat)
	}
}

func TestSubmissionRetriesOnceOnCycleFault(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	tex := softwareTexture(testImage(4, 4, 42))
	m.SetOverlayTexture(h, sd, tex)

	// Poison the live swapchain so the next cycle faults.
	fs.created[0].failAcquires = 1
	if status := m.SetOverlayTexture(h, sd, tex); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayTexture = %v, want None after recreate", status)
	}
	if len(fs.created) != 2 {
		t.Fatalf("created %d swapchains, want 2 (one recreate)", len(fs.created))
	}
	if !fs.created[0].destroyed {
		t.Error("faulted swapchain was not destroyed")
	}

	// A swapchain that faults persistently fails the submission.
	fs.created[1].failAcquires = 1
	fs.failAcquires = 1 // the replacement faults too
	if status := m.SetOverlayTexture(h, sd, tex); status != vr.OverlayErrorRequestFailed {
		t.Errorf("SetOverlayTexture = %v, want RequestFailed", status)
	}
}

func TestSessionAPIBinding(t *testing.T) {
	m := NewOverlayManager(allCaps())
	_, sd := newTestSession()
	h1, _ := m.CreateOverlay("a", "a")
	h2, _ := m.CreateOverlay("b", "b")

	if status := m.SetOverlayTexture(h1, sd, softwareTexture(testImage(2, 2, 1))); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayTexture = %v, want None", status)
	}

	// No wgpu backend is configured in tests, so a wgpu texture cannot
	// bind at all.
	bad := &vr.Texture{Handle: struct{}{}, Type: vr.TextureTypeWGPU}
	if status := m.SetOverlayTexture(h2, sd, bad); status != vr.OverlayErrorInvalidTexture {
		t.Errorf("SetOverlayTexture with unregistered API = %v, want InvalidTexture", status)
	}
}

func TestOverlayAPIBinding(t *testing.T) {
	m := NewOverlayManager(allCaps())
	_, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	if status := m.SetOverlayTexture(h, sd, softwareTexture(testImage(2, 2, 1))); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayTexture = %v, want None", status)
	}
	bad := &vr.Texture{Handle: struct{}{}, Type: vr.TextureTypeWGPU}
	if status := m.SetOverlayTexture(h, sd, bad); status != vr.OverlayErrorInvalidTexture {
		t.Errorf("SetOverlayTexture across APIs = %v, want InvalidTexture", status)
	}
}

func TestCroppedSubmission(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")

	m.SetOverlayTextureBounds(h, vr.TextureBounds{UMin: 0, VMin: 0, UMax: 0.5, VMax: 1})
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i] = 77
			src.Pix[i+3] = 255
		}
	}

	if status := m.SetOverlayTexture(h, sd, softwareTexture(src)); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayTexture = %v, want None", status)
	}

	dst := fs.created[0].images[0].(*image.RGBA)
	if got := dst.Bounds().Size(); got.X != 4 || got.Y != 4 {
		t.Fatalf("swapchain image size = %v, want 4x4 crop", got)
	}
	if dst.Pix[0] != 77 {
		t.Errorf("cropped copy missing: first byte = %d, want 77", dst.Pix[0])
	}
}

func TestSessionClose(t *testing.T) {
	m := NewOverlayManager(allCaps())
	fs, sd := newTestSession()
	h, _ := m.CreateOverlay("key", "name")
	m.SetOverlayTexture(h, sd, softwareTexture(testImage(2, 2, 1)))

	if err := sd.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !fs.created[0].destroyed {
		t.Error("Close did not destroy the swapchain")
	}
}
