// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"testing"

	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

func allCaps() xr.Capabilities {
	return xr.Capabilities{
		CylinderLayers: true,
		ColorScaleBias: true,
		EquirectLayers: true,
	}
}

func TestCreateFindDestroy(t *testing.T) {
	m := NewOverlayManager(allCaps())

	h, status := m.CreateOverlay("key", "name")
	if status != vr.OverlayErrorNone {
		t.Fatalf("CreateOverlay = %v, want None", status)
	}
	if h == vr.OverlayHandleInvalid {
		t.Fatal("CreateOverlay returned the invalid handle")
	}

	found, status := m.FindOverlay("key")
	if status != vr.OverlayErrorNone || found != h {
		t.Errorf("FindOverlay = %v, %v, want %v, None", found, status, h)
	}

	if status := m.DestroyOverlay(h); status != vr.OverlayErrorNone {
		t.Errorf("DestroyOverlay = %v, want None", status)
	}
	if _, status := m.FindOverlay("key"); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("FindOverlay after destroy = %v, want UnknownOverlay", status)
	}
	if m.OverlayCount() != 0 {
		t.Errorf("OverlayCount = %d, want 0", m.OverlayCount())
	}
}

func TestCreateOverlayKeyInUse(t *testing.T) {
	m := NewOverlayManager(allCaps())

	if _, status := m.CreateOverlay("key", "first"); status != vr.OverlayErrorNone {
		t.Fatalf("CreateOverlay = %v, want None", status)
	}
	if _, status := m.CreateOverlay("key", "second"); status != vr.OverlayErrorKeyInUse {
		t.Errorf("CreateOverlay with duplicate key = %v, want KeyInUse", status)
	}
}

func TestKeyReleasedAfterDestroy(t *testing.T) {
	m := NewOverlayManager(allCaps())

	h, _ := m.CreateOverlay("key", "first")
	m.DestroyOverlay(h)

	h2, status := m.CreateOverlay("key", "second")
	if status != vr.OverlayErrorNone {
		t.Fatalf("CreateOverlay after destroy = %v, want None", status)
	}
	if h2 == h {
		t.Error("reused key returned the old handle")
	}
	if name, _ := m.GetOverlayName(h2); name != "second" {
		t.Errorf("GetOverlayName = %q, want %q", name, "second")
	}
}

func TestDestroyedHandleStaysDead(t *testing.T) {
	m := NewOverlayManager(allCaps())

	h, _ := m.CreateOverlay("a", "a")
	m.DestroyOverlay(h)
	m.CreateOverlay("b", "b") // likely reuses the slot

	if status := m.ShowOverlay(h); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("ShowOverlay with stale handle = %v, want UnknownOverlay", status)
	}
	if status := m.DestroyOverlay(h); status != vr.OverlayErrorNone {
		t.Errorf("DestroyOverlay is not idempotent: %v", status)
	}
	if _, status := m.FindOverlay("b"); status != vr.OverlayErrorNone {
		t.Errorf("destroying a stale handle removed a live overlay: %v", status)
	}
}

func TestVisibility(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	if m.IsOverlayVisible(h) {
		t.Error("overlay visible before ShowOverlay")
	}
	if status := m.ShowOverlay(h); status != vr.OverlayErrorNone {
		t.Fatalf("ShowOverlay = %v, want None", status)
	}
	if !m.IsOverlayVisible(h) {
		t.Error("overlay not visible after ShowOverlay")
	}
	if status := m.HideOverlay(h); status != vr.OverlayErrorNone {
		t.Fatalf("HideOverlay = %v, want None", status)
	}
	if m.IsOverlayVisible(h) {
		t.Error("overlay visible after HideOverlay")
	}
	if m.IsOverlayVisible(vr.OverlayHandleInvalid) {
		t.Error("invalid handle reported visible")
	}
}

func TestAlphaDefaultAndClear(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	if a, status := m.GetOverlayAlpha(h); status != vr.OverlayErrorNone || a != 1.0 {
		t.Errorf("GetOverlayAlpha = %v, %v, want 1.0, None", a, status)
	}

	if status := m.SetOverlayAlpha(h, 0.5); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayAlpha = %v, want None", status)
	}
	if a, _ := m.GetOverlayAlpha(h); a != 0.5 {
		t.Errorf("GetOverlayAlpha = %v, want 0.5", a)
	}

	// Full opacity drops the override entirely.
	m.SetOverlayAlpha(h, 1.0)
	if a, _ := m.GetOverlayAlpha(h); a != 1.0 {
		t.Errorf("GetOverlayAlpha = %v, want 1.0", a)
	}
	m.mu.RLock()
	ov, _ := m.get(h)
	hasOverride := ov.alpha != nil
	m.mu.RUnlock()
	if hasOverride {
		t.Error("alpha 1.0 kept an override attached")
	}
}

func TestAlphaWithoutCapability(t *testing.T) {
	m := NewOverlayManager(xr.Capabilities{})
	h, _ := m.CreateOverlay("key", "name")

	if status := m.SetOverlayAlpha(h, 0.25); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayAlpha = %v, want None", status)
	}
	if a, _ := m.GetOverlayAlpha(h); a != 1.0 {
		t.Errorf("GetOverlayAlpha = %v, want 1.0 when unsupported", a)
	}
}

func TestWidthAndSortOrder(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	if w, _ := m.GetOverlayWidth(h); w != 1.0 {
		t.Errorf("default width = %v, want 1.0", w)
	}
	m.SetOverlayWidth(h, 2.5)
	if w, _ := m.GetOverlayWidth(h); w != 2.5 {
		t.Errorf("GetOverlayWidth = %v, want 2.5", w)
	}

	m.SetOverlaySortOrder(h, 7)
	if z, _ := m.GetOverlaySortOrder(h); z != 7 {
		t.Errorf("GetOverlaySortOrder = %v, want 7", z)
	}
}

func TestCurvature(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	if c, _ := m.GetOverlayCurvature(h); c != 0 {
		t.Errorf("default curvature = %v, want 0", c)
	}

	if status := m.SetOverlayCurvature(h, 1.5); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayCurvature = %v, want None", status)
	}
	if c, _ := m.GetOverlayCurvature(h); c != 1.0 {
		t.Errorf("curvature = %v, want clamped to 1.0", c)
	}

	m.SetOverlayCurvature(h, -0.5)
	if c, _ := m.GetOverlayCurvature(h); c != 0 {
		t.Errorf("curvature = %v, want clamped to 0", c)
	}

	m.SetOverlayCurvature(h, 0.25)
	if c, _ := m.GetOverlayCurvature(h); c != 0.25 {
		t.Errorf("curvature = %v, want 0.25", c)
	}
}

func TestCurvatureWithoutCapability(t *testing.T) {
	m := NewOverlayManager(xr.Capabilities{})
	h, _ := m.CreateOverlay("key", "name")

	if status := m.SetOverlayCurvature(h, 0.5); status != vr.OverlayErrorNone {
		t.Fatalf("SetOverlayCurvature = %v, want None", status)
	}
	if c, _ := m.GetOverlayCurvature(h); c != 0 {
		t.Errorf("curvature = %v, want 0 when unsupported", c)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	origin, pose, status := m.GetOverlayTransform(h)
	if status != vr.OverlayErrorNone {
		t.Fatalf("GetOverlayTransform = %v, want None", status)
	}
	if origin != vr.TrackingOriginStanding || pose != defaultPose {
		t.Errorf("default transform = %v, %+v, want Standing, %+v", origin, pose, defaultPose)
	}

	want := xr.Posef{
		Orientation: xr.QuatIdent,
		Position:    xr.Vector3f{X: 1, Y: 2, Z: -3},
	}
	m.SetOverlayTransform(h, vr.TrackingOriginSeated, want)
	origin, pose, _ = m.GetOverlayTransform(h)
	if origin != vr.TrackingOriginSeated || pose != want {
		t.Errorf("transform = %v, %+v, want Seated, %+v", origin, pose, want)
	}
}

func TestTransformNormalizesOrientation(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	m.SetOverlayTransform(h, vr.TrackingOriginStanding, xr.Posef{
		Orientation: xr.Quaternionf{W: 2},
	})
	_, pose, _ := m.GetOverlayTransform(h)
	if pose.Orientation != xr.QuatIdent {
		t.Errorf("orientation = %+v, want normalized identity", pose.Orientation)
	}
}

func TestTextureBounds(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h, _ := m.CreateOverlay("key", "name")

	if b, _ := m.GetOverlayTextureBounds(h); b != vr.FullBounds {
		t.Errorf("default bounds = %+v, want full", b)
	}
	want := vr.TextureBounds{UMin: 0.25, VMin: 0, UMax: 0.75, VMax: 1}
	m.SetOverlayTextureBounds(h, want)
	if b, _ := m.GetOverlayTextureBounds(h); b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestUnknownHandleErrors(t *testing.T) {
	m := NewOverlayManager(allCaps())
	h := vr.OverlayHandle(12345)

	if status := m.ShowOverlay(h); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("ShowOverlay = %v, want UnknownOverlay", status)
	}
	if _, status := m.GetOverlayWidth(h); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("GetOverlayWidth = %v, want UnknownOverlay", status)
	}
	if _, status := m.GetOverlayKey(h); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("GetOverlayKey = %v, want UnknownOverlay", status)
	}
	if status := m.SetOverlayTexture(h, &SessionData{}, softwareTexture(testImage(2, 2, 255))); status != vr.OverlayErrorUnknownOverlay {
		t.Errorf("SetOverlayTexture = %v, want UnknownOverlay", status)
	}
}
