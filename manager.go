// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"sync"

	"github.com/gogpu/vrbridge/internal/handle"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// OverlayManager is the canonical overlay store: a concurrent registry of
// overlay state keyed by generation-checked handles, plus the key-string
// lookup index and the internally owned skybox set.
//
// All legacy interface versions ultimately call into an OverlayManager;
// the compat package provides the per-version adapters.
//
// OverlayManager is safe for concurrent use.
type OverlayManager struct {
	mu       sync.RWMutex
	overlays handle.Arena[overlay]
	byKey    map[string]vr.OverlayHandle
	skybox   []vr.OverlayHandle

	caps xr.Capabilities
}

// NewOverlayManager creates an empty overlay store. caps reports which
// optional layer features the host runtime advertises; they gate curvature
// and alpha behavior.
func NewOverlayManager(caps xr.Capabilities) *OverlayManager {
	return &OverlayManager{
		byKey: make(map[string]vr.OverlayHandle),
		caps:  caps,
	}
}

// Capabilities returns the runtime capability flags the manager was
// created with.
func (m *OverlayManager) Capabilities() xr.Capabilities { return m.caps }

// get resolves a handle to its overlay. Callers hold m.mu.
func (m *OverlayManager) get(h vr.OverlayHandle) (*overlay, bool) {
	return m.overlays.Get(handle.Handle(h))
}

// CreateOverlay registers a new overlay under key and returns its handle.
// key must be unique among live overlays; name is a display label.
func (m *OverlayManager) CreateOverlay(key, name string) (vr.OverlayHandle, vr.OverlayError) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[key]; exists {
		return vr.OverlayHandleInvalid, vr.OverlayErrorKeyInUse
	}

	h := vr.OverlayHandle(m.overlays.Insert(newOverlay(key, name)))
	m.byKey[key] = h

	Logger().Debug("created overlay", "key", key, "name", name, "handle", h)
	return h, vr.OverlayErrorNone
}

// FindOverlay returns the handle of the live overlay registered under key.
func (m *OverlayManager) FindOverlay(key string) (vr.OverlayHandle, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.byKey[key]
	if !ok {
		return vr.OverlayHandleInvalid, vr.OverlayErrorUnknownOverlay
	}
	return h, vr.OverlayErrorNone
}

// DestroyOverlay removes the overlay and both of its index entries.
// Destroying an unknown or already-destroyed handle is a no-op, matching
// legacy behavior.
func (m *OverlayManager) DestroyOverlay(h vr.OverlayHandle) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyLocked(h)
	return vr.OverlayErrorNone
}

func (m *OverlayManager) destroyLocked(h vr.OverlayHandle) {
	ov, ok := m.overlays.Remove(handle.Handle(h))
	if !ok {
		return
	}
	// Skybox overlays never enter the key index; guard against a caller
	// overlay that happens to share the key string.
	if cur, ok := m.byKey[ov.key]; ok && cur == h {
		delete(m.byKey, ov.key)
	}
	Logger().Debug("destroyed overlay", "key", ov.key, "handle", h)
}

// ShowOverlay marks the overlay visible for subsequent frames.
func (m *OverlayManager) ShowOverlay(h vr.OverlayHandle) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	Logger().Debug("showing overlay", "name", ov.name)
	ov.visible = true
	return vr.OverlayErrorNone
}

// HideOverlay removes the overlay from subsequent frames.
func (m *OverlayManager) HideOverlay(h vr.OverlayHandle) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	Logger().Debug("hiding overlay", "name", ov.name)
	ov.visible = false
	return vr.OverlayErrorNone
}

// IsOverlayVisible reports whether the overlay is currently shown.
// Unknown handles report false.
func (m *OverlayManager) IsOverlayVisible(h vr.OverlayHandle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	return ok && ov.visible
}

// SetOverlayAlpha sets the overlay's blend factor. Alpha 1.0 clears the
// override entirely, restoring full opacity. When the runtime does not
// advertise color scale/bias the call logs once and reports success;
// legacy callers expect it to be infallible.
func (m *OverlayManager) SetOverlayAlpha(h vr.OverlayHandle, alpha float32) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	if !m.caps.ColorScaleBias {
		warnOnce("cannot set overlay alpha: runtime lacks color scale/bias support",
			"name", ov.name)
		return vr.OverlayErrorNone
	}

	if alpha == 1.0 {
		ov.alpha = nil
	} else {
		a := alpha
		ov.alpha = &a
	}
	return vr.OverlayErrorNone
}

// GetOverlayAlpha returns the blend factor; overlays with no override
// report 1.0.
func (m *OverlayManager) GetOverlayAlpha(h vr.OverlayHandle) (float32, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return 0, vr.OverlayErrorUnknownOverlay
	}
	if ov.alpha == nil {
		return 1.0, vr.OverlayErrorNone
	}
	return *ov.alpha, vr.OverlayErrorNone
}

// SetOverlayWidth sets the overlay width in meters (the radius, for
// sphere overlays).
func (m *OverlayManager) SetOverlayWidth(h vr.OverlayHandle, width float32) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	Logger().Debug("setting overlay width", "name", ov.name, "width", width)
	ov.width = width
	return vr.OverlayErrorNone
}

// GetOverlayWidth returns the overlay width in meters.
func (m *OverlayManager) GetOverlayWidth(h vr.OverlayHandle) (float32, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return 0, vr.OverlayErrorUnknownOverlay
	}
	return ov.width, vr.OverlayErrorNone
}

// SetOverlaySortOrder sets the draw-order key. Callers only pass values
// ≥ 0; the negative range is reserved for the skybox sentinel.
func (m *OverlayManager) SetOverlaySortOrder(h vr.OverlayHandle, order uint32) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	Logger().Debug("overlay sort order", "name", ov.name, "from", ov.zOrder, "to", order)
	ov.zOrder = int64(order)
	return vr.OverlayErrorNone
}

// GetOverlaySortOrder returns the draw-order key.
func (m *OverlayManager) GetOverlaySortOrder(h vr.OverlayHandle) (uint32, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return 0, vr.OverlayErrorUnknownOverlay
	}
	return uint32(ov.zOrder), vr.OverlayErrorNone
}

// SetOverlayCurvature bends the overlay into a cylinder section.
// curvature is clamped to [0,1]. When the runtime does not advertise
// cylinder layers the call is a silent success and the overlay stays
// flat; legacy callers expect the call to be infallible.
func (m *OverlayManager) SetOverlayCurvature(h vr.OverlayHandle, curvature float32) vr.OverlayError {
	if !m.caps.CylinderLayers {
		return vr.OverlayErrorNone
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	ov.kind = KindCurved
	ov.curvature = clamp01(curvature)
	return vr.OverlayErrorNone
}

// GetOverlayCurvature returns the curvature; non-curved overlays report 0.
func (m *OverlayManager) GetOverlayCurvature(h vr.OverlayHandle) (float32, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return 0, vr.OverlayErrorUnknownOverlay
	}
	if ov.kind != KindCurved {
		return 0, vr.OverlayErrorNone
	}
	return ov.curvature, vr.OverlayErrorNone
}

// SetOverlayTextureBounds sets the normalized UV sub-rectangle sampled
// from submitted textures.
func (m *OverlayManager) SetOverlayTextureBounds(h vr.OverlayHandle, bounds vr.TextureBounds) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	Logger().Debug("overlay texture bounds", "name", ov.name, "bounds", bounds)
	ov.bounds = bounds
	return vr.OverlayErrorNone
}

// GetOverlayTextureBounds returns the UV sub-rectangle.
func (m *OverlayManager) GetOverlayTextureBounds(h vr.OverlayHandle) (vr.TextureBounds, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.TextureBounds{}, vr.OverlayErrorUnknownOverlay
	}
	return ov.bounds, vr.OverlayErrorNone
}

// SetOverlayTransform places the overlay at an absolute pose in the given
// tracking origin. The orientation is re-normalized before storing to
// tolerate slightly denormalized caller input.
func (m *OverlayManager) SetOverlayTransform(h vr.OverlayHandle, origin vr.TrackingOrigin, pose xr.Posef) vr.OverlayError {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.get(h)
	if !ok {
		return vr.OverlayErrorUnknownOverlay
	}
	pose.Orientation = pose.Orientation.Normalized()
	ov.transform = &OverlayTransform{Origin: origin, Pose: pose}
	Logger().Debug("overlay transform", "name", ov.name, "origin", origin)
	return vr.OverlayErrorNone
}

// GetOverlayTransform returns the overlay's absolute transform. Overlays
// that were never placed report the default pose in the standing origin.
func (m *OverlayManager) GetOverlayTransform(h vr.OverlayHandle) (vr.TrackingOrigin, xr.Posef, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return 0, xr.Posef{}, vr.OverlayErrorUnknownOverlay
	}
	if ov.transform == nil {
		return vr.TrackingOriginStanding, defaultPose, vr.OverlayErrorNone
	}
	return ov.transform.Origin, ov.transform.Pose, vr.OverlayErrorNone
}

// GetOverlayKey returns the overlay's lookup key.
func (m *OverlayManager) GetOverlayKey(h vr.OverlayHandle) (string, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return "", vr.OverlayErrorUnknownOverlay
	}
	return ov.key, vr.OverlayErrorNone
}

// GetOverlayName returns the overlay's display name.
func (m *OverlayManager) GetOverlayName(h vr.OverlayHandle) (string, vr.OverlayError) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ov, ok := m.get(h)
	if !ok {
		return "", vr.OverlayErrorUnknownOverlay
	}
	return ov.name, vr.OverlayErrorNone
}

// OverlayCount reports the number of live overlays, skybox included.
func (m *OverlayManager) OverlayCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.overlays.Len()
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
