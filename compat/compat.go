// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compat adapts the historical overlay interface versions onto the
// canonical engine. The newest version is implemented directly by Overlay;
// each older version embeds the adapter above it and adds only the calls
// that version still carried. Superseded operations with no analogue in
// the canonical model return fixed, documented defaults instead of
// touching engine state.
package compat

import (
	"sync"

	"github.com/gogpu/vrbridge"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// warnedOnce deduplicates the unimplemented-call warnings; legacy
// applications tend to invoke these every frame.
var warnedOnce sync.Map

func warnOnce(msg string, args ...any) {
	if _, loaded := warnedOnce.LoadOrStore(msg, struct{}{}); !loaded {
		vrbridge.Logger().Warn(msg, args...)
	}
}

// Overlay implements the newest overlay interface version. Out-parameters
// are pointers; a nil required pointer fails with InvalidParameter before
// any state is read.
type Overlay struct {
	man     *vrbridge.OverlayManager
	session *vrbridge.SessionData
}

// New builds the canonical adapter over the engine and its session.
func New(man *vrbridge.OverlayManager, session *vrbridge.SessionData) *Overlay {
	return &Overlay{man: man, session: session}
}

func (o *Overlay) CreateOverlay(key, name string, handle *vr.OverlayHandle) vr.OverlayError {
	if handle == nil {
		return vr.OverlayErrorInvalidParameter
	}
	h, status := o.man.CreateOverlay(key, name)
	if status != vr.OverlayErrorNone {
		return status
	}
	*handle = h
	return vr.OverlayErrorNone
}

func (o *Overlay) FindOverlay(key string, handle *vr.OverlayHandle) vr.OverlayError {
	if handle == nil {
		return vr.OverlayErrorInvalidParameter
	}
	h, status := o.man.FindOverlay(key)
	if status != vr.OverlayErrorNone {
		return status
	}
	*handle = h
	return vr.OverlayErrorNone
}

func (o *Overlay) DestroyOverlay(h vr.OverlayHandle) vr.OverlayError {
	return o.man.DestroyOverlay(h)
}

func (o *Overlay) ShowOverlay(h vr.OverlayHandle) vr.OverlayError { return o.man.ShowOverlay(h) }
func (o *Overlay) HideOverlay(h vr.OverlayHandle) vr.OverlayError { return o.man.HideOverlay(h) }
func (o *Overlay) IsOverlayVisible(h vr.OverlayHandle) bool       { return o.man.IsOverlayVisible(h) }

func (o *Overlay) SetOverlayAlpha(h vr.OverlayHandle, alpha float32) vr.OverlayError {
	return o.man.SetOverlayAlpha(h, alpha)
}

func (o *Overlay) GetOverlayAlpha(h vr.OverlayHandle, alpha *float32) vr.OverlayError {
	if alpha == nil {
		return vr.OverlayErrorInvalidParameter
	}
	a, status := o.man.GetOverlayAlpha(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*alpha = a
	return vr.OverlayErrorNone
}

func (o *Overlay) SetOverlayWidthInMeters(h vr.OverlayHandle, width float32) vr.OverlayError {
	return o.man.SetOverlayWidth(h, width)
}

func (o *Overlay) GetOverlayWidthInMeters(h vr.OverlayHandle, width *float32) vr.OverlayError {
	if width == nil {
		return vr.OverlayErrorInvalidParameter
	}
	w, status := o.man.GetOverlayWidth(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*width = w
	return vr.OverlayErrorNone
}

func (o *Overlay) SetOverlaySortOrder(h vr.OverlayHandle, order uint32) vr.OverlayError {
	return o.man.SetOverlaySortOrder(h, order)
}

func (o *Overlay) GetOverlaySortOrder(h vr.OverlayHandle, order *uint32) vr.OverlayError {
	if order == nil {
		return vr.OverlayErrorInvalidParameter
	}
	z, status := o.man.GetOverlaySortOrder(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*order = z
	return vr.OverlayErrorNone
}

func (o *Overlay) SetOverlayCurvature(h vr.OverlayHandle, curvature float32) vr.OverlayError {
	return o.man.SetOverlayCurvature(h, curvature)
}

func (o *Overlay) GetOverlayCurvature(h vr.OverlayHandle, curvature *float32) vr.OverlayError {
	if curvature == nil {
		return vr.OverlayErrorInvalidParameter
	}
	c, status := o.man.GetOverlayCurvature(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*curvature = c
	return vr.OverlayErrorNone
}

func (o *Overlay) SetOverlayTextureBounds(h vr.OverlayHandle, bounds *vr.TextureBounds) vr.OverlayError {
	if bounds == nil {
		return vr.OverlayErrorInvalidParameter
	}
	return o.man.SetOverlayTextureBounds(h, *bounds)
}

func (o *Overlay) GetOverlayTextureBounds(h vr.OverlayHandle, bounds *vr.TextureBounds) vr.OverlayError {
	if bounds == nil {
		return vr.OverlayErrorInvalidParameter
	}
	b, status := o.man.GetOverlayTextureBounds(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*bounds = b
	return vr.OverlayErrorNone
}

// SetOverlayTransformAbsolute stores the overlay pose relative to a
// tracking origin. The 3x4 matrix is decomposed into a pose; the
// canonical engine re-normalizes the resulting orientation.
func (o *Overlay) SetOverlayTransformAbsolute(h vr.OverlayHandle, origin vr.TrackingOrigin, transform *vr.HmdMatrix34) vr.OverlayError {
	if transform == nil {
		return vr.OverlayErrorInvalidParameter
	}
	return o.man.SetOverlayTransform(h, origin, xr.PoseFromMatrix34(*transform))
}

func (o *Overlay) GetOverlayTransformAbsolute(h vr.OverlayHandle, origin *vr.TrackingOrigin, transform *vr.HmdMatrix34) vr.OverlayError {
	if origin == nil || transform == nil {
		return vr.OverlayErrorInvalidParameter
	}
	or, pose, status := o.man.GetOverlayTransform(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*origin = or
	*transform = pose.Matrix34()
	return vr.OverlayErrorNone
}

func (o *Overlay) SetOverlayTexture(h vr.OverlayHandle, texture *vr.Texture) vr.OverlayError {
	return o.man.SetOverlayTexture(h, o.session, texture)
}

func (o *Overlay) GetOverlayKey(h vr.OverlayHandle, key *string) vr.OverlayError {
	if key == nil {
		return vr.OverlayErrorInvalidParameter
	}
	k, status := o.man.GetOverlayKey(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*key = k
	return vr.OverlayErrorNone
}

func (o *Overlay) GetOverlayName(h vr.OverlayHandle, name *string) vr.OverlayError {
	if name == nil {
		return vr.OverlayErrorInvalidParameter
	}
	n, status := o.man.GetOverlayName(h)
	if status != vr.OverlayErrorNone {
		return status
	}
	*name = n
	return vr.OverlayErrorNone
}

// SetSkyboxOverride replaces the 360° background with 1, 2, or 6 textures.
func (o *Overlay) SetSkyboxOverride(textures []vr.Texture) vr.OverlayError {
	switch len(textures) {
	case 1, 2, 6:
	default:
		return vr.OverlayErrorInvalidParameter
	}
	if err := o.man.SetSkybox(o.session, textures); err != nil {
		vrbridge.Logger().Error("skybox override failed", "err", err)
		return vr.OverlayErrorRequestFailed
	}
	return vr.OverlayErrorNone
}

// ClearSkyboxOverride removes the skybox set by SetSkyboxOverride.
func (o *Overlay) ClearSkyboxOverride() {
	o.man.ClearSkybox()
}

// IsDashboardVisible always reports false; no dashboard exists here.
func (o *Overlay) IsDashboardVisible() bool { return false }

// ShowKeyboard has no backing keyboard implementation.
func (o *Overlay) ShowKeyboard(inputMode, lineMode int32, description string, maxChars uint32, existingText string) vr.OverlayError {
	warnOnce("ShowKeyboard is not implemented")
	return vr.OverlayErrorRequestFailed
}

// ShowKeyboardForOverlay has no backing keyboard implementation.
func (o *Overlay) ShowKeyboardForOverlay(h vr.OverlayHandle, inputMode, lineMode int32, description string, maxChars uint32, existingText string) vr.OverlayError {
	warnOnce("ShowKeyboardForOverlay is not implemented")
	return vr.OverlayErrorRequestFailed
}

// HideKeyboard pairs with the keyboard stubs above.
func (o *Overlay) HideKeyboard() {}

// SetOverlayTexelAspect is accepted and ignored; non-square texels never
// affected rendered output in practice.
func (o *Overlay) SetOverlayTexelAspect(h vr.OverlayHandle, aspect float32) vr.OverlayError {
	warnOnce("SetOverlayTexelAspect is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay) GetOverlayTexelAspect(h vr.OverlayHandle, aspect *float32) vr.OverlayError {
	if aspect == nil {
		return vr.OverlayErrorInvalidParameter
	}
	*aspect = 1.0
	return vr.OverlayErrorNone
}

// SetOverlayTransformTrackedDeviceRelative is accepted and ignored;
// device-relative transforms need the tracking subsystem.
func (o *Overlay) SetOverlayTransformTrackedDeviceRelative(h vr.OverlayHandle, deviceIndex uint32, transform *vr.HmdMatrix34) vr.OverlayError {
	warnOnce("SetOverlayTransformTrackedDeviceRelative is not implemented")
	return vr.OverlayErrorNone
}
