// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compat

import "github.com/gogpu/vrbridge/vr"

// Overlay25 restores the overlay-relative transform calls dropped after
// version 25. Overlay-relative placement needs a parent/child overlay
// graph the canonical engine does not keep, so sets are accepted and
// ignored while gets report an unparented overlay.
type Overlay25 struct {
	*Overlay
}

func (o *Overlay25) SetOverlayTransformOverlayRelative(h, parent vr.OverlayHandle, transform *vr.HmdMatrix34) vr.OverlayError {
	if transform == nil {
		return vr.OverlayErrorInvalidParameter
	}
	warnOnce("SetOverlayTransformOverlayRelative is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay25) GetOverlayTransformOverlayRelative(h vr.OverlayHandle, parent *vr.OverlayHandle, transform *vr.HmdMatrix34) vr.OverlayError {
	if parent == nil || transform == nil {
		return vr.OverlayErrorInvalidParameter
	}
	*parent = vr.OverlayHandleInvalid
	return vr.OverlayErrorNone
}

// Overlay21 restores the dual-analog and render-model calls dropped after
// version 24. Neither subsystem exists here.
type Overlay21 struct {
	Overlay25
}

func (o *Overlay21) SetOverlayDualAnalogTransform(h vr.OverlayHandle, which int32, center *[2]float32, radius float32) vr.OverlayError {
	warnOnce("SetOverlayDualAnalogTransform is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay21) GetOverlayDualAnalogTransform(h vr.OverlayHandle, which int32, center *[2]float32, radius *float32) vr.OverlayError {
	if center == nil || radius == nil {
		return vr.OverlayErrorInvalidParameter
	}
	*center = [2]float32{}
	*radius = 0
	return vr.OverlayErrorNone
}

func (o *Overlay21) SetOverlayRenderModel(h vr.OverlayHandle, name string, color *[4]float32) vr.OverlayError {
	warnOnce("SetOverlayRenderModel is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay21) GetOverlayRenderModel(h vr.OverlayHandle, name *string, color *[4]float32) vr.OverlayError {
	if name == nil {
		return vr.OverlayErrorInvalidParameter
	}
	*name = ""
	return vr.OverlayErrorNone
}

// Overlay20 restores the gamepad focus and neighbor navigation calls
// dropped after version 21.
type Overlay20 struct {
	Overlay21
}

func (o *Overlay20) SetGamepadFocusOverlay(h vr.OverlayHandle) vr.OverlayError {
	warnOnce("SetGamepadFocusOverlay is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay20) GetGamepadFocusOverlay() vr.OverlayHandle {
	return vr.OverlayHandleInvalid
}

func (o *Overlay20) SetOverlayNeighbor(direction int32, from, to vr.OverlayHandle) vr.OverlayError {
	warnOnce("SetOverlayNeighbor is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay20) MoveGamepadFocusToNeighbor(direction int32, from vr.OverlayHandle) vr.OverlayError {
	warnOnce("MoveGamepadFocusToNeighbor is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay20) SetOverlayAutoCurveDistanceRangeInMeters(h vr.OverlayHandle, minDist, maxDist float32) vr.OverlayError {
	warnOnce("SetOverlayAutoCurveDistanceRangeInMeters is not implemented")
	return vr.OverlayErrorNone
}

func (o *Overlay20) GetOverlayAutoCurveDistanceRangeInMeters(h vr.OverlayHandle, minDist, maxDist *float32) vr.OverlayError {
	if minDist == nil || maxDist == nil {
		return vr.OverlayErrorInvalidParameter
	}
	*minDist = 0
	*maxDist = 0
	return vr.OverlayErrorNone
}

// Overlay19 restores the high-quality-overlay calls dropped after
// version 20. Every overlay renders through the same path now, so the
// designation is an identity no-op.
type Overlay19 struct {
	Overlay20
}

func (o *Overlay19) SetHighQualityOverlay(h vr.OverlayHandle) vr.OverlayError {
	return vr.OverlayErrorNone
}

func (o *Overlay19) GetHighQualityOverlay() vr.OverlayHandle {
	return vr.OverlayHandleInvalid
}

// Overlay16 restores controller-as-mouse interaction dropped after
// version 18. Input routing lives outside the engine; the call reports
// that no interaction happened.
type Overlay16 struct {
	Overlay19
}

func (o *Overlay16) HandleControllerOverlayInteractionAsMouse(h vr.OverlayHandle, deviceIndex uint32) bool {
	warnOnce("HandleControllerOverlayInteractionAsMouse is not implemented")
	return false
}

// Overlay13 restores direct access to the overlay's native texture,
// dropped after version 14. Swapchain images are owned by the runtime
// and never handed back out.
type Overlay13 struct {
	Overlay16
}

func (o *Overlay13) GetOverlayTexture(h vr.OverlayHandle, nativeHandle *uintptr, width, height *uint32) vr.OverlayError {
	warnOnce("GetOverlayTexture is not implemented")
	return vr.OverlayErrorRequestFailed
}

// Overlay7 restores per-overlay event polling dropped after version 13.
// There is no event queue; the poll always comes up empty.
type Overlay7 struct {
	Overlay13
}

func (o *Overlay7) PollNextOverlayEvent(h vr.OverlayHandle) bool {
	return false
}

// Version returns the adapter serving the requested overlay interface
// version, or false for versions that were never shipped. Versions that
// changed nothing relevant share the adapter of the nearest version below
// them that did.
func (o *Overlay) Version(version uint32) (any, bool) {
	switch version {
	case 27:
		return o, true
	case 25, 26:
		return &Overlay25{Overlay: o}, true
	case 21, 22, 23, 24:
		return &Overlay21{Overlay25: Overlay25{Overlay: o}}, true
	case 20:
		a := &Overlay20{}
		a.Overlay = o
		return a, true
	case 19:
		a := &Overlay19{}
		a.Overlay = o
		return a, true
	case 16, 17, 18:
		a := &Overlay16{}
		a.Overlay = o
		return a, true
	case 13, 14, 15:
		a := &Overlay13{}
		a.Overlay = o
		return a, true
	case 7, 8, 9, 10, 11, 12:
		a := &Overlay7{}
		a.Overlay = o
		return a, true
	}
	return nil, false
}
