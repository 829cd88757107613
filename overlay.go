// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"github.com/gogpu/vrbridge/backend"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// OverlayKind selects the layer shape an overlay renders as.
type OverlayKind int

const (
	// KindQuad is a flat rectangle (the default).
	KindQuad OverlayKind = iota

	// KindCurved is a cylinder section; curvature in [0,1] controls how
	// tightly the quad wraps.
	KindCurved

	// KindSphere is a full-surround equirect sphere; width becomes the
	// radius. Only the skybox creates sphere overlays.
	KindSphere
)

// OverlayTransform is an explicitly placed overlay pose: the tracking
// origin it is expressed in and the pose itself.
type OverlayTransform struct {
	Origin vr.TrackingOrigin
	Pose   xr.Posef
}

// defaultPose places an overlay half a meter directly ahead of the viewer.
// Used when no transform was ever set.
var defaultPose = xr.Posef{
	Orientation: xr.QuatIdent,
	Position:    xr.Vector3f{Z: -0.5},
}

// overlay is the per-overlay mutable state. All fields are guarded by the
// manager's registry lock.
type overlay struct {
	key  string
	name string

	visible   bool
	width     float32
	kind      OverlayKind
	curvature float32
	zOrder    int64
	bounds    vr.TextureBounds

	// alpha is the optional blend override; nil means fully opaque.
	// Only set while the runtime advertises color scale/bias.
	alpha *float32

	// transform is nil until the caller sets an absolute transform.
	transform *OverlayTransform

	// backend is bound on first texture submission and never replaced;
	// an overlay cannot switch graphics APIs.
	backend backend.Backend

	// rect is the pixel rectangle last written into the bound swapchain,
	// nil until the first submission completes.
	rect *xr.Rect2Di
}

func newOverlay(key, name string) overlay {
	return overlay{
		key:    key,
		name:   name,
		width:  1.0,
		kind:   KindQuad,
		bounds: vr.FullBounds,
	}
}

// isSkybox reports whether the overlay belongs to the internal skybox set.
func (o *overlay) isSkybox() bool { return o.zOrder == SkyboxZOrder }
