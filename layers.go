// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"math"
	"sort"

	"github.com/gogpu/vrbridge/internal/handle"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// layerFlags are applied to every emitted layer: blend with the texture's
// alpha channel, which submitted overlay content does not premultiply.
const layerFlags = xr.LayerFlagBlendTextureSourceAlpha | xr.LayerFlagUnpremultipliedAlpha

// Layers builds the render-ready layer list for the current frame: one
// composition layer per visible overlay that has submitted content in
// this session, sorted ascending by draw order. Ties keep the overlays'
// enumeration order, and the returned slice is ready for per-frame
// submission to the compositor.
//
// Skybox layers are only included when renderSkybox is set; the scene
// application usually provides its own background.
func (m *OverlayManager) Layers(sd *SessionData, renderSkybox bool) []xr.CompositionLayer {
	// Snapshot the swapchain table first so the table lock is never
	// held while the registry is walked.
	sd.swapchains.mu.Lock()
	if !sd.swapchains.active {
		sd.swapchains.mu.Unlock()
		return nil
	}
	chains := make(map[vr.OverlayHandle]xr.Swapchain, len(sd.swapchains.entries))
	for h, data := range sd.swapchains.entries {
		chains[h] = data.swapchain
	}
	sd.swapchains.mu.Unlock()

	type ordered struct {
		zOrder int64
		layer  xr.CompositionLayer
	}
	var layers []ordered

	m.mu.RLock()
	m.overlays.Range(func(h handle.Handle, ov *overlay) bool {
		if !ov.visible {
			return true
		}
		if ov.isSkybox() && !renderSkybox {
			return true
		}
		if ov.rect == nil {
			// No texture submitted yet.
			return true
		}
		sc, ok := chains[vr.OverlayHandle(h)]
		if !ok {
			// Content was submitted in a different session.
			return true
		}

		origin := sd.CurrentOrigin()
		pose := defaultPose
		if ov.transform != nil {
			origin = ov.transform.Origin
			pose = ov.transform.Pose
		}

		layer := xr.CompositionLayer{
			Space: sd.SpaceForOrigin(origin),
			Flags: layerFlags,
			Eyes:  xr.EyeVisibilityBoth,
			SubImage: xr.SwapchainSubImage{
				Swapchain:       sc,
				ImageRect:       *ov.rect,
				ImageArrayIndex: 0,
			},
			Shape: layerShape(ov, pose),
		}
		if ov.alpha != nil {
			if err := layer.SetAlpha(*ov.alpha); err != nil {
				Logger().Error("attaching alpha payload", "name", ov.name, "err", err)
			}
		}

		layers = append(layers, ordered{zOrder: ov.zOrder, layer: layer})
		return true
	})
	m.mu.RUnlock()

	// Stable: equal draw orders keep enumeration order.
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].zOrder < layers[j].zOrder
	})

	out := make([]xr.CompositionLayer, len(layers))
	for i := range layers {
		out[i] = layers[i].layer
	}
	return out
}

// layerShape builds the shape descriptor for the overlay's kind.
func layerShape(ov *overlay, pose xr.Posef) xr.LayerShape {
	rect := ov.rect.Extent

	switch ov.kind {
	case KindCurved:
		if ov.curvature > 0 {
			return cylinderShape(ov, pose, rect)
		}
		// Zero curvature degenerates to a flat quad; a zero radius
		// must never reach the compositor.
		fallthrough

	case KindQuad:
		return xr.LayerQuad{
			Pose: pose,
			Size: xr.Extent2Df{
				Width:  ov.width,
				Height: float32(rect.Height) * ov.width / float32(rect.Width),
			},
		}

	case KindSphere:
		return xr.LayerEquirect{
			Pose:                   pose,
			Radius:                 ov.width,
			CentralHorizontalAngle: 2 * math.Pi,
			UpperVerticalAngle:     0.5 * math.Pi,
			LowerVerticalAngle:     -0.5 * math.Pi,
		}
	}
	return nil
}

// cylinderShape wraps the overlay onto an inward-facing cylinder.
// The caller's pose anchors the visible surface, but the runtime expects
// the cylinder's center, so the pose is pushed back along its local
// forward axis by the radius: the curve bows toward the viewer instead
// of pivoting around the anchor.
func cylinderShape(ov *overlay, pose xr.Posef, rect xr.Extent2Di) xr.LayerShape {
	radius := ov.width / (2 * math.Pi * ov.curvature)

	offset := pose.Orientation.Rotate(xr.Vector3f{Z: radius})
	center := xr.Vector3f{
		X: pose.Position.X + offset.X,
		Y: pose.Position.Y + offset.Y,
		Z: pose.Position.Z + offset.Z,
	}

	return xr.LayerCylinder{
		Pose: xr.Posef{
			Orientation: pose.Orientation,
			Position:    center,
		},
		Radius:       radius,
		CentralAngle: ov.width / radius,
		AspectRatio:  float32(rect.Height) / float32(rect.Width),
	}
}
