// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import "errors"

// ErrColorBiasAttached is returned when a color scale/bias payload is
// attached to a layer that already carries one.
var ErrColorBiasAttached = errors.New("xr: layer already has a color scale/bias payload")

// CompositionLayerFlags control how the compositor blends a layer.
type CompositionLayerFlags uint32

const (
	// LayerFlagBlendTextureSourceAlpha blends using the texture's alpha.
	LayerFlagBlendTextureSourceAlpha CompositionLayerFlags = 1 << iota

	// LayerFlagUnpremultipliedAlpha marks texel color as not
	// premultiplied by alpha.
	LayerFlagUnpremultipliedAlpha
)

// EyeVisibility selects which eye(s) a layer is shown to.
type EyeVisibility int32

const (
	// EyeVisibilityBoth shows the layer to both eyes.
	EyeVisibilityBoth EyeVisibility = iota

	// EyeVisibilityLeft shows the layer to the left eye only.
	EyeVisibilityLeft

	// EyeVisibilityRight shows the layer to the right eye only.
	EyeVisibilityRight
)

// SwapchainSubImage selects the portion of a swapchain a layer samples.
type SwapchainSubImage struct {
	Swapchain       Swapchain
	ImageRect       Rect2Di
	ImageArrayIndex uint32
}

// Color4f is an RGBA color with float components.
type Color4f struct {
	R, G, B, A float32
}

// ColorScaleBias is the optional per-layer color transform payload.
// The compositor computes texel*Scale + Bias.
type ColorScaleBias struct {
	Scale Color4f
	Bias  Color4f
}

// LayerShape is one of LayerQuad, LayerCylinder, or LayerEquirect.
type LayerShape interface {
	layerShape()
}

// LayerQuad is a flat rectangle at Pose with extent Size in meters.
type LayerQuad struct {
	Pose Posef
	Size Extent2Df
}

// LayerCylinder is a section of an inward-facing cylinder. Pose is the
// cylinder's center axis point; CentralAngle subtends the visible arc.
type LayerCylinder struct {
	Pose         Posef
	Radius       float32
	CentralAngle float32
	AspectRatio  float32
}

// LayerEquirect is an inward-facing sphere section mapped from an
// equirectangular texture.
type LayerEquirect struct {
	Pose                   Posef
	Radius                 float32
	CentralHorizontalAngle float32
	UpperVerticalAngle     float32
	LowerVerticalAngle     float32
}

func (LayerQuad) layerShape()     {}
func (LayerCylinder) layerShape() {}
func (LayerEquirect) layerShape() {}

// CompositionLayer is one render-ready layer descriptor. The submission
// boundary serializes it into the runtime's native layer structure; the
// optional color scale/bias payload is an explicit field rather than a
// hand-spliced extension chain.
type CompositionLayer struct {
	Space    Space
	Flags    CompositionLayerFlags
	Eyes     EyeVisibility
	SubImage SwapchainSubImage
	Shape    LayerShape

	colorBias *ColorScaleBias
}

// SetAlpha attaches a color scale payload implementing overlay alpha.
// Exactly one payload may be attached per layer; a second attachment is a
// programming error and is rejected without overwriting the first.
func (l *CompositionLayer) SetAlpha(alpha float32) error {
	if l.colorBias != nil {
		return ErrColorBiasAttached
	}
	l.colorBias = &ColorScaleBias{
		Scale: Color4f{R: 1, G: 1, B: 1, A: alpha},
	}
	return nil
}

// ColorBias returns the attached payload, if any.
func (l *CompositionLayer) ColorBias() (ColorScaleBias, bool) {
	if l.colorBias == nil {
		return ColorScaleBias{}, false
	}
	return *l.colorBias, true
}
