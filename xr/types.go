// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package xr defines the boundary to the host XR runtime: geometric types,
// the session/space/swapchain contract, runtime capability flags, and the
// composition-layer descriptors the per-frame builder emits.
package xr

import (
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/vrbridge/vr"
)

// Vector3f is a 3D position or direction in meters.
type Vector3f struct {
	X, Y, Z float32
}

// Quaternionf is a rotation quaternion in (x, y, z, w) component order.
type Quaternionf struct {
	X, Y, Z, W float32
}

// QuatIdent is the identity rotation.
var QuatIdent = Quaternionf{W: 1}

func (q Quaternionf) mgl() mgl.Quat {
	return mgl.Quat{W: q.W, V: mgl.Vec3{q.X, q.Y, q.Z}}
}

func quatFromMgl(q mgl.Quat) Quaternionf {
	return Quaternionf{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Normalized returns the unit quaternion with the same rotation.
// A zero quaternion normalizes to the identity.
func (q Quaternionf) Normalized() Quaternionf {
	m := q.mgl()
	if m.Len() == 0 {
		return QuatIdent
	}
	return quatFromMgl(m.Normalize())
}

// Rotate applies the rotation to v.
func (q Quaternionf) Rotate(v Vector3f) Vector3f {
	r := q.mgl().Rotate(mgl.Vec3{v.X, v.Y, v.Z})
	return Vector3f{X: r[0], Y: r[1], Z: r[2]}
}

// Posef is a position and orientation pair.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// PoseFromMatrix34 converts a legacy row-major 3x4 transform to a pose.
// Both conventions are right-handed with matching axes, so the conversion
// is a direct decomposition.
func PoseFromMatrix34(m vr.HmdMatrix34) Posef {
	rot := mgl.Mat4{
		m[0][0], m[1][0], m[2][0], 0,
		m[0][1], m[1][1], m[2][1], 0,
		m[0][2], m[1][2], m[2][2], 0,
		0, 0, 0, 1,
	}
	return Posef{
		Orientation: quatFromMgl(mgl.Mat4ToQuat(rot)),
		Position:    Vector3f{X: m[0][3], Y: m[1][3], Z: m[2][3]},
	}
}

// Matrix34 converts the pose back to the legacy row-major 3x4 form.
func (p Posef) Matrix34() vr.HmdMatrix34 {
	r := p.Orientation.mgl().Mat4()
	return vr.HmdMatrix34{
		{r[0], r[4], r[8], p.Position.X},
		{r[1], r[5], r[9], p.Position.Y},
		{r[2], r[6], r[10], p.Position.Z},
	}
}

// Extent2Di is an integer pixel extent.
type Extent2Di struct {
	Width, Height int32
}

// Extent2Df is a floating-point extent in meters.
type Extent2Df struct {
	Width, Height float32
}

// Offset2Di is an integer pixel offset.
type Offset2Di struct {
	X, Y int32
}

// Rect2Di is an integer pixel rectangle.
type Rect2Di struct {
	Offset Offset2Di
	Extent Extent2Di
}
