// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// SkyboxZOrder is the reserved draw-order sentinel for skybox layers.
// Caller overlays are only allowed to use values ≥ 0, so the skybox
// always sorts behind user content.
const SkyboxZOrder int64 = -1

// skyboxDistance is how far skybox geometry is placed from the viewer.
// Head position is not followed, so it must be large enough that the
// user never reaches the boundary.
const skyboxDistance float32 = 500.0

// ErrSkyboxTextureCount is returned when SetSkybox receives a texture
// count other than 1, 2, or 6.
var ErrSkyboxTextureCount = errors.New("vrbridge: skybox needs 1, 2, or 6 textures")

// skyboxFacePoses are the fixed cube-face placements for the six-texture
// skybox, in front/back/left/right/up/down order. Each face sits at
// skyboxDistance along one axis with the orientation that turns the
// quad's local +Z toward the viewer (the 180° rotations also keep the
// face textures upright).
var skyboxFacePoses = [6]xr.Posef{
	{ // front
		Position:    xr.Vector3f{Z: -skyboxDistance},
		Orientation: xr.Quaternionf{X: 0, Y: 0, Z: 1, W: 0},
	},
	{ // back
		Position:    xr.Vector3f{Z: skyboxDistance},
		Orientation: xr.Quaternionf{X: 1, Y: 0, Z: 0, W: 0},
	},
	{ // left
		Position:    xr.Vector3f{X: -skyboxDistance},
		Orientation: xr.Quaternionf{X: invSqrt2, Y: 0, Z: invSqrt2, W: 0},
	},
	{ // right
		Position:    xr.Vector3f{X: skyboxDistance},
		Orientation: xr.Quaternionf{X: -invSqrt2, Y: 0, Z: invSqrt2, W: 0},
	},
	{ // up
		Position:    xr.Vector3f{Y: skyboxDistance},
		Orientation: xr.Quaternionf{X: 0, Y: -invSqrt2, Z: invSqrt2, W: 0},
	},
	{ // down
		Position:    xr.Vector3f{Y: -skyboxDistance},
		Orientation: xr.Quaternionf{X: 0, Y: invSqrt2, Z: invSqrt2, W: 0},
	},
}

const invSqrt2 = float32(math.Sqrt2 / 2)

// SetSkybox replaces the 360° background. One or two textures build a
// single equirect sphere from the first texture (a second texture, meant
// for per-eye backgrounds, is ignored); six textures build a cube of
// quads in front/back/left/right/up/down order. Any other count is a
// caller contract violation. The sphere form needs equirect layer
// support from the runtime; without it the call is a warn-once no-op.
//
// The previous skybox is always torn down first, so SetSkybox is
// idempotent. Skybox overlays are internal: they never appear in the key
// lookup index.
func (m *OverlayManager) SetSkybox(sd *SessionData, textures []vr.Texture) error {
	m.ClearSkybox()

	type pending struct {
		h   vr.OverlayHandle
		tex vr.Texture
	}
	var created []pending

	switch len(textures) {
	case 1, 2:
		if !m.caps.EquirectLayers {
			warnOnce("cannot set skybox: runtime lacks equirect layer support")
			return nil
		}
		m.mu.Lock()
		ov := newOverlay("__vrbridge_skybox", "__vrbridge_skybox")
		ov.visible = true
		ov.width = skyboxDistance // equirect width is the sphere radius
		ov.kind = KindSphere
		ov.zOrder = SkyboxZOrder
		h := vr.OverlayHandle(m.overlays.Insert(ov))
		m.skybox = append(m.skybox, h)
		m.mu.Unlock()

		created = append(created, pending{h: h, tex: textures[0]})

	case 6:
		m.mu.Lock()
		for i := range textures {
			name := fmt.Sprintf("__vrbridge_skybox_%d", i)
			ov := newOverlay(name, name)
			ov.visible = true
			ov.width = skyboxDistance * 2
			ov.kind = KindQuad
			ov.zOrder = SkyboxZOrder
			ov.transform = &OverlayTransform{
				Origin: vr.TrackingOriginStanding,
				Pose:   skyboxFacePoses[i],
			}
			h := vr.OverlayHandle(m.overlays.Insert(ov))
			m.skybox = append(m.skybox, h)
			created = append(created, pending{h: h, tex: textures[i]})
		}
		m.mu.Unlock()

	default:
		return fmt.Errorf("%w: got %d", ErrSkyboxTextureCount, len(textures))
	}

	var firstErr error
	for _, p := range created {
		tex := p.tex
		if status := m.SetOverlayTexture(p.h, sd, &tex); status != vr.OverlayErrorNone && firstErr == nil {
			firstErr = fmt.Errorf("vrbridge: binding skybox texture: %s", status)
		}
	}
	return firstErr
}

// ClearSkybox destroys every overlay in the skybox set.
func (m *OverlayManager) ClearSkybox() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range m.skybox {
		m.destroyLocked(h)
	}
	m.skybox = m.skybox[:0]
}
