// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vrbridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vrbridge/backend"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

// Submission errors.
var (
	// ErrBackendMismatch is returned when a texture of a different
	// graphics API is submitted to an overlay (or session) already
	// bound to another API.
	ErrBackendMismatch = errors.New("vrbridge: texture belongs to a different graphics API than the existing binding")

	// ErrEnumerateImages is returned when a freshly created swapchain
	// yields no images. There is nothing to render into; the submission
	// cannot proceed.
	ErrEnumerateImages = errors.New("vrbridge: could not enumerate swapchain images")
)

// SessionData bundles the host runtime session with the per-session
// swapchain table this engine owns. Create one per runtime session and
// pass it to texture submission, skybox, and layer building.
type SessionData struct {
	xr.Session

	swapchains swapchainTable
}

// NewSessionData wraps a runtime session.
func NewSessionData(s xr.Session) *SessionData {
	return &SessionData{Session: s}
}

// Close destroys every swapchain the session accumulated. The session
// must not be used for further submissions.
func (sd *SessionData) Close() error {
	sd.swapchains.mu.Lock()
	defer sd.swapchains.mu.Unlock()

	var firstErr error
	for h, data := range sd.swapchains.entries {
		if err := data.swapchain.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(sd.swapchains.entries, h)
	}
	sd.swapchains.active = false
	return firstErr
}

// swapchainData is one overlay's swapchain resource: the swapchain, the
// info it was created with, and the format that was originally required
// before runtime negotiation. Reuse checks compare against the initial
// format so a negotiated (e.g. sRGB-promoted) format does not force a
// recreate on every submission.
type swapchainData struct {
	swapchain     xr.Swapchain
	info          xr.SwapchainCreateInfo
	initialFormat gputypes.TextureFormat
}

// swapchainTable is the per-session map from overlay handle to swapchain
// resource. The whole session is pinned to a single graphics API by the
// first submitted texture; the tag is checked before every access.
//
// The table lock is held only around lookup/creation and the GPU
// acquire/wait/copy/release cycle, never while walking the overlay
// registry. Lock order is always registry before table.
type swapchainTable struct {
	mu      sync.Mutex
	api     vr.TextureType
	active  bool
	entries map[vr.OverlayHandle]*swapchainData
}

// isUsableSwapchain reports whether an existing resource still satisfies
// the requirements of a new submission. The stored creation info carries
// the negotiated format, so the comparison uses the originally required
// format instead.
func isUsableSwapchain(info xr.SwapchainCreateInfo, initialFormat gputypes.TextureFormat, required xr.SwapchainCreateInfo) bool {
	stored := info
	stored.Format = initialFormat
	return stored == required
}

// SetOverlayTexture submits a texture to the overlay: it binds the
// graphics backend on first submission, creates or reuses the swapchain
// whose requirements the texture implies, copies the texture content into
// the next swapchain image, and records the written pixel rectangle for
// the layer builder.
//
// Submitting a texture whose API tag differs from the overlay's existing
// binding fails with InvalidTexture; an overlay cannot switch graphics
// APIs.
func (m *OverlayManager) SetOverlayTexture(h vr.OverlayHandle, sd *SessionData, tex *vr.Texture) vr.OverlayError {
	if tex == nil {
		return vr.OverlayErrorInvalidParameter
	}

	// Registry lock: bind the backend and snapshot submission inputs.
	m.mu.Lock()
	ov, ok := m.get(h)
	if !ok {
		m.mu.Unlock()
		return vr.OverlayErrorUnknownOverlay
	}
	if ov.backend == nil {
		b, err := backend.ForTexture(tex)
		if err != nil {
			m.mu.Unlock()
			Logger().Error("no backend for submitted texture", "name", ov.name, "type", tex.Type, "err", err)
			return vr.OverlayErrorInvalidTexture
		}
		ov.backend = b
	} else if ov.backend.API() != tex.Type {
		name := ov.name
		bound := ov.backend.API()
		m.mu.Unlock()
		Logger().Error("texture API conflicts with overlay's existing binding",
			"name", name, "bound", bound, "submitted", tex.Type, "err", ErrBackendMismatch)
		return vr.OverlayErrorInvalidTexture
	}
	be := ov.backend
	bounds := ov.bounds
	name := ov.name
	m.mu.Unlock()

	// Table lock: resource lookup/creation and the GPU cycle. The
	// registry stays unlocked so property access is never stuck behind
	// swapchain synchronization.
	rect, err := sd.swapchains.submit(h, be, sd.Session, tex, bounds)
	if err != nil {
		Logger().Error("texture submission failed", "name", name, "err", err)
		if errors.Is(err, ErrBackendMismatch) {
			return vr.OverlayErrorInvalidTexture
		}
		return vr.OverlayErrorRequestFailed
	}

	// Registry lock again: publish the resolved rect. The overlay may
	// have been destroyed while the copy ran; its swapchain entry is
	// unreachable then and dies with the session.
	m.mu.Lock()
	if ov, ok := m.get(h); ok {
		r := rect
		ov.rect = &r
	}
	m.mu.Unlock()

	Logger().Debug("set overlay texture", "name", name, "rect", rect)
	return vr.OverlayErrorNone
}

// submit runs the texture submission under the table lock.
func (t *swapchainTable) submit(h vr.OverlayHandle, be backend.Backend, session xr.Session, tex *vr.Texture, bounds vr.TextureBounds) (xr.Rect2Di, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		t.api = be.API()
		t.active = true
		if t.entries == nil {
			t.entries = make(map[vr.OverlayHandle]*swapchainData)
		}
	} else if t.api != be.API() {
		return xr.Rect2Di{}, fmt.Errorf("%w: session uses %s, texture is %s",
			ErrBackendMismatch, t.api, be.API())
	}

	required, err := be.SwapchainInfo(tex, bounds)
	if err != nil {
		return xr.Rect2Di{}, err
	}

	create := func() (*swapchainData, error) {
		info := required
		initialFormat := info.Format
		session.NegotiateFormat(&info)

		sc, err := session.CreateSwapchain(&info)
		if err != nil {
			return nil, fmt.Errorf("creating swapchain: %w", err)
		}
		images, err := sc.EnumerateImages()
		if err != nil || len(images) == 0 {
			sc.Destroy()
			if err == nil {
				err = ErrEnumerateImages
			}
			return nil, fmt.Errorf("%w: %v", ErrEnumerateImages, err)
		}
		if err := be.StoreImages(images, info.Format); err != nil {
			sc.Destroy()
			return nil, err
		}
		return &swapchainData{swapchain: sc, info: info, initialFormat: initialFormat}, nil
	}

	data := t.entries[h]
	if data == nil {
		if data, err = create(); err != nil {
			return xr.Rect2Di{}, err
		}
		t.entries[h] = data
	} else if !isUsableSwapchain(data.info, data.initialFormat, required) {
		data.swapchain.Destroy()
		delete(t.entries, h)
		if data, err = create(); err != nil {
			return xr.Rect2Di{}, err
		}
		t.entries[h] = data
	}

	extent, err := copyCycle(data.swapchain, be, tex, bounds)
	if err != nil {
		// One teardown-and-recreate attempt before failing upward; a
		// stale swapchain is the most common cause of cycle faults.
		Logger().Warn("swapchain cycle failed, recreating once", "err", err)
		data.swapchain.Destroy()
		delete(t.entries, h)
		if data, err = create(); err != nil {
			return xr.Rect2Di{}, err
		}
		t.entries[h] = data
		if extent, err = copyCycle(data.swapchain, be, tex, bounds); err != nil {
			return xr.Rect2Di{}, err
		}
	}

	return xr.Rect2Di{Extent: extent}, nil
}

// copyCycle runs one acquire/wait/copy/release pass against the swapchain.
func copyCycle(sc xr.Swapchain, be backend.Backend, tex *vr.Texture, bounds vr.TextureBounds) (xr.Extent2Di, error) {
	idx, err := sc.Acquire()
	if err != nil {
		return xr.Extent2Di{}, fmt.Errorf("acquiring swapchain image: %w", err)
	}
	// The wait is unbounded: a healthy runtime always delivers the
	// image, and the legacy interface has no way to report "try later".
	if err := sc.Wait(xr.InfiniteDuration); err != nil {
		return xr.Extent2Di{}, fmt.Errorf("waiting for swapchain image: %w", err)
	}
	extent, err := be.CopyToSwapchain(tex, bounds, idx)
	if err != nil {
		sc.Release()
		return xr.Extent2Di{}, err
	}
	if err := sc.Release(); err != nil {
		return xr.Extent2Di{}, fmt.Errorf("releasing swapchain image: %w", err)
	}
	return extent, nil
}
