// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vrbridge implements the overlay and composition-layer engine of a
// VR runtime compatibility bridge: it exposes the legacy overlay client
// interface and translates it onto a modern XR runtime's composition
// primitives.
//
// The engine owns all overlay state (OverlayManager), binds overlays to GPU
// swapchains through pluggable graphics backends (backend package), builds
// the ordered per-frame layer list (Layers), and provides the internally
// managed 360° skybox (SetSkybox/ClearSkybox). Historical versions of the
// legacy interface are adapted onto the canonical operations by the compat
// package.
//
// # Collaborators
//
// The engine depends on two external contracts:
//
//   - xr.Session: the host runtime's session/space collaborator, providing
//     reference spaces, swapchain creation, and format negotiation.
//   - backend.Backend: one per graphics API, providing texture
//     introspection and swapchain image copies.
//
// # Concurrency
//
// Multiple goroutines may call into the engine concurrently. Two lock
// domains exist: the overlay registry lock and the per-session swapchain
// table lock. The registry lock is never held across GPU synchronization;
// the swapchain table lock is never held while walking the registry. When
// both are needed the registry is acquired first.
//
// # Logging
//
// vrbridge is silent by default. Call SetLogger to enable structured
// logging via log/slog.
package vrbridge
