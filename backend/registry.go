// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/vrbridge/vr"
)

// Factory creates a fresh backend instance for one overlay binding.
type Factory func() (Backend, error)

// registry holds registered backend factories keyed by texture type.
var (
	registryMu sync.RWMutex
	backends   = make(map[vr.TextureType]Factory)
)

// Register registers a backend factory for a texture type.
// This is typically called from init() functions in backend packages.
// Registering a type that already has a factory replaces it.
func Register(api vr.TextureType, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[api] = factory
}

// Unregister removes a backend factory. This is useful for testing.
func Unregister(api vr.TextureType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, api)
}

// IsRegistered checks if a factory is registered for the texture type.
func IsRegistered(api vr.TextureType) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[api]
	return ok
}

// New creates a backend instance for the texture type.
func New(api vr.TextureType) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[api]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, api)
	}
	return factory()
}

// ForTexture creates a backend instance for the texture's declared type.
func ForTexture(tex *vr.Texture) (Backend, error) {
	return New(tex.Type)
}
