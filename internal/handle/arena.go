// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package handle

// Handle identifies a slot in an Arena. It packs a 32-bit slot index in the
// low word and a 32-bit generation in the high word. Generations start at 1,
// so a valid Handle is never zero and Zero can act as an "invalid" sentinel.
//
// A Handle remains valid until its slot is removed. Reusing the slot bumps
// the generation, so handles to removed values are detected rather than
// silently resolving to the new occupant.
type Handle uint64

// Zero is the invalid handle. No Arena operation ever returns it.
const Zero Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// slot holds one value together with its occupancy state.
type slot[T any] struct {
	value T

	// generation is incremented every time the slot is vacated.
	// Odd while occupied, even while free.
	generation uint32
	live       bool
}

// Arena is a slot-based store with generation-checked handles.
// Insert returns a stable Handle; Get and Remove reject handles whose
// generation no longer matches, catching use-after-remove.
//
// Arena is not safe for concurrent use; callers provide their own locking.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.generation++
		s.live = true
		return makeHandle(idx, s.generation)
	}
	a.slots = append(a.slots, slot[T]{value: v, generation: 1, live: true})
	return makeHandle(uint32(len(a.slots)-1), 1)
}

// Get returns a pointer to the value for h, or (nil, false) if h is stale
// or was never issued. The pointer is valid until the slot is removed.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	idx := h.index()
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[idx]
	if !s.live || s.generation != h.generation() {
		return nil, false
	}
	return &s.value, true
}

// Remove deletes the value for h and returns it.
// Returns (zero, false) if h is stale or was never issued.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	idx := h.index()
	if int(idx) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx]
	if !s.live || s.generation != h.generation() {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.generation++
	s.live = false
	a.free = append(a.free, idx)
	a.count--
	return v, true
}

// Len reports the number of live values.
func (a *Arena[T]) Len() int { return a.count }

// Range calls fn for every live value in slot order until fn returns false.
// Slot order matches insertion order as long as no slot has been reused.
// fn must not insert into or remove from the arena.
func (a *Arena[T]) Range(fn func(Handle, *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		if !fn(makeHandle(uint32(i), s.generation), &s.value) {
			return
		}
	}
}
