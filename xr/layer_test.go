// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"errors"
	"testing"
)

func TestSetAlphaAttachesScalePayload(t *testing.T) {
	var layer CompositionLayer

	if _, ok := layer.ColorBias(); ok {
		t.Fatal("fresh layer reports a color bias payload")
	}

	if err := layer.SetAlpha(0.25); err != nil {
		t.Fatalf("SetAlpha: %v", err)
	}

	bias, ok := layer.ColorBias()
	if !ok {
		t.Fatal("payload missing after SetAlpha")
	}
	want := Color4f{R: 1, G: 1, B: 1, A: 0.25}
	if bias.Scale != want {
		t.Errorf("Scale = %+v, want %+v", bias.Scale, want)
	}
	if (bias.Bias != Color4f{}) {
		t.Errorf("Bias = %+v, want zero", bias.Bias)
	}
}

func TestSetAlphaTwiceRejected(t *testing.T) {
	var layer CompositionLayer

	if err := layer.SetAlpha(0.5); err != nil {
		t.Fatalf("first SetAlpha: %v", err)
	}
	err := layer.SetAlpha(0.75)
	if !errors.Is(err, ErrColorBiasAttached) {
		t.Fatalf("second SetAlpha error = %v, want ErrColorBiasAttached", err)
	}

	// The first payload must survive untouched.
	bias, ok := layer.ColorBias()
	if !ok || bias.Scale.A != 0.5 {
		t.Errorf("payload after rejected attach = %+v, %v; want A=0.5", bias, ok)
	}
}
