package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestNormalizerPassThrough(t *testing.T) {
	n, err := NewNormalizer("bilinear")
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}

	a := uniformBuffer(t, 4, 4, 1, 2, 3, 255)
	b := uniformBuffer(t, 4, 4, 4, 5, 6, 255)

	na, nb, err := n.Pair(a, b)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	if na != a || nb != b {
		t.Fatal("matching buffers should pass through unchanged")
	}
}

func TestNormalizerResamplesToFirstDimensions(t *testing.T) {
	n, err := NewNormalizer("nearest")
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}

	a := uniformBuffer(t, 4, 6, 1, 2, 3, 255)
	b := uniformBuffer(t, 2, 2, 9, 8, 7, 255)

	na, nb, err := n.Pair(a, b)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	if !na.SameShape(nb) {
		t.Fatal("normalized pair must share a shape")
	}

	if nb.Width != 4 || nb.Height != 6 {
		t.Fatalf("target dimensions must come from the first buffer, got %dx%d", nb.Width, nb.Height)
	}

	// A uniform image stays uniform under any resampling.
	want := uniformBuffer(t, 4, 6, 9, 8, 7, 255)
	if !bytes.Equal(nb.Data, want.Data) {
		t.Fatal("uniform image changed under resampling")
	}
}

func TestNormalizerCoercesChannels(t *testing.T) {
	n, err := NewNormalizer("bilinear")
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}

	a := uniformBuffer(t, 2, 2, 10, 20, 30)      // RGB
	b := uniformBuffer(t, 2, 2, 40, 50, 60, 255) // RGBA

	na, nb, err := n.Pair(a, b)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	if na.Channels != 4 || nb.Channels != 4 {
		t.Fatalf("expected both buffers coerced to 4 channels, got %d and %d", na.Channels, nb.Channels)
	}

	if na.Data[3] != 255 {
		t.Fatalf("coerced alpha should be opaque, got %d", na.Data[3])
	}
}

func TestNormalizerIncompatibleChannels(t *testing.T) {
	n, err := NewNormalizer("bilinear")
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}

	a := uniformBuffer(t, 2, 2, 1, 2) // no known color layout
	b := uniformBuffer(t, 2, 2, 1, 2, 3, 255)

	_, _, err = n.Pair(a, b)
	var incompatible *IncompatibleImageError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleImageError, got %v", err)
	}
}

func TestNewNormalizerUnknownMethod(t *testing.T) {
	if _, err := NewNormalizer("lanczos"); err == nil {
		t.Fatal("expected error for unknown resample method")
	}
}
