package main

import "fmt"

// DecodeError reports an input image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IncompatibleImageError reports a pair of buffers whose dimensions or
// channel layouts cannot be reconciled for blending.
type IncompatibleImageError struct {
	Reason string
}

func (e *IncompatibleImageError) Error() string {
	return "incompatible images: " + e.Reason
}

// InsufficientInputError reports a run started with fewer than two images.
type InsufficientInputError struct {
	Count int
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("need at least 2 images to interpolate, got %d", e.Count)
}

// WriteError reports a frame that could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
