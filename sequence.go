package main

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Transition is the interpolation span between two consecutive input
// images: FrameCount intermediate frames are synthesized between them.
type Transition struct {
	Index      int
	From       string
	To         string
	FrameCount int
}

// Run walks the input list pairwise and drives the interpolator across
// each transition. It owns the global frame counter, so indices stay
// contiguous and strictly increasing across the whole sequence.
type Run struct {
	config       *Config
	logger       *log.Entry
	paths        []string
	normalizer   *Normalizer
	interpolator *Interpolator
	nextIndex    int64
}

func NewRun(config *Config, logger *log.Entry, paths []string) (*Run, error) {
	if len(paths) < 2 {
		return nil, &InsufficientInputError{Count: len(paths)}
	}

	normalizer, err := NewNormalizer(config.Resample)
	if err != nil {
		return nil, err
	}

	interpolator, err := NewInterpolator(config.Workers, config.Blend, config.Easing)
	if err != nil {
		return nil, err
	}

	return &Run{
		config:       config,
		logger:       logger,
		paths:        paths,
		normalizer:   normalizer,
		interpolator: interpolator,
	}, nil
}

// Execute produces every frame of the run and reports how many were
// written. Any failure aborts the remaining transitions; the first
// error is returned.
func (r *Run) Execute(ctx context.Context) (int64, error) {
	writer, err := NewWriterPool(ctx, r.config)
	if err != nil {
		return 0, err
	}

	processErr := r.process(writer)
	closeErr := writer.Close()
	if processErr != nil {
		return writer.Written(), processErr
	}

	return writer.Written(), closeErr
}

func (r *Run) process(writer *WriterPool) error {
	start, err := LoadImage(r.paths[0])
	if err != nil {
		return err
	}

	n := *r.config.FrameCount
	for k := 0; k < len(r.paths)-1; k++ {
		transition := Transition{
			Index:      k,
			From:       r.paths[k],
			To:         r.paths[k+1],
			FrameCount: n,
		}
		r.logger.WithFields(StructFields(transition)).Info("Processing transition")

		end, err := LoadImage(transition.To)
		if err != nil {
			return err
		}

		start, end, err = r.normalizer.Pair(start, end)
		if err != nil {
			return err
		}

		// The start image is emitted only for the first transition;
		// shared boundaries are emitted exactly once globally.
		if k == 0 {
			if err := r.emit(writer, start); err != nil {
				return err
			}
		}

		for i := 1; i <= n; i++ {
			t := float64(i) / float64(n+1)
			frame, err := r.interpolator.Interpolate(start, end, t)
			if err != nil {
				return err
			}

			if err := r.emit(writer, frame); err != nil {
				return err
			}
		}

		if err := r.emit(writer, end); err != nil {
			return err
		}

		// The normalized end buffer seeds the next transition, so the
		// shared image is never loaded or normalized twice.
		start = end
	}

	return nil
}

func (r *Run) emit(writer *WriterPool, buf *ImageBuffer) error {
	if err := writer.Submit(Frame{Index: r.nextIndex, Buffer: buf}); err != nil {
		return err
	}

	r.nextIndex++
	return nil
}
