package main

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"sync"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Frame is an image buffer tagged with its global sequence index.
type Frame struct {
	Index  int64
	Buffer *ImageBuffer
}

// Name returns the output file name for the frame, zero-padded so a
// video encoder can consume the directory as a numbered sequence.
func (f Frame) Name(format string) string {
	return fmt.Sprintf("frame_%09d.%s", f.Index, extensionFor(format))
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// WriterPool persists frames concurrently with the driver computing the
// next one. File names are keyed by frame index, so write completion
// order does not matter. The first write failure cancels the pool and
// aborts the rest of the run.
type WriterPool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	config  *Config
	frames  chan Frame
	wg      sync.WaitGroup
	written atomic.Int64

	lock sync.Mutex
	errs *multierror.Error
}

func NewWriterPool(ctx context.Context, config *Config) (*WriterPool, error) {
	if err := os.MkdirAll(config.OutDir, os.ModePerm); err != nil {
		return nil, &WriteError{Path: config.OutDir, Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &WriterPool{
		ctx:    ctx,
		cancel: cancel,
		config: config,
		frames: make(chan Frame, config.WriteWorkers*2),
	}

	for i := 0; i < config.WriteWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p, nil
}

func (p *WriterPool) worker(id int) {
	defer p.wg.Done()

	for frame := range p.frames {
		// After a failure the channel is drained without writing.
		if p.ctx.Err() != nil {
			continue
		}

		if err := p.writeFrame(frame); err != nil {
			p.fail(err)
			continue
		}

		p.written.Inc()
		log.WithFields(log.Fields{
			"worker": id,
			"frame":  frame.Index,
		}).Debug("Frame written")
	}
}

func (p *WriterPool) writeFrame(frame Frame) error {
	img, err := frame.Buffer.NRGBA()
	if err != nil {
		return err
	}

	outPath := path.Join(p.config.OutDir, frame.Name(p.config.Format))
	file, err := os.Create(outPath)
	if err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	defer file.Close()

	if err := p.encode(file, img); err != nil {
		return &WriteError{Path: outPath, Err: err}
	}

	return nil
}

func (p *WriterPool) encode(w io.Writer, img *image.NRGBA) error {
	switch p.config.Format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: p.config.JPEGQuality})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("unknown output format %q", p.config.Format)
	}
}

func (p *WriterPool) fail(err error) {
	p.lock.Lock()
	p.errs = multierror.Append(p.errs, err)
	p.lock.Unlock()
	p.cancel()
}

// Submit hands a frame to the pool, blocking while the write queue is
// full. Once a write has failed every further Submit returns the
// pool's first error, so the driver stops producing frames.
func (p *WriterPool) Submit(frame Frame) error {
	select {
	case <-p.ctx.Done():
		return p.firstError()
	default:
	}

	select {
	case <-p.ctx.Done():
		return p.firstError()
	case p.frames <- frame:
		return nil
	}
}

func (p *WriterPool) firstError() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.errs != nil && len(p.errs.Errors) > 0 {
		return p.errs.Errors[0]
	}

	return p.ctx.Err()
}

// Written reports how many frames have been persisted so far.
func (p *WriterPool) Written() int64 {
	return p.written.Load()
}

// Close flushes the queue, stops the workers and returns every write
// error the pool accumulated.
func (p *WriterPool) Close() error {
	close(p.frames)
	p.wg.Wait()
	p.cancel()

	p.lock.Lock()
	defer p.lock.Unlock()
	return p.errs.ErrorOrNil()
}
