package main

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path"
	"testing"

	log "github.com/sirupsen/logrus"
)

// uniformBuffer builds a buffer where every pixel carries the given
// channel samples.
func uniformBuffer(t *testing.T, width, height int, samples ...uint8) *ImageBuffer {
	t.Helper()

	channels := len(samples)
	data := make([]uint8, width*height*channels)
	for i := 0; i < width*height; i++ {
		copy(data[i*channels:(i+1)*channels], samples)
	}

	buf, err := NewImageBuffer(width, height, channels, data)
	if err != nil {
		t.Fatalf("NewImageBuffer failed: %v", err)
	}

	return buf
}

// writeTestPNG writes a uniform opaque PNG fixture and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int, c color.NRGBA) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	p := path.Join(dir, name)
	file, err := os.Create(p)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", p, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encoding fixture %s: %v", p, err)
	}

	return p
}

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

// testConfig fills defaults the way the real config path does, then pins
// the values the tests rely on for pixel-exact expectations.
func testConfig(t *testing.T, outDir string, frameCount int) *Config {
	t.Helper()

	config := Config{
		OutDir:     outDir,
		FrameCount: &frameCount,
		Resample:   "nearest",
		Workers:    2,
		LogPath:    t.TempDir(),
	}
	if err := verifyConfig(&config); err != nil {
		t.Fatalf("verifyConfig failed: %v", err)
	}

	return &config
}
