package main

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Decoders registered for image.Decode. Output is always
	// re-encoded by the frame writer, so decode-only formats
	// like webp are fine here.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageBuffer is a rectangular grid of 8-bit samples in row-major order.
// Invariant: len(Data) == Width*Height*Channels.
type ImageBuffer struct {
	Width    int
	Height   int
	Channels int
	Data     []uint8
}

func NewImageBuffer(width, height, channels int, data []uint8) (*ImageBuffer, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%dx%d", width, height, channels)
	}

	if len(data) != width*height*channels {
		return nil, fmt.Errorf("buffer data length %d does not match %dx%dx%d",
			len(data), width, height, channels)
	}

	return &ImageBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     data,
	}, nil
}

func newBlankBuffer(width, height, channels int) *ImageBuffer {
	return &ImageBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]uint8, width*height*channels),
	}
}

func (b *ImageBuffer) Clone() *ImageBuffer {
	data := make([]uint8, len(b.Data))
	copy(data, b.Data)
	return &ImageBuffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Data:     data,
	}
}

// SameShape reports whether two buffers can be blended pixel for pixel.
func (b *ImageBuffer) SameShape(other *ImageBuffer) bool {
	return b.Width == other.Width &&
		b.Height == other.Height &&
		b.Channels == other.Channels
}

// NRGBA converts the buffer to a stdlib image for encoding or resampling.
// 1-channel buffers are replicated to gray RGB, 3-channel buffers get an
// opaque alpha.
func (b *ImageBuffer) NRGBA() (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))

	switch b.Channels {
	case 4:
		for y := 0; y < b.Height; y++ {
			src := b.Data[y*b.Width*4 : (y+1)*b.Width*4]
			dst := img.Pix[y*img.Stride : y*img.Stride+b.Width*4]
			copy(dst, src)
		}
	case 3:
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				s := (y*b.Width + x) * 3
				d := y*img.Stride + x*4
				img.Pix[d] = b.Data[s]
				img.Pix[d+1] = b.Data[s+1]
				img.Pix[d+2] = b.Data[s+2]
				img.Pix[d+3] = 0xff
			}
		}
	case 1:
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				v := b.Data[y*b.Width+x]
				d := y*img.Stride + x*4
				img.Pix[d] = v
				img.Pix[d+1] = v
				img.Pix[d+2] = v
				img.Pix[d+3] = 0xff
			}
		}
	default:
		return nil, &IncompatibleImageError{
			Reason: fmt.Sprintf("cannot represent a %d-channel buffer as NRGBA", b.Channels),
		}
	}

	return img, nil
}

func bufferFromNRGBA(img *image.NRGBA) *ImageBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf := newBlankBuffer(width, height, 4)
	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		copy(buf.Data[y*width*4:(y+1)*width*4], src)
	}

	return buf
}

// LoadImage decodes the file at path into a 4-channel buffer.
// Each input path is loaded at most once per run.
func LoadImage(path string) (*ImageBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		return bufferFromNRGBA(nrgba), nil
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return bufferFromNRGBA(nrgba), nil
}
