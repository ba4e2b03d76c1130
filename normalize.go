package main

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Normalizer reconciles a pair of buffers so pixel-to-pixel blending is
// well-defined. The target dimensions are always those of the first buffer
// of the pair, so normalization is deterministic.
type Normalizer struct {
	scaler draw.Scaler
}

func NewNormalizer(method string) (*Normalizer, error) {
	switch method {
	case "nearest":
		return &Normalizer{scaler: draw.NearestNeighbor}, nil
	case "bilinear":
		return &Normalizer{scaler: draw.BiLinear}, nil
	case "catmullrom":
		return &Normalizer{scaler: draw.CatmullRom}, nil
	default:
		return nil, fmt.Errorf("unknown resample method %q", method)
	}
}

// Pair returns the two buffers with matching width, height and channel
// count. Buffers that already match pass through untouched. Mismatched
// pairs are coerced to 4 channels and the second buffer is resampled to
// the first buffer's dimensions.
func (n *Normalizer) Pair(a, b *ImageBuffer) (*ImageBuffer, *ImageBuffer, error) {
	if a.SameShape(b) {
		return a, b, nil
	}

	na, err := a.NRGBA()
	if err != nil {
		return nil, nil, err
	}

	nb, err := b.NRGBA()
	if err != nil {
		return nil, nil, err
	}

	if a.Width != b.Width || a.Height != b.Height {
		resized := image.NewNRGBA(image.Rect(0, 0, a.Width, a.Height))
		n.scaler.Scale(resized, resized.Bounds(), nb, nb.Bounds(), draw.Src, nil)
		nb = resized
	}

	return bufferFromNRGBA(na), bufferFromNRGBA(nb), nil
}
