// Package imaging resizes decoded images to the conversion grid.
package imaging

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/util"
	"github.com/pkg/errors"
)

type Algorithm string

const (
	Box     Algorithm = "box"
	Nearest Algorithm = "nearest"
	Linear  Algorithm = "linear"
	Cubic   Algorithm = "cubic"
	Lanczos Algorithm = "lanczos"
)

var resamplings = map[Algorithm]gift.Resampling{
	Box:     gift.BoxResampling,
	Nearest: gift.NearestNeighborResampling,
	Linear:  gift.LinearResampling,
	Cubic:   gift.CubicResampling,
	Lanczos: gift.LanczosResampling,
}

func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(name)
	if _, ok := resamplings[a]; !ok {
		return "", errors.Errorf("unknown resize algorithm %q", name)
	}
	return a, nil
}

// Resize returns a width x height copy of img. When the size already matches
// the pixels are copied untouched.
func Resize(img image.Image, width, height int, alg Algorithm) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid target size %dx%d", width, height)
	}
	r, ok := resamplings[alg]
	if !ok {
		return nil, errors.Errorf("unknown resize algorithm %q", alg)
	}
	b := img.Bounds()
	g := gift.New()
	if b.Dx() != width || b.Dy() != height {
		g.Add(gift.Resize(width, height, r))
	}
	out := g.Bounds(b)
	dst := image.NewNRGBA(image.Rect(0, 0, out.Dx(), out.Dy()))
	g.Draw(dst, img)
	return dst, nil
}

// TargetHeight picks the number of rows to scan for a given column count.
func TargetHeight(mode string, width int, src image.Rectangle, custom int) (int, error) {
	switch mode {
	case model.HeightSameAsWidth, "":
		return width, nil
	case model.HeightOriginal:
		return src.Dy(), nil
	case model.HeightCustom:
		if custom <= 0 {
			return 0, errors.Errorf("custom height must be positive, got %d", custom)
		}
		return custom, nil
	case model.HeightAspect:
		if src.Dx() == 0 {
			return 0, errors.Errorf("source image has no width")
		}
		return util.Max((src.Dy()*width+src.Dx()/2)/src.Dx(), 1), nil
	}
	return 0, errors.Errorf("unknown height mode %q", mode)
}
