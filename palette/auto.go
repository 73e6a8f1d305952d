package palette

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Auto extracts up to n representative colors from img.
func Auto(img image.Image, n int) (*Palette, error) {
	if n <= 0 {
		return nil, errors.Errorf("auto palette needs a positive color count, got %d", n)
	}
	q := quantize.MedianCutQuantizer{AddTransparent: false}
	p := q.Quantize(make(color.Palette, 0, n), img)
	for i, c := range p {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		nc.A = 0xFF
		p[i] = nc
	}
	logrus.WithFields(logrus.Fields{"requested": n, "found": len(p)}).Debug("extracted auto palette")
	return FromColors(p)
}

type centroid struct {
	r, g, b uint64
	n       uint64
}

// Cluster refines p with k-means over the opaque pixels of img, which is
// expected to be a small downsample of the source. Entries that attract no
// pixels keep their color.
func Cluster(p *Palette, img image.Image, iterations int) *Palette {
	colors := p.Colors()
	bounds := img.Bounds()
	for it := 0; it < iterations; it++ {
		current := &Palette{colors: colors}
		sums := make([]centroid, len(colors))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				if c.A < 128 {
					continue
				}
				i := current.Nearest(c.R, c.G, c.B)
				sums[i].r += uint64(c.R)
				sums[i].g += uint64(c.G)
				sums[i].b += uint64(c.B)
				sums[i].n++
			}
		}

		next := make([]color.NRGBA, len(colors))
		changed := false
		for i, s := range sums {
			next[i] = colors[i]
			if s.n == 0 {
				continue
			}
			next[i].R = uint8((s.r + s.n/2) / s.n)
			next[i].G = uint8((s.g + s.n/2) / s.n)
			next[i].B = uint8((s.b + s.n/2) / s.n)
			if next[i] != colors[i] {
				changed = true
			}
		}
		colors = next
		if !changed {
			logrus.WithField("iterations", it+1).Debug("palette clustering converged")
			break
		}
	}
	return &Palette{colors: colors}
}
