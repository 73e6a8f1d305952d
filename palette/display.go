package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// DisplayColor is the color a track is drawn with. With random set it is a
// pseudo-random fully saturated color that only depends on track and seed.
func DisplayColor(p *Palette, track int, random bool, seed int) color.NRGBA {
	if !random {
		return p.At(track)
	}
	return RandomColor(track, seed)
}

func RandomColor(track int, seed int) color.NRGBA {
	rnd := rand.New(rand.NewSource(int64(track + seed*256)))
	r, g, b := colorful.Hsv(rnd.Float64()*360, 1, 0.5).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

// DisplayColors resolves the draw color of every track up front.
func DisplayColors(p *Palette, random bool, seed int) []color.NRGBA {
	res := make([]color.NRGBA, p.Len())
	for i := range res {
		res[i] = DisplayColor(p, i, random, seed)
	}
	return res
}
