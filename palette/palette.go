// Package palette holds the track palette: nearest color lookup, parsing,
// automatic extraction and the colors used to draw each track.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrEmpty = errors.New("palette must contain at least one color")

// Palette is fixed at construction, index i is track i.
type Palette struct {
	colors []color.NRGBA
}

func New(colors []color.NRGBA) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmpty
	}
	c := make([]color.NRGBA, len(colors))
	copy(c, colors)
	return &Palette{colors: c}, nil
}

func FromColors(colors color.Palette) (*Palette, error) {
	res := make([]color.NRGBA, 0, len(colors))
	for _, c := range colors {
		res = append(res, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return New(res)
}

func (p *Palette) Len() int {
	return len(p.colors)
}

func (p *Palette) At(i int) color.NRGBA {
	return p.colors[i]
}

func (p *Palette) Colors() []color.NRGBA {
	res := make([]color.NRGBA, len(p.colors))
	copy(res, p.colors)
	return res
}

// Nearest returns the index with the smallest squared RGB distance. Ties go
// to the lowest index.
func (p *Palette) Nearest(r, g, b uint8) int {
	best := 0
	smallest := distance(p.colors[0], r, g, b)
	for i := 1; i < len(p.colors); i++ {
		d := distance(p.colors[i], r, g, b)
		if d < smallest {
			smallest = d
			best = i
		}
	}
	return best
}

func distance(c color.NRGBA, r, g, b uint8) int {
	dr := int(c.R) - int(r)
	dg := int(c.G) - int(g)
	db := int(c.B) - int(b)
	return dr*dr + dg*dg + db*db
}

// ParseHex reads a 6 digit RGB color, the leading '#' is optional.
func ParseHex(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, errors.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid hex color %q", hex)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func Parse(hexes []string) (*Palette, error) {
	colors := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return New(colors)
}

func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
