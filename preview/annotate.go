package preview

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/pixelroll/keymap"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

// Annotate adds a footer under img with a label below every C column.
func Annotate(img image.Image, tl Timeline, scale int) (image.Image, error) {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse label font")
	}
	size := float64(scale) * 2
	footer := int(size * 2)

	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy()+footer)
	dc.SetRGB(0.17, 0.17, 0.17)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	dc.SetRGBA(1, 1, 1, 0.8)
	for column := 0; column < tl.Width; column++ {
		key, res := tl.Mapping.Resolve(column)
		if res == keymap.Excluded || key%12 != 0 {
			continue
		}
		x := float64(column*scale) + float64(scale)/2
		dc.DrawStringAnchored(keymap.Name(key), x, float64(b.Dy())+float64(footer)/2, 0.5, 0.5)
	}
	return dc.Image(), nil
}
