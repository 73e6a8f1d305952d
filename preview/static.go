package preview

import (
	"context"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Static draws every note in order on a single goroutine. On cancellation
// the partially drawn image is returned with the context error.
func Static(ctx context.Context, tl Timeline, scale int) (image.Image, error) {
	b := Bounds(tl.Width, tl.Height, scale)
	dc := gg.NewContext(b.Dx(), b.Dy())
	for _, n := range tl.Drawable() {
		if err := ctx.Err(); err != nil {
			return dc.Image(), err
		}
		r := NoteRect(n, tl.Height, scale)
		dc.SetColor(tl.color(n.Track))
		fillRect(dc, r)

		dc.SetColor(color.Black)
		for _, edge := range borders(r) {
			fillRect(dc, edge)
		}
	}
	return dc.Image(), nil
}

func fillRect(dc *gg.Context, r image.Rectangle) {
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Fill()
}

// borders are the four one pixel edges inside r.
func borders(r image.Rectangle) []image.Rectangle {
	return []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
}
