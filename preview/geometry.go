// Package preview renders a conversion result as a piano roll image.
package preview

import (
	"image"
	"image/color"

	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/notes"
)

// Timeline is everything needed to draw the notes of one conversion.
type Timeline struct {
	Buffers []model.EventBuffer
	Mapping keymap.Mapping
	Width   int
	Height  int
	// display color per track
	Colors []color.NRGBA
}

type DrawableNote struct {
	Track  int
	Column int
	Note   model.Note
}

// Drawable lists the notes that land on a column, in track order.
func (tl Timeline) Drawable() []DrawableNote {
	var res []DrawableNote
	for _, n := range notes.Collect(notes.All(tl.Buffers)) {
		column, ok := tl.Mapping.Column(n.Key)
		if !ok || column >= tl.Width || n.Length == 0 {
			continue
		}
		res = append(res, DrawableNote{Track: n.Track, Column: column, Note: n})
	}
	return res
}

func (tl Timeline) color(track int) color.NRGBA {
	if track < len(tl.Colors) {
		return tl.Colors[track]
	}
	return color.NRGBA{A: 0xFF}
}

// Bounds is the canvas size, one extra pixel closes the last borders.
func Bounds(width, height, scale int) image.Rectangle {
	return image.Rect(0, 0, width*scale+1, height*scale+1)
}

// NoteRect is the area covered by a note. Time runs upward.
func NoteRect(n DrawableNote, height, scale int) image.Rectangle {
	x0 := n.Column * scale
	y0 := height*scale - int(n.Note.End())*scale
	return image.Rect(x0, y0, x0+scale, y0+int(n.Note.Length)*scale)
}

// ScaleFor picks the interactive scale from the number of rows.
func ScaleFor(height int) int {
	switch {
	case height > 7680:
		return 4
	case height > 2160:
		return 6
	}
	return 8
}
