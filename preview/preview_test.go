package preview

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func timeline() Timeline {
	return Timeline{
		Buffers: []model.EventBuffer{
			{
				model.NoteOn(0, 60, 1),
				model.NoteOff(3, 60),
				model.NoteOn(40, 61, 1),
				model.NoteOff(10, 61),
			},
			{
				model.NoteOn(2, 62, 1),
				model.NoteOn(0, 63, 1),
				model.NoteOff(8, 62),
				model.NoteOff(60, 63),
			},
		},
		Mapping: keymap.NewFixed(60, 63, keymap.AllKeys),
		Width:   4,
		Height:  80,
		Colors:  []color.NRGBA{red, blue},
	}
}

func toRGBA(img image.Image) *image.RGBA {
	res := image.NewRGBA(img.Bounds())
	draw.Draw(res, res.Bounds(), img, img.Bounds().Min, draw.Src)
	return res
}

func TestNoteRect(t *testing.T) {
	n := DrawableNote{Column: 2, Note: model.Note{Start: 3, Length: 4}}
	assert.Equal(t, image.Rect(10, 15, 15, 35), NoteRect(n, 10, 5))
	assert.Equal(t, image.Rect(0, 0, 51, 51), Bounds(10, 10, 5))
}

func TestScaleFor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(8, ScaleFor(100))
	assert.Equal(8, ScaleFor(2160))
	assert.Equal(6, ScaleFor(2161))
	assert.Equal(6, ScaleFor(7680))
	assert.Equal(4, ScaleFor(7681))
}

func TestDrawableSkipsUnmappedKeys(t *testing.T) {
	tl := timeline()
	tl.Mapping = keymap.NewFixed(60, 63, keymap.WhiteKeys)
	for _, n := range tl.Drawable() {
		assert.False(t, n.Note.Key == 61 || n.Note.Key == 63)
	}
	assert.Len(t, tl.Drawable(), 2)
}

func TestStaticDrawsFillAndBorder(t *testing.T) {
	img, err := Static(context.Background(), timeline(), 5)
	require.NoError(t, err)
	rgba := toRGBA(img)

	assert := assert.New(t)
	assert.Equal(image.Rect(0, 0, 21, 401), rgba.Bounds())
	// first red note covers rows 400-3*5 .. 400 in column 0
	assert.Equal(color.RGBA{R: 255, A: 255}, rgba.RGBAAt(2, 390))
	assert.Equal(color.RGBA{A: 255}, rgba.RGBAAt(0, 390))
	assert.Equal(color.RGBA{A: 255}, rgba.RGBAAt(2, 385))
	assert.Equal(color.RGBA{A: 255}, rgba.RGBAAt(2, 399))
	// nothing drawn in the spare last row
	assert.Equal(color.RGBA{}, rgba.RGBAAt(2, 400))
}

func TestInteractiveMatchesStatic(t *testing.T) {
	tl := timeline()
	static, err := Static(context.Background(), tl, 5)
	require.NoError(t, err)

	var last float64
	var calls int
	interactive, err := render(context.Background(), tl, 5, func(p float64) {
		assert.GreaterOrEqual(t, p, last)
		last = p
		calls++
	})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(toRGBA(static).Pix, interactive.Pix)
	// 401 rows in blocks of 160
	assert.Equal(3, calls)
	assert.Equal(1.0, last)
}

func TestInteractiveUsesHeightScale(t *testing.T) {
	img, err := Interactive(context.Background(), timeline(), nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 33, 641), img.Bounds())
}

func TestCancelledRender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Interactive(ctx, timeline(), nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Static(ctx, timeline(), 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotateAddsFooter(t *testing.T) {
	img, err := Static(context.Background(), timeline(), 5)
	require.NoError(t, err)

	res, err := Annotate(img, timeline(), 5)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), res.Bounds().Dx())
	assert.Greater(t, res.Bounds().Dy(), img.Bounds().Dy())
}
