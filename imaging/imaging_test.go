package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/jsphweid/pixelroll/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	assert := assert.New(t)
	for _, name := range []string{"box", "nearest", "linear", "cubic", "lanczos"} {
		a, err := ParseAlgorithm(name)
		assert.NoError(err)
		assert.Equal(Algorithm(name), a)
	}
	_, err := ParseAlgorithm("bilinear-ish")
	assert.Error(err)
}

func TestResizeSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	res, err := Resize(src, 10, 7, Box)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 7), res.Bounds())
}

func TestResizeSameSizeKeepsPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	res, err := Resize(src, 2, 2, Lanczos)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, res.Pix)
}

func TestResizeNearestIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), A: 255})
		}
	}
	a, err := Resize(src, 2, 2, Nearest)
	require.NoError(t, err)
	b, err := Resize(src, 2, 2, Nearest)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestResizeRejectsBadInput(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	_, err := Resize(src, 0, 2, Box)
	assert.Error(t, err)
	_, err = Resize(src, 2, 2, Algorithm("nope"))
	assert.Error(t, err)
}

func TestTargetHeight(t *testing.T) {
	src := image.Rect(0, 0, 200, 100)
	assert := assert.New(t)

	h, err := TargetHeight(model.HeightSameAsWidth, 128, src, 0)
	assert.NoError(err)
	assert.Equal(128, h)

	h, err = TargetHeight(model.HeightOriginal, 128, src, 0)
	assert.NoError(err)
	assert.Equal(100, h)

	h, err = TargetHeight(model.HeightCustom, 128, src, 33)
	assert.NoError(err)
	assert.Equal(33, h)

	h, err = TargetHeight(model.HeightAspect, 128, src, 0)
	assert.NoError(err)
	assert.Equal(64, h)

	_, err = TargetHeight(model.HeightCustom, 128, src, 0)
	assert.Error(err)
	_, err = TargetHeight("sideways", 128, src, 0)
	assert.Error(err)
}
