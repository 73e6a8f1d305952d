package file

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{B: 255, A: 128})
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sample()))
	require.NoError(t, f.Close())

	img, format, err := LoadImage(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("png", format)
	assert.Equal(3, img.Bounds().Dx())
	assert.Equal(2, img.Bounds().Dy())
	assert.Equal(color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(color.NRGBA{B: 255, A: 128}, img.NRGBAAt(2, 1))
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode("upload", strings.NewReader("not an image"))

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "upload", decodeErr.Source)
}

func TestMissingFile(t *testing.T) {
	_, _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestToNRGBARebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{G: 255, A: 255})

	res := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), res.Bounds())
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, res.NRGBAAt(0, 0))
}

func TestDecodeFromBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	img, _, err := Decode("buf", &buf)
	require.NoError(t, err)
	assert.Equal(t, 6, len(img.Pix)/4)
}
