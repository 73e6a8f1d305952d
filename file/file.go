package file

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "github.com/xfmoulet/qoi"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// LoadImage reads and decodes an image file. Any registered format works:
// png, jpeg, gif, bmp, webp and qoi.
func LoadImage(path string) (*image.NRGBA, string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "could not read %s", path)
	}
	return decode(path, bytes.NewReader(dat))
}

func Decode(source string, r io.Reader) (*image.NRGBA, string, error) {
	return decode(source, r)
}

func decode(source string, r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Source: source, Err: err}
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA returns img as a zero-origin *image.NRGBA, converting if needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	res := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(res, res.Bounds(), img, b.Min, draw.Src)
	return res
}
