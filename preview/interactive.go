package preview

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"runtime"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type block struct {
	bounds image.Rectangle
	pix    *image.RGBA
}

// Interactive renders horizontal blocks in parallel and hands them, in
// order, to a single goroutine that owns the final raster. Progress is
// reported after every committed block.
func Interactive(ctx context.Context, tl Timeline, progress func(float64)) (*image.RGBA, error) {
	return render(ctx, tl, ScaleFor(tl.Height), progress)
}

func render(ctx context.Context, tl Timeline, scale int, progress func(float64)) (*image.RGBA, error) {
	bounds := Bounds(tl.Width, tl.Height, scale)
	drawable := tl.Drawable()
	blockRows := constants.PreviewBlockRows * scale
	count := (bounds.Dy() + blockRows - 1) / blockRows

	blocks := make([]*block, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			y0 := i * blockRows
			y1 := util.Min(y0+blockRows, bounds.Dy())
			b := &block{bounds: image.Rect(0, y0, bounds.Dx(), y1)}
			b.pix = image.NewRGBA(b.bounds)
			if err := b.fill(gctx, tl, drawable, scale); err != nil {
				return err
			}
			blocks[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(bounds)
	commits := make(chan *block)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for b := range commits {
			draw.Draw(canvas, b.bounds, b.pix, b.bounds.Min, draw.Src)
			if progress != nil {
				progress(float64(b.bounds.Max.Y) / float64(bounds.Dy()))
			}
			runtime.Gosched()
		}
	}()

	var err error
	for _, b := range blocks {
		if err = ctx.Err(); err != nil {
			break
		}
		commits <- b
	}
	close(commits)
	<-done
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"blocks": count, "scale": scale, "notes": len(drawable)}).Debug("rendered preview")
	return canvas, nil
}

func (b *block) fill(ctx context.Context, tl Timeline, drawable []DrawableNote, scale int) error {
	black := color.RGBA{A: 0xFF}
	for i, n := range drawable {
		if i&0xFF == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r := NoteRect(n, tl.Height, scale)
		clipped := r.Intersect(b.bounds)
		if clipped.Empty() {
			continue
		}
		c := color.RGBAModel.Convert(tl.color(n.Track)).(color.RGBA)
		b.set(clipped, c)
		for _, edge := range borders(r) {
			b.set(edge.Intersect(b.bounds), black)
		}
	}
	return nil
}

func (b *block) set(r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.pix.SetRGBA(x, y, c)
		}
	}
}
