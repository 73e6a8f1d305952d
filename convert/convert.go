// Package convert scans an image into per-track note events.
package convert

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/jsphweid/pixelroll/file"
	"github.com/jsphweid/pixelroll/imaging"
	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/notes"
	"github.com/jsphweid/pixelroll/palette"
	"github.com/jsphweid/pixelroll/preview"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrConfig = errors.New("invalid conversion config")

// configError keeps err's message and makes it match ErrConfig.
func configError(err error) error {
	return errors.Wrap(ErrConfig, err.Error())
}

type Config struct {
	Palette *palette.Palette
	Mapping keymap.Mapping
	Split   SplitPolicy
	// rows to scan, the mapping width when 0
	Height int
	Resize imaging.Algorithm

	// draw tracks with seeded random colors instead of the palette
	RandomColors bool
	Seed         int
	// scale of the preview drawn after a scan, 0 skips it
	PreviewScale int
}

// Result is published once and never modified.
type Result struct {
	Buffers   []model.EventBuffer
	NoteCount uint64
	Preview   image.Image
	Width     int
	Height    int
	Palette   *palette.Palette
	Mapping   keymap.Mapping
	// display color per track
	Colors []color.NRGBA
}

func (r *Result) Timeline() preview.Timeline {
	return preview.Timeline{
		Buffers: r.Buffers,
		Mapping: r.Mapping,
		Width:   r.Width,
		Height:  r.Height,
		Colors:  r.Colors,
	}
}

type Process struct {
	cfg Config
}

func New(cfg Config) (*Process, error) {
	if cfg.Palette == nil || cfg.Palette.Len() == 0 {
		return nil, errors.Wrap(ErrConfig, "empty palette")
	}
	if cfg.Mapping == nil {
		return nil, errors.Wrap(ErrConfig, "missing key mapping")
	}
	if cfg.Mapping.Width() <= 0 {
		return nil, errors.Wrap(ErrConfig, "key mapping has no columns")
	}
	if cfg.Height < 0 || cfg.Split.MaxNoteLength < 0 || cfg.PreviewScale < 0 {
		return nil, errors.Wrap(ErrConfig, "negative size")
	}
	if cfg.Resize == "" {
		cfg.Resize = imaging.Box
	}
	if _, err := imaging.ParseAlgorithm(string(cfg.Resize)); err != nil {
		return nil, configError(err)
	}
	return &Process{cfg: cfg}, nil
}

func (p *Process) size() (int, int) {
	width := p.cfg.Mapping.Width()
	if p.cfg.Height > 0 {
		return width, p.cfg.Height
	}
	return width, width
}

// Scan runs the state machine over an image that is already at the target
// size. On cancellation the events emitted so far are returned with the
// context error.
func (p *Process) Scan(ctx context.Context, img image.Image, progress func(float64)) ([]model.EventBuffer, error) {
	nrgba := file.ToNRGBA(img)
	s := newScanState(p.cfg.Palette, p.cfg.Mapping, p.cfg.Split, nrgba.Rect.Dx())
	err := scan(ctx, nrgba, s, progress)
	return s.buffers, err
}

// Run resizes src, scans it, counts the notes and draws the static preview.
func (p *Process) Run(ctx context.Context, src image.Image, progress func(float64)) (*Result, error) {
	start := time.Now()
	width, height := p.size()
	log := logrus.WithFields(logrus.Fields{"width": width, "height": height, "tracks": p.cfg.Palette.Len()})
	log.Debug("starting conversion")

	resized, err := imaging.Resize(src, width, height, p.cfg.Resize)
	if err != nil {
		return nil, errors.Wrap(err, "could not resize image")
	}
	buffers, err := p.Scan(ctx, resized, progress)
	if err != nil {
		log.WithError(err).Debug("conversion cancelled")
		return nil, err
	}

	res := &Result{
		Buffers:   buffers,
		NoteCount: notes.Count(buffers),
		Width:     width,
		Height:    height,
		Palette:   p.cfg.Palette,
		Mapping:   p.cfg.Mapping,
		Colors:    palette.DisplayColors(p.cfg.Palette, p.cfg.RandomColors, p.cfg.Seed),
	}
	if p.cfg.PreviewScale > 0 {
		res.Preview, err = preview.Static(ctx, res.Timeline(), p.cfg.PreviewScale)
		if err != nil {
			log.WithError(err).Debug("conversion cancelled while drawing preview")
			return nil, err
		}
	}
	if progress != nil {
		progress(1.0)
	}
	log.WithFields(logrus.Fields{"notes": res.NoteCount, "elapsed": time.Since(start)}).Info("conversion finished")
	return res, nil
}
