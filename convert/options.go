package convert

import (
	"image"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/imaging"
	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/palette"
)

func MappingFromOptions(opts model.Options) keymap.Mapping {
	if len(opts.KeyList) > 0 {
		clip := keymap.AllKeys
		switch {
		case opts.ClipToWhite:
			clip = keymap.WhiteKeys
		case opts.ClipToBlack:
			clip = keymap.BlackKeys
		}
		return keymap.NewList(opts.KeyList, clip)
	}
	filter := keymap.AllKeys
	switch {
	case opts.WhiteKeysOnly:
		filter = keymap.WhiteKeys
	case opts.BlackKeysOnly:
		filter = keymap.BlackKeys
	}
	return keymap.NewFixed(opts.StartKey, opts.EndKey, filter)
}

// PaletteFromOptions parses the explicit palette or extracts one from src,
// then clusters it when asked to.
func PaletteFromOptions(opts model.Options, src image.Image) (*palette.Palette, error) {
	var p *palette.Palette
	var err error
	if len(opts.Palette) > 0 {
		p, err = palette.Parse(opts.Palette)
	} else {
		p, err = palette.Auto(src, opts.Colors)
	}
	if err != nil {
		return nil, err
	}
	if opts.ClusterIterations == 0 {
		return p, nil
	}

	b := src.Bounds()
	h, err := imaging.TargetHeight(model.HeightAspect, constants.ClusterSampleWidth, b, 0)
	if err != nil {
		return nil, err
	}
	sample, err := imaging.Resize(src, constants.ClusterSampleWidth, h, imaging.Box)
	if err != nil {
		return nil, err
	}
	return palette.Cluster(p, sample, opts.ClusterIterations), nil
}

// ConfigFromOptions resolves user facing options against the source image.
func ConfigFromOptions(opts model.Options, src image.Image) (Config, error) {
	if err := opts.Validate(); err != nil {
		return Config{}, configError(err)
	}
	alg, err := imaging.ParseAlgorithm(opts.Resize)
	if err != nil {
		return Config{}, configError(err)
	}
	p, err := PaletteFromOptions(opts, src)
	if err != nil {
		return Config{}, configError(err)
	}
	m := MappingFromOptions(opts)
	height, err := imaging.TargetHeight(opts.HeightMode, m.Width(), src.Bounds(), opts.Height)
	if err != nil {
		return Config{}, configError(err)
	}
	return Config{
		Palette: p,
		Mapping: m,
		Split: SplitPolicy{
			MaxNoteLength:    opts.MaxNoteLength,
			MeasureFromStart: opts.MeasureFromStart,
		},
		Height:       height,
		Resize:       alg,
		RandomColors: !opts.ColorEvents,
		Seed:         opts.Seed,
		PreviewScale: constants.StaticPreviewScale,
	}, nil
}
