package model

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	HeightSameAsWidth = "width"
	HeightOriginal    = "original"
	HeightCustom      = "custom"
	HeightAspect      = "aspect"
)

// Options holds every knob of a conversion. The same struct is filled from
// command line flags and from JSON request bodies.
type Options struct {
	// explicit palette as hex colors, an auto palette is extracted when empty
	Palette           []string `json:"palette,omitempty"`
	Colors            int      `json:"colors"`
	ClusterIterations int      `json:"cluster_iterations"`

	StartKey      int   `json:"start_key"`
	EndKey        int   `json:"end_key"`
	KeyList       []int `json:"key_list,omitempty"`
	WhiteKeysOnly bool  `json:"white_keys_only"`
	BlackKeysOnly bool  `json:"black_keys_only"`
	ClipToWhite   bool  `json:"clip_to_white"`
	ClipToBlack   bool  `json:"clip_to_black"`

	MaxNoteLength    int  `json:"max_note_length"`
	MeasureFromStart bool `json:"measure_from_start"`

	HeightMode string `json:"height_mode"`
	Height     int    `json:"height"`
	Resize     string `json:"resize"`

	PPQ           int  `json:"ppq"`
	TicksPerPixel int  `json:"ticks_per_pixel"`
	StartOffset   int  `json:"start_offset"`
	ColorEvents   bool `json:"color_events"`
	Seed          int  `json:"seed"`
}

func DefaultOptions() Options {
	return Options{
		Colors:        16,
		StartKey:      0,
		EndKey:        127,
		HeightMode:    HeightSameAsWidth,
		Resize:        "box",
		PPQ:           96,
		TicksPerPixel: 1,
		ColorEvents:   true,
	}
}

func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Palette, "palette", o.Palette, "explicit palette as hex colors (e.g. ff0000,00ff00)")
	fs.IntVar(&o.Colors, "colors", o.Colors, "number of colors (tracks) in the auto palette")
	fs.IntVar(&o.ClusterIterations, "cluster", o.ClusterIterations, "palette clustering iterations, 0 disables")

	fs.IntVar(&o.StartKey, "start-key", o.StartKey, "first key of the fixed-width mapping")
	fs.IntVar(&o.EndKey, "end-key", o.EndKey, "last key (inclusive) of the fixed-width mapping")
	fs.IntSliceVar(&o.KeyList, "keys", o.KeyList, "explicit key per column, enables key-list mode")
	fs.BoolVar(&o.WhiteKeysOnly, "white-only", o.WhiteKeysOnly, "fixed-width: only white key columns sound")
	fs.BoolVar(&o.BlackKeysOnly, "black-only", o.BlackKeysOnly, "fixed-width: only black key columns sound")
	fs.BoolVar(&o.ClipToWhite, "clip-white", o.ClipToWhite, "key-list: blank columns mapped to black keys")
	fs.BoolVar(&o.ClipToBlack, "clip-black", o.ClipToBlack, "key-list: blank columns mapped to white keys")

	fs.IntVar(&o.MaxNoteLength, "max-note-length", o.MaxNoteLength, "split notes longer than this many rows, 0 disables")
	fs.BoolVar(&o.MeasureFromStart, "measure-from-start", o.MeasureFromStart, "split on absolute boundaries instead of note onset")

	fs.StringVar(&o.HeightMode, "height-mode", o.HeightMode, "target height: width, original, custom or aspect")
	fs.IntVar(&o.Height, "height", o.Height, "target height for --height-mode=custom")
	fs.StringVar(&o.Resize, "resize", o.Resize, "resize algorithm: box, nearest, linear, cubic or lanczos")

	fs.IntVar(&o.PPQ, "ppq", o.PPQ, "ticks per quarter note")
	fs.IntVar(&o.TicksPerPixel, "ticks-per-pixel", o.TicksPerPixel, "ticks per image row")
	fs.IntVar(&o.StartOffset, "start-offset", o.StartOffset, "ticks added before the first event of every track")
	fs.BoolVar(&o.ColorEvents, "color-events", o.ColorEvents, "embed each track's color as a meta event")
	fs.IntVar(&o.Seed, "seed", o.Seed, "seed for preview colors when color events are off")
}

func validKey(k int) bool {
	return k >= 0 && k <= 127
}

func (o Options) Validate() error {
	if len(o.Palette) == 0 && o.Colors <= 0 {
		return errors.Errorf("colors must be positive, got %d", o.Colors)
	}
	if o.ClusterIterations < 0 {
		return errors.Errorf("cluster iterations must not be negative")
	}
	if len(o.KeyList) == 0 {
		if !validKey(o.StartKey) || !validKey(o.EndKey) || o.StartKey > o.EndKey {
			return errors.Errorf("invalid key range %d..%d", o.StartKey, o.EndKey)
		}
		if o.WhiteKeysOnly && o.BlackKeysOnly {
			return errors.Errorf("white-only and black-only are exclusive")
		}
	}
	for _, k := range o.KeyList {
		if !validKey(k) {
			return errors.Errorf("key %d out of range", k)
		}
	}
	if o.ClipToWhite && o.ClipToBlack {
		return errors.Errorf("clip-white and clip-black are exclusive")
	}
	if o.MaxNoteLength < 0 {
		return errors.Errorf("max note length must not be negative")
	}
	switch o.HeightMode {
	case HeightSameAsWidth, HeightOriginal, HeightAspect:
	case HeightCustom:
		if o.Height <= 0 {
			return errors.Errorf("custom height must be positive, got %d", o.Height)
		}
	default:
		return errors.Errorf("unknown height mode %q", o.HeightMode)
	}
	if o.PPQ <= 0 || o.PPQ > 0x7FFF {
		return errors.Errorf("ppq out of range: %d", o.PPQ)
	}
	if o.TicksPerPixel <= 0 {
		return errors.Errorf("ticks per pixel must be positive")
	}
	if o.StartOffset < 0 {
		return errors.Errorf("start offset must not be negative")
	}
	return nil
}
