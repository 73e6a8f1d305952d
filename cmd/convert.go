package cmd

import (
	"context"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/convert"
	"github.com/jsphweid/pixelroll/file"
	"github.com/jsphweid/pixelroll/midi"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	convertOpts    = model.DefaultOptions()
	convertOut     string
	convertPreview string
)

func init() {
	rootCmd.AddCommand(convertCmd)
	convertOpts.BindFlags(convertCmd.Flags())
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output midi file, defaults to the image name in the out dir")
	convertCmd.Flags().StringVar(&convertPreview, "preview", "", "also save the piano roll preview as png")
}

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Converts an image to a midi file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := convertOut
		if out == "" {
			if err := util.EnsureDir(constants.GetOutDir()); err != nil {
				return err
			}
			out = filepath.Join(constants.GetOutDir(), util.ReplaceExt(filepath.Base(args[0]), ".mid"))
		}
		res, err := ConvertFile(cmd.Context(), args[0], out, convertOpts)
		if err != nil {
			return err
		}
		if convertPreview != "" && res.Preview != nil {
			if err := gg.SavePNG(convertPreview, res.Preview); err != nil {
				return errors.Wrap(err, "could not save preview")
			}
		}
		return nil
	},
}

// ConvertFile runs a whole conversion from an image on disk to a midi file.
func ConvertFile(ctx context.Context, src string, out string, opts model.Options) (*convert.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	img, _, err := file.LoadImage(src)
	if err != nil {
		return nil, err
	}
	cfg, err := convert.ConfigFromOptions(opts, img)
	if err != nil {
		return nil, err
	}
	p, err := convert.New(cfg)
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("source", src)
	res, err := p.Run(ctx, img, func(v float64) {
		log.WithField("progress", v).Debug("scanning")
	})
	if err != nil {
		return nil, err
	}

	err = midi.WriteFile(out, midi.HeaderFromOptions(opts), cfg.Palette.Colors(), res.Buffers, func(v float64) {
		log.WithField("progress", v).Debug("writing")
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"out": out, "notes": res.NoteCount}).Info("converted")
	return res, nil
}
