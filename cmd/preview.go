package cmd

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/jsphweid/pixelroll/convert"
	"github.com/jsphweid/pixelroll/file"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/preview"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	previewOpts   = model.DefaultOptions()
	previewOut    string
	previewLabels bool
)

func init() {
	rootCmd.AddCommand(previewCmd)
	previewOpts.BindFlags(previewCmd.Flags())
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "preview.png", "output png")
	previewCmd.Flags().BoolVar(&previewLabels, "labels", false, "label every C under the roll")
}

var previewCmd = &cobra.Command{
	Use:   "preview <image>",
	Short: "Renders the piano roll an image converts to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, _, err := file.LoadImage(args[0])
		if err != nil {
			return err
		}
		cfg, err := convert.ConfigFromOptions(previewOpts, img)
		if err != nil {
			return err
		}
		// the interactive renderer draws its own
		cfg.PreviewScale = 0
		p, err := convert.New(cfg)
		if err != nil {
			return err
		}
		res, err := p.Run(cmd.Context(), img, nil)
		if err != nil {
			return err
		}

		tl := res.Timeline()
		var out image.Image
		out, err = preview.Interactive(cmd.Context(), tl, func(v float64) {
			logrus.WithField("progress", v).Debug("rendering")
		})
		if err != nil {
			return err
		}
		if previewLabels {
			out, err = preview.Annotate(out, tl, preview.ScaleFor(tl.Height))
			if err != nil {
				return err
			}
		}
		return errors.Wrap(gg.SavePNG(previewOut, out), "could not save preview")
	},
}
