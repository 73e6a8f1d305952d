package cmd

import (
	"fmt"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/convert"
	"github.com/jsphweid/pixelroll/file"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/palette"
	"github.com/spf13/cobra"
)

var (
	paletteTracks  int
	paletteCluster int
)

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().IntVar(&paletteTracks, "tracks", 1, "rows of 16 colors to extract")
	paletteCmd.Flags().IntVar(&paletteCluster, "cluster", 0, fmt.Sprintf("clustering iterations, %d is a good start", constants.ClusterIterations))
}

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Prints the palette extracted from an image",
	Long: `Prints the palette extracted from an image, one hex color per track. The output
can be passed back with --palette.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, _, err := file.LoadImage(args[0])
		if err != nil {
			return err
		}
		opts := model.DefaultOptions()
		opts.Colors = paletteTracks * constants.PaletteColorsPerTrack
		opts.ClusterIterations = paletteCluster
		if err := opts.Validate(); err != nil {
			return err
		}
		p, err := convert.PaletteFromOptions(opts, img)
		if err != nil {
			return err
		}
		for i, c := range p.Colors() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, palette.Hex(c))
		}
		return nil
	},
}
