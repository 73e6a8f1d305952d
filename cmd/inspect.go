package cmd

import (
	"fmt"

	"github.com/jsphweid/pixelroll/midi"
	"github.com/jsphweid/pixelroll/palette"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Prints the header of a midi file and the color, event and note count of every track.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		summary := midi.Summarize(s)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "format: %v\n", summary.Format)
		fmt.Fprintf(out, "ppq: %v\n", summary.PPQ)
		fmt.Fprintf(out, "tracks: %v\n", len(summary.Tracks))
		for i, t := range summary.Tracks {
			c := "-"
			if t.Color != nil {
				c = palette.Hex(*t.Color)
			}
			fmt.Fprintf(out, "track %d: color %s, %d events, %d notes\n", i, c, t.Events, t.Notes)
		}
		fmt.Fprintf(out, "notes: %v\n", summary.NoteCount())
		return nil
	},
}
