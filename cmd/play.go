package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	playPort int
	playList bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVar(&playPort, "port", 0, "midi output port number")
	playCmd.Flags().BoolVar(&playList, "list", false, "list output ports and exit")
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a midi file to an output port",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		if playList {
			fmt.Fprint(cmd.OutOrStdout(), midi.GetOutPorts())
			return nil
		}
		if len(args) != 1 {
			return errors.New("need a midi file to play")
		}

		out, err := midi.OutPort(playPort)
		if err != nil {
			return errors.Wrapf(err, "can't find output port %d", playPort)
		}
		logrus.WithFields(logrus.Fields{"file": args[0], "port": out.String()}).Info("playing")
		return smf.ReadTracks(args[0]).Play(out)
	},
}
