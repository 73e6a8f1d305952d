package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchOpts = model.DefaultOptions()

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".webp": true, ".qoi": true,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchOpts.BindFlags(batchCmd.Flags())
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> [max]",
	Short: "Converts every image in a directory",
	Long:  `Converts every image in a directory into the out dir, optionally stopping after max images.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		paths, err := GatherImagePaths(args[0], maxNum)
		if err != nil {
			return err
		}
		if err := util.EnsureDir(constants.GetOutDir()); err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(runtime.GOMAXPROCS(0))
		for _, path := range paths {
			path := path
			g.Go(func() error {
				out := filepath.Join(constants.GetOutDir(), util.ReplaceExt(filepath.Base(path), ".mid"))
				_, err := ConvertFile(ctx, path, out, batchOpts)
				return errors.Wrap(err, path)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		logrus.WithField("files", len(paths)).Info("batch finished")
		return nil
	},
}

// GatherImagePaths lists images under dir, sorted, at most maxNum of them
// when maxNum is positive.
func GatherImagePaths(dir string, maxNum int) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if maxNum > 0 && len(paths) >= maxNum {
			return filepath.SkipAll
		}
		paths = append(paths, path)
		return nil
	})
	return paths, errors.Wrapf(err, "could not walk %s", dir)
}
