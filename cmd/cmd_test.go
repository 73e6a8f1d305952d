package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/pixelroll/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir string, name string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, testPNG(t), 0666))
	return path
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, "checker.png")
	out := filepath.Join(dir, "checker.mid")

	opts := model.DefaultOptions()
	opts.Palette = []string{"ff0000", "0000ff"}
	opts.StartKey = 60
	opts.EndKey = 75
	res, err := ConvertFile(context.Background(), src, out, opts)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(16, res.Width)
	assert.NotNil(res.Preview)
	assert.FileExists(out)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"inspect", out})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(buf.String(), "tracks: 2")
	assert.Contains(buf.String(), "color #ff0000")
}

func TestPaletteCommand(t *testing.T) {
	src := writeTestPNG(t, t.TempDir(), "checker.png")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"palette", src, "--tracks", "1"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "0\t#")
}

func TestGatherImagePaths(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png")
	writeTestPNG(t, dir, "b.PNG")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0666))

	paths, err := GatherImagePaths(dir, 0)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	paths, err = GatherImagePaths(dir, 1)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestConvertFileMissingImage(t *testing.T) {
	_, err := ConvertFile(context.Background(), "nope.png", "nope.mid", model.DefaultOptions())
	assert.Error(t, err)
}
