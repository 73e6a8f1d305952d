package model

import (
	"encoding/json"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(o *Options){
		"reversed keys":      func(o *Options) { o.StartKey, o.EndKey = 80, 20 },
		"key out of range":   func(o *Options) { o.EndKey = 128 },
		"both filters":       func(o *Options) { o.WhiteKeysOnly, o.BlackKeysOnly = true, true },
		"both clips":         func(o *Options) { o.ClipToWhite, o.ClipToBlack = true, true },
		"bad list key":       func(o *Options) { o.KeyList = []int{60, 200} },
		"no colors":          func(o *Options) { o.Colors = 0 },
		"negative max":       func(o *Options) { o.MaxNoteLength = -1 },
		"custom no height":   func(o *Options) { o.HeightMode = HeightCustom },
		"unknown height":     func(o *Options) { o.HeightMode = "tall" },
		"zero ppq":           func(o *Options) { o.PPQ = 0 },
		"zero ticks":         func(o *Options) { o.TicksPerPixel = 0 },
		"negative offset":    func(o *Options) { o.StartOffset = -5 },
		"negative iteration": func(o *Options) { o.ClusterIterations = -1 },
	}
	for name, mutate := range cases {
		o := DefaultOptions()
		mutate(&o)
		assert.Error(t, o.Validate(), name)
	}

	// an explicit palette does not need a color count
	o := DefaultOptions()
	o.Palette = []string{"ffffff"}
	o.Colors = 0
	assert.NoError(t, o.Validate())
}

func TestBindFlags(t *testing.T) {
	o := DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--palette", "ff0000,00ff00",
		"--keys", "60,62,64",
		"--clip-white",
		"--max-note-length", "8",
		"--color-events=false",
	}))

	assert := assert.New(t)
	assert.Equal([]string{"ff0000", "00ff00"}, o.Palette)
	assert.Equal([]int{60, 62, 64}, o.KeyList)
	assert.True(o.ClipToWhite)
	assert.Equal(8, o.MaxNoteLength)
	assert.False(o.ColorEvents)
	assert.Equal(96, o.PPQ)
}

func TestOptionsJSONKeepsDefaults(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, json.Unmarshal([]byte(`{"start_key":21,"end_key":108}`), &o))

	assert := assert.New(t)
	assert.Equal(21, o.StartKey)
	assert.Equal(88, o.EndKey-o.StartKey+1)
	assert.Equal("box", o.Resize)
	assert.True(o.ColorEvents)
}
