package midi

import (
	"bytes"
	"image/color"
	"os"

	"github.com/jsphweid/pixelroll/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			e = errors.Errorf("panic parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, &IOError{Path: filepath, Err: err}
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrapf(err, "error parsing midi file %s", filepath)
	}
	return res, nil
}

// ToEventBuffer converts a track read from disk back into the buffer form the
// converter produces. Unknown messages are dropped.
func ToEventBuffer(tr smf.Track) model.EventBuffer {
	var res model.EventBuffer
	var pending uint32
	for _, ev := range tr {
		pending += ev.Delta
		var channel, key, velocity uint8
		switch {
		case ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			res = append(res, model.NoteOn(pending, key, velocity))
		case ev.Message.GetNoteOn(&channel, &key, &velocity), ev.Message.GetNoteOff(&channel, &key, &velocity):
			res = append(res, model.NoteOff(pending, key))
		default:
			c, ok := ParseColorEvent(ev.Message)
			if !ok {
				continue
			}
			res = append(res, model.Color(pending, c))
		}
		pending = 0
	}
	return res
}

const colorMetaType = 0x0A

// ColorEvent is the track color meta event: FF 0A 08 00 0F R G B A 00 00.
func ColorEvent(c color.NRGBA) smf.Message {
	return smf.Message{0xFF, colorMetaType, 0x08, 0x00, 0x0F, c.R, c.G, c.B, c.A, 0x00, 0x00}
}

func ParseColorEvent(msg []byte) (color.NRGBA, bool) {
	if len(msg) < 10 || msg[0] != 0xFF || msg[1] != colorMetaType {
		return color.NRGBA{}, false
	}
	data := msg[len(msg)-8:]
	if data[0] != 0x00 || data[1] != 0x0F {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: data[2], G: data[3], B: data[4], A: data[5]}, true
}
