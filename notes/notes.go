// Package notes turns track event buffers back into notes.
package notes

import (
	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/util"
	"github.com/sirupsen/logrus"
)

// Seq is a lazy sequence of notes. Calling it again starts over from the
// first note.
type Seq func(yield func(model.Note) bool)

// Extract pairs each note-on with the next note-off of the same key, in
// arrival order. Notes come out in the order they end.
func Extract(track int, buf model.EventBuffer) Seq {
	return func(yield func(model.Note) bool) {
		pressed := make(map[uint8][]uint64)
		var abs uint64
		for _, e := range buf {
			abs += uint64(e.Delta)
			switch e.Kind {
			case model.NoteOnEvent:
				pressed[e.Key] = append(pressed[e.Key], abs)
			case model.NoteOffEvent:
				starts := pressed[e.Key]
				if len(starts) == 0 {
					logrus.WithFields(logrus.Fields{"track": track, "key": keymap.Name(e.Key)}).
						Warn("note off for unpressed key")
					continue
				}
				pressed[e.Key] = starts[1:]
				n := model.Note{Track: track, Key: e.Key, Start: starts[0], Length: abs - starts[0]}
				if !yield(n) {
					return
				}
			}
		}

		for _, key := range util.GetKeys(pressed) {
			for _, start := range pressed[key] {
				logrus.WithFields(logrus.Fields{"track": track, "key": keymap.Name(key)}).
					Warn("missing note off")
				if !yield(model.Note{Track: track, Key: key, Start: start, Length: abs - start}) {
					return
				}
			}
		}
	}
}

func Collect(seq Seq) []model.Note {
	var res []model.Note
	seq(func(n model.Note) bool {
		res = append(res, n)
		return true
	})
	return res
}

// All chains the notes of every buffer, track by track.
func All(buffers []model.EventBuffer) Seq {
	return func(yield func(model.Note) bool) {
		for track, buf := range buffers {
			stopped := false
			Extract(track, buf)(func(n model.Note) bool {
				if !yield(n) {
					stopped = true
					return false
				}
				return true
			})
			if stopped {
				return
			}
		}
	}
}

func Count(buffers []model.EventBuffer) uint64 {
	counts := make([]uint64, len(buffers))
	for track, buf := range buffers {
		Extract(track, buf)(func(model.Note) bool {
			counts[track]++
			return true
		})
	}
	return util.Sum(counts)
}
