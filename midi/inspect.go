package midi

import (
	"image/color"

	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/notes"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

type TrackSummary struct {
	Color  *color.NRGBA
	Events int
	Notes  uint64
}

type Summary struct {
	Format uint16
	PPQ    uint16
	Tracks []TrackSummary
}

func (s Summary) NoteCount() uint64 {
	var total uint64
	for _, t := range s.Tracks {
		total += t.Notes
	}
	return total
}

func Summarize(s *smf.SMF) Summary {
	res := Summary{Format: s.Format()}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res.PPQ = mt.Resolution()
	}
	for i, tr := range s.Tracks {
		buf := ToEventBuffer(tr)
		ts := TrackSummary{Events: len(tr)}
		for _, e := range buf {
			if e.Kind == model.ColorEvent {
				c := e.Color
				ts.Color = &c
				break
			}
		}
		ts.Notes = notes.Count([]model.EventBuffer{buf})
		logrus.WithFields(logrus.Fields{"track": i, "events": ts.Events, "notes": ts.Notes}).Debug("summarized track")
		res.Tracks = append(res.Tracks, ts)
	}
	return res
}
