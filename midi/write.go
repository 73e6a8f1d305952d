package midi

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// IOError is a failure to create or write the output, as opposed to an
// invalid conversion.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("midi io %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

type Header struct {
	PPQ           uint16
	TicksPerPixel uint32
	// added to the first note event of every track
	StartOffset uint32
	ColorEvents bool
}

func DefaultHeader() Header {
	return Header{PPQ: 96, TicksPerPixel: 1, ColorEvents: true}
}

func HeaderFromOptions(opts model.Options) Header {
	return Header{
		PPQ:           uint16(opts.PPQ),
		TicksPerPixel: uint32(opts.TicksPerPixel),
		StartOffset:   uint32(opts.StartOffset),
		ColorEvents:   opts.ColorEvents,
	}
}

// Build assembles a format 1 file with one track per palette color.
func Build(h Header, colors []color.NRGBA, buffers []model.EventBuffer, progress func(float64)) (*smf.SMF, error) {
	if len(buffers) != len(colors) {
		return nil, errors.Errorf("%d event buffers for %d palette colors", len(buffers), len(colors))
	}
	ticksPerPixel := h.TicksPerPixel
	if ticksPerPixel == 0 {
		ticksPerPixel = 1
	}

	total := 0
	for _, buf := range buffers {
		total += len(buf)
		if h.ColorEvents {
			total++
		}
	}
	if total == 0 {
		total = 1
	}
	report := func(written int) {
		if progress != nil {
			progress(float64(written) / float64(total))
		}
	}

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(h.PPQ)
	written := 0
	for i, buf := range buffers {
		var tr smf.Track
		if h.ColorEvents {
			tr.Add(0, ColorEvent(colors[i]))
			written++
			report(written)
		}

		offset := h.StartOffset
		for _, e := range buf {
			delta := e.Delta*ticksPerPixel + offset
			switch e.Kind {
			case model.NoteOnEvent:
				tr.Add(delta, gomidi.NoteOn(0, e.Key, e.Velocity))
			case model.NoteOffEvent:
				tr.Add(delta, gomidi.NoteOff(0, e.Key))
			case model.ColorEvent:
				tr.Add(delta, ColorEvent(e.Color))
			}
			offset = 0

			written++
			if written&constants.WriteProgressMask == 0 || written == total {
				report(written)
			}
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return nil, errors.Wrapf(err, "could not add track %d", i)
		}
	}
	return s, nil
}

func Write(w io.Writer, h Header, colors []color.NRGBA, buffers []model.EventBuffer, progress func(float64)) error {
	s, err := Build(h, colors, buffers, progress)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return &IOError{Err: err}
	}
	if progress != nil {
		progress(1.0)
	}
	return nil
}

func WriteFile(path string, h Header, colors []color.NRGBA, buffers []model.EventBuffer, progress func(float64)) error {
	s, err := Build(h, colors, buffers, progress)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	_, err = s.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	if progress != nil {
		progress(1.0)
	}
	logrus.WithFields(logrus.Fields{"path": path, "tracks": len(buffers)}).Debug("wrote midi file")
	return nil
}
