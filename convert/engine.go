package convert

import (
	"context"
	"image"

	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/keymap"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/palette"
)

// SplitPolicy forces long notes to be cut into several.
type SplitPolicy struct {
	// 0 disables splitting
	MaxNoteLength int
	// cut on multiples of MaxNoteLength instead of counting from each onset
	MeasureFromStart bool
}

func (p SplitPolicy) forced(time, lastOn int64) bool {
	if p.MaxNoteLength <= 0 {
		return false
	}
	max := int64(p.MaxNoteLength)
	if p.MeasureFromStart {
		return time%max == 0
	}
	return time-lastOn >= max
}

// scanState is the working set of one scan. It owns the event buffers until
// the scan returns.
type scanState struct {
	palette *palette.Palette
	split   SplitPolicy

	keys        []uint8
	resolutions []keymap.Resolution

	slots     []slot
	lastEvent []int64
	lastOn    []int64
	buffers   []model.EventBuffer
}

func newScanState(p *palette.Palette, m keymap.Mapping, split SplitPolicy, width int) *scanState {
	s := &scanState{
		palette:     p,
		split:       split,
		keys:        make([]uint8, width),
		resolutions: make([]keymap.Resolution, width),
		slots:       make([]slot, width),
		lastEvent:   make([]int64, p.Len()),
		lastOn:      make([]int64, width),
		buffers:     make([]model.EventBuffer, p.Len()),
	}
	for j := 0; j < width; j++ {
		s.keys[j], s.resolutions[j] = m.Resolve(j)
		s.slots[j] = inactiveSlot
	}
	return s
}

func (s *scanState) emit(id int, time int64, e model.Event) {
	e.Delta = uint32(time - s.lastEvent[id])
	s.buffers[id] = append(s.buffers[id], e)
	s.lastEvent[id] = time
}

// step processes one image row at the given time, columns left to right.
func (s *scanState) step(img *image.NRGBA, row int, time int64) {
	pix := img.Pix[row*img.Stride:]
	for j := range s.slots {
		if s.resolutions[j] != keymap.Mapped {
			s.slots[j] = blankSlot
			continue
		}
		key := s.keys[j]

		next := blankSlot
		p := pix[j*4 : j*4+4]
		if p[3] >= constants.AlphaThreshold {
			next = trackSlot(s.palette.Nearest(p[0], p[1], p[2]))
		}

		cur := s.slots[j]
		split := cur.isTrack() && s.split.forced(time, s.lastOn[j])
		if next == cur && !split {
			continue
		}
		if cur.isTrack() {
			s.emit(cur.id, time, model.NoteOff(0, key))
		}
		s.slots[j] = next
		if next.isTrack() {
			s.emit(next.id, time, model.NoteOn(0, key, constants.NoteVelocity))
			s.lastOn[j] = time
		}
	}
}

// flush closes every note still sounding.
func (s *scanState) flush(time int64) {
	for j, cur := range s.slots {
		if cur.isTrack() {
			s.emit(cur.id, time, model.NoteOff(0, s.keys[j]))
			s.slots[j] = blankSlot
		}
	}
}

func scan(ctx context.Context, img *image.NRGBA, s *scanState, progress func(float64)) error {
	height := img.Rect.Dy()
	var time int64
	for i := height - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.step(img, i, time)
		time++
		if progress != nil && i%constants.ScanProgressInterval == 0 {
			progress(1 - float64(i)/float64(height))
		}
	}
	s.flush(time)
	return nil
}
