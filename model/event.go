package model

import "image/color"

type EventKind uint8

const (
	NoteOnEvent EventKind = iota
	NoteOffEvent
	ColorEvent
)

func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note-on"
	case NoteOffEvent:
		return "note-off"
	case ColorEvent:
		return "color"
	}
	return "unknown"
}

// Event is one entry of a track buffer. Delta is the number of ticks since
// the previous event in the same buffer.
type Event struct {
	Delta    uint32
	Kind     EventKind
	Key      uint8
	Velocity uint8
	Color    color.NRGBA
}

// EventBuffer is append-only while a scan owns it.
type EventBuffer = []Event

func NoteOn(delta uint32, key uint8, velocity uint8) Event {
	return Event{Delta: delta, Kind: NoteOnEvent, Key: key, Velocity: velocity}
}

func NoteOff(delta uint32, key uint8) Event {
	return Event{Delta: delta, Kind: NoteOffEvent, Key: key}
}

func Color(delta uint32, c color.NRGBA) Event {
	return Event{Delta: delta, Kind: ColorEvent, Color: c}
}
