// Package keymap maps pixel columns to MIDI keys.
package keymap

import "strconv"

var blackKeysInOctave = map[int]bool{1: true, 3: true, 6: true, 8: true, 10: true}

func IsWhiteKey(key int) bool {
	return !blackKeysInOctave[key%12]
}

type Filter uint8

const (
	AllKeys Filter = iota
	WhiteKeys
	BlackKeys
)

func (f Filter) allows(key int) bool {
	switch f {
	case WhiteKeys:
		return IsWhiteKey(key)
	case BlackKeys:
		return !IsWhiteKey(key)
	}
	return true
}

// Resolution tells the scanner what to do with a column.
type Resolution uint8

const (
	// Mapped columns carry a key and are quantized normally.
	Mapped Resolution = iota
	// Clipped columns are blank for the current row only.
	Clipped
	// Excluded columns never sound, on any row.
	Excluded
)

type Mapping interface {
	// Width is the number of columns the image is resized to.
	Width() int
	Resolve(column int) (key uint8, res Resolution)
	// Column is the inverse used for drawing notes; ok is false for keys
	// that never sound.
	Column(key uint8) (column int, ok bool)
}

// Fixed maps column j to Start+j. Columns rejected by Filter are excluded
// for the whole scan.
type Fixed struct {
	Start  int
	Count  int
	Filter Filter
}

func NewFixed(startKey, endKey int, filter Filter) Fixed {
	return Fixed{Start: startKey, Count: endKey - startKey + 1, Filter: filter}
}

func (f Fixed) Width() int {
	return f.Count
}

func (f Fixed) Resolve(column int) (uint8, Resolution) {
	key := f.Start + column
	if column < 0 || column >= f.Count || key > 127 {
		return 0, Excluded
	}
	if !f.Filter.allows(key) {
		return uint8(key), Excluded
	}
	return uint8(key), Mapped
}

func (f Fixed) Column(key uint8) (int, bool) {
	column := int(key) - f.Start
	if column < 0 || column >= f.Count {
		return 0, false
	}
	if !f.Filter.allows(int(key)) {
		return 0, false
	}
	return column, true
}

// List maps column j to Keys[j]. Columns whose key is rejected by Clip are
// blanked row by row, columns beyond the list are excluded.
type List struct {
	Keys []uint8
	Clip Filter
}

func NewList(keys []int, clip Filter) List {
	l := List{Keys: make([]uint8, len(keys)), Clip: clip}
	for i, k := range keys {
		l.Keys[i] = uint8(k)
	}
	return l
}

func (l List) Width() int {
	return len(l.Keys)
}

func (l List) Resolve(column int) (uint8, Resolution) {
	if column < 0 || column >= len(l.Keys) {
		return 0, Excluded
	}
	key := l.Keys[column]
	if !l.Clip.allows(int(key)) {
		return key, Clipped
	}
	return key, Mapped
}

// Column returns the first column holding key.
func (l List) Column(key uint8) (int, bool) {
	for i, k := range l.Keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name is the scientific pitch name of a key, 60 is C4.
func Name(key uint8) string {
	return names[key%12] + strconv.Itoa(int(key)/12-1)
}
