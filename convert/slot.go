package convert

type slotKind uint8

const (
	inactive slotKind = iota
	blank
	track
)

// slot is what a column is currently playing.
type slot struct {
	kind slotKind
	id   int
}

var (
	inactiveSlot = slot{kind: inactive}
	blankSlot    = slot{kind: blank}
)

func trackSlot(id int) slot {
	return slot{kind: track, id: id}
}

func (s slot) isTrack() bool {
	return s.kind == track
}
