package model

type Note struct {
	Track  int
	Key    uint8
	Start  uint64
	Length uint64
}

func (n Note) End() uint64 {
	return n.Start + n.Length
}
