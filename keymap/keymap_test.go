package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWhiteKey(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsWhiteKey(60))  // C4
	assert.False(IsWhiteKey(61)) // C#4
	assert.True(IsWhiteKey(64))  // E4
	assert.True(IsWhiteKey(65))  // F4
	assert.False(IsWhiteKey(70)) // A#4
	assert.True(IsWhiteKey(71))  // B4
}

func TestFixedMapsColumnsFromStartKey(t *testing.T) {
	m := NewFixed(60, 71, AllKeys)
	assert := assert.New(t)
	assert.Equal(12, m.Width())

	key, res := m.Resolve(0)
	assert.Equal(uint8(60), key)
	assert.Equal(Mapped, res)

	key, res = m.Resolve(11)
	assert.Equal(uint8(71), key)
	assert.Equal(Mapped, res)

	_, res = m.Resolve(12)
	assert.Equal(Excluded, res)
}

func TestFixedWhiteOnlyExcludesBlackColumns(t *testing.T) {
	m := NewFixed(60, 71, WhiteKeys)
	_, res := m.Resolve(1)
	assert.Equal(t, Excluded, res)
	_, res = m.Resolve(2)
	assert.Equal(t, Mapped, res)

	_, ok := m.Column(61)
	assert.False(t, ok)
	col, ok := m.Column(62)
	assert.True(t, ok)
	assert.Equal(t, 2, col)
}

func TestListClipsPerRow(t *testing.T) {
	m := NewList([]int{60, 61, 62}, WhiteKeys)
	assert := assert.New(t)
	assert.Equal(3, m.Width())

	key, res := m.Resolve(1)
	assert.Equal(uint8(61), key)
	assert.Equal(Clipped, res)

	_, res = m.Resolve(2)
	assert.Equal(Mapped, res)

	_, res = m.Resolve(3)
	assert.Equal(Excluded, res)
}

func TestListColumnReturnsFirstMatch(t *testing.T) {
	m := NewList([]int{64, 60, 64}, AllKeys)
	col, ok := m.Column(64)
	assert.True(t, ok)
	assert.Equal(t, 0, col)

	_, ok = m.Column(72)
	assert.False(t, ok)
}

func TestName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C4", Name(60))
	assert.Equal("C-1", Name(0))
	assert.Equal("A#4", Name(70))
	assert.Equal("G9", Name(127))
}
