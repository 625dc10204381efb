package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex_Basics(t *testing.T) {
	t.Parallel()
	ix := NewLineIndex([]byte("abc\ndef\n\nghi"))

	require.Equal(t, 4, ix.LineCount())

	assert.Equal(t, 0, ix.LineStart(0))
	assert.Equal(t, 3, ix.LineEnd(0))
	assert.Equal(t, 4, ix.LineStart(1))
	assert.Equal(t, 7, ix.LineEnd(1))
	assert.Equal(t, 8, ix.LineStart(2))
	assert.Equal(t, 8, ix.LineEnd(2)) // empty line
	assert.Equal(t, 9, ix.LineStart(3))
	assert.Equal(t, 12, ix.LineEnd(3)) // no trailing newline

	assert.Equal(t, 0, ix.LineFor(0))
	assert.Equal(t, 0, ix.LineFor(3))
	assert.Equal(t, 1, ix.LineFor(4))
	assert.Equal(t, 2, ix.LineFor(8))
	assert.Equal(t, 3, ix.LineFor(11))

	assert.Equal(t, "def", ix.Slice(4, 7))
}

func TestLineIndex_TrailingNewline(t *testing.T) {
	t.Parallel()
	// A trailing newline does not open an extra line.
	ix := NewLineIndex([]byte("abc\n"))
	assert.Equal(t, 1, ix.LineCount())
	assert.Equal(t, 3, ix.LineEnd(0))
}

func TestLineIndex_Empty(t *testing.T) {
	t.Parallel()
	ix := NewLineIndex(nil)
	assert.Equal(t, 1, ix.LineCount())
	assert.Equal(t, 0, ix.LineStart(0))
	assert.Equal(t, 0, ix.LineEnd(0))
}

func TestLineIndex_OutOfBoundsPanics(t *testing.T) {
	t.Parallel()
	ix := NewLineIndex([]byte("abc"))

	assert.Panics(t, func() { ix.LineFor(-1) })
	assert.Panics(t, func() { ix.LineFor(4) })
	assert.Panics(t, func() { ix.LineStart(1) })
	assert.Panics(t, func() { ix.LineEnd(-1) })
	assert.Panics(t, func() { ix.Slice(0, 4) })
	assert.Panics(t, func() { ix.Slice(2, 1) })
}
