package fold

import (
	"fmt"
	"sort"
)

// Document is the read-only view of one file's text the core consumes. It
// must reflect a single consistent snapshot for the duration of a resolution
// pass. Out-of-bounds offsets are caller contract violations; implementations
// should panic rather than clamp, to surface integration bugs early.
type Document interface {
	// LineCount returns the number of lines in the document.
	LineCount() int
	// LineFor returns the zero-based line number containing the byte offset.
	LineFor(offset int) int
	// LineStart returns the byte offset of the first character of the line.
	LineStart(line int) int
	// LineEnd returns the byte offset just past the last character of the
	// line, excluding the line break.
	LineEnd(line int) int
	// Slice returns the document text in [start, end).
	Slice(start, end int) string
}

// LineIndex is a Document over an in-memory byte slice, backed by a
// precomputed line-start table. Lines are split on '\n'; a trailing newline
// does not open an extra line, matching editor line counting.
type LineIndex struct {
	src    []byte
	starts []int
}

// NewLineIndex builds a LineIndex over src. The source is retained, not
// copied; callers must not mutate it while the index is in use.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// LineCount returns the number of lines. An empty document has one line.
func (ix *LineIndex) LineCount() int { return len(ix.starts) }

// LineFor returns the zero-based line containing offset.
func (ix *LineIndex) LineFor(offset int) int {
	if offset < 0 || offset > len(ix.src) {
		panic(fmt.Sprintf("fold: offset %d out of bounds [0, %d]", offset, len(ix.src)))
	}
	// First line starting after offset, minus one.
	i := sort.SearchInts(ix.starts, offset+1)
	return i - 1
}

// LineStart returns the byte offset where line begins.
func (ix *LineIndex) LineStart(line int) int {
	ix.checkLine(line)
	return ix.starts[line]
}

// LineEnd returns the byte offset just past the line's content, excluding
// the trailing '\n' if present.
func (ix *LineIndex) LineEnd(line int) int {
	ix.checkLine(line)
	end := len(ix.src)
	if line+1 < len(ix.starts) {
		end = ix.starts[line+1]
	}
	if end > ix.starts[line] && ix.src[end-1] == '\n' {
		end--
	}
	return end
}

// Slice returns the text in [start, end).
func (ix *LineIndex) Slice(start, end int) string {
	if start < 0 || end > len(ix.src) || start > end {
		panic(fmt.Sprintf("fold: slice [%d, %d) out of bounds [0, %d]", start, end, len(ix.src)))
	}
	return string(ix.src[start:end])
}

func (ix *LineIndex) checkLine(line int) {
	if line < 0 || line >= len(ix.starts) {
		panic(fmt.Sprintf("fold: line %d out of bounds [0, %d)", line, len(ix.starts)))
	}
}
