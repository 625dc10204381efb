// Package region detects custom-region markers: pragma-like line comments
// that mark user-defined foldable boundaries. Markers are structural, not
// prose, so the fold resolver must never treat them as ordinary comments.
package region

import (
	"strings"

	"github.com/jward/foldspan/internal/dialect"
	"github.com/jward/foldspan/internal/fold"
)

// builtinMarkers are the marker prefixes recognized after the line-comment
// delimiter: the region/endregion convention and the editor-fold convention.
var builtinMarkers = []string{
	"region",
	"endregion",
	"<editor-fold",
	"</editor-fold>",
}

// Detector recognizes custom-region markers within one file's source. It
// holds the file's text and dialect for the duration of a scan pass.
type Detector struct {
	src     []byte
	d       dialect.Dialect
	markers []string
}

// NewDetector returns a Detector for src. extraMarkers adds configured
// marker prefixes (matched the same way as the builtin ones).
func NewDetector(src []byte, d dialect.Dialect, extraMarkers ...string) *Detector {
	markers := make([]string, 0, len(builtinMarkers)+len(extraMarkers))
	markers = append(markers, builtinMarkers...)
	markers = append(markers, extraMarkers...)
	return &Detector{src: src, d: d, markers: markers}
}

// IsCustomRegion reports whether the token is a custom-region marker: a line
// comment whose text, after the line-comment prefix, starts with one of the
// marker prefixes. Only line comments qualify.
func (det *Detector) IsCustomRegion(tok fold.Token) bool {
	if tok.Kind != fold.LineComment || !det.d.SupportsLine() {
		return false
	}
	text := string(det.src[tok.Range.Start:tok.Range.End])
	body, ok := strings.CutPrefix(text, det.d.Line)
	if !ok {
		return false
	}
	body = strings.TrimSpace(body)
	for _, marker := range det.markers {
		if matchesMarker(body, marker) {
			return true
		}
	}
	return false
}

// matchesMarker reports whether body starts with marker at a word boundary:
// "region Setup" matches "region" but "regional variation" does not. The
// boundary rule only applies when the marker ends in a letter or digit, so
// punctuation-terminated markers like "MARK:" and "<editor-fold" match as
// plain prefixes.
func matchesMarker(body, marker string) bool {
	rest, ok := strings.CutPrefix(body, marker)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	last := marker[len(marker)-1]
	if !isWordByte(last) {
		return true
	}
	return !isWordByte(rest[0])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
