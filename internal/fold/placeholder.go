package fold

import (
	"strings"

	"github.com/jward/foldspan/internal/dialect"
)

// DefaultReplacement stands in for the elided comment body in placeholders.
const DefaultReplacement = "..."

// Placeholder computes the collapsed display text for a comment of the given
// kind and range. Returns ("", false) when the dialect lacks the delimiters
// the kind requires; missing delimiters are never substituted with defaults.
func Placeholder(doc Document, kind Kind, r Range, d dialect.Dialect, replacement string) (string, bool) {
	switch kind {
	case LineComment:
		if !d.SupportsLine() {
			return "", false
		}
		return Compose(d.Line, "", "", replacement), true
	case BlockComment:
		if !d.SupportsBlock() {
			return "", false
		}
		return Compose(d.BlockStart, d.BlockEnd, "", replacement), true
	case DocComment:
		if !d.SupportsDoc() {
			return "", false
		}
		header := CommentHeader(doc, d.DocEnd, d.DocLine, r)
		return Compose(d.DocStart, d.DocEnd, header, replacement), true
	default:
		return "", false
	}
}

// Compose builds placeholder text following the rule
//
//	placeholder ::= prefix [text " "] replacement [suffix]
//
// text and suffix are omitted when empty.
func Compose(prefix, suffix, text, replacement string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	if text != "" {
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	sb.WriteString(replacement)
	sb.WriteString(suffix)
	return sb.String()
}

// CommentHeader extracts the first content line of a documentation comment
// as a preview fragment: the second physical line of the comment, trimmed,
// with a trailing comment suffix and a leading line prefix stripped. Returns
// "" when the comment has no full second line within its range, so a short
// (two-line or less) comment yields no preview.
func CommentHeader(doc Document, commentSuffix, linePrefix string, r Range) string {
	first := doc.LineFor(r.Start)
	second := first + 1

	if second >= doc.LineCount() {
		return ""
	}
	end := doc.LineEnd(second)
	if end > r.End {
		return ""
	}

	line := strings.TrimSpace(doc.Slice(doc.LineStart(second), end))
	line = strings.TrimSuffix(line, commentSuffix)
	line = strings.TrimPrefix(line, linePrefix)
	return strings.TrimSpace(line)
}
