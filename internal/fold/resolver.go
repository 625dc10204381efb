package fold

import "github.com/jward/foldspan/internal/dialect"

// Verdict explains the outcome of a resolve or describe call. Every
// "not foldable" outcome is an explicit verdict rather than an error, since
// callers (and tests) need to distinguish the causes.
type Verdict int

const (
	// Folded means a region was resolved.
	Folded Verdict = iota
	// AlreadyProcessed means the token was consumed earlier in this pass,
	// either as an initiating comment or absorbed into a merge run.
	AlreadyProcessed
	// UnsupportedKind means the dialect has no delimiters configured for the
	// token's comment kind, or the token is not a comment at all.
	UnsupportedKind
	// CustomRegionMarker means the token is a structural region pragma,
	// which is never folded as a comment.
	CustomRegionMarker
	// Isolated means a single line comment had no run partner; line comments
	// only fold as runs of two or more.
	Isolated
	// NoPlaceholder means a range was resolved but the dialect could not
	// produce placeholder text for it. Only Describe reports this.
	NoPlaceholder
)

func (v Verdict) String() string {
	switch v {
	case Folded:
		return "folded"
	case AlreadyProcessed:
		return "already-processed"
	case UnsupportedKind:
		return "unsupported-kind"
	case CustomRegionMarker:
		return "custom-region-marker"
	case Isolated:
		return "isolated"
	case NoPlaceholder:
		return "no-placeholder"
	default:
		return "unknown"
	}
}

// Resolve decides the fold range for one comment token.
//
// The token is marked processed before any other logic, even when the call
// yields no range, so each token is visited at most once per pass. Block and
// doc comments fold over their own span. Line comments fold only as runs:
// the sibling sequence is scanned forward, whitespace is skipped, and every
// following line comment that is not a custom-region marker and not already
// processed is absorbed into the run; any other token ends the scan. A run
// needs at least one absorbed partner, so an isolated line comment never
// folds alone.
//
// after must yield the tokens following tok in document order.
func Resolve(tok Token, d dialect.Dialect, processed *ProcessedSet, isCustomRegion func(Token) bool, after Seq) (Range, Verdict) {
	if !processed.Add(tok) {
		return Range{}, AlreadyProcessed
	}

	switch tok.Kind {
	case DocComment:
		if !d.SupportsDoc() {
			return Range{}, UnsupportedKind
		}
		return tok.Range, Folded
	case BlockComment:
		if !d.SupportsBlock() {
			return Range{}, UnsupportedKind
		}
		return tok.Range, Folded
	case LineComment:
		if !d.SupportsLine() {
			return Range{}, UnsupportedKind
		}
		return lineRunRange(tok, processed, isCustomRegion, after)
	default:
		return Range{}, UnsupportedKind
	}
}

// lineRunRange merges a run of consecutive line comments into one range.
// We want runs like
//
//	// this is comment line 1
//	// this is comment line 2
//
// to fold as a single region. The caller traverses every token of the file,
// so this is reached for each comment in the run; absorbing followers into
// the processed set during the first call makes the later calls no-ops.
func lineRunRange(start Token, processed *ProcessedSet, isCustomRegion func(Token) bool, after Seq) (Range, Verdict) {
	if isCustomRegion(start) {
		return Range{}, CustomRegionMarker
	}

	var last *Token
	for tok := range after {
		if tok.Kind == Whitespace {
			continue
		}
		if tok.Kind == LineComment && !isCustomRegion(tok) && !processed.Contains(tok) {
			processed.Add(tok)
			t := tok
			last = &t
			continue
		}
		// Anything else ends the run; tokens already absorbed stay in it.
		break
	}

	if last == nil {
		return Range{}, Isolated
	}
	return Range{Start: start.Range.Start, End: last.Range.End}, Folded
}
