// Package fold resolves which comment spans of a tokenized source file are
// collapsible and computes the placeholder text shown when they are collapsed.
//
// The package is a pure library core: it does not tokenize source text, does
// not render anything, and holds no state beyond one resolution pass over one
// file. Callers supply the token stream, the comment dialect, a Document view
// of the file text, and a custom-region predicate; the core hands back fold
// region descriptors.
package fold

import "iter"

// Kind classifies a token for folding purposes.
type Kind int

const (
	// Other is any token the resolver does not fold and does not skip.
	Other Kind = iota
	// Whitespace tokens separate comments without terminating a merge scan.
	Whitespace
	// LineComment is a single-line comment ("// ...", "# ...").
	LineComment
	// BlockComment is a multi-line comment ("/* ... */").
	BlockComment
	// DocComment is a documentation comment ("/** ... */").
	DocComment
)

// IsComment reports whether the kind is one of the three comment kinds.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment || k == DocComment
}

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	case DocComment:
		return "doc-comment"
	default:
		return "other"
	}
}

// Range is a half-open [Start, End) byte span within a document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Token is a minimal lexical unit: a kind tag and a byte range within the
// document, plus the canonical language name of the file it came from. Tokens
// are produced and owned by the token stream provider; the core only reads
// them. Identity is positional: two textually identical comments at different
// offsets are distinct tokens.
type Token struct {
	Kind     Kind
	Range    Range
	Language string
}

// Seq is a lazy, forward-only, restartable sequence of tokens. The resolver
// only ever scans strictly forward from an initiating comment, so the sibling
// walk is abstracted as the sequence of tokens that follow it.
type Seq = iter.Seq[Token]

// ProcessedSet records which tokens have already been consumed during one
// traversal pass over one file. Membership is keyed by token position, so the
// set is only meaningful against a single immutable token stream: it is not
// valid across edits or across concurrent passes. Create one per pass, share
// it by reference across every resolve call of that pass, then discard it.
type ProcessedSet struct {
	seen map[Range]struct{}
}

// NewProcessedSet returns an empty set for one traversal pass.
func NewProcessedSet() *ProcessedSet {
	return &ProcessedSet{seen: make(map[Range]struct{})}
}

// Add inserts the token and reports whether it was newly added.
func (p *ProcessedSet) Add(tok Token) bool {
	if _, ok := p.seen[tok.Range]; ok {
		return false
	}
	p.seen[tok.Range] = struct{}{}
	return true
}

// Contains reports whether the token was already processed in this pass.
func (p *ProcessedSet) Contains(tok Token) bool {
	_, ok := p.seen[tok.Range]
	return ok
}

// Len returns the number of processed tokens.
func (p *ProcessedSet) Len() int { return len(p.seen) }
