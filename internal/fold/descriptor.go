package fold

import "github.com/jward/foldspan/internal/dialect"

// Region is a resolved fold region: the character span to collapse, the
// placeholder shown in its place, and whether the editor should start it
// collapsed.
type Region struct {
	Range       Range  `json:"range"`
	Placeholder string `json:"placeholder"`
	Collapsed   bool   `json:"collapsed"`
}

// Describe resolves one comment token into a fold region: range resolution
// via Resolve, then placeholder computation for the token's kind. The verdict
// carries the reason whenever no region is produced.
func Describe(tok Token, doc Document, d dialect.Dialect, processed *ProcessedSet, isCustomRegion func(Token) bool, after Seq, replacement string, collapsed bool) (Region, Verdict) {
	r, v := Resolve(tok, d, processed, isCustomRegion, after)
	if v != Folded {
		return Region{}, v
	}

	placeholder, ok := Placeholder(doc, tok.Kind, r, d, replacement)
	if !ok {
		return Region{}, NoPlaceholder
	}

	return Region{Range: r, Placeholder: placeholder, Collapsed: collapsed}, Folded
}
