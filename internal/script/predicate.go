// Package script evaluates user-supplied Risor predicates. Teams mark
// foldable regions with house conventions the builtin detector cannot know
// about; a small script deciding "is this comment a region marker?" covers
// them without new detector code.
package script

import (
	"context"
	"fmt"
	"os"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

// Predicate is a compiled-on-demand Risor script answering a yes/no question
// about one comment. The script sees two globals, text (the comment's full
// text including delimiters) and language (the canonical language name), and
// its final expression must evaluate to a bool.
//
// Example script:
//
//	strings.has_prefix(strings.trim_space(strings.trim_prefix(text, "//")), "SECTION:")
type Predicate struct {
	source string
}

// NewPredicate wraps Risor source code as a predicate.
func NewPredicate(source string) *Predicate {
	return &Predicate{source: source}
}

// LoadPredicate reads a predicate script from disk.
func LoadPredicate(path string) (*Predicate, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return NewPredicate(string(src)), nil
}

// Matches evaluates the script against one comment. A non-bool result is an
// error, not a silent false, so broken scripts surface immediately.
func (p *Predicate) Matches(ctx context.Context, text, language string) (bool, error) {
	result, err := risor.Eval(ctx, p.source,
		risor.WithGlobal("text", text),
		risor.WithGlobal("language", language),
	)
	if err != nil {
		return false, fmt.Errorf("script: eval predicate: %w", err)
	}

	b, ok := result.(*object.Bool)
	if !ok {
		return false, fmt.Errorf("script: predicate returned %s, want bool", result.Type())
	}
	return b.Value(), nil
}
