// Package lexer turns source files into the flat token stream the fold
// resolver consumes. Parsing is done with tree-sitter; the concrete syntax
// tree is flattened into leaves in document order, comment leaves are
// classified against the language's dialect, and the gaps between leaves are
// synthesized into whitespace tokens so comment runs separated by blank
// lines stay mergeable.
package lexer

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/foldspan/internal/dialect"
	"github.com/jward/foldspan/internal/fold"
)

// Tokenize parses src as lang and returns its flat token stream. The dialect
// drives comment classification: a comment leaf's text is matched against the
// doc, block and line delimiters in that order, so "/**" wins over "/*".
func Tokenize(ctx context.Context, src []byte, lang string, d dialect.Dialect) ([]fold.Token, error) {
	grammar, ok := GrammarForLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("lexer: unsupported language %q", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("lexer: parse %s: %w", lang, err)
	}
	defer tree.Close()

	var leaves []fold.Token
	collectLeaves(tree.RootNode(), src, lang, d, &leaves)
	return withGapTokens(leaves, src, lang), nil
}

// collectLeaves appends one token per leaf node in document order. Comment
// nodes are not descended into even when the grammar gives them children.
func collectLeaves(node *sitter.Node, src []byte, lang string, d dialect.Dialect, out *[]fold.Token) {
	r := fold.Range{Start: int(node.StartByte()), End: int(node.EndByte())}

	if isCommentNode(node) {
		*out = append(*out, fold.Token{
			Kind:     classifyComment(string(src[r.Start:r.End]), d),
			Range:    r,
			Language: lang,
		})
		return
	}

	count := int(node.ChildCount())
	if count == 0 {
		if r.Len() > 0 {
			*out = append(*out, fold.Token{Kind: fold.Other, Range: r, Language: lang})
		}
		return
	}
	for i := 0; i < count; i++ {
		collectLeaves(node.Child(i), src, lang, d, out)
	}
}

// isCommentNode matches the comment node types across the supported
// grammars: "comment", "line_comment", "block_comment", "doc_comment".
func isCommentNode(node *sitter.Node) bool {
	return strings.Contains(node.Type(), "comment")
}

// classifyComment maps a comment's text onto a fold kind by delimiter
// prefix. Kinds whose delimiters the dialect does not configure are never
// produced. Text matching no configured delimiter is classified Other and
// left alone by the resolver.
func classifyComment(text string, d dialect.Dialect) fold.Kind {
	switch {
	case d.SupportsDoc() && strings.HasPrefix(text, d.DocStart):
		return fold.DocComment
	case d.SupportsBlock() && strings.HasPrefix(text, d.BlockStart):
		return fold.BlockComment
	case d.SupportsLine() && strings.HasPrefix(text, d.Line):
		return fold.LineComment
	default:
		return fold.Other
	}
}

// withGapTokens inserts a token for every non-empty gap between consecutive
// leaves: whitespace-only gaps become Whitespace tokens, anything else (text
// the grammar swallowed without a leaf) becomes Other so it still terminates
// a merge scan.
func withGapTokens(leaves []fold.Token, src []byte, lang string) []fold.Token {
	out := make([]fold.Token, 0, len(leaves)*2)
	prevEnd := -1
	for _, tok := range leaves {
		if prevEnd >= 0 && tok.Range.Start > prevEnd {
			gap := fold.Range{Start: prevEnd, End: tok.Range.Start}
			kind := fold.Other
			if len(strings.TrimSpace(string(src[gap.Start:gap.End]))) == 0 {
				kind = fold.Whitespace
			}
			out = append(out, fold.Token{Kind: kind, Range: gap, Language: lang})
		}
		out = append(out, tok)
		if tok.Range.End > prevEnd {
			prevEnd = tok.Range.End
		}
	}
	return out
}

// After returns the restartable sequence of tokens following index i, in
// document order. The resolver's merge scan iterates it at most once per
// resolve call but may be handed the same sequence again on a later call.
func After(tokens []fold.Token, i int) fold.Seq {
	return func(yield func(fold.Token) bool) {
		for _, tok := range tokens[i+1:] {
			if !yield(tok) {
				return
			}
		}
	}
}
