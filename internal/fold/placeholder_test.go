package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/foldspan/internal/dialect"
)

func TestPlaceholder_LineComment(t *testing.T) {
	t.Parallel()
	doc := NewLineIndex([]byte("// hi\n// there\n"))

	got, ok := Placeholder(doc, LineComment, Range{0, 14}, cDialect, "...")
	require.True(t, ok)
	assert.Equal(t, "//...", got)
}

func TestPlaceholder_BlockComment(t *testing.T) {
	t.Parallel()
	doc := NewLineIndex([]byte("/* a\n   b */\n"))

	got, ok := Placeholder(doc, BlockComment, Range{0, 12}, cDialect, "...")
	require.True(t, ok)
	assert.Equal(t, "/*...*/", got)
}

func TestPlaceholder_DocCommentWithHeader(t *testing.T) {
	t.Parallel()
	src := "/**\n * Hello world\n * more\n */\n"
	doc := NewLineIndex([]byte(src))

	got, ok := Placeholder(doc, DocComment, Range{0, 30}, cDialect, "...")
	require.True(t, ok)
	assert.Equal(t, "/**Hello world ...*/", got)
}

func TestPlaceholder_ShortDocCommentHasNoHeader(t *testing.T) {
	t.Parallel()
	// The comment closes on its second line, so no full content line exists
	// inside the range and the preview is empty.
	src := "/** one-liner\n */ code here\n"
	doc := NewLineIndex([]byte(src))

	got, ok := Placeholder(doc, DocComment, Range{0, 17}, cDialect, "...")
	require.True(t, ok)
	assert.Equal(t, "/**...*/", got)
}

func TestPlaceholder_MissingDelimiters(t *testing.T) {
	t.Parallel()
	doc := NewLineIndex([]byte("x\n"))

	tests := []struct {
		name string
		kind Kind
		d    dialect.Dialect
	}{
		{"line without prefix", LineComment, dialect.Dialect{BlockStart: "/*", BlockEnd: "*/"}},
		{"block without suffix", BlockComment, dialect.Dialect{BlockStart: "/*"}},
		{"doc without line prefix", DocComment, dialect.Dialect{DocStart: "/**", DocEnd: "*/"}},
		{"whitespace kind", Whitespace, cDialect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := Placeholder(doc, tt.kind, Range{0, 1}, tt.d, "...")
			assert.False(t, ok)
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                              string
		prefix, suffix, text, replacement string
		want                              string
	}{
		{"prefix only", "//", "", "", "...", "//..."},
		{"prefix and suffix", "/*", "*/", "", "...", "/*...*/"},
		{"with text", "/**", "*/", "Hello world", "...", "/**Hello world ...*/"},
		{"empty text omits separator", "/**", "*/", "", "...", "/**...*/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compose(tt.prefix, tt.suffix, tt.text, tt.replacement))
		})
	}
}

func TestCommentHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		r    Range
		want string
	}{
		{
			name: "second line with line prefix",
			src:  "/**\n * Hello world\n */\n",
			r:    Range{0, 22},
			want: "Hello world",
		},
		{
			name: "second line ending in suffix",
			src:  "/**\n * summary */\nx\n",
			r:    Range{0, 17},
			want: "summary",
		},
		{
			name: "comment starts mid-file",
			src:  "code();\n/**\n * Mid file.\n */\n",
			r:    Range{8, 28},
			want: "Mid file.",
		},
		{
			name: "no second line in document",
			src:  "/** only line",
			r:    Range{0, 13},
			want: "",
		},
		{
			name: "second line extends past comment end",
			src:  "/** short\n */ trailing code\n",
			r:    Range{0, 13},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := NewLineIndex([]byte(tt.src))
			assert.Equal(t, tt.want, CommentHeader(doc, "*/", "*", tt.r))
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	src := "// first\n// second\ncode\n"
	doc := NewLineIndex([]byte(src))
	first := Token{Kind: LineComment, Range: Range{0, 8}}
	second := Token{Kind: LineComment, Range: Range{9, 18}}
	processed := NewProcessedSet()

	reg, v := Describe(first, doc, cDialect, processed, noRegion,
		seqOf(ws(8, 9), second, Token{Kind: Other, Range: Range{19, 23}}),
		"...", true)
	require.Equal(t, Folded, v)
	assert.Equal(t, Range{0, 18}, reg.Range)
	assert.Equal(t, "//...", reg.Placeholder)
	assert.True(t, reg.Collapsed)
}

func TestDescribe_HashDialect(t *testing.T) {
	t.Parallel()
	doc := NewLineIndex([]byte("## a\n## b\n"))
	first := Token{Kind: LineComment, Range: Range{0, 4}}
	second := Token{Kind: LineComment, Range: Range{5, 9}}

	d := dialect.Dialect{Line: "#"}
	reg, v := Describe(first, doc, d, NewProcessedSet(), noRegion, seqOf(second), "...", false)
	require.Equal(t, Folded, v)
	assert.Equal(t, Range{0, 9}, reg.Range)
	assert.Equal(t, "#...", reg.Placeholder)
	assert.False(t, reg.Collapsed)
}
