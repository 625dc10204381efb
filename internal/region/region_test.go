package region

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jward/foldspan/internal/dialect"
	"github.com/jward/foldspan/internal/fold"
)

func lineTok(src string) ([]byte, fold.Token) {
	return []byte(src), fold.Token{Kind: fold.LineComment, Range: fold.Range{Start: 0, End: len(src)}}
}

func TestIsCustomRegion(t *testing.T) {
	t.Parallel()
	slashes := dialect.Dialect{Line: "//"}
	hash := dialect.Dialect{Line: "#"}

	tests := []struct {
		name string
		src  string
		d    dialect.Dialect
		want bool
	}{
		{"region marker", "//region Setup", slashes, true},
		{"region marker with space", "// region Setup", slashes, true},
		{"endregion marker", "// endregion", slashes, true},
		{"editor-fold", "// <editor-fold desc=\"x\">", slashes, true},
		{"editor-fold close", "// </editor-fold>", slashes, true},
		{"plain comment", "// regular prose about regions", slashes, false},
		{"word boundary", "// regional variation", slashes, false},
		{"marker alone", "//region", slashes, true},
		{"hash region", "# region imports", hash, true},
		{"wrong prefix", "# region", slashes, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, tok := lineTok(tt.src)
			det := NewDetector(src, tt.d)
			assert.Equal(t, tt.want, det.IsCustomRegion(tok))
		})
	}
}

func TestIsCustomRegion_OnlyLineComments(t *testing.T) {
	t.Parallel()
	src := []byte("/* region */")
	det := NewDetector(src, dialect.Dialect{Line: "//", BlockStart: "/*", BlockEnd: "*/"})

	tok := fold.Token{Kind: fold.BlockComment, Range: fold.Range{Start: 0, End: len(src)}}
	assert.False(t, det.IsCustomRegion(tok))
}

func TestIsCustomRegion_ExtraMarkers(t *testing.T) {
	t.Parallel()
	src, tok := lineTok("// MARK: - Networking")
	det := NewDetector(src, dialect.Dialect{Line: "//"}, "MARK:")
	assert.True(t, det.IsCustomRegion(tok))

	// Extras do not loosen the builtin matching.
	src2, tok2 := lineTok("// marked for later")
	det2 := NewDetector(src2, dialect.Dialect{Line: "//"}, "MARK:")
	assert.False(t, det2.IsCustomRegion(tok2))
}

func TestIsCustomRegion_NoLineDialect(t *testing.T) {
	t.Parallel()
	src, tok := lineTok("//region x")
	det := NewDetector(src, dialect.Dialect{})
	assert.False(t, det.IsCustomRegion(tok))
}
