package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/foldspan"
)

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("line, doc")
	require.NoError(t, err)
	assert.Equal(t, []foldspan.Kind{foldspan.LineComment, foldspan.DocComment}, kinds)

	_, err = parseKinds("line,banana")
	require.Error(t, err)
}

func TestRenderFolded(t *testing.T) {
	src := []byte("head\n// a\n// b\ntail\n")
	regions := []foldspan.Region{
		{Range: foldspan.Range{Start: 5, End: 14}, Placeholder: "//..."},
	}

	var buf bytes.Buffer
	renderFolded(&buf, src, regions)
	assert.Equal(t, "head\n//...\ntail\n", buf.String())
}

func TestRenderFolded_NoRegions(t *testing.T) {
	src := []byte("plain\n")
	var buf bytes.Buffer
	renderFolded(&buf, src, nil)
	assert.Equal(t, "plain\n", buf.String())
}

func TestFormatResultsText(t *testing.T) {
	results := []foldspan.FileRegions{
		{
			Path:     "a.go",
			Language: "go",
			Regions: []foldspan.Region{
				{Range: foldspan.Range{Start: 10, End: 30}, Placeholder: "//...", Collapsed: true},
			},
		},
	}

	var buf bytes.Buffer
	formatResultsText(&buf, results)
	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "//...")
	assert.Contains(t, out, "true")
}

func TestResolveTargetDir(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveTargetDir([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = resolveTargetDir([]string{dir + "/missing"})
	require.Error(t, err)
}
