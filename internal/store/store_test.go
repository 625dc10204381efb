package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/foldspan/internal/fold"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestFile(t *testing.T, s *Store, path, lang string) *File {
	t.Helper()
	f := &File{Path: path, Language: lang, Hash: "abc123", LineCount: 10, LastScanned: time.Now().Truncate(time.Second)}
	id, err := s.InsertFile(f)
	require.NoError(t, err)
	require.Positive(t, id)
	return f
}

func TestMigrate_TablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"files", "regions"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestMigrate_WALMode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestFile_InsertAndRetrieve(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	f := insertTestFile(t, s, "/src/main.go", "go")

	got, err := s.FileByPath("/src/main.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, "go", got.Language)
	assert.Equal(t, "abc123", got.Hash)
	assert.Equal(t, 10, got.LineCount)
}

func TestFile_ByPathNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.FileByPath("/nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFiles_OrderedByPath(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	insertTestFile(t, s, "/src/b.go", "go")
	insertTestFile(t, s, "/src/a.py", "python")

	files, err := s.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/src/a.py", files[0].Path)
	assert.Equal(t, "/src/b.go", files[1].Path)
}

func TestRegions_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/src/main.go", "go")

	regions := []fold.Region{
		{Range: fold.Range{Start: 0, End: 42}, Placeholder: "//...", Collapsed: false},
		{Range: fold.Range{Start: 100, End: 180}, Placeholder: "/*...*/", Collapsed: true},
	}
	require.NoError(t, s.InsertRegions(f.ID, regions))

	got, err := s.RegionsByFile(f.ID)
	require.NoError(t, err)
	assert.Equal(t, regions, got)
}

func TestRegions_EmptyFile(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/src/empty.go", "go")

	require.NoError(t, s.InsertRegions(f.ID, nil))
	got, err := s.RegionsByFile(f.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteFileData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/src/main.go", "go")
	require.NoError(t, s.InsertRegions(f.ID, []fold.Region{
		{Range: fold.Range{Start: 0, End: 5}, Placeholder: "//..."},
	}))

	require.NoError(t, s.DeleteFileData(f.ID))

	got, err := s.FileByPath("/src/main.go")
	require.NoError(t, err)
	assert.Nil(t, got)

	regions, err := s.RegionsByFile(f.ID)
	require.NoError(t, err)
	assert.Empty(t, regions)
}
