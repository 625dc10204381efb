// Package store is the SQLite scan cache: per-file metadata plus the fold
// regions of the last scan, so repeated scans can skip files whose content
// hash is unchanged and still answer region queries.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jward/foldspan/internal/fold"
)

// Store is the SQLite data access layer for the scan cache.
type Store struct {
	db *sql.DB
}

// File is one scanned file's cache record.
type File struct {
	ID          int64
	Path        string
	Language    string
	Hash        string
	LineCount   int
	LastScanned time.Time
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the cache tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  language        TEXT NOT NULL,
  hash            TEXT,
  line_count      INTEGER,
  last_scanned    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS regions (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  start_offset    INTEGER NOT NULL,
  end_offset      INTEGER NOT NULL,
  placeholder     TEXT NOT NULL,
  collapsed       BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_regions_file ON regions(file_id);
`

// --- File operations ---

// InsertFile inserts a file record and sets f.ID.
func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, language, hash, line_count, last_scanned) VALUES (?, ?, ?, ?, ?)",
		f.Path, f.Language, f.Hash, f.LineCount, f.LastScanned,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

// FileByPath returns the cache record for path, or (nil, nil) if the file
// has never been scanned.
func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, language, hash, line_count, last_scanned FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Language, &f.Hash, &f.LineCount, &f.LastScanned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

// Files returns all cached file records ordered by path.
func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query(
		"SELECT id, path, language, hash, line_count, last_scanned FROM files ORDER BY path",
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.Hash, &f.LineCount, &f.LastScanned); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteFileData removes a file record and its regions.
func (s *Store) DeleteFileData(fileID int64) error {
	if _, err := s.db.Exec("DELETE FROM regions WHERE file_id = ?", fileID); err != nil {
		return fmt.Errorf("delete regions: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM files WHERE id = ?", fileID); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// --- Region operations ---

// InsertRegions writes a file's regions in one transaction.
func (s *Store) InsertRegions(fileID int64, regions []fold.Region) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO regions (file_id, start_offset, end_offset, placeholder, collapsed) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range regions {
		if _, err := stmt.Exec(fileID, r.Range.Start, r.Range.End, r.Placeholder, r.Collapsed); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert region: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RegionsByFile returns a file's cached regions ordered by start offset.
func (s *Store) RegionsByFile(fileID int64) ([]fold.Region, error) {
	rows, err := s.db.Query(
		"SELECT start_offset, end_offset, placeholder, collapsed FROM regions WHERE file_id = ? ORDER BY start_offset",
		fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("regions by file: %w", err)
	}
	defer rows.Close()
	var regions []fold.Region
	for rows.Next() {
		var r fold.Region
		if err := rows.Scan(&r.Range.Start, &r.Range.End, &r.Placeholder, &r.Collapsed); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}
