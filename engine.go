package foldspan

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jward/foldspan/internal/dialect"
	"github.com/jward/foldspan/internal/fold"
	"github.com/jward/foldspan/internal/lexer"
	"github.com/jward/foldspan/internal/region"
	"github.com/jward/foldspan/internal/script"
	"github.com/jward/foldspan/internal/store"
)

// LanguageForFile returns the canonical language name for a file path based
// on its extension. Returns ("", false) if the extension is not recognized.
func LanguageForFile(path string) (string, bool) {
	return lexer.LanguageForFile(path)
}

// Engine orchestrates the folding pipeline: file discovery, change
// detection, tokenizing, comment-region resolution, and the scan cache.
type Engine struct {
	store        *store.Store // nil when no cache database is configured
	registry     *dialect.Registry
	languages    map[string]bool // nil means all languages
	replacement  string
	collapsed    map[fold.Kind]bool
	extraMarkers []string
	dialectFile  string
	regionScript *script.Predicate
	regionFunc   func(language, text string) bool

	// useParallel enables the parallel scan pipeline.
	useParallel bool
}

// FileRegions is the scan result for one file.
type FileRegions struct {
	Path     string   `json:"path"`
	Language string   `json:"language"`
	Regions  []Region `json:"regions"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = make(map[string]bool, len(languages))
		for _, lang := range languages {
			e.languages[lang] = true
		}
	}
}

// WithReplacement sets the text standing in for the elided comment body in
// placeholders. Defaults to "...".
func WithReplacement(replacement string) Option {
	return func(e *Engine) {
		e.replacement = replacement
	}
}

// WithCollapsed marks the given comment kinds as collapsed by default in the
// regions the Engine produces.
func WithCollapsed(kinds ...Kind) Option {
	return func(e *Engine) {
		e.collapsed = make(map[fold.Kind]bool, len(kinds))
		for _, k := range kinds {
			e.collapsed[k] = true
		}
	}
}

// WithParallel controls parallel scanning. When true (default), ScanFiles
// resolves files on a worker pool with a single goroutine committing results
// to the cache. Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// WithDialectFile loads a foldspan.toml file of per-language delimiter
// overrides and extra custom-region markers.
func WithDialectFile(path string) Option {
	return func(e *Engine) {
		e.dialectFile = path
	}
}

// WithRegionScript installs a Risor predicate deciding whether a comment is
// a custom-region marker, OR-combined with the builtin detector. The script
// sees text and language globals and must evaluate to a bool.
func WithRegionScript(source string) Option {
	return func(e *Engine) {
		e.regionScript = script.NewPredicate(source)
	}
}

// WithRegionPredicate installs a Go predicate deciding whether a comment is
// a custom-region marker, OR-combined with the builtin detector.
func WithRegionPredicate(fn func(language, text string) bool) Option {
	return func(e *Engine) {
		e.regionFunc = fn
	}
}

// New creates an Engine. dbPath locates the SQLite scan cache; an empty
// dbPath disables caching, in which case every scan resolves from scratch.
func New(dbPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		registry:    dialect.NewRegistry(),
		replacement: fold.DefaultReplacement,
		useParallel: true, // default to parallel scanning
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.dialectFile != "" {
		cfg, err := dialect.LoadConfig(e.dialectFile)
		if err != nil {
			return nil, fmt.Errorf("foldspan: %w", err)
		}
		e.registry.Apply(cfg.Overrides())
		e.extraMarkers = cfg.Regions.Markers
	}

	if dbPath != "" {
		s, err := store.NewStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("foldspan: create store: %w", err)
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("foldspan: migrate: %w", err)
		}
		e.store = s
	}

	return e, nil
}

// Close releases the Engine's database resources, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Store returns the underlying scan cache, or nil when caching is disabled.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Dialects returns the Engine's dialect registry, including any overrides
// loaded from a dialect file.
func (e *Engine) Dialects() *dialect.Registry {
	return e.registry
}

// ScanSource resolves the fold regions of an in-memory source buffer. One
// call is one full pass: a fresh processed set is created for it and
// discarded afterwards, so no comment is folded twice and no state leaks
// between files.
func (e *Engine) ScanSource(ctx context.Context, src []byte, lang string) ([]Region, error) {
	d, ok := e.registry.ForLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("foldspan: no dialect for language %q", lang)
	}

	tokens, err := lexer.Tokenize(ctx, src, lang, d)
	if err != nil {
		return nil, err
	}

	doc := fold.NewLineIndex(src)
	detector := region.NewDetector(src, d, e.extraMarkers...)
	processed := fold.NewProcessedSet()

	var scriptErr error
	isCustom := func(tok fold.Token) bool {
		if detector.IsCustomRegion(tok) {
			return true
		}
		text := string(src[tok.Range.Start:tok.Range.End])
		if e.regionFunc != nil && e.regionFunc(lang, text) {
			return true
		}
		if e.regionScript != nil {
			match, err := e.regionScript.Matches(ctx, text, lang)
			if err != nil && scriptErr == nil {
				scriptErr = err
			}
			return match
		}
		return false
	}

	var regions []Region
	for i, tok := range tokens {
		if !tok.Kind.IsComment() {
			continue
		}
		reg, v := fold.Describe(tok, doc, d, processed, isCustom,
			lexer.After(tokens, i), e.replacement, e.collapsed[tok.Kind])
		if v != fold.Folded {
			continue
		}
		regions = append(regions, reg)
	}
	if scriptErr != nil {
		return nil, fmt.Errorf("foldspan: region script: %w", scriptErr)
	}
	return regions, nil
}

// ScanFiles scans the given file paths and returns per-file regions. When
// WithParallel is enabled, resolution runs on a worker pool; otherwise files
// are scanned serially. With a cache configured, unchanged files (same
// content hash) are served from the cache without re-parsing.
//
// Errors on individual files are collected; scanning continues past them.
func (e *Engine) ScanFiles(ctx context.Context, paths []string) ([]FileRegions, error) {
	if e.useParallel {
		return e.scanFilesParallel(ctx, paths)
	}
	return e.scanFilesSerial(ctx, paths)
}

func (e *Engine) scanFilesSerial(ctx context.Context, paths []string) ([]FileRegions, error) {
	var results []FileRegions
	var errs []error
	for _, path := range paths {
		fr, ok, err := e.scanFile(ctx, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("scan %s: %w", path, err))
			continue
		}
		if ok {
			results = append(results, fr)
		}
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("scanning had %d error(s): %w", len(errs), errs[0])
	}
	return results, nil
}

// scanFile scans one file, using the cache when possible. The second return
// is false when the file's language is unsupported or filtered out.
func (e *Engine) scanFile(ctx context.Context, path string) (FileRegions, bool, error) {
	lang, ok := lexer.LanguageForFile(path)
	if !ok {
		return FileRegions{}, false, nil // unsupported extension
	}
	if e.languages != nil && !e.languages[lang] {
		return FileRegions{}, false, nil // filtered out
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return FileRegions{}, false, fmt.Errorf("read file: %w", err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	if e.store != nil {
		existing, err := e.store.FileByPath(path)
		if err != nil {
			return FileRegions{}, false, fmt.Errorf("lookup file: %w", err)
		}
		if existing != nil && existing.Hash == hash {
			regions, err := e.store.RegionsByFile(existing.ID)
			if err != nil {
				return FileRegions{}, false, fmt.Errorf("cached regions: %w", err)
			}
			return FileRegions{Path: path, Language: lang, Regions: regions}, true, nil
		}
	}

	regions, err := e.ScanSource(ctx, content, lang)
	if err != nil {
		return FileRegions{}, false, err
	}

	if e.store != nil {
		if err := e.commitFile(path, lang, hash, content, regions); err != nil {
			return FileRegions{}, false, err
		}
	}
	return FileRegions{Path: path, Language: lang, Regions: regions}, true, nil
}

// commitFile replaces a file's cache record and regions.
func (e *Engine) commitFile(path, lang, hash string, content []byte, regions []Region) error {
	existing, err := e.store.FileByPath(path)
	if err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}
	if existing != nil {
		if err := e.store.DeleteFileData(existing.ID); err != nil {
			return fmt.Errorf("delete old data: %w", err)
		}
	}

	lineCount := bytes.Count(content, []byte{'\n'}) + 1
	fileID, err := e.store.InsertFile(&store.File{
		Path:        path,
		Language:    lang,
		Hash:        hash,
		LineCount:   lineCount,
		LastScanned: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	if err := e.store.InsertRegions(fileID, regions); err != nil {
		return fmt.Errorf("insert regions: %w", err)
	}
	return nil
}

// Regions returns the cached regions for a previously scanned path.
// Returns (nil, nil) when the path has never been scanned.
func (e *Engine) Regions(path string) ([]Region, error) {
	if e.store == nil {
		return nil, fmt.Errorf("foldspan: no cache database configured")
	}
	f, err := e.store.FileByPath(path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	return e.store.RegionsByFile(f.ID)
}

// skipDirs are directories excluded from directory scans.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// ScanDirectory walks root and scans all files with supported extensions.
// If root is inside a git repository, uses git ls-files to respect
// .gitignore. Falls back to a filesystem walk (skipping hidden dirs,
// node_modules, vendor, __pycache__) if git is unavailable.
func (e *Engine) ScanDirectory(ctx context.Context, root string) ([]FileRegions, error) {
	paths, err := e.gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available — fall back to walk.
		paths, err = e.walkListFiles(root)
		if err != nil {
			return nil, err
		}
	}
	return e.ScanFiles(ctx, paths)
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root, filtered to supported languages.
func (e *Engine) gitListFiles(root string) ([]string, error) {
	// --cached: tracked files, --others: untracked files,
	// --exclude-standard: respect .gitignore, .git/info/exclude, global excludes.
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		absPath := filepath.Join(root, line)
		if _, ok := lexer.LanguageForFile(absPath); ok {
			paths = append(paths, absPath)
		}
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem, used as a
// fallback when git is not available.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := lexer.LanguageForFile(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}
