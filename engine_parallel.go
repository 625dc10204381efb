package foldspan

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/jward/foldspan/internal/lexer"
)

// workItem holds everything a parallel scan worker needs.
type workItem struct {
	path    string
	lang    string
	hash    string
	content []byte

	regions []Region // filled by a worker
}

// scanFilesParallel scans files using a three-phase pipeline:
//
//	Phase A (serial):   Read files, hash check against the cache.
//	Phase B (parallel): Tokenize and resolve via worker pool.
//	Phase C (serial):   Commit results to the cache.
//
// Resolution is pure CPU work over each file's own token stream and
// processed set, so workers share nothing; SQLite writes stay on one
// goroutine.
func (e *Engine) scanFilesParallel(ctx context.Context, paths []string) ([]FileRegions, error) {
	// ---- Phase A: Serial file preparation ----
	var items []workItem
	var results []FileRegions
	var errs []error
	for _, path := range paths {
		item, cached, skip, err := e.prepareFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("prepare %s: %w", path, err))
			continue
		}
		if skip {
			continue
		}
		if cached != nil {
			results = append(results, *cached)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return results, combineErrs(errs)
	}

	// ---- Phase B: Parallel resolution ----
	numWorkers := min(runtime.NumCPU(), len(items))

	workCh := make(chan workItem, len(items))
	for _, item := range items {
		workCh <- item
	}
	close(workCh)

	type result struct {
		item workItem
		err  error
	}
	resultCh := make(chan result, len(items))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				regions, err := e.ScanSource(ctx, item.content, item.lang)
				item.regions = regions
				resultCh <- result{item: item, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// ---- Phase C: Serial commit ----
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("scan %s: %w", res.item.path, res.err))
			continue
		}
		if e.store != nil {
			if err := e.commitFile(res.item.path, res.item.lang, res.item.hash, res.item.content, res.item.regions); err != nil {
				errs = append(errs, fmt.Errorf("commit %s: %w", res.item.path, err))
				continue
			}
		}
		results = append(results, FileRegions{
			Path:     res.item.path,
			Language: res.item.lang,
			Regions:  res.item.regions,
		})
	}

	// Workers finish in arbitrary order; keep output deterministic.
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results, combineErrs(errs)
}

// prepareFile reads and hashes one file. Returns a cached result when the
// file is unchanged, or skip=true when its language is not scanned.
func (e *Engine) prepareFile(path string) (workItem, *FileRegions, bool, error) {
	lang, ok := lexer.LanguageForFile(path)
	if !ok {
		return workItem{}, nil, true, nil
	}
	if e.languages != nil && !e.languages[lang] {
		return workItem{}, nil, true, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return workItem{}, nil, false, fmt.Errorf("read file: %w", err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	if e.store != nil {
		existing, err := e.store.FileByPath(path)
		if err != nil {
			return workItem{}, nil, false, fmt.Errorf("lookup file: %w", err)
		}
		if existing != nil && existing.Hash == hash {
			regions, err := e.store.RegionsByFile(existing.ID)
			if err != nil {
				return workItem{}, nil, false, fmt.Errorf("cached regions: %w", err)
			}
			return workItem{}, &FileRegions{Path: path, Language: lang, Regions: regions}, false, nil
		}
	}

	return workItem{path: path, lang: lang, hash: hash, content: content}, nil, false, nil
}

func combineErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("scanning had %d error(s): %w", len(errs), errs[0])
}
