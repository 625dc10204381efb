package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/foldspan"
)

var (
	flagDB     string
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "foldspan",
	Short:         "Comment fold-region resolver for source code",
	Long:          "Foldspan parses source files with tree-sitter and computes the comment regions an editor can collapse, with the placeholder text shown for each.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "cache database path (default: .foldspan/cache.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(langsCmd)
}

var (
	flagForce        bool
	flagNoCache      bool
	flagLanguages    string
	flagReplacement  string
	flagCollapse     string
	flagDialects     string
	flagRegionScript string
	flagSerial       bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory and resolve its comment fold regions",
	Long:  "Parses source files with tree-sitter, resolves foldable comment regions, and caches the results in a SQLite database.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&flagForce, "force", false, "delete the cache database and rescan from scratch")
	scanCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "resolve without a cache database")
	scanCmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,typescript)")
	scanCmd.Flags().StringVar(&flagReplacement, "replacement", "", "placeholder replacement text (default \"...\")")
	scanCmd.Flags().StringVar(&flagCollapse, "collapse", "", "comma-separated comment kinds collapsed by default: line,block,doc")
	scanCmd.Flags().StringVar(&flagDialects, "dialects", "", "foldspan.toml with dialect overrides and region markers")
	scanCmd.Flags().StringVar(&flagRegionScript, "region-script", "", "Risor predicate script for custom-region markers")
	scanCmd.Flags().BoolVar(&flagSerial, "serial", false, "disable the parallel scan pipeline")
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	dbPath := ""
	if !flagNoCache {
		repoRoot := findRepoRoot(targetDir)
		dbPath = resolveDBPath(repoRoot)

		cacheDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", cacheDir, err)
		}

		// Handle --force: delete the cache file entirely.
		if flagForce {
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing database for --force: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Cleared cache: %s\n", dbPath)
		}
	}

	opts, err := engineOptions()
	if err != nil {
		return err
	}

	engine, err := foldspan.New(dbPath, opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	results, err := engine.ScanDirectory(context.Background(), targetDir)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	if err := outputResults(os.Stdout, results); err != nil {
		return err
	}

	total := 0
	for _, fr := range results {
		total += len(fr.Regions)
	}
	fmt.Fprintf(os.Stderr, "Resolved %d region(s) in %d file(s) in %s\n",
		total, len(results), time.Since(start).Round(time.Millisecond))
	if dbPath != "" {
		fmt.Fprintf(os.Stderr, "Cache: %s\n", dbPath)
	}

	return nil
}

// engineOptions translates scan flags into Engine options.
func engineOptions() ([]foldspan.Option, error) {
	var opts []foldspan.Option
	opts = append(opts, foldspan.WithParallel(!flagSerial))

	if flagLanguages != "" {
		langs := strings.Split(flagLanguages, ",")
		for i := range langs {
			langs[i] = strings.TrimSpace(langs[i])
		}
		opts = append(opts, foldspan.WithLanguages(langs...))
	}
	if flagReplacement != "" {
		opts = append(opts, foldspan.WithReplacement(flagReplacement))
	}
	if flagCollapse != "" {
		kinds, err := parseKinds(flagCollapse)
		if err != nil {
			return nil, err
		}
		opts = append(opts, foldspan.WithCollapsed(kinds...))
	}
	if flagDialects != "" {
		opts = append(opts, foldspan.WithDialectFile(flagDialects))
	}
	if flagRegionScript != "" {
		src, err := os.ReadFile(flagRegionScript)
		if err != nil {
			return nil, fmt.Errorf("reading region script: %w", err)
		}
		opts = append(opts, foldspan.WithRegionScript(string(src)))
	}
	return opts, nil
}

// parseKinds maps --collapse values to comment kinds.
func parseKinds(s string) ([]foldspan.Kind, error) {
	var kinds []foldspan.Kind
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "line":
			kinds = append(kinds, foldspan.LineComment)
		case "block":
			kinds = append(kinds, foldspan.BlockComment)
		case "doc":
			kinds = append(kinds, foldspan.DocComment)
		default:
			return nil, fmt.Errorf("invalid comment kind %q: must be line, block or doc", name)
		}
	}
	return kinds, nil
}

// resolveTargetDir returns the absolute path of the directory to scan.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the default.
func resolveDBPath(repoRoot string) string {
	if flagDB != "" {
		if filepath.IsAbs(flagDB) {
			return flagDB
		}
		return filepath.Join(repoRoot, flagDB)
	}
	return filepath.Join(repoRoot, ".foldspan", "cache.db")
}
