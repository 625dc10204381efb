// Package foldspan resolves comment fold regions for source code: given a
// file, it decides which comment spans an editor should be able to collapse
// and computes the placeholder text shown when they are collapsed. Parsing is
// done with tree-sitter for 10 languages: Go, TypeScript, JavaScript, Python,
// Rust, C, C++, Java, PHP, and Ruby.
//
// # Pipeline
//
// For each file, foldspan parses the source with tree-sitter, flattens the
// syntax tree into a token stream, and resolves every comment token against
// the language's comment dialect:
//
//   - Block and documentation comments fold over their own span; a
//     documentation comment's placeholder previews its first content line.
//   - Runs of two or more consecutive single-line comments merge into one
//     region. An isolated line comment never folds alone.
//   - Custom-region markers (//region, // <editor-fold>, and configured
//     extras) are structural pragmas and are never folded as comments.
//
// # Usage
//
// Create an Engine, scan files, and read back regions:
//
//	e, err := foldspan.New(".foldspan/cache.db")
//	if err != nil { ... }
//	defer e.Close()
//
//	ctx := context.Background()
//	results, err := e.ScanDirectory(ctx, "path/to/project")
//
// For a one-shot, cache-free pass over an in-memory buffer:
//
//	regions, err := e.ScanSource(ctx, src, "go")
//
// # Incremental scanning
//
// With a cache database configured, [Engine.ScanFiles] hashes file contents
// and serves regions from the cache when a file is unchanged. Use
// [WithLanguages] to restrict which languages the Engine processes.
//
// # Configuration
//
// A foldspan.toml file (see [WithDialectFile]) can override per-language
// comment delimiters and add custom-region marker prefixes. Team-specific
// marker conventions beyond simple prefixes can be expressed as a Risor
// predicate script via [WithRegionScript].
package foldspan
