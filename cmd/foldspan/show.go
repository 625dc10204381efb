package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jward/foldspan"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a file with its comment regions folded",
	Long:  "Resolves the file's fold regions and prints the source with each region collapsed to its placeholder. Placeholders are highlighted when stdout is a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagReplacement, "replacement", "", "placeholder replacement text (default \"...\")")
	showCmd.Flags().StringVar(&flagDialects, "dialects", "", "foldspan.toml with dialect overrides and region markers")
}

// placeholderColor highlights folded placeholders in show output. fatih/color
// disables itself automatically when stdout is not a terminal.
var placeholderColor = color.New(color.FgCyan, color.Bold)

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lang, ok := foldspan.LanguageForFile(path)
	if !ok {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	var opts []foldspan.Option
	if flagReplacement != "" {
		opts = append(opts, foldspan.WithReplacement(flagReplacement))
	}
	if flagDialects != "" {
		opts = append(opts, foldspan.WithDialectFile(flagDialects))
	}

	// show is a one-shot pass; no cache database.
	engine, err := foldspan.New("", opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	regions, err := engine.ScanSource(context.Background(), src, lang)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	renderFolded(os.Stdout, src, regions)
	return nil
}

// renderFolded writes src with each fold region replaced by its placeholder.
// Regions arrive ordered by start offset and non-overlapping.
func renderFolded(w io.Writer, src []byte, regions []foldspan.Region) {
	pos := 0
	for _, r := range regions {
		w.Write(src[pos:r.Range.Start])
		placeholderColor.Fprint(w, r.Placeholder)
		pos = r.Range.End
	}
	w.Write(src[pos:])
}
