package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jward/foldspan"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List supported languages and their comment dialects",
	Args:  cobra.NoArgs,
	RunE:  runLangs,
}

func init() {
	langsCmd.Flags().StringVar(&flagDialects, "dialects", "", "foldspan.toml with dialect overrides and region markers")
}

// langEntry is the JSON shape for one language's dialect table.
type langEntry struct {
	Language string `json:"language"`
	Line     string `json:"line,omitempty"`
	Block    string `json:"block,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

func runLangs(cmd *cobra.Command, args []string) error {
	var opts []foldspan.Option
	if flagDialects != "" {
		opts = append(opts, foldspan.WithDialectFile(flagDialects))
	}
	engine, err := foldspan.New("", opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	registry := engine.Dialects()
	langs := registry.Languages()
	sort.Strings(langs)

	entries := make([]langEntry, 0, len(langs))
	for _, lang := range langs {
		d, _ := registry.ForLanguage(lang)
		entry := langEntry{Language: lang, Line: d.Line}
		if d.SupportsBlock() {
			entry.Block = d.BlockStart + " " + d.BlockEnd
		}
		if d.SupportsDoc() {
			entry.Doc = d.DocStart + " " + d.DocEnd
		}
		entries = append(entries, entry)
	}

	if flagFormat == "json" {
		return outputJSON(os.Stdout, entries)
	}
	formatLangsText(os.Stdout, entries)
	return nil
}

// formatLangsText formats dialect tables as aligned columns.
func formatLangsText(w io.Writer, entries []langEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tLINE\tBLOCK\tDOC")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Language, e.Line, e.Block, e.Doc)
	}
	tw.Flush()
}
