package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jward/foldspan"
)

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputResults writes scan results in the selected format.
func outputResults(w io.Writer, results []foldspan.FileRegions) error {
	if flagFormat == "json" {
		return outputJSON(w, results)
	}
	formatResultsText(w, results)
	return nil
}

// outputJSON writes any value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatResultsText formats scan results as aligned columns.
func formatResultsText(w io.Writer, results []foldspan.FileRegions) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTART\tEND\tCOLLAPSED\tPLACEHOLDER")
	for _, fr := range results {
		for _, r := range fr.Regions {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%s\n",
				fr.Path, r.Range.Start, r.Range.End, r.Collapsed, r.Placeholder)
		}
	}
	tw.Flush()
}
