package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"mapconf/internal/diagnostic"
	"mapconf/internal/flatfile"
	"mapconf/internal/match"
	"mapconf/internal/structure"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	acceptColor  = color.New(color.FgGreen)
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	return table
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func printPaths(w io.Writer, entries []structure.JSONPathEntry) {
	table := newTable(w, "path", "example", "line type", "start", "end")
	for _, e := range entries {
		table.Append([]string{e.Path, e.ExampleValue, e.LineType.Describe(), position(e.Start), position(e.End)})
	}

	table.Render()
}

func printSegments(w io.Writer, fields []flatfile.FieldDefinition, sampleLine string) {
	table := newTable(w, "name", "start", "end", "width", "value")
	for _, f := range fields {
		table.Append([]string{
			f.Name,
			strconv.Itoa(f.Start),
			strconv.Itoa(f.End),
			strconv.Itoa(f.Width()),
			strings.TrimSpace(flatfile.Slice(sampleLine, f)),
		})
	}

	table.Render()
}

func printAutoMap(w io.Writer, res match.Result) {
	for _, c := range res.Accepted {
		acceptColor.Fprintf(w, "%s -> %s (%.2f)\n", c.Source, c.Destination, c.Score)
	}

	for _, u := range res.Unmatched {
		warningColor.Fprintf(w, "%s unmatched: %s", u.Source, u.Reason)
		if len(u.Candidates) > 0 {
			fmt.Fprintf(w, ", candidates: %s", strings.Join(u.Candidates.Destinations(), ", "))
		}

		fmt.Fprintln(w)
	}
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		c := infoColor
		switch d.Severity {
		case diagnostic.SeverityError:
			c = errorColor
		case diagnostic.SeverityWarning:
			c = warningColor
		}

		c.Fprintf(w, "%s", d.Severity)
		fmt.Fprintf(w, ": %s\n", d)

		if len(d.Suggestions) > 0 {
			fmt.Fprintf(w, "  did you mean: %s\n", strings.Join(d.Suggestions, ", "))
		}
	}
}

func position(p int) string {
	if p <= 0 {
		return ""
	}

	return strconv.Itoa(p)
}
