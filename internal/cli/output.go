package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"ghl/internal/utils"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// FormatTable is the default human-readable format.
	FormatTable OutputFormat = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON OutputFormat = "json"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV OutputFormat = "csv"
	// FormatYAML outputs data as YAML.
	FormatYAML OutputFormat = "yaml"
	// FormatQuiet outputs only IDs, for piping into other commands.
	FormatQuiet OutputFormat = "quiet"
)

// maxCellWidth caps table cell width so wide values don't wreck the layout.
const maxCellWidth = 40

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml":
		return FormatYAML, nil
	case "quiet":
		return FormatQuiet, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be table, json, csv, yaml, or quiet", s)
	}
}

// Column maps a response key to a table/CSV header.
type Column struct {
	Header string
	Key    string
}

// OutputWriter renders API responses in the configured format.
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

// NewOutputWriter creates an OutputWriter targeting stdout.
func NewOutputWriter(format OutputFormat) *OutputWriter {
	return &OutputWriter{format: format, writer: os.Stdout}
}

// IsQuiet returns true when only IDs are printed.
func (o *OutputWriter) IsQuiet() bool {
	return o.format == FormatQuiet
}

// WriteList renders a list of response objects.
func (o *OutputWriter) WriteList(cols []Column, rows []map[string]any) error {
	switch o.format {
	case FormatJSON:
		return o.writeJSON(rows)
	case FormatYAML:
		return o.writeYAML(rows)
	case FormatCSV:
		return o.writeCSV(cols, rows)
	case FormatQuiet:
		return o.writeIDs(rows)
	default:
		return o.writeTable(cols, rows)
	}
}

// WriteObject renders a single response object.
func (o *OutputWriter) WriteObject(obj map[string]any) error {
	switch o.format {
	case FormatJSON:
		return o.writeJSON(obj)
	case FormatYAML:
		return o.writeYAML(obj)
	case FormatCSV:
		keys := sortedKeys(obj)
		cols := make([]Column, 0, len(keys))
		for _, k := range keys {
			cols = append(cols, Column{Header: k, Key: k})
		}
		return o.writeCSV(cols, []map[string]any{obj})
	case FormatQuiet:
		return o.writeIDs([]map[string]any{obj})
	default:
		w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)
		for _, k := range sortedKeys(obj) {
			fmt.Fprintf(w, "%s\t%s\n", k, cellValue(obj, k, 0))
		}
		return w.Flush()
	}
}

func (o *OutputWriter) writeJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (o *OutputWriter) writeYAML(data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	_, err = o.writer.Write(out)
	return err
}

func (o *OutputWriter) writeCSV(cols []Column, rows []map[string]any) error {
	w := csv.NewWriter(o.writer)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	if err := w.Write(headers); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			record[i] = cellValue(row, c.Key, 0)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (o *OutputWriter) writeTable(cols []Column, rows []map[string]any) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(o.writer, "No results.")
		return err
	}
	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c.Header)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cellValue(row, c.Key, maxCellWidth))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func (o *OutputWriter) writeIDs(rows []map[string]any) error {
	for _, row := range rows {
		id := cellValue(row, "id", 0)
		if id == "" {
			id = cellValue(row, "_id", 0)
		}
		if id == "" {
			continue
		}
		if _, err := fmt.Fprintln(o.writer, id); err != nil {
			return err
		}
	}
	return nil
}

// cellValue renders a response value for a table or CSV cell. maxWidth of 0
// means no truncation.
func cellValue(row map[string]any, key string, maxWidth int) string {
	raw, ok := row[key]
	if !ok || raw == nil {
		return ""
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		// JSON numbers; drop the fraction when it's integral
		if v == float64(int64(v)) {
			s = fmt.Sprintf("%d", int64(v))
		} else {
			s = fmt.Sprintf("%g", v)
		}
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		s = strings.Join(parts, ",")
	default:
		s = fmt.Sprint(v)
	}
	if maxWidth > 0 {
		s = utils.Truncate(s, maxWidth)
	}
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PrintSuccess prints a green confirmation message to stdout.
func PrintSuccess(format string, a ...any) {
	fmt.Printf("%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// PrintWarning prints a yellow warning message to stderr.
func PrintWarning(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("!"), fmt.Sprintf(format, a...))
}
