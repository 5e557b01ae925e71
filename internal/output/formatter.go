package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Report is a rendered view of one result: a table for console/CSV output and
// the underlying value for JSON.
type Report struct {
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string // Console only, printed under the table
	Value  any      // Marshalled by the JSON formatter
}

// Formatter renders a Report in one output format
type Formatter interface {
	Name() string
	Format(r Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r Report) ([]byte, error)
}

func (f FormatterFunc) Name() string                    { return f.ID }
func (f FormatterFunc) Format(r Report) ([]byte, error) { return f.F(r) }

// ConsoleFormatter renders an aligned text table
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(r Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	if r.Title != "" {
		buf.WriteString(strings.ToUpper(r.Title) + "\n")
		buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(r.Title)) + "\n")
	}

	widths := columnWidths(r.Header, r.Rows)
	if len(r.Header) > 0 {
		writeRow(buf, r.Header, widths)
		sep := make([]string, len(widths))
		for i, w := range widths {
			sep[i] = strings.Repeat("-", w)
		}
		writeRow(buf, sep, widths)
	}
	for _, row := range r.Rows {
		writeRow(buf, row, widths)
	}

	if len(r.Notes) > 0 {
		buf.WriteString("\n")
		for _, n := range r.Notes {
			buf.WriteString(n + "\n")
		}
	}
	return buf.Bytes(), nil
}

func columnWidths(header []string, rows [][]string) []int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], utf8.RuneCountInString(c))
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func writeRow(buf *bytes.Buffer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		pad := widths[i] - utf8.RuneCountInString(c)
		if isNumeric(c) {
			parts[i] = strings.Repeat(" ", pad) + c
		} else {
			parts[i] = c + strings.Repeat(" ", pad)
		}
	}
	buf.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
}

// isNumeric right-aligns amounts, rates and counts
func isNumeric(s string) bool {
	s = strings.TrimPrefix(strings.TrimSuffix(s, "%"), "-")
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r == '.' && !dot:
			dot = true
		case r < '0' || r > '9':
			return false
		}
	}
	return true
}

// CSVFormatter writes the header and rows as CSV
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if len(r.Header) > 0 {
		if err := w.Write(r.Header); err != nil {
			return nil, err
		}
	}
	if err := w.WriteAll(r.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONFormatter marshals the report value
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(r Report) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if f.Pretty {
		data, err = json.MarshalIndent(r.Value, "", "  ")
	} else {
		data, err = json.Marshal(r.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", r.Title, err)
	}
	return append(data, '\n'), nil
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"csv":     CSVFormatter{},
}

var formatAliases = map[string]string{
	"table": "console",
	"text":  "console",
}

// GetFormatterByName resolves a format name or alias
func GetFormatterByName(name string) (Formatter, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "console"
	}
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	f, ok := formatters[key]
	return f, ok
}

// AvailableFormatterNames lists the canonical format names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders r in the named format to w
func Write(w io.Writer, format string, r Report) error {
	f, ok := GetFormatterByName(format)
	if !ok {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
