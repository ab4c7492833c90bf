// Package output renders command results as a box table, JSON or YAML.
package output

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

// Writer renders results in a fixed format.
type Writer struct {
	out    io.Writer
	format string
}

// New returns a Writer for format. An empty format means table.
func New(out io.Writer, format string) (*Writer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = FormatTable
	}
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return nil, errors.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return &Writer{out: out, format: f}, nil
}

// Format returns the normalized format name.
func (w *Writer) Format() string { return w.format }

// Write renders v. JSON and YAML encode v directly; the table format
// renders header and rows instead.
func (w *Writer) Write(v any, header []string, rows ...[]any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json")
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	default:
		w.table(header, rows)
		return nil
	}
}

func (w *Writer) table(header []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	style := table.StyleLight
	style.Options.SeparateColumns = true
	style.Options.DrawBorder = true
	t.SetStyle(style)

	if len(header) > 0 {
		hr := make(table.Row, len(header))
		for i, h := range header {
			hr[i] = h
		}
		t.AppendHeader(hr)
	}
	for _, r := range rows {
		vs := make(table.Row, len(r))
		for i, v := range r {
			vs[i] = cell(v)
		}
		t.AppendRow(vs)
	}
	t.Render()
}

// cell keeps floats in plain decimal notation; %v would switch large
// mercator values to exponent form.
func cell(v any) any {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return v
	}
}
