// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/fipsref/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Align is a column alignment hint for table output.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.formatTable(w, v)
	case *Data:
		return f.formatTable(w, *v)
	default:
		if tableData := structSliceToData(data); tableData != nil {
			return f.formatTable(w, *tableData)
		}
		// Fall back to JSON for non-table data
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case AlignLeft:
				twAlign[i] = tw.AlignLeft
			case AlignCenter:
				twAlign[i] = tw.AlignCenter
			case AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", errors.NewConfigError("output", fmt.Sprintf("invalid format %q: must be one of: table, json, yaml", s), nil)
	}
}

// structSliceToData converts a non-empty slice of structs to Data, using
// json tags as headers.
func structSliceToData(data any) *Data {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Len() == 0 || v.Index(0).Kind() != reflect.Struct {
		return nil
	}

	elemType := v.Index(0).Type()
	var headers []string
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
			name, _, _ = strings.Cut(tag, ",")
		}
		headers = append(headers, name)
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := make([]string, elem.NumField())
		for j := range row {
			row[j] = fmt.Sprintf("%v", elem.Field(j).Interface())
		}
		rows = append(rows, row)
	}

	return &Data{Headers: headers, Rows: rows}
}
