package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
)

// WriteCSV writes the table with a header row, columns in table order.
func WriteCSV(table *reviews.Table, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("report.WriteCSV: %w", err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for j, col := range table.Columns {
			record[j] = cell(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("report.WriteCSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report.WriteCSV: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// WriteJSON writes the table as a JSON array of objects whose keys follow
// the table's column order.
func WriteJSON(table *reviews.Table, path string) error {
	data, err := MarshalRows(table)
	if err != nil {
		return fmt.Errorf("report.WriteJSON: %w", err)
	}
	return writeFile(path, data)
}

// MarshalRows encodes the rows as an indented JSON array. Fields missing
// from a row are written as null.
func MarshalRows(table *reviews.Table) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	for i, row := range table.Rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		for j, col := range table.Columns {
			if j > 0 {
				b.WriteString(",")
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			val, err := marshalNoEscape(row[col])
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i, col, err)
			}
			b.WriteString("\n    ")
			b.Write(key)
			b.WriteString(": ")
			b.Write(val)
		}
		b.WriteString("\n  }")
	}
	if len(table.Rows) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return b.Bytes(), nil
}

// WriteSummary writes the summary as indented JSON.
func WriteSummary(s *Summary, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("report.WriteSummary: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// ReadSummary reads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report.ReadSummary: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("report.ReadSummary: %w", err)
	}
	return &s, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("report: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
