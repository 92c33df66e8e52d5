// Package reviews handles reading and hashing review record files.
//
// Three layouts are accepted: a JavaScript file assigning an array to a
// "reviews" variable, a plain JSON array of objects, and a CSV file with a
// header row. Column order is the order in which fields first appear.
package reviews

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrNoReviews         = errors.New("no reviews array found")
	ErrEmpty             = errors.New("no review records")
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

var jsArrayPattern = regexp.MustCompile(`reviews\s*=\s*(\[[\s\S]*\])`)

// Row is one review record. Missing and null fields are nil.
type Row map[string]any

// Text returns the field as a string: "" for nil or missing values, the
// value itself for strings and its default formatting otherwise.
func (r Row) Text(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Table holds the loaded records with their source metadata.
type Table struct {
	Source  string
	Hash    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether at least one record carries name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to Columns unless it is already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Clone copies the table and every row map. Field values are shared.
func (t *Table) Clone() *Table {
	out := &Table{
		Source:  t.Source,
		Hash:    t.Hash,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c := make(Row, len(r)+2)
		for k, v := range r {
			c[k] = v
		}
		out.Rows[i] = c
	}
	return out
}

// Load reads a review file, dispatching on its extension, and computes its
// SHA-256 hash.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reviews.Load: %w", err)
	}
	t, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("reviews.Load %s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// Format maps a file name to one of "js", "json" or "csv". Unknown
// extensions yield the extension itself, which Parse rejects.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "js", "mjs":
		return "js"
	default:
		return ext
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format string) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch format {
	case "js":
		t, err = parseJS(data)
	case "json":
		t, err = parseJSON(data)
	case "csv":
		t, err = parseCSV(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	if len(t.Rows) == 0 {
		return nil, ErrEmpty
	}
	h := sha256.Sum256(data)
	t.Hash = fmt.Sprintf("sha256:%x", h)
	return t, nil
}

func parseJS(data []byte) (*Table, error) {
	m := jsArrayPattern.FindSubmatch(data)
	if m == nil {
		return nil, ErrNoReviews
	}
	return parseJSON(m[1])
}

// parseJSON streams the array so that column order follows the input.
func parseJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoReviews
		}
		return nil, fmt.Errorf("%w: %v", ErrNoReviews, err)
	}

	t := &Table{}
	for i := 0; dec.More(); i++ {
		row, err := decodeObject(dec, t)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeObject(dec *json.Decoder, t *Table) (Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	row := Row{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		row[key] = v
		t.AddColumn(key)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func parseCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{}
	header := records[0]
	for _, h := range header {
		t.AddColumn(h)
	}
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for j, h := range header {
			row[h] = rec[j]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
