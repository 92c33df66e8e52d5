package reviews

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJS(t *testing.T) {
	content := `// generated
reviews = [
  {"review_id": "REV001", "review_text": "Très bien"},
  {"review_id": "REV002", "review_text": null, "rating": 4}
];
`
	tbl, err := Load(writeTempFile(t, "reviews.js", content))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	want := []string{"review_id", "review_text", "rating"}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, want)
	}
	if !strings.HasPrefix(tbl.Hash, "sha256:") {
		t.Errorf("expected sha256 prefix, got %s", tbl.Hash)
	}
	if got := tbl.Rows[0].Text("review_text"); got != "Très bien" {
		t.Errorf("Text = %q", got)
	}
	if got := tbl.Rows[1].Text("review_text"); got != "" {
		t.Errorf("null text should read as empty, got %q", got)
	}
	if got := tbl.Rows[1].Text("rating"); got != "4" {
		t.Errorf("rating = %q, want 4", got)
	}
	if got := tbl.Rows[0].Text("rating"); got != "" {
		t.Errorf("missing field should read as empty, got %q", got)
	}
}

func TestLoadSampleData(t *testing.T) {
	tbl, err := Load(filepath.Join("..", "..", "testdata", "reviews.js"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 50 {
		t.Errorf("expected 50 reviews, got %d", len(tbl.Rows))
	}
	if !tbl.HasColumn("review_text") || !tbl.HasColumn("review_id") {
		t.Errorf("unexpected columns %v", tbl.Columns)
	}
	if got := tbl.Rows[49].Text("review_id"); got != "REV050" {
		t.Errorf("last review_id = %q", got)
	}
}

func TestLoadJSON(t *testing.T) {
	tbl, err := Load(writeTempFile(t, "reviews.json", `[{"id": 1, "text": "ok"}, {"text": "bof", "id": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"id", "text"}) {
		t.Errorf("Columns = %v", tbl.Columns)
	}
	if got := tbl.Rows[1].Text("id"); got != "2" {
		t.Errorf("id = %q", got)
	}
}

func TestLoadCSV(t *testing.T) {
	content := "\xef\xbb\xbfreview_id,review_text\nREV001,\"Bien, merci\"\nREV002,\n"
	tbl, err := Load(writeTempFile(t, "reviews.csv", content))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"review_id", "review_text"}) {
		t.Errorf("Columns = %v", tbl.Columns)
	}
	if got := tbl.Rows[0].Text("review_text"); got != "Bien, merci" {
		t.Errorf("Text = %q", got)
	}
	if got := tbl.Rows[1].Text("review_text"); got != "" {
		t.Errorf("Text = %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"js without array", "a.js", "var x = 1;", ErrNoReviews},
		{"js empty array", "a.js", "reviews = [];", ErrEmpty},
		{"json empty array", "a.json", "[]", ErrEmpty},
		{"json not array", "a.json", `{"a": 1}`, ErrNoReviews},
		{"json empty file", "a.json", "", ErrNoReviews},
		{"csv header only", "a.csv", "review_text\n", ErrEmpty},
		{"csv empty", "a.csv", "", ErrEmpty},
		{"unknown extension", "a.xml", "<reviews/>", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTempFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	_, err := Load(writeTempFile(t, "a.json", `[{"a": 1}, "oops"]`))
	if err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Errorf("expected record 1 error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/reviews.js")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"data/reviews.js":   "js",
		"data/REVIEWS.JSON": "json",
		"export.csv":        "csv",
		"noext":             "",
	}
	for path, want := range tests {
		if got := Format(path); got != want {
			t.Errorf("Format(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestClone(t *testing.T) {
	tbl := &Table{Columns: []string{"a"}, Rows: []Row{{"a": "x"}}}
	c := tbl.Clone()
	c.Rows[0]["a"] = "y"
	c.AddColumn("b")
	if tbl.Rows[0]["a"] != "x" {
		t.Error("clone shares row maps with the original")
	}
	if tbl.HasColumn("b") {
		t.Error("clone shares columns with the original")
	}
	c.AddColumn("a")
	if len(c.Columns) != 2 {
		t.Errorf("AddColumn duplicated a column: %v", c.Columns)
	}
}
