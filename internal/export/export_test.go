package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/simpletodo/internal/calendar"
	"github.com/nibzard/simpletodo/internal/todo"
)

func sampleTasks() []todo.Task {
	return []todo.Task{
		{Done: true, Name: "Renew passport", Date: calendar.Date{Year: 2024, Month: 6, Day: 1}},
		{Done: false, Name: "Café booking", Date: calendar.Date{Year: 2024, Month: 2, Day: 29}},
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON("list.todo", sampleTasks())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("JSON output should end with a newline")
	}

	var doc struct {
		Source string `json:"source"`
		Tasks  []struct {
			Done bool   `json:"done"`
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Source != "list.todo" || len(doc.Tasks) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if !doc.Tasks[0].Done || doc.Tasks[1].Date != "2024-02-29" || doc.Tasks[1].Name != "Café booking" {
		t.Errorf("task fields: %+v", doc.Tasks)
	}
}

func TestJSONEmptyList(t *testing.T) {
	data, err := JSON("", nil)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(data), `"tasks": []`) {
		t.Errorf("empty list should export an empty array: %s", data)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing tasks", `{}`},
		{"bad date", `{"tasks":[{"done":false,"name":"a","date":"2024-2-1"}]}`},
		{"impossible date", `{"tasks":[{"done":false,"name":"a","date":"2023-02-30"}]}`},
		{"done not bool", `{"tasks":[{"done":"t","name":"a","date":"2024-02-01"}]}`},
		{"extra field", `{"tasks":[{"done":false,"name":"a","date":"2024-02-01","id":1}]}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate([]byte(tt.doc)); err == nil {
				t.Errorf("expected validation error for %s", tt.doc)
			}
		})
	}

	if err := Validate([]byte(`{"tasks":[{"done":false,"name":"a","date":"2024-02-01"}]}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}

func TestPDF(t *testing.T) {
	data, err := PDF("Simple ToDo - list.todo", sampleTasks())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}

	empty, err := PDF("Empty", nil)
	if err != nil || len(empty) == 0 {
		t.Errorf("empty PDF: %d bytes, %v", len(empty), err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "PDF": FormatPDF, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("csv: got %v, want ErrUnknownFormat", err)
	}
	if _, err := FormatForPath("out"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("no extension: got %v", err)
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "out.json")
	if err := ToFile(jsonPath, "", "list", sampleTasks()); err != nil {
		t.Fatalf("ToFile json: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(data); err != nil {
		t.Errorf("written JSON invalid: %v", err)
	}

	pdfPath := filepath.Join(dir, "report.bin")
	if err := ToFile(pdfPath, FormatPDF, "list", sampleTasks()); err != nil {
		t.Fatalf("ToFile pdf: %v", err)
	}
	if data, _ := os.ReadFile(pdfPath); !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("explicit format should override the extension")
	}

	if err := ToFile(filepath.Join(dir, "out.txt"), "", "list", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("txt: got %v, want ErrUnknownFormat", err)
	}
}

func TestPDFDate(t *testing.T) {
	tests := []struct {
		date calendar.Date
		want string
	}{
		{calendar.Date{Year: 2024, Month: 2, Day: 29}, "Thu 2024-02-29"},
		{calendar.Date{Year: 1900, Month: 1, Day: 1}, "Mon 1900-01-01"},
		{calendar.Date{Year: 2023, Month: 12, Day: 31}, "Sun 2023-12-31"},
	}
	for _, tt := range tests {
		if got := pdfDate(tt.date); got != tt.want {
			t.Errorf("pdfDate(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
