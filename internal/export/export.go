// Package export renders a task list as JSON or PDF. Export never changes the
// list or the file it was loaded from.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/simpletodo/internal/calendar"
	"github.com/nibzard/simpletodo/internal/todo"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for formats other than json and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

//go:embed tasklist.schema.json
var schemaJSON string

const schemaURL = "https://simpletodo.local/tasklist.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

type document struct {
	Source string     `json:"source,omitempty"`
	Tasks  []jsonTask `json:"tasks"`
}

type jsonTask struct {
	Done bool   `json:"done"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// JSON renders tasks with 2-space indentation and a trailing newline. The
// output is checked against the embedded schema before it is returned.
func JSON(source string, tasks []todo.Task) ([]byte, error) {
	doc := document{Source: source, Tasks: make([]jsonTask, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, jsonTask{Done: t.Done, Name: t.Name, Date: t.Date.String()})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Validate checks a JSON export document against the schema.
func Validate(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode export: %w", err)
	}
	if err := s.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("export does not match schema: %s", firstCause(ve))
		}
		return fmt.Errorf("validate export: %w", err)
	}
	return nil
}

func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}

// PDF renders tasks as an A4 checklist.
func PDF(title string, tasks []todo.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(0, 6, "No tasks.")
	}
	for _, t := range tasks {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		pdf.CellFormat(12, 6, mark, "", 0, "L", false, 0, "")
		pdf.CellFormat(32, 6, pdfDate(t.Date), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, tr(t.Name), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfDate renders a date with its weekday for the print-out.
func pdfDate(d calendar.Date) string {
	return d.Time().Format("Mon " + calendar.Layout)
}

// ParseFormat reads a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ToFile renders tasks in format and writes them to path. An empty format is
// taken from the path extension.
func ToFile(path string, format Format, title string, tasks []todo.Task) error {
	if format == "" {
		f, err := FormatForPath(path)
		if err != nil {
			return err
		}
		format = f
	}

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = JSON(title, tasks)
	case FormatPDF:
		data, err = PDF(title, tasks)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}
