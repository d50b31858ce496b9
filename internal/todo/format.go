package todo

import (
	"errors"
	"strings"

	"github.com/nibzard/simpletodo/internal/calendar"
)

// ErrFormat is returned when a task file does not match the line format.
var ErrFormat = errors.New("file format does not match")

const (
	flagDone    = "t"
	flagNotDone = "f"
)

// Encode serialises tasks in the three-line-per-task format with no trailing
// newline.
func Encode(tasks []Task) []byte {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if t.Done {
			b.WriteString(flagDone)
		} else {
			b.WriteString(flagNotDone)
		}
		b.WriteByte('\n')
		b.WriteString(t.Name)
		b.WriteByte('\n')
		b.WriteString(t.Date.String())
	}
	return []byte(b.String())
}

// Decode parses a task file. Any malformed group fails the whole input with
// ErrFormat.
func Decode(data []byte) ([]Task, error) {
	lines := splitLines(string(data))
	if len(lines)%3 != 0 {
		return nil, ErrFormat
	}

	tasks := make([]Task, 0, len(lines)/3)
	for i := 0; i < len(lines); i += 3 {
		var t Task
		switch lines[i] {
		case flagDone:
			t.Done = true
		case flagNotDone:
			t.Done = false
		default:
			return nil, ErrFormat
		}
		t.Name = lines[i+1]
		date, err := calendar.Parse(lines[i+2])
		if err != nil {
			return nil, ErrFormat
		}
		t.Date = date
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// splitLines splits like a buffered line reader: a single trailing newline
// does not start another line and a carriage return before it is dropped.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
