package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the canonical task file suffix.
const Extension = ".todo"

// FileError describes a failure to read or write a task file.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s task file %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// EnsureExtension appends Extension to path unless it already ends with it
// in any letter case.
func EnsureExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Extension) {
		return path
	}
	return path + Extension
}

// ReadFile reads and decodes the task file at path.
func ReadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	tasks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", path, err)
	}
	return tasks, nil
}

// WriteFile encodes tasks to path, adding the extension when missing.
// It returns the path actually written.
func WriteFile(path string, tasks []Task) (string, error) {
	target := EnsureExtension(path)
	if err := os.WriteFile(target, Encode(tasks), 0644); err != nil {
		return target, &FileError{Op: "write", Path: target, Err: err}
	}
	return target, nil
}

// Load replaces the list with the contents of path. On error the current
// tasks are left as they were.
func (l *List) Load(path string) error {
	tasks, err := ReadFile(path)
	if err != nil {
		return err
	}
	l.tasks = tasks
	l.path = absPath(path)
	return nil
}

// Save writes the list to path and returns the resolved file name.
func (l *List) Save(path string) (string, error) {
	target, err := WriteFile(path, l.tasks)
	if err != nil {
		return target, err
	}
	l.path = absPath(target)
	return target, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
