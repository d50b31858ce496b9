// Package logging provides tests for run log files.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewRunLogger(t *testing.T) {
	t.Run("creates log file", func(t *testing.T) {
		base := t.TempDir()
		workDir := t.TempDir()

		logger, err := NewRunLogger(base, workDir, Options{Level: "debug"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.RunID == "" || logger.LogPath == "" || logger.Logger == nil {
			t.Fatalf("logger fields not set: %+v", logger)
		}
		if !strings.HasPrefix(logger.LogPath, base) {
			t.Errorf("log path %q not under %q", logger.LogPath, base)
		}

		logger.Logger.Info("loaded task file", "tasks", 3)
		data, err := os.ReadFile(logger.LogPath)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(data), "loaded task file") {
			t.Errorf("log file missing message: %q", data)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewRunLogger("", t.TempDir(), Options{})
		if err == nil || !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("relative base dir resolves against work dir", func(t *testing.T) {
		workDir := t.TempDir()
		logger, err := NewRunLogger("logs", workDir, Options{})
		if err != nil {
			t.Fatalf("NewRunLogger: %v", err)
		}
		defer logger.Close()
		if !strings.HasPrefix(logger.Dir, filepath.Join(workDir, "logs")) {
			t.Errorf("Dir %q not under work dir", logger.Dir)
		}
	})
}

func TestCloseNil(t *testing.T) {
	var r *RunLogger
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestNewLevelsAndFormats(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "path", "a.todo")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"path":"a.todo"`) {
		t.Errorf("expected json output, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Error("default")
	}
}

func TestFindLatestLog(t *testing.T) {
	dir := t.TempDir()

	got, err := FindLatestLog(filepath.Join(dir, "missing"))
	if err != nil || got != "" {
		t.Fatalf("missing dir: got %q, %v", got, err)
	}

	older := filepath.Join(dir, "a.log")
	newer := filepath.Join(dir, "b.log")
	other := filepath.Join(dir, "c.txt")
	for _, p := range []string{older, newer, other} {
		if err := os.WriteFile(p, []byte(p), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	os.Chtimes(older, past, past)

	got, err = FindLatestLog(dir)
	if err != nil {
		t.Fatalf("FindLatestLog: %v", err)
	}
	if got != newer {
		t.Errorf("got %q, want %q", got, newer)
	}

	var buf bytes.Buffer
	if err := CopyLog(&buf, got); err != nil {
		t.Fatalf("CopyLog: %v", err)
	}
	if buf.String() != newer {
		t.Errorf("CopyLog: got %q", buf.String())
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my project", "my_project"},
		{"tasks.d", "tasks.d"},
		{"  ", "project"},
		{"/", "project"},
		{"a//b", "a_b"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindLogDirStable(t *testing.T) {
	a, err := FindLogDir("/logs", "/home/user/lists")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := FindLogDir("/logs", "/home/user/lists")
	c, _ := FindLogDir("/logs", "/home/other/lists")
	if a != b {
		t.Error("same work dir should give the same log dir")
	}
	if a == c {
		t.Error("different work dirs with the same base name should not collide")
	}
	if !strings.HasPrefix(filepath.Base(a), "lists-") {
		t.Errorf("unexpected slug %q", filepath.Base(a))
	}
}
