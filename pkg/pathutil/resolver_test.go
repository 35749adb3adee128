package pathutil

import (
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{DataRoot: "/data"})

	if got := p.GetJournalPath(); got != ":memory:" {
		t.Errorf("GetJournalPath() = %q, expected :memory:", got)
	}
	if !p.IsMemoryJournal() {
		t.Errorf("IsMemoryJournal() = false, expected true")
	}
	if got, want := p.GetExportDir(), filepath.Join("/data", "exports"); got != want {
		t.Errorf("GetExportDir() = %q, expected %q", got, want)
	}
}

func TestNewResolvesRelativePaths(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantJournal string
		wantExport  string
	}{
		{
			"relative",
			Config{DataRoot: "/data", JournalPath: "journal.db", ExportDir: "out"},
			filepath.Join("/data", "journal.db"),
			filepath.Join("/data", "out"),
		},
		{
			"absolute",
			Config{DataRoot: "/data", JournalPath: "/var/j.db", ExportDir: "/tmp/out"},
			"/var/j.db",
			"/tmp/out",
		},
		{
			"explicit memory",
			Config{DataRoot: "/data", JournalPath: ":memory:"},
			":memory:",
			filepath.Join("/data", "exports"),
		},
		{
			"empty root",
			Config{JournalPath: "j.db"},
			"j.db",
			"exports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.config)
			if got := p.GetJournalPath(); got != tt.wantJournal {
				t.Errorf("GetJournalPath() = %q, expected %q", got, tt.wantJournal)
			}
			if got := p.GetExportDir(); got != tt.wantExport {
				t.Errorf("GetExportDir() = %q, expected %q", got, tt.wantExport)
			}
		})
	}
}

func TestGetSessionFilePath(t *testing.T) {
	p := New(Config{DataRoot: "/data"})

	got, err := p.GetSessionFilePath("abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/data", "exports", "session-abc-123.beancount"); got != want {
		t.Errorf("GetSessionFilePath() = %q, expected %q", got, want)
	}

	for _, id := range []string{"", "../x", "a/b", `a\b`} {
		if _, err := p.GetSessionFilePath(id); err == nil {
			t.Errorf("GetSessionFilePath(%q) expected error", id)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	p := New(Config{DataRoot: t.TempDir()})
	file := filepath.Join(p.GetExportDir(), "deep", "file.txt")

	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.FileExists(filepath.Dir(file)) {
		t.Errorf("expected %s to exist", filepath.Dir(file))
	}
	if p.FileExists(file) {
		t.Errorf("expected %s not to exist", file)
	}
}
