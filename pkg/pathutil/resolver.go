// Package pathutil provides centralized path management for the journal
// database and session exports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// memoryJournal is the journal path that keeps the journal in memory.
const memoryJournal = ":memory:"

// PathResolver manages paths for the journal and export files.
type PathResolver struct {
	journalPath string
	exportDir   string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the base directory for relative paths (e.g., ~/.forbidden-valley)
	DataRoot string
	// JournalPath is the SQLite journal file; empty or ":memory:" keeps it in memory
	JournalPath string
	// ExportDir is the directory for Beancount session exports
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// Relative JournalPath and ExportDir are resolved against DataRoot.
// If ExportDir is empty, it defaults to {DataRoot}/exports.
func New(config Config) *PathResolver {
	root := config.DataRoot
	if root == "" {
		root = "."
	}

	journalPath := config.JournalPath
	if journalPath == "" {
		journalPath = memoryJournal
	} else if journalPath != memoryJournal && !filepath.IsAbs(journalPath) {
		journalPath = filepath.Join(root, journalPath)
	}

	exportDir := config.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(root, "exports")
	} else if !filepath.IsAbs(exportDir) {
		exportDir = filepath.Join(root, exportDir)
	}

	return &PathResolver{
		journalPath: journalPath,
		exportDir:   exportDir,
	}
}

// GetJournalPath returns the journal database path, or ":memory:".
func (p *PathResolver) GetJournalPath() string {
	return p.journalPath
}

// IsMemoryJournal reports whether the journal is kept in memory only.
func (p *PathResolver) IsMemoryJournal() bool {
	return p.journalPath == memoryJournal
}

// GetExportDir returns the export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetSessionFilePath returns the export file path for a session.
// Example: ~/.forbidden-valley/exports/session-<id>.beancount
func (p *PathResolver) GetSessionFilePath(sessionID string) (string, error) {
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return "", fmt.Errorf("invalid session id: %q", sessionID)
	}

	return filepath.Join(p.exportDir, fmt.Sprintf("session-%s.beancount", sessionID)), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
