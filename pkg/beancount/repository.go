package beancount

import (
	"fmt"
	"os"
	"time"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/pathutil"
)

// Repository defines the interface for session export files.
type Repository interface {
	// EnsureSessionFile creates the session file with header if missing
	EnsureSessionFile(sessionID, header string) error

	// AppendTransaction appends a formatted transaction to a session file
	AppendTransaction(sessionID, transaction string) error
}

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
	}
}

// EnsureSessionFile creates the session file with a generated comment block
// followed by header. If the file already exists, this is a no-op.
func (r *FileSystemRepository) EnsureSessionFile(sessionID, header string) error {
	filePath, err := r.pathResolver.GetSessionFilePath(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session file path: %w", err)
	}

	if r.pathResolver.FileExists(filePath) {
		return nil
	}

	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	content := r.generateFileHeader(sessionID) + header
	if len(header) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// AppendTransaction appends a transaction to a session file.
// The file must have been created with EnsureSessionFile.
func (r *FileSystemRepository) AppendTransaction(sessionID, transaction string) error {
	filePath, err := r.pathResolver.GetSessionFilePath(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session file path: %w", err)
	}

	content := transaction
	if len(transaction) > 0 && transaction[len(transaction)-1] != '\n' {
		content += "\n"
	}
	content += "\n"

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}

func (r *FileSystemRepository) generateFileHeader(sessionID string) string {
	now := time.Now().Format(time.RFC3339)
	return fmt.Sprintf("; Forbidden Valley session %s\n; Generated at %s\n\n", sessionID, now)
}
