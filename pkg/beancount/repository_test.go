package beancount

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/pathutil"
)

func newTestRepository(t *testing.T) (*FileSystemRepository, string) {
	t.Helper()
	root := t.TempDir()
	resolver := pathutil.New(pathutil.Config{DataRoot: root})
	return NewFileSystemRepository(resolver), root
}

func readSessionFile(t *testing.T, root, sessionID string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "exports", "session-"+sessionID+".beancount"))
	require.NoError(t, err)
	return string(data)
}

func TestEnsureSessionFile(t *testing.T) {
	repo, root := newTestRepository(t)

	err := repo.EnsureSessionFile("abc", "option \"operating_currency\" \"USD\"")
	require.NoError(t, err)

	content := readSessionFile(t, root, "abc")
	assert.Contains(t, content, "; Forbidden Valley session abc\n")
	assert.Contains(t, content, "option \"operating_currency\" \"USD\"\n")

	// A second call leaves the existing file alone.
	require.NoError(t, repo.AppendTransaction("abc", "2025-01-01 * \"Loan\""))
	require.NoError(t, repo.EnsureSessionFile("abc", "other header"))

	content = readSessionFile(t, root, "abc")
	assert.NotContains(t, content, "other header")
	assert.Contains(t, content, "2025-01-01 * \"Loan\"\n\n")
}

func TestAppendTransactionKeepsTrailingNewline(t *testing.T) {
	repo, root := newTestRepository(t)
	require.NoError(t, repo.EnsureSessionFile("s1", ""))

	require.NoError(t, repo.AppendTransaction("s1", "2025-01-02 * \"Interest\"\n"))

	content := readSessionFile(t, root, "s1")
	assert.Contains(t, content, "2025-01-02 * \"Interest\"\n\n")
	assert.NotContains(t, content, "\"Interest\"\n\n\n")
}

func TestAppendTransactionWithoutFile(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.AppendTransaction("missing", "2025-01-01 * \"Loan\"")
	assert.Error(t, err)
}

func TestInvalidSessionID(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.Error(t, repo.EnsureSessionFile("../escape", ""))
	assert.Error(t, repo.AppendTransaction("a/b", "x"))
}
