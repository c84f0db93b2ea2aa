// Package testutil provides fixtures for tests that need a documentation tree on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files (slash paths relative to a fresh temp dir) and returns the dir.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// WriteFiles writes files below root, creating parent directories.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

// InitRepo initializes a temporary git repository, writes tracked and untracked
// files and stages the tracked ones in the index. It returns the repository root.
func InitRepo(t *testing.T, tracked, untracked map[string]string) string {
	t.Helper()

	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err, "failed to initialize git repo")

	wt, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	WriteFiles(t, root, tracked)
	for rel := range tracked {
		_, err := wt.Add(rel)
		require.NoError(t, err, "failed to stage %s", rel)
	}
	WriteFiles(t, root, untracked)
	return root
}
