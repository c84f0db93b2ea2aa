package git

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// FindRoot walks up from start to the first directory containing a .git entry
// (a directory, or a file for worktrees and submodules) and returns it.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", classifyOpenError(err, start)
	}
	for {
		_, err := os.Lstat(filepath.Join(dir, ".git"))
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", classifyOpenError(err, start)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", classifyOpenError(git.ErrRepositoryNotExists, start)
		}
		dir = parent
	}
}
