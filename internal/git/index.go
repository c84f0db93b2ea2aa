package git

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
)

// IndexEnumerator reads the repository index with go-git.
type IndexEnumerator struct {
	repo    *git.Repository
	root    string
	matcher *Matcher
}

// OpenIndex opens the repository containing start, walking up to the first .git.
func OpenIndex(start string, matcher *Matcher) (*IndexEnumerator, error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, classifyOpenError(err, start)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to check.
		return nil, classifyOpenError(err, start)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, classifyOpenError(err, start)
	}
	if matcher == nil {
		matcher, _ = NewMatcher(nil, nil)
	}
	return &IndexEnumerator{repo: repo, root: root, matcher: matcher}, nil
}

func (e *IndexEnumerator) Root() string { return e.root }

func (e *IndexEnumerator) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, err := e.repo.Storer.Index()
	if err != nil {
		return nil, listError(err, e.root, string(BackendIndex))
	}

	files := make([]string, 0, len(idx.Entries))
	seen := make(map[string]struct{}, len(idx.Entries))
	for _, entry := range idx.Entries {
		// Unmerged paths appear once per conflict stage.
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		if e.matcher.Match(entry.Name) {
			files = append(files, entry.Name)
		}
	}

	slog.Debug("Enumerated tracked files", logfields.Backend(string(BackendIndex)), logfields.Path(e.root), logfields.Count(len(files)))
	return files, nil
}
