package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
)

// CLIEnumerator shells out to the git binary.
type CLIEnumerator struct {
	root    string
	matcher *Matcher
}

// OpenCLI resolves the top level of the repository containing start with git rev-parse.
func OpenCLI(ctx context.Context, start string, matcher *Matcher) (*CLIEnumerator, error) {
	out, err := runGit(ctx, start, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, classifyOpenError(err, start)
	}
	root, err := filepath.Abs(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, classifyOpenError(err, start)
	}
	if matcher == nil {
		matcher, _ = NewMatcher(nil, nil)
	}
	return &CLIEnumerator{root: root, matcher: matcher}, nil
}

func (e *CLIEnumerator) Root() string { return e.root }

func (e *CLIEnumerator) List(ctx context.Context) ([]string, error) {
	out, err := runGit(ctx, e.root, "ls-files", "-z", "--full-name")
	if err != nil {
		return nil, listError(err, e.root, string(BackendCLI))
	}

	var files []string
	seen := make(map[string]struct{})
	for name := range bytes.SplitSeq(out, []byte{0}) {
		if len(name) == 0 {
			continue
		}
		rel := string(name)
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		if e.matcher.Match(rel) {
			files = append(files, rel)
		}
	}

	slog.Debug("Enumerated tracked files", logfields.Backend(string(BackendCLI)), logfields.Path(e.root), logfields.Count(len(files)))
	return files, nil
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	// #nosec G204 -- invoking git with fixed binary name and controlled args
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if stderrors.As(err, &ee) {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}
