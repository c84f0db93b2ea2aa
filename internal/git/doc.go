// Package git lists the documentation files tracked by a repository.
//
// The index is the source of truth: untracked and ignored files are never listed, and
// files deleted from the working tree but still staged are. Two backends exist:
//   - IndexEnumerator reads .git/index with go-git (default, no git binary needed)
//   - CLIEnumerator runs `git ls-files` (matches environments with sparse or exotic
//     index extensions that go-git does not understand)
//
// Both return repository-relative, slash-separated paths filtered by a Matcher.
package git
