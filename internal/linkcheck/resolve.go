package linkcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// AbsoluteMode selects how targets starting with '/' are resolved.
type AbsoluteMode string

const (
	// AbsoluteFilesystem resolves /x against the filesystem root.
	AbsoluteFilesystem AbsoluteMode = "filesystem"
	// AbsoluteRepository resolves /x against the repository root, as forges render it.
	AbsoluteRepository AbsoluteMode = "repository"
)

// ParseAbsoluteMode validates a configured mode. Empty means AbsoluteFilesystem.
func ParseAbsoluteMode(s string) (AbsoluteMode, error) {
	switch AbsoluteMode(s) {
	case "", AbsoluteFilesystem:
		return AbsoluteFilesystem, nil
	case AbsoluteRepository:
		return AbsoluteRepository, nil
	default:
		return "", fmt.Errorf("unknown absolute link mode %q", s)
	}
}

// Resolver maps normalized targets to canonical filesystem paths.
type Resolver struct {
	Root     string
	Absolute AbsoluteMode
}

// Resolve joins target onto the directory containing sourceAbs, canonicalizes the
// result and tests it for existence. It returns the canonical path and true, or the
// joined candidate and false.
func (r Resolver) Resolve(sourceAbs, target string) (string, bool) {
	target = filepath.FromSlash(target)

	var candidate string
	switch {
	case filepath.IsAbs(target) && r.Absolute == AbsoluteRepository && r.Root != "":
		candidate = r.Root + string(filepath.Separator) + strings.TrimLeft(target, `/\`)
	case filepath.IsAbs(target):
		candidate = target
	default:
		// Not filepath.Join: cleaning first would apply '..' lexically.
		candidate = filepath.Dir(sourceAbs) + string(filepath.Separator) + target
	}

	resolved, err := Canonicalize(candidate)
	if err != nil {
		return candidate, false
	}
	if _, err := os.Stat(resolved); err != nil {
		return candidate, false
	}
	return resolved, true
}

// maxSymlinks bounds symlink expansion so that cycles terminate.
const maxSymlinks = 255

var errSymlinkLoop = errors.New("too many levels of symbolic links")

// Canonicalize makes p absolute and resolves '.', '..' and symlinks component by
// component. Components that do not exist, or are not directories, are kept as plain
// names, so a following '..' removes them. Empty components are dropped. Only a
// symlink cycle is an error.
func Canonicalize(p string) (string, error) {
	if !filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		p = wd + string(filepath.Separator) + p
	}

	vol := filepath.VolumeName(p)
	resolved := vol + string(filepath.Separator)
	pending := splitPath(p[len(vol):])
	links := 0

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := os.Lstat(next)
		if err != nil || info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		links++
		if links > maxSymlinks {
			return "", errSymlinkLoop
		}
		dest, err := os.Readlink(next)
		if err != nil {
			resolved = next
			continue
		}
		if filepath.IsAbs(dest) {
			destVol := filepath.VolumeName(dest)
			resolved = destVol + string(filepath.Separator)
			dest = dest[len(destVol):]
		}
		pending = append(splitPath(dest), pending...)
	}
	return resolved, nil
}

// splitPath returns the non-empty components of p.
func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})
}
