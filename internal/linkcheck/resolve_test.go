package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkcheck/internal/testutil"
)

func TestResolver_Resolve(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"docs/a.md": "",
		"docs/b.md": "",
		"top.md":    "",
	})
	source := filepath.Join(root, "docs", "a.md")
	r := Resolver{Root: root, Absolute: AbsoluteFilesystem}

	_, ok := r.Resolve(source, "b.md")
	assert.True(t, ok)
	_, ok = r.Resolve(source, "./b.md")
	assert.True(t, ok)
	_, ok = r.Resolve(source, "../top.md")
	assert.True(t, ok)
	_, ok = r.Resolve(source, "../docs/./b.md")
	assert.True(t, ok)

	candidate, ok := r.Resolve(source, "missing.md")
	assert.False(t, ok)
	assert.Equal(t, filepath.Join(root, "docs")+string(filepath.Separator)+"missing.md", candidate)
}

func TestResolver_CanonicalPath(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"docs/a.md": "", "b.md": ""})
	canonicalRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	resolved, ok := Resolver{}.Resolve(filepath.Join(root, "docs", "a.md"), "../docs/../b.md")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(canonicalRoot, "b.md"), resolved)
}

func TestResolver_DotDotFollowsSymlinkedDirectory(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"docs/a.md":           "",
		"elsewhere/deep/x.md": "",
		"elsewhere/y.md":      "",
	})
	if err := os.Symlink(filepath.Join(root, "elsewhere", "deep"), filepath.Join(root, "docs", "deep")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	// docs/deep -> elsewhere/deep, so docs/deep/../y.md is elsewhere/y.md.
	_, ok := Resolver{}.Resolve(filepath.Join(root, "docs", "a.md"), "deep/../y.md")
	assert.True(t, ok)
}

func TestResolver_CanonicalizesBeforeExistenceCheck(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"docs/a.md": "",
		"docs/b.md": "",
	})
	source := filepath.Join(root, "docs", "a.md")

	for _, target := range []string{
		"./b.md",
		"./missing/../b.md",
		"./a.md/../b.md",
		"./b.md/",
		"docs/../b.md",
	} {
		t.Run(target, func(t *testing.T) {
			_, ok := Resolver{Root: root}.Resolve(source, target)
			assert.True(t, ok)
		})
	}

	_, ok := Resolver{Root: root}.Resolve(source, "./missing/../gone.md")
	assert.False(t, ok)
}

func TestResolver_DanglingSymlinkIsMissing(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"docs/a.md": ""})
	if err := os.Symlink(filepath.Join(root, "nowhere.md"), filepath.Join(root, "docs", "dangling.md")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, ok := Resolver{}.Resolve(filepath.Join(root, "docs", "a.md"), "dangling.md")
	assert.False(t, ok)
}

func TestCanonicalize_SymlinkLoop(t *testing.T) {
	root := t.TempDir()
	if err := os.Symlink("b", filepath.Join(root, "a")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink("a", filepath.Join(root, "b")))

	_, err := Canonicalize(filepath.Join(root, "a", "x.md"))
	require.Error(t, err)

	_, ok := Resolver{}.Resolve(filepath.Join(root, "doc.md"), "a/x.md")
	assert.False(t, ok)
}

func TestCanonicalize_RelativeSymlinkTarget(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"real/x.md": ""})
	if err := os.Symlink(filepath.Join("..", "real"), filepath.Join(root, "real", "loop-free")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	canonicalRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	got, err := Canonicalize(filepath.Join(root, "real", "loop-free", ".", "x.md"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(canonicalRoot, "real", "x.md"), got)
}

func TestParseAbsoluteMode(t *testing.T) {
	mode, err := ParseAbsoluteMode("")
	require.NoError(t, err)
	assert.Equal(t, AbsoluteFilesystem, mode)

	mode, err = ParseAbsoluteMode("repository")
	require.NoError(t, err)
	assert.Equal(t, AbsoluteRepository, mode)

	_, err = ParseAbsoluteMode("web")
	require.Error(t, err)
}
