package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/history"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
	"git.home.luguber.info/inful/mdlinkcheck/internal/testutil"
)

func newGlobal() (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Stdout: &out, Stderr: &bytes.Buffer{}}, &out
}

func exitCode(err error) int {
	return ferrors.NewCLIErrorAdapter(false, nil).WithOutput(&bytes.Buffer{}).ExitCodeFor(err)
}

func TestRunCheck_AllValid(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{
		"README.md": "[ext](https://example.com) [anchor](#intro) [docs](docs/a.md)\n",
		"docs/a.md": "[see](./b.md)\n",
		"docs/b.md": "# B\n",
	}, nil)
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root})
	require.NoError(t, err)
	assert.Equal(t, "All markdown relative links are valid.\n", out.String())
	assert.Equal(t, 0, exitCode(err))
}

func TestRunCheck_BrokenLinks(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{
		"docs/a.md": "[see](./missing.md)\n![img](<./assets/pic with space.png>)\n",
	}, map[string]string{
		"docs/assets/pic with space.png": "png",
		"untracked.md":                   "[x](nowhere.md)\n",
	})
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)
	assert.Equal(t, "Broken markdown links found:\ndocs/a.md -> ./missing.md\n", out.String())
	assert.Equal(t, 1, exitCode(err))
}

func TestRunCheck_FromSubdirectory(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{
		"README.md": "[gone](gone.md)\n",
		"docs/a.md": "",
	}, nil)
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: filepath.Join(root, "docs")})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)
	assert.Contains(t, out.String(), "README.md -> gone.md")
}

func TestRunCheck_CLIBackend(t *testing.T) {
	if _, err := os.Stat("/usr/bin/git"); err != nil {
		t.Skip("git binary not available")
	}
	root := testutil.InitRepo(t, map[string]string{"a.md": "[b](b.md)\n"}, nil)
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root, Backend: "cli"})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)
	assert.Equal(t, "Broken markdown links found:\na.md -> b.md\n", out.String())
}

func TestRunCheck_ConfigFileAndOverrides(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{
		".mdlinkcheck.yaml": "format: json\nexclude: ['drafts/**']\n",
		"a.md":              "[b](b.md)\n",
		"drafts/wip.md":     "[todo](todo.md)\n",
	}, nil)

	g, out := newGlobal()
	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)

	var doc report.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Broken, 1)
	assert.Equal(t, "a.md", doc.Broken[0].Source)

	g, out = newGlobal()
	err = RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root, Format: "github"})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)
	assert.True(t, strings.HasPrefix(out.String(), "::error file=a.md::broken link b.md\n"), out.String())
}

func TestRunCheck_InvalidFlagIsValidationError(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": ""}, nil)
	g, _ := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root, Format: "xml"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Equal(t, 2, exitCode(err))
}

func TestRunCheck_MissingExplicitConfig(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": ""}, nil)
	g, _ := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{Config: filepath.Join(root, "absent.yaml")}, &CheckFlags{Root: root})
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestRunCheck_NotARepository(t *testing.T) {
	dir := t.TempDir()
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: dir})
	if err == nil {
		t.Skip("temporary directory is inside a git repository")
	}
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit), "got %v", err)
	assert.Equal(t, 1, exitCode(err))
	assert.Empty(t, out.String())
}

func TestRunCheck_UnreachableNATSDoesNotFail(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": ""}, nil)
	g, out := newGlobal()

	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root, NATSURL: "nats://127.0.0.1:1"})
	require.NoError(t, err)
	assert.Equal(t, "All markdown relative links are valid.\n", out.String())
}

func TestRunCheck_HistoryThenHistoryCommand(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": "[gone](gone.md)\n"}, nil)
	db := filepath.Join(t.TempDir(), "history.db")

	g, _ := newGlobal()
	err := RunCheck(context.Background(), g, &CLI{}, &CheckFlags{Root: root, History: db})
	require.ErrorIs(t, err, ferrors.ErrBrokenLinks)

	store, err := history.Open(db)
	require.NoError(t, err)
	runs, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, runs, 1)

	g, out := newGlobal()
	require.NoError(t, (&HistoryCmd{Root: root, History: db, Limit: 10}).Run(g, &CLI{}))
	assert.Contains(t, out.String(), "BROKEN")
	assert.Contains(t, out.String(), runs[0].ID)

	g, out = newGlobal()
	require.NoError(t, (&HistoryCmd{Root: root, History: db, RunID: runs[0].ID}).Run(g, &CLI{}))
	assert.Equal(t, "a.md -> gone.md\n", out.String())
}

func TestHistoryCmd_RequiresDatabase(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": ""}, nil)
	g, _ := newGlobal()

	err := (&HistoryCmd{Root: root}).Run(g, &CLI{})
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestHistoryCmd_MissingDatabaseFile(t *testing.T) {
	root := testutil.InitRepo(t, map[string]string{"a.md": ""}, nil)
	g, _ := newGlobal()

	err := (&HistoryCmd{Root: root, History: "absent/history.db"}).Run(g, &CLI{})
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.NoDirExists(t, filepath.Join(root, "absent"))
}

func TestVersionCmd(t *testing.T) {
	g, out := newGlobal()
	require.NoError(t, (&VersionCmd{}).Run(g))
	assert.True(t, strings.HasPrefix(out.String(), "mdlinkcheck "))
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("mdlinkcheck"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestParse_CheckIsDefault(t *testing.T) {
	_, ctx := parse(t)
	assert.Equal(t, "check", ctx.Command())

	cli, ctx := parse(t, "--format", "json", "--exclude", "vendor/**", "--exclude", "drafts/**")
	assert.Equal(t, "check", ctx.Command())
	assert.Equal(t, "json", cli.Check.Format)
	assert.Equal(t, []string{"vendor/**", "drafts/**"}, cli.Check.Exclude)
}

func TestParse_EnvironmentBindings(t *testing.T) {
	t.Setenv("MDLINKCHECK_BACKEND", "cli")
	t.Setenv("MDLINKCHECK_INTERVAL", "5m")

	cli, ctx := parse(t, "watch", "--metrics-addr", ":9464")
	assert.Equal(t, "watch", ctx.Command())
	assert.Equal(t, "cli", cli.Watch.Backend)
	assert.Equal(t, "5m0s", cli.Watch.Interval.String())
	assert.Equal(t, ":9464", cli.Watch.MetricsAddr)
}

func TestParse_HistoryAndVersion(t *testing.T) {
	cli, ctx := parse(t, "history", "-n", "3", "--run", "abc")
	assert.Equal(t, "history", ctx.Command())
	assert.Equal(t, 3, cli.History.Limit)
	assert.Equal(t, "abc", cli.History.RunID)

	_, ctx = parse(t, "version")
	assert.Equal(t, "version", ctx.Command())
}
