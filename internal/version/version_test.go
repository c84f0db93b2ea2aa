package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v string, info *debug.BuildInfo) {
	t.Helper()
	oldVersion, oldRead := Version, readBuildInfo
	t.Cleanup(func() { Version, readBuildInfo = oldVersion, oldRead })
	Version = v
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func TestResolved_Ldflags(t *testing.T) {
	withVersion(t, "v1.2.3", &debug.BuildInfo{Main: debug.Module{Version: "v0.0.1"}})
	assert.Equal(t, "v1.2.3", Resolved())
}

func TestResolved_ModuleVersion(t *testing.T) {
	withVersion(t, "unknown", &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}})
	assert.Equal(t, "v0.4.0", Resolved())
}

func TestResolved_Devel(t *testing.T) {
	withVersion(t, "unknown", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "unknown", Resolved())

	withVersion(t, "unknown", nil)
	assert.Equal(t, "unknown", Resolved())
}

func TestString(t *testing.T) {
	withVersion(t, "v1.0.0", nil)
	assert.Equal(t, "mdlinkcheck v1.0.0 (commit unknown, built unknown)", String())
}
