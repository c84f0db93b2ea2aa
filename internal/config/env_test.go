package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MDLINKCHECK_T_A=from-env\nMDLINKCHECK_T_B=from-env\nMDLINKCHECK_T_C=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("MDLINKCHECK_T_B=from-local\n"), 0o600))

	t.Setenv("MDLINKCHECK_T_C", "from-process")
	for _, key := range []string{"MDLINKCHECK_T_A", "MDLINKCHECK_T_B"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	loaded, err := LoadEnvFiles(dir)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	assert.Equal(t, "from-env", os.Getenv("MDLINKCHECK_T_A"))
	assert.Equal(t, "from-local", os.Getenv("MDLINKCHECK_T_B"))
	assert.Equal(t, "from-process", os.Getenv("MDLINKCHECK_T_C"))
}

func TestLoadEnvFiles_NoFiles(t *testing.T) {
	loaded, err := LoadEnvFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
