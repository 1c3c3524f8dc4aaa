package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfigDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/opensd", dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/deck")
	dir, err = UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/deck/.config/opensd", dir)
}

func TestProfilePathPrefersUserDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	require.NoError(t, EnsureUserDirs())
	userDir, err := UserProfileDir()
	require.NoError(t, err)

	p := filepath.Join(userDir, "custom.ini")
	require.NoError(t, os.WriteFile(p, []byte("[Profile]\n"), 0o644))

	assert.Equal(t, p, ProfilePath("custom.ini"))
	assert.Equal(t, "", ProfilePath("missing.ini"))
	assert.Equal(t, "", ProfilePath(""))
}

func TestDeployDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	require.NoError(t, DeployDefaults())
	path := ProfilePath(DefaultProfileFileName)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Bindings]")

	// Existing files are never overwritten.
	require.NoError(t, os.WriteFile(path, []byte("# user edited\n"), 0o644))
	require.NoError(t, DeployDefaults())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# user edited\n", string(data))
}

func TestConfigCandidatePathsRouting(t *testing.T) {
	j, y, tm := ConfigCandidatePaths("/tmp/mine.toml")
	require.NotEmpty(t, tm)
	assert.Equal(t, "/tmp/mine.toml", tm[0])
	for _, p := range j {
		assert.NotEqual(t, "/tmp/mine.toml", p)
	}
	assert.NotEmpty(t, y)

	j, _, _ = ConfigCandidatePaths("/tmp/mine.json")
	assert.Equal(t, "/tmp/mine.json", j[0])
}
