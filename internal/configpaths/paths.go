// Package configpaths resolves the daemon's XDG-style directories:
// where daemon configuration lives, where user profiles are searched,
// and whether a system-wide installation is present.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	appDirName = "opensd"

	// SysDataDir is where a system-wide installation deploys shared
	// data (default profiles).
	SysDataDir = "/usr/local/share/opensd"

	sysConfigDir = "/etc/opensd"
)

// UserHome returns $HOME.
func UserHome() (string, error) {
	home := os.Getenv("HOME")
	if home == "" || home == "/" {
		return "", errors.New("HOME not set")
	}
	return home, nil
}

// UserConfigDir returns the per-user configuration directory,
// honouring $XDG_CONFIG_HOME.
func UserConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// UserProfileDir returns the per-user profile directory.
func UserProfileDir() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles"), nil
}

// SysProfileDir returns the system-wide profile directory.
func SysProfileDir() string {
	return filepath.Join(SysDataDir, "profiles")
}

// IsInstalled reports whether a system-wide data directory exists.
func IsInstalled() bool {
	st, err := os.Stat(SysDataDir)
	return err == nil && st.IsDir()
}

// EnsureUserDirs creates the per-user config and profile directories.
func EnsureUserDirs() error {
	dir, err := UserProfileDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// ProfilePath resolves a profile file name, searching the user profile
// directory first and the system-wide directory second. Returns "" if
// the profile exists in neither.
func ProfilePath(fileName string) string {
	if fileName == "" {
		return ""
	}
	if userDir, err := UserProfileDir(); err == nil {
		p := filepath.Join(userDir, fileName)
		if fileExists(p) {
			return p
		}
	}
	p := filepath.Join(SysProfileDir(), fileName)
	if fileExists(p) {
		return p
	}
	return ""
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// ConfigCandidatePaths builds candidate daemon-config paths per
// format. If userPath is provided it is prioritized and routed to the
// matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	dirs := []string{}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, sysConfigDir)

	for _, dir := range dirs {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}

	return
}
