package pkg

import (
	"os"
	"path/filepath"
	"sync"
)

// ConfigFileName is the base name of the user configuration file.
const ConfigFileName = "config.yaml"

// ConfigDir returns the per-user configuration directory.
// It falls back to ~/.config and then to the working directory.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserConfigDir, ".config"), Name)
})

// CacheDir returns the per-user cache directory.
// It falls back to ~/.cache and then to the working directory.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserCacheDir, ".cache"), Name)
})

// ConfigFile returns the default path of the user configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

func userDir(base func() (string, error), fallback string) string {
	if dir, err := base(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}
