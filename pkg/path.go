package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var (
	dlvBinary   = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDots = regexp.MustCompile(`^\.+`)
	nonEnvChars = regexp.MustCompile(`[^A-Z0-9_]+`)
)

// Prefix returns the base name of the running executable without extension
// or leading dots. Debugger builds (named __debug_bin by dlv) use [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	return prefixOf(id)
})

func prefixOf(path string) string {
	base := leadingDots.ReplaceAllString(filepath.Base(path), "")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == "" || dlvBinary.MatchString(base) {
		return Name
	}

	return base
}

// ConfigDir returns the per-user configuration directory for [Prefix].
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the per-user cache directory for [Prefix].
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir joins [Prefix] to the directory returned by base, falling back to
// $HOME/hidden and then to the working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// EnvVar returns the name of the environment variable for key, namespaced
// by [Prefix]. For example, EnvVar("vars") is "ADCOPY_VARS".
func EnvVar(key string) string {
	return envName(Prefix(), key)
}

func envName(prefix, key string) string {
	name := strings.ToUpper(prefix + "_" + key)

	return strings.Trim(nonEnvChars.ReplaceAllString(name, "_"), "_")
}
