package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/adcopy/pkg"
)

const (
	// baseConfig is the base name of the configuration file.
	baseConfig = "config"
	// configExt is the extension of the YAML configuration file.
	configExt = ".yaml"
)

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with elem. With no elements it is the configuration directory itself.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
