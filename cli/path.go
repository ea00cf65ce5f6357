package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/parsebuilder/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// defaultDirMode is the default permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// dirs locates the runtime directories used by a CLI invocation.
type dirs struct {
	config string
	cache  string
}

// defaultDirs returns the XDG-based directories of the running executable.
func defaultDirs() dirs {
	return dirs{config: pkg.ConfigDir(), cache: pkg.CacheDir()}
}

// configPath returns the absolute path to a file or directory formed by joining
// the configuration directory path with the given path elements.
//
// If no elements are given, it returns the configuration directory itself.
func (d dirs) configPath(elem ...string) string {
	return filepath.Join(append([]string{d.config}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func (d dirs) mkdirAllRequired() error {
	for _, dir := range []string{d.config, d.cache} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
