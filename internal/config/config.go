// Package config holds the run configuration assembled from the CLI
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
)

// Config holds all settings for one run. It is built once from the
// command line and immutable after Finalize.
type Config struct {
	// Directory settings
	RootDir    string
	IgnoreFile string // filename resolved inside RootDir
	OutputFile string // empty means stdout

	// Filtering settings
	Include           []string
	Exclude           []string
	Recursive         bool
	UseGitignore      bool
	FollowDirSymlinks bool
	MaxFileSizeMB     int64

	// Output format
	Format string

	// Diagnostics
	Verbose   bool
	Quiet     bool
	NoColor   bool
	UseColors bool
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		IgnoreFile: ".ignore",
		Recursive:  true,
		Format:     "text",
	}
}

// Finalize resolves the root directory, validates the configuration and
// derives the color setting. It must run before the config is used.
func (c *Config) Finalize(fsys afero.Fs) error {
	if c.RootDir == "" {
		return fmt.Errorf("config: target directory is required")
	}
	absRoot, err := filepath.Abs(c.RootDir)
	if err != nil {
		return fmt.Errorf("config: invalid target directory %q: %w", c.RootDir, err)
	}
	info, err := fsys.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config: target directory %q not found", absRoot)
		}
		return fmt.Errorf("config: cannot access target directory %q: %w", absRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config: %q is not a directory", absRoot)
	}
	c.RootDir = absRoot

	if c.IgnoreFile == "" || filepath.Base(c.IgnoreFile) != c.IgnoreFile {
		return fmt.Errorf("config: ignore-file must be a bare filename, got %q", c.IgnoreFile)
	}

	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	return nil
}

// IgnorePath returns the full path of the ignore-file inside the root.
func (c *Config) IgnorePath() string {
	return filepath.Join(c.RootDir, c.IgnoreFile)
}
