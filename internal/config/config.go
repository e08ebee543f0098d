// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultArchiveDirName is the sub-directory of the input directory that
// receives source segments once their group has been merged.
const DefaultArchiveDirName = "joined_files"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile], then mutated by the CLI flags before being passed
// (by pointer) to packages that need it.
type Config struct {
	// Paths. InputDir comes from the positional arg (default: cwd).
	InputDir   string
	OutputDir  string // Default: InputDir.
	ArchiveDir string // Default: <InputDir>/joined_files.

	// External tools.
	FFmpegPath   string // Default: "ffmpeg" (resolved on PATH).
	UdtacopyPath string // Default: "udtacopy" (resolved on PATH).

	// Segment matching and concat.
	Extension  string // Default: "360". No leading dot.
	StreamMaps []int  // Default: 0, 1, 3, 5 (video, audio, 360 video, gpmd).

	// Behavior flags.
	DryRun        bool
	SkipExisting  bool // Default: true. Cleared by --force.
	KeepGoing     bool // Continue with the next group after a failure.
	SortOnly      bool // Move groups into per-key directories; no merge.
	KeepManifests bool // Leave <key>_filelist.txt behind after merging.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
	ConfigFile string    // Resolved config file path (informational).
}

// DefaultConfig returns a Config with every default applied. Paths are left
// empty and resolved by [Config.ResolvePaths] once the input dir is known.
func DefaultConfig() Config {
	return Config{
		FFmpegPath:   "ffmpeg",
		UdtacopyPath: "udtacopy",
		Extension:    "360",
		StreamMaps:   []int{0, 1, 3, 5},
		SkipExisting: true,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtension lowercases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// ResolvePaths fills OutputDir and ArchiveDir from InputDir when they were
// not set by the config file or flags.
func (c *Config) ResolvePaths() {
	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = c.InputDir
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = filepath.Join(c.InputDir, DefaultArchiveDirName)
	}
}

// Validate checks enum fields, the extension and the stream map list. When
// not in CheckOnly mode it also requires that the tool paths are set.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Extension = NormalizeExtension(c.Extension)
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if strings.ContainsAny(c.Extension, `/\.`) {
		return fmt.Errorf("invalid extension %q", c.Extension)
	}

	if len(c.StreamMaps) == 0 {
		return errors.New("stream_maps must list at least one stream")
	}
	for _, idx := range c.StreamMaps {
		if idx < 0 {
			return fmt.Errorf("invalid stream map index %d", idx)
		}
	}

	if c.CheckOnly {
		return nil
	}
	if strings.TrimSpace(c.FFmpegPath) == "" && !c.SortOnly {
		return errors.New("ffmpeg path must not be empty")
	}
	if strings.TrimSpace(c.UdtacopyPath) == "" && !c.SortOnly {
		return errors.New("udtacopy path must not be empty")
	}
	return nil
}

// ValidatePaths ensures the resolved archive directory differs from the
// resolved input directory, since moving segments onto themselves would
// leave them in the scan set. All arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, archiveAbs string) error {
	if archiveAbs == inputAbs {
		return errors.New("archive directory must not be the input directory")
	}
	return nil
}
