package config

// This file binds the CLI flags to a cobra/pflag FlagSet.
// Flags are grouped into paths, tools, behavior, display, and utility.
// Values are applied onto Config only when the user actually set them, so
// defaults and config-file values hold otherwise.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags captures raw flag values until [Flags.Apply] merges them into a
// Config that already carries defaults and config-file values.
type Flags struct {
	outputDir  string
	archiveDir string
	ffmpeg     string
	udtacopy   string
	extension  string
	configFile string
	logFile    string

	dryRun        bool
	force         bool
	keepGoing     bool
	sortOnly      bool
	keepManifests bool
	verbose       bool
	forceColor    bool
	noColor       bool
	check         bool
}

// RegisterFlags defines every gsjoin flag on fs and returns the holder the
// values are parsed into.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	definePathFlags(fs, f)
	defineToolFlags(fs, f)
	defineBehaviorFlags(fs, f)
	defineDisplayFlags(fs, f)
	return f
}

// ConfigPath returns the --config value ("" when unset).
func (f *Flags) ConfigPath() string { return strings.TrimSpace(f.configFile) }

// definePathFlags registers -o/--output and --archive.
func definePathFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.outputDir, "output", "o", "", "Directory for merged files (default: input dir)")
	fs.StringVar(&f.archiveDir, "archive", "", "Directory merged segments are moved to (default: <input>/"+DefaultArchiveDirName+")")
	fs.StringVarP(&f.configFile, "config", "c", "", "Configuration file path")
}

// defineToolFlags registers --ffmpeg, --udtacopy and --ext.
func defineToolFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.ffmpeg, "ffmpeg", "", "ffmpeg executable (default: ffmpeg on PATH)")
	fs.StringVar(&f.udtacopy, "udtacopy", "", "udtacopy executable (default: udtacopy on PATH)")
	fs.StringVar(&f.extension, "ext", "", "Segment file extension (default: 360)")
}

// defineBehaviorFlags registers dry-run, force, keep-going, sort-only and keep-manifests.
func defineBehaviorFlags(fs *pflag.FlagSet, f *Flags) {
	fs.BoolVarP(&f.dryRun, "dry-run", "d", false, "Preview only; do not merge or move files")
	fs.BoolVarP(&f.force, "force", "f", false, "Overwrite existing merged files")
	fs.BoolVarP(&f.keepGoing, "keep-going", "k", false, "Continue with remaining groups after a failure")
	fs.BoolVar(&f.sortOnly, "sort-only", false, "Move each group into a <key>/ directory instead of merging")
	fs.BoolVar(&f.keepManifests, "keep-manifests", false, "Keep the ffmpeg concat list after merging")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *pflag.FlagSet, f *Flags) {
	fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.check, "check", false, "Run system diagnostics and exit")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
}

// Apply copies every flag the user set onto cfg and takes the input
// directory from args (at most one positional argument).
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one input_dir, got %d arguments", len(args))
	}
	if len(args) == 1 {
		cfg.InputDir = NormalizeDirArg(args[0])
	}

	if fs.Changed("output") {
		cfg.OutputDir = NormalizeDirArg(f.outputDir)
	}
	if fs.Changed("archive") {
		cfg.ArchiveDir = NormalizeDirArg(f.archiveDir)
	}
	if fs.Changed("ffmpeg") {
		cfg.FFmpegPath = strings.TrimSpace(f.ffmpeg)
	}
	if fs.Changed("udtacopy") {
		cfg.UdtacopyPath = strings.TrimSpace(f.udtacopy)
	}
	if fs.Changed("ext") {
		cfg.Extension = NormalizeExtension(f.extension)
	}
	if fs.Changed("log") {
		cfg.LogFile = f.logFile
	}

	if fs.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if fs.Changed("force") {
		cfg.SkipExisting = !f.force
	}
	if fs.Changed("keep-going") {
		cfg.KeepGoing = f.keepGoing
	}
	if fs.Changed("sort-only") {
		cfg.SortOnly = f.sortOnly
	}
	if fs.Changed("keep-manifests") {
		cfg.KeepManifests = f.keepManifests
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("check") {
		cfg.CheckOnly = f.check
	}

	// --no-color wins over --color; turning either off explicitly falls
	// back to auto detection.
	switch {
	case fs.Changed("no-color") && f.noColor:
		cfg.ColorMode = ColorNever
	case fs.Changed("color") && f.forceColor:
		cfg.ColorMode = ColorAlways
	case fs.Changed("color") || fs.Changed("no-color"):
		cfg.ColorMode = ColorAuto
	}
	return nil
}

// colorModeValue adapts ColorMode to string input from the config file.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
func (c *colorModeValue) Type() string { return "color" }
