package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/gsjoin/internal/check"
	"github.com/backmassage/gsjoin/internal/config"
	"github.com/backmassage/gsjoin/internal/display"
	"github.com/backmassage/gsjoin/internal/logging"
	"github.com/backmassage/gsjoin/internal/pipeline"
)

func newRootCommand(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gsjoin [flags] [input_dir]",
		Short: "Join segmented GoPro 360 recordings into one file per session",
		Long: `gsjoin groups GS<chapter><key>.360 files in input_dir by their four-digit
key, concatenates each group with ffmpeg (stream copy), copies the GoPro
udta metadata from the first segment with udtacopy, and moves the merged
segments into an archive directory.`,
		Version:       version + " (" + commit + ")",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("gsjoin {{.Version}}\n")

	flags := config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolP("version", "V", false, "Print version and exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags, cmd.Flags(), args)
		if err != nil {
			return err
		}
		log, err := logging.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		*code = runJoin(cmd.Context(), cfg, log)
		return nil
	}
	return cmd
}

// loadConfig layers defaults, the config file, and flags, then validates.
func loadConfig(flags *config.Flags, fs *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if _, err := config.LoadFile(&cfg, flags.ConfigPath()); err != nil {
		return nil, err
	}
	if err := flags.Apply(&cfg, fs, args); err != nil {
		return nil, err
	}
	cfg.ResolvePaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runJoin runs the logged phases of a join and returns the exit code.
func runJoin(ctx context.Context, cfg *config.Config, log *logging.Logger) int {
	display.PrintBanner(os.Stdout)

	// 1. System check mode.
	if cfg.CheckOnly {
		if !check.RunCheck(ctx, cfg, log) {
			return 1
		}
		return 0
	}

	// 2. Resolve paths: input must exist, archive must differ from input,
	//    output is created when needed.
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	archiveAbs, err := absPathLenient(cfg.ArchiveDir)
	if err != nil {
		log.Error("Cannot resolve archive path: %s", cfg.ArchiveDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, archiveAbs); err != nil {
		log.Error("%v", err)
		return 1
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return 1
		}
	}

	log.Info("=== gsjoin v%s ===", version)
	log.Info("In:      %s", cfg.InputDir)
	log.Info("Out:     %s", cfg.OutputDir)
	if !cfg.SortOnly {
		log.Info("Archive: %s", cfg.ArchiveDir)
	}
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config:  %s", cfg.ConfigFile)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	log.Blank()

	// 3. External tools must be available before any file moves.
	if err := check.CheckDeps(ctx, cfg); err != nil {
		if !cfg.DryRun {
			log.Error("%v", err)
			return 1
		}
		log.Warn("%v (ignored for dry run)", err)
	}

	// 4. Pipeline.
	stats, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		var ge *pipeline.GroupError
		switch {
		case errors.Is(err, context.Canceled):
			log.Warn("Interrupted; remaining groups were not processed")
		case errors.As(err, &ge):
			log.Error("Stopped after failed group %s (use --keep-going to continue past failures)", ge.Key)
		default:
			log.Error("%v", err)
		}
		return 1
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// absPath returns the absolute path with symlinks resolved.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// absPathLenient is absPath for a directory that may not exist yet: only
// the parent is resolved.
func absPathLenient(path string) (string, error) {
	if resolved, err := absPath(path); err == nil {
		return resolved, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	parent, err := absPath(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}
