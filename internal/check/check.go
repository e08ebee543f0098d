// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, udtacopy, and the working
// directories.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/gsjoin/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound    = errors.New("ffmpeg not found")
	ErrUdtacopyNotFound  = errors.New("udtacopy not found")
	ErrNoConcatDemuxer   = errors.New("ffmpeg lacks the concat demuxer")
	ErrInputDirNotUsable = errors.New("input directory is not usable")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: prints availability of ffmpeg and its
// concat demuxer, udtacopy, and directory access. Output and archive
// directories are created on demand, so their absence is only a warning.
// Returns false if anything required for a merge is missing.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(ctx, cfg, log)
	ok = checkUdtacopy(cfg, log) && ok
	ok = checkDir(log, "Input directory", cfg.InputDir, true) && ok
	checkDir(log, "Output directory", cfg.OutputDir, false)
	checkDir(log, "Archive directory", cfg.ArchiveDir, false)
	return ok
}

// checkFfmpeg verifies ffmpeg resolves, logs its version string, and
// confirms the concat demuxer is compiled in.
func checkFfmpeg(ctx context.Context, cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		log.Error("ffmpeg not found (%s)", cfg.FFmpegPath)
		return false
	}
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found at %s but -version failed: %v", path, err)
	} else {
		log.Success("ffmpeg: %s", firstLine(string(out)))
	}

	if !hasConcatDemuxer(ctx, path) {
		log.Error("ffmpeg at %s has no concat demuxer", path)
		return false
	}
	log.Success("concat demuxer: available")
	return true
}

// checkUdtacopy verifies udtacopy resolves. It has no version flag, so it
// is not executed.
func checkUdtacopy(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.UdtacopyPath)
	if err != nil {
		if cfg.SortOnly {
			log.Warn("udtacopy not found (%s); not needed with --sort-only", cfg.UdtacopyPath)
			return true
		}
		log.Error("udtacopy not found (%s)", cfg.UdtacopyPath)
		return false
	}
	log.Success("udtacopy: %s", path)
	return true
}

func checkDir(log Logger, name, path string, required bool) bool {
	r := CheckDirectoryAccess(name, path)
	switch {
	case r.Passed:
		log.Success("%s: %s", r.Name, r.Detail)
	case required:
		log.Error("%s: %s", r.Name, r.Detail)
	default:
		log.Warn("%s: %s", r.Name, r.Detail)
	}
	return r.Passed
}

// CheckDeps is the pre-run validation: it verifies that the tools a merge
// needs resolve and that the input directory is usable. In sort-only mode
// only the directory is checked. Returns a wrapped sentinel error on
// failure.
func CheckDeps(ctx context.Context, cfg *config.Config) error {
	if r := CheckDirectoryAccess("Input directory", cfg.InputDir); !r.Passed {
		return fmt.Errorf("%w: %s", ErrInputDirNotUsable, r.Detail)
	}
	if cfg.SortOnly {
		return nil
	}

	ffmpegPath, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	if _, err := exec.LookPath(cfg.UdtacopyPath); err != nil {
		return fmt.Errorf("%w: %s", ErrUdtacopyNotFound, cfg.UdtacopyPath)
	}
	if !hasConcatDemuxer(ctx, ffmpegPath) {
		return ErrNoConcatDemuxer
	}
	return nil
}

// Result reports the outcome of a single directory check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable and writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (is not a directory)", path)}
	}
	if err := accessRW(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// --- internal helpers ---

// hasConcatDemuxer asks ffmpeg for its demuxer list and looks for "concat".
func hasConcatDemuxer(ctx context.Context, ffmpegPath string) bool {
	out, err := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", "-demuxers").Output()
	if err != nil {
		return false
	}
	return listsDemuxer(string(out), "concat")
}

// listsDemuxer parses `ffmpeg -demuxers` output, whose rows look like
// " D  concat          Virtual concatenation script".
func listsDemuxer(out, name string) bool {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.Contains(fields[0], "D") {
			continue
		}
		for _, n := range strings.Split(fields[1], ",") {
			if n == name {
				return true
			}
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
