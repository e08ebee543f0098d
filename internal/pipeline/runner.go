package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/gsjoin/internal/config"
	"github.com/backmassage/gsjoin/internal/display"
	"github.com/backmassage/gsjoin/internal/ffmpeg"
	"github.com/backmassage/gsjoin/internal/fileutil"
	"github.com/backmassage/gsjoin/internal/logging"
	"github.com/backmassage/gsjoin/internal/planner"
)

// stderrTailLines is how much tool output is echoed when a tool fails.
const stderrTailLines = 20

// Option customizes a Run.
type Option func(*runner)

// WithExecutor replaces the subprocess executor (tests use a fake).
func WithExecutor(ex ffmpeg.Executor) Option {
	return func(r *runner) { r.exec = ex }
}

// WithRunID fixes the run ID instead of generating one.
func WithRunID(id string) Option {
	return func(r *runner) { r.runID = id }
}

type runner struct {
	cfg   *config.Config
	log   *logging.Logger
	exec  ffmpeg.Executor
	runID string
	stats RunStats
}

// Run is the top-level entry point. It discovers and groups segment files
// in cfg.InputDir, then processes each group sequentially.
//
// The returned error is non-nil when the run could not start (unreadable
// directory, lock held), when it was interrupted, or when a group failed
// and cfg.KeepGoing is off. With KeepGoing, group failures are only
// counted in RunStats.Failed.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, opts ...Option) (RunStats, error) {
	r := &runner{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(r)
	}
	if r.exec == nil {
		r.exec = ffmpeg.NewCommandExecutor(cfg.Verbose)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	r.stats.RunID = r.runID

	err := r.run(ctx)
	return r.stats, err
}

func (r *runner) run(ctx context.Context) error {
	cfg, log := r.cfg, r.log

	segs, err := Discover(cfg.InputDir, cfg.Extension)
	if err != nil {
		return err
	}
	groups := GroupFiles(segs)
	r.stats.Segments = len(segs)
	r.stats.Groups = len(groups)

	r.logRunHeader()
	if len(groups) == 0 {
		log.Warn("No .%s segment files found in %s", cfg.Extension, cfg.InputDir)
		return nil
	}

	if !cfg.DryRun {
		lock, err := AcquireLock(cfg.InputDir, r.runID)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn("%v", err)
			}
		}()
		log.Debug(cfg.Verbose, "Lock: %s", lock.Path())
	}

	for _, g := range groups {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			r.logSummary()
			return ctx.Err()
		}

		plan := planner.BuildPlan(cfg, g.Key, g.Members)
		if err := r.processGroup(ctx, plan); err != nil {
			r.stats.Failed++
			r.stats.record(plan, "failed", 0, stageOf(err))
			r.logGroupError(err)
			log.Blank()

			if ctx.Err() != nil {
				log.Warn("Interrupted")
				r.logSummary()
				return ctx.Err()
			}
			if !cfg.KeepGoing {
				r.logSummary()
				return err
			}
			continue
		}
		log.Blank()
	}

	log.Success("All groups processed.")
	r.logSummary()
	return nil
}

// processGroup dispatches on the planned action.
func (r *runner) processGroup(ctx context.Context, plan *planner.GroupPlan) error {
	if plan.Action.Skipped() {
		r.skipGroup(plan)
		return nil
	}
	switch plan.Action {
	case planner.ActionSort:
		return r.sortGroup(plan)
	default:
		return r.mergeGroup(ctx, plan)
	}
}

// skipGroup logs and counts a group left untouched. Single-member groups
// are expected; an existing output is worth a warning.
func (r *runner) skipGroup(plan *planner.GroupPlan) {
	detail := ""
	if plan.Action == planner.ActionSkipSingle {
		r.log.Info("Skipping group %s (%s)", plan.Key, plan.SkipReason)
	} else {
		r.log.Warn("Skipping group %s (%s)", plan.Key, plan.SkipReason)
		detail = plan.SkipReason
	}
	r.stats.Skipped++
	r.stats.record(plan, plan.Action.String(), 0, detail)
}

// sortGroup is the sort-only variant: move members into <output>/<key>/.
func (r *runner) sortGroup(plan *planner.GroupPlan) error {
	cfg, log := r.cfg, r.log
	dirName := filepath.Base(plan.SortDir) + "/"

	log.Info("Processing group %s with %d files...", plan.Key, len(plan.Members))
	if cfg.DryRun {
		log.Success("[DRY] Would move %d file(s) into %s", len(plan.Members), dirName)
		r.stats.Sorted++
		r.stats.record(plan, "dry run", 0, dirName)
		return nil
	}

	n, err := SortGroup(plan)
	r.stats.Archived += n
	if err != nil {
		return err
	}
	log.Success("Finished: Created directory %s with %d file(s)", dirName, n)
	r.stats.Sorted++
	r.stats.record(plan, plan.Action.String(), 0, dirName)
	return nil
}

// mergeGroup runs manifest -> concat -> udtacopy -> finalize for one group.
// The temp file is removed on any failure before finalize; the manifest is
// removed once the group is done unless KeepManifests is set.
func (r *runner) mergeGroup(ctx context.Context, plan *planner.GroupPlan) error {
	cfg, log := r.cfg, r.log
	outName := filepath.Base(plan.OutputPath)

	log.Info("Processing group %s with %d files...", plan.Key, len(plan.Members))
	for _, m := range plan.Members {
		log.Debug(cfg.Verbose, "  %s", m)
	}

	if cfg.DryRun {
		log.Success("[DRY] Would merge %d files -> %s", len(plan.Members), outName)
		r.stats.Merged++
		r.stats.record(plan, "dry run", 0, outName)
		return nil
	}

	start := time.Now()

	// --- Donor timestamps ---
	atime, mtime, err := fileutil.Times(plan.Donor)
	if err != nil {
		return &GroupError{Key: plan.Key, Stage: StageTimestamps, Err: err}
	}
	plan.DonorAtime, plan.DonorMtime = atime, mtime

	// --- Manifest ---
	if err := os.MkdirAll(filepath.Dir(plan.ManifestPath), 0o755); err != nil {
		return &GroupError{Key: plan.Key, Stage: StageManifest, Err: err}
	}
	if err := WriteManifest(plan.ManifestPath, plan.MemberPaths); err != nil {
		return &GroupError{Key: plan.Key, Stage: StageManifest, Err: err}
	}
	if !cfg.KeepManifests {
		defer os.Remove(plan.ManifestPath)
	}

	// --- Concatenate ---
	if err := ffmpeg.Concat(ctx, r.exec, cfg, plan.ManifestPath, plan.TempPath); err != nil {
		os.Remove(plan.TempPath)
		return &GroupError{Key: plan.Key, Stage: StageConcat, Err: err}
	}

	// --- Metadata ---
	code, err := ffmpeg.CopyMetadata(ctx, r.exec, cfg, plan.Donor, plan.TempPath)
	if err != nil {
		os.Remove(plan.TempPath)
		return &GroupError{Key: plan.Key, Stage: StageMetadata, Err: err}
	}
	if code != 0 {
		log.Debug(cfg.Verbose, "udtacopy exited %d (accepted)", code)
	}

	// --- Finalize ---
	if err := Finalize(plan); err != nil {
		return err
	}
	r.stats.Archived += len(plan.MemberPaths)

	var size int64
	if info, err := os.Stat(plan.OutputPath); err == nil {
		size = info.Size()
	}
	r.stats.Merged++
	r.stats.Bytes += size
	r.stats.record(plan, plan.Action.String(), size, outName)

	log.Success("Merged %s (%s) in %ds", outName, display.FormatBytes(size), int(time.Since(start).Seconds()))
	log.Debug(cfg.Verbose, "Archived %d file(s) to %s", len(plan.MemberPaths), plan.ArchiveDir)
	return nil
}

// --- Logging helpers ---

func (r *runner) logRunHeader() {
	cfg, log := r.cfg, r.log
	log.Info("Run %s", r.runID)
	log.Info("Found %d segment(s) in %d group(s)", r.stats.Segments, r.stats.Groups)
	if cfg.SortOnly {
		log.Info("Mode: sort only (move groups into per-key directories)")
	} else {
		log.Info("Mode: merge (ffmpeg concat, stream copy, maps %v)", cfg.StreamMaps)
		log.Info("Archive: %s", cfg.ArchiveDir)
	}
	if cfg.KeepGoing {
		log.Info("Failure policy: keep going")
	}
	log.Blank()
}

func (r *runner) logGroupError(err error) {
	r.log.Error("%v", err)

	var exitErr *ffmpeg.ExitError
	if !errors.As(err, &exitErr) {
		return
	}
	lines := exitErr.Tail(stderrTailLines)
	if len(lines) == 0 {
		return
	}
	r.log.Error("Last %s output:", exitErr.Tool)
	for _, l := range lines {
		r.log.Error("  %s", l)
	}
}

func (r *runner) logSummary() {
	cfg, log, s := r.cfg, r.log, &r.stats
	log.Info("==============================")
	if cfg.SortOnly {
		log.Info("Done: %d sorted, %d skipped, %d failed", s.Sorted, s.Skipped, s.Failed)
	} else {
		log.Info("Done: %d merged, %d skipped, %d failed", s.Merged, s.Skipped, s.Failed)
	}
	if table := display.RenderSummary(s.rows); table != "" {
		log.Raw(table + "\n")
	}
	if cfg.DryRun {
		log.Info("Nothing written (dry run)")
		return
	}
	if s.Bytes > 0 {
		log.Success("Total merged: %s across %s file(s) archived", display.FormatBytes(s.Bytes), display.FormatCount(int64(s.Archived)))
	}
}

func stageOf(err error) string {
	var ge *GroupError
	if errors.As(err, &ge) {
		return ge.Stage
	}
	return fmt.Sprint(err)
}
