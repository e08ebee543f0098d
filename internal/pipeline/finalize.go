package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/gsjoin/internal/fileutil"
	"github.com/backmassage/gsjoin/internal/planner"
)

// Finalize turns a merged temp file into the group's output and archives
// the sources, in that order:
//
//  1. rename TempPath to OutputPath
//  2. apply the donor's snapshotted access and modification times
//  3. move every member into ArchiveDir
//
// A failure at any step is returned as a *GroupError. Steps already done
// are not undone.
func Finalize(plan *planner.GroupPlan) error {
	if err := os.Rename(plan.TempPath, plan.OutputPath); err != nil {
		return &GroupError{Key: plan.Key, Stage: StageFinalize, Err: err}
	}
	if err := os.Chtimes(plan.OutputPath, plan.DonorAtime, plan.DonorMtime); err != nil {
		return &GroupError{Key: plan.Key, Stage: StageTimestamps, Err: err}
	}
	if _, err := moveAll(plan.MemberPaths, plan.ArchiveDir); err != nil {
		return &GroupError{Key: plan.Key, Stage: StageArchive, Err: err}
	}
	return nil
}

// SortGroup moves every member into plan.SortDir and returns how many
// files were moved.
func SortGroup(plan *planner.GroupPlan) (int, error) {
	n, err := moveAll(plan.MemberPaths, plan.SortDir)
	if err != nil {
		return n, &GroupError{Key: plan.Key, Stage: StageSort, Err: err}
	}
	return n, nil
}

func moveAll(paths []string, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Base(dir), err)
	}
	for i, p := range paths {
		if _, err := fileutil.MoveInto(p, dir); err != nil {
			return i, err
		}
	}
	return len(paths), nil
}
