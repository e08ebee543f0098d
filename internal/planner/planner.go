package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/gsjoin/internal/config"
	"github.com/backmassage/gsjoin/internal/naming"
)

// MinMembers is the smallest group that is merged.
const MinMembers = 2

// BuildPlan produces a GroupPlan from config and one group's members.
// members may arrive in any order; the plan always carries them sorted.
//
// Flow:
//  1. Sort members and resolve their paths against the input directory
//  2. Skip groups with fewer than MinMembers members
//  3. Sort-only mode: plan a move into <output>/<key>/
//  4. Derive manifest, temp and final paths; skip when the final output exists
func BuildPlan(cfg *config.Config, key string, members []string) *GroupPlan {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)

	plan := &GroupPlan{
		Key:         key,
		Members:     sorted,
		MemberPaths: make([]string, len(sorted)),
	}
	for i, name := range sorted {
		plan.MemberPaths[i] = filepath.Join(cfg.InputDir, name)
	}
	if len(sorted) > 0 {
		plan.Donor = plan.MemberPaths[0]
	}

	// --- 1. Group size ---
	if len(sorted) < MinMembers {
		plan.Action = ActionSkipSingle
		plan.SkipReason = "only one file"
		return plan
	}

	// --- 2. Sort-only variant ---
	if cfg.SortOnly {
		plan.Action = ActionSort
		plan.SortDir = naming.SortDir(cfg.OutputDir, key)
		return plan
	}

	// --- 3. Merge paths ---
	plan.Action = ActionMerge
	plan.ManifestPath = naming.ManifestPath(cfg.OutputDir, key)
	plan.TempPath = naming.TempOutputPath(cfg.OutputDir, key)
	plan.OutputPath = naming.OutputPath(cfg.OutputDir, key, cfg.Extension)
	plan.ArchiveDir = cfg.ArchiveDir

	if cfg.SkipExisting {
		if _, err := os.Stat(plan.OutputPath); err == nil {
			plan.Action = ActionSkipExisting
			plan.SkipReason = fmt.Sprintf("%s already exists", filepath.Base(plan.OutputPath))
		}
	}
	return plan
}
