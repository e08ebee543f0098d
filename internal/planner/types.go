package planner

import "time"

// Action describes the per-group processing decision.
type Action int

const (
	ActionMerge        Action = iota // Concatenate, copy metadata, finalize, archive.
	ActionSort                       // Move members into <output>/<key>/ (sort-only mode).
	ActionSkipSingle                 // Fewer than two members; left untouched.
	ActionSkipExisting               // Merged output already exists and --force is off.
)

// String returns a short label for summaries.
func (a Action) String() string {
	switch a {
	case ActionMerge:
		return "merge"
	case ActionSort:
		return "sort"
	case ActionSkipSingle:
		return "skip (single)"
	case ActionSkipExisting:
		return "skip (exists)"
	default:
		return "unknown"
	}
}

// Skipped reports whether the action leaves the group's files untouched.
func (a Action) Skipped() bool {
	return a == ActionSkipSingle || a == ActionSkipExisting
}

// GroupPlan holds every decision and derived path for one group. It is
// produced by BuildPlan; paths that do not apply to the chosen action are
// left empty.
type GroupPlan struct {
	Action     Action
	SkipReason string

	Key         string
	Members     []string // Segment filenames, lexicographically sorted.
	MemberPaths []string // Members joined onto the input directory, same order.

	// Donor is the first (lexicographically smallest) member: the source of
	// udta metadata and filesystem timestamps for the merged output.
	Donor string
	// DonorAtime and DonorMtime are captured before any tool reads the
	// donor, since reading it may advance its access time.
	DonorAtime time.Time
	DonorMtime time.Time

	// Merge paths.
	ManifestPath string
	TempPath     string
	OutputPath   string
	ArchiveDir   string

	// Sort-only path.
	SortDir string
}
