package pipeline

import (
	"github.com/backmassage/gsjoin/internal/display"
	"github.com/backmassage/gsjoin/internal/planner"
)

// RunStats tracks aggregate counters and per-group results across a run.
type RunStats struct {
	RunID    string
	Segments int // Matching files found by the scanner.
	Groups   int
	Merged   int
	Sorted   int
	Skipped  int
	Failed   int
	Archived int   // Source files moved to the archive or a sort directory.
	Bytes    int64 // Total size of merged outputs.

	rows []display.SummaryRow
}

// Rows returns the per-group results in processing order.
func (s *RunStats) Rows() []display.SummaryRow { return s.rows }

func (s *RunStats) record(plan *planner.GroupPlan, status string, size int64, detail string) {
	s.rows = append(s.rows, display.SummaryRow{
		Key:    plan.Key,
		Files:  len(plan.Members),
		Status: status,
		Size:   size,
		Detail: detail,
	})
}
