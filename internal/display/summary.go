package display

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SummaryRow is one group's line in the end-of-run table.
type SummaryRow struct {
	Key    string
	Files  int
	Status string
	Size   int64 // Merged output size; 0 when nothing was written.
	Detail string
}

// RenderSummary renders the per-group result table. It returns "" when
// there are no rows.
func RenderSummary(rows []SummaryRow) string {
	if len(rows) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Group", "Files", "Status", "Size", "Detail"})

	for _, r := range rows {
		size := ""
		if r.Size > 0 {
			size = FormatBytes(r.Size)
		}
		tw.AppendRow(table.Row{r.Key, r.Files, r.Status, size, r.Detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
