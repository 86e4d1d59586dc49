package main

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"camsort/internal/separate"
)

// renderSummaryTable renders a finished run's placement counts as a
// two-column table: category folders sorted alphabetically, right-aligned
// counts, and a total row at the bottom.
func renderSummaryTable(summary *separate.Summary) string {
	labels := make([]string, 0, len(summary.Counts))
	for label := range summary.Counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Images"})
	for _, label := range labels {
		tw.AppendRow(table.Row{label, summary.Counts[label]})
	}
	tw.AppendFooter(table.Row{"total", summary.Images})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, AlignFooter: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
