package plot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/me/seekplan/pkg/model"
	"github.com/olekukonko/tablewriter"
)

// maxSequenceCells caps how many cylinders a table cell lists before eliding.
const maxSequenceCells = 12

// Comparison renders ranked policy results as a table.
func Comparison(w io.Writer, comparisons []model.Comparison) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Policy", "Movement", "Seeks", "Sequence"})
	table.SetAutoWrapText(false)
	for _, c := range comparisons {
		table.Append([]string{
			strconv.Itoa(c.Rank),
			c.Policy.String(),
			strconv.Itoa(c.Result.TotalMovement),
			strconv.Itoa(c.Result.Steps()),
			FormatSequence(c.Result.Sequence, maxSequenceCells),
		})
	}
	table.Render()
}

// Runs renders stored runs as a table.
func Runs(w io.Writer, runs []*model.Run) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Policy", "Label", "Head", "Disk", "Movement", "Created"})
	table.SetAutoWrapText(false)
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.Policy.String(),
			r.Label,
			strconv.Itoa(r.Head),
			strconv.Itoa(r.DiskSize),
			strconv.Itoa(r.Result.TotalMovement),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "Runs", strconv.Itoa(len(runs))})
	table.Render()
}

// FormatSequence joins cylinders with arrows, eliding the middle when the
// sequence is longer than limit (limit <= 0 means no limit).
func FormatSequence(seq []int, limit int) string {
	parts := make([]string, 0, len(seq))
	if limit > 0 && len(seq) > limit {
		head := limit / 2
		tail := limit - head
		for _, c := range seq[:head] {
			parts = append(parts, strconv.Itoa(c))
		}
		parts = append(parts, fmt.Sprintf("...(%d more)", len(seq)-limit))
		for _, c := range seq[len(seq)-tail:] {
			parts = append(parts, strconv.Itoa(c))
		}
		return strings.Join(parts, " -> ")
	}
	for _, c := range seq {
		parts = append(parts, strconv.Itoa(c))
	}
	return strings.Join(parts, " -> ")
}
