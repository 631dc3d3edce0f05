// Package plot renders scheduling results for a terminal: a line chart of the
// visited cylinders (x = service step, y = cylinder) and summary tables.
package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/me/seekplan/pkg/model"
)

// DefaultWidth is the number of columns used for the cylinder axis.
const DefaultWidth = 60

// Sequence draws res as one row per service step. The cylinder axis runs
// left to right across width columns; each row marks the visited cylinder
// with 'o' and trails the seek from the previous row with '-'.
func Sequence(w io.Writer, title string, res model.Result, diskSize, width int) error {
	if width < 2 {
		width = DefaultWidth
	}
	if diskSize < 1 {
		return &model.RangeError{Field: "disk_size", Value: diskSize}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  (cylinders 0-%d)\n", title, diskSize-1)

	label := len(fmt.Sprint(len(res.Sequence)))
	pad := strings.Repeat(" ", label+2)
	hi := fmt.Sprint(diskSize - 1)
	axis := "0" + strings.Repeat(" ", max(width-1-len(hi), 1)) + hi
	fmt.Fprintf(&b, "%s %s\n", pad, axis)
	fmt.Fprintf(&b, "%s+%s+\n", pad, strings.Repeat("-", width))

	prev := -1
	for i, c := range res.Sequence {
		row := []byte(strings.Repeat(" ", width))
		col := column(c, diskSize, width)
		if prev >= 0 {
			lo, hi := min(prev, col), max(prev, col)
			for x := lo; x <= hi; x++ {
				row[x] = '-'
			}
		}
		row[col] = 'o'
		fmt.Fprintf(&b, "%*d  |%s| %d\n", label, i, row, c)
		prev = col
	}
	fmt.Fprintf(&b, "%s+%s+\n", pad, strings.Repeat("-", width))
	fmt.Fprintf(&b, "Total head movement: %d cylinders over %d seeks\n", res.TotalMovement, res.Steps())

	_, err := io.WriteString(w, b.String())
	return err
}

// column maps a cylinder onto [0, width).
func column(c, diskSize, width int) int {
	if diskSize <= 1 {
		return 0
	}
	col := c * (width - 1) / (diskSize - 1)
	return min(max(col, 0), width-1)
}
