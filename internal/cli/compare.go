package cli

import (
	"fmt"

	"github.com/me/seekplan/internal/plot"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every policy on the same request set and rank them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, input, err := in.input(cmd)
			if err != nil {
				return err
			}

			comparisons, err := engine.Compare(input.Requests, input.Head, input.Previous, input.Direction, input.DiskSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, comparisons)
			}
			fmt.Fprintf(out, "Head %d moving %s over %d requests (disk %d)\n",
				input.Head, input.Direction, len(input.Requests), input.DiskSize)
			plot.Comparison(out, comparisons)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print comparisons as JSON")

	return cmd
}
