package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/me/seekplan/internal/plot"
	"github.com/me/seekplan/internal/workload"
	"github.com/me/seekplan/pkg/model"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		in       inputFlags
		policy   string
		showPlot bool
		asJSON   bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Schedule a request set under one or more policies",
		Example: `  seekplan run --policy SSTF --requests 98,183,37,122,14,124,65,67 --head 53 --disk-size 200
  seekplan run --policy C-LOOK --requests 98,183,37 --head 53 --previous 40 --disk-size 200 --plot
  seekplan run --file workload.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, input, err := in.input(cmd)
			if err != nil {
				return err
			}
			policies, err := selectPolicies(policy, w)
			if err != nil {
				return err
			}

			runs := make([]*model.Run, 0, len(policies))
			for _, p := range policies {
				res, err := engine.RunDirection(p, input.Requests, input.Head, input.Direction, input.DiskSize)
				if err != nil {
					return err
				}
				runs = append(runs, newLocalRun(w, input, p, res))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, runs)
			}
			for i, r := range runs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printRun(out, r)
				if showPlot {
					fmt.Fprintln(out)
					if err := plot.Sequence(out, r.Policy.String(), r.Result, r.DiskSize, width); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Scheduling policy (FCFS, SSTF, SCAN, C-SCAN, LOOK, C-LOOK)")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "Draw the visit sequence after the summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	cmd.Flags().IntVar(&width, "width", plot.DefaultWidth, "Chart width in columns")

	return cmd
}

func newPlotCmd() *cobra.Command {
	var (
		in     inputFlags
		policy string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw the visit sequence of one policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, input, err := in.input(cmd)
			if err != nil {
				return err
			}
			policies, err := selectPolicies(policy, w)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, p := range policies {
				res, err := engine.RunDirection(p, input.Requests, input.Head, input.Direction, input.DiskSize)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := plot.Sequence(out, p.String(), res, input.DiskSize, width); err != nil {
					return err
				}
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Scheduling policy")
	cmd.Flags().IntVar(&width, "width", plot.DefaultWidth, "Chart width in columns")

	return cmd
}

func newLocalRun(w *workload.Workload, in workload.Input, p model.Policy, res model.Result) *model.Run {
	return &model.Run{
		Label:     w.Name,
		Policy:    p,
		Requests:  in.Requests,
		Head:      in.Head,
		Previous:  in.Previous,
		DiskSize:  in.DiskSize,
		Direction: in.Direction,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}
}

func printRun(out io.Writer, r *model.Run) {
	id := r.ID
	if id == "" {
		id = "(local)"
	}
	fmt.Fprintf(out, "Run: %s\n", id)
	if r.Label != "" {
		fmt.Fprintf(out, "  Label:     %s\n", r.Label)
	}
	fmt.Fprintf(out, "  Policy:    %s\n", r.Policy)
	fmt.Fprintf(out, "  Head:      %d (%s, disk %d)\n", r.Head, r.Direction, r.DiskSize)
	fmt.Fprintf(out, "  Sequence:  %s\n", plot.FormatSequence(r.Result.Sequence, 0))
	fmt.Fprintf(out, "  Movement:  %d cylinders over %d seeks\n", r.Result.TotalMovement, r.Result.Steps())
	if r.ID != "" {
		fmt.Fprintf(out, "  Created:   %s\n", r.CreatedAt.Format(time.RFC3339))
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
