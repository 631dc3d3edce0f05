package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/me/seekplan/internal/plot"
	"github.com/me/seekplan/pkg/model"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		in     inputFlags
		policy string
		label  string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Schedule on the server and store the run",
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
			if label == "" {
				label = w.Name
			}

			out := cmd.OutOrStdout()
			for _, p := range policies {
				resp, err := client.Post("/api/v1/schedule", model.ScheduleRequest{
					Policy:    p.String(),
					Requests:  input.Requests,
					Head:      input.Head,
					Previous:  input.Previous,
					DiskSize:  input.DiskSize,
					Direction: input.Direction.String(),
					Label:     label,
					Persist:   true,
				})
				if err != nil {
					return err
				}
				run, err := decodeRun(resp)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run stored: %s (%s, %d cylinders)\n", run.ID, run.Policy, run.Result.TotalMovement)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Scheduling policy")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run (default: workload name)")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		policy string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if policy != "" {
				p, err := model.ParsePolicy(policy)
				if err != nil {
					return err
				}
				q.Set("policy", p.String())
			}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			resp, err := client.Get("/api/v1/runs?" + q.Encode())
			if err != nil {
				return err
			}

			var runs []*model.Run
			if err := json.Unmarshal(resp.Data, &runs); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found.")
				return nil
			}
			plot.Runs(out, runs)

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(runs), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Only runs of this policy")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")

	return cmd
}

func newShowCmd() *cobra.Command {
	var (
		showPlot bool
		asJSON   bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/runs/" + url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			run, err := decodeRun(resp)
			if err != nil {
				return err
			}
			return showRun(cmd, run, showPlot, asJSON, width)
		},
	}

	cmd.Flags().BoolVar(&showPlot, "plot", false, "Draw the visit sequence")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	cmd.Flags().IntVar(&width, "width", plot.DefaultWidth, "Chart width in columns")

	return cmd
}

func newLatestCmd() *cobra.Command {
	var (
		showPlot bool
		asJSON   bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "latest <policy>",
		Short: "Show the most recent stored run of a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePolicy(args[0])
			if err != nil {
				return err
			}
			resp, err := client.Get("/api/v1/policies/" + url.PathEscape(p.String()) + "/latest")
			if err != nil {
				return err
			}
			run, err := decodeRun(resp)
			if err != nil {
				return err
			}
			return showRun(cmd, run, showPlot, asJSON, width)
		},
	}

	cmd.Flags().BoolVar(&showPlot, "plot", false, "Draw the visit sequence")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	cmd.Flags().IntVar(&width, "width", plot.DefaultWidth, "Chart width in columns")

	return cmd
}

func showRun(cmd *cobra.Command, run *model.Run, showPlot, asJSON bool, width int) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, run)
	}
	printRun(out, run)
	if showPlot {
		fmt.Fprintln(out)
		return plot.Sequence(out, run.Policy.String()+" "+run.ID, run.Result, run.DiskSize, width)
	}
	return nil
}

func decodeRun(resp *apiResponse) (*model.Run, error) {
	var run model.Run
	if err := json.Unmarshal(resp.Data, &run); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &run, nil
}
