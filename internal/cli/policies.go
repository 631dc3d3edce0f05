package cli

import (
	"fmt"

	"github.com/me/seekplan/pkg/model"
	"github.com/spf13/cobra"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List supported scheduling policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s  %s\n", "POLICY", "DESCRIPTION")
			fmt.Fprintf(out, "%-8s  %s\n", "------", "-----------")
			for _, p := range model.Policies {
				fmt.Fprintf(out, "%-8s  %s\n", p, model.PolicyDescriptions[p])
			}
			return nil
		},
	}
}
