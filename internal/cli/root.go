package cli

import (
	"log/slog"
	"os"

	"github.com/me/seekplan/internal/logging"
	"github.com/me/seekplan/internal/scheduler"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
	engine *scheduler.Engine
)

// defaultServer returns the default server URL, checking SEEKPLAN_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SEEKPLAN_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the seekplan CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seekplan",
		Short: "seekplan: disk head scheduling planner",
		Long: `seekplan orders pending cylinder requests under FCFS, SSTF, SCAN, C-SCAN,
LOOK and C-LOOK and reports the visit sequence and total head movement.

run, compare, plot and policies work locally. submit, history, show and
latest talk to a seekplan server.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client = NewClient(flagServer, logger)
			engine = scheduler.NewEngine(logger)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "seekplan server URL (or SEEKPLAN_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newPlotCmd(),
		newPoliciesCmd(),
		newSubmitCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newLatestCmd(),
	)

	return root
}
