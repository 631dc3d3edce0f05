package scheduler

import (
	"log/slog"
	"slices"

	"github.com/me/seekplan/pkg/model"
)

// Engine wraps the scheduling functions with logging. It holds no state
// other than the logger and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine that logs to logger.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("component", "scheduler")}
}

// Run is the logging counterpart of the package-level Run.
func (e *Engine) Run(policy model.Policy, requests []int, head, previous, diskSize int) (model.Result, error) {
	res, err := Run(policy, requests, head, previous, diskSize)
	e.log(policy, len(requests), model.InferDirection(previous, head), res, err)
	return res, err
}

// RunDirection is the logging counterpart of the package-level RunDirection.
func (e *Engine) RunDirection(policy model.Policy, requests []int, head int, dir model.Direction, diskSize int) (model.Result, error) {
	res, err := RunDirection(policy, requests, head, dir, diskSize)
	e.log(policy, len(requests), dir, res, err)
	return res, err
}

// Compare runs every policy over the same input and ranks them by total
// movement, lowest first. Policies with equal movement keep canonical order
// and share no rank: ranks are positions in the returned slice.
// dir overrides the direction inferred from previous when non-empty.
func (e *Engine) Compare(requests []int, head, previous int, dir model.Direction, diskSize int) ([]model.Comparison, error) {
	if err := Validate(requests, head, previous, diskSize); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = model.InferDirection(previous, head)
	}

	out := make([]model.Comparison, 0, len(model.Policies))
	for _, p := range model.Policies {
		res, err := e.RunDirection(p, requests, head, dir, diskSize)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Comparison{Policy: p, Result: res})
	}
	slices.SortStableFunc(out, func(a, b model.Comparison) int {
		return a.Result.TotalMovement - b.Result.TotalMovement
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (e *Engine) log(policy model.Policy, n int, dir model.Direction, res model.Result, err error) {
	if err != nil {
		e.logger.Debug("schedule rejected", "policy", policy, "requests", n, "error", err)
		return
	}
	e.logger.Debug("scheduled",
		"policy", policy,
		"requests", n,
		"direction", dir,
		"movement", res.TotalMovement,
		"steps", res.Steps(),
	)
}
