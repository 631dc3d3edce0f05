package store

import (
	"context"

	"github.com/me/seekplan/pkg/model"
)

// Store defines the persistence layer for scheduling runs.
type Store interface {
	// Run history
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)
	DeleteRun(ctx context.Context, id string) error

	// LatestRun returns the most recent run for policy, or nil if there is none.
	LatestRun(ctx context.Context, policy model.Policy) (*model.Run, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
