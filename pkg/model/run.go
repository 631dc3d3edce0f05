package model

import "time"

// Result is the outcome of scheduling one request set under one policy.
// Sequence[0] is always the head position and TotalMovement equals the sum
// of absolute differences between consecutive Sequence entries.
type Result struct {
	TotalMovement int   `json:"total_movement"`
	Sequence      []int `json:"sequence"`
}

// Steps returns the number of seeks in the sequence.
func (r Result) Steps() int {
	if len(r.Sequence) == 0 {
		return 0
	}
	return len(r.Sequence) - 1
}

// Run is a scheduling invocation together with its inputs and Result.
type Run struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	Policy    Policy    `json:"policy"`
	Requests  []int     `json:"requests"`
	Head      int       `json:"head"`
	Previous  int       `json:"previous"`
	DiskSize  int       `json:"disk_size"`
	Direction Direction `json:"direction"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Comparison ranks a policy's Result against the other policies for the same input.
type Comparison struct {
	Rank   int    `json:"rank"`
	Policy Policy `json:"policy"`
	Result Result `json:"result"`
}
