package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListOptions configures list queries with pagination and filtering.
type ListOptions struct {
	Limit  int
	Offset int
	Policy Policy // Optional policy filter
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces limits (max 100, min 1).
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// ScheduleRequest is the body accepted by the schedule and compare endpoints.
// Policy is ignored by compare. Direction, when set, overrides the direction
// inferred from Previous.
type ScheduleRequest struct {
	Policy    string `json:"policy,omitempty"`
	Requests  []int  `json:"requests"`
	Head      int    `json:"head"`
	Previous  int    `json:"previous"`
	DiskSize  int    `json:"disk_size"`
	Direction string `json:"direction,omitempty"`
	Label     string `json:"label,omitempty"`
	Persist   bool   `json:"persist,omitempty"`
}
