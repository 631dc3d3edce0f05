package workload

import (
	"fmt"
	"os"
	"strings"

	"github.com/me/seekplan/internal/scheduler"
	"github.com/me/seekplan/pkg/model"
	"gopkg.in/yaml.v3"
)

// Workload describes one scheduling scenario, as written in a YAML file or
// assembled from command-line flags.
//
//	name: textbook
//	policy: C-LOOK
//	requests: [98, 183, 37, 122, 14, 124, 65, 67]
//	head: 53
//	previous: 40
//	disk_size: 200
//
// requests may also be a comma-separated string or a generator expression:
//
//	requests: $(range(0, diskSize, 25))
type Workload struct {
	Name      string      `yaml:"name,omitempty"`
	Policy    string      `yaml:"policy,omitempty"`
	Policies  []string    `yaml:"policies,omitempty"`
	Requests  RequestSpec `yaml:"requests"`
	Head      int         `yaml:"head"`
	Previous  *int        `yaml:"previous,omitempty"`
	Direction string      `yaml:"direction,omitempty"`
	DiskSize  int         `yaml:"disk_size"`
}

// RequestSpec is either a literal request list or a generator expression.
type RequestSpec struct {
	List []int
	Expr string
}

// UnmarshalYAML accepts a sequence of integers, a single integer, a
// comma-separated string, or a generator expression string.
func (r *RequestSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		list := make([]int, 0, len(node.Content))
		for _, item := range node.Content {
			var n int
			if err := item.Decode(&n); err != nil {
				return &model.InputFormatError{Field: "requests", Token: item.Value}
			}
			list = append(list, n)
		}
		r.List = list
		return nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!int" {
			var n int
			if err := node.Decode(&n); err != nil {
				return &model.InputFormatError{Field: "requests", Token: node.Value}
			}
			r.List = []int{n}
			return nil
		}
		if IsExpression(node.Value) {
			r.Expr = strings.TrimSpace(node.Value)
			return nil
		}
		list, err := ParseRequests(node.Value)
		if err != nil {
			return err
		}
		r.List = list
		return nil
	}
	return fmt.Errorf("line %d: requests must be a list, a string or an expression", node.Line)
}

// MarshalYAML writes the expression when present, otherwise the list.
func (r RequestSpec) MarshalYAML() (any, error) {
	if r.Expr != "" {
		return r.Expr, nil
	}
	return r.List, nil
}

// Input is a resolved, range-checked Workload.
type Input struct {
	Requests  []int
	Head      int
	Previous  int
	Direction model.Direction
	DiskSize  int
}

// Load reads and parses a workload file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return w, nil
}

// Parse decodes a workload document.
func Parse(data []byte) (*Workload, error) {
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Input resolves the request set (running the generator if there is one),
// determines the direction, and validates every value against the disk size.
// When Direction is set it wins over Previous; when Previous is absent it
// defaults to Head, which the engine reads as moving down.
func (w *Workload) Input() (Input, error) {
	in := Input{Head: w.Head, Previous: w.Head, DiskSize: w.DiskSize}
	if w.Previous != nil {
		in.Previous = *w.Previous
	}

	if w.Direction != "" {
		dir, err := model.ParseDirection(w.Direction)
		if err != nil {
			return Input{}, err
		}
		in.Direction = dir
	} else {
		in.Direction = model.InferDirection(in.Previous, in.Head)
	}

	if w.Requests.Expr != "" {
		list, err := Evaluate(w.Requests.Expr, Env{DiskSize: w.DiskSize, Head: w.Head, Previous: in.Previous})
		if err != nil {
			return Input{}, err
		}
		in.Requests = list
	} else {
		in.Requests = append([]int{}, w.Requests.List...)
	}

	if err := scheduler.Validate(in.Requests, in.Head, in.Previous, in.DiskSize); err != nil {
		return Input{}, err
	}
	return in, nil
}

// SelectedPolicies returns the policies named by Policy and Policies, in
// that order, or every policy when neither is set.
func (w *Workload) SelectedPolicies() ([]model.Policy, error) {
	names := w.Policies
	if w.Policy != "" {
		names = append([]string{w.Policy}, names...)
	}
	if len(names) == 0 {
		return append([]model.Policy{}, model.Policies...), nil
	}
	out := make([]model.Policy, 0, len(names))
	for _, n := range names {
		p, err := model.ParsePolicy(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
