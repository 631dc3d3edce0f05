package cli

import (
	"errors"

	"github.com/me/seekplan/internal/workload"
	"github.com/me/seekplan/pkg/model"
	"github.com/spf13/cobra"
)

// inputFlags are the request-set flags shared by run, compare, plot and submit.
// Integer fields are taken as strings so malformed values surface as
// InputFormatError rather than a flag usage error.
type inputFlags struct {
	file      string
	requests  string
	head      string
	previous  string
	diskSize  string
	direction string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Workload YAML file (flags override its fields)")
	cmd.Flags().StringVarP(&f.requests, "requests", "r", "", "Comma-separated cylinder requests, e.g. 98,183,37")
	cmd.Flags().StringVar(&f.head, "head", "", "Current head position")
	cmd.Flags().StringVar(&f.previous, "previous", "", "Previous head position (sets direction; default: head)")
	cmd.Flags().StringVar(&f.diskSize, "disk-size", "", "Number of cylinders")
	cmd.Flags().StringVar(&f.direction, "direction", "", "Explicit direction (up, down); overrides --previous")
}

// workload merges the workload file, if any, with explicitly set flags.
func (f *inputFlags) workload(cmd *cobra.Command) (*workload.Workload, error) {
	w := &workload.Workload{}
	if f.file != "" {
		loaded, err := workload.Load(f.file)
		if err != nil {
			return nil, err
		}
		w = loaded
	} else {
		for _, name := range []string{"requests", "head", "disk-size"} {
			if !cmd.Flags().Changed(name) {
				return nil, errors.New("--" + name + " is required (or use --file)")
			}
		}
	}

	changed := cmd.Flags().Changed
	if changed("requests") {
		list, err := workload.ParseRequests(f.requests)
		if err != nil {
			return nil, err
		}
		w.Requests = workload.RequestSpec{List: list}
	}
	if changed("head") {
		n, err := workload.ParseInt("head", f.head)
		if err != nil {
			return nil, err
		}
		w.Head = n
	}
	if changed("previous") {
		n, err := workload.ParseInt("previous", f.previous)
		if err != nil {
			return nil, err
		}
		w.Previous = &n
	}
	if changed("disk-size") {
		n, err := workload.ParseInt("disk_size", f.diskSize)
		if err != nil {
			return nil, err
		}
		w.DiskSize = n
	}
	if changed("direction") {
		w.Direction = f.direction
	}
	return w, nil
}

// input resolves the merged workload into validated engine input.
func (f *inputFlags) input(cmd *cobra.Command) (*workload.Workload, workload.Input, error) {
	w, err := f.workload(cmd)
	if err != nil {
		return nil, workload.Input{}, err
	}
	in, err := w.Input()
	if err != nil {
		return nil, workload.Input{}, err
	}
	return w, in, nil
}

// selectPolicies returns --policy when given, else the workload's selection.
func selectPolicies(flag string, w *workload.Workload) ([]model.Policy, error) {
	if flag != "" {
		p, err := model.ParsePolicy(flag)
		if err != nil {
			return nil, err
		}
		return []model.Policy{p}, nil
	}
	if w.Policy == "" && len(w.Policies) == 0 {
		return nil, errors.New("--policy is required unless the workload file names one")
	}
	return w.SelectedPolicies()
}
