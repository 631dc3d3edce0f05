// Package scheduler computes service orderings and head movement for a set of
// pending cylinder requests under the classical disk scheduling policies.
//
// Every function in this package is a pure computation: the caller's request
// slice is never modified, no state is kept between calls, and identical
// inputs always produce identical Results.
package scheduler

import (
	"fmt"
	"slices"

	"github.com/me/seekplan/pkg/model"
)

// policyFunc computes a Result for pre-validated input.
type policyFunc func(requests []int, head int, dir model.Direction, diskSize int) model.Result

var policies = map[model.Policy]policyFunc{
	model.PolicyFCFS:  fcfs,
	model.PolicySSTF:  sstf,
	model.PolicySCAN:  scan,
	model.PolicyCSCAN: cscan,
	model.PolicyLOOK:  look,
	model.PolicyCLOOK: clook,
}

// Run schedules requests under policy, starting at head. The travel direction
// is inferred from previous: up when previous < head, down otherwise.
func Run(policy model.Policy, requests []int, head, previous, diskSize int) (model.Result, error) {
	if err := Validate(requests, head, previous, diskSize); err != nil {
		return model.Result{}, err
	}
	return RunDirection(policy, requests, head, model.InferDirection(previous, head), diskSize)
}

// RunDirection is Run with an explicit direction instead of a previous request.
func RunDirection(policy model.Policy, requests []int, head int, dir model.Direction, diskSize int) (model.Result, error) {
	fn, ok := policies[policy]
	if !ok {
		return model.Result{}, &model.UnknownPolicyError{Name: string(policy)}
	}
	if !dir.Valid() {
		return model.Result{}, &model.InputFormatError{Field: "direction", Token: string(dir)}
	}
	if err := validateRange(requests, head, diskSize); err != nil {
		return model.Result{}, err
	}
	return fn(slices.Clone(requests), head, dir, diskSize), nil
}

// Validate checks that diskSize is positive and that head, previous and every
// request lie in [0, diskSize). It returns the first violation as a *model.RangeError.
func Validate(requests []int, head, previous, diskSize int) error {
	if err := validateRange(requests, head, diskSize); err != nil {
		return err
	}
	if previous < 0 || previous >= diskSize {
		return &model.RangeError{Field: "previous", Value: previous, DiskSize: diskSize}
	}
	return nil
}

func validateRange(requests []int, head, diskSize int) error {
	if diskSize <= 0 {
		return &model.RangeError{Field: "disk_size", Value: diskSize}
	}
	if head < 0 || head >= diskSize {
		return &model.RangeError{Field: "head", Value: head, DiskSize: diskSize}
	}
	for i, r := range requests {
		if r < 0 || r >= diskSize {
			return &model.RangeError{Field: fmt.Sprintf("requests[%d]", i), Value: r, DiskSize: diskSize}
		}
	}
	return nil
}

// Cost returns the head movement of walking ordered starting from start.
// It does not include jumps that are not part of the list.
func Cost(start int, ordered []int) int {
	total := 0
	current := start
	for _, c := range ordered {
		total += abs(current - c)
		current = c
	}
	return total
}

// split sorts a copy of requests and partitions it into the cylinders
// strictly below head and those at or above it. Both halves are ascending.
func split(requests []int, head int) (low, high []int) {
	sorted := slices.Clone(requests)
	slices.Sort(sorted)
	i, _ := slices.BinarySearch(sorted, head)
	return sorted[:i], sorted[i:]
}

func reversed(s []int) []int {
	r := slices.Clone(s)
	slices.Reverse(r)
	return r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
