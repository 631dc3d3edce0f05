package scheduler

import "github.com/me/seekplan/pkg/model"

// scan sweeps toward the disk edge in the current direction, always visiting
// the edge cylinder, then reverses to service the other side.
// Requests equal to head belong to the upper side.
func scan(requests []int, head int, dir model.Direction, diskSize int) model.Result {
	low, high := split(requests, head)
	edge := 0
	first, second := reversed(low), high
	if dir == model.DirectionUp {
		edge = diskSize - 1
		first, second = high, reversed(low)
	}

	seq := []int{head}
	seq = append(seq, first...)
	total := Cost(head, first)
	current := last(first, head)

	total += abs(current - edge)
	seq = append(seq, edge)

	if len(second) > 0 {
		total += Cost(edge, second)
		seq = append(seq, second...)
	}
	return model.Result{TotalMovement: total, Sequence: seq}
}

// cscan sweeps to the edge like scan, then wraps to the opposite edge at a
// fixed cost of diskSize-1 and services the other side in the same direction.
func cscan(requests []int, head int, dir model.Direction, diskSize int) model.Result {
	low, high := split(requests, head)
	edge, opposite := 0, diskSize-1
	first, second := reversed(low), reversed(high)
	if dir == model.DirectionUp {
		edge, opposite = diskSize-1, 0
		first, second = high, low
	}

	seq := []int{head}
	seq = append(seq, first...)
	total := Cost(head, first)
	current := last(first, head)

	total += abs(current - edge)
	seq = append(seq, edge)

	// The return sweep is modeled as one jump spanning the whole disk.
	total += diskSize - 1
	seq = append(seq, opposite)

	if len(second) > 0 {
		total += Cost(opposite, second)
		seq = append(seq, second...)
	}
	return model.Result{TotalMovement: total, Sequence: seq}
}

// last returns the final element of s, or fallback when s is empty.
func last(s []int, fallback int) int {
	if len(s) == 0 {
		return fallback
	}
	return s[len(s)-1]
}
