package scheduler

import "github.com/me/seekplan/pkg/model"

// look services the current direction up to the farthest request, then
// reverses into the other side without visiting the disk edge.
func look(requests []int, head int, dir model.Direction, _ int) model.Result {
	low, high := split(requests, head)
	first, second := reversed(low), high
	if dir == model.DirectionUp {
		first, second = high, reversed(low)
	}
	return sweep(head, first, second)
}

// clook services the current direction, then jumps straight to the farthest
// request on the other side and continues in the original direction:
// ascending from the lowest request when moving up, descending from the
// highest when moving down.
func clook(requests []int, head int, dir model.Direction, _ int) model.Result {
	low, high := split(requests, head)
	first, second := reversed(low), reversed(high)
	if dir == model.DirectionUp {
		first, second = high, low
	}
	// The jump target is second[0]; it is charged at its direct distance
	// from the last serviced cylinder, so the walk is the same as a sweep.
	return sweep(head, first, second)
}

// sweep walks first then second from head without intermediate stops.
func sweep(head int, first, second []int) model.Result {
	seq := make([]int, 0, len(first)+len(second)+1)
	seq = append(seq, head)
	seq = append(seq, first...)
	total := Cost(head, first)
	if len(second) > 0 {
		total += Cost(last(first, head), second)
		seq = append(seq, second...)
	}
	return model.Result{TotalMovement: total, Sequence: seq}
}
