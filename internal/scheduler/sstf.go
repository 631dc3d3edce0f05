package scheduler

import (
	"slices"

	"github.com/me/seekplan/pkg/model"
)

// sstf repeatedly services the pending request nearest to the head. Ties go
// to the smaller cylinder. Duplicate cylinders are separate requests.
func sstf(requests []int, head int, _ model.Direction, _ int) model.Result {
	pool := slices.Clone(requests)
	slices.Sort(pool)
	served := make([]bool, len(pool))

	seq := make([]int, 0, len(pool)+1)
	seq = append(seq, head)
	total := 0
	current := head
	for range pool {
		best := -1
		for i, c := range pool {
			if served[i] {
				continue
			}
			// Strict comparison keeps the first (smallest) cylinder on ties.
			if best < 0 || abs(c-current) < abs(pool[best]-current) {
				best = i
			}
		}
		served[best] = true
		total += abs(pool[best] - current)
		current = pool[best]
		seq = append(seq, current)
	}
	return model.Result{TotalMovement: total, Sequence: seq}
}
