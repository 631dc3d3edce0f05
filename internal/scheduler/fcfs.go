package scheduler

import "github.com/me/seekplan/pkg/model"

// fcfs services requests in the order given.
func fcfs(requests []int, head int, _ model.Direction, _ int) model.Result {
	seq := make([]int, 0, len(requests)+1)
	seq = append(seq, head)
	seq = append(seq, requests...)
	return model.Result{TotalMovement: Cost(head, requests), Sequence: seq}
}
