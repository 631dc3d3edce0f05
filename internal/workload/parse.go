// Package workload turns user input into validated scheduling input: comma
// separated request lists, integer fields, and YAML workload files whose
// request sets may be generated by JavaScript expressions.
package workload

import (
	"strconv"
	"strings"

	"github.com/me/seekplan/pkg/model"
)

// ParseRequests parses a comma-separated list of cylinders such as
// "98, 183, 37". Surrounding whitespace is ignored; an empty or non-integer
// token yields a *model.InputFormatError. An all-blank input is an empty list.
func ParseRequests(text string) ([]int, error) {
	if strings.TrimSpace(text) == "" {
		return []int{}, nil
	}
	parts := strings.Split(text, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, &model.InputFormatError{Field: "requests", Token: p}
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseInt parses a single integer field.
func ParseInt(field, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &model.InputFormatError{Field: field, Token: text}
	}
	return n, nil
}
