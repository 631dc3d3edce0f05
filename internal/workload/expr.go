package workload

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/me/seekplan/pkg/model"
)

// scriptTimeout bounds generator scripts so a runaway loop cannot hang the caller.
const scriptTimeout = 2 * time.Second

// prelude is loaded into every generator VM.
const prelude = `
function range(start, stop, step) {
	if (stop === undefined) { stop = start; start = 0; }
	if (step === undefined) { step = 1; }
	var out = [];
	for (var i = start; step > 0 ? i < stop : i > stop; i += step) { out.push(i); }
	return out;
}
function lcg(seed) {
	var state = seed >>> 0;
	return function(n) {
		state = (Math.imul(state, 1664525) + 1013904223) >>> 0;
		return state % n;
	};
}
`

// Env holds the values visible to generator scripts.
type Env struct {
	DiskSize int
	Head     int
	Previous int
}

// IsExpression reports whether s is a generator expression: either
// $( expression ) or ${ code block }.
func IsExpression(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "$(") && strings.HasSuffix(s, ")")) ||
		(strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"))
}

// Evaluate runs a generator expression and returns the cylinders it produced.
// The script sees diskSize, head and previous, plus the range(start, stop, step)
// and lcg(seed) helpers, and must evaluate to an array of integers.
func Evaluate(expr string, env Env) ([]int, error) {
	code, err := toProgram(expr)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	if _, err := vm.RunString(prelude); err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	if err := vm.Set("diskSize", env.DiskSize); err != nil {
		return nil, fmt.Errorf("set diskSize: %w", err)
	}
	if err := vm.Set("head", env.Head); err != nil {
		return nil, fmt.Errorf("set head: %w", err)
	}
	if err := vm.Set("previous", env.Previous); err != nil {
		return nil, fmt.Errorf("set previous: %w", err)
	}

	timer := time.AfterFunc(scriptTimeout, func() {
		vm.Interrupt("generator timed out")
	})
	defer timer.Stop()

	val, err := vm.RunString(code)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("evaluate requests: %v", interrupted.Value())
		}
		return nil, fmt.Errorf("evaluate requests: %w", err)
	}
	return toInts(val.Export())
}

// toProgram converts $(expr) and ${block} into a runnable script.
func toProgram(expr string) (string, error) {
	s := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		body := strings.TrimSpace(s[2 : len(s)-1])
		return fmt.Sprintf("(function() { %s })()", body), nil
	case strings.HasPrefix(s, "$(") && strings.HasSuffix(s, ")"):
		return "(" + s[2:len(s)-1] + ")", nil
	}
	return "", fmt.Errorf("not a generator expression: %q", expr)
}

func toInts(v any) ([]int, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("generator returned %T, want array of integers", v)
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case int64:
			out = append(out, int(n))
		case int:
			out = append(out, n)
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return nil, &model.InputFormatError{Field: "requests", Token: fmt.Sprint(n)}
			}
			out = append(out, int(n))
		default:
			return nil, &model.InputFormatError{Field: "requests", Token: fmt.Sprint(item)}
		}
	}
	return out, nil
}
