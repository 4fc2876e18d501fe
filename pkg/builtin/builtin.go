// Package builtin provides the built-in function library. Each function is
// an ordinary registered Function; nothing here is special to the evaluator.
// The array(...) form needs no registration because the parser recognizes it
// as the array-literal form, shadowing any function registered under that
// name.
package builtin

import (
	"math"

	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// convergeTolerance is the relative tolerance used by converge().
const convergeTolerance = 1e-9

// Register adds the built-in functions to a configuration.
func Register(cfg *expr.MapConfiguration) {
	cfg.SetFunction("min", expr.NewFunction(2, minFunc))
	cfg.SetFunction("max", expr.NewFunction(2, maxFunc))
	cfg.SetFunction("len", expr.NewFunction(1, lenFunc))
	cfg.SetFunction("is_empty", expr.NewFunction(1, isEmptyFunc))
	cfg.SetFunction("converge", expr.NewFunction(2, convergeFunc))
}

// NewConfiguration creates a mutable configuration pre-populated with the
// built-in functions.
func NewConfiguration() *expr.MapConfiguration {
	cfg := expr.NewMapConfiguration()
	Register(cfg)
	return cfg
}

// minFunc returns the smaller of two numbers, staying int when both are int.
func minFunc(args []types.Value) (types.Value, error) {
	return pick(args[0], args[1], func(c int) bool { return c <= 0 })
}

// maxFunc returns the larger of two numbers, staying int when both are int.
func maxFunc(args []types.Value) (types.Value, error) {
	return pick(args[0], args[1], func(c int) bool { return c >= 0 })
}

func pick(a, b types.Value, keepFirst func(int) bool) (types.Value, error) {
	an, aOk := a.AsNumber()
	if !aOk {
		return types.Value{}, types.NewExpectedNumber(a)
	}
	bn, bOk := b.AsNumber()
	if !bOk {
		return types.Value{}, types.NewExpectedNumber(b)
	}

	cmp := 0
	switch {
	case an < bn:
		cmp = -1
	case an > bn:
		cmp = 1
	}
	if keepFirst(cmp) {
		return a, nil
	}
	return b, nil
}

// lenFunc returns the length of a string (bytes), array, or map.
func lenFunc(args []types.Value) (types.Value, error) {
	n, err := lengthOf(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewInt(int64(n)), nil
}

// isEmptyFunc reports whether a string, array, or map has length zero.
func isEmptyFunc(args []types.Value) (types.Value, error) {
	n, err := lengthOf(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBool(n == 0), nil
}

func lengthOf(v types.Value) (int, error) {
	switch v.Type() {
	case types.TypeString:
		return len(v.AsString()), nil
	case types.TypeArray:
		return len(v.AsArray()), nil
	case types.TypeMap:
		return v.AsMap().Len(), nil
	default:
		return 0, types.NewExpectedArray(v)
	}
}

// convergeFunc reports whether two numbers are approximately equal within a
// relative tolerance, which exact == cannot do for floats.
func convergeFunc(args []types.Value) (types.Value, error) {
	a, aOk := args[0].AsNumber()
	if !aOk {
		return types.Value{}, types.NewExpectedNumber(args[0])
	}
	b, bOk := args[1].AsNumber()
	if !bOk {
		return types.Value{}, types.NewExpectedNumber(args[1])
	}

	if a == b {
		return types.NewBool(true), nil
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return types.NewBool(math.Abs(a-b) <= scale*convergeTolerance), nil
}
