package expr

import "github.com/lemonberrylabs/evalexpr/pkg/types"

// Eval parses and evaluates an expression with an empty configuration:
// every variable and function lookup fails.
func Eval(input string) (types.Value, error) {
	return EvalWith(input, EmptyConfiguration{})
}

// EvalWith parses and evaluates an expression against the given
// configuration. When the same expression is evaluated repeatedly, parse it
// once with ParseExpression and call Evaluate on the tree instead.
func EvalWith(input string, cfg Configuration) (types.Value, error) {
	node, err := ParseExpression(input)
	if err != nil {
		return types.Value{}, err
	}
	return Evaluate(node, cfg)
}
