package expr

import "github.com/lemonberrylabs/evalexpr/pkg/types"

// FunctionBody is the callable body of a host-registered function: a mapping
// from an ordered argument sequence to a value or an error. Bodies may carry
// arbitrary host side effects; the evaluator only guarantees arity
// validation and left-to-right argument evaluation before invocation.
type FunctionBody func(args []types.Value) (types.Value, error)

// Function is a named callable with a fixed argument count. The evaluator
// checks the evaluated argument count against the declared arity before
// invoking the body, so bodies may index their arguments freely.
type Function struct {
	arity int
	body  FunctionBody
}

// NewFunction creates a function with the given arity and body.
func NewFunction(arity int, body FunctionBody) *Function {
	return &Function{arity: arity, body: body}
}

// Arity returns the declared argument count.
func (f *Function) Arity() int {
	return f.arity
}

// Call invokes the body with the given arguments.
func (f *Function) Call(args []types.Value) (types.Value, error) {
	return f.body(args)
}
