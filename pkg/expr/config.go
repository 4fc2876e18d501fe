package expr

import "github.com/lemonberrylabs/evalexpr/pkg/types"

// Configuration resolves free identifiers during evaluation: variable names
// to values and function names to callable functions. The evaluator only
// reads from it; hosts may mutate their implementation between evaluations
// but must not interleave mutation with evaluation without their own
// synchronization.
type Configuration interface {
	// GetVariable returns the value bound to a variable name.
	GetVariable(name string) (types.Value, bool)

	// GetFunction returns the function registered under a name.
	GetFunction(name string) (*Function, bool)
}

// EmptyConfiguration is the zero-context configuration: every lookup misses.
type EmptyConfiguration struct{}

// GetVariable always reports a miss.
func (EmptyConfiguration) GetVariable(string) (types.Value, bool) {
	return types.Value{}, false
}

// GetFunction always reports a miss.
func (EmptyConfiguration) GetFunction(string) (*Function, bool) {
	return nil, false
}

// MapConfiguration is an in-memory name registry for variables and
// functions. The last write for a name wins. The host owns it and may
// repopulate it between evaluations; it is safe for concurrent reads but
// not for mutation concurrent with evaluation.
type MapConfiguration struct {
	vars  map[string]types.Value
	funcs map[string]*Function
}

// NewMapConfiguration creates an empty mutable configuration.
func NewMapConfiguration() *MapConfiguration {
	return &MapConfiguration{
		vars:  make(map[string]types.Value),
		funcs: make(map[string]*Function),
	}
}

// SetVariable binds a variable name to a value.
func (c *MapConfiguration) SetVariable(name string, v types.Value) {
	c.vars[name] = v
}

// SetFunction registers a function under a name.
func (c *MapConfiguration) SetFunction(name string, fn *Function) {
	c.funcs[name] = fn
}

// GetVariable implements Configuration.
func (c *MapConfiguration) GetVariable(name string) (types.Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// GetFunction implements Configuration.
func (c *MapConfiguration) GetFunction(name string) (*Function, bool) {
	fn, ok := c.funcs[name]
	return fn, ok
}
