package expr

import "github.com/lemonberrylabs/evalexpr/pkg/types"

// Expr is a fluent request builder: it accumulates named variables and
// functions, then runs the pipeline.
//
//	result, err := expr.New("sub2(five)").
//	        WithVariable("five", types.NewInt(5)).
//	        WithFunction("sub2", sub2).
//	        Exec()
type Expr struct {
	source string
	cfg    *MapConfiguration
}

// New creates a builder for the given expression source.
func New(source string) *Expr {
	return &Expr{source: source, cfg: NewMapConfiguration()}
}

// WithVariable binds a variable for evaluation. Last write wins.
func (e *Expr) WithVariable(name string, v types.Value) *Expr {
	e.cfg.SetVariable(name, v)
	return e
}

// WithFunction registers a function for evaluation. Last write wins.
func (e *Expr) WithFunction(name string, fn *Function) *Expr {
	e.cfg.SetFunction(name, fn)
	return e
}

// Exec tokenizes, parses, and evaluates the expression against the
// accumulated configuration.
func (e *Expr) Exec() (types.Value, error) {
	return EvalWith(e.source, e.cfg)
}
