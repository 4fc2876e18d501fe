package expr

import (
	"math"

	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// Evaluate reduces an expression tree to a value against the given
// configuration. It never mutates the tree or the configuration, so one
// parsed tree may be evaluated concurrently against configurations that are
// safe for concurrent reads.
func Evaluate(node Node, cfg Configuration) (types.Value, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return evalLiteral(n)
	case *IdentNode:
		v, ok := cfg.GetVariable(n.Name)
		if !ok {
			return types.Value{}, types.NewVariableNotFound(n.Name)
		}
		return v, nil
	case *BinaryNode:
		return evalBinary(n, cfg)
	case *UnaryNode:
		return evalUnary(n, cfg)
	case *PropertyNode:
		return evalProperty(n, cfg)
	case *IndexNode:
		return evalIndex(n, cfg)
	case *CallNode:
		return evalCall(n, cfg)
	case *ListNode:
		return evalList(n, cfg)
	case *RangeNode:
		return evalRange(n, cfg)
	default:
		// Unreachable with trees built by this package's parser.
		return types.Value{}, types.NewAppendedToLeafNode()
	}
}

func evalLiteral(n *LiteralNode) (types.Value, error) {
	switch n.TokenType {
	case TokenTrue, TokenFalse:
		return types.NewBool(n.BoolVal), nil
	case TokenInt:
		return types.NewInt(n.IntVal), nil
	case TokenFloat:
		return types.NewFloat(n.FloatVal), nil
	case TokenString:
		return types.NewString(n.StrVal), nil
	default:
		return types.Value{}, types.NewAppendedToLeafNode()
	}
}

func evalBinary(n *BinaryNode, cfg Configuration) (types.Value, error) {
	left, err := Evaluate(n.Left, cfg)
	if err != nil {
		return types.Value{}, err
	}
	right, err := Evaluate(n.Right, cfg)
	if err != nil {
		return types.Value{}, err
	}

	switch n.Op {
	case TokenPlus:
		return evalArith(left, right, func(a, b int64) (int64, error) { return a + b, nil },
			func(a, b float64) float64 { return a + b })
	case TokenMinus:
		return evalArith(left, right, func(a, b int64) (int64, error) { return a - b, nil },
			func(a, b float64) float64 { return a - b })
	case TokenStar:
		return evalArith(left, right, func(a, b int64) (int64, error) { return a * b, nil },
			func(a, b float64) float64 { return a * b })
	case TokenSlash:
		return evalArith(left, right, intDiv, func(a, b float64) float64 { return a / b })
	case TokenPercent:
		return evalArith(left, right, intMod, floatMod)
	case TokenEq:
		return types.NewBool(left.Equal(right)), nil
	case TokenNeq:
		return types.NewBool(!left.Equal(right)), nil
	case TokenLt:
		return evalCompare(left, right, func(c int) bool { return c < 0 })
	case TokenGt:
		return evalCompare(left, right, func(c int) bool { return c > 0 })
	case TokenLte:
		return evalCompare(left, right, func(c int) bool { return c <= 0 })
	case TokenGte:
		return evalCompare(left, right, func(c int) bool { return c >= 0 })
	case TokenAnd, TokenOr:
		// Both operands are always evaluated (no short-circuit): a
		// function-call operand may carry host side effects, and skipping
		// it would make evaluation order observable.
		if left.Type() != types.TypeBool {
			return types.Value{}, types.NewExpectedBoolean(left)
		}
		if right.Type() != types.TypeBool {
			return types.Value{}, types.NewExpectedBoolean(right)
		}
		if n.Op == TokenAnd {
			return types.NewBool(left.AsBool() && right.AsBool()), nil
		}
		return types.NewBool(left.AsBool() || right.AsBool()), nil
	default:
		return types.Value{}, types.NewAppendedToLeafNode()
	}
}

// evalArith applies a binary arithmetic operator with the numeric promotion
// rule: int op int stays int, any float operand promotes both to float, and
// anything non-numeric fails with the offending value.
func evalArith(left, right types.Value, intOp func(int64, int64) (int64, error), floatOp func(float64, float64) float64) (types.Value, error) {
	if !left.IsNumber() {
		return types.Value{}, types.NewExpectedNumber(left)
	}
	if !right.IsNumber() {
		return types.Value{}, types.NewExpectedNumber(right)
	}

	if left.Type() == types.TypeInt && right.Type() == types.TypeInt {
		r, err := intOp(left.AsInt(), right.AsInt())
		if err != nil {
			return types.Value{}, err
		}
		return types.NewInt(r), nil
	}

	a, _ := left.AsNumber()
	b, _ := right.AsNumber()
	return types.NewFloat(floatOp(a, b)), nil
}

// intDiv is truncating signed division, matching Go's native semantics.
func intDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, types.NewDivisionByZero()
	}
	return a / b, nil
}

func intMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, types.NewDivisionByZero()
	}
	return a % b, nil
}

func floatMod(a, b float64) float64 {
	return math.Mod(a, b)
}

func evalCompare(left, right types.Value, test func(int) bool) (types.Value, error) {
	cmp, err := compareNumbers(left, right)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBool(test(cmp)), nil
}

// compareNumbers orders two numeric values, comparing int pairs exactly and
// promoting mixed pairs to float.
func compareNumbers(a, b types.Value) (int, error) {
	if !a.IsNumber() {
		return 0, types.NewExpectedNumber(a)
	}
	if !b.IsNumber() {
		return 0, types.NewExpectedNumber(b)
	}

	if a.Type() == types.TypeInt && b.Type() == types.TypeInt {
		ai, bi := a.AsInt(), b.AsInt()
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	}

	af, _ := a.AsNumber()
	bf, _ := b.AsNumber()
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func evalUnary(n *UnaryNode, cfg Configuration) (types.Value, error) {
	operand, err := Evaluate(n.Operand, cfg)
	if err != nil {
		return types.Value{}, err
	}

	switch n.Op {
	case TokenMinus:
		switch operand.Type() {
		case types.TypeInt:
			return types.NewInt(-operand.AsInt()), nil
		case types.TypeFloat:
			return types.NewFloat(-operand.AsFloat()), nil
		default:
			return types.Value{}, types.NewExpectedNumber(operand)
		}
	case TokenBang:
		if operand.Type() != types.TypeBool {
			return types.Value{}, types.NewExpectedBoolean(operand)
		}
		return types.NewBool(!operand.AsBool()), nil
	default:
		return types.Value{}, types.NewAppendedToLeafNode()
	}
}

func evalProperty(n *PropertyNode, cfg Configuration) (types.Value, error) {
	obj, err := Evaluate(n.Object, cfg)
	if err != nil {
		return types.Value{}, err
	}

	if obj.Type() != types.TypeMap {
		return types.Value{}, types.NewExpectedMap(obj)
	}

	val, ok := obj.AsMap().Get(n.Property)
	if !ok {
		return types.Value{}, types.NewFieldNotFound(n.Property)
	}
	return val, nil
}

func evalIndex(n *IndexNode, cfg Configuration) (types.Value, error) {
	obj, err := Evaluate(n.Object, cfg)
	if err != nil {
		return types.Value{}, err
	}
	idx, err := Evaluate(n.Index, cfg)
	if err != nil {
		return types.Value{}, err
	}

	if obj.Type() != types.TypeArray {
		return types.Value{}, types.NewExpectedArray(obj)
	}
	if idx.Type() != types.TypeInt {
		return types.Value{}, types.NewExpectedNumber(idx)
	}

	arr := obj.AsArray()
	i := idx.AsInt()
	// No wraparound: negative indices are errors.
	if i < 0 || i >= int64(len(arr)) {
		return types.Value{}, types.NewIndexOutOfBounds(i, len(arr))
	}
	return arr[i], nil
}

func evalCall(n *CallNode, cfg Configuration) (types.Value, error) {
	// Arguments evaluate left to right before the function is resolved.
	args := make([]types.Value, len(n.Args))
	for i, arg := range n.Args {
		val, err := Evaluate(arg, cfg)
		if err != nil {
			return types.Value{}, err
		}
		args[i] = val
	}

	fn, ok := cfg.GetFunction(n.Name)
	if !ok {
		return types.Value{}, types.NewFunctionNotFound(n.Name)
	}
	if len(args) != fn.Arity() {
		return types.Value{}, types.NewWrongArgumentAmount(len(args), fn.Arity())
	}
	return fn.Call(args)
}

func evalList(n *ListNode, cfg Configuration) (types.Value, error) {
	elements := make([]types.Value, len(n.Elements))
	for i, elem := range n.Elements {
		val, err := Evaluate(elem, cfg)
		if err != nil {
			return types.Value{}, err
		}
		elements[i] = val
	}
	return types.NewArray(elements), nil
}

// evalRange materializes a..b into the ascending array [a, b). A lower bound
// at or above the upper bound yields an empty array.
func evalRange(n *RangeNode, cfg Configuration) (types.Value, error) {
	low, err := Evaluate(n.Low, cfg)
	if err != nil {
		return types.Value{}, err
	}
	high, err := Evaluate(n.High, cfg)
	if err != nil {
		return types.Value{}, err
	}

	if low.Type() != types.TypeInt {
		return types.Value{}, types.NewExpectedNumber(low)
	}
	if high.Type() != types.TypeInt {
		return types.Value{}, types.NewExpectedNumber(high)
	}

	lo, hi := low.AsInt(), high.AsInt()
	if lo >= hi {
		return types.NewArray([]types.Value{}), nil
	}

	items := make([]types.Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, types.NewInt(i))
	}
	return types.NewArray(items), nil
}
