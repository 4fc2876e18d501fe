package expr

import (
	"testing"

	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

func wantEvalErr(t *testing.T, err error, kind types.ErrorKind) *types.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	e, ok := err.(*types.Error)
	if !ok {
		t.Fatalf("got %T %v, want *types.Error", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("kind = %v, want %v", e.Kind, kind)
	}
	return e
}

func runEvalTable(t *testing.T, cfg Configuration, tests []struct {
	input string
	want  types.Value
}) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := EvalWith(tt.input, cfg)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if !got.Equal(tt.want) || got.Type() != tt.want.Type() {
				t.Errorf("got %s %v, want %s %v", got.Type(), got, tt.want.Type(), tt.want)
			}
		})
	}
}

func TestUnaryExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"3", types.NewInt(3)},
		{"3.3", types.NewFloat(3.3)},
		{"true", types.NewBool(true)},
		{"false", types.NewBool(false)},
		{"-3", types.NewInt(-3)},
		{"-3.6", types.NewFloat(-3.6)},
		{"----3", types.NewInt(3)},
		{"---3", types.NewInt(-3)},
		{"!true", types.NewBool(false)},
		{"!!false", types.NewBool(false)},
		{"'hello'", types.NewString("hello")},
		{`"hello"`, types.NewString("hello")},
	})
}

func TestBinaryExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"1+3", types.NewInt(4)},
		{"3+1", types.NewInt(4)},
		{"3-5", types.NewInt(-2)},
		{"5-3", types.NewInt(2)},
		{"5 / 4", types.NewInt(1)},
		{"5 *3", types.NewInt(15)},
		{"1.0+3", types.NewFloat(4.0)},
		{"3.0+1", types.NewFloat(4.0)},
		{"3-5.0", types.NewFloat(-2.0)},
		{"5-3.0", types.NewFloat(2.0)},
		{"5 / 4.0", types.NewFloat(1.25)},
		{"5.0 *3", types.NewFloat(15.0)},
		{"5.0 *-3", types.NewFloat(-15.0)},
		{"5.0 *- 3", types.NewFloat(-15.0)},
		{"5.0 * -3", types.NewFloat(-15.0)},
		{"5.0 * - 3", types.NewFloat(-15.0)},
		{"-5.0 *-3", types.NewFloat(15.0)},
		{"3+-1", types.NewInt(2)},
		{"-3-5", types.NewInt(-8)},
		{"-5--3", types.NewInt(-2)},
	})
}

func TestArithmeticPrecedence(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"1+3-2", types.NewInt(2)},
		{"3+1*5", types.NewInt(8)},
		{"2*3-5", types.NewInt(1)},
		{"5-3/3", types.NewInt(4)},
		{"5 / 4*2", types.NewInt(2)},
		{"1-5 *3/15", types.NewInt(0)},
		{"1-5*3/15", types.NewInt(0)},
		{"15/7/2.0", types.NewFloat(1.0)},
		{"15.0/7/2", types.NewFloat(15.0 / 7.0 / 2.0)},
		{"15.0/-7/2", types.NewFloat(15.0 / -7.0 / 2.0)},
		{"-15.0/7/2", types.NewFloat(-15.0 / 7.0 / 2.0)},
		{"-15.0/7/-2", types.NewFloat(-15.0 / 7.0 / -2.0)},
	})
}

func TestIntegerDivisionStaysInteger(t *testing.T) {
	// Truncation toward zero, matching native signed division.
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"7 / 2", types.NewInt(3)},
		{"-7 / 2", types.NewInt(-3)},
		{"7 / -2", types.NewInt(-3)},
		{"-7 / -2", types.NewInt(3)},
		{"2/2+3", types.NewInt(4)},
		{"-7 % 2", types.NewInt(-1)},
	})
}

func TestBracedExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"(1)", types.NewInt(1)},
		{"( 1.0 )", types.NewFloat(1.0)},
		{"( true)", types.NewBool(true)},
		{"( -1 )", types.NewInt(-1)},
		{"-(1)", types.NewInt(-1)},
		{"-(1 + 3) * 7", types.NewInt(-28)},
		{"(1 * 1) - 3", types.NewInt(-2)},
		{"4 / (2 * 2)", types.NewInt(1)},
		{"7/(7/(7/(7/(7/(7)))))", types.NewInt(1)},
	})
}

func TestModExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"1 % 4", types.NewInt(1)},
		{"6 % 4", types.NewInt(2)},
		{"1 % 4 + 2", types.NewInt(3)},
		{"5.0 % 2", types.NewFloat(1.0)},
	})
}

func TestBooleanExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"true && false", types.NewBool(false)},
		{"true && false || true && true", types.NewBool(true)},
		{"5 > 4 && 1 <= 1", types.NewBool(true)},
		{"5.0 <= 4.9 || !(4 > 3.5)", types.NewBool(false)},
		{"1 == 1.0", types.NewBool(true)},
		{"1 != 1.0", types.NewBool(false)},
		{"'a' == 'a'", types.NewBool(true)},
		{"'a' == 1", types.NewBool(false)},
		{"true != 1", types.NewBool(true)},
		{"array(1, 2) == array(1, 2)", types.NewBool(true)},
		{"array(1, 2) == array(2, 1)", types.NewBool(false)},
	})
}

func TestRangeExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"0..5", types.NewArray([]types.Value{
			types.NewInt(0), types.NewInt(1), types.NewInt(2), types.NewInt(3), types.NewInt(4),
		})},
		{"5..5", types.NewArray([]types.Value{})},
		{"7..5", types.NewArray([]types.Value{})},
		{"-2..1", types.NewArray([]types.Value{
			types.NewInt(-2), types.NewInt(-1), types.NewInt(0),
		})},
		{"(1+1)..(2*3)", types.NewArray([]types.Value{
			types.NewInt(2), types.NewInt(3), types.NewInt(4), types.NewInt(5),
		})},
	})
}

func TestArrayExpressions(t *testing.T) {
	runEvalTable(t, EmptyConfiguration{}, []struct {
		input string
		want  types.Value
	}{
		{"array(1, 2, 3, 4, 5)", types.NewArray([]types.Value{
			types.NewInt(1), types.NewInt(2), types.NewInt(3), types.NewInt(4), types.NewInt(5),
		})},
		{"array()", types.NewArray([]types.Value{})},
		{"array(1, 'two', true)", types.NewArray([]types.Value{
			types.NewInt(1), types.NewString("two"), types.NewBool(true),
		})},
		{"array(1, 2)[1]", types.NewInt(2)},
		{"(0..3)[2]", types.NewInt(2)},
	})
}

func TestEvalWithConfiguration(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetVariable("tr", types.NewBool(true))
	cfg.SetVariable("fa", types.NewBool(false))
	cfg.SetVariable("five", types.NewInt(5))
	cfg.SetVariable("six", types.NewInt(6))
	cfg.SetVariable("half", types.NewFloat(0.5))
	cfg.SetVariable("zero", types.NewInt(0))

	runEvalTable(t, cfg, []struct {
		input string
		want  types.Value
	}{
		{"tr", types.NewBool(true)},
		{"fa", types.NewBool(false)},
		{"tr && false", types.NewBool(false)},
		{"five + six", types.NewInt(11)},
		{"five * half", types.NewFloat(2.5)},
		{"five < six && true", types.NewBool(true)},
	})
}

func TestConfigurationLastWriteWins(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetVariable("x", types.NewInt(1))
	cfg.SetVariable("x", types.NewInt(2))

	got, err := EvalWith("x", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got.Equal(types.NewInt(2)) {
		t.Errorf("got %v, want 2", got)
	}
}

func sub2Function() *Function {
	return NewFunction(1, func(args []types.Value) (types.Value, error) {
		if args[0].Type() != types.TypeInt {
			return types.Value{}, types.NewExpectedNumber(args[0])
		}
		return types.NewInt(args[0].AsInt() - 2), nil
	})
}

func TestFunctionCalls(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetFunction("sub2", sub2Function())
	cfg.SetVariable("five", types.NewInt(5))

	runEvalTable(t, cfg, []struct {
		input string
		want  types.Value
	}{
		{"sub2 5", types.NewInt(3)},
		{"sub2(5)", types.NewInt(3)},
		{"sub2 five", types.NewInt(3)},
		{"sub2(five)", types.NewInt(3)},
		{"sub2(3) + five", types.NewInt(6)},
		{"sub2(sub2(7))", types.NewInt(3)},
	})
}

func TestJuxtapositionMatchesParenthesized(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetFunction("sub2", sub2Function())
	cfg.SetVariable("x", types.NewInt(40))

	juxt, err := EvalWith("sub2 x", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	paren, err := EvalWith("sub2(x)", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !juxt.Equal(paren) {
		t.Errorf("juxtaposition %v != parenthesized %v", juxt, paren)
	}
}

func TestZeroArgumentFunction(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetFunction("say_hello", NewFunction(0, func(args []types.Value) (types.Value, error) {
		return types.NewString("Hello world!"), nil
	}))

	got, err := EvalWith("say_hello()", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got.Equal(types.NewString("Hello world!")) {
		t.Errorf("got %v", got)
	}
}

func TestWrongArgumentAmount(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetFunction("sub2", sub2Function())

	tests := []struct {
		input  string
		actual int
	}{
		{"sub2()", 0},
		{"sub2(1, 2)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := EvalWith(tt.input, cfg)
			e := wantEvalErr(t, err, types.WrongArgumentAmount)
			if e.Actual != tt.actual || e.Expected != 1 {
				t.Errorf("got actual=%d expected=%d, want actual=%d expected=1", e.Actual, e.Expected, tt.actual)
			}
		})
	}
}

func TestFunctionErrorPropagates(t *testing.T) {
	cfg := NewMapConfiguration()
	cfg.SetFunction("boom", NewFunction(0, func(args []types.Value) (types.Value, error) {
		return types.Value{}, types.NewFieldNotFound("fuse")
	}))

	_, err := EvalWith("1 + boom()", cfg)
	e := wantEvalErr(t, err, types.FieldNotFound)
	if e.Name != "fuse" {
		t.Errorf("name = %q, want fuse", e.Name)
	}
}

func TestNoShortCircuit(t *testing.T) {
	// Both operands of && and || are evaluated even when the left side
	// already decides the result, so side-effecting calls always run.
	calls := 0
	cfg := NewMapConfiguration()
	cfg.SetFunction("observe", NewFunction(1, func(args []types.Value) (types.Value, error) {
		calls++
		return args[0], nil
	}))

	got, err := EvalWith("observe(false) && observe(true)", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got.Equal(types.NewBool(false)) {
		t.Errorf("got %v, want false", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (no short-circuit)", calls)
	}

	calls = 0
	got, err = EvalWith("observe(true) || observe(false)", cfg)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got.Equal(types.NewBool(true)) {
		t.Errorf("got %v, want true", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (no short-circuit)", calls)
	}
}

func TestMemberAndIndexAccess(t *testing.T) {
	foos := types.NewArray([]types.Value{
		types.NewString("Hello"), types.NewString("world"), types.NewString("!"),
	})
	object := types.NewOrderedMap()
	object.Set("foos", foos)

	cfg := NewMapConfiguration()
	cfg.SetVariable("object", types.NewMap(object))

	runEvalTable(t, cfg, []struct {
		input string
		want  types.Value
	}{
		{"object.foos[1-1] == 'Hello'", types.NewBool(true)},
		{"object.foos[1]", types.NewString("world")},
		{"object.foos[2]", types.NewString("!")},
	})

	tests := []struct {
		input string
		kind  types.ErrorKind
	}{
		{"object.bars", types.FieldNotFound},
		{"object.foos.bars", types.ExpectedMap},
		{"object.foos[3]", types.IndexOutOfBounds},
		{"object.foos[-1]", types.IndexOutOfBounds},
		{"object.foos[0.5]", types.ExpectedNumber},
		{"object[0]", types.ExpectedArray},
		{"object.foos[0][0]", types.ExpectedArray},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := EvalWith(tt.input, cfg)
			wantEvalErr(t, err, tt.kind)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  types.ErrorKind
	}{
		{"blub", types.VariableIdentifierNotFound},
		{"f(1)", types.FunctionIdentifierNotFound},
		{"-true", types.ExpectedNumber},
		{"1-true", types.ExpectedNumber},
		{"1 + 'one'", types.ExpectedNumber},
		{"'a' < 'b'", types.ExpectedNumber},
		{"!1", types.ExpectedBoolean},
		{"true && 1", types.ExpectedBoolean},
		{"1 || false", types.ExpectedBoolean},
		{"1/0", types.DivisionByZero},
		{"1%0", types.DivisionByZero},
		{"1.5..3", types.ExpectedNumber},
		{"0..true", types.ExpectedNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Eval(tt.input)
			wantEvalErr(t, err, tt.kind)
		})
	}
}

func TestErrorPayloads(t *testing.T) {
	_, err := Eval("blub")
	if e := wantEvalErr(t, err, types.VariableIdentifierNotFound); e.Name != "blub" {
		t.Errorf("name = %q, want blub", e.Name)
	}

	_, err = Eval("-true")
	if e := wantEvalErr(t, err, types.ExpectedNumber); !e.Value.Equal(types.NewBool(true)) {
		t.Errorf("value = %v, want true", e.Value)
	}
}

func TestTreeIsReusableAcrossConfigurations(t *testing.T) {
	node, err := ParseExpression("x + 1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	for i := int64(0); i < 3; i++ {
		cfg := NewMapConfiguration()
		cfg.SetVariable("x", types.NewInt(i))
		got, err := Evaluate(node, cfg)
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
		if !got.Equal(types.NewInt(i + 1)) {
			t.Errorf("got %v, want %d", got, i+1)
		}
	}
}

func TestParenthesizationRoundTrip(t *testing.T) {
	exprs := []string{"1+2*3", "-5--3", "true && false || true", "0..5", "5 / 4.0"}
	for _, src := range exprs {
		t.Run(src, func(t *testing.T) {
			plain, err := Eval(src)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			wrapped, err := Eval("(" + src + ")")
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if !plain.Equal(wrapped) {
				t.Errorf("(%s) = %v, want %v", src, wrapped, plain)
			}
		})
	}
}
