package types

import "fmt"

// ErrorKind identifies one failure class. The set is closed: every failure a
// tokenizer, parser, or evaluator can produce is one of these kinds.
type ErrorKind int

const (
	// Lexical errors.
	UnmatchedQuote      ErrorKind = iota // string literal without a closing quote
	UnexpectedCharacter                  // character outside the language's alphabet

	// Syntactic errors.
	UnexpectedToken       // token where a different construct was expected
	MissingClosingBracket // unclosed ( or [
	MissingOperand        // operator with no following operand
	AppendedToLeafNode    // internal tree-construction defect, never a user-input condition

	// Evaluation errors.
	VariableIdentifierNotFound // identifier resolves to no variable
	FunctionIdentifierNotFound // call target resolves to no function
	WrongArgumentAmount        // call argument count differs from declared arity
	ExpectedNumber             // numeric operator applied to a non-numeric value
	ExpectedBoolean            // boolean operator applied to a non-boolean value
	ExpectedArray              // index access on a non-array value
	ExpectedMap                // member access on a non-map value
	IndexOutOfBounds           // array index negative or past the end
	FieldNotFound              // member access names a missing field
	DivisionByZero             // integer / or % with a zero divisor
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case UnmatchedQuote:
		return "UnmatchedQuote"
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnexpectedToken:
		return "UnexpectedToken"
	case MissingClosingBracket:
		return "MissingClosingBracket"
	case MissingOperand:
		return "MissingOperand"
	case AppendedToLeafNode:
		return "AppendedToLeafNode"
	case VariableIdentifierNotFound:
		return "VariableIdentifierNotFound"
	case FunctionIdentifierNotFound:
		return "FunctionIdentifierNotFound"
	case WrongArgumentAmount:
		return "WrongArgumentAmount"
	case ExpectedNumber:
		return "ExpectedNumber"
	case ExpectedBoolean:
		return "ExpectedBoolean"
	case ExpectedArray:
		return "ExpectedArray"
	case ExpectedMap:
		return "ExpectedMap"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case FieldNotFound:
		return "FieldNotFound"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced by every pipeline stage. Kind
// discriminates the failure; the payload fields carry exactly what is needed
// to reproduce it.
type Error struct {
	Kind     ErrorKind
	Name     string // identifier or field name
	Token    string // offending token or character text
	Pos      int    // byte position in the source, where known
	Value    Value  // offending value for Expected* kinds
	Actual   int    // argument count supplied
	Expected int    // argument count declared
	Index    int64  // requested array index
	Length   int    // array length at the failing access
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnmatchedQuote:
		return fmt.Sprintf("unterminated string starting at position %d", e.Pos)
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q at position %d", e.Token, e.Pos)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %q at position %d", e.Token, e.Pos)
	case MissingClosingBracket:
		return fmt.Sprintf("missing closing %q", e.Token)
	case MissingOperand:
		return "operator has no operand"
	case AppendedToLeafNode:
		return "internal error: child appended to a leaf node"
	case VariableIdentifierNotFound:
		return fmt.Sprintf("variable '%s' not found", e.Name)
	case FunctionIdentifierNotFound:
		return fmt.Sprintf("function '%s' not found", e.Name)
	case WrongArgumentAmount:
		return fmt.Sprintf("wrong argument amount: got %d, expected %d", e.Actual, e.Expected)
	case ExpectedNumber:
		return fmt.Sprintf("expected a number, got %s %s", e.Value.Type(), e.Value)
	case ExpectedBoolean:
		return fmt.Sprintf("expected a boolean, got %s %s", e.Value.Type(), e.Value)
	case ExpectedArray:
		return fmt.Sprintf("expected an array, got %s %s", e.Value.Type(), e.Value)
	case ExpectedMap:
		return fmt.Sprintf("expected a map, got %s %s", e.Value.Type(), e.Value)
	case IndexOutOfBounds:
		return fmt.Sprintf("index %d out of bounds (length %d)", e.Index, e.Length)
	case FieldNotFound:
		return fmt.Sprintf("field '%s' not found", e.Name)
	case DivisionByZero:
		return "division by zero"
	default:
		return "unknown error"
	}
}

// NewUnmatchedQuote creates an UnmatchedQuote error.
func NewUnmatchedQuote(pos int) *Error {
	return &Error{Kind: UnmatchedQuote, Pos: pos}
}

// NewUnexpectedCharacter creates an UnexpectedCharacter error.
func NewUnexpectedCharacter(ch byte, pos int) *Error {
	return &Error{Kind: UnexpectedCharacter, Token: string(ch), Pos: pos}
}

// NewUnexpectedToken creates an UnexpectedToken error.
func NewUnexpectedToken(text string, pos int) *Error {
	return &Error{Kind: UnexpectedToken, Token: text, Pos: pos}
}

// NewMissingClosingBracket creates a MissingClosingBracket error for the
// given closing lexeme (")" or "]").
func NewMissingClosingBracket(bracket string) *Error {
	return &Error{Kind: MissingClosingBracket, Token: bracket}
}

// NewMissingOperand creates a MissingOperand error.
func NewMissingOperand() *Error {
	return &Error{Kind: MissingOperand}
}

// NewAppendedToLeafNode creates an AppendedToLeafNode error. It signals a
// defect in tree construction, not a condition user input can reach.
func NewAppendedToLeafNode() *Error {
	return &Error{Kind: AppendedToLeafNode}
}

// NewVariableNotFound creates a VariableIdentifierNotFound error.
func NewVariableNotFound(name string) *Error {
	return &Error{Kind: VariableIdentifierNotFound, Name: name}
}

// NewFunctionNotFound creates a FunctionIdentifierNotFound error.
func NewFunctionNotFound(name string) *Error {
	return &Error{Kind: FunctionIdentifierNotFound, Name: name}
}

// NewWrongArgumentAmount creates a WrongArgumentAmount error.
func NewWrongArgumentAmount(actual, expected int) *Error {
	return &Error{Kind: WrongArgumentAmount, Actual: actual, Expected: expected}
}

// NewExpectedNumber creates an ExpectedNumber error carrying the offending value.
func NewExpectedNumber(v Value) *Error {
	return &Error{Kind: ExpectedNumber, Value: v}
}

// NewExpectedBoolean creates an ExpectedBoolean error carrying the offending value.
func NewExpectedBoolean(v Value) *Error {
	return &Error{Kind: ExpectedBoolean, Value: v}
}

// NewExpectedArray creates an ExpectedArray error carrying the offending value.
func NewExpectedArray(v Value) *Error {
	return &Error{Kind: ExpectedArray, Value: v}
}

// NewExpectedMap creates an ExpectedMap error carrying the offending value.
func NewExpectedMap(v Value) *Error {
	return &Error{Kind: ExpectedMap, Value: v}
}

// NewIndexOutOfBounds creates an IndexOutOfBounds error.
func NewIndexOutOfBounds(index int64, length int) *Error {
	return &Error{Kind: IndexOutOfBounds, Index: index, Length: length}
}

// NewFieldNotFound creates a FieldNotFound error.
func NewFieldNotFound(name string) *Error {
	return &Error{Kind: FieldNotFound, Name: name}
}

// NewDivisionByZero creates a DivisionByZero error.
func NewDivisionByZero() *Error {
	return &Error{Kind: DivisionByZero}
}
