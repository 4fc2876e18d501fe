// Package expr implements the expression language pipeline: lexical
// scanning, operator-precedence tree construction, and typed evaluation
// against a pluggable Configuration.
package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Literals
	TokenInt    TokenType = iota // integer literal
	TokenFloat                   // float literal
	TokenString                  // string literal
	TokenTrue                    // true
	TokenFalse                   // false

	// Identifiers and punctuation
	TokenIdent // identifier (variable or function name)
	TokenDot   // .
	TokenComma // ,
	TokenRange // ..

	// Brackets
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]

	// Arithmetic
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	// Comparison
	TokenEq  // ==
	TokenNeq // !=
	TokenLt  // <
	TokenGt  // >
	TokenLte // <=
	TokenGte // >=

	// Logical
	TokenAnd  // &&
	TokenOr   // ||
	TokenBang // !

	// Special
	TokenEOF // end of expression
)

// Token represents a single lexical token.
type Token struct {
	Type     TokenType
	Value    string  // raw string value
	IntVal   int64   // parsed int (for TokenInt)
	FloatVal float64 // parsed float (for TokenFloat)
	StrVal   string  // string contents without quotes (for TokenString)
	Pos      int     // byte position in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenInt:
		return "INT"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenIdent:
		return "IDENT"
	case TokenDot:
		return "DOT"
	case TokenComma:
		return "COMMA"
	case TokenRange:
		return "RANGE"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenLBracket:
		return "LBRACKET"
	case TokenRBracket:
		return "RBRACKET"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenPercent:
		return "PERCENT"
	case TokenEq:
		return "EQ"
	case TokenNeq:
		return "NEQ"
	case TokenLt:
		return "LT"
	case TokenGt:
		return "GT"
	case TokenLte:
		return "LTE"
	case TokenGte:
		return "GTE"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenBang:
		return "BANG"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}
