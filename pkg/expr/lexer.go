package expr

import (
	"strconv"

	"github.com/lemonberrylabs/evalexpr/pkg/types"
)

// Lexer tokenizes an expression string.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens, ending with EOF.
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return l.tokens, nil
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]

	// String literals
	if ch == '"' || ch == '\'' {
		return l.readString(ch)
	}

	// Number literals. A leading sign is never consumed here: whether `-`
	// is negation or subtraction is the parser's decision.
	if ch >= '0' && ch <= '9' {
		return l.readNumber()
	}

	// Two-character operators, matched before their one-character prefixes.
	if l.pos+1 < len(l.input) {
		two := l.input[l.pos : l.pos+2]
		switch two {
		case "==":
			l.pos += 2
			return Token{Type: TokenEq, Value: "==", Pos: l.pos - 2}, nil
		case "!=":
			l.pos += 2
			return Token{Type: TokenNeq, Value: "!=", Pos: l.pos - 2}, nil
		case "<=":
			l.pos += 2
			return Token{Type: TokenLte, Value: "<=", Pos: l.pos - 2}, nil
		case ">=":
			l.pos += 2
			return Token{Type: TokenGte, Value: ">=", Pos: l.pos - 2}, nil
		case "&&":
			l.pos += 2
			return Token{Type: TokenAnd, Value: "&&", Pos: l.pos - 2}, nil
		case "||":
			l.pos += 2
			return Token{Type: TokenOr, Value: "||", Pos: l.pos - 2}, nil
		case "..":
			l.pos += 2
			return Token{Type: TokenRange, Value: "..", Pos: l.pos - 2}, nil
		}
	}

	// Single-character operators
	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: l.pos - 1}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: l.pos - 1}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: l.pos - 1}, nil
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: l.pos - 1}, nil
	case '%':
		l.pos++
		return Token{Type: TokenPercent, Value: "%", Pos: l.pos - 1}, nil
	case '<':
		l.pos++
		return Token{Type: TokenLt, Value: "<", Pos: l.pos - 1}, nil
	case '>':
		l.pos++
		return Token{Type: TokenGt, Value: ">", Pos: l.pos - 1}, nil
	case '!':
		l.pos++
		return Token{Type: TokenBang, Value: "!", Pos: l.pos - 1}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.pos - 1}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.pos - 1}, nil
	case '[':
		l.pos++
		return Token{Type: TokenLBracket, Value: "[", Pos: l.pos - 1}, nil
	case ']':
		l.pos++
		return Token{Type: TokenRBracket, Value: "]", Pos: l.pos - 1}, nil
	case '.':
		l.pos++
		return Token{Type: TokenDot, Value: ".", Pos: l.pos - 1}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: l.pos - 1}, nil
	}

	// Identifiers and keywords
	if isIdentStart(ch) {
		return l.readIdentifier(), nil
	}

	return Token{}, types.NewUnexpectedCharacter(ch, l.pos)
}

// readString reads a quoted string literal. The closing quote must match the
// opening one; interior bytes pass through verbatim.
func (l *Lexer) readString(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // skip opening quote

	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.pos++ // skip closing quote
			return Token{
				Type:   TokenString,
				Value:  l.input[start:l.pos],
				StrVal: l.input[start+1 : l.pos-1],
				Pos:    start,
			}, nil
		}
		l.pos++
	}

	return Token{}, types.NewUnmatchedQuote(start)
}

// readNumber reads an integer or float literal. A `.` only turns the literal
// into a float when a digit follows, so `0..5` scans as INT RANGE INT.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	isFloat := false

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch >= '0' && ch <= '9' {
			l.pos++
		} else if ch == '.' && !isFloat &&
			l.pos+1 < len(l.input) && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
			isFloat = true
			l.pos++
		} else {
			break
		}
	}

	raw := l.input[start:l.pos]
	if isFloat {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Token{}, types.NewUnexpectedToken(raw, start)
		}
		return Token{Type: TokenFloat, Value: raw, FloatVal: f, Pos: start}, nil
	}

	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Token{}, types.NewUnexpectedToken(raw, start)
	}
	return Token{Type: TokenInt, Value: raw, IntVal: i, Pos: start}, nil
}

// readIdentifier reads an identifier or a boolean literal.
func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}

	word := l.input[start:l.pos]
	switch word {
	case "true":
		return Token{Type: TokenTrue, Value: word, Pos: start}
	case "false":
		return Token{Type: TokenFalse, Value: word, Pos: start}
	default:
		return Token{Type: TokenIdent, Value: word, Pos: start}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

// isSpace reports ASCII whitespace. High bytes are never whitespace, so
// stray non-ASCII input fails as an unexpected character instead of being
// silently skipped.
func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
