package expr

import "github.com/lemonberrylabs/evalexpr/pkg/types"

// Parser is a recursive descent parser for expressions. Precedence, loosest
// to tightest:
//
//	||
//	&&
//	==, !=, <, >, <=, >=
//	+, -
//	*, /, %
//	a..b
//	unary -, unary !
//	member access, index access, function call
//
// A `-` is negation exactly when it appears where an operand is expected;
// that falls out of the descent structure, so the lexer stays context-free.
type Parser struct {
	tokens []Token
	pos    int
}

// ParseExpression tokenizes and parses a complete expression string.
func ParseExpression(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token sequence into an expression tree. The sequence
// must represent exactly one expression.
func ParseTokens(tokens []Token) (Node, error) {
	p := &Parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, types.NewUnexpectedToken(tok.Value, tok.Pos)
	}

	return node, nil
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expectClosing consumes the given closing bracket token, reporting a
// missing-bracket error when the input ends first.
func (p *Parser) expectClosing(tt TokenType, lexeme string) error {
	tok := p.current()
	if tok.Type == TokenEOF {
		return types.NewMissingClosingBracket(lexeme)
	}
	if tok.Type != tt {
		return types.NewUnexpectedToken(tok.Value, tok.Pos)
	}
	p.advance()
	return nil
}

func (p *Parser) parseExpression() (Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: TokenOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: TokenAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseComparison handles equality and relational operators. They share one
// level and associate left, so 1<2<3 parses as (1<2)<3.
func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	for isComparisonOp(p.current().Type) {
		op := p.advance().Type
		right, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func isComparisonOp(t TokenType) bool {
	switch t {
	case TokenEq, TokenNeq, TokenLt, TokenGt, TokenLte, TokenGte:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAddition() (Node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := p.advance().Type
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplication() (Node, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenStar || p.current().Type == TokenSlash ||
		p.current().Type == TokenPercent {
		op := p.advance().Type
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseRange handles a..b. Ranges do not chain.
func (p *Parser) parseRange() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if p.current().Type == TokenRange {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &RangeNode{Low: left, High: right}, nil
	}
	return left, nil
}

// parseUnary handles prefix - and !. Unary operators chain, so ----3 is four
// nested negations.
func (p *Parser) parseUnary() (Node, error) {
	if p.current().Type == TokenMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: TokenMinus, Operand: operand}, nil
	}
	if p.current().Type == TokenBang {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: TokenBang, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	// Call forms apply only to a bare identifier primary: name(...) with a
	// parenthesized argument list, or `name arg` juxtaposition binding
	// exactly one argument. array(...) is the array-literal form, not a
	// call.
	if ident, ok := node.(*IdentNode); ok {
		switch {
		case p.current().Type == TokenLParen:
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if ident.Name == "array" {
				node = &ListNode{Elements: args}
			} else {
				node = &CallNode{Name: ident.Name, Args: args}
			}
		case isOperandStart(p.current().Type):
			arg, err := p.parseCallOperand()
			if err != nil {
				return nil, err
			}
			node = &CallNode{Name: ident.Name, Args: []Node{arg}}
		}
	}

	return p.parsePostfixChain(node)
}

// parsePostfixChain applies .identifier and [expr] accesses, left to right.
func (p *Parser) parsePostfixChain(node Node) (Node, error) {
	for {
		switch p.current().Type {
		case TokenDot:
			p.advance()
			name := p.current()
			if name.Type != TokenIdent {
				if name.Type == TokenEOF {
					return nil, types.NewMissingOperand()
				}
				return nil, types.NewUnexpectedToken(name.Value, name.Pos)
			}
			p.advance()
			node = &PropertyNode{Object: node, Property: name.Value}
		case TokenLBracket:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectClosing(TokenRBracket, "]"); err != nil {
				return nil, err
			}
			node = &IndexNode{Object: node, Index: index}
		default:
			return node, nil
		}
	}
}

// parseCallOperand parses the single argument of a juxtaposition call: one
// primary plus its own member/index chain. Juxtaposition never chains, so
// `f g 5` is f(g) followed by a stray token.
func (p *Parser) parseCallOperand() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixChain(node)
}

// isOperandStart reports whether a token can begin a juxtaposition argument.
// Operator tokens are excluded so that `a - 3` stays a subtraction.
func isOperandStart(t TokenType) bool {
	switch t {
	case TokenInt, TokenFloat, TokenString, TokenTrue, TokenFalse, TokenIdent:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenInt:
		p.advance()
		return &LiteralNode{TokenType: TokenInt, IntVal: tok.IntVal}, nil
	case TokenFloat:
		p.advance()
		return &LiteralNode{TokenType: TokenFloat, FloatVal: tok.FloatVal}, nil
	case TokenString:
		p.advance()
		return &LiteralNode{TokenType: TokenString, StrVal: tok.StrVal}, nil
	case TokenTrue:
		p.advance()
		return &LiteralNode{TokenType: TokenTrue, BoolVal: true}, nil
	case TokenFalse:
		p.advance()
		return &LiteralNode{TokenType: TokenFalse, BoolVal: false}, nil
	case TokenIdent:
		p.advance()
		return &IdentNode{Name: tok.Value}, nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectClosing(TokenRParen, ")"); err != nil {
			return nil, err
		}
		// Grouping contributes no node of its own.
		return inner, nil
	case TokenEOF:
		return nil, types.NewMissingOperand()
	default:
		return nil, types.NewUnexpectedToken(tok.Value, tok.Pos)
	}
}

// parseArgList parses (expr, expr, ...).
func (p *Parser) parseArgList() ([]Node, error) {
	p.advance() // consume (

	var args []Node
	for p.current().Type != TokenRParen {
		if p.current().Type == TokenEOF {
			return nil, types.NewMissingClosingBracket(")")
		}
		if len(args) > 0 {
			tok := p.current()
			if tok.Type != TokenComma {
				return nil, types.NewUnexpectedToken(tok.Value, tok.Pos)
			}
			p.advance()
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	p.advance() // consume )
	return args, nil
}
