// Package parser turns Butane expression strings into pkgs/ast trees.
//
// The grammar is the security-rule expression subset: identifiers,
// member and computed access, call expressions, unary/binary/logical
// operators, conditionals, and string/number/boolean/null/array
// literals. Parsing and printing round-trip: parsing the printed form
// of a valid tree yields an equivalent tree.
package parser

import (
	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/lexer"
)

type parser struct {
	input  string
	tokens []lexer.Token
	pos    int
}

// Parse parses an expression string into its AST.
func Parse(input string) (ast.Expression, error) {
	p := &parser{
		input:  input,
		tokens: lexer.Tokenize(input),
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != lexer.EOF {
		return nil, p.errorAt(tok, "unexpected '%s' after expression", tok.Symbol())
	}

	return expr, nil
}

// Print renders an AST back to canonical expression text. It is the
// inverse of Parse up to whitespace and quoting.
func Print(expr ast.Expression) string {
	return expr.String()
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, p.errorAt(tok, "expected '%s', got '%s'", typ, tok.Symbol())
	}
	return p.advance(), nil
}

func (p *parser) errorAt(tok lexer.Token, format string, args ...interface{}) error {
	return NewParseError(p.input, tok.Offset, format, args...)
}

// Binding powers for binary and logical operators. Higher binds tighter.
var bindingPower = map[lexer.TokenType]int{
	lexer.OR_OR:   1,
	lexer.AND_AND: 2,
	lexer.SEQ:     3,
	lexer.SNOT_EQ: 3,
	lexer.EQ:      3,
	lexer.NOT_EQ:  3,
	lexer.LT:      4,
	lexer.LT_EQ:   4,
	lexer.GT:      4,
	lexer.GT_EQ:   4,
	lexer.PLUS:    5,
	lexer.MINUS:   5,
	lexer.STAR:    6,
	lexer.SLASH:   6,
	lexer.PERCENT: 6,
}

// parseExpression parses a full expression including conditionals, which
// sit below the binary operators and associate to the right.
func (p *parser) parseExpression() (ast.Expression, error) {
	expr, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	if p.current().Type != lexer.QUESTION {
		return expr, nil
	}
	p.advance()

	consequent, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	alternate, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Conditional{Test: expr, Consequent: consequent, Alternate: alternate}, nil
}

// parseBinary implements precedence climbing over the operator table.
func (p *parser) parseBinary(minBP int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		bp, ok := bindingPower[tok.Type]
		if !ok || bp < minBP {
			return left, nil
		}
		p.advance()

		right, err := p.parseBinary(bp + 1)
		if err != nil {
			return nil, err
		}

		op := tok.Type.String()
		if tok.Type == lexer.AND_AND || tok.Type == lexer.OR_OR {
			left = &ast.Logical{Op: op, Left: left, Right: right}
		} else {
			left = &ast.Binary{Op: op, Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() (ast.Expression, error) {
	tok := p.current()
	if tok.Type == lexer.NOT || tok.Type == lexer.MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: tok.Type.String(), Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// member access, computed access, and call suffixes.
func (p *parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Type {
		case lexer.DOT:
			p.advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Property: name.Text}

		case lexer.LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Computed: true, Index: index}

		case lexer.LPAREN:
			p.advance()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args}

		default:
			return expr, nil
		}
	}
}

// parseArguments parses a comma-separated argument list up to the
// closing parenthesis, which it consumes.
func (p *parser) parseArguments() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.current().Type == lexer.RPAREN {
		p.advance()
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok := p.advance()
		switch tok.Type {
		case lexer.COMMA:
			continue
		case lexer.RPAREN:
			return args, nil
		default:
			return nil, p.errorAt(tok, "expected ',' or ')' in argument list, got '%s'", tok.Symbol())
		}
	}
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Name: tok.Text}, nil

	case lexer.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Value: tok.Text}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Text}, nil

	case lexer.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Value: true}, nil

	case lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Value: false}, nil

	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{}, nil

	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LBRACKET:
		return p.parseArrayLiteral()

	case lexer.EOF:
		return nil, p.errorAt(tok, "unexpected end of expression")

	case lexer.ILLEGAL:
		return nil, p.errorAt(tok, "unexpected character '%s'", tok.Text)

	default:
		return nil, p.errorAt(tok, "unexpected '%s'", tok.Symbol())
	}
}

func (p *parser) parseArrayLiteral() (ast.Expression, error) {
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}

	var elements []ast.Expression
	if p.current().Type == lexer.RBRACKET {
		p.advance()
		return &ast.ArrayLiteral{}, nil
	}

	for {
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)

		tok := p.advance()
		switch tok.Type {
		case lexer.COMMA:
			continue
		case lexer.RBRACKET:
			return &ast.ArrayLiteral{Elements: elements}, nil
		default:
			return nil, p.errorAt(tok, "expected ',' or ']' in array literal, got '%s'", tok.Symbol())
		}
	}
}
