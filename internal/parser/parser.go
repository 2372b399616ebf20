package parser

import (
	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/lexer"
	"github.com/HicaroD/kaleido/internal/lexer/token"
)

// Parser is a recursive-descent parser with one token of lookahead. Tokens
// are pulled from the lexer on demand, so a parser can sit on top of an
// interactive stream.
type Parser struct {
	lex *lexer.Lexer
}

func New(lex *lexer.Lexer) *Parser {
	parser := new(Parser)
	parser.lex = lex
	return parser
}

// Peek returns the current token without consuming it.
func (p *Parser) Peek() (token.Token, error) {
	return p.lex.Peek()
}

func (p *Parser) pop() (token.Token, error) {
	return p.lex.Next()
}

func (p *Parser) expect(expectedKind token.Kind) (token.Token, bool, error) {
	tok, err := p.Peek()
	if err != nil {
		return tok, false, err
	}
	if tok.Kind != expectedKind {
		return tok, false, nil
	}
	_, err = p.pop()
	return tok, err == nil, err
}

// definition ::= 'def' prototype expression
func (p *Parser) ParseDefinition() (*ast.FnDecl, error) {
	tok, ok, err := p.expect(token.DEF)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxError(tok, "expected 'def'")
	}

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{Proto: proto, Body: body}, nil
}

// extern_decl ::= 'extern' prototype
func (p *Parser) ParseExtern() (*ast.Proto, error) {
	tok, ok, err := p.expect(token.EXTERN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxError(tok, "expected 'extern'")
	}
	return p.ParsePrototype()
}

// ParseTopLevelExpr wraps a bare expression into an anonymous function
// without parameters.
func (p *Parser) ParseTopLevelExpr() (*ast.FnDecl, error) {
	start, err := p.Peek()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	proto := &ast.Proto{Name: "", Params: nil, Pos: start.Pos}
	return &ast.FnDecl{Proto: proto, Body: body}, nil
}

// prototype ::= IDENT '(' IDENT* ')'
func (p *Parser) ParsePrototype() (*ast.Proto, error) {
	name, ok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Error{Kind: EXPECTED_FUNCTION_NAME, Tok: name}
	}

	tok, ok, err := p.expect(token.OPEN_PAREN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxError(tok, "expected '(' in prototype")
	}

	var params []string
	for {
		param, ok, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		params = append(params, param.Lexeme)
	}

	tok, ok, err = p.expect(token.CLOSE_PAREN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxError(tok, "expected ')' in prototype")
	}

	return &ast.Proto{Name: name.Lexeme, Params: params, Pos: name.Pos}, nil
}

// expression ::= primary binop_rhs
func (p *Parser) ParseExpr() (*ast.Node, error) {
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// primary ::= identifier_expr | number_expr | paren_expr
func (p *Parser) ParsePrimary() (*ast.Node, error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.ID:
		return p.parseIdentifierExpr()
	case token.NUMBER:
		_, err := p.pop()
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(tok.Value), nil
	case token.OPEN_PAREN:
		return p.parseParenExpr()
	default:
		return nil, &Error{Kind: UNEXPECTED_TOKEN, Tok: tok}
	}
}

// binop_rhs ::= ( binop primary )*
//
// Operators binding looser than minPrec are left for the caller.
func (p *Parser) parseBinOpRHS(minPrec int, lhs *ast.Node) (*ast.Node, error) {
	for {
		tok, err := p.Peek()
		if err != nil {
			return nil, err
		}

		prec := tok.Kind.Precedence()
		if prec < minPrec {
			return lhs, nil
		}

		_, err = p.pop()
		if err != nil {
			return nil, err
		}
		op, ok := ast.OpFromToken(tok.Kind)
		if !ok {
			return nil, &Error{Kind: PARSE_OP_SYMBOL, Tok: tok}
		}

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		next, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if prec < next.Kind.Precedence() {
			rhs, err = p.parseBinOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = ast.NewBinary(op, lhs, rhs)
	}
}

// identifier_expr ::= IDENT | IDENT '(' (expression (',' expression)*)? ')'
func (p *Parser) parseIdentifierExpr() (*ast.Node, error) {
	name, err := p.pop()
	if err != nil {
		return nil, err
	}

	_, isCall, err := p.expect(token.OPEN_PAREN)
	if err != nil {
		return nil, err
	}
	if !isCall {
		return ast.NewVariable(name.Lexeme), nil
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return ast.NewCall(name.Lexeme, args), nil
}

func (p *Parser) parseArgs() ([]*ast.Node, error) {
	var args []*ast.Node

	_, empty, err := p.expect(token.CLOSE_PAREN)
	if err != nil {
		return nil, err
	}
	if empty {
		return args, nil
	}

	for {
		arg, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, err := p.pop()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.CLOSE_PAREN:
			return args, nil
		case token.COMMA:
			continue
		default:
			return nil, syntaxError(tok, "expected ')' or ',' in argument list")
		}
	}
}

// paren_expr ::= '(' expression ')'
func (p *Parser) parseParenExpr() (*ast.Node, error) {
	_, err := p.pop() // (
	if err != nil {
		return nil, err
	}

	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	tok, ok, err := p.expect(token.CLOSE_PAREN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxError(tok, "expected ')'")
	}
	return expr, nil
}
