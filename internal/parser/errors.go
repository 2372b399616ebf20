package parser

import (
	"errors"
	"fmt"

	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/lexer/token"
)

type ErrorKind int

const (
	EXPECTED_FUNCTION_NAME ErrorKind = iota
	// A token with a precedence that has no operator meaning
	PARSE_OP_SYMBOL
	// No primary expression starts with this token
	UNEXPECTED_TOKEN
	SYNTAX
)

func (kind ErrorKind) String() string {
	switch kind {
	case EXPECTED_FUNCTION_NAME:
		return "ExpectedFunctionName"
	case PARSE_OP_SYMBOL:
		return "ParseOpSymbolError"
	case UNEXPECTED_TOKEN:
		return "UnexpectedToken"
	case SYNTAX:
		return "SyntaxError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

type Error struct {
	Kind ErrorKind
	// Token the parser stopped at
	Tok token.Token
	Msg string
}

func (e *Error) Error() string {
	switch e.Kind {
	case EXPECTED_FUNCTION_NAME:
		return fmt.Sprintf("%s: expected function name in prototype, got %s", e.Tok.Pos, e.Tok.Name())
	case PARSE_OP_SYMBOL:
		return fmt.Sprintf("%s: %s is not a binary operator", e.Tok.Pos, e.Tok.Name())
	case UNEXPECTED_TOKEN:
		return fmt.Sprintf("%s: unexpected %s when expecting an expression", e.Tok.Pos, e.Tok.Name())
	case SYNTAX:
		return fmt.Sprintf("%s: %s, got %s", e.Tok.Pos, e.Msg, e.Tok.Name())
	}
	return fmt.Sprintf("%s: %s", e.Tok.Pos, e.Kind)
}

func (e *Error) Stage() diagnostics.Stage { return diagnostics.STAGE_PARSE }

func syntaxError(tok token.Token, msg string) *Error {
	return &Error{Kind: SYNTAX, Tok: tok, Msg: msg}
}

// IsIncomplete reports whether err only happened because the input ended
// too early, so more input could still make it parse.
func IsIncomplete(err error) bool {
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		return false
	}
	return parseErr.Tok.Kind == token.EOF
}
