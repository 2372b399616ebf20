package token

import (
	"fmt"
	"strconv"
)

// Token is an immutable lexeme. Identifiers and strings carry their text in
// Lexeme, numbers carry their parsed value in Value.
type Token struct {
	Kind   Kind
	Lexeme string
	Value  float64
	Pos    Pos
}

func New(kind Kind, lexeme string, position Pos) Token {
	return Token{Kind: kind, Lexeme: lexeme, Pos: position}
}

func NewNumber(value float64, lexeme string, position Pos) Token {
	return Token{Kind: NUMBER, Lexeme: lexeme, Value: value, Pos: position}
}

// Same reports whether both tokens have the same kind and payload,
// regardless of where they were found.
func (token Token) Same(other Token) bool {
	if token.Kind != other.Kind {
		return false
	}
	switch token.Kind {
	case ID, STRING:
		return token.Lexeme == other.Lexeme
	case NUMBER:
		return token.Value == other.Value
	default:
		return true
	}
}

func (token Token) Name() string {
	switch token.Kind {
	case ID:
		return token.Lexeme
	case STRING:
		return strconv.Quote(token.Lexeme)
	case NUMBER:
		return strconv.FormatFloat(token.Value, 'g', -1, 64)
	}
	return token.Kind.String()
}

func (token Token) String() string {
	return fmt.Sprintf("%s | %s | %s", token.Name(), token.Kind, token.Pos)
}
