package lexer

import (
	"fmt"

	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/lexer/token"
)

type ErrorKind int

const (
	// Control bytes that are not whitespace
	UNSUPPORTED_SYMBOL ErrorKind = iota
	UNCLOSED_STRING
	PARSE_FLOAT
	IO
)

func (kind ErrorKind) String() string {
	switch kind {
	case UNSUPPORTED_SYMBOL:
		return "UnsupportedSymbol"
	case UNCLOSED_STRING:
		return "UnclosedString"
	case PARSE_FLOAT:
		return "ParseFloatError"
	case IO:
		return "IoError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	// Offending source text, if any
	Text string
	// Underlying read or strconv failure
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UNSUPPORTED_SYMBOL:
		return fmt.Sprintf("%s: unsupported symbol %q", e.Pos, e.Text)
	case UNCLOSED_STRING:
		return fmt.Sprintf("%s: unclosed string literal %s", e.Pos, e.Text)
	case PARSE_FLOAT:
		return fmt.Sprintf("%s: invalid number literal %q", e.Pos, e.Text)
	case IO:
		return fmt.Sprintf("%s: read error: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Stage() diagnostics.Stage { return diagnostics.STAGE_LEX }
