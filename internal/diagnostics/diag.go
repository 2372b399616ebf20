package diagnostics

import (
	"errors"
	"fmt"
)

// Stage identifies which part of the pipeline produced an error.
type Stage int

const (
	STAGE_UNKNOWN Stage = iota
	STAGE_LEX
	STAGE_PARSE
	STAGE_COMPILE
	STAGE_JIT
)

func (stage Stage) String() string {
	switch stage {
	case STAGE_LEX:
		return "lex error"
	case STAGE_PARSE:
		return "parse error"
	case STAGE_COMPILE:
		return "compile error"
	case STAGE_JIT:
		return "jit error"
	default:
		return "error"
	}
}

// Staged is implemented by every typed pipeline error.
type Staged interface {
	error
	Stage() Stage
}

// Diag is the single top-level error value the driver reports. Lexer,
// parser and code generator errors all compose into it.
type Diag struct {
	Stage   Stage
	Message string
	Err     error
}

func FromError(err error) Diag {
	var nested Diag
	if errors.As(err, &nested) {
		return nested
	}

	diag := Diag{Stage: STAGE_UNKNOWN, Err: err}

	var staged Staged
	if errors.As(err, &staged) {
		diag.Stage = staged.Stage()
	}

	diag.Message = fmt.Sprintf("%s: %s", diag.Stage, err)
	return diag
}

func (diag Diag) Error() string { return diag.Message }

func (diag Diag) Unwrap() error { return diag.Err }
