package jit

import (
	"fmt"

	"github.com/HicaroD/kaleido/internal/diagnostics"
)

type Error struct {
	// What the engine was doing
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Stage() diagnostics.Stage { return diagnostics.STAGE_JIT }
