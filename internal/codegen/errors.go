package codegen

import (
	"fmt"

	"github.com/HicaroD/kaleido/internal/diagnostics"
)

type ErrorKind int

const (
	UNKNOWN_VARIABLE_NAME ErrorKind = iota
	UNKNOWN_FUNCTION
	INCORRECT_ARGUMENTS
	FUNCTION_ARGUMENT_IS_NULL
	FUNCTION_REDEFINED
	// The backend handed back a nil or foreign handle
	INVALID_HANDLE
	VERIFICATION_FAILED
)

func (kind ErrorKind) String() string {
	switch kind {
	case UNKNOWN_VARIABLE_NAME:
		return "UnknownVariableName"
	case UNKNOWN_FUNCTION:
		return "UnknownFunction"
	case INCORRECT_ARGUMENTS:
		return "IncorrectArguments"
	case FUNCTION_ARGUMENT_IS_NULL:
		return "FunctionArgumentIsNull"
	case FUNCTION_REDEFINED:
		return "FunctionRedefined"
	case INVALID_HANDLE:
		return "InvalidHandle"
	case VERIFICATION_FAILED:
		return "VerificationFailed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

type Error struct {
	Kind ErrorKind
	// Variable or function the error is about
	Name string
	// Arities, for INCORRECT_ARGUMENTS
	Expected int
	Got      int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UNKNOWN_VARIABLE_NAME:
		return fmt.Sprintf("unknown variable name '%s'", e.Name)
	case UNKNOWN_FUNCTION:
		return fmt.Sprintf("unknown function '%s'", e.Name)
	case INCORRECT_ARGUMENTS:
		return fmt.Sprintf("incorrect number of arguments for '%s': expected %d, got %d", e.Name, e.Expected, e.Got)
	case FUNCTION_ARGUMENT_IS_NULL:
		return fmt.Sprintf("argument passed to '%s' has no value", e.Name)
	case FUNCTION_REDEFINED:
		return fmt.Sprintf("function '%s' cannot be redefined", e.Name)
	case INVALID_HANDLE:
		if e.Name == "" {
			return "backend returned an invalid handle"
		}
		return fmt.Sprintf("backend returned an invalid handle for '%s'", e.Name)
	case VERIFICATION_FAILED:
		return fmt.Sprintf("function '%s' failed verification: %v", e.Name, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Stage() diagnostics.Stage { return diagnostics.STAGE_COMPILE }
