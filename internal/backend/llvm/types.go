package llvm

import (
	"tinygo.org/x/go-llvm"
)

// Function pairs a function value with its signature, which calls need
// under opaque pointers.
type Function struct {
	Fn llvm.Value
	Ty llvm.Type
}

func NewFunctionValue(fn llvm.Value, ty llvm.Type) *Function {
	return &Function{Fn: fn, Ty: ty}
}

func (function *Function) IsNil() bool {
	return function == nil || function.Fn.IsNil()
}

func (function *Function) Name() string {
	if function.IsNil() {
		return ""
	}
	return function.Fn.Name()
}

func (function *Function) String() string {
	if function.IsNil() {
		return "<nil function>"
	}
	return function.Fn.String()
}
