// Package backend describes what the code generator needs from an IR
// backend. Handles are opaque: only the backend that produced one can look
// inside it.
package backend

import "github.com/HicaroD/kaleido/internal/ast"

type Value interface {
	IsNil() bool
}

type Function interface {
	Value
	Name() string
}

// Backend owns the function registry and the IR builder. Every function it
// declares takes doubles and returns a double.
//
// Methods handed a handle they did not produce return a nil handle (or
// false, or an error) instead of panicking.
type Backend interface {
	// DeclareFunction adds a function without a body.
	DeclareFunction(name string, arity int) Function
	// LookupFunction finds a declared function by name. The empty name
	// never resolves.
	LookupFunction(name string) (Function, bool)
	Arity(fn Function) int
	SetParamNames(fn Function, names []string)
	ParamNames(fn Function) []string
	Params(fn Function) []Value

	EmitConstant(value float64) Value
	EmitBinaryOp(op ast.OpSymbol, lhs, rhs Value) Value
	EmitCall(fn Function, args []Value) Value
	EmitReturn(value Value)

	// OpenFunctionBody appends an entry block to fn and moves the builder
	// there.
	OpenFunctionBody(fn Function) bool
	FunctionHasBody(fn Function) bool
	// EraseFunction removes fn from the registry.
	EraseFunction(fn Function)
	// EraseFunctionBody drops every block of fn, leaving a declaration.
	EraseFunctionBody(fn Function)
	VerifyFunction(fn Function) error

	RenderValue(value Value) string
	RenderModule() string
}
