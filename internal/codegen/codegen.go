// Package codegen lowers expressions, prototypes and function definitions
// into backend IR.
package codegen

import (
	"fmt"

	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/backend"
	"github.com/HicaroD/kaleido/internal/scope"
)

// Codegen is the compilation context. The function registry lives in the
// backend; Codegen only owns the parameters of the function being built.
type Codegen struct {
	backend     backend.Backend
	namedValues *scope.Scope[backend.Value]
}

func New(b backend.Backend) *Codegen {
	return &Codegen{
		backend:     b,
		namedValues: scope.New[backend.Value](),
	}
}

func (c *Codegen) GenerateExpr(node *ast.Node) (backend.Value, error) {
	value, err := c.generateExpr(node)
	if err != nil {
		return nil, err
	}
	if isNil(value) {
		return nil, &Error{Kind: INVALID_HANDLE}
	}
	return value, nil
}

// generateExpr may return a nil handle straight from the backend, so call
// sites can tell which operand went missing.
func (c *Codegen) generateExpr(node *ast.Node) (backend.Value, error) {
	switch node.Kind {
	case ast.KIND_NUMBER_EXPR:
		number := node.Node.(*ast.NumberExpr)
		return c.backend.EmitConstant(number.Value), nil
	case ast.KIND_VARIABLE_EXPR:
		return c.generateVariable(node.Node.(*ast.VariableExpr))
	case ast.KIND_BINARY_EXPR:
		return c.generateBinaryExpr(node.Node.(*ast.BinaryExpr))
	case ast.KIND_CALL_EXPR:
		return c.generateCall(node.Node.(*ast.CallExpr))
	default:
		return nil, fmt.Errorf("unimplemented expression: %s", node.Kind)
	}
}

func (c *Codegen) generateVariable(variable *ast.VariableExpr) (backend.Value, error) {
	value, err := c.namedValues.Lookup(variable.Name)
	if err != nil {
		return nil, &Error{Kind: UNKNOWN_VARIABLE_NAME, Name: variable.Name, Err: err}
	}
	return value, nil
}

func (c *Codegen) generateBinaryExpr(binExpr *ast.BinaryExpr) (backend.Value, error) {
	lhs, err := c.generateExpr(binExpr.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := c.generateExpr(binExpr.Right)
	if err != nil {
		return nil, err
	}
	if isNil(lhs) || isNil(rhs) {
		return nil, &Error{Kind: INVALID_HANDLE}
	}
	return c.backend.EmitBinaryOp(binExpr.Op, lhs, rhs), nil
}

func (c *Codegen) generateCall(call *ast.CallExpr) (backend.Value, error) {
	callee, ok := c.backend.LookupFunction(call.Callee)
	if !ok {
		return nil, &Error{Kind: UNKNOWN_FUNCTION, Name: call.Callee}
	}

	arity := c.backend.Arity(callee)
	if arity != len(call.Args) {
		return nil, &Error{
			Kind:     INCORRECT_ARGUMENTS,
			Name:     call.Callee,
			Expected: arity,
			Got:      len(call.Args),
		}
	}

	args := make([]backend.Value, 0, len(call.Args))
	for _, arg := range call.Args {
		value, err := c.generateExpr(arg)
		if err != nil {
			return nil, err
		}
		if isNil(value) {
			return nil, &Error{Kind: FUNCTION_ARGUMENT_IS_NULL, Name: call.Callee}
		}
		args = append(args, value)
	}

	return c.backend.EmitCall(callee, args), nil
}

// GeneratePrototype declares proto, or fetches the function already
// declared under its name. Parameters are (re)named after proto.
func (c *Codegen) GeneratePrototype(proto *ast.Proto) (backend.Function, error) {
	fn, _, err := c.declare(proto)
	return fn, err
}

func (c *Codegen) declare(proto *ast.Proto) (backend.Function, bool, error) {
	fn, existed := c.backend.LookupFunction(proto.Name)
	if existed {
		arity := c.backend.Arity(fn)
		if arity != proto.Arity() {
			return nil, existed, &Error{
				Kind:     INCORRECT_ARGUMENTS,
				Name:     proto.Name,
				Expected: arity,
				Got:      proto.Arity(),
			}
		}
	} else {
		fn = c.backend.DeclareFunction(proto.Name, proto.Arity())
		if isNil(fn) {
			return nil, existed, &Error{Kind: INVALID_HANDLE, Name: proto.Name}
		}
	}

	c.backend.SetParamNames(fn, proto.Params)
	return fn, existed, nil
}

// GenerateFunction emits a whole definition. A function receives a body at
// most once. On failure everything this call added is erased again: the
// whole function if it was created here, or only its body when an earlier
// extern declared it. The original error is returned unchanged.
func (c *Codegen) GenerateFunction(fnDecl *ast.FnDecl) (backend.Function, error) {
	proto := fnDecl.Proto

	var declared []string
	if existing, ok := c.backend.LookupFunction(proto.Name); ok {
		if c.backend.FunctionHasBody(existing) {
			return nil, &Error{Kind: FUNCTION_REDEFINED, Name: proto.Name}
		}
		declared = c.backend.ParamNames(existing)
	}

	fn, existed, err := c.declare(proto)
	if err != nil {
		return nil, err
	}
	undo := func() { c.discard(fn, existed, declared) }

	if !c.backend.OpenFunctionBody(fn) {
		undo()
		return nil, &Error{Kind: INVALID_HANDLE, Name: proto.Name}
	}

	c.namedValues.Reset()
	for i, param := range c.backend.Params(fn) {
		if i < len(proto.Params) {
			c.namedValues.Bind(proto.Params[i], param)
		}
	}

	body, err := c.GenerateExpr(fnDecl.Body)
	if err != nil {
		undo()
		return nil, err
	}
	c.backend.EmitReturn(body)

	err = c.backend.VerifyFunction(fn)
	if err != nil {
		undo()
		return nil, &Error{Kind: VERIFICATION_FAILED, Name: proto.Name, Err: err}
	}

	return fn, nil
}

// discard drops a failed definition. A prior declaration gets its body
// removed and its parameter names back.
func (c *Codegen) discard(fn backend.Function, existed bool, declared []string) {
	if existed {
		c.backend.EraseFunctionBody(fn)
		c.backend.SetParamNames(fn, declared)
		return
	}
	c.backend.EraseFunction(fn)
}

func isNil(value backend.Value) bool {
	return value == nil || value.IsNil()
}
