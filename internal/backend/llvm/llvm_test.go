package llvm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/backend"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b := New("llvm-test")
	t.Cleanup(b.Dispose)
	return b
}

// define builds name(a b) = a <op> b
func define(t *testing.T, b *Backend, name string, op ast.OpSymbol) backend.Function {
	t.Helper()

	fn := b.DeclareFunction(name, 2)
	b.SetParamNames(fn, []string{"a", "b"})
	if !b.OpenFunctionBody(fn) {
		t.Fatalf("unable to open body of %s", name)
	}
	params := b.Params(fn)
	b.EmitReturn(b.EmitBinaryOp(op, params[0], params[1]))
	if err := b.VerifyFunction(fn); err != nil {
		t.Fatalf("%s failed verification: %v", name, err)
	}
	return fn
}

func TestDeclareAndLookup(t *testing.T) {
	b := newBackend(t)

	fn := b.DeclareFunction("f", 2)
	if b.Arity(fn) != 2 {
		t.Errorf("expected arity 2, got %d", b.Arity(fn))
	}
	if b.FunctionHasBody(fn) {
		t.Errorf("declared function should have no body")
	}

	found, ok := b.LookupFunction("f")
	if !ok {
		t.Fatalf("expected to find 'f'")
	}
	if b.Arity(found) != 2 {
		t.Errorf("expected arity 2 on lookup, got %d", b.Arity(found))
	}

	b.SetParamNames(found, []string{"x", "y"})
	if names := b.ParamNames(fn); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("expected parameters [x y], got %v", names)
	}

	for _, name := range []string{"", "g"} {
		if _, ok := b.LookupFunction(name); ok {
			t.Errorf("unexpected function for %q", name)
		}
	}

	if !strings.Contains(b.RenderModule(), "declare double @f(double, double)") {
		t.Errorf("unexpected module:\n%s", b.RenderModule())
	}
}

func TestEmitBinaryOp(t *testing.T) {
	tests := []struct {
		op       ast.OpSymbol
		expected []string
	}{
		{ast.OP_ADD, []string{"%addtmp = fadd double %a, %b"}},
		{ast.OP_SUB, []string{"%subtmp = fsub double %a, %b"}},
		{ast.OP_MUL, []string{"%multmp = fmul double %a, %b"}},
		{ast.OP_DIV, []string{"%divtmp = fdiv double %a, %b"}},
		{ast.OP_LESS, []string{"%cmptmp = fcmp ult double %a, %b", "%booltmp = uitofp i1 %cmptmp to double"}},
		{ast.OP_GREATER, []string{"%cmptmp = fcmp ult double %b, %a", "%booltmp = uitofp i1 %cmptmp to double"}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestEmitBinaryOp(%s)", test.op), func(t *testing.T) {
			b := newBackend(t)
			fn := define(t, b, "f", test.op)

			ir := b.RenderValue(fn)
			for _, expected := range test.expected {
				if !strings.Contains(ir, expected) {
					t.Errorf("expected %q in:\n%s", expected, ir)
				}
			}
		})
	}
}

func TestEmitCall(t *testing.T) {
	b := newBackend(t)
	f := define(t, b, "f", ast.OP_MUL)

	g := b.DeclareFunction("g", 1)
	b.SetParamNames(g, []string{"x"})
	b.OpenFunctionBody(g)
	x := b.Params(g)[0]
	b.EmitReturn(b.EmitCall(f, []backend.Value{x, b.EmitConstant(2)}))
	if err := b.VerifyFunction(g); err != nil {
		t.Fatalf("g failed verification: %v", err)
	}

	expected := "%calltmp = call double @f(double %x, double 2.000000e+00)"
	if !strings.Contains(b.RenderValue(g), expected) {
		t.Errorf("expected %q in:\n%s", expected, b.RenderValue(g))
	}
}

func TestNilOperands(t *testing.T) {
	b := newBackend(t)
	one := b.EmitConstant(1)

	if !isNilValue(b.EmitBinaryOp(ast.OP_ADD, one, nil)) {
		t.Errorf("expected a nil value for a missing operand")
	}
	if !isNilValue(b.EmitCall(nil, nil)) {
		t.Errorf("expected a nil value for a missing callee")
	}
	if b.OpenFunctionBody(nil) {
		t.Errorf("expected no body for a missing function")
	}
	if got := b.RenderValue(b.EmitBinaryOp(ast.OP_ADD, nil, one)); got != "<nil value>" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestVerifyMissingTerminator(t *testing.T) {
	b := newBackend(t)

	fn := b.DeclareFunction("broken", 0)
	b.OpenFunctionBody(fn)
	if err := b.VerifyFunction(fn); err == nil {
		t.Errorf("expected a block without terminator to fail verification")
	}
	b.EraseFunction(fn)
}

func TestEraseFunctionBody(t *testing.T) {
	b := newBackend(t)
	fn := define(t, b, "f", ast.OP_ADD)

	b.EraseFunctionBody(fn)
	if b.FunctionHasBody(fn) {
		t.Errorf("expected body to be erased")
	}
	if _, ok := b.LookupFunction("f"); !ok {
		t.Errorf("expected 'f' to stay declared")
	}
	if !strings.Contains(b.RenderModule(), "declare double @f(double, double)") {
		t.Errorf("unexpected module:\n%s", b.RenderModule())
	}
}

func TestEraseFunction(t *testing.T) {
	b := newBackend(t)
	fn := define(t, b, "f", ast.OP_ADD)

	b.EraseFunction(fn)
	if _, ok := b.LookupFunction("f"); ok {
		t.Errorf("expected 'f' to be removed")
	}
	if _, ok := b.Function(fn); ok {
		t.Errorf("expected handle to be invalidated")
	}
	// erasing twice is a no-op
	b.EraseFunction(fn)
}

func isNilValue(value backend.Value) bool {
	return value == nil || value.IsNil()
}
