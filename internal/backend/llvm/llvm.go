package llvm

import (
	"fmt"

	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/backend"
	"tinygo.org/x/go-llvm"
)

// Backend builds IR into a single LLVM module, which doubles as the
// function registry.
type Backend struct {
	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	double llvm.Type
}

var _ backend.Backend = (*Backend)(nil)

func New(moduleName string) *Backend {
	context := llvm.NewContext()
	module := context.NewModule(moduleName)
	builder := context.NewBuilder()

	defaultTargetTriple := llvm.DefaultTargetTriple()
	module.SetTarget(defaultTargetTriple)

	return &Backend{
		context: context,
		module:  module,
		builder: builder,
		double:  context.DoubleType(),
	}
}

func (b *Backend) Context() llvm.Context { return b.context }

func (b *Backend) Module() llvm.Module { return b.module }

// Function unwraps a handle produced by this backend.
func (b *Backend) Function(fn backend.Function) (*Function, bool) {
	function, ok := fn.(*Function)
	if !ok || function.IsNil() {
		return nil, false
	}
	return function, true
}

func (b *Backend) Dispose() {
	b.builder.Dispose()
	b.module.Dispose()
	b.context.Dispose()
}

func (b *Backend) functionType(arity int) llvm.Type {
	params := make([]llvm.Type, arity)
	for i := range params {
		params[i] = b.double
	}
	return llvm.FunctionType(b.double, params, false)
}

func (b *Backend) DeclareFunction(name string, arity int) backend.Function {
	ty := b.functionType(arity)
	fn := llvm.AddFunction(b.module, name, ty)
	return NewFunctionValue(fn, ty)
}

func (b *Backend) LookupFunction(name string) (backend.Function, bool) {
	if name == "" {
		return nil, false
	}
	fn := b.module.NamedFunction(name)
	if fn.IsNil() {
		return nil, false
	}
	return NewFunctionValue(fn, b.functionType(fn.ParamsCount())), true
}

func (b *Backend) Arity(fn backend.Function) int {
	function, ok := b.Function(fn)
	if !ok {
		return 0
	}
	return function.Fn.ParamsCount()
}

func (b *Backend) SetParamNames(fn backend.Function, names []string) {
	function, ok := b.Function(fn)
	if !ok {
		return
	}
	for i, param := range function.Fn.Params() {
		if i < len(names) {
			param.SetName(names[i])
		}
	}
}

func (b *Backend) ParamNames(fn backend.Function) []string {
	function, ok := b.Function(fn)
	if !ok {
		return nil
	}
	var names []string
	for _, param := range function.Fn.Params() {
		names = append(names, param.Name())
	}
	return names
}

func (b *Backend) Params(fn backend.Function) []backend.Value {
	function, ok := b.Function(fn)
	if !ok {
		return nil
	}
	params := function.Fn.Params()
	values := make([]backend.Value, len(params))
	for i, param := range params {
		values[i] = param
	}
	return values
}

func (b *Backend) EmitConstant(value float64) backend.Value {
	return llvm.ConstFloat(b.double, value)
}

func (b *Backend) EmitBinaryOp(op ast.OpSymbol, lhs, rhs backend.Value) backend.Value {
	left, ok := toValue(lhs)
	if !ok {
		return llvm.Value{}
	}
	right, ok := toValue(rhs)
	if !ok {
		return llvm.Value{}
	}

	switch op {
	case ast.OP_ADD:
		return b.builder.CreateFAdd(left, right, "addtmp")
	case ast.OP_SUB:
		return b.builder.CreateFSub(left, right, "subtmp")
	case ast.OP_MUL:
		return b.builder.CreateFMul(left, right, "multmp")
	case ast.OP_DIV:
		return b.builder.CreateFDiv(left, right, "divtmp")
	case ast.OP_LESS:
		return b.lessThan(left, right)
	case ast.OP_GREATER:
		// a > b is b < a
		return b.lessThan(right, left)
	default:
		return llvm.Value{}
	}
}

// lessThan yields 1.0 or 0.0. Unordered operands compare as true.
func (b *Backend) lessThan(left, right llvm.Value) llvm.Value {
	cmp := b.builder.CreateFCmp(llvm.FloatULT, left, right, "cmptmp")
	return b.builder.CreateUIToFP(cmp, b.double, "booltmp")
}

func (b *Backend) EmitCall(fn backend.Function, args []backend.Value) backend.Value {
	function, ok := b.Function(fn)
	if !ok {
		return llvm.Value{}
	}

	values := make([]llvm.Value, len(args))
	for i, arg := range args {
		value, ok := toValue(arg)
		if !ok {
			return llvm.Value{}
		}
		values[i] = value
	}
	return b.builder.CreateCall(function.Ty, function.Fn, values, "calltmp")
}

func (b *Backend) EmitReturn(value backend.Value) {
	ret, ok := toValue(value)
	if !ok {
		return
	}
	b.builder.CreateRet(ret)
}

func (b *Backend) OpenFunctionBody(fn backend.Function) bool {
	function, ok := b.Function(fn)
	if !ok {
		return false
	}
	entry := b.context.AddBasicBlock(function.Fn, "entry")
	b.builder.SetInsertPointAtEnd(entry)
	return true
}

func (b *Backend) FunctionHasBody(fn backend.Function) bool {
	function, ok := b.Function(fn)
	if !ok {
		return false
	}
	return function.Fn.BasicBlocksCount() > 0
}

func (b *Backend) EraseFunction(fn backend.Function) {
	function, ok := b.Function(fn)
	if !ok {
		return
	}
	b.builder.ClearInsertionPoint()
	function.Fn.EraseFromParentAsFunction()
	function.Fn = llvm.Value{}
}

func (b *Backend) EraseFunctionBody(fn backend.Function) {
	function, ok := b.Function(fn)
	if !ok {
		return
	}
	b.builder.ClearInsertionPoint()
	for _, block := range function.Fn.BasicBlocks() {
		block.EraseFromParent()
	}
}

func (b *Backend) VerifyFunction(fn backend.Function) error {
	function, ok := b.Function(fn)
	if !ok {
		return fmt.Errorf("not a function of this module")
	}
	return llvm.VerifyFunction(function.Fn, llvm.ReturnStatusAction)
}

func (b *Backend) RenderValue(value backend.Value) string {
	switch v := value.(type) {
	case *Function:
		return v.String()
	case llvm.Value:
		if v.IsNil() {
			return "<nil value>"
		}
		return v.String()
	default:
		return fmt.Sprintf("<foreign value %T>", value)
	}
}

func (b *Backend) RenderModule() string {
	return b.module.String()
}

func toValue(value backend.Value) (llvm.Value, bool) {
	v, ok := value.(llvm.Value)
	if !ok || v.IsNil() {
		return llvm.Value{}, false
	}
	return v, true
}
