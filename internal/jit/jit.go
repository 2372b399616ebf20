// Package jit evaluates argument-less functions of an LLVM backend module
// on the host.
package jit

import (
	"errors"
	"log"
	"sync"

	"github.com/HicaroD/kaleido/internal/backend"
	llvmbackend "github.com/HicaroD/kaleido/internal/backend/llvm"
	"github.com/HicaroD/kaleido/internal/config"
	"tinygo.org/x/go-llvm"
)

// Anonymous functions are renamed to this while they are evaluated, so they
// can be found again in the compiled copy of the module.
const ANON_EXPR_NAME = "__anon_expr"

var (
	nativeOnce sync.Once
	nativeErr  error
)

func initializeNative() error {
	nativeOnce.Do(func() {
		llvm.LinkInMCJIT()
		if err := llvm.InitializeNativeTarget(); err != nil {
			nativeErr = err
			return
		}
		nativeErr = llvm.InitializeNativeAsmPrinter()
	})
	return nativeErr
}

type Engine struct {
	buildType config.BuildType
	passes    config.Passes

	triple     string
	dataLayout string
	machine    llvm.TargetMachine

	logger *log.Logger
}

// New prepares a target machine for the host. A nil logger disables
// tracing.
func New(buildType config.BuildType, passes config.Passes, logger *log.Logger) (*Engine, error) {
	err := initializeNative()
	if err != nil {
		return nil, &Error{Op: "initialize native target", Err: err}
	}

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return nil, &Error{Op: "lookup target " + triple, Err: err}
	}

	machine := target.CreateTargetMachine(
		triple,
		"",
		"",
		llvm.CodeGenLevelDefault,
		llvm.RelocDefault,
		llvm.CodeModelJITDefault,
	)
	targetData := machine.CreateTargetData()
	dataLayout := targetData.String()
	targetData.Dispose()

	return &Engine{
		buildType:  buildType,
		passes:     passes,
		triple:     triple,
		dataLayout: dataLayout,
		machine:    machine,
		logger:     logger,
	}, nil
}

func (e *Engine) Dispose() {
	e.machine.Dispose()
}

// Eval compiles a copy of the module owning fn and runs fn. The backend
// module is left untouched.
func (e *Engine) Eval(b *llvmbackend.Backend, fn backend.Function) (float64, error) {
	function, ok := b.Function(fn)
	if !ok {
		return 0, &Error{Op: "evaluate", Err: errors.New("invalid function handle")}
	}
	if function.Fn.ParamsCount() != 0 {
		return 0, &Error{Op: "evaluate " + function.Name(), Err: errors.New("only functions without parameters can be evaluated")}
	}

	name := function.Fn.Name()
	if name == "" {
		function.Fn.SetName(ANON_EXPR_NAME)
		defer function.Fn.SetName("")
		// the module may already hold the name
		name = function.Fn.Name()
	}

	mod, err := e.snapshot(b)
	if err != nil {
		return 0, &Error{Op: "snapshot module", Err: err}
	}

	err = e.optimize(mod)
	if err != nil {
		mod.Dispose()
		return 0, &Error{Op: "optimize module", Err: err}
	}
	if e.logger != nil {
		e.trace("optimized module:\n%s", mod.String())
	}

	entry := mod.NamedFunction(name)
	if entry.IsNil() {
		mod.Dispose()
		return 0, &Error{Op: "evaluate " + name, Err: errors.New("function vanished from compiled module")}
	}

	err = link(mod, entry)
	if err != nil {
		mod.Dispose()
		return 0, &Error{Op: "evaluate " + name, Err: err}
	}

	options := llvm.NewMCJITCompilerOptions()
	options.SetMCJITOptimizationLevel(e.optimizationLevel())
	ee, err := llvm.NewMCJITCompiler(mod, options)
	if err != nil {
		mod.Dispose()
		return 0, &Error{Op: "create execution engine", Err: err}
	}
	// the execution engine owns mod from here on
	defer ee.Dispose()

	result := ee.RunFunction(entry, nil)
	defer result.Dispose()

	value := result.Float(b.Context().DoubleType())
	e.trace("%s evaluated to %g", name, value)
	return value, nil
}

func (e *Engine) snapshot(b *llvmbackend.Backend) (llvm.Module, error) {
	buf := llvm.WriteBitcodeToMemoryBuffer(b.Module())
	ctx := b.Context()
	mod, err := ctx.ParseIR(buf)
	if err != nil {
		return llvm.Module{}, err
	}
	mod.SetTarget(e.triple)
	mod.SetDataLayout(e.dataLayout)
	return mod, nil
}

func (e *Engine) optimize(mod llvm.Module) error {
	pbo := llvm.NewPassBuilderOptions()
	defer pbo.Dispose()

	pbo.SetLoopUnrolling(e.passes.LoopUnrolling)
	pbo.SetLoopVectorization(e.passes.LoopVectorization)
	pbo.SetSLPVectorization(e.passes.SLPVectorization)
	pbo.SetLoopInterleaving(e.passes.LoopInterleaving)
	pbo.SetCallGraphProfile(e.passes.CallGraphProfile)
	pbo.SetMergeFunctions(e.passes.MergeFunctions)
	pbo.SetDebugLogging(e.passes.DebugLogging)
	pbo.SetVerifyEach(e.passes.VerifyEach)

	e.trace("running %s", e.buildType.Pipeline())
	return mod.RunPasses(e.buildType.Pipeline(), e.machine, pbo)
}

func (e *Engine) optimizationLevel() uint {
	if e.buildType == config.RELEASE {
		return 2
	}
	return 0
}

func (e *Engine) trace(format string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Printf("[DEBUG MODE] "+format, args...)
}
