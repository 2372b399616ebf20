package jit

// #cgo linux LDFLAGS: -ldl
// #define _GNU_SOURCE
// #include <dlfcn.h>
// #include <stdlib.h>
//
// static int host_has_symbol(const char *name) {
//     return dlsym(RTLD_DEFAULT, name) != NULL;
// }
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"tinygo.org/x/go-llvm"
)

var ErrUnresolvedExternal = errors.New("unresolved external function")

// hostHasSymbol reports whether the running process exports name. MCJIT
// binds external calls through the same process-wide lookup.
func hostHasSymbol(name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.host_has_symbol(cname) != 0
}

// reachable collects entry and every function it can call, directly or
// through other functions of the module.
func reachable(entry llvm.Value) map[llvm.Value]bool {
	reached := map[llvm.Value]bool{entry: true}
	work := []llvm.Value{entry}

	for len(work) > 0 {
		fn := work[len(work)-1]
		work = work[:len(work)-1]

		for _, block := range fn.BasicBlocks() {
			for inst := block.FirstInstruction(); !inst.IsNil(); inst = llvm.NextInstruction(inst) {
				for i := range inst.OperandsCount() {
					op := inst.Operand(i)
					if op.IsAFunction().IsNil() || reached[op] {
						continue
					}
					reached[op] = true
					work = append(work, op)
				}
			}
		}
	}
	return reached
}

// link readies a compiled copy of the module for MCJIT. Functions entry
// never reaches are dropped so their calls are not bound, and every external
// entry does reach must exist in the host process.
func link(mod llvm.Module, entry llvm.Value) error {
	reached := reachable(entry)

	var unused []llvm.Value
	var unresolved []string
	for fn := mod.FirstFunction(); !fn.IsNil(); fn = llvm.NextFunction(fn) {
		if !reached[fn] {
			unused = append(unused, fn)
			continue
		}
		if fn.BasicBlocksCount() > 0 || fn.IntrinsicID() != 0 {
			continue
		}
		if !hostHasSymbol(fn.Name()) {
			unresolved = append(unresolved, fn.Name())
		}
	}

	// bodies go first so no unused function is still called when erased
	for _, fn := range unused {
		for _, block := range fn.BasicBlocks() {
			block.EraseFromParent()
		}
	}
	for _, fn := range unused {
		fn.EraseFromParentAsFunction()
	}

	if len(unresolved) > 0 {
		return fmt.Errorf("%w: %q", ErrUnresolvedExternal, unresolved)
	}
	return nil
}
