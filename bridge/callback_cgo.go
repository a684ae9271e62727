// Completion: 70% - Native-to-VM callback delegate complete
package bridge

/*
#include <stdint.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/xyproto/sxvm/runtime"
)

// callbackTarget is what a generated callback stub's key looks up:
// which thread and which (module, function) to re-enter the dispatch
// loop on (spec.md §4.5: native-to-VM callback).
type callbackTarget struct {
	thread *runtime.ThreadContext
	module uint32
	fn     uint32
}

var (
	callbackMu      sync.Mutex
	callbackTargets = map[uint64]callbackTarget{}
	nextCallbackKey uint64
	callbackInvoke  func(runtime.CallbackKey, *runtime.ThreadContext, []uint64) (uint64, error)
)

// registerCallbackDispatcher lets package engine/sxvm install the actual
// "re-enter dispatch.Run for this function" logic without bridge needing
// to import dispatch (avoiding an import cycle: dispatch already depends
// on runtime, and bridge must stay below both).
func registerCallbackDispatcher(f func(runtime.CallbackKey, *runtime.ThreadContext, []uint64) (uint64, error)) {
	callbackMu.Lock()
	callbackInvoke = f
	callbackMu.Unlock()
}

func allocateCallbackKey(t callbackTarget) uint64 {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	nextCallbackKey++
	key := nextCallbackKey
	callbackTargets[key] = t
	return key
}

//export sxvmCallbackDispatch
func sxvmCallbackDispatch(key C.ulonglong, argsPtr *C.ulonglong, nargs C.int) C.ulonglong {
	callbackMu.Lock()
	target, ok := callbackTargets[uint64(key)]
	dispatch := callbackInvoke
	callbackMu.Unlock()
	if !ok || dispatch == nil {
		return 0
	}

	n := int(nargs)
	args := make([]uint64, n)
	if n > 0 {
		base := (*[1 << 20]C.ulonglong)(unsafe.Pointer(argsPtr))[:n:n]
		for i, v := range base {
			args[i] = uint64(v)
		}
	}

	result, err := dispatch(runtime.CallbackKey{Module: target.module, FunctionInternal: target.fn}, target.thread, args)
	if err != nil {
		// A trap raised from inside a native callback has nowhere to
		// propagate through the C call stack; surface it as a zero
		// result, matching the teacher's own "fail soft, log loud"
		// style for unrecoverable bridge conditions.
		return 0
	}
	return C.ulonglong(result)
}
