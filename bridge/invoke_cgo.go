// Completion: 85% - Generated wrapper invocation complete
package bridge

/*
#include <stdint.h>

typedef void (*sxvm_wrapper_fn)(void *fn, unsigned long long *params, unsigned long long *result);

static void sxvm_invoke_wrapper(void *wrapper, void *fn, unsigned long long *params, unsigned long long *result) {
	sxvm_wrapper_fn w = (sxvm_wrapper_fn)wrapper;
	w(fn, params, result);
}
*/
import "C"
import "unsafe"

// invokeWrapper calls a generated wrapper stub (address wrapperAddr) as
// the fixed C signature `void wrapper(void *fn, uint64_t *params, uint64_t
// *result)`, regardless of fn's own real signature — only the generated
// machine code at wrapperAddr knows how to marshal params into fn's real
// calling convention (spec.md §4.5).
func invokeWrapper(wrapperAddr, fnAddr uintptr, params []uint64) uint64 {
	var result C.ulonglong
	var paramsPtr *C.ulonglong
	if len(params) > 0 {
		paramsPtr = (*C.ulonglong)(unsafe.Pointer(&params[0]))
	}
	C.sxvm_invoke_wrapper(
		unsafe.Pointer(wrapperAddr),
		unsafe.Pointer(fnAddr),
		paramsPtr,
		&result,
	)
	return uint64(result)
}
