// Completion: 85% - cgo dlopen/dlsym bridge complete
package bridge

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// dlopenPath opens a shared library by path (or bare name for a System
// library, letting the platform loader's own search path resolve it),
// mirroring the teacher's habit of shelling out to the platform toolchain
// in cffi.go rather than reimplementing ELF/Mach-O loading.
func dlopenPath(path string) (uintptr, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.dlopen(cpath, C.int(dlopenFlags()))
	if handle == nil {
		return 0, fmt.Errorf("dlopen: %s", C.GoString(C.dlerror()))
	}
	return uintptr(handle), nil
}

// dlsymHandle looks up a symbol in an already-open handle.
func dlsymHandle(handle uintptr, name string) (uintptr, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.dlerror() // clear any pending error first; dlsym can legitimately return NULL
	sym := C.dlsym(unsafe.Pointer(handle), cname)
	if sym == nil {
		if errStr := C.dlerror(); errStr != nil {
			return 0, fmt.Errorf("dlsym: %s", C.GoString(errStr))
		}
	}
	return uintptr(sym), nil
}
