package dispatch

import (
	"encoding/binary"
	"unsafe"

	"github.com/xyproto/sxvm/runtime"
)

// CallbackGenerator generates (and the thread caches) the native-callable
// function pointer for host_addr_function (spec.md §4.5). Implemented by
// package bridge; kept as an interface here so dispatch never imports
// bridge directly.
type CallbackGenerator interface {
	AddressOfCallback(thread *runtime.ThreadContext, module, functionInternal uint32) (uintptr, error)
}

// Ctx is the per-instruction execution context handed to every handler:
// the thread, the module-resolution and callback collaborators, and the
// current function's code with its module and function index. The operand
// bytes following the 2-byte opcode are passed to the handler separately.
type Ctx struct {
	Thread      *runtime.ThreadContext
	Resolver    Resolver
	CallbackGen CallbackGenerator
	Code        []byte
	Module      uint32
	Function    uint32
}

// Handler decodes its own immediates out of operands and executes one
// instruction, returning the next dispatch step.
type Handler func(ctx *Ctx, operands []byte) Verdict

func u16At(b []byte, off int) uint16   { return binary.LittleEndian.Uint16(b[off:]) }
func i16At(b []byte, off int) int16    { return int16(binary.LittleEndian.Uint16(b[off:])) }
func u32At(b []byte, off int) uint32   { return binary.LittleEndian.Uint32(b[off:]) }
func i32At(b []byte, off int) int32    { return int32(binary.LittleEndian.Uint32(b[off:])) }

// moduleInstance returns the per-thread instance of the module at index.
func (c *Ctx) moduleInstance(index uint32) *runtime.ModuleInstance { return c.Thread.Modules[index] }

// sliceAddr returns a byte slice's backing address as a host-usable
// pointer value, for the host_addr_* family (spec.md §4.4): these
// instructions hand a raw address to native code via extcall and the
// core never dereferences it itself.
func sliceAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
