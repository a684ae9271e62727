// Completion: 100% - Thread context complete
package runtime

import "github.com/xyproto/sxvm/image"

// ModuleInstance is one module's per-thread live storage: its data
// segments (ReadOnly is shared read-only across threads; ReadWrite and
// Uninit are private per thread, spec.md §3.5) and its linear memory.
type ModuleInstance struct {
	ReadOnly  *Segment
	ReadWrite *Segment
	Uninit    *Segment
	Memory    *Memory
}

// SegmentByKind returns the per-thread segment for kind (spec.md §3.3).
func (mi *ModuleInstance) SegmentByKind(kind image.SegmentKind) *Segment {
	switch kind {
	case image.SegmentReadOnly:
		return mi.ReadOnly
	case image.SegmentReadWrite:
		return mi.ReadWrite
	default:
		return mi.Uninit
	}
}

// CallbackKey identifies one native-callable entry point generated for a
// specific (module, function) pair (spec.md §4.5).
type CallbackKey struct {
	Module           uint32
	FunctionInternal uint32
}

// ExternalCaller is the thread's view of the native bridge: a single
// call-out entry point keyed by the unified external function index
// (spec.md §3.4, §4.5). Implemented by package bridge; kept as an
// interface here so runtime never imports bridge.
type ExternalCaller interface {
	CallExternal(unifiedIndex uint32, args []uint64) ([]uint64, error)
}

// ThreadContext is one thread's full execution state (spec.md §3.5): the
// operand stack, the call-frame chain, the program counter, each loaded
// module's per-thread instance, the shared bridge entry point, and this
// thread's own cache of generated callback trampoline addresses.
type ThreadContext struct {
	Stack   *Stack
	Chain   *Chain
	PC      PC
	Modules []*ModuleInstance

	External ExternalCaller

	// Callbacks caches addresses already handed out by AddressOfCallback
	// for this thread, so repeat requests for the same (module,function)
	// return the same native function pointer (spec.md §4.5).
	Callbacks map[CallbackKey]uintptr
}

// NewThreadContext creates a thread with an empty stack and frame chain,
// bound to the given per-thread module instances and bridge entry point.
func NewThreadContext(modules []*ModuleInstance, external ExternalCaller) *ThreadContext {
	return &ThreadContext{
		Stack:     NewStack(),
		Chain:     NewChain(),
		Modules:   modules,
		External:  external,
		Callbacks: make(map[CallbackKey]uintptr),
	}
}

// NewModuleInstance builds one module's per-thread instance from shared
// read-only-segment templates (cloned for ReadWrite, freshly zeroed for
// Uninit) and a fresh empty linear memory (spec.md §3.3, §4.2).
func NewModuleInstance(readOnly, readWriteTemplate, uninitTemplate *Segment) *ModuleInstance {
	return &ModuleInstance{
		ReadOnly:  readOnly,
		ReadWrite: readWriteTemplate.Clone(),
		Uninit:    uninitTemplate.Clone(),
		Memory:    NewMemory(),
	}
}
