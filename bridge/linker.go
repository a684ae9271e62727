// Completion: 75% - Native bridge linker complete
package bridge

import (
	"fmt"
	"sync"

	"github.com/xyproto/sxvm/image"
	"github.com/xyproto/sxvm/runtime"
)

// ExternalTarget is everything Linker needs to resolve and call one
// deduplicated unified external function (spec.md §3.4 UnifiedExternalFunction,
// §4.5): which library it lives in, its exported symbol name, and its
// declared parameter/result types for marshaling.
type ExternalTarget struct {
	Library image.ExternalLibraryEntry
	Symbol  string
	Params  []image.DataType
	Results []image.DataType
}

type resolvedTarget struct {
	fnAddr uintptr
	sig    Signature
}

// FunctionShaper answers how many parameters a module-local function
// takes, which AddressOfCallback needs to size the native-callable stub
// it generates but dispatch.Resolver (package engine) already knows.
type FunctionShaper interface {
	ParamCount(module, functionInternal uint32) int
}

// Linker is the concrete native bridge: it implements both
// runtime.ExternalCaller (extcall, VM to native) and a callback-address
// generator (host_addr_function, native to VM), sharing one Loader and
// one generated-code arena across every thread in the process (spec.md
// §4.5: bridge state is process-wide, guarded by a coarse mutex).
type Linker struct {
	loader  *Loader
	targets []ExternalTarget
	shaper  FunctionShaper

	mu       sync.Mutex
	resolved map[uint32]resolvedTarget
}

var _ runtime.ExternalCaller = (*Linker)(nil)

// NewLinker builds a Linker over the unified external function table
// (index = unified external function index, spec.md §3.4) and installs
// the callback dispatcher so the cgo delegate in callback_cgo.go can
// re-enter the interpreter.
func NewLinker(targets []ExternalTarget, shaper FunctionShaper, dispatch func(runtime.CallbackKey, *runtime.ThreadContext, []uint64) (uint64, error)) *Linker {
	registerCallbackDispatcher(dispatch)
	return &Linker{
		loader:   NewLoader(),
		targets:  targets,
		shaper:   shaper,
		resolved: make(map[uint32]resolvedTarget),
	}
}

func argKindOf(t image.DataType) ArgKind {
	if t == image.TypeF32 || t == image.TypeF64 {
		return ArgFloat
	}
	return ArgInt
}

func (l *Linker) resolve(unifiedIndex uint32) (resolvedTarget, error) {
	l.mu.Lock()
	if r, ok := l.resolved[unifiedIndex]; ok {
		l.mu.Unlock()
		return r, nil
	}
	l.mu.Unlock()

	if int(unifiedIndex) >= len(l.targets) {
		return resolvedTarget{}, fmt.Errorf("bridge: unified external function index %d out of range", unifiedIndex)
	}
	t := l.targets[unifiedIndex]

	handle, err := l.loader.Open(t.Library)
	if err != nil {
		return resolvedTarget{}, err
	}
	fnAddr, err := l.loader.Symbol(handle, l.loader.resolvePath(t.Library), t.Symbol)
	if err != nil {
		return resolvedTarget{}, err
	}

	sig := Signature{Params: make([]ArgKind, len(t.Params))}
	for i, p := range t.Params {
		sig.Params[i] = argKindOf(p)
	}
	if len(t.Results) > 0 {
		sig.HasResult = true
		sig.Result = argKindOf(t.Results[0])
	}

	r := resolvedTarget{fnAddr: fnAddr, sig: sig}

	l.mu.Lock()
	l.resolved[unifiedIndex] = r
	l.mu.Unlock()
	return r, nil
}

// CallExternal implements runtime.ExternalCaller (spec.md §4.5 extcall):
// resolve the unified index to a native symbol, generate-or-reuse its
// wrapper stub, and invoke it.
func (l *Linker) CallExternal(unifiedIndex uint32, args []uint64) ([]uint64, error) {
	r, err := l.resolve(unifiedIndex)
	if err != nil {
		return nil, err
	}

	wrapperAddr, err := wrappers.addressFor(r.sig)
	if err != nil {
		return nil, err
	}

	result := invokeWrapper(wrapperAddr, r.fnAddr, args)
	if !r.sig.HasResult {
		return nil, nil
	}
	return []uint64{result}, nil
}

// AddressOfCallback implements dispatch.CallbackGenerator (spec.md §4.5
// host_addr_function): it generates a native-callable function pointer
// for the given module-local function, caching it per thread so repeat
// requests for the same (module, function) return the same address
// (runtime.ThreadContext.Callbacks).
func (l *Linker) AddressOfCallback(thread *runtime.ThreadContext, module, functionInternal uint32) (uintptr, error) {
	key := runtime.CallbackKey{Module: module, FunctionInternal: functionInternal}
	if addr, ok := thread.Callbacks[key]; ok {
		return addr, nil
	}

	nargs := l.shaper.ParamCount(module, functionInternal)
	ckey := allocateCallbackKey(callbackTarget{thread: thread, module: module, fn: functionInternal})

	handle, err := dlopenPath("")
	if err != nil {
		return 0, fmt.Errorf("bridge: open main program for callback delegate lookup: %w", err)
	}
	delegateAddr, err := dlsymHandle(handle, "sxvmCallbackDispatch")
	if err != nil {
		return 0, fmt.Errorf("bridge: locate callback delegate: %w", err)
	}

	code, err := buildCallbackStub(ckey, nargs, delegateAddr)
	if err != nil {
		return 0, err
	}
	addr, err := globalExecArena.writeCode(code)
	if err != nil {
		return 0, err
	}

	thread.Callbacks[key] = addr
	return addr, nil
}
