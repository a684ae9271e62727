// Completion: 80% - Embedding API complete
// Package sxvm is the embedding surface (spec.md §6.2): load one or more
// module images, create threads against them, and call functions by
// public index. Everything else (image codec, dispatch loop, module
// resolution, native bridge) lives in its own package; this file only
// wires them together the way a host program would.
package sxvm

import (
	"fmt"
	"math"

	"github.com/xyproto/sxvm/bridge"
	"github.com/xyproto/sxvm/dispatch"
	"github.com/xyproto/sxvm/engine"
	"github.com/xyproto/sxvm/image"
	"github.com/xyproto/sxvm/runtime"
)

// Verbose is set by the sxvm command's -v flag, mirroring the teacher's
// package-level VerboseMode flag (SPEC_FULL.md §10). Nothing in this
// module reads it: the dispatch loop and the bridge loader print no trace
// output.
var Verbose bool

// ValueTag identifies which of the four operand types a Value carries
// (spec.md §6.2: embedding arguments/results are tagged u32/u64/f32/f64).
type ValueTag int

const (
	TagI32 ValueTag = iota
	TagI64
	TagF32
	TagF64
)

// Value is one tagged argument or result slot crossing the embedding
// boundary.
type Value struct {
	Tag ValueTag
	raw uint64
}

func I32(v int32) Value  { return Value{Tag: TagI32, raw: uint64(uint32(v))} }
func I64(v int64) Value  { return Value{Tag: TagI64, raw: uint64(v)} }
func F32(v float32) Value { return Value{Tag: TagF32, raw: uint64(math.Float32bits(v))} }
func F64(v float64) Value { return Value{Tag: TagF64, raw: math.Float64bits(v)} }

func (v Value) I32() int32   { return int32(uint32(v.raw)) }
func (v Value) I64() int64   { return int64(v.raw) }
func (v Value) F32() float32 { return math.Float32frombits(uint32(v.raw)) }
func (v Value) F64() float64 { return math.Float64frombits(v.raw) }
func (v Value) Raw() uint64  { return v.raw }

func valueFromType(t image.DataType, raw uint64) Value {
	switch t {
	case image.TypeI32:
		return Value{Tag: TagI32, raw: raw}
	case image.TypeI64:
		return Value{Tag: TagI64, raw: raw}
	case image.TypeF32:
		return Value{Tag: TagF32, raw: raw}
	default:
		return Value{Tag: TagF64, raw: raw}
	}
}

// VM is a loaded application: its module graph plus the shared native
// bridge every thread calls through.
type VM struct {
	ctx      *engine.Context
	resolver *engine.Resolver
	linker   *bridge.Linker
}

// Resolver exposes the VM's public-index resolver, e.g. for package
// engine-level disassembly or introspection tools built on top of sxvm.
func (vm *VM) Resolver() *engine.Resolver { return vm.resolver }

// Thread is one execution context created against a VM (spec.md §3.5,
// §5: each thread owns its own stack, frame chain, and per-module
// ReadOnly/ReadWrite/Uninit data; only the native bridge is shared).
type Thread struct {
	tc       *runtime.ThreadContext
	resolver *engine.Resolver
}

// LoadModules parses every module image, builds the module graph, and
// constructs the native bridge over the main module's deduplicated
// external-function table (spec.md §6.2 load_modules).
func LoadModules(binaries [][]byte) (*VM, error) {
	ctx, err := engine.LoadModules(binaries)
	if err != nil {
		return nil, err
	}

	resolver := &engine.Resolver{Ctx: ctx}
	targets, err := buildExternalTargets(ctx)
	if err != nil {
		return nil, err
	}

	linker := bridge.NewLinker(targets, resolver, func(key runtime.CallbackKey, tc *runtime.ThreadContext, args []uint64) (uint64, error) {
		return runCallback(resolver, tc, key, args)
	})

	return &VM{ctx: ctx, resolver: resolver, linker: linker}, nil
}

// buildExternalTargets flattens the main module's UnifiedExternalLibrary
// and UnifiedExternalFunction sections into bridge.ExternalTarget
// entries, indexed by unified external function index (spec.md §3.4).
func buildExternalTargets(ctx *engine.Context) ([]bridge.ExternalTarget, error) {
	main := ctx.MainModule()
	if main.UnifiedExternalFunction == nil {
		return nil, nil
	}
	n := main.UnifiedExternalFunction.Len()
	out := make([]bridge.ExternalTarget, n)
	for i := 0; i < n; i++ {
		fe := main.UnifiedExternalFunction.Get(i)
		if main.UnifiedExternalLibrary == nil || int(fe.LibraryIndex) >= main.UnifiedExternalLibrary.Len() {
			return nil, fmt.Errorf("sxvm: unified external function %d references unknown library %d", i, fe.LibraryIndex)
		}
		lib := main.UnifiedExternalLibrary.Get(int(fe.LibraryIndex))
		te := main.Types.Get(int(fe.TypeIndex))
		out[i] = bridge.ExternalTarget{Library: lib, Symbol: fe.Name, Params: te.Params, Results: te.Results}
	}
	return out, nil
}

// CreateThread builds a fresh thread over vm's module graph: one
// ModuleInstance per loaded module, each with its own copy of the
// module's ReadOnly, ReadWrite and Uninit data and an empty linear
// memory; the native bridge is shared (spec.md §3.5).
func (vm *VM) CreateThread() *Thread {
	instances := make([]*runtime.ModuleInstance, len(vm.ctx.Modules))
	for i, m := range vm.ctx.Modules {
		ro := runtime.NewSegmentFromImage(m.ReadOnly, true, true)
		rwTemplate := runtime.NewSegmentFromImage(m.ReadWrite, false, true)
		uninitTemplate := runtime.NewSegmentFromImage(m.Uninit, false, false)
		instances[i] = runtime.NewModuleInstance(ro, rwTemplate, uninitTemplate)
	}
	tc := runtime.NewThreadContext(instances, vm.linker)
	return &Thread{tc: tc, resolver: vm.resolver}
}

// CallFunction calls a function addressed by its public index within
// module moduleIndex, pushing args in order and returning the callee's
// results in declared order (spec.md §6.2 call_function). A Trap (spec.md
// §7 band 2) is returned as a plain error; callers that need the
// termination code can type-assert to *runtime.Trap.
func (t *Thread) CallFunction(moduleIndex, publicIndex uint32, args []Value) ([]Value, error) {
	resolver := t.resolver
	info, err := resolver.ResolveFunctionIndex(moduleIndex, publicIndex)
	if err != nil {
		return nil, err
	}
	if len(args) != info.ParamsCount {
		return nil, fmt.Errorf("sxvm: function expects %d arguments, got %d", info.ParamsCount, len(args))
	}

	for _, a := range args {
		t.tc.Stack.PushRaw(a.raw)
	}

	returnPC := runtime.PC{}.WithEndOfCall()
	runtime.CreateFrame(t.tc.Stack, t.tc.Chain, runtime.FrameFunction, info.LocalListIndex,
		info.LocalRegionLen, info.ParamsCount, info.ResultsCount, returnPC, 0, info.Module, info.Internal, info.ParamOffsets)
	t.tc.PC = runtime.PC{Module: info.Module, Function: info.Internal, Address: 0}

	code, ok := dispatch.Run(t.tc, resolver, t.tc.External.(*bridge.Linker))
	if !ok {
		return nil, runtime.NewTrap(code)
	}

	te := resolver.Ctx.Modules[info.Module].Types.Get(int(resolver.Ctx.Modules[info.Module].Functions.Get(int(info.Internal)).TypeIndex))
	results := make([]Value, info.ResultsCount)
	for i := info.ResultsCount - 1; i >= 0; i-- {
		results[i] = valueFromType(te.Results[i], t.tc.Stack.PopRaw())
	}
	return results, nil
}

// AddressOfCallback hands back a native-callable function pointer for a
// module-local function by its public index (spec.md §6.2
// address_of_callback): the result is stable for the lifetime of the
// thread (runtime.ThreadContext.Callbacks).
func (t *Thread) AddressOfCallback(moduleIndex, publicIndex uint32) (uintptr, error) {
	info, err := t.resolver.ResolveFunctionIndex(moduleIndex, publicIndex)
	if err != nil {
		return 0, err
	}
	return t.tc.External.(*bridge.Linker).AddressOfCallback(t.tc, info.Module, info.Internal)
}

// runCallback re-enters the dispatch loop for a native-to-VM callback
// (spec.md §4.5): push args, run the callee's frame to completion on the
// same thread it was registered against, and return its single raw
// result (native callbacks are not offered a multi-result ABI).
func runCallback(resolver *engine.Resolver, tc *runtime.ThreadContext, key runtime.CallbackKey, args []uint64) (uint64, error) {
	info := resolver.Function(key.Module, key.FunctionInternal)
	for _, a := range args {
		tc.Stack.PushRaw(a)
	}

	savedPC := tc.PC
	returnPC := runtime.PC{}.WithEndOfCall()
	runtime.CreateFrame(tc.Stack, tc.Chain, runtime.FrameFunction, info.LocalListIndex,
		info.LocalRegionLen, info.ParamsCount, info.ResultsCount, returnPC, 0, info.Module, info.Internal, info.ParamOffsets)
	tc.PC = runtime.PC{Module: info.Module, Function: info.Internal, Address: 0}

	code, ok := dispatch.Run(tc, resolver, tc.External.(*bridge.Linker))
	tc.PC = savedPC
	if !ok {
		return 0, runtime.NewTrap(code)
	}
	if info.ResultsCount == 0 {
		return 0, nil
	}
	return tc.Stack.PopRaw(), nil
}
