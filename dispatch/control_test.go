package dispatch

import (
	"encoding/binary"
	"testing"

	"github.com/xyproto/sxvm/image"
	"github.com/xyproto/sxvm/runtime"
)

// fakeResolver is a bare in-memory stand-in for engine.Resolver, keyed by
// internal function index within a single implicit module (0) — enough to
// drive dispatch.Run without the image/engine machinery.
type fakeResolver struct {
	functions map[uint32]FunctionInfo
	externals map[uint32]ExternalInfo
	blocks    map[uint32]BlockInfo
}

func (r *fakeResolver) Function(module, internal uint32) FunctionInfo { return r.functions[internal] }

func (r *fakeResolver) ResolveFunctionIndex(callerModule, publicIndex uint32) (FunctionInfo, error) {
	return r.functions[publicIndex], nil
}

func (r *fakeResolver) ResolveDataIndex(callerModule, publicIndex uint32) (image.SegmentKind, uint32, uint32, error) {
	return image.SegmentReadOnly, 0, 0, nil
}

func (r *fakeResolver) ResolveExternalFunction(callerModule, externalFunctionIndex uint32) (ExternalInfo, error) {
	return r.externals[externalFunctionIndex], nil
}

func (r *fakeResolver) BlockType(callerModule, typeIndex, localListIndex uint32) BlockInfo {
	return r.blocks[localListIndex]
}

func opBytes(op Opcode, rest ...byte) []byte {
	buf := make([]byte, 2, 2+len(rest))
	binary.LittleEndian.PutUint16(buf, uint16(op))
	return append(buf, rest...)
}

func u16b(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32b(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }
func i32b(v int32) []byte  { return u32b(uint32(v)) }

func opPushI32(v int32) []byte { return opBytes(OpPushI32, append(u16b(0), i32b(v)...)...) }
func opEnd() []byte             { return opBytes(OpEnd) }
func opCall(publicIndex uint32) []byte {
	return opBytes(OpCall, append(u16b(0), u32b(publicIndex)...)...)
}
func opDynCall() []byte { return opBytes(OpDynCall) }
func opExtCall(externalIndex uint32) []byte {
	return opBytes(OpExtCall, append(u16b(0), u32b(externalIndex)...)...)
}
func opHostAddrFunction(publicIndex uint32) []byte {
	return opBytes(OpHostAddrFunction, append(u16b(0), u32b(publicIndex)...)...)
}
func opLocalLoadI32(layers, offset uint16) []byte {
	return opBytes(OpLocalLoadI32, append(append(u16b(layers), u16b(offset)...), u16b(0)...)...)
}
func opBlock(typeIndex, localListIndex uint16) []byte {
	return opBytes(OpBlock, append(append(u16b(typeIndex), u16b(localListIndex)...), u16b(0)...)...)
}

// newRunnerThread builds a thread with one active outermost function
// frame, ready for dispatch.Run, mirroring sxvm.Thread.CallFunction's setup.
func newRunnerThread(resultsCount int) *runtime.ThreadContext {
	tc := runtime.NewThreadContext(nil, nil)
	runtime.CreateFrame(tc.Stack, tc.Chain, runtime.FrameFunction, 0, 0, 0, resultsCount, runtime.PC{}.WithEndOfCall(), 0, 0, 0, nil)
	tc.PC = runtime.PC{Module: 0, Function: 0, Address: 0}
	return tc
}

func TestCallEntersAndReturns(t *testing.T) {
	// function 0: push 21, call function 1 (doubles its argument), end.
	fn0 := append(append(opPushI32(21), opCall(1)...), opEnd()...)
	// function 1: load param, push 2, multiply, end.
	fn1 := append(append(opLocalLoadI32(0, 0), opPushI32(2)...), opBytes(OpI32Mul)...)
	fn1 = append(fn1, opEnd()...)

	resolver := &fakeResolver{functions: map[uint32]FunctionInfo{
		0: {Module: 0, Internal: 0, Code: fn0, ResultsCount: 1},
		1: {Module: 0, Internal: 1, Code: fn1, ParamsCount: 1, ResultsCount: 1, LocalRegionLen: 8, ParamOffsets: []int{0}},
	}}

	tc := newRunnerThread(1)
	code, ok := Run(tc, resolver, nil)
	if !ok {
		t.Fatalf("unexpected trap, code %d", code)
	}
	if got := tc.Stack.PopI32(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestDynCallReadsTargetFromStack(t *testing.T) {
	// function 0: push argument 5, push function-1's public index, dyncall, end.
	fn0 := append(append(opPushI32(5), opPushI32(1)...), opDynCall()...)
	fn0 = append(fn0, opEnd()...)
	fn1 := append(append(opLocalLoadI32(0, 0), opPushI32(10)...), opBytes(OpI32Add)...)
	fn1 = append(fn1, opEnd()...)

	resolver := &fakeResolver{functions: map[uint32]FunctionInfo{
		0: {Module: 0, Internal: 0, Code: fn0, ResultsCount: 1},
		1: {Module: 0, Internal: 1, Code: fn1, ParamsCount: 1, ResultsCount: 1, LocalRegionLen: 8, ParamOffsets: []int{0}},
	}}

	tc := newRunnerThread(1)
	code, ok := Run(tc, resolver, nil)
	if !ok {
		t.Fatalf("unexpected trap, code %d", code)
	}
	if got := tc.Stack.PopI32(); got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

func TestBlockFallthroughEndResumesAfterBlock(t *testing.T) {
	// function 0: block(type 0, locals 0) { push 5 } end, push 1, i32.add, end.
	// The block's own `end` is reached by fallthrough, never by break: this
	// regression-tests that its teardown resumes right after it instead of
	// jumping to address 0.
	var fn0 []byte
	fn0 = append(fn0, opBlock(0, 0)...)
	fn0 = append(fn0, opPushI32(5)...)
	fn0 = append(fn0, opEnd()...) // block's end
	fn0 = append(fn0, opPushI32(1)...)
	fn0 = append(fn0, opBytes(OpI32Add)...)
	fn0 = append(fn0, opEnd()...) // function's end

	resolver := &fakeResolver{
		functions: map[uint32]FunctionInfo{0: {Module: 0, Internal: 0, Code: fn0, ResultsCount: 1}},
		blocks:    map[uint32]BlockInfo{0: {ResultsCount: 1}},
	}

	tc := newRunnerThread(1)
	code, ok := Run(tc, resolver, nil)
	if !ok {
		t.Fatalf("unexpected trap, code %d", code)
	}
	if got := tc.Stack.PopI32(); got != 6 {
		t.Fatalf("got %d, want 6 (block pushed 5, then +1 after the block)", got)
	}
}

func TestExtCallGetuid(t *testing.T) {
	// function 0: extcall(external 0), end. Models spec.md S5 (getuid).
	fn0 := append(opExtCall(0), opEnd()...)
	resolver := &fakeResolver{
		functions: map[uint32]FunctionInfo{0: {Module: 0, Internal: 0, Code: fn0, ResultsCount: 1}},
		externals: map[uint32]ExternalInfo{0: {UnifiedIndex: 7, ResultTypes: []image.DataType{image.TypeI32}}},
	}

	tc := newRunnerThread(1)
	tc.External = externalCallerFunc(func(unifiedIndex uint32, args []uint64) ([]uint64, error) {
		if unifiedIndex != 7 {
			t.Fatalf("unexpected unified index %d", unifiedIndex)
		}
		return []uint64{uint64(uint32(1000))}, nil
	})

	code, ok := Run(tc, resolver, nil)
	if !ok {
		t.Fatalf("unexpected trap, code %d", code)
	}
	if got := tc.Stack.PopI32(); got != 1000 {
		t.Fatalf("got %d, want 1000", got)
	}
}

// externalCallerFunc adapts a plain function to runtime.ExternalCaller.
type externalCallerFunc func(unifiedIndex uint32, args []uint64) ([]uint64, error)

func (f externalCallerFunc) CallExternal(unifiedIndex uint32, args []uint64) ([]uint64, error) {
	return f(unifiedIndex, args)
}

// fakeCallbackGen hands out an opaque token encoding (module, function)
// instead of a real native trampoline address — enough to drive
// host_addr_function and exercise the thread's callback cache, without
// involving cgo.
type fakeCallbackGen struct{}

func (fakeCallbackGen) AddressOfCallback(thread *runtime.ThreadContext, module, functionInternal uint32) (uintptr, error) {
	return uintptr(module)<<32 | uintptr(functionInternal), nil
}

// TestCallbackRoundTrip models spec.md S6 (do_something(cb, 11, 13) == 35
// where cb(x) = x*2): the "native" side is simulated by decoding the
// callback token and re-entering dispatch.Run on the same thread, mirroring
// sxvm.go's runCallback — the real bridge package does this through cgo,
// which cannot be exercised without the Go toolchain.
func TestCallbackRoundTrip(t *testing.T) {
	// function 0 ("main"): host_addr_function(1), push 11, push 13,
	// extcall(0) [do_something], end.
	fn0 := opHostAddrFunction(1)
	fn0 = append(fn0, opPushI32(11)...)
	fn0 = append(fn0, opPushI32(13)...)
	fn0 = append(fn0, opExtCall(0)...)
	fn0 = append(fn0, opEnd()...)

	// function 1 ("cb"): load param, push 2, multiply, end.
	fn1 := append(append(opLocalLoadI32(0, 0), opPushI32(2)...), opBytes(OpI32Mul)...)
	fn1 = append(fn1, opEnd()...)

	resolver := &fakeResolver{
		functions: map[uint32]FunctionInfo{
			0: {Module: 0, Internal: 0, Code: fn0, ResultsCount: 1},
			1: {Module: 0, Internal: 1, Code: fn1, ParamsCount: 1, ResultsCount: 1, LocalRegionLen: 8, ParamOffsets: []int{0}},
		},
		externals: map[uint32]ExternalInfo{
			0: {UnifiedIndex: 42, ParamTypes: []image.DataType{image.TypeI64, image.TypeI32, image.TypeI32}, ResultTypes: []image.DataType{image.TypeI32}},
		},
	}
	cbGen := fakeCallbackGen{}

	tc := newRunnerThread(1)
	tc.External = externalCallerFunc(func(unifiedIndex uint32, args []uint64) ([]uint64, error) {
		if unifiedIndex != 42 {
			t.Fatalf("unexpected unified index %d", unifiedIndex)
		}
		token, a, b := args[0], uint32(args[1]), uint32(args[2])
		module, fn := uint32(token>>32), uint32(token)

		info := resolver.Function(module, fn)
		tc.Stack.PushRaw(uint64(a))
		savedPC := tc.PC
		returnPC := runtime.PC{}.WithEndOfCall()
		runtime.CreateFrame(tc.Stack, tc.Chain, runtime.FrameFunction, info.LocalListIndex,
			info.LocalRegionLen, info.ParamsCount, info.ResultsCount, returnPC, 0, info.Module, info.Internal, info.ParamOffsets)
		tc.PC = runtime.PC{Module: info.Module, Function: info.Internal, Address: 0}

		code, ok := Run(tc, resolver, cbGen)
		tc.PC = savedPC
		if !ok {
			t.Fatalf("callback trapped, code %d", code)
		}
		cbResult := uint32(tc.Stack.PopI32())
		return []uint64{uint64(cbResult + b)}, nil
	})

	code, ok := Run(tc, resolver, cbGen)
	if !ok {
		t.Fatalf("unexpected trap, code %d", code)
	}
	if got := tc.Stack.PopI32(); got != 35 {
		t.Fatalf("got %d, want 35", got)
	}
}
