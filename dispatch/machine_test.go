package dispatch

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/xyproto/sxvm/runtime"
)

func newMachineCtx() *Ctx {
	tc := runtime.NewThreadContext([]*runtime.ModuleInstance{{Memory: runtime.NewMemory()}}, nil)
	return &Ctx{Thread: tc, Module: 0}
}

func TestPushImmediates(t *testing.T) {
	ctx := newMachineCtx()

	buf32 := make([]byte, 8)
	neg7 := int32(-7)
	binary.LittleEndian.PutUint32(buf32[2:], uint32(neg7))
	v := handlerTable[OpPushI32](ctx, buf32)
	if v.Kind != VMove || v.Delta != 8 {
		t.Fatalf("got verdict %+v, want Move(8)", v)
	}
	if got := ctx.Thread.Stack.PopI32(); got != -7 {
		t.Fatalf("got %d, want -7", got)
	}

	buf64 := make([]byte, 12)
	negOne := int64(-1)
	binary.LittleEndian.PutUint64(buf64[2:], uint64(negOne))
	v = handlerTable[OpPushI64](ctx, buf64)
	if v.Kind != VMove || v.Delta != 12 {
		t.Fatalf("got verdict %+v, want Move(12)", v)
	}
	if got := ctx.Thread.Stack.PopI64(); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}

	bufF32 := make([]byte, 8)
	binary.LittleEndian.PutUint32(bufF32[2:], math.Float32bits(3.5))
	handlerTable[OpPushF32](ctx, bufF32)
	if got := ctx.Thread.Stack.PopF32(); got != 3.5 {
		t.Fatalf("got %v, want 3.5", got)
	}

	bufF64 := make([]byte, 12)
	binary.LittleEndian.PutUint64(bufF64[2:], math.Float64bits(2.25))
	handlerTable[OpPushF64](ctx, bufF64)
	if got := ctx.Thread.Stack.PopF64(); got != 2.25 {
		t.Fatalf("got %v, want 2.25", got)
	}
}

func TestDrop(t *testing.T) {
	ctx := newMachineCtx()
	ctx.Thread.Stack.PushI32(1)
	ctx.Thread.Stack.PushI32(2)
	v := handlerTable[OpDrop](ctx, nil)
	if v.Kind != VMove || v.Delta != 2 {
		t.Fatalf("got verdict %+v, want Move(2)", v)
	}
	if got := ctx.Thread.Stack.PopI32(); got != 1 {
		t.Fatalf("drop should discard the top value only: got %d, want 1", got)
	}
}

func TestMemoryResizeAndSize(t *testing.T) {
	ctx := newMachineCtx()

	ctx.Thread.Stack.PushI32(2)
	handlerTable[OpMemoryResize](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 0 {
		t.Fatalf("resize should push the old page count: got %d, want 0", got)
	}

	handlerTable[OpMemorySize](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 2 {
		t.Fatalf("got page count %d, want 2", got)
	}

	ctx.Thread.Stack.PushI32(1)
	handlerTable[OpMemoryResize](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 2 {
		t.Fatalf("resize should push the PREVIOUS page count: got %d, want 2", got)
	}
}

func TestTerminateUserCode(t *testing.T) {
	ctx := newMachineCtx()
	v := handlerTable[OpTerminate](ctx, []byte{0x05, 0x00})
	if v.Kind != VTerminate || v.Code != runtime.TermUserBase+5 {
		t.Fatalf("got verdict %+v, want Terminate(TermUserBase+5)", v)
	}
}
