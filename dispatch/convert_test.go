package dispatch

import (
	"math"
	"testing"

	"github.com/xyproto/sxvm/runtime"
)

func TestConvertWidening(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(-1)
	handlerTable[OpI32ExtendSToI64](ctx, nil)
	if got := ctx.Thread.Stack.PopI64(); got != -1 {
		t.Fatalf("extend_s: got %d, want -1", got)
	}

	ctx.Thread.Stack.PushI32(-1)
	handlerTable[OpI32ExtendUToI64](ctx, nil)
	if got := ctx.Thread.Stack.PopI64(); got != 0xFFFFFFFF {
		t.Fatalf("extend_u: got %#x, want %#x", got, 0xFFFFFFFF)
	}

	ctx.Thread.Stack.PushI64(0x1_0000_0001)
	handlerTable[OpI64TruncToI32](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 1 {
		t.Fatalf("trunc: got %d, want 1", got)
	}
}

func TestConvertIntToFloat(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(42)
	handlerTable[OpI32SToF64](ctx, nil)
	if got := ctx.Thread.Stack.PopF64(); got != 42 {
		t.Fatalf("got %v, want 42", got)
	}

	ctx.Thread.Stack.PushI32(-1)
	handlerTable[OpI32UToF64](ctx, nil)
	if got := ctx.Thread.Stack.PopF64(); got != float64(uint32(0xFFFFFFFF)) {
		t.Fatalf("got %v, want %v", got, float64(uint32(0xFFFFFFFF)))
	}
}

func TestConvertFloatToIntInRange(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF64(3.9)
	v := handlerTable[OpF64ToI32S](ctx, nil)
	if v.Kind != VMove {
		t.Fatalf("got verdict %+v, want Move", v)
	}
	if got := ctx.Thread.Stack.PopI32(); got != 3 {
		t.Fatalf("got %d, want 3 (trunc toward zero)", got)
	}
}

func TestConvertFloatToIntTrapsOnNaN(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF64(math.NaN())
	v := handlerTable[OpF64ToI32S](ctx, nil)
	if v.Kind != VTerminate || v.Code != runtime.TermBoundsViolation {
		t.Fatalf("got verdict %+v, want Terminate(TermBoundsViolation)", v)
	}
}

func TestConvertFloatToIntTrapsOnOutOfRange(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF64(1e20)
	v := handlerTable[OpF64ToI32S](ctx, nil)
	if v.Kind != VTerminate || v.Code != runtime.TermBoundsViolation {
		t.Fatalf("got verdict %+v, want Terminate(TermBoundsViolation)", v)
	}
}

func TestConvertFloatToUintTrapsOnNegative(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF64(-1)
	v := handlerTable[OpF64ToI32U](ctx, nil)
	if v.Kind != VTerminate || v.Code != runtime.TermBoundsViolation {
		t.Fatalf("got verdict %+v, want Terminate(TermBoundsViolation)", v)
	}
}
