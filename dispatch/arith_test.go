package dispatch

import (
	"testing"

	"github.com/xyproto/sxvm/runtime"
)

func newCtx() *Ctx {
	return &Ctx{Thread: runtime.NewThreadContext(nil, nil)}
}

func TestArithI32(t *testing.T) {
	cases := []struct {
		name string
		op   Opcode
		lhs  int32
		rhs  int32
		want int32
	}{
		{"add", OpI32Add, 3, 4, 7},
		{"sub", OpI32Sub, 10, 4, 6},
		{"mul", OpI32Mul, 6, 7, 42},
		{"div_s", OpI32DivS, -7, 2, -3},
		{"div_u", OpI32DivU, -2, 2, 0x7FFFFFFF}, // (2^32-2)/2
		{"rem_s", OpI32RemS, -7, 2, -1},
		{"rem_u", OpI32RemU, -1, 10, 5}, // (2^32-1) % 10
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx()
			ctx.Thread.Stack.PushI32(c.lhs)
			ctx.Thread.Stack.PushI32(c.rhs)
			v := handlerTable[c.op](ctx, nil)
			if v.Kind != VMove {
				t.Fatalf("got verdict %v, want Move", v.Kind)
			}
			if got := ctx.Thread.Stack.PopI32(); got != c.want {
				t.Fatalf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestArithI32DivByZeroTraps(t *testing.T) {
	ops := []Opcode{OpI32DivS, OpI32DivU, OpI32RemS, OpI32RemU}
	for _, op := range ops {
		ctx := newCtx()
		ctx.Thread.Stack.PushI32(1)
		ctx.Thread.Stack.PushI32(0)
		v := handlerTable[op](ctx, nil)
		if v.Kind != VTerminate || v.Code != runtime.TermDivideByZero {
			t.Fatalf("op %d: got verdict %+v, want Terminate(TermDivideByZero)", op, v)
		}
	}
}

func TestArithI32IncDec(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(10)
	v := handlerTable[OpI32Inc](ctx, []byte{5, 0, 0, 0})
	if v.Kind != VMove || v.Delta != 4 {
		t.Fatalf("got verdict %+v, want Move(4)", v)
	}
	if got := ctx.Thread.Stack.PopI32(); got != 15 {
		t.Fatalf("inc: got %d, want 15", got)
	}

	ctx.Thread.Stack.PushI32(10)
	handlerTable[OpI32Dec](ctx, []byte{3, 0, 0, 0})
	if got := ctx.Thread.Stack.PopI32(); got != 7 {
		t.Fatalf("dec: got %d, want 7", got)
	}
}

func TestArithI32Neg(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(5)
	handlerTable[OpI32Neg](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != -5 {
		t.Fatalf("got %d, want -5", got)
	}
}

func TestArithI64(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI64(100)
	ctx.Thread.Stack.PushI64(8)
	handlerTable[OpI64DivS](ctx, nil)
	if got := ctx.Thread.Stack.PopI64(); got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
}

func TestArithI64DivByZeroTraps(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI64(1)
	ctx.Thread.Stack.PushI64(0)
	v := handlerTable[OpI64DivU](ctx, nil)
	if v.Kind != VTerminate || v.Code != runtime.TermDivideByZero {
		t.Fatalf("got verdict %+v, want Terminate(TermDivideByZero)", v)
	}
}

func TestArithFloat(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF32(1.5)
	ctx.Thread.Stack.PushF32(2.5)
	handlerTable[OpF32Add](ctx, nil)
	if got := ctx.Thread.Stack.PopF32(); got != 4 {
		t.Fatalf("f32 add: got %v, want 4", got)
	}

	ctx.Thread.Stack.PushF64(-3)
	handlerTable[OpF64Abs](ctx, nil)
	if got := ctx.Thread.Stack.PopF64(); got != 3 {
		t.Fatalf("f64 abs: got %v, want 3", got)
	}
}
