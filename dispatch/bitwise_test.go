package dispatch

import "testing"

func TestBitwiseI32(t *testing.T) {
	cases := []struct {
		name string
		op   Opcode
		lhs  int32
		rhs  int32
		want int32
	}{
		{"and", OpI32And, 0xF0, 0x3C, 0x30},
		{"or", OpI32Or, 0xF0, 0x0C, 0xFC},
		{"xor", OpI32Xor, 0xFF, 0x0F, 0xF0},
		{"shl", OpI32ShiftL, 1, 4, 16},
		{"shr_s", OpI32ShiftRS, -16, 2, -4},
		{"shr_u", OpI32ShiftRU, -16, 28, 15}, // top 4 bits of 0xFFFFFFF0 shifted in
		{"rotl", OpI32RotateL, 1, 1, 2},
		{"rotr", OpI32RotateR, 2, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx()
			ctx.Thread.Stack.PushI32(c.lhs)
			ctx.Thread.Stack.PushI32(c.rhs)
			handlerTable[c.op](ctx, nil)
			if got := ctx.Thread.Stack.PopI32(); got != c.want {
				t.Fatalf("got %#x, want %#x", got, c.want)
			}
		})
	}
}

func TestBitwiseI32Not(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(0)
	handlerTable[OpI32Not](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestBitwiseI32ClzCtzPopcount(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI32(1)
	handlerTable[OpI32Clz](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 31 {
		t.Fatalf("clz(1): got %d, want 31", got)
	}

	ctx.Thread.Stack.PushI32(8)
	handlerTable[OpI32Ctz](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 3 {
		t.Fatalf("ctz(8): got %d, want 3", got)
	}

	ctx.Thread.Stack.PushI32(0x0F)
	handlerTable[OpI32Popcount](ctx, nil)
	if got := ctx.Thread.Stack.PopI32(); got != 4 {
		t.Fatalf("popcount(0x0F): got %d, want 4", got)
	}
}

func TestBitwiseI64(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushI64(0xFF00)
	ctx.Thread.Stack.PushI64(0x0FF0)
	handlerTable[OpI64And](ctx, nil)
	if got := ctx.Thread.Stack.PopI64(); got != 0x0F00 {
		t.Fatalf("got %#x, want %#x", got, 0x0F00)
	}
}
