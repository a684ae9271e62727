package dispatch

import (
	"math"
	"testing"
)

func TestCompareI32(t *testing.T) {
	cases := []struct {
		name string
		op   Opcode
		lhs  int32
		rhs  int32
		want int32
	}{
		{"eq true", OpI32Eq, 3, 3, 1},
		{"eq false", OpI32Eq, 3, 4, 0},
		{"ne", OpI32Ne, 3, 4, 1},
		{"lt_s", OpI32LtS, -1, 1, 1},
		{"lt_u", OpI32LtU, -1, 1, 0}, // -1 as u32 is huge, not < 1
		{"gt_s", OpI32GtS, 5, 2, 1},
		{"le_s", OpI32LeS, 2, 2, 1},
		{"ge_u", OpI32GeU, -1, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx()
			ctx.Thread.Stack.PushI32(c.lhs)
			ctx.Thread.Stack.PushI32(c.rhs)
			handlerTable[c.op](ctx, nil)
			if got := ctx.Thread.Stack.PopI32(); got != c.want {
				t.Fatalf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestCompareFloatNaN(t *testing.T) {
	nan := float32(math.NaN())
	cases := []struct {
		name string
		op   Opcode
		want int32
	}{
		{"eq", OpF32Eq, 0},
		{"ne", OpF32Ne, 1},
		{"lt", OpF32Lt, 0},
		{"gt", OpF32Gt, 0},
		{"le", OpF32Le, 0},
		{"ge", OpF32Ge, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx()
			ctx.Thread.Stack.PushF32(nan)
			ctx.Thread.Stack.PushF32(1.0)
			handlerTable[c.op](ctx, nil)
			if got := ctx.Thread.Stack.PopI32(); got != c.want {
				t.Fatalf("got %d, want %d (NaN comparisons must be false except ne)", got, c.want)
			}
		})
	}
}
