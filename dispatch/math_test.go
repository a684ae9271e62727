package dispatch

import "testing"

func TestMathRounding(t *testing.T) {
	cases := []struct {
		name string
		op   Opcode
		in   float64
		want float64
	}{
		{"floor", OpF64Floor, 1.7, 1},
		{"ceil", OpF64Ceil, 1.2, 2},
		{"trunc", OpF64Trunc, -1.7, -1},
		{"round_half_away 0.5", OpF64RoundHalfAway, 0.5, 1},
		{"round_half_even 0.5", OpF64RoundHalfEven, 0.5, 0},
		{"round_half_even 1.5", OpF64RoundHalfEven, 1.5, 2},
		{"round_half_even 2.5", OpF64RoundHalfEven, 2.5, 2},
		{"round_half_even -0.5", OpF64RoundHalfEven, -0.5, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx()
			ctx.Thread.Stack.PushF64(c.in)
			handlerTable[c.op](ctx, nil)
			if got := ctx.Thread.Stack.PopF64(); got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestMathSqrtAndPow(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF64(9)
	handlerTable[OpF64Sqrt](ctx, nil)
	if got := ctx.Thread.Stack.PopF64(); got != 3 {
		t.Fatalf("sqrt(9): got %v, want 3", got)
	}

	ctx.Thread.Stack.PushF64(2)
	ctx.Thread.Stack.PushF64(10)
	handlerTable[OpF64Pow](ctx, nil)
	if got := ctx.Thread.Stack.PopF64(); got != 1024 {
		t.Fatalf("pow(2,10): got %v, want 1024", got)
	}
}

func TestMathMinMaxF32(t *testing.T) {
	ctx := newCtx()
	ctx.Thread.Stack.PushF32(3)
	ctx.Thread.Stack.PushF32(7)
	handlerTable[OpF32Min](ctx, nil)
	if got := ctx.Thread.Stack.PopF32(); got != 3 {
		t.Fatalf("min: got %v, want 3", got)
	}

	ctx.Thread.Stack.PushF32(3)
	ctx.Thread.Stack.PushF32(7)
	handlerTable[OpF32Max](ctx, nil)
	if got := ctx.Thread.Stack.PopF32(); got != 7 {
		t.Fatalf("max: got %v, want 7", got)
	}
}
