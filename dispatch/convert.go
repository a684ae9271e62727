package dispatch

import (
	"math"

	"github.com/xyproto/sxvm/runtime"
)

// Conversion handlers (spec.md §4.4, resolved Open Question: float-to-int
// conversion traps on NaN/infinity/out-of-range rather than saturating,
// matching the source project's fixed-width wrapping semantics for integer
// ops elsewhere). Int-widening and float-widening conversions never trap.

func registerConvertHandlers() {
	handlerTable[OpI64TruncToI32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI32(int32(ctx.Thread.Stack.PopI64()))
		return Move(2)
	}
	handlerTable[OpI32ExtendUToI64] = func(ctx *Ctx, b []byte) Verdict {
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI64(int64(uint64(v)))
		return Move(2)
	}
	handlerTable[OpI32ExtendSToI64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI64(int64(ctx.Thread.Stack.PopI32()))
		return Move(2)
	}
	handlerTable[OpF64DemoteToF32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(float32(ctx.Thread.Stack.PopF64()))
		return Move(2)
	}
	handlerTable[OpF32PromoteToF64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(float64(ctx.Thread.Stack.PopF32()))
		return Move(2)
	}

	handlerTable[OpF32ToI32S] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntS32(ctx, float64(ctx.Thread.Stack.PopF32()))
	}
	handlerTable[OpF32ToI32U] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntU32(ctx, float64(ctx.Thread.Stack.PopF32()))
	}
	handlerTable[OpF32ToI64S] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntS64(ctx, float64(ctx.Thread.Stack.PopF32()))
	}
	handlerTable[OpF32ToI64U] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntU64(ctx, float64(ctx.Thread.Stack.PopF32()))
	}
	handlerTable[OpF64ToI32S] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntS32(ctx, ctx.Thread.Stack.PopF64())
	}
	handlerTable[OpF64ToI32U] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntU32(ctx, ctx.Thread.Stack.PopF64())
	}
	handlerTable[OpF64ToI64S] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntS64(ctx, ctx.Thread.Stack.PopF64())
	}
	handlerTable[OpF64ToI64U] = func(ctx *Ctx, b []byte) Verdict {
		return floatToIntU64(ctx, ctx.Thread.Stack.PopF64())
	}

	handlerTable[OpI32SToF32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(float32(ctx.Thread.Stack.PopI32()))
		return Move(2)
	}
	handlerTable[OpI32UToF32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(float32(uint32(ctx.Thread.Stack.PopI32())))
		return Move(2)
	}
	handlerTable[OpI64SToF32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(float32(ctx.Thread.Stack.PopI64()))
		return Move(2)
	}
	handlerTable[OpI64UToF32] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(float32(uint64(ctx.Thread.Stack.PopI64())))
		return Move(2)
	}
	handlerTable[OpI32SToF64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(float64(ctx.Thread.Stack.PopI32()))
		return Move(2)
	}
	handlerTable[OpI32UToF64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(float64(uint32(ctx.Thread.Stack.PopI32())))
		return Move(2)
	}
	handlerTable[OpI64SToF64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(float64(ctx.Thread.Stack.PopI64()))
		return Move(2)
	}
	handlerTable[OpI64UToF64] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(float64(uint64(ctx.Thread.Stack.PopI64())))
		return Move(2)
	}
}

func floatToIntS32(ctx *Ctx, v float64) Verdict {
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushI32(int32(v))
	return Move(2)
}

func floatToIntU32(ctx *Ctx, v float64) Verdict {
	if math.IsNaN(v) || v < 0 || v > math.MaxUint32 {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushI32(int32(uint32(v)))
	return Move(2)
}

func floatToIntS64(ctx *Ctx, v float64) Verdict {
	if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushI64(int64(v))
	return Move(2)
}

func floatToIntU64(ctx *Ctx, v float64) Verdict {
	if math.IsNaN(v) || v < 0 || v >= math.MaxUint64 {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushI64(int64(uint64(v)))
	return Move(2)
}
