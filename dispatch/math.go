package dispatch

import "math"

// Transcendental and rounding handlers (spec.md §4.4, §8). f32 variants
// promote to float64 for the underlying math call and demote the result;
// Go's float32<->float64 conversions are exact for the values these
// handlers operate on, so this never changes the observable result.
// math.Round is round-half-away-from-zero; math.RoundToEven is
// round-half-to-even (spec.md §8: f32_round_half_to_even(0.5)=0,
// (1.5)=2, (2.5)=2, (-0.5)=0 — exactly RoundToEven's behavior).

func registerMathHandlers() {
	handlerTable[OpF32Floor] = unaryF32(math.Floor)
	handlerTable[OpF32Ceil] = unaryF32(math.Ceil)
	handlerTable[OpF32Trunc] = unaryF32(math.Trunc)
	handlerTable[OpF32Fract] = unaryF32(func(v float64) float64 { return v - math.Trunc(v) })
	handlerTable[OpF32RoundHalfAway] = unaryF32(math.Round)
	handlerTable[OpF32RoundHalfEven] = unaryF32(math.RoundToEven)
	handlerTable[OpF32Sqrt] = unaryF32(math.Sqrt)
	handlerTable[OpF32Cbrt] = unaryF32(math.Cbrt)
	handlerTable[OpF32Exp] = unaryF32(math.Exp)
	handlerTable[OpF32Exp2] = unaryF32(math.Exp2)
	handlerTable[OpF32Ln] = unaryF32(math.Log)
	handlerTable[OpF32Log] = unaryF32(math.Log)
	handlerTable[OpF32Log2] = unaryF32(math.Log2)
	handlerTable[OpF32Log10] = unaryF32(math.Log10)
	handlerTable[OpF32Sin] = unaryF32(math.Sin)
	handlerTable[OpF32Cos] = unaryF32(math.Cos)
	handlerTable[OpF32Tan] = unaryF32(math.Tan)
	handlerTable[OpF32Asin] = unaryF32(math.Asin)
	handlerTable[OpF32Acos] = unaryF32(math.Acos)
	handlerTable[OpF32Atan] = unaryF32(math.Atan)
	handlerTable[OpF32Pow] = binaryF32(math.Pow)
	handlerTable[OpF32Copysign] = binaryF32(math.Copysign)
	handlerTable[OpF32Min] = binaryF32(math.Min)
	handlerTable[OpF32Max] = binaryF32(math.Max)

	handlerTable[OpF64Floor] = unaryF64(math.Floor)
	handlerTable[OpF64Ceil] = unaryF64(math.Ceil)
	handlerTable[OpF64Trunc] = unaryF64(math.Trunc)
	handlerTable[OpF64Fract] = unaryF64(func(v float64) float64 { return v - math.Trunc(v) })
	handlerTable[OpF64RoundHalfAway] = unaryF64(math.Round)
	handlerTable[OpF64RoundHalfEven] = unaryF64(math.RoundToEven)
	handlerTable[OpF64Sqrt] = unaryF64(math.Sqrt)
	handlerTable[OpF64Cbrt] = unaryF64(math.Cbrt)
	handlerTable[OpF64Exp] = unaryF64(math.Exp)
	handlerTable[OpF64Exp2] = unaryF64(math.Exp2)
	handlerTable[OpF64Ln] = unaryF64(math.Log)
	handlerTable[OpF64Log] = unaryF64(math.Log)
	handlerTable[OpF64Log2] = unaryF64(math.Log2)
	handlerTable[OpF64Log10] = unaryF64(math.Log10)
	handlerTable[OpF64Sin] = unaryF64(math.Sin)
	handlerTable[OpF64Cos] = unaryF64(math.Cos)
	handlerTable[OpF64Tan] = unaryF64(math.Tan)
	handlerTable[OpF64Asin] = unaryF64(math.Asin)
	handlerTable[OpF64Acos] = unaryF64(math.Acos)
	handlerTable[OpF64Atan] = unaryF64(math.Atan)
	handlerTable[OpF64Pow] = binaryF64(math.Pow)
	handlerTable[OpF64Copysign] = binaryF64(math.Copysign)
	handlerTable[OpF64Min] = binaryF64(math.Min)
	handlerTable[OpF64Max] = binaryF64(math.Max)
}

func unaryF32(fn func(float64) float64) Handler {
	return func(ctx *Ctx, b []byte) Verdict {
		v := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(float32(fn(float64(v))))
		return Move(2)
	}
}

func binaryF32(fn func(a, b float64) float64) Handler {
	return func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(float32(fn(float64(lhs), float64(rhs))))
		return Move(2)
	}
}

func unaryF64(fn func(float64) float64) Handler {
	return func(ctx *Ctx, b []byte) Verdict {
		v := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(fn(v))
		return Move(2)
	}
}

func binaryF64(fn func(a, b float64) float64) Handler {
	return func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(fn(lhs, rhs))
		return Move(2)
	}
}
