package dispatch

import "github.com/xyproto/sxvm/runtime"

// Arithmetic handlers (spec.md §4.4): add/sub/mul/div/rem/inc/dec/neg for
// i32/i64/f32/f64. Integer division traps on divide-by-zero (spec.md §7);
// MinInt/-1 wraps per two's-complement (spec.md §8: neg(neg(a))=a at MIN).

func registerArithHandlers() {
	handlerTable[OpI32Add] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs + rhs)
		return Move(2)
	}
	handlerTable[OpI32Sub] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs - rhs)
		return Move(2)
	}
	handlerTable[OpI32Mul] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs * rhs)
		return Move(2)
	}
	handlerTable[OpI32DivS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI32(lhs / rhs)
		return Move(2)
	}
	handlerTable[OpI32DivU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI32(int32(lhs / rhs))
		return Move(2)
	}
	handlerTable[OpI32RemS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI32(lhs % rhs)
		return Move(2)
	}
	handlerTable[OpI32RemU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI32(int32(lhs % rhs))
		return Move(2)
	}
	handlerTable[OpI32Inc] = func(ctx *Ctx, b []byte) Verdict {
		step := u16At(b, 0)
		v := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(v + int32(step))
		return Move(4)
	}
	handlerTable[OpI32Dec] = func(ctx *Ctx, b []byte) Verdict {
		step := u16At(b, 0)
		v := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(v - int32(step))
		return Move(4)
	}
	handlerTable[OpI32Neg] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI32(-ctx.Thread.Stack.PopI32())
		return Move(2)
	}

	handlerTable[OpI64Add] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs + rhs)
		return Move(2)
	}
	handlerTable[OpI64Sub] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs - rhs)
		return Move(2)
	}
	handlerTable[OpI64Mul] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs * rhs)
		return Move(2)
	}
	handlerTable[OpI64DivS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI64(lhs / rhs)
		return Move(2)
	}
	handlerTable[OpI64DivU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI64(int64(lhs / rhs))
		return Move(2)
	}
	handlerTable[OpI64RemS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI64(lhs % rhs)
		return Move(2)
	}
	handlerTable[OpI64RemU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		if rhs == 0 {
			return Terminate(runtime.TermDivideByZero)
		}
		ctx.Thread.Stack.PushI64(int64(lhs % rhs))
		return Move(2)
	}
	handlerTable[OpI64Inc] = func(ctx *Ctx, b []byte) Verdict {
		step := u16At(b, 0)
		v := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(v + int64(step))
		return Move(4)
	}
	handlerTable[OpI64Dec] = func(ctx *Ctx, b []byte) Verdict {
		step := u16At(b, 0)
		v := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(v - int64(step))
		return Move(4)
	}
	handlerTable[OpI64Neg] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI64(-ctx.Thread.Stack.PopI64())
		return Move(2)
	}

	handlerTable[OpF32Add] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(lhs + rhs)
		return Move(2)
	}
	handlerTable[OpF32Sub] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(lhs - rhs)
		return Move(2)
	}
	handlerTable[OpF32Mul] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(lhs * rhs)
		return Move(2)
	}
	handlerTable[OpF32Div] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushF32(lhs / rhs)
		return Move(2)
	}
	handlerTable[OpF32Abs] = func(ctx *Ctx, b []byte) Verdict {
		v := ctx.Thread.Stack.PopF32()
		if v < 0 {
			v = -v
		}
		ctx.Thread.Stack.PushF32(v)
		return Move(2)
	}
	handlerTable[OpF32Neg] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF32(-ctx.Thread.Stack.PopF32())
		return Move(2)
	}

	handlerTable[OpF64Add] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(lhs + rhs)
		return Move(2)
	}
	handlerTable[OpF64Sub] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(lhs - rhs)
		return Move(2)
	}
	handlerTable[OpF64Mul] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(lhs * rhs)
		return Move(2)
	}
	handlerTable[OpF64Div] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushF64(lhs / rhs)
		return Move(2)
	}
	handlerTable[OpF64Abs] = func(ctx *Ctx, b []byte) Verdict {
		v := ctx.Thread.Stack.PopF64()
		if v < 0 {
			v = -v
		}
		ctx.Thread.Stack.PushF64(v)
		return Move(2)
	}
	handlerTable[OpF64Neg] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushF64(-ctx.Thread.Stack.PopF64())
		return Move(2)
	}
}
