package dispatch

import "math/bits"

// Bitwise handlers (spec.md §4.4): and/or/xor/not/shift/rotate/clz/ctz/
// popcount for i32/i64. Shift and rotate amounts are masked to the
// operand width, matching how the host CPU's shift instructions behave.

func registerBitwiseHandlers() {
	handlerTable[OpI32And] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs & rhs)
		return Move(2)
	}
	handlerTable[OpI32Or] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs | rhs)
		return Move(2)
	}
	handlerTable[OpI32Xor] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(lhs ^ rhs)
		return Move(2)
	}
	handlerTable[OpI32Not] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI32(^ctx.Thread.Stack.PopI32())
		return Move(2)
	}
	handlerTable[OpI32ShiftL] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint32(ctx.Thread.Stack.PopI32()) & 31
		v := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(v << amt)
		return Move(2)
	}
	handlerTable[OpI32ShiftRS] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint32(ctx.Thread.Stack.PopI32()) & 31
		v := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(v >> amt)
		return Move(2)
	}
	handlerTable[OpI32ShiftRU] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint32(ctx.Thread.Stack.PopI32()) & 31
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(v >> amt))
		return Move(2)
	}
	handlerTable[OpI32RotateL] = func(ctx *Ctx, b []byte) Verdict {
		amt := int(uint32(ctx.Thread.Stack.PopI32()) & 31)
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(bits.RotateLeft32(v, amt)))
		return Move(2)
	}
	handlerTable[OpI32RotateR] = func(ctx *Ctx, b []byte) Verdict {
		amt := int(uint32(ctx.Thread.Stack.PopI32()) & 31)
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(bits.RotateLeft32(v, -amt)))
		return Move(2)
	}
	handlerTable[OpI32Clz] = func(ctx *Ctx, b []byte) Verdict {
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(bits.LeadingZeros32(v)))
		return Move(2)
	}
	handlerTable[OpI32Ctz] = func(ctx *Ctx, b []byte) Verdict {
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(bits.TrailingZeros32(v)))
		return Move(2)
	}
	handlerTable[OpI32Popcount] = func(ctx *Ctx, b []byte) Verdict {
		v := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(int32(bits.OnesCount32(v)))
		return Move(2)
	}

	handlerTable[OpI64And] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs & rhs)
		return Move(2)
	}
	handlerTable[OpI64Or] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs | rhs)
		return Move(2)
	}
	handlerTable[OpI64Xor] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(lhs ^ rhs)
		return Move(2)
	}
	handlerTable[OpI64Not] = func(ctx *Ctx, b []byte) Verdict {
		ctx.Thread.Stack.PushI64(^ctx.Thread.Stack.PopI64())
		return Move(2)
	}
	handlerTable[OpI64ShiftL] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint64(ctx.Thread.Stack.PopI64()) & 63
		v := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(v << amt)
		return Move(2)
	}
	handlerTable[OpI64ShiftRS] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint64(ctx.Thread.Stack.PopI64()) & 63
		v := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI64(v >> amt)
		return Move(2)
	}
	handlerTable[OpI64ShiftRU] = func(ctx *Ctx, b []byte) Verdict {
		amt := uint64(ctx.Thread.Stack.PopI64()) & 63
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(v >> amt))
		return Move(2)
	}
	handlerTable[OpI64RotateL] = func(ctx *Ctx, b []byte) Verdict {
		amt := int(uint64(ctx.Thread.Stack.PopI64()) & 63)
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(bits.RotateLeft64(v, amt)))
		return Move(2)
	}
	handlerTable[OpI64RotateR] = func(ctx *Ctx, b []byte) Verdict {
		amt := int(uint64(ctx.Thread.Stack.PopI64()) & 63)
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(bits.RotateLeft64(v, -amt)))
		return Move(2)
	}
	handlerTable[OpI64Clz] = func(ctx *Ctx, b []byte) Verdict {
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(bits.LeadingZeros64(v)))
		return Move(2)
	}
	handlerTable[OpI64Ctz] = func(ctx *Ctx, b []byte) Verdict {
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(bits.TrailingZeros64(v)))
		return Move(2)
	}
	handlerTable[OpI64Popcount] = func(ctx *Ctx, b []byte) Verdict {
		v := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI64(int64(bits.OnesCount64(v)))
		return Move(2)
	}
}
