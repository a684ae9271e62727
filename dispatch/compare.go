package dispatch

// Comparison handlers (spec.md §4.4, §8): every comparison pushes i32 0/1.
// Float comparisons follow IEEE 754 ordering directly via Go's native
// operators, which already give the required NaN behavior: eq/lt/gt/le/ge
// are false whenever either operand is NaN, and ne is true.

func b2i(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

func registerCompareHandlers() {
	handlerTable[OpI32Eq] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs == rhs))
		return Move(2)
	}
	handlerTable[OpI32Ne] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs != rhs))
		return Move(2)
	}
	handlerTable[OpI32LtS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpI32LtU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpI32GtS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpI32GtU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpI32LeS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpI32LeU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpI32GeS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI32()
		lhs := ctx.Thread.Stack.PopI32()
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}
	handlerTable[OpI32GeU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint32(ctx.Thread.Stack.PopI32())
		lhs := uint32(ctx.Thread.Stack.PopI32())
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}

	handlerTable[OpI64Eq] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs == rhs))
		return Move(2)
	}
	handlerTable[OpI64Ne] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs != rhs))
		return Move(2)
	}
	handlerTable[OpI64LtS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpI64LtU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpI64GtS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpI64GtU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpI64LeS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpI64LeU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpI64GeS] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopI64()
		lhs := ctx.Thread.Stack.PopI64()
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}
	handlerTable[OpI64GeU] = func(ctx *Ctx, b []byte) Verdict {
		rhs := uint64(ctx.Thread.Stack.PopI64())
		lhs := uint64(ctx.Thread.Stack.PopI64())
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}

	handlerTable[OpF32Eq] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs == rhs))
		return Move(2)
	}
	handlerTable[OpF32Ne] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs != rhs))
		return Move(2)
	}
	handlerTable[OpF32Lt] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpF32Gt] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpF32Le] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpF32Ge] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF32()
		lhs := ctx.Thread.Stack.PopF32()
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}

	handlerTable[OpF64Eq] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs == rhs))
		return Move(2)
	}
	handlerTable[OpF64Ne] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs != rhs))
		return Move(2)
	}
	handlerTable[OpF64Lt] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs < rhs))
		return Move(2)
	}
	handlerTable[OpF64Gt] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs > rhs))
		return Move(2)
	}
	handlerTable[OpF64Le] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs <= rhs))
		return Move(2)
	}
	handlerTable[OpF64Ge] = func(ctx *Ctx, b []byte) Verdict {
		rhs := ctx.Thread.Stack.PopF64()
		lhs := ctx.Thread.Stack.PopF64()
		ctx.Thread.Stack.PushI32(b2i(lhs >= rhs))
		return Move(2)
	}
}
