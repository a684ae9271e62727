package dispatch

// Memory access handlers (spec.md §4.4): the absolute address comes off
// the stack, the instruction carries only a 16-bit offset added to it.

func hMemoryLoadI32(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadI32(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(v)
	return Move(4)
}

func hMemoryLoadI64(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadI64(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI64(v)
	return Move(4)
}

func hMemoryLoadF32(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadF32(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushF32(v)
	return Move(4)
}

func hMemoryLoadF64(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadF64(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushF64(v)
	return Move(4)
}

func hMemoryLoadU8(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadU8(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(int32(v))
	return Move(4)
}

func hMemoryLoadU16(ctx *Ctx, b []byte) Verdict {
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	v, err := ctx.moduleInstance(ctx.Module).Memory.LoadU16(addr)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(int32(v))
	return Move(4)
}

func hMemoryStoreI32(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreI32(addr, v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}

func hMemoryStoreI64(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI64()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreI64(addr, v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}

func hMemoryStoreF32(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopF32()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreF32(addr, v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}

func hMemoryStoreF64(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopF64()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreF64(addr, v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}

func hMemoryStoreI8(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreI8(addr, int8(v)); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}

func hMemoryStoreI16(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(u16At(b, 0))
	if err := ctx.moduleInstance(ctx.Module).Memory.StoreI16(addr, int16(v)); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(4)
}
