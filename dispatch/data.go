package dispatch

import "github.com/xyproto/sxvm/runtime"

// resolveStaticDatum resolves the static data-access instruction shape
// (pad:u16, public_index:u32, offset:u16, pad:u16) to the segment and
// internal index it addresses (spec.md §3.4, §4.4).
func resolveStaticDatum(ctx *Ctx, b []byte) (*runtime.Segment, int, uint16, error) {
	publicIndex := u32At(b, 2)
	offset := u16At(b, 6)
	kind, internalIndex, targetModule, err := ctx.Resolver.ResolveDataIndex(ctx.Module, publicIndex)
	if err != nil {
		return nil, 0, 0, err
	}
	seg := ctx.moduleInstance(targetModule).SegmentByKind(kind)
	return seg, int(internalIndex), offset, nil
}

func asTrapCode(err error) runtime.TerminationCode {
	if t, ok := err.(*runtime.Trap); ok {
		return t.Code
	}
	return runtime.TermBoundsViolation
}

func hDataLoadI32(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadI32(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(v)
	return Move(12)
}

func hDataLoadI64(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadI64(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI64(v)
	return Move(12)
}

func hDataLoadF32(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadF32(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushF32(v)
	return Move(12)
}

func hDataLoadF64(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadF64(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushF64(v)
	return Move(12)
}

func hDataLoadU8(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadU8(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(int32(v))
	return Move(12)
}

func hDataLoadU16(ctx *Ctx, b []byte) Verdict {
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	v, err := seg.LoadU16(idx, uint32(off))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(int32(v))
	return Move(12)
}

func hDataStoreI32(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreI32(idx, uint32(off), v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

func hDataStoreI64(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI64()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreI64(idx, uint32(off), v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

func hDataStoreF32(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopF32()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreF32(idx, uint32(off), v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

func hDataStoreF64(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopF64()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreF64(idx, uint32(off), v); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

func hDataStoreI8(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreI8(idx, uint32(off), int8(v)); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

func hDataStoreI16(ctx *Ctx, b []byte) Verdict {
	v := ctx.Thread.Stack.PopI32()
	seg, idx, off, err := resolveStaticDatum(ctx, b)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if err := seg.StoreI16(idx, uint32(off), int16(v)); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(12)
}

// Dynamic form: module, public_index and offset come off the stack, top
// to bottom (offset on top), rather than from immediates.
func hDataLoadDynI32(ctx *Ctx, b []byte) Verdict {
	offset := uint32(ctx.Thread.Stack.PopI32())
	publicIndex := uint32(ctx.Thread.Stack.PopI32())
	callerModule := uint32(ctx.Thread.Stack.PopI32())
	kind, internalIndex, targetModule, err := ctx.Resolver.ResolveDataIndex(callerModule, publicIndex)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	seg := ctx.moduleInstance(targetModule).SegmentByKind(kind)
	v, err := seg.LoadI32(int(internalIndex), offset)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	ctx.Thread.Stack.PushI32(v)
	return Move(2)
}

func hDataStoreDynI32(ctx *Ctx, b []byte) Verdict {
	value := ctx.Thread.Stack.PopI32()
	offset := uint32(ctx.Thread.Stack.PopI32())
	publicIndex := uint32(ctx.Thread.Stack.PopI32())
	callerModule := uint32(ctx.Thread.Stack.PopI32())
	kind, internalIndex, targetModule, err := ctx.Resolver.ResolveDataIndex(callerModule, publicIndex)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	seg := ctx.moduleInstance(targetModule).SegmentByKind(kind)
	if err := seg.StoreI32(int(internalIndex), offset, value); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(2)
}
