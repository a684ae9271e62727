package dispatch

import "github.com/xyproto/sxvm/runtime"

// Host & machine handlers that don't fit the local/data/memory/control
// families: nop, terminate, the push immediates, drop, memory size/resize,
// and the host_addr_*/host_copy_* family (spec.md §4.4).

func hNop(ctx *Ctx, b []byte) Verdict { return Move(2) }

func hTerminate(ctx *Ctx, b []byte) Verdict {
	code := u16At(b, 0)
	return Terminate(runtime.TerminationCode(runtime.TermUserBase) + runtime.TerminationCode(code))
}

func hPushI32(ctx *Ctx, b []byte) Verdict {
	ctx.Thread.Stack.PushI32(i32At(b, 2))
	return Move(8)
}

func hPushI64(ctx *Ctx, b []byte) Verdict {
	lo := u32At(b, 2)
	hi := u32At(b, 6)
	ctx.Thread.Stack.PushI64(int64(uint64(hi)<<32 | uint64(lo)))
	return Move(12)
}

func hPushF32(ctx *Ctx, b []byte) Verdict {
	bits := u32At(b, 2)
	ctx.Thread.Stack.PushRaw(uint64(bits))
	return Move(8)
}

func hPushF64(ctx *Ctx, b []byte) Verdict {
	lo := u32At(b, 2)
	hi := u32At(b, 6)
	ctx.Thread.Stack.PushRaw(uint64(hi)<<32 | uint64(lo))
	return Move(12)
}

func hDrop(ctx *Ctx, b []byte) Verdict {
	ctx.Thread.Stack.PopRaw()
	return Move(2)
}

func hMemoryResize(ctx *Ctx, b []byte) Verdict {
	mem := ctx.moduleInstance(ctx.Module).Memory
	newPages := uint32(ctx.Thread.Stack.PopI32())
	old := mem.PageCount()
	mem.Resize(newPages)
	ctx.Thread.Stack.PushI32(int32(old))
	return Move(2)
}

func hMemorySize(ctx *Ctx, b []byte) Verdict {
	mem := ctx.moduleInstance(ctx.Module).Memory
	ctx.Thread.Stack.PushI32(int32(mem.PageCount()))
	return Move(2)
}

// hHostAddrLocal pushes a host-usable address into the current frame's
// local region as an i64 (spec.md §4.4 host_addr_local). The core never
// dereferences this itself; it is handed to native code via extcall.
func hHostAddrLocal(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 0); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushRaw(uint64(sliceAddr(region[offset:])))
	return Move(8)
}

func hHostAddrData(ctx *Ctx, b []byte) Verdict {
	publicIndex := u32At(b, 2)
	offset := u16At(b, 6)
	kind, internalIndex, targetModule, err := ctx.Resolver.ResolveDataIndex(ctx.Module, publicIndex)
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	seg := ctx.moduleInstance(targetModule).SegmentByKind(kind)
	datumBytes, err := seg.Bytes(int(internalIndex))
	if err != nil {
		return Terminate(asTrapCode(err))
	}
	if uint64(offset) > uint64(len(datumBytes)) {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushRaw(uint64(sliceAddr(datumBytes[offset:])))
	return Move(12)
}

func hHostAddrMemory(ctx *Ctx, b []byte) Verdict {
	instrOffset := u16At(b, 0)
	addr := uint32(ctx.Thread.Stack.PopI32()) + uint32(instrOffset)
	mem := ctx.moduleInstance(ctx.Module).Memory
	region := mem.AddressOf(addr)
	if len(region) == 0 && addr != mem.Size() {
		return Terminate(runtime.TermBoundsViolation)
	}
	ctx.Thread.Stack.PushRaw(uint64(sliceAddr(region)))
	return Move(4)
}

func hHostCopyToMemory(ctx *Ctx, b []byte) Verdict {
	length := uint32(ctx.Thread.Stack.PopI32())
	src := uint32(ctx.Thread.Stack.PopI32())
	dst := uint32(ctx.Thread.Stack.PopI32())
	mem := ctx.moduleInstance(ctx.Module).Memory
	if err := mem.CopyFrom(dst, mem.AddressOf(0), src, length); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(2)
}

func hHostCopyFromMemory(ctx *Ctx, b []byte) Verdict {
	length := uint32(ctx.Thread.Stack.PopI32())
	src := uint32(ctx.Thread.Stack.PopI32())
	dst := uint32(ctx.Thread.Stack.PopI32())
	mem := ctx.moduleInstance(ctx.Module).Memory
	if err := mem.CopyTo(mem.AddressOf(0), dst, src, length); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(2)
}

// hHostExternalMemoryCopy copies between two module instances' linear
// memories (spec.md §4.4): target module, src offset, dst offset, length,
// pushed in that order (length on top).
func hHostExternalMemoryCopy(ctx *Ctx, b []byte) Verdict {
	length := uint32(ctx.Thread.Stack.PopI32())
	dst := uint32(ctx.Thread.Stack.PopI32())
	src := uint32(ctx.Thread.Stack.PopI32())
	targetModule := uint32(ctx.Thread.Stack.PopI32())
	srcMem := ctx.moduleInstance(ctx.Module).Memory
	dstMem := ctx.moduleInstance(targetModule).Memory
	if err := dstMem.CopyFrom(dst, srcMem.AddressOf(0), src, length); err != nil {
		return Terminate(asTrapCode(err))
	}
	return Move(2)
}

func hHostAddrFunction(ctx *Ctx, b []byte) Verdict {
	publicIndex := u32At(b, 2)
	info, err := ctx.Resolver.ResolveFunctionIndex(ctx.Module, publicIndex)
	if err != nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	ptr, ok := ctx.Thread.Callbacks[runtime.CallbackKey{Module: info.Module, FunctionInternal: info.Internal}]
	if !ok {
		if ctx.CallbackGen == nil {
			return Terminate(runtime.TermBridgeCreationFailed)
		}
		p, err := ctx.CallbackGen.AddressOfCallback(ctx.Thread, info.Module, info.Internal)
		if err != nil {
			return Terminate(runtime.TermBridgeCreationFailed)
		}
		ptr = p
		ctx.Thread.Callbacks[runtime.CallbackKey{Module: info.Module, FunctionInternal: info.Internal}] = ptr
	}
	ctx.Thread.Stack.PushRaw(uint64(ptr))
	return Move(8)
}
