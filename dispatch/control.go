package dispatch

import "github.com/xyproto/sxvm/runtime"

// Structured control flow (spec.md §4.6): block/end/break/recur and their
// conditional variants, plus call/dyncall/extcall. There is no arbitrary
// jump; every branch targets an enclosing block or function frame by
// ancestor depth.

func hEnd(ctx *Ctx, b []byte) Verdict {
	// A block frame's code is inline in the enclosing function's own
	// byte stream, so falling through to its `end` simply continues at
	// the next instruction; only a function frame's `end` needs the
	// frame's stored ReturnPC, since a call may have come from an
	// entirely different code address.
	isBlock := ctx.Thread.Chain.Top().Kind == runtime.FrameBlock
	pc := runtime.Teardown(ctx.Thread.Stack, ctx.Thread.Chain)
	if isBlock {
		return Move(2)
	}
	if pc.IsEndOfCall() {
		return End(pc)
	}
	return Jump(pc)
}

// blockShape unifies BlockInfo/FunctionInfo's overlapping fields so block
// and function frame creation can share one helper.
type blockShape struct {
	LocalListIndex uint32
	LocalRegionLen int
	ParamsCount    int
	ResultsCount   int
	ParamOffsets   []int
}

func createBlockFrame(ctx *Ctx, info blockShape, targetAddress uint32) {
	runtime.CreateFrame(ctx.Thread.Stack, ctx.Thread.Chain, runtime.FrameBlock, info.LocalListIndex,
		info.LocalRegionLen, info.ParamsCount, info.ResultsCount,
		runtime.PC{Module: ctx.Module, Function: ctx.Function}, targetAddress, ctx.Module, ctx.Function, info.ParamOffsets)
}

func hBlock(ctx *Ctx, b []byte) Verdict {
	typeIndex, localListIndex := u16At(b, 0), u16At(b, 2)
	info := ctx.Resolver.BlockType(ctx.Module, uint32(typeIndex), uint32(localListIndex))
	createBlockFrame(ctx, blockShape{
		LocalListIndex: uint32(localListIndex), LocalRegionLen: info.LocalRegionLen,
		ParamsCount: info.ParamsCount, ResultsCount: info.ResultsCount, ParamOffsets: info.ParamOffsets,
	}, ctx.Thread.PC.Address+8)
	return Move(8)
}

func hBreak(ctx *Ctx, b []byte) Verdict {
	jumpOffset := i32At(b, 2)
	ancestorDepth := u16At(b, 6)
	return doBreak(ctx, int(ancestorDepth), jumpOffset)
}

func hBreakNez(ctx *Ctx, b []byte) Verdict {
	cond := ctx.Thread.Stack.PopI32()
	jumpOffset := i32At(b, 2)
	ancestorDepth := u16At(b, 6)
	if cond == 0 {
		return Move(12)
	}
	return doBreak(ctx, int(ancestorDepth), jumpOffset)
}

// doBreak tears down frames through ancestorDepth inclusive and resumes
// jumpOffset bytes past the target block's `end` (spec.md §4.6). For a
// function frame this is an ordinary return: End() when the frame's
// ReturnPC carries the end-of-call marker, otherwise a jump to ReturnPC.
func doBreak(ctx *Ctx, ancestorDepth int, jumpOffset int32) Verdict {
	target := ctx.Thread.Chain.Ancestor(ancestorDepth)
	resultsCount := target.ResultsCount
	results := make([]uint64, resultsCount)
	for i := resultsCount - 1; i >= 0; i-- {
		results[i] = ctx.Thread.Stack.PopRaw()
	}
	keep := ctx.Thread.Chain.Depth() - 1 - ancestorDepth
	ctx.Thread.Chain.TruncateTo(keep)
	ctx.Thread.Stack.Shrink(target.CallerDepth)
	for _, r := range results {
		ctx.Thread.Stack.PushRaw(r)
	}
	if target.Kind == runtime.FrameFunction {
		if target.ReturnPC.IsEndOfCall() {
			return End(target.ReturnPC)
		}
		return Jump(target.ReturnPC)
	}
	return Jump(runtime.PC{Module: target.ModuleIndex, Function: target.FunctionIndex, Address: target.TargetAddress + uint32(jumpOffset)})
}

func hRecur(ctx *Ctx, b []byte) Verdict {
	ancestorDepth := u16At(b, 6)
	return doRecur(ctx, int(ancestorDepth))
}

func hRecurNez(ctx *Ctx, b []byte) Verdict {
	cond := ctx.Thread.Stack.PopI32()
	ancestorDepth := u16At(b, 6)
	if cond == 0 {
		return Move(12)
	}
	return doRecur(ctx, int(ancestorDepth))
}

// doRecur re-enters the target block with a fresh copy of its frame
// (spec.md §4.6: loop iteration): pop the block's declared parameters
// (currently the top of stack), tear down every frame through
// ancestorDepth, then create a replacement frame seeded with those same
// parameter values and jump back to the block's first instruction.
func doRecur(ctx *Ctx, ancestorDepth int) Verdict {
	target := ctx.Thread.Chain.Ancestor(ancestorDepth)
	paramsCount := target.ParamsCount
	params := make([]uint64, paramsCount)
	for i := paramsCount - 1; i >= 0; i-- {
		params[i] = ctx.Thread.Stack.PopRaw()
	}
	keep := ctx.Thread.Chain.Depth() - 1 - ancestorDepth
	ctx.Thread.Chain.TruncateTo(keep)
	ctx.Thread.Stack.Shrink(target.CallerDepth)
	for _, p := range params {
		ctx.Thread.Stack.PushRaw(p)
	}
	runtime.CreateFrame(ctx.Thread.Stack, ctx.Thread.Chain, target.Kind, target.LocalVariableListIndex,
		target.LocalRegionLen, paramsCount, target.ResultsCount, target.ReturnPC, target.TargetAddress,
		target.ModuleIndex, target.FunctionIndex, target.ParamOffsets)
	return Jump(runtime.PC{Module: target.ModuleIndex, Function: target.FunctionIndex, Address: target.TargetAddress})
}

func hBlockAlt(ctx *Ctx, b []byte) Verdict {
	typeIndex, localListIndex := u16At(b, 0), u16At(b, 2)
	elseOffset := i32At(b, 6)
	cond := ctx.Thread.Stack.PopI32()
	baseAddr := ctx.Thread.PC.Address
	if cond != 0 {
		info := ctx.Resolver.BlockType(ctx.Module, uint32(typeIndex), uint32(localListIndex))
		createBlockFrame(ctx, blockShape{
			LocalListIndex: uint32(localListIndex), LocalRegionLen: info.LocalRegionLen,
			ParamsCount: info.ParamsCount, ResultsCount: info.ResultsCount, ParamOffsets: info.ParamOffsets,
		}, baseAddr+12)
		return Move(12)
	}
	return Jump(runtime.PC{Module: ctx.Module, Function: ctx.Function, Address: baseAddr + uint32(elseOffset)})
}

// hBlockNez is the single-arm form: no `then` type/result, just a
// condition and an else-skip target (spec.md §4.6).
func hBlockNez(ctx *Ctx, b []byte) Verdict {
	localListIndex := u16At(b, 0)
	elseOffset := i32At(b, 4)
	cond := ctx.Thread.Stack.PopI32()
	baseAddr := ctx.Thread.PC.Address
	if cond != 0 {
		info := ctx.Resolver.BlockType(ctx.Module, 0, uint32(localListIndex))
		createBlockFrame(ctx, blockShape{
			LocalListIndex: uint32(localListIndex), LocalRegionLen: info.LocalRegionLen,
			ParamsCount: 0, ResultsCount: 0, ParamOffsets: nil,
		}, baseAddr+12)
		return Move(12)
	}
	return Jump(runtime.PC{Module: ctx.Module, Function: ctx.Function, Address: baseAddr + uint32(elseOffset)})
}

func hCall(ctx *Ctx, b []byte) Verdict {
	publicIndex := u32At(b, 2)
	info, err := ctx.Resolver.ResolveFunctionIndex(ctx.Module, publicIndex)
	if err != nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	return enterFunction(ctx, info, ctx.Thread.PC.Address+8)
}

func hDynCall(ctx *Ctx, b []byte) Verdict {
	publicIndex := uint32(ctx.Thread.Stack.PopI32())
	info, err := ctx.Resolver.ResolveFunctionIndex(ctx.Module, publicIndex)
	if err != nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	return enterFunction(ctx, info, ctx.Thread.PC.Address+2)
}

func enterFunction(ctx *Ctx, info FunctionInfo, returnAddress uint32) Verdict {
	returnPC := runtime.PC{Module: ctx.Module, Function: ctx.Function, Address: returnAddress}
	runtime.CreateFrame(ctx.Thread.Stack, ctx.Thread.Chain, runtime.FrameFunction, info.LocalListIndex,
		info.LocalRegionLen, info.ParamsCount, info.ResultsCount, returnPC, 0, info.Module, info.Internal, info.ParamOffsets)
	return Jump(runtime.PC{Module: info.Module, Function: info.Internal, Address: 0})
}

func hExtCall(ctx *Ctx, b []byte) Verdict {
	externalIndex := u32At(b, 2)
	info, err := ctx.Resolver.ResolveExternalFunction(ctx.Module, externalIndex)
	if err != nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	if ctx.Thread.External == nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	args := make([]uint64, len(info.ParamTypes))
	for i := len(args) - 1; i >= 0; i-- {
		args[i] = ctx.Thread.Stack.PopRaw()
	}
	results, err := ctx.Thread.External.CallExternal(info.UnifiedIndex, args)
	if err != nil {
		return Terminate(runtime.TermBridgeCreationFailed)
	}
	if len(info.ResultTypes) == 1 && len(results) == 1 {
		ctx.Thread.Stack.PushRaw(results[0])
	}
	return Move(8)
}
