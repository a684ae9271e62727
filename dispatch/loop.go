package dispatch

import "github.com/xyproto/sxvm/runtime"

// Run drives the fetch-decode-execute cycle (spec.md §4.4) starting at
// thread.PC until the outermost function frame tears down (a normal
// return) or a handler terminates the thread. It is the only place that
// advances thread.PC between instructions; everything else lives in the
// Ctx a handler receives.
//
// ok is true for a normal return (code is meaningless then); false means
// the thread stopped via terminate/trap and code carries the reason.
func Run(thread *runtime.ThreadContext, resolver Resolver, callbackGen CallbackGenerator) (code runtime.TerminationCode, ok bool) {
	ctx := &Ctx{Thread: thread, Resolver: resolver, CallbackGen: callbackGen}

	loadCode := func() {
		ctx.Module = thread.PC.ModuleIndex()
		ctx.Function = thread.PC.Function
		ctx.Code = resolver.Function(ctx.Module, ctx.Function).Code
	}
	loadCode()

	for {
		addr := thread.PC.Address
		opcode := Opcode(u16At(ctx.Code, int(addr)))
		v := handlerTable[opcode](ctx, ctx.Code[addr+2:])

		switch v.Kind {
		case VMove:
			thread.PC.Address += uint32(v.Delta)
		case VJump:
			thread.PC = v.PC
			loadCode()
		case VEnd:
			thread.PC = v.PC
			if v.PC.IsEndOfCall() {
				return 0, true
			}
			loadCode()
		case VTerminate:
			return v.Code, false
		}
	}
}
