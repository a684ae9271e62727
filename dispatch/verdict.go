package dispatch

import "github.com/xyproto/sxvm/runtime"

// VerdictKind tags which of the four outcomes a handler produced
// (spec.md §4.4).
type VerdictKind int

const (
	VMove VerdictKind = iota
	VJump
	VEnd
	VTerminate
)

// Verdict is every handler's return value, driving the dispatch loop.
type Verdict struct {
	Kind  VerdictKind
	Delta int
	PC    runtime.PC
	Code  runtime.TerminationCode
}

// Move advances the PC by delta bytes within the current function.
func Move(delta int) Verdict { return Verdict{Kind: VMove, Delta: delta} }

// Jump sets the PC directly, possibly into a different function (calls,
// or an intra-function branch).
func Jump(pc runtime.PC) Verdict { return Verdict{Kind: VJump, PC: pc} }

// End signals a frame teardown: pc is the restored PC, with
// EndOfCallFlag set if the torn-down frame was the outermost function
// frame of the current call_function invocation.
func End(pc runtime.PC) Verdict { return Verdict{Kind: VEnd, PC: pc} }

// Terminate stops execution with a numeric termination code.
func Terminate(code runtime.TerminationCode) Verdict { return Verdict{Kind: VTerminate, Code: code} }
