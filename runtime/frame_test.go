package runtime

import "testing"

// TestCreateFrameConsumesParamsIntoLocals exercises the frame-creation
// steps: two i32 params pushed by the caller end up in the callee's
// local region, not on the operand stack.
func TestCreateFrameConsumesParamsIntoLocals(t *testing.T) {
	s := NewStack()
	chain := NewChain()

	s.PushI32(11)
	s.PushI32(22)

	offsets := []int{0, 8}
	f := CreateFrame(s, chain, FrameFunction, 0, 16, 2, 1, PC{}.WithEndOfCall(), 0, 0, 0, offsets)

	if s.Len() != 16 {
		t.Fatalf("params should be consumed off the operand stack, leaving only the 16-byte local region; stack length %d", s.Len())
	}
	if got := int32(f.LocalRaw(s, 0)); got != 11 {
		t.Fatalf("local 0: got %d, want 11", got)
	}
	if got := int32(f.LocalRaw(s, 8)); got != 22 {
		t.Fatalf("local 1: got %d, want 22", got)
	}
	if chain.Depth() != 1 {
		t.Fatalf("expected one frame, got %d", chain.Depth())
	}
}

// TestTeardownRestoresCallerDepthPlusResults checks the invariant from
// spec.md §8 S1: after a call with P params and R results, the operand
// stack depth equals (depth before the call) - len(P) + len(R).
func TestTeardownRestoresCallerDepthPlusResults(t *testing.T) {
	s := NewStack()
	chain := NewChain()

	s.PushI32(100) // unrelated value already on the caller's stack
	depthBefore := s.Depth()

	s.PushI32(1)
	s.PushI32(2)
	CreateFrame(s, chain, FrameFunction, 0, 16, 2, 1, PC{}.WithEndOfCall(), 0, 0, 0, []int{0, 8})

	s.PushI32(3) // callee computes and pushes its single result
	Teardown(s, chain)

	if want := depthBefore + 1; s.Depth() != want {
		t.Fatalf("got depth %d, want %d", s.Depth(), want)
	}
	if got := s.PopI32(); got != 3 {
		t.Fatalf("got result %d, want 3", got)
	}
	if got := s.PopI32(); got != 100 {
		t.Fatalf("caller's own value corrupted: got %d, want 100", got)
	}
}

func TestPCEndOfCallFlag(t *testing.T) {
	p := PC{Module: 5, Function: 1, Address: 100}
	if p.IsEndOfCall() {
		t.Fatalf("fresh PC should not carry end-of-call flag")
	}
	marked := p.WithEndOfCall()
	if !marked.IsEndOfCall() {
		t.Fatalf("expected end-of-call flag set")
	}
	if marked.ModuleIndex() != 5 {
		t.Fatalf("got module %d, want 5 after masking flag", marked.ModuleIndex())
	}
}

// TestTeardownPreservesUnalignedCallerLocals regression-tests a frame
// whose local region does not end on an 8-byte slot boundary (e.g. a lone
// i32 local): a naive slot-floored CallerDepth would truncate the stack
// short of the enclosing frame's own bytes on teardown, corrupting them.
// CallerDepth must be tracked in bytes end to end for this to survive.
func TestTeardownPreservesUnalignedCallerLocals(t *testing.T) {
	s := NewStack()
	chain := NewChain()

	outer := CreateFrame(s, chain, FrameFunction, 0, 4, 0, 0, PC{}.WithEndOfCall(), 0, 0, 0, nil)
	outer.LocalRegion(s)[0] = 0x11 // the enclosing frame's only live byte

	CreateFrame(s, chain, FrameBlock, 0, 0, 0, 0, PC{}, 4, 0, 0, nil)
	Teardown(s, chain) // tear down the inner block frame

	if got := outer.LocalRegion(s)[0]; got != 0x11 {
		t.Fatalf("enclosing frame's local region corrupted by teardown: got %#x, want 0x11", got)
	}
	if s.Len() != 4 {
		t.Fatalf("got stack byte length %d, want 4 (outer frame's unaligned region only)", s.Len())
	}
}

func TestChainAncestorResolvesOuterFrames(t *testing.T) {
	s := NewStack()
	chain := NewChain()
	CreateFrame(s, chain, FrameFunction, 0, 0, 0, 0, PC{}.WithEndOfCall(), 0, 1, 0, nil)
	CreateFrame(s, chain, FrameBlock, 0, 0, 0, 0, PC{}, 4, 1, 0, nil)

	if chain.Ancestor(0).Kind != FrameBlock {
		t.Fatalf("ancestor 0 should be the innermost block frame")
	}
	if chain.Ancestor(1).Kind != FrameFunction {
		t.Fatalf("ancestor 1 should be the enclosing function frame")
	}
}
