// Completion: 100% - Trap codes complete
// Package runtime holds the per-thread execution state described in
// spec.md §3.5/§4.2/§4.3: linear memory, data segments, the operand
// stack, and the call-frame chain. It does not itself dispatch
// instructions (see package dispatch); it only stores and bounds-checks.
package runtime

import "fmt"

// TerminationCode is the small closed set of u32 codes a thread can stop
// with (spec.md §6.4).
type TerminationCode uint32

const (
	TermPanic               TerminationCode = 1
	TermUnreachable         TerminationCode = 2
	TermDivideByZero        TerminationCode = 3
	TermBoundsViolation     TerminationCode = 4
	TermBridgeCreationFailed TerminationCode = 5

	// TermUserBase is the start of the reserved range for user
	// terminate(code) instructions (spec.md §6.4: 0x100-0x1FF).
	TermUserBase TerminationCode = 0x100
	TermUserMax  TerminationCode = 0x1FF
)

func (c TerminationCode) String() string {
	switch c {
	case TermPanic:
		return "panic"
	case TermUnreachable:
		return "unreachable"
	case TermDivideByZero:
		return "divide_by_zero"
	case TermBoundsViolation:
		return "bounds_violation"
	case TermBridgeCreationFailed:
		return "bridge_creation_failed"
	default:
		if c >= TermUserBase && c <= TermUserMax {
			return fmt.Sprintf("user(%d)", c-TermUserBase)
		}
		return fmt.Sprintf("unknown(%d)", uint32(c))
	}
}

// Trap is a runtime trap (spec.md §7 band 2): not catchable inside the
// VM, it unwinds straight out of CallFunction to the host.
type Trap struct {
	Code TerminationCode
}

func (t *Trap) Error() string { return "trap: " + t.Code.String() }

// NewTrap constructs a Trap for the given code.
func NewTrap(code TerminationCode) *Trap { return &Trap{Code: code} }
