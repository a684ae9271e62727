// Completion: 100% - Operand stack complete
package runtime

import (
	"encoding/binary"
	"math"
)

// SlotSize is the fixed width of every operand stack slot (spec.md §4.3:
// "the operand stack is a byte buffer viewed as an array of 8-byte
// slots... every push/pop moves exactly 8 bytes").
const SlotSize = 8

// Stack is the operand stack shared by every frame in a thread's call
// chain (spec.md §4.3, §9: "a single growable byte stack holds both
// operand slots and local-variable regions"). Local-variable regions live
// in the same backing buffer; Frame addresses them directly.
type Stack struct {
	buf []byte
}

// NewStack creates an empty operand stack.
func NewStack() *Stack { return &Stack{buf: make([]byte, 0, 4096)} }

// Depth returns the current stack depth in slots.
func (s *Stack) Depth() int { return len(s.buf) / SlotSize }

// Reserve grows the backing buffer by n raw bytes (used for local-variable
// regions, which are not 8-byte-slot addressed) and returns the region.
func (s *Stack) Reserve(n int) []byte {
	start := len(s.buf)
	s.buf = append(s.buf, make([]byte, n)...)
	return s.buf[start : start+n]
}

// Shrink truncates the backing buffer back to byte length n.
func (s *Stack) Shrink(n int) { s.buf = s.buf[:n] }

// Len returns the raw byte length of the backing buffer (includes local
// regions below the live operand area).
func (s *Stack) Len() int { return len(s.buf) }

func (s *Stack) pushRaw(v uint64) {
	var b [SlotSize]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

func (s *Stack) popRaw() uint64 {
	n := len(s.buf)
	v := binary.LittleEndian.Uint64(s.buf[n-SlotSize:])
	s.buf = s.buf[:n-SlotSize]
	return v
}

// PushI32 extends v to 8 bytes on push (spec.md §4.3: "shorter values are
// extended on push").
func (s *Stack) PushI32(v int32) { s.pushRaw(uint64(uint32(v))) }
func (s *Stack) PushI64(v int64) { s.pushRaw(uint64(v)) }
func (s *Stack) PushF32(v float32) { s.pushRaw(uint64(math.Float32bits(v))) }
func (s *Stack) PushF64(v float64) { s.pushRaw(math.Float64bits(v)) }
func (s *Stack) PushRaw(v uint64)  { s.pushRaw(v) }

// PopI32/PopI64/PopF32/PopF64 produce a typed value without re-checking
// the original push type: well-formed programs are assumed (spec.md
// §4.3, §3.5 I1).
func (s *Stack) PopI32() int32     { return int32(uint32(s.popRaw())) }
func (s *Stack) PopI64() int64     { return int64(s.popRaw()) }
func (s *Stack) PopF32() float32   { return math.Float32frombits(uint32(s.popRaw())) }
func (s *Stack) PopF64() float64   { return math.Float64frombits(s.popRaw()) }
func (s *Stack) PopRaw() uint64    { return s.popRaw() }

// PeekRaw returns the top slot without popping it.
func (s *Stack) PeekRaw() uint64 {
	n := len(s.buf)
	return binary.LittleEndian.Uint64(s.buf[n-SlotSize:])
}

// SlotAt returns the raw 8-byte value at operand-stack slot index
// (0 = oldest), used when copying a block's arguments without disturbing
// evaluation order.
func (s *Stack) SlotAt(index int) uint64 {
	return binary.LittleEndian.Uint64(s.buf[index*SlotSize : index*SlotSize+SlotSize])
}
