// Completion: 100% - Linear memory complete
package runtime

import (
	"encoding/binary"
	"math"
)

// PageSize is the page granularity for Memory.Resize (spec.md §4.2: "64
// KiB recommended").
const PageSize = 64 * 1024

// Memory is a resizable contiguous byte region addressed by absolute byte
// offsets (spec.md §4.2). It is owned by exactly one thread context; there
// is no cross-thread sharing (spec.md §5).
type Memory struct {
	bytes []byte
}

// NewMemory creates an empty (zero-page) linear memory.
func NewMemory() *Memory { return &Memory{} }

// PageCount returns the current size in pages.
func (m *Memory) PageCount() uint32 { return uint32(len(m.bytes) / PageSize) }

// Size returns the current size in bytes.
func (m *Memory) Size() uint32 { return uint32(len(m.bytes)) }

// Resize grows or shrinks memory to newPageCount pages. Growing
// zero-fills the new bytes; shrinking truncates (spec.md §4.2, I4).
func (m *Memory) Resize(newPageCount uint32) {
	newSize := int(newPageCount) * PageSize
	if newSize <= len(m.bytes) {
		m.bytes = m.bytes[:newSize]
		return
	}
	grown := make([]byte, newSize)
	copy(grown, m.bytes)
	m.bytes = grown
}

func (m *Memory) checkBounds(offset uint32, size int) error {
	if uint64(offset)+uint64(size) > uint64(len(m.bytes)) {
		return NewTrap(TermBoundsViolation)
	}
	return nil
}

func (m *Memory) LoadI8(offset uint32) (int8, error) {
	if err := m.checkBounds(offset, 1); err != nil {
		return 0, err
	}
	return int8(m.bytes[offset]), nil
}

func (m *Memory) LoadU8(offset uint32) (uint8, error) {
	if err := m.checkBounds(offset, 1); err != nil {
		return 0, err
	}
	return m.bytes[offset], nil
}

func (m *Memory) LoadI16(offset uint32) (int16, error) {
	if err := m.checkBounds(offset, 2); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(m.bytes[offset:])), nil
}

func (m *Memory) LoadU16(offset uint32) (uint16, error) {
	if err := m.checkBounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.bytes[offset:]), nil
}

func (m *Memory) LoadI32(offset uint32) (int32, error) {
	if err := m.checkBounds(offset, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(m.bytes[offset:])), nil
}

func (m *Memory) LoadU32(offset uint32) (uint32, error) {
	if err := m.checkBounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.bytes[offset:]), nil
}

func (m *Memory) LoadI64(offset uint32) (int64, error) {
	if err := m.checkBounds(offset, 8); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(m.bytes[offset:])), nil
}

func (m *Memory) LoadU64(offset uint32) (uint64, error) {
	if err := m.checkBounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.bytes[offset:]), nil
}

// LoadF32 reads a float32. Per spec.md I5, the "check" is just the
// standard IEEE interpretation of the bits; no value is rejected here
// (spec.md §9 design notes).
func (m *Memory) LoadF32(offset uint32) (float32, error) {
	bits, err := m.LoadU32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (m *Memory) LoadF64(offset uint32) (float64, error) {
	bits, err := m.LoadU64(offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (m *Memory) StoreI8(offset uint32, v int8) error {
	if err := m.checkBounds(offset, 1); err != nil {
		return err
	}
	m.bytes[offset] = byte(v)
	return nil
}

func (m *Memory) StoreI16(offset uint32, v int16) error {
	if err := m.checkBounds(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.bytes[offset:], uint16(v))
	return nil
}

func (m *Memory) StoreI32(offset uint32, v int32) error {
	if err := m.checkBounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.bytes[offset:], uint32(v))
	return nil
}

func (m *Memory) StoreI64(offset uint32, v int64) error {
	if err := m.checkBounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.bytes[offset:], uint64(v))
	return nil
}

func (m *Memory) StoreF32(offset uint32, v float32) error {
	return m.StoreI32(offset, int32(math.Float32bits(v)))
}

func (m *Memory) StoreF64(offset uint32, v float64) error {
	return m.StoreI64(offset, int64(math.Float64bits(v)))
}

// CopyFrom copies n bytes from src (another region, e.g. a data segment)
// at srcOffset into memory at dstOffset, bounds-checking the destination
// (spec.md §4.4: host_copy_to_memory / host_external_memory_copy).
func (m *Memory) CopyFrom(dstOffset uint32, src []byte, srcOffset, n uint32) error {
	if err := m.checkBounds(dstOffset, int(n)); err != nil {
		return err
	}
	if uint64(srcOffset)+uint64(n) > uint64(len(src)) {
		return NewTrap(TermBoundsViolation)
	}
	copy(m.bytes[dstOffset:dstOffset+n], src[srcOffset:srcOffset+n])
	return nil
}

// CopyTo copies n bytes out of memory at srcOffset into dst at dstOffset
// (spec.md §4.4: host_copy_from_memory).
func (m *Memory) CopyTo(dst []byte, dstOffset uint32, srcOffset, n uint32) error {
	if err := m.checkBounds(srcOffset, int(n)); err != nil {
		return err
	}
	if uint64(dstOffset)+uint64(n) > uint64(len(dst)) {
		return NewTrap(TermBoundsViolation)
	}
	copy(dst[dstOffset:dstOffset+n], m.bytes[srcOffset:srcOffset+n])
	return nil
}

// AddressOf returns a pointer-stable absolute byte offset's backing slice
// header, for host_addr_memory (spec.md §4.4). The caller must not retain
// it past a Resize.
func (m *Memory) AddressOf(offset uint32) []byte { return m.bytes[offset:] }
