// Completion: 100% - Data segment access complete
package runtime

import (
	"encoding/binary"
	"math"

	"github.com/xyproto/sxvm/image"
)

// Datum mirrors image.DatumEntry with the fields the interpreter needs at
// access time.
type Datum struct {
	Offset   uint32
	Length   uint32
	DataType image.DataType
}

// Segment is one data segment's per-thread storage (spec.md §3.3): bytes
// plus a side table of datum descriptors. ReadOnly segments are shared
// read-only; ReadWrite segments are cloned per thread at creation;
// Uninit segments are zero-filled with no image bytes at all.
type Segment struct {
	bytes    []byte
	data     []Datum
	readOnly bool
}

// NewSegmentFromImage builds a Segment from a parsed image.DataSection,
// copying its initializer bytes into a fresh per-thread buffer. Uninit
// segments pass hasBody=false; their size still comes from the
// descriptors (they are zero-filled, per spec.md §3.3).
func NewSegmentFromImage(view *image.DataSection, readOnly bool, hasBody bool) *Segment {
	n := view.Len()
	data := make([]Datum, n)
	size := view.TotalSize()
	bytes := make([]byte, size)
	for i := 0; i < n; i++ {
		e := view.Get(i)
		data[i] = Datum{Offset: e.Offset, Length: e.Length, DataType: e.DataType}
		if hasBody {
			copy(bytes[e.Offset:e.Offset+e.Length], view.Bytes(i))
		}
	}
	return &Segment{bytes: bytes, data: data, readOnly: readOnly}
}

// Clone returns an independent copy of the segment's storage, used to
// give each thread its own ReadWrite segment (spec.md §3.5).
func (s *Segment) Clone() *Segment {
	cp := make([]byte, len(s.bytes))
	copy(cp, s.bytes)
	return &Segment{bytes: cp, data: s.data, readOnly: s.readOnly}
}

func (s *Segment) datum(index int) (Datum, error) {
	if index < 0 || index >= len(s.data) {
		return Datum{}, NewTrap(TermBoundsViolation)
	}
	return s.data[index], nil
}

func (s *Segment) checkAccess(index int, offset uint32, size int) (Datum, error) {
	d, err := s.datum(index)
	if err != nil {
		return Datum{}, err
	}
	if uint64(offset)+uint64(size) > uint64(d.Length) {
		return Datum{}, NewTrap(TermBoundsViolation)
	}
	return d, nil
}

func (s *Segment) LoadI32(index int, offset uint32) (int32, error) {
	d, err := s.checkAccess(index, offset, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(s.bytes[d.Offset+offset:])), nil
}

func (s *Segment) LoadU32(index int, offset uint32) (uint32, error) {
	v, err := s.LoadI32(index, offset)
	return uint32(v), err
}

func (s *Segment) LoadI64(index int, offset uint32) (int64, error) {
	d, err := s.checkAccess(index, offset, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(s.bytes[d.Offset+offset:])), nil
}

func (s *Segment) LoadU64(index int, offset uint32) (uint64, error) {
	v, err := s.LoadI64(index, offset)
	return uint64(v), err
}

func (s *Segment) LoadI16(index int, offset uint32) (int16, error) {
	d, err := s.checkAccess(index, offset, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(s.bytes[d.Offset+offset:])), nil
}

func (s *Segment) LoadU16(index int, offset uint32) (uint16, error) {
	v, err := s.LoadI16(index, offset)
	return uint16(v), err
}

func (s *Segment) LoadI8(index int, offset uint32) (int8, error) {
	d, err := s.checkAccess(index, offset, 1)
	if err != nil {
		return 0, err
	}
	return int8(s.bytes[d.Offset+offset]), nil
}

func (s *Segment) LoadU8(index int, offset uint32) (uint8, error) {
	v, err := s.LoadI8(index, offset)
	return uint8(v), err
}

// LoadF32/LoadF64 apply the float bit-pattern sanity check of I5: the
// standard IEEE interpretation of the raw bits, always well-defined for
// any 32/64-bit pattern (spec.md §9 design notes).
func (s *Segment) LoadF32(index int, offset uint32) (float32, error) {
	bits, err := s.LoadU32(index, offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (s *Segment) LoadF64(index int, offset uint32) (float64, error) {
	bits, err := s.LoadU64(index, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (s *Segment) store(index int, offset uint32, size int) (Datum, error) {
	if s.readOnly {
		// RO stores are rejected at image validation time, not here
		// (spec.md §4.2); reaching this path means an ill-formed image
		// slipped through, which we still must not let corrupt memory.
		return Datum{}, NewTrap(TermBoundsViolation)
	}
	return s.checkAccess(index, offset, size)
}

func (s *Segment) StoreI8(index int, offset uint32, v int8) error {
	d, err := s.store(index, offset, 1)
	if err != nil {
		return err
	}
	s.bytes[d.Offset+offset] = byte(v)
	return nil
}

func (s *Segment) StoreI16(index int, offset uint32, v int16) error {
	d, err := s.store(index, offset, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(s.bytes[d.Offset+offset:], uint16(v))
	return nil
}

func (s *Segment) StoreI32(index int, offset uint32, v int32) error {
	d, err := s.store(index, offset, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(s.bytes[d.Offset+offset:], uint32(v))
	return nil
}

func (s *Segment) StoreI64(index int, offset uint32, v int64) error {
	d, err := s.store(index, offset, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(s.bytes[d.Offset+offset:], uint64(v))
	return nil
}

func (s *Segment) StoreF32(index int, offset uint32, v float32) error {
	return s.StoreI32(index, offset, int32(math.Float32bits(v)))
}

func (s *Segment) StoreF64(index int, offset uint32, v float64) error {
	return s.StoreI64(index, offset, int64(math.Float64bits(v)))
}

// Bytes returns the borrowed byte slice for datum index, for host_addr_data
// and memory-copy helpers.
func (s *Segment) Bytes(index int) ([]byte, error) {
	d, err := s.datum(index)
	if err != nil {
		return nil, err
	}
	return s.bytes[d.Offset : d.Offset+d.Length], nil
}
