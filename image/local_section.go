package image

import "encoding/binary"

const (
	localListRecordSize = 8 // {slot_offset:u32, slot_count:u32}
	localSlotSize        = 8 // {data_type:u8, pad:u8, length_bytes:u16, alignment_bytes:u16, offset_in_frame:u16}
)

// LocalSlot is one entry of a local-variable list (spec.md §3.2). The
// first K slots of a list alias the owning function's K parameters.
type LocalSlot struct {
	DataType       DataType
	LengthBytes    uint16
	AlignmentBytes uint16
	OffsetInFrame  uint16
}

// LocalVariableList is an ordered list of slots.
type LocalVariableList struct {
	Slots []LocalSlot
}

// FrameSize returns the total byte size of the frame's local region, i.e.
// one past the highest slot's end, rounded up to a multiple of
// runtime.SlotSize, so that operand slots pushed above the region stay on
// 8-byte boundaries of the shared stack buffer.
func (l LocalVariableList) FrameSize() uint32 {
	const slotSize = 8
	var max uint32
	for _, s := range l.Slots {
		end := uint32(s.OffsetInFrame) + uint32(s.LengthBytes)
		if end > max {
			max = end
		}
	}
	return (max + slotSize - 1) / slotSize * slotSize
}

// LocalSection is the zero-copy view over the LocalVariable section.
type LocalSection struct {
	table   []byte
	vararea []byte
	count   uint32
}

// LoadLocalSection parses a LocalVariable section body in place.
func LoadLocalSection(b []byte) *LocalSection {
	count, rest := readTableHeader(b)
	tableLen := int(count) * localListRecordSize
	return &LocalSection{table: rest[:tableLen], vararea: rest[tableLen:], count: count}
}

// Len returns the number of local-variable lists.
func (s *LocalSection) Len() int { return int(s.count) }

// Get returns the local-variable list at index i.
func (s *LocalSection) Get(i int) LocalVariableList {
	row := s.table[i*localListRecordSize : i*localListRecordSize+localListRecordSize]
	off := binary.LittleEndian.Uint32(row[0:4])
	n := binary.LittleEndian.Uint32(row[4:8])
	slots := make([]LocalSlot, n)
	for j := range slots {
		rec := s.vararea[off+uint32(j)*localSlotSize : off+uint32(j+1)*localSlotSize]
		slots[j] = LocalSlot{
			DataType:       DataType(rec[0]),
			LengthBytes:    binary.LittleEndian.Uint16(rec[2:4]),
			AlignmentBytes: binary.LittleEndian.Uint16(rec[4:6]),
			OffsetInFrame:  binary.LittleEndian.Uint16(rec[6:8]),
		}
	}
	return LocalVariableList{Slots: slots}
}

// BuildLocalSection serializes local-variable lists into a section body.
func BuildLocalSection(lists []LocalVariableList) []byte {
	var vararea []byte
	table := make([]byte, len(lists)*localListRecordSize)
	for i, l := range lists {
		off := uint32(len(vararea))
		for _, s := range l.Slots {
			var rec [localSlotSize]byte
			rec[0] = byte(s.DataType)
			binary.LittleEndian.PutUint16(rec[2:4], s.LengthBytes)
			binary.LittleEndian.PutUint16(rec[4:6], s.AlignmentBytes)
			binary.LittleEndian.PutUint16(rec[6:8], s.OffsetInFrame)
			vararea = append(vararea, rec[:]...)
		}
		row := table[i*localListRecordSize : i*localListRecordSize+localListRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], off)
		binary.LittleEndian.PutUint32(row[4:8], uint32(len(l.Slots)))
	}
	out := append(writeTableHeader(uint32(len(lists))), table...)
	out = append(out, pad4(vararea)...)
	return out
}

// LayoutSlots computes AlignmentBytes/OffsetInFrame for a parameter-first
// slot list, following natural alignment (spec.md §3.2: "alignment and
// offset are computed at image build time").
func LayoutSlots(types []DataType, rawLengths []uint16) []LocalSlot {
	slots := make([]LocalSlot, len(types))
	var cursor uint32
	for i, t := range types {
		length, align := slotSizeAlign(t)
		if t == TypeRaw {
			length = rawLengths[i]
			if length == 0 {
				length = 1
			}
		}
		cursor = alignUp(cursor, uint32(align))
		slots[i] = LocalSlot{DataType: t, LengthBytes: length, AlignmentBytes: align, OffsetInFrame: uint16(cursor)}
		cursor += uint32(length)
	}
	return slots
}

func slotSizeAlign(t DataType) (length uint16, align uint16) {
	switch t {
	case TypeI32, TypeF32:
		return 4, 4
	case TypeI64, TypeF64:
		return 8, 8
	default:
		return 1, 1
	}
}

func alignUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}
