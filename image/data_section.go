package image

import "encoding/binary"

const datumRecordSize = 12 // {offset:u32, length:u32, data_type:u8, alignment:u8, pad:u16}

// DatumEntry describes one datum within a data segment (spec.md §3.3).
type DatumEntry struct {
	Offset    uint32
	Length    uint32
	DataType  DataType
	Alignment uint8
}

// DataSection is the zero-copy view shared by ReadOnlyData, ReadWriteData,
// and UninitData sections. UninitData bodies carry no variable area: the
// runtime zero-fills storage of the declared length on thread creation.
type DataSection struct {
	table   []byte
	vararea []byte
	count   uint32
}

// LoadDataSection parses a RO/RW/Uninit data section body in place.
func LoadDataSection(b []byte) *DataSection {
	count, rest := readTableHeader(b)
	tableLen := int(count) * datumRecordSize
	return &DataSection{table: rest[:tableLen], vararea: rest[tableLen:], count: count}
}

// Len returns the number of data entries in this segment.
func (s *DataSection) Len() int { return int(s.count) }

// Get returns the datum descriptor at index i.
func (s *DataSection) Get(i int) DatumEntry {
	row := s.table[i*datumRecordSize : i*datumRecordSize+datumRecordSize]
	return DatumEntry{
		Offset:    binary.LittleEndian.Uint32(row[0:4]),
		Length:    binary.LittleEndian.Uint32(row[4:8]),
		DataType:  DataType(row[8]),
		Alignment: row[9],
	}
}

// Bytes returns the borrowed initializer bytes for datum i. Callers of a
// Uninit section must not call this; there is nothing to borrow.
func (s *DataSection) Bytes(i int) []byte {
	e := s.Get(i)
	return s.vararea[e.Offset : e.Offset+e.Length]
}

// TotalSize returns the byte size of the whole segment (sum of datum
// extents, using the highest offset+length).
func (s *DataSection) TotalSize() uint32 {
	var max uint32
	for i := 0; i < s.Len(); i++ {
		e := s.Get(i)
		if end := e.Offset + e.Length; end > max {
			max = end
		}
	}
	return max
}

// BuildDataSection serializes datum descriptors. For Uninit segments pass
// nil bodies (only descriptors and total extents matter).
func BuildDataSection(entries []DatumEntry, bodies [][]byte) []byte {
	table := make([]byte, len(entries)*datumRecordSize)
	var vararea []byte
	for i, e := range entries {
		row := table[i*datumRecordSize : i*datumRecordSize+datumRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.Offset)
		binary.LittleEndian.PutUint32(row[4:8], e.Length)
		row[8] = byte(e.DataType)
		row[9] = e.Alignment
		if bodies != nil {
			vararea = append(vararea, bodies[i]...)
		}
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	out = append(out, pad4(vararea)...)
	return out
}
