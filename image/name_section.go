package image

import "encoding/binary"

const nameRecordSize = 16 // {internal_index:u32, name_offset:u32, name_length:u32, pad:u32}

// NameEntry associates a debug name with an internal index (spec.md §3.1:
// FunctionName/DataName sections).
type NameEntry struct {
	InternalIndex uint32
	Name          string
}

// NameSection is the zero-copy view shared by FunctionName and DataName.
type NameSection struct {
	table   []byte
	vararea []byte
	count   uint32
}

// LoadNameSection parses a FunctionName/DataName section body in place.
func LoadNameSection(b []byte) *NameSection {
	count, rest := readTableHeader(b)
	tableLen := int(count) * nameRecordSize
	return &NameSection{table: rest[:tableLen], vararea: rest[tableLen:], count: count}
}

// Len returns the number of name entries.
func (s *NameSection) Len() int { return int(s.count) }

// Get returns the name entry at index i.
func (s *NameSection) Get(i int) NameEntry {
	row := s.table[i*nameRecordSize : i*nameRecordSize+nameRecordSize]
	idx := binary.LittleEndian.Uint32(row[0:4])
	off := binary.LittleEndian.Uint32(row[4:8])
	length := binary.LittleEndian.Uint32(row[8:12])
	return NameEntry{InternalIndex: idx, Name: string(s.vararea[off : off+length])}
}

// Lookup returns the name for internalIndex, if present (linear scan; the
// table is expected to be small per module).
func (s *NameSection) Lookup(internalIndex uint32) (string, bool) {
	for i := 0; i < s.Len(); i++ {
		e := s.Get(i)
		if e.InternalIndex == internalIndex {
			return e.Name, true
		}
	}
	return "", false
}

// BuildNameSection serializes name entries into a section body.
func BuildNameSection(entries []NameEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*nameRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*nameRecordSize : i*nameRecordSize+nameRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.InternalIndex)
		binary.LittleEndian.PutUint32(row[4:8], off)
		binary.LittleEndian.PutUint32(row[8:12], uint32(len(e.Name)))
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	out = append(out, pad4(vararea)...)
	return out
}
