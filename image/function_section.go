package image

import "encoding/binary"

const functionRecordSize = 16 // {type_index:u32, local_list_index:u32, code_offset:u32, code_length:u32}

// FunctionEntry names a function's type, its local-variable layout, and
// the byte range of its code within the section's variable area
// (spec.md §3.2). Code is a sequence of aligned instructions terminated
// by an `end` opcode.
type FunctionEntry struct {
	TypeIndex          uint32
	LocalVariableIndex uint32
	CodeOffset         uint32
	CodeLength         uint32
}

// FunctionSection is the zero-copy view over the Function section.
type FunctionSection struct {
	table   []byte
	vararea []byte
	count   uint32
}

// LoadFunctionSection parses a Function section body in place.
func LoadFunctionSection(b []byte) *FunctionSection {
	count, rest := readTableHeader(b)
	tableLen := int(count) * functionRecordSize
	return &FunctionSection{table: rest[:tableLen], vararea: rest[tableLen:], count: count}
}

// Len returns the number of functions defined in this module.
func (s *FunctionSection) Len() int { return int(s.count) }

// Get returns the function entry at internal index i.
func (s *FunctionSection) Get(i int) FunctionEntry {
	row := s.table[i*functionRecordSize : i*functionRecordSize+functionRecordSize]
	return FunctionEntry{
		TypeIndex:          binary.LittleEndian.Uint32(row[0:4]),
		LocalVariableIndex: binary.LittleEndian.Uint32(row[4:8]),
		CodeOffset:         binary.LittleEndian.Uint32(row[8:12]),
		CodeLength:         binary.LittleEndian.Uint32(row[12:16]),
	}
}

// Code returns the borrowed code byte slice for function i.
func (s *FunctionSection) Code(i int) []byte {
	e := s.Get(i)
	return s.vararea[e.CodeOffset : e.CodeOffset+e.CodeLength]
}

// BuildFunctionSection serializes function entries plus their code bodies.
// codes[i] is the code for entries[i]; CodeOffset/CodeLength are computed
// from the concatenated code area.
func BuildFunctionSection(entries []FunctionEntry, codes [][]byte) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*functionRecordSize)
	for i, e := range entries {
		e.CodeOffset = uint32(len(vararea))
		e.CodeLength = uint32(len(codes[i]))
		vararea = append(vararea, codes[i]...)
		row := table[i*functionRecordSize : i*functionRecordSize+functionRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.TypeIndex)
		binary.LittleEndian.PutUint32(row[4:8], e.LocalVariableIndex)
		binary.LittleEndian.PutUint32(row[8:12], e.CodeOffset)
		binary.LittleEndian.PutUint32(row[12:16], e.CodeLength)
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	out = append(out, pad4(vararea)...)
	return out
}
