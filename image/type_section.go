package image

import "encoding/binary"

// DataType is an operand/slot type (spec.md §3.2): one of the four
// operand types, plus Raw for local-variable slots holding untyped bytes.
type DataType uint8

const (
	TypeI32 DataType = iota
	TypeI64
	TypeF32
	TypeF64
	TypeRaw
)

func (t DataType) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

const typeRecordSize = 16 // {param_count:u16, result_count:u16, param_offset:u32, result_offset:u32, pad:u32}

// TypeEntry is an ordered parameter-type list and an ordered result-type
// list, used both by functions and by control-flow blocks (spec.md §3.2).
type TypeEntry struct {
	Params  []DataType
	Results []DataType
}

// TypeSection is the zero-copy view over the Type section.
type TypeSection struct {
	table []byte
	vararea []byte
	count   uint32
}

// LoadTypeSection parses a Type section body in place.
func LoadTypeSection(b []byte) *TypeSection {
	count, rest := readTableHeader(b)
	tableLen := int(count) * typeRecordSize
	return &TypeSection{table: rest[:tableLen], vararea: rest[tableLen:], count: count}
}

// Len returns the number of type entries.
func (s *TypeSection) Len() int { return int(s.count) }

// Get decodes the type entry at index i into freshly allocated parameter
// and result lists.
func (s *TypeSection) Get(i int) TypeEntry {
	row := s.table[i*typeRecordSize : i*typeRecordSize+typeRecordSize]
	pc := binary.LittleEndian.Uint16(row[0:2])
	rc := binary.LittleEndian.Uint16(row[2:4])
	po := binary.LittleEndian.Uint32(row[4:8])
	ro := binary.LittleEndian.Uint32(row[8:12])
	params := decodeTypeList(s.vararea[po : po+uint32(pc)])
	results := decodeTypeList(s.vararea[ro : ro+uint32(rc)])
	return TypeEntry{Params: params, Results: results}
}

func decodeTypeList(b []byte) []DataType {
	out := make([]DataType, len(b))
	for i, c := range b {
		out[i] = DataType(c)
	}
	return out
}

// BuildTypeSection serializes a list of type entries into a section body.
func BuildTypeSection(entries []TypeEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*typeRecordSize)
	for i, e := range entries {
		po := uint32(len(vararea))
		for _, t := range e.Params {
			vararea = append(vararea, byte(t))
		}
		ro := uint32(len(vararea))
		for _, t := range e.Results {
			vararea = append(vararea, byte(t))
		}
		row := table[i*typeRecordSize : i*typeRecordSize+typeRecordSize]
		binary.LittleEndian.PutUint16(row[0:2], uint16(len(e.Params)))
		binary.LittleEndian.PutUint16(row[2:4], uint16(len(e.Results)))
		binary.LittleEndian.PutUint32(row[4:8], po)
		binary.LittleEndian.PutUint32(row[8:12], ro)
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	out = append(out, pad4(vararea)...)
	return out
}
