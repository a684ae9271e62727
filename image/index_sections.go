package image

import "encoding/binary"

// These are the application-only sections (spec.md §3.4), present only in
// the linked application's main module. FunctionIndex and DataIndex use
// the two-table shape: table-0 is one RangeItem per module (delimiting
// that module's rows in table-1); table-1's row count is inferred from
// the remaining bytes divided by its record size.

// --- FunctionIndex -----------------------------------------------------

const functionIndexRowSize = 8 // {target_module:u32, internal_index:u32}

type FunctionIndexEntry struct {
	TargetModule  uint32
	InternalIndex uint32
}

// FunctionIndexSection maps a public function index to its owning module
// and that module's internal index.
type FunctionIndexSection struct {
	ranges []RangeItem
	rows   []byte
}

func LoadFunctionIndexSection(b []byte) *FunctionIndexSection {
	count, rest := readTableHeader(b)
	rangeBytes := int(count) * 8
	ranges := readRangeItems(rest[:rangeBytes], count)
	return &FunctionIndexSection{ranges: ranges, rows: rest[rangeBytes:]}
}

// ModuleCount returns the number of modules covered by table-0.
func (s *FunctionIndexSection) ModuleCount() int { return len(s.ranges) }

// Len returns the total number of public-index rows.
func (s *FunctionIndexSection) Len() int { return len(s.rows) / functionIndexRowSize }

// Get resolves public index i.
func (s *FunctionIndexSection) Get(i int) FunctionIndexEntry {
	row := s.rows[i*functionIndexRowSize : i*functionIndexRowSize+functionIndexRowSize]
	return FunctionIndexEntry{
		TargetModule:  binary.LittleEndian.Uint32(row[0:4]),
		InternalIndex: binary.LittleEndian.Uint32(row[4:8]),
	}
}

// Range returns the RangeItem for the module whose imported-then-local
// function entries begin at its Offset (spec.md §9: RangeItem binary
// search, linear-scan acceptable for the expected small module counts).
func (s *FunctionIndexSection) Range(moduleIndex int) RangeItem { return s.ranges[moduleIndex] }

func BuildFunctionIndexSection(ranges []RangeItem, rows []FunctionIndexEntry) []byte {
	rowBytes := make([]byte, len(rows)*functionIndexRowSize)
	for i, r := range rows {
		row := rowBytes[i*functionIndexRowSize : i*functionIndexRowSize+functionIndexRowSize]
		binary.LittleEndian.PutUint32(row[0:4], r.TargetModule)
		binary.LittleEndian.PutUint32(row[4:8], r.InternalIndex)
	}
	out := writeTableHeader(uint32(len(ranges)))
	out = append(out, writeRangeItems(ranges)...)
	return append(out, rowBytes...)
}

// --- DataIndex -----------------------------------------------------

const dataIndexRowSize = 12 // {target_module:u32, internal_index:u32, segment_kind:u32}

type DataIndexEntry struct {
	TargetModule  uint32
	InternalIndex uint32
	SegmentKind   SegmentKind
}

type DataIndexSection struct {
	ranges []RangeItem
	rows   []byte
}

func LoadDataIndexSection(b []byte) *DataIndexSection {
	count, rest := readTableHeader(b)
	rangeBytes := int(count) * 8
	ranges := readRangeItems(rest[:rangeBytes], count)
	return &DataIndexSection{ranges: ranges, rows: rest[rangeBytes:]}
}

func (s *DataIndexSection) ModuleCount() int { return len(s.ranges) }
func (s *DataIndexSection) Len() int         { return len(s.rows) / dataIndexRowSize }

func (s *DataIndexSection) Get(i int) DataIndexEntry {
	row := s.rows[i*dataIndexRowSize : i*dataIndexRowSize+dataIndexRowSize]
	return DataIndexEntry{
		TargetModule:  binary.LittleEndian.Uint32(row[0:4]),
		InternalIndex: binary.LittleEndian.Uint32(row[4:8]),
		SegmentKind:   SegmentKind(binary.LittleEndian.Uint32(row[8:12])),
	}
}

func (s *DataIndexSection) Range(moduleIndex int) RangeItem { return s.ranges[moduleIndex] }

func BuildDataIndexSection(ranges []RangeItem, rows []DataIndexEntry) []byte {
	rowBytes := make([]byte, len(rows)*dataIndexRowSize)
	for i, r := range rows {
		row := rowBytes[i*dataIndexRowSize : i*dataIndexRowSize+dataIndexRowSize]
		binary.LittleEndian.PutUint32(row[0:4], r.TargetModule)
		binary.LittleEndian.PutUint32(row[4:8], r.InternalIndex)
		binary.LittleEndian.PutUint32(row[8:12], uint32(r.SegmentKind))
	}
	out := writeTableHeader(uint32(len(ranges)))
	out = append(out, writeRangeItems(ranges)...)
	return append(out, rowBytes...)
}

// --- UnifiedExternalLibrary/Function -----------------------------------

// UnifiedExternalLibrarySection/UnifiedExternalFunctionSection reuse the
// ExternalLibrary/ExternalFunction record shapes, deduplicated across
// modules and addressed by a single unified index (spec.md §3.4).
type UnifiedExternalLibrarySection = ExternalLibrarySection
type UnifiedExternalFunctionSection = ExternalFunctionSection

func LoadUnifiedExternalLibrarySection(b []byte) *UnifiedExternalLibrarySection {
	return LoadExternalLibrarySection(b)
}
func BuildUnifiedExternalLibrarySection(entries []ExternalLibraryEntry) []byte {
	return BuildExternalLibrarySection(entries)
}
func LoadUnifiedExternalFunctionSection(b []byte) *UnifiedExternalFunctionSection {
	return LoadExternalFunctionSection(b)
}
func BuildUnifiedExternalFunctionSection(entries []ExternalFunctionEntry) []byte {
	return BuildExternalFunctionSection(entries)
}

// --- ExternalFunctionIndex -----------------------------------------------------

const externalFunctionIndexRowSize = 8 // {unified_external_function_index:u32, type_index:u32}

type ExternalFunctionIndexEntry struct {
	UnifiedExternalFunctionIndex uint32
	TypeIndex                    uint32
}

// ExternalFunctionIndexSection maps a per-module external function index
// to the deduplicated unified index plus its type (spec.md §3.4).
type ExternalFunctionIndexSection struct {
	ranges []RangeItem
	rows   []byte
}

func LoadExternalFunctionIndexSection(b []byte) *ExternalFunctionIndexSection {
	count, rest := readTableHeader(b)
	rangeBytes := int(count) * 8
	ranges := readRangeItems(rest[:rangeBytes], count)
	return &ExternalFunctionIndexSection{ranges: ranges, rows: rest[rangeBytes:]}
}

func (s *ExternalFunctionIndexSection) ModuleCount() int { return len(s.ranges) }
func (s *ExternalFunctionIndexSection) Len() int         { return len(s.rows) / externalFunctionIndexRowSize }

func (s *ExternalFunctionIndexSection) Get(i int) ExternalFunctionIndexEntry {
	row := s.rows[i*externalFunctionIndexRowSize : i*externalFunctionIndexRowSize+externalFunctionIndexRowSize]
	return ExternalFunctionIndexEntry{
		UnifiedExternalFunctionIndex: binary.LittleEndian.Uint32(row[0:4]),
		TypeIndex:                    binary.LittleEndian.Uint32(row[4:8]),
	}
}

func (s *ExternalFunctionIndexSection) Range(moduleIndex int) RangeItem { return s.ranges[moduleIndex] }

func BuildExternalFunctionIndexSection(ranges []RangeItem, rows []ExternalFunctionIndexEntry) []byte {
	rowBytes := make([]byte, len(rows)*externalFunctionIndexRowSize)
	for i, r := range rows {
		row := rowBytes[i*externalFunctionIndexRowSize : i*externalFunctionIndexRowSize+externalFunctionIndexRowSize]
		binary.LittleEndian.PutUint32(row[0:4], r.UnifiedExternalFunctionIndex)
		binary.LittleEndian.PutUint32(row[4:8], r.TypeIndex)
	}
	out := writeTableHeader(uint32(len(ranges)))
	out = append(out, writeRangeItems(ranges)...)
	return append(out, rowBytes...)
}

// --- IndexProperty -----------------------------------------------------

// IndexProperty carries the entry-function public index and the runtime
// version the application requires (spec.md §3.4).
type IndexProperty struct {
	EntryFunctionPublicIndex uint32
	RuntimeMajor             uint16
	RuntimeMinor             uint16
}

func LoadIndexPropertySection(b []byte) IndexProperty {
	_, rest := readTableHeader(b)
	return IndexProperty{
		EntryFunctionPublicIndex: binary.LittleEndian.Uint32(rest[0:4]),
		RuntimeMajor:             binary.LittleEndian.Uint16(rest[4:6]),
		RuntimeMinor:             binary.LittleEndian.Uint16(rest[6:8]),
	}
}

func BuildIndexPropertySection(p IndexProperty) []byte {
	out := writeTableHeader(1)
	var row [8]byte
	binary.LittleEndian.PutUint32(row[0:4], p.EntryFunctionPublicIndex)
	binary.LittleEndian.PutUint16(row[4:6], p.RuntimeMajor)
	binary.LittleEndian.PutUint16(row[6:8], p.RuntimeMinor)
	return append(out, row[:]...)
}

// --- ModuleList -----------------------------------------------------

const moduleListRecordSize = 12 // {name_offset:u32, name_length:u32, version:u32}

type ModuleListEntry struct {
	Name         string
	VersionMajor uint16
	VersionMinor uint16
}

type ModuleListSection struct{ table, vararea []byte; count uint32 }

func LoadModuleListSection(b []byte) *ModuleListSection {
	count, rest := readTableHeader(b)
	n := int(count) * moduleListRecordSize
	return &ModuleListSection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ModuleListSection) Len() int { return int(s.count) }

func (s *ModuleListSection) Get(i int) ModuleListEntry {
	row := s.table[i*moduleListRecordSize : i*moduleListRecordSize+moduleListRecordSize]
	off := binary.LittleEndian.Uint32(row[0:4])
	length := binary.LittleEndian.Uint32(row[4:8])
	ver := binary.LittleEndian.Uint32(row[8:12])
	return ModuleListEntry{
		Name:         string(s.vararea[off : off+length]),
		VersionMajor: uint16(ver >> 16),
		VersionMinor: uint16(ver),
	}
}

func BuildModuleListSection(entries []ModuleListEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*moduleListRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*moduleListRecordSize : i*moduleListRecordSize+moduleListRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], off)
		binary.LittleEndian.PutUint32(row[4:8], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[8:12], uint32(e.VersionMajor)<<16|uint32(e.VersionMinor))
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}
