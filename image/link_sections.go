package image

import "encoding/binary"

// LibraryKind classifies how an external library's path is resolved
// (spec.md §4.5): System libraries are found on the system search path by
// name; Share comes from a shared runtime cache; Local/User resolve
// relative to the application root.
type LibraryKind uint32

const (
	LibrarySystem LibraryKind = iota
	LibraryShare
	LibraryLocal
	LibraryUser
)

func (k LibraryKind) String() string {
	switch k {
	case LibrarySystem:
		return "system"
	case LibraryShare:
		return "share"
	case LibraryLocal:
		return "local"
	case LibraryUser:
		return "user"
	default:
		return "unknown"
	}
}

// --- ImportModule -----------------------------------------------------

const importModuleRecordSize = 12 // {name_offset:u32, name_length:u32, version:u32 (major<<16|minor)}

// ImportModuleEntry names another module this one depends on.
type ImportModuleEntry struct {
	Name         string
	VersionMajor uint16
	VersionMinor uint16
}

// ImportModuleSection is the zero-copy view over the ImportModule section.
type ImportModuleSection struct{ table, vararea []byte; count uint32 }

func LoadImportModuleSection(b []byte) *ImportModuleSection {
	count, rest := readTableHeader(b)
	n := int(count) * importModuleRecordSize
	return &ImportModuleSection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ImportModuleSection) Len() int { return int(s.count) }

func (s *ImportModuleSection) Get(i int) ImportModuleEntry {
	row := s.table[i*importModuleRecordSize : i*importModuleRecordSize+importModuleRecordSize]
	off := binary.LittleEndian.Uint32(row[0:4])
	length := binary.LittleEndian.Uint32(row[4:8])
	ver := binary.LittleEndian.Uint32(row[8:12])
	return ImportModuleEntry{
		Name:         string(s.vararea[off : off+length]),
		VersionMajor: uint16(ver >> 16),
		VersionMinor: uint16(ver),
	}
}

func BuildImportModuleSection(entries []ImportModuleEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*importModuleRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*importModuleRecordSize : i*importModuleRecordSize+importModuleRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], off)
		binary.LittleEndian.PutUint32(row[4:8], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[8:12], uint32(e.VersionMajor)<<16|uint32(e.VersionMinor))
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}

// --- ImportFunction -----------------------------------------------------

const importFunctionRecordSize = 16 // {module_index:u32, name_offset:u32, name_length:u32, type_index:u32}

type ImportFunctionEntry struct {
	ModuleIndex uint32
	Name        string
	TypeIndex   uint32
}

type ImportFunctionSection struct{ table, vararea []byte; count uint32 }

func LoadImportFunctionSection(b []byte) *ImportFunctionSection {
	count, rest := readTableHeader(b)
	n := int(count) * importFunctionRecordSize
	return &ImportFunctionSection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ImportFunctionSection) Len() int { return int(s.count) }

func (s *ImportFunctionSection) Get(i int) ImportFunctionEntry {
	row := s.table[i*importFunctionRecordSize : i*importFunctionRecordSize+importFunctionRecordSize]
	mod := binary.LittleEndian.Uint32(row[0:4])
	off := binary.LittleEndian.Uint32(row[4:8])
	length := binary.LittleEndian.Uint32(row[8:12])
	ty := binary.LittleEndian.Uint32(row[12:16])
	return ImportFunctionEntry{ModuleIndex: mod, Name: string(s.vararea[off : off+length]), TypeIndex: ty}
}

func BuildImportFunctionSection(entries []ImportFunctionEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*importFunctionRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*importFunctionRecordSize : i*importFunctionRecordSize+importFunctionRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.ModuleIndex)
		binary.LittleEndian.PutUint32(row[4:8], off)
		binary.LittleEndian.PutUint32(row[8:12], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[12:16], e.TypeIndex)
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}

// --- ImportData -----------------------------------------------------

const importDataRecordSize = 16 // {module_index:u32, name_offset:u32, name_length:u32, segment_kind:u32}

type ImportDataEntry struct {
	ModuleIndex uint32
	Name        string
	SegmentKind SegmentKind
}

type ImportDataSection struct{ table, vararea []byte; count uint32 }

func LoadImportDataSection(b []byte) *ImportDataSection {
	count, rest := readTableHeader(b)
	n := int(count) * importDataRecordSize
	return &ImportDataSection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ImportDataSection) Len() int { return int(s.count) }

func (s *ImportDataSection) Get(i int) ImportDataEntry {
	row := s.table[i*importDataRecordSize : i*importDataRecordSize+importDataRecordSize]
	mod := binary.LittleEndian.Uint32(row[0:4])
	off := binary.LittleEndian.Uint32(row[4:8])
	length := binary.LittleEndian.Uint32(row[8:12])
	kind := binary.LittleEndian.Uint32(row[12:16])
	return ImportDataEntry{ModuleIndex: mod, Name: string(s.vararea[off : off+length]), SegmentKind: SegmentKind(kind)}
}

func BuildImportDataSection(entries []ImportDataEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*importDataRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*importDataRecordSize : i*importDataRecordSize+importDataRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.ModuleIndex)
		binary.LittleEndian.PutUint32(row[4:8], off)
		binary.LittleEndian.PutUint32(row[8:12], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[12:16], uint32(e.SegmentKind))
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}

// SegmentKind distinguishes which of the three data segments a datum
// belongs to (spec.md §3.3/§3.4).
type SegmentKind uint32

const (
	SegmentReadOnly SegmentKind = iota
	SegmentReadWrite
	SegmentUninit
)

// --- ExternalLibrary -----------------------------------------------------

const externalLibraryRecordSize = 12 // {name_offset:u32, name_length:u32, kind:u32}

type ExternalLibraryEntry struct {
	Name string
	Kind LibraryKind
}

type ExternalLibrarySection struct{ table, vararea []byte; count uint32 }

func LoadExternalLibrarySection(b []byte) *ExternalLibrarySection {
	count, rest := readTableHeader(b)
	n := int(count) * externalLibraryRecordSize
	return &ExternalLibrarySection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ExternalLibrarySection) Len() int { return int(s.count) }

func (s *ExternalLibrarySection) Get(i int) ExternalLibraryEntry {
	row := s.table[i*externalLibraryRecordSize : i*externalLibraryRecordSize+externalLibraryRecordSize]
	off := binary.LittleEndian.Uint32(row[0:4])
	length := binary.LittleEndian.Uint32(row[4:8])
	kind := binary.LittleEndian.Uint32(row[8:12])
	return ExternalLibraryEntry{Name: string(s.vararea[off : off+length]), Kind: LibraryKind(kind)}
}

func BuildExternalLibrarySection(entries []ExternalLibraryEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*externalLibraryRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*externalLibraryRecordSize : i*externalLibraryRecordSize+externalLibraryRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], off)
		binary.LittleEndian.PutUint32(row[4:8], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[8:12], uint32(e.Kind))
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}

// --- ExternalFunction -----------------------------------------------------

const externalFunctionRecordSize = 16 // {library_index:u32, name_offset:u32, name_length:u32, type_index:u32}

type ExternalFunctionEntry struct {
	LibraryIndex uint32
	Name         string
	TypeIndex    uint32
}

type ExternalFunctionSection struct{ table, vararea []byte; count uint32 }

func LoadExternalFunctionSection(b []byte) *ExternalFunctionSection {
	count, rest := readTableHeader(b)
	n := int(count) * externalFunctionRecordSize
	return &ExternalFunctionSection{table: rest[:n], vararea: rest[n:], count: count}
}

func (s *ExternalFunctionSection) Len() int { return int(s.count) }

func (s *ExternalFunctionSection) Get(i int) ExternalFunctionEntry {
	row := s.table[i*externalFunctionRecordSize : i*externalFunctionRecordSize+externalFunctionRecordSize]
	lib := binary.LittleEndian.Uint32(row[0:4])
	off := binary.LittleEndian.Uint32(row[4:8])
	length := binary.LittleEndian.Uint32(row[8:12])
	ty := binary.LittleEndian.Uint32(row[12:16])
	return ExternalFunctionEntry{LibraryIndex: lib, Name: string(s.vararea[off : off+length]), TypeIndex: ty}
}

func BuildExternalFunctionSection(entries []ExternalFunctionEntry) []byte {
	var vararea []byte
	table := make([]byte, len(entries)*externalFunctionRecordSize)
	for i, e := range entries {
		off := uint32(len(vararea))
		vararea = append(vararea, e.Name...)
		row := table[i*externalFunctionRecordSize : i*externalFunctionRecordSize+externalFunctionRecordSize]
		binary.LittleEndian.PutUint32(row[0:4], e.LibraryIndex)
		binary.LittleEndian.PutUint32(row[4:8], off)
		binary.LittleEndian.PutUint32(row[8:12], uint32(len(e.Name)))
		binary.LittleEndian.PutUint32(row[12:16], e.TypeIndex)
	}
	out := append(writeTableHeader(uint32(len(entries))), table...)
	return append(out, pad4(vararea)...)
}
