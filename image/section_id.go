package image

// SectionID identifies a section. The numeric space is partitioned into
// four closed ranges (spec.md §3.1).
type SectionID uint32

const (
	// Essential — always present.
	SectionType SectionID = iota + 1
	SectionLocalVariable
	SectionFunction
	SectionCommonProperty
)

const (
	// Data — optional.
	SectionReadOnlyData SectionID = iota + 0x10
	SectionReadWriteData
	SectionUninitData
)

const (
	// Debug/link — optional.
	SectionFunctionName SectionID = iota + 0x20
	SectionDataName
	SectionImportModule
	SectionImportFunction
	SectionImportData
	SectionExternalLibrary
	SectionExternalFunction
)

const (
	// Application-only — present only in the linked application's main module.
	SectionFunctionIndex SectionID = iota + 0x40
	SectionIndexProperty
	SectionDataIndex
	SectionUnifiedExternalLibrary
	SectionUnifiedExternalFunction
	SectionExternalFunctionIndex
	SectionModuleList
)

// IsEssential reports whether id belongs to the always-present range.
func (id SectionID) IsEssential() bool {
	return id >= SectionType && id <= SectionCommonProperty
}

// IsApplicationOnly reports whether id belongs to the linked-application-only range.
func (id SectionID) IsApplicationOnly() bool {
	return id >= SectionFunctionIndex && id <= SectionModuleList
}
