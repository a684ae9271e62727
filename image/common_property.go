package image

import "encoding/binary"

// NoFunction marks an absent optional function public index.
const NoFunction uint32 = 0xFFFFFFFF

// CommonProperty carries the module-wide optional constructor/destructor
// function public indices (spec.md §3.1, listed only by name as always
// present; the original Rust crates call the equivalent module-level
// metadata "common property").
type CommonProperty struct {
	ConstructorFunctionIndex uint32
	DestructorFunctionIndex  uint32
}

// LoadCommonPropertySection parses the single-record CommonProperty section.
func LoadCommonPropertySection(b []byte) CommonProperty {
	_, rest := readTableHeader(b)
	return CommonProperty{
		ConstructorFunctionIndex: binary.LittleEndian.Uint32(rest[0:4]),
		DestructorFunctionIndex:  binary.LittleEndian.Uint32(rest[4:8]),
	}
}

// BuildCommonPropertySection serializes a CommonProperty section body.
func BuildCommonPropertySection(p CommonProperty) []byte {
	out := writeTableHeader(1)
	var row [8]byte
	binary.LittleEndian.PutUint32(row[0:4], p.ConstructorFunctionIndex)
	binary.LittleEndian.PutUint32(row[4:8], p.DestructorFunctionIndex)
	return append(out, row[:]...)
}
