// Completion: 100% - Module image builder complete
package image

import "bytes"

// SectionBuilderEntry is one section awaiting serialization: an id plus
// its already-encoded body (e.g. from BuildTypeSection). Offsets and
// lengths are computed from incremental buffer sizes as entries are
// appended (spec.md §4.1: build_from_entries).
type SectionBuilderEntry struct {
	ID   SectionID
	Body []byte
}

// Build lays out entries back to back (each already 4-byte aligned by its
// own Build* function) and returns the section table plus the
// concatenated bytes, ready for Save.
func Build(entries []SectionBuilderEntry) ([]SectionEntry, []byte) {
	table := make([]SectionEntry, len(entries))
	var buf bytes.Buffer
	for i, e := range entries {
		table[i] = SectionEntry{ID: e.ID, Offset: uint32(buf.Len()), Length: uint32(len(e.Body))}
		buf.Write(e.Body)
	}
	return table, buf.Bytes()
}

// BuildAndSave is the convenience path used by assemblers/linkers (out of
// CORE scope, but exercised by image_test.go as the round-trip entry
// point): it lays out entries, then writes the full image via Save.
func BuildAndSave(entries []SectionBuilderEntry) []byte {
	table, body := Build(entries)
	bodies := make([][]byte, len(entries))
	offset := 0
	for i, s := range table {
		bodies[i] = body[offset : offset+int(s.Length)]
		offset += int(s.Length)
	}
	var out bytes.Buffer
	_ = Save(table, bodies, &out)
	return out.Bytes()
}
