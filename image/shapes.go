package image

import "encoding/binary"

// Every section follows one of three shapes (spec.md §3.1):
//
//  1. single-table:        {count:u32, pad:u32} + count fixed records
//  2. table + variable:    shape 1's header/table, then a 4-byte-aligned byte area
//  3. two-table:           header, table-0 records, table-1 (count inferred)
//
// readTableHeader/writeTableHeader implement the {count,pad} prefix shared
// by all three shapes.

func readTableHeader(b []byte) (count uint32, rest []byte) {
	return binary.LittleEndian.Uint32(b[0:4]), b[8:]
}

func writeTableHeader(count uint32) []byte {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], count)
	return hdr[:]
}

// RangeItem delimits, for one module, a contiguous run of rows in a
// second-level table (spec.md §3.4, §9: resolved via binary search over
// the small per-module ranges).
type RangeItem struct {
	Offset uint32
	Count  uint32
}

func readRangeItems(b []byte, n uint32) []RangeItem {
	items := make([]RangeItem, n)
	for i := range items {
		row := b[i*8 : i*8+8]
		items[i] = RangeItem{
			Offset: binary.LittleEndian.Uint32(row[0:4]),
			Count:  binary.LittleEndian.Uint32(row[4:8]),
		}
	}
	return items
}

func writeRangeItems(items []RangeItem) []byte {
	out := make([]byte, len(items)*8)
	for i, it := range items {
		row := out[i*8 : i*8+8]
		binary.LittleEndian.PutUint32(row[0:4], it.Offset)
		binary.LittleEndian.PutUint32(row[4:8], it.Count)
	}
	return out
}

func pad4(b []byte) []byte {
	if p := padLen(len(b)); p > 0 {
		return append(b, make([]byte, p)...)
	}
	return b
}
