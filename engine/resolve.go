package engine

import "github.com/xyproto/sxvm/image"

// linearScanThreshold is the module-count cutoff below which a linear
// scan beats a binary search's setup cost (spec.md §9: "linear scan is
// acceptable for the expected module counts (≤ tens)").
const linearScanThreshold = 8

// rowForModule returns the flat-table row index for localPublicIndex
// within moduleIndex's RangeItem (spec.md §3.4: a public index is scoped
// to the calling module; the RangeItem gives that module's contiguous run
// within the application-wide table).
func rowForModule(ranges []image.RangeItem, moduleIndex int, localPublicIndex uint32) (row int, ok bool) {
	if moduleIndex < 0 || moduleIndex >= len(ranges) {
		return 0, false
	}
	r := ranges[moduleIndex]
	if localPublicIndex >= r.Count {
		return 0, false
	}
	return int(r.Offset) + int(localPublicIndex), true
}

// moduleForRow is the reverse direction (spec.md §9: "RangeItem binary
// search... a single public index into a (module, local_index) pair"):
// given a flat row index into the application-wide table, find which
// module's range it falls in. Only resolve_test.go calls it. Ranges are
// assumed sorted by
// Offset, as produced by any well-formed linker.
func moduleForRow(ranges []image.RangeItem, row uint32) (moduleIndex int, localIndex uint32, ok bool) {
	if len(ranges) < linearScanThreshold {
		for i, r := range ranges {
			if row >= r.Offset && row < r.Offset+r.Count {
				return i, row - r.Offset, true
			}
		}
		return 0, 0, false
	}

	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := ranges[mid]
		switch {
		case row < r.Offset:
			hi = mid - 1
		case row >= r.Offset+r.Count:
			lo = mid + 1
		default:
			return mid, row - r.Offset, true
		}
	}
	return 0, 0, false
}
