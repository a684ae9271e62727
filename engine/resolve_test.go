package engine

import (
	"testing"

	"github.com/xyproto/sxvm/image"
)

func TestRowForModule(t *testing.T) {
	ranges := []image.RangeItem{
		{Offset: 0, Count: 3},
		{Offset: 3, Count: 0},
		{Offset: 3, Count: 2},
	}
	cases := []struct {
		name        string
		module      int
		localIndex  uint32
		wantRow     int
		wantOK      bool
	}{
		{"first module first entry", 0, 0, 0, true},
		{"first module last entry", 0, 2, 2, true},
		{"first module out of range", 0, 3, 0, false},
		{"empty module", 1, 0, 0, false},
		{"third module first entry", 2, 0, 3, true},
		{"third module second entry", 2, 1, 4, true},
		{"module index out of range", 5, 0, 0, false},
		{"negative module index", -1, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			row, ok := rowForModule(ranges, c.module, c.localIndex)
			if ok != c.wantOK {
				t.Fatalf("ok = %v, want %v", ok, c.wantOK)
			}
			if ok && row != c.wantRow {
				t.Errorf("row = %d, want %d", row, c.wantRow)
			}
		})
	}
}

func TestModuleForRow(t *testing.T) {
	// Below linearScanThreshold: exercises the linear-scan path.
	small := []image.RangeItem{
		{Offset: 0, Count: 3},
		{Offset: 3, Count: 0},
		{Offset: 3, Count: 2},
	}
	if m, i, ok := moduleForRow(small, 4); !ok || m != 2 || i != 1 {
		t.Errorf("small: got (%d,%d,%v), want (2,1,true)", m, i, ok)
	}
	if _, _, ok := moduleForRow(small, 5); ok {
		t.Errorf("small: row 5 should be out of range")
	}

	// At/above linearScanThreshold: exercises the binary-search path.
	large := make([]image.RangeItem, 10)
	offset := uint32(0)
	for i := range large {
		large[i] = image.RangeItem{Offset: offset, Count: 4}
		offset += 4
	}
	m, i, ok := moduleForRow(large, 21)
	if !ok || m != 5 || i != 1 {
		t.Errorf("large: got (%d,%d,%v), want (5,1,true)", m, i, ok)
	}
	if _, _, ok := moduleForRow(large, 40); ok {
		t.Errorf("large: row 40 should be out of range")
	}

	// Linear and binary search must agree on every valid row.
	for row := uint32(0); row < offset; row++ {
		linM, linI, linOK := func() (int, uint32, bool) {
			for idx, r := range large {
				if row >= r.Offset && row < r.Offset+r.Count {
					return idx, row - r.Offset, true
				}
			}
			return 0, 0, false
		}()
		binM, binI, binOK := moduleForRow(large, row)
		if linM != binM || linI != binI || linOK != binOK {
			t.Fatalf("row %d: linear=(%d,%d,%v) binary=(%d,%d,%v)", row, linM, linI, linOK, binM, binI, binOK)
		}
	}
}
