package bridge

import (
	"path/filepath"
	"testing"

	"github.com/xyproto/sxvm/image"
)

func TestResolvePath(t *testing.T) {
	l := &Loader{
		runtimeRoot: "/runtime",
		appRoot:     "/app",
		handles:     make(map[string]uintptr),
	}

	cases := []struct {
		name string
		kind image.LibraryKind
		want string
	}{
		{"libc.so.6", image.LibrarySystem, "libc.so.6"},
		{"libfoo.so", image.LibraryShare, filepath.Join("/runtime", "share", "libfoo.so")},
		{"libbar.so", image.LibraryLocal, filepath.Join("/app", "lib", "libbar.so")},
		{"plugin.so", image.LibraryUser, filepath.Join("/app", "plugin.so")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := l.resolvePath(image.ExternalLibraryEntry{Name: c.name, Kind: c.kind})
			if got != c.want {
				t.Errorf("resolvePath(%s, %s) = %q, want %q", c.name, c.kind, got, c.want)
			}
		})
	}
}

func TestOpenCachesHandleByResolvedPath(t *testing.T) {
	l := &Loader{handles: make(map[string]uintptr)}
	l.handles["/already/open.so"] = 0xdeadbeef

	h, err := l.Open(image.ExternalLibraryEntry{Name: "/already/open.so", Kind: image.LibrarySystem})
	if err != nil || h != 0xdeadbeef {
		t.Fatalf("expected cached handle to be reused, got %v, %v", h, err)
	}
}
