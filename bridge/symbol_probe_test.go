package bridge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbePathBareNameSkipped(t *testing.T) {
	if probePath("libc.so.6") {
		t.Error("bare library name should never be probed")
	}
}

func TestProbePathMissingFile(t *testing.T) {
	if probePath(filepath.Join(os.TempDir(), "sxvm-loader-test-definitely-missing.so")) {
		t.Error("nonexistent path should not probe as present")
	}
}

func TestProbePathRealFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "sxvm-loader-test-*.so")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := f.Name()
	f.Close()

	if !probePath(path) {
		t.Errorf("existing file %q should probe as present", path)
	}
}

func TestSymbolExistsUnreadableFileIsInconclusive(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "sxvm-loader-test-*.bin")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := f.Name()
	f.WriteString("not an object file")
	f.Close()

	if !elfHasSymbol(path, "whatever") {
		t.Error("unparsable file should be treated as inconclusive (true), not a definite miss")
	}
}
