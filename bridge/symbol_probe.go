// Completion: 75% - Best-effort symbol probing before dlsym
package bridge

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"os"
	"runtime"
	"strings"
)

// probePath reports whether path looks like something symbolExists can
// actually open: a real file on disk. Bare System-library names (e.g.
// "libc.so.6", resolved by the platform loader's own search path) are
// skipped — probing would just re-implement that search, badly.
func probePath(path string) bool {
	if !strings.ContainsRune(path, os.PathSeparator) {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// symbolExists does a best-effort check that name is an exported symbol
// of the object at path, using the stdlib debug/{elf,macho,pe} readers
// the teacher leans on heavily for its own ExternalLibrary introspection
// (elf_complete.go, macho.go, pe.go). A probe failure (unreadable format,
// stripped binary) is treated as "can't tell" rather than "missing" —
// dlsym remains the authority; this only turns its opaque failure into
// an earlier, clearer ErrSymbolNotFound.
func symbolExists(path, name string) bool {
	switch runtime.GOOS {
	case "linux":
		return elfHasSymbol(path, name)
	case "darwin":
		return machoHasSymbol(path, name)
	case "windows":
		return peHasSymbol(path, name)
	default:
		return true
	}
}

func elfHasSymbol(path, name string) bool {
	f, err := elf.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if err != nil {
		return true
	}
	for _, s := range syms {
		if s.Name == name {
			return true
		}
	}
	return false
}

func machoHasSymbol(path, name string) bool {
	f, err := macho.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	if f.Symtab == nil {
		return true
	}
	for _, s := range f.Symtab.Syms {
		if s.Name == name || s.Name == "_"+name {
			return true
		}
	}
	return false
}

func peHasSymbol(path, name string) bool {
	f, err := pe.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	for _, s := range f.Symbols {
		if s.Name == name {
			return true
		}
	}
	return false
}
