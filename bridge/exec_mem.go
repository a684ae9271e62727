//go:build linux || darwin

// Completion: 90% - Executable page allocator complete
package bridge

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// execPageSize is the allocation granularity for generated trampolines;
// a real mmap is always at least one page, so small stubs are packed
// together within one page rather than one mmap per stub.
const execPageSize = 4096

// execArena bump-allocates generated machine code into mmap'd RWX pages.
// Pages are never freed individually (spec.md Non-goals: no JIT of VM
// bytecode, no GC) — a process typically generates a bounded, small
// number of distinct wrapper/callback signatures, so the arena just grows.
type execArena struct {
	mu     sync.Mutex
	pages  [][]byte
	cursor int // offset into the last page
}

var globalExecArena = &execArena{}

// writeCode copies code into executable memory and returns a callable
// address. A new page is mapped RW and made RX once written; while it
// still has room for further stubs it is then reopened RWX, so W^X holds
// only for pages that are full.
func (a *execArena) writeCode(code []byte) (uintptr, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(code) > execPageSize {
		return 0, fmt.Errorf("bridge: generated trampoline of %d bytes exceeds page size", len(code))
	}

	if len(a.pages) == 0 || a.cursor+len(code) > execPageSize {
		page, err := unix.Mmap(-1, 0, execPageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
		if err != nil {
			return 0, fmt.Errorf("bridge: mmap executable page: %w", err)
		}
		a.pages = append(a.pages, page)
		a.cursor = 0
	}

	page := a.pages[len(a.pages)-1]
	off := a.cursor
	copy(page[off:], code)
	a.cursor += len(code)

	if err := unix.Mprotect(page, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return 0, fmt.Errorf("bridge: mprotect executable page: %w", err)
	}
	// Writing the next stub into this same page requires write permission
	// again, so the page is reopened RWX: stubs already handed out on it
	// stay executable while the page stays writable.
	if a.cursor < execPageSize {
		if err := unix.Mprotect(page, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC); err != nil {
			return 0, fmt.Errorf("bridge: mprotect executable page rw: %w", err)
		}
	}

	return uintptr(unsafe.Pointer(&page[0])) + uintptr(off), nil
}
