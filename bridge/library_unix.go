//go:build linux || darwin

package bridge

import "golang.org/x/sys/unix"

// dlopenFlags mirrors the teacher's filewatcher_unix.go pattern of
// reaching for golang.org/x/sys/unix constants instead of hand-rolling
// them: RTLD_NOW resolves every symbol eagerly, trading load-time cost
// for never failing a lookup deep inside a later extcall.
func dlopenFlags() int {
	return unix.RTLD_NOW
}
