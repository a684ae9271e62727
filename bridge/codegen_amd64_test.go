//go:build amd64

package bridge

import "testing"

func TestSignatureKey(t *testing.T) {
	cases := []struct {
		name string
		sig  Signature
		want string
	}{
		{"no args no result", Signature{}, "|V"},
		{"two int args, int result", Signature{Params: []ArgKind{ArgInt, ArgInt}, HasResult: true, Result: ArgInt}, "ii|I"},
		{"int then float arg, float result", Signature{Params: []ArgKind{ArgInt, ArgFloat}, HasResult: true, Result: ArgFloat}, "if|F"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.sig.key(); got != c.want {
				t.Errorf("key() = %q, want %q", got, c.want)
			}
		})
	}
}

// TestBuildWrapperNoArgsNoResult checks the exact encoded bytes for the
// simplest wrapper shape against a hand-traced System V sequence: stash
// the result pointer, move fn/params into scratch registers, call, and
// discard the unused result slot.
func TestBuildWrapperNoArgsNoResult(t *testing.T) {
	code, err := buildWrapper(Signature{})
	if err != nil {
		t.Fatalf("buildWrapper: %v", err)
	}
	want := []byte{
		0x52,                   // push rdx
		0x49, 0x89, 0xFA,       // mov r10, rdi
		0x49, 0x89, 0xF3,       // mov r11, rsi
		0x41, 0xFF, 0xD2,       // call r10
		0x59,                   // pop rcx (discarded)
		0xC3,                   // ret
	}
	if len(code) != len(want) {
		t.Fatalf("len(code) = %d, want %d; code=% x", len(code), len(want), code)
	}
	for i := range want {
		if code[i] != want[i] {
			t.Fatalf("code[%d] = %#x, want %#x; full code=% x", i, code[i], want[i], code)
		}
	}
}

func TestBuildWrapperTooManyIntArgs(t *testing.T) {
	params := make([]ArgKind, len(intArgRegs)+1)
	for i := range params {
		params[i] = ArgInt
	}
	_, err := buildWrapper(Signature{Params: params})
	if err != ErrTooManyArgs {
		t.Fatalf("err = %v, want ErrTooManyArgs", err)
	}
}

func TestBuildWrapperTooManyFloatArgs(t *testing.T) {
	params := make([]ArgKind, maxFloatArgs+1)
	for i := range params {
		params[i] = ArgFloat
	}
	_, err := buildWrapper(Signature{Params: params})
	if err != ErrTooManyArgs {
		t.Fatalf("err = %v, want ErrTooManyArgs", err)
	}
}

func TestBuildWrapperEndsInRet(t *testing.T) {
	sig := Signature{Params: []ArgKind{ArgInt, ArgFloat}, HasResult: true, Result: ArgFloat}
	code, err := buildWrapper(sig)
	if err != nil {
		t.Fatalf("buildWrapper: %v", err)
	}
	if len(code) == 0 || code[len(code)-1] != 0xC3 {
		t.Fatalf("generated code does not end in ret: % x", code)
	}
}
