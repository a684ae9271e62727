package engine

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/xyproto/sxvm/dispatch"
)

func TestFormatInstructionKnownOpcode(t *testing.T) {
	code := make([]byte, 8)
	binary.LittleEndian.PutUint16(code[0:], uint16(dispatch.OpPushI32))
	neg7 := int32(-7)
	binary.LittleEndian.PutUint32(code[2:], uint32(neg7))

	line, length := FormatInstruction(code, 0)
	if length != 8 {
		t.Fatalf("length = %d, want 8", length)
	}
	if !strings.Contains(line, "i32.push") {
		t.Errorf("line %q missing mnemonic", line)
	}
	if !strings.HasPrefix(line, "000000") {
		t.Errorf("line %q missing address prefix", line)
	}
}

func TestFormatInstructionUnknownOpcode(t *testing.T) {
	code := make([]byte, 2)
	binary.LittleEndian.PutUint16(code, 0xFFFF)
	line, length := FormatInstruction(code, 0)
	if length != 2 {
		t.Fatalf("length = %d, want 2", length)
	}
	if !strings.Contains(line, "op#65535") {
		t.Errorf("line %q missing numeric fallback", line)
	}
}

func TestFormatInstructionTruncated(t *testing.T) {
	line, length := FormatInstruction([]byte{0x01}, 0)
	if length != 0 {
		t.Fatalf("length = %d, want 0", length)
	}
	if !strings.Contains(line, "truncated") {
		t.Errorf("line %q missing truncation marker", line)
	}
}

func TestFormatInstructionTruncatedOperands(t *testing.T) {
	// OpPushI64 wants 12 bytes but only 6 are available; FormatInstruction
	// must clip rather than panic or read past the slice.
	code := make([]byte, 6)
	binary.LittleEndian.PutUint16(code[0:], uint16(dispatch.OpPushI64))
	line, length := FormatInstruction(code, 0)
	if length != 12 {
		t.Fatalf("length = %d, want 12 (the instruction's nominal size)", length)
	}
	if !strings.Contains(line, "i64.push") {
		t.Errorf("line %q missing mnemonic", line)
	}
}
