// Completion: 80% - Diagnostic disassembler, common mnemonics only
package engine

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/xyproto/sxvm/dispatch"
)

// mnemonics covers the instructions a human debugging a dump most wants
// named; uncommon math/bitwise variants fall back to a numeric opcode
// (spec.md GLOSSARY: "not every mnemonic is enumerated").
var mnemonics = map[dispatch.Opcode]string{
	dispatch.OpNop:        "nop",
	dispatch.OpEnd:        "end",
	dispatch.OpTerminate:  "terminate",
	dispatch.OpBlock:      "block",
	dispatch.OpBreak:      "break",
	dispatch.OpRecur:      "recur",
	dispatch.OpBlockAlt:   "block_alt",
	dispatch.OpBlockNez:   "block_nez",
	dispatch.OpBreakNez:   "break_nez",
	dispatch.OpRecurNez:   "recur_nez",
	dispatch.OpCall:       "call",
	dispatch.OpDynCall:    "dyncall",
	dispatch.OpExtCall:    "extcall",
	dispatch.OpPushI32:    "i32.push",
	dispatch.OpPushI64:    "i64.push",
	dispatch.OpPushF32:    "f32.push",
	dispatch.OpPushF64:    "f64.push",
	dispatch.OpDrop:       "drop",
	dispatch.OpI32Add:     "i32.add",
	dispatch.OpI32Sub:     "i32.sub",
	dispatch.OpI32Mul:     "i32.mul",
	dispatch.OpI32DivS:    "i32.div_s",
	dispatch.OpI32DivU:    "i32.div_u",
	dispatch.OpI64Add:     "i64.add",
	dispatch.OpI64Sub:     "i64.sub",
	dispatch.OpF32Add:     "f32.add",
	dispatch.OpF64Add:     "f64.add",
	dispatch.OpLocalLoadI32:  "local.load_i32",
	dispatch.OpLocalStoreI32: "local.store_i32",
	dispatch.OpMemoryLoadI32:  "memory.load_i32",
	dispatch.OpMemoryStoreI32: "memory.store_i32",
	dispatch.OpMemoryResize:   "memory.resize",
	dispatch.OpMemorySize:     "memory.size",
}

// instructionLength mirrors the fixed-length table implied by spec.md
// §4.4 (2/4/8/12/16-byte forms). Anything not listed is assumed 2 bytes,
// matching most arithmetic/bitwise/compare/math opcodes.
func instructionLength(op dispatch.Opcode) int {
	switch op {
	case dispatch.OpTerminate, dispatch.OpI32Inc, dispatch.OpI32Dec, dispatch.OpI64Inc, dispatch.OpI64Dec,
		dispatch.OpHostAddrMemory:
		return 4
	case dispatch.OpBlock, dispatch.OpCall, dispatch.OpExtCall, dispatch.OpPushI32, dispatch.OpPushF32,
		dispatch.OpHostAddrLocal, dispatch.OpHostAddrFunction,
		dispatch.OpLocalLoadI32, dispatch.OpLocalLoadI64, dispatch.OpLocalLoadF32, dispatch.OpLocalLoadF64,
		dispatch.OpLocalLoadU8, dispatch.OpLocalLoadU16, dispatch.OpLocalStoreI32, dispatch.OpLocalStoreI64,
		dispatch.OpLocalStoreF32, dispatch.OpLocalStoreF64, dispatch.OpLocalStoreI8, dispatch.OpLocalStoreI16,
		dispatch.OpLocalLoadExtendI32, dispatch.OpLocalLoadExtendI64, dispatch.OpLocalStoreExtendI32, dispatch.OpLocalStoreExtendI64:
		return 8
	case dispatch.OpBreak, dispatch.OpRecur, dispatch.OpBlockAlt, dispatch.OpBlockNez, dispatch.OpBreakNez, dispatch.OpRecurNez,
		dispatch.OpHostAddrData, dispatch.OpPushI64, dispatch.OpPushF64,
		dispatch.OpDataLoadI32, dispatch.OpDataLoadI64, dispatch.OpDataLoadF32, dispatch.OpDataLoadF64,
		dispatch.OpDataLoadU8, dispatch.OpDataLoadU16, dispatch.OpDataStoreI32, dispatch.OpDataStoreI64,
		dispatch.OpDataStoreF32, dispatch.OpDataStoreF64, dispatch.OpDataStoreI8, dispatch.OpDataStoreI16:
		return 12
	case dispatch.OpDynCall, dispatch.OpHostCopyToMemory, dispatch.OpHostCopyFromMemory, dispatch.OpHostExternalMemoryCopy,
		dispatch.OpDataLoadDynI32, dispatch.OpDataStoreDynI32:
		return 2
	default:
		return 2
	}
}

// FormatInstruction decodes one instruction at byte offset addr in code
// and returns a human-readable line: address, mnemonic, raw operand
// bytes. It never panics on truncated/garbage input; callers use it for
// `sxvm dump`, not execution.
func FormatInstruction(code []byte, addr uint32) (line string, length int) {
	if int(addr)+2 > len(code) {
		return fmt.Sprintf("%06x  <truncated>", addr), 0
	}
	op := dispatch.Opcode(binary.LittleEndian.Uint16(code[addr:]))
	name, known := mnemonics[op]
	if !known {
		name = fmt.Sprintf("op#%d", op)
	}
	n := instructionLength(op)
	end := int(addr) + n
	if end > len(code) {
		end = len(code)
	}
	operands := code[int(addr)+2 : end]
	hexParts := make([]string, len(operands))
	for i, b := range operands {
		hexParts[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("%06x  %-16s %s", addr, name, strings.Join(hexParts, " ")), n
}
