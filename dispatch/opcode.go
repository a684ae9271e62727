package dispatch

// Opcode is the 16-bit instruction tag read from the first two bytes of
// every instruction (spec.md §4.4). The set is closed; unused numbers
// fall through to the invalid-opcode handler registered in table.go.
type Opcode uint16

const (
	// Host & machine. nop/end are 2 bytes; terminate is 4
	// (code:u16); the rest carry public/external indices.
	OpNop Opcode = iota
	OpEnd
	OpTerminate // 4B: code:u16

	// Control flow (spec.md §4.6).
	OpBlock     // 8B: type_index:u16, local_list_index:u16, pad:u16
	OpBreak     // 12B: pad:u16, jump_offset:i32, ancestor_depth:u16, pad:u16
	OpRecur     // 12B: same shape as OpBreak
	OpBlockAlt  // 12B: type_index:u16, local_list_index:u16, pad:u16, else_offset:i32
	OpBlockNez  // 12B: local_list_index:u16, pad:u16, else_offset:i32
	OpBreakNez  // 12B: same shape as OpBreak
	OpRecurNez  // 12B: same shape as OpBreak
	OpCall      // 8B: pad:u16, public_index:u32
	OpDynCall   // 2B
	OpExtCall   // 8B: pad:u16, external_function_index:u32

	OpHostAddrLocal         // 8B: layers:u16, offset:u16, local_index:u16
	OpHostAddrData          // 12B: pad:u16, public_index:u32, offset:u16, pad:u16
	OpHostAddrMemory        // 4B: offset:u16 (address popped from stack)
	OpHostCopyToMemory      // 2B (dst, src, length popped from stack)
	OpHostCopyFromMemory    // 2B
	OpHostExternalMemoryCopy // 2B
	OpHostAddrFunction      // 8B: pad:u16, public_index:u32

	OpMemoryResize // 2B (new page count popped from stack, old count pushed)
	OpMemorySize   // 2B (pushes current page count)

	// Immediates.
	OpPushI32 // 8B: pad:u16, value:i32
	OpPushI64 // 12B: pad:u16, lo:u32, hi:u32
	OpPushF32 // 8B: pad:u16, bits:u32
	OpPushF64 // 12B: pad:u16, lo:u32, hi:u32
	OpDrop    // 2B

	// Local access (spec.md §4.4): (layers:u16, offset:u16, local_index:u16).
	// local_index is carried for disassembly/name lookup only; the
	// handler addresses the frame directly via offset.
	OpLocalLoadI32
	OpLocalLoadI64
	OpLocalLoadF32
	OpLocalLoadF64
	OpLocalLoadU8
	OpLocalLoadU16
	OpLocalStoreI32
	OpLocalStoreI64
	OpLocalStoreF32
	OpLocalStoreF64
	OpLocalStoreI8
	OpLocalStoreI16
	// _extend variants: byte offset comes off the stack instead of the
	// immediate; shape is (layers:u16, local_index:u16, pad:u16).
	OpLocalLoadExtendI32
	OpLocalLoadExtendI64
	OpLocalStoreExtendI32
	OpLocalStoreExtendI64

	// Data access, static form: 12B, pad:u16, public_index:u32, offset:u16, pad:u16.
	OpDataLoadI32
	OpDataLoadI64
	OpDataLoadF32
	OpDataLoadF64
	OpDataLoadU8
	OpDataLoadU16
	OpDataStoreI32
	OpDataStoreI64
	OpDataStoreF32
	OpDataStoreF64
	OpDataStoreI8
	OpDataStoreI16
	// Data access, dynamic form: 2B; module, public_index, offset popped
	// off the stack (in that push order, offset on top).
	OpDataLoadDynI32
	OpDataStoreDynI32

	// Memory access: 4B, instruction_offset:u16; address popped off the
	// stack.
	OpMemoryLoadI32
	OpMemoryLoadI64
	OpMemoryLoadF32
	OpMemoryLoadF64
	OpMemoryLoadU8
	OpMemoryLoadU16
	OpMemoryStoreI32
	OpMemoryStoreI64
	OpMemoryStoreF32
	OpMemoryStoreF64
	OpMemoryStoreI8
	OpMemoryStoreI16

	// Arithmetic, 2B unless noted.
	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32Inc // 4B: step:u16
	OpI32Dec // 4B: step:u16
	OpI32Neg
	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64Inc // 4B
	OpI64Dec // 4B
	OpI64Neg
	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Abs
	OpF32Neg
	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Abs
	OpF64Neg

	// Bitwise, i32/i64, 2B.
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Not
	OpI32ShiftL
	OpI32ShiftRS
	OpI32ShiftRU
	OpI32RotateL
	OpI32RotateR
	OpI32Clz
	OpI32Ctz
	OpI32Popcount
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Not
	OpI64ShiftL
	OpI64ShiftRS
	OpI64ShiftRU
	OpI64RotateL
	OpI64RotateR
	OpI64Clz
	OpI64Ctz
	OpI64Popcount

	// Conversion, 2B.
	OpI64TruncToI32
	OpI32ExtendUToI64
	OpI32ExtendSToI64
	OpF64DemoteToF32
	OpF32PromoteToF64
	OpF32ToI32S
	OpF32ToI32U
	OpF32ToI64S
	OpF32ToI64U
	OpF64ToI32S
	OpF64ToI32U
	OpF64ToI64S
	OpF64ToI64U
	OpI32SToF32
	OpI32UToF32
	OpI64SToF32
	OpI64UToF32
	OpI32SToF64
	OpI32UToF64
	OpI64SToF64
	OpI64UToF64

	// Comparison, 2B, push i32 0/1.
	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU
	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU
	OpF32Eq
	OpF32Ne
	OpF32Lt
	OpF32Gt
	OpF32Le
	OpF32Ge
	OpF64Eq
	OpF64Ne
	OpF64Lt
	OpF64Gt
	OpF64Le
	OpF64Ge

	// Math, 2B. Unary unless noted.
	OpF32Floor
	OpF32Ceil
	OpF32Trunc
	OpF32Fract
	OpF32RoundHalfAway
	OpF32RoundHalfEven
	OpF32Sqrt
	OpF32Cbrt
	OpF32Exp
	OpF32Exp2
	OpF32Ln
	OpF32Log
	OpF32Log2
	OpF32Log10
	OpF32Sin
	OpF32Cos
	OpF32Tan
	OpF32Asin
	OpF32Acos
	OpF32Atan
	OpF32Pow      // binary
	OpF32Copysign // binary
	OpF32Min      // binary
	OpF32Max      // binary
	OpF64Floor
	OpF64Ceil
	OpF64Trunc
	OpF64Fract
	OpF64RoundHalfAway
	OpF64RoundHalfEven
	OpF64Sqrt
	OpF64Cbrt
	OpF64Exp
	OpF64Exp2
	OpF64Ln
	OpF64Log
	OpF64Log2
	OpF64Log10
	OpF64Sin
	OpF64Cos
	OpF64Tan
	OpF64Asin
	OpF64Acos
	OpF64Atan
	OpF64Pow
	OpF64Copysign
	OpF64Min
	OpF64Max

	opcodeCount
)
