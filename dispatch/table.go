package dispatch

import "github.com/xyproto/sxvm/runtime"

// handlerTable is the dense, process-wide opcode dispatch table (spec.md
// §9: "initialized once at process start; unfilled slots map to a
// terminate(invalid_opcode) handler").
var handlerTable [65536]Handler

const invalidOpcodeCode runtime.TerminationCode = 0x1FF

func hInvalidOpcode(ctx *Ctx, operands []byte) Verdict { return Terminate(invalidOpcodeCode) }

func init() {
	for i := range handlerTable {
		handlerTable[i] = hInvalidOpcode
	}

	handlerTable[OpNop] = hNop
	handlerTable[OpEnd] = hEnd
	handlerTable[OpTerminate] = hTerminate

	handlerTable[OpBlock] = hBlock
	handlerTable[OpBreak] = hBreak
	handlerTable[OpRecur] = hRecur
	handlerTable[OpBlockAlt] = hBlockAlt
	handlerTable[OpBlockNez] = hBlockNez
	handlerTable[OpBreakNez] = hBreakNez
	handlerTable[OpRecurNez] = hRecurNez
	handlerTable[OpCall] = hCall
	handlerTable[OpDynCall] = hDynCall
	handlerTable[OpExtCall] = hExtCall

	handlerTable[OpHostAddrLocal] = hHostAddrLocal
	handlerTable[OpHostAddrData] = hHostAddrData
	handlerTable[OpHostAddrMemory] = hHostAddrMemory
	handlerTable[OpHostCopyToMemory] = hHostCopyToMemory
	handlerTable[OpHostCopyFromMemory] = hHostCopyFromMemory
	handlerTable[OpHostExternalMemoryCopy] = hHostExternalMemoryCopy
	handlerTable[OpHostAddrFunction] = hHostAddrFunction
	handlerTable[OpMemoryResize] = hMemoryResize
	handlerTable[OpMemorySize] = hMemorySize

	handlerTable[OpPushI32] = hPushI32
	handlerTable[OpPushI64] = hPushI64
	handlerTable[OpPushF32] = hPushF32
	handlerTable[OpPushF64] = hPushF64
	handlerTable[OpDrop] = hDrop

	handlerTable[OpLocalLoadI32] = hLocalLoadI32
	handlerTable[OpLocalLoadI64] = hLocalLoadI64
	handlerTable[OpLocalLoadF32] = hLocalLoadF32
	handlerTable[OpLocalLoadF64] = hLocalLoadF64
	handlerTable[OpLocalLoadU8] = hLocalLoadU8
	handlerTable[OpLocalLoadU16] = hLocalLoadU16
	handlerTable[OpLocalStoreI32] = hLocalStoreI32
	handlerTable[OpLocalStoreI64] = hLocalStoreI64
	handlerTable[OpLocalStoreF32] = hLocalStoreF32
	handlerTable[OpLocalStoreF64] = hLocalStoreF64
	handlerTable[OpLocalStoreI8] = hLocalStoreI8
	handlerTable[OpLocalStoreI16] = hLocalStoreI16
	handlerTable[OpLocalLoadExtendI32] = hLocalLoadExtendI32
	handlerTable[OpLocalLoadExtendI64] = hLocalLoadExtendI64
	handlerTable[OpLocalStoreExtendI32] = hLocalStoreExtendI32
	handlerTable[OpLocalStoreExtendI64] = hLocalStoreExtendI64

	handlerTable[OpDataLoadI32] = hDataLoadI32
	handlerTable[OpDataLoadI64] = hDataLoadI64
	handlerTable[OpDataLoadF32] = hDataLoadF32
	handlerTable[OpDataLoadF64] = hDataLoadF64
	handlerTable[OpDataLoadU8] = hDataLoadU8
	handlerTable[OpDataLoadU16] = hDataLoadU16
	handlerTable[OpDataStoreI32] = hDataStoreI32
	handlerTable[OpDataStoreI64] = hDataStoreI64
	handlerTable[OpDataStoreF32] = hDataStoreF32
	handlerTable[OpDataStoreF64] = hDataStoreF64
	handlerTable[OpDataStoreI8] = hDataStoreI8
	handlerTable[OpDataStoreI16] = hDataStoreI16
	handlerTable[OpDataLoadDynI32] = hDataLoadDynI32
	handlerTable[OpDataStoreDynI32] = hDataStoreDynI32

	handlerTable[OpMemoryLoadI32] = hMemoryLoadI32
	handlerTable[OpMemoryLoadI64] = hMemoryLoadI64
	handlerTable[OpMemoryLoadF32] = hMemoryLoadF32
	handlerTable[OpMemoryLoadF64] = hMemoryLoadF64
	handlerTable[OpMemoryLoadU8] = hMemoryLoadU8
	handlerTable[OpMemoryLoadU16] = hMemoryLoadU16
	handlerTable[OpMemoryStoreI32] = hMemoryStoreI32
	handlerTable[OpMemoryStoreI64] = hMemoryStoreI64
	handlerTable[OpMemoryStoreF32] = hMemoryStoreF32
	handlerTable[OpMemoryStoreF64] = hMemoryStoreF64
	handlerTable[OpMemoryStoreI8] = hMemoryStoreI8
	handlerTable[OpMemoryStoreI16] = hMemoryStoreI16

	registerArithHandlers()
	registerBitwiseHandlers()
	registerConvertHandlers()
	registerCompareHandlers()
	registerMathHandlers()
}
