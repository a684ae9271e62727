//go:build amd64

// Completion: 65% - Native-callable callback stub codegen
package bridge

// buildCallbackStub hand-assembles a function matching the native
// caller's expected System V signature (up to len(intArgRegs) integer
// args; float args are not handled in a callback position) that packs its
// incoming register arguments into a stack array, calls the fixed cgo
// delegate sxvmCallbackDispatch(key, argsPtr, nargs), and returns whatever
// it returned in rax (spec.md §4.5: native-to-VM callback).
func buildCallbackStub(key uint64, nargs int, delegateAddr uintptr) ([]byte, error) {
	if nargs > len(intArgRegs) {
		return nil, ErrTooManyArgs
	}

	var c codeBuf

	frame := int32(nargs * 8)
	if frame%16 == 0 {
		frame += 8 // rsp is 8 mod 16 on entry; keep it 16-byte aligned for the delegate call
	}

	c.subRsp(frame)
	for i := 0; i < nargs; i++ {
		c.movMemReg(4, intArgRegs[i], int32(i*8)) // mov [rsp+i*8], argReg_i  (rsp encoding = 4)
	}

	// Delegate call: sxvmCallbackDispatch(key uint64, argsPtr *uint64, nargs int)
	c.movImm64(7, key)            // mov rdi, key
	c.leaRegMem(6, 4, 0)          // lea rsi, [rsp]
	c.movImm32(2, uint32(nargs))  // mov edx, nargs
	c.movImm64(10, uint64(delegateAddr)) // mov r10, delegateAddr
	c.callReg(10)

	c.addRsp(frame)
	c.ret()
	return c.bytes, nil
}

func (c *codeBuf) subRsp(n int32) {
	c.emit(rex(true, false, false, false), 0x81, modrmReg(3, 5, 4))
	c.emitImm32(uint32(n))
}

func (c *codeBuf) addRsp(n int32) {
	c.emit(rex(true, false, false, false), 0x81, modrmReg(3, 0, 4))
	c.emitImm32(uint32(n))
}

func (c *codeBuf) emitImm32(v uint32) {
	c.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// movImm64 emits MOV r64, imm64 (opcode 0xB8+rd with REX.W, a full
// 8-byte immediate — needed here because generated code addresses,
// unlike the teacher's position-independent executable output, are
// absolute runtime heap addresses that rarely fit in 32 bits).
func (c *codeBuf) movImm64(dst int, v uint64) {
	c.emit(rex(true, false, false, dst >= 8), 0xB8+byte(dst&7))
	for i := 0; i < 8; i++ {
		c.emit(byte(v >> (8 * i)))
	}
}

// movImm32 emits MOV r32, imm32 (no REX.W: zero-extends into the full
// 64-bit register, which is what the C `int nargs` parameter needs).
func (c *codeBuf) movImm32(dst int, v uint32) {
	if dst >= 8 {
		c.emit(rex(false, false, false, true))
	}
	c.emit(0xB8 + byte(dst&7))
	c.emitImm32(v)
}

// leaRegMem emits LEA dst, [baseReg+disp8].
func (c *codeBuf) leaRegMem(dst, baseReg int, disp int32) {
	c.emit(rex(true, dst >= 8, false, baseReg >= 8), 0x8D)
	c.memOperand(dst, baseReg, disp)
}
