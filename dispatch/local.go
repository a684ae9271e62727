package dispatch

import (
	"encoding/binary"
	"math"

	"github.com/xyproto/sxvm/runtime"
)

// localRegion resolves the (layers, local_index) addressing of spec.md
// §4.4 to the target frame's backing bytes. local_index is not consulted
// here: offsets are resolved to final frame-relative byte positions at
// image-build time, and local_index is carried in the instruction only
// for disassembly and name-table lookup (spec.md GLOSSARY: "names are
// semantic; not every mnemonic is enumerated").
func localRegion(ctx *Ctx, layers uint16) []byte {
	frame := ctx.Thread.Chain.Ancestor(int(layers))
	return frame.LocalRegion(ctx.Thread.Stack)
}

func checkLocalBounds(region []byte, offset uint16, size int) error {
	if int(offset)+size > len(region) {
		return runtime.NewTrap(runtime.TermBoundsViolation)
	}
	return nil
}

func hLocalLoadI32(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI32(int32(binary.LittleEndian.Uint32(region[offset:])))
	return Move(8)
}

func hLocalLoadI64(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI64(int64(binary.LittleEndian.Uint64(region[offset:])))
	return Move(8)
}

func hLocalLoadF32(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushF32(math.Float32frombits(binary.LittleEndian.Uint32(region[offset:])))
	return Move(8)
}

func hLocalLoadF64(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushF64(math.Float64frombits(binary.LittleEndian.Uint64(region[offset:])))
	return Move(8)
}

func hLocalLoadU8(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 1); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI32(int32(region[offset]))
	return Move(8)
}

func hLocalLoadU16(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 2); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI32(int32(binary.LittleEndian.Uint16(region[offset:])))
	return Move(8)
}

func hLocalStoreI32(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopI32()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint32(region[offset:], uint32(v))
	return Move(8)
}

func hLocalStoreI64(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopI64()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint64(region[offset:], uint64(v))
	return Move(8)
}

func hLocalStoreF32(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopF32()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint32(region[offset:], math.Float32bits(v))
	return Move(8)
}

func hLocalStoreF64(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopF64()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint64(region[offset:], math.Float64bits(v))
	return Move(8)
}

func hLocalStoreI8(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopI32()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 1); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	region[offset] = byte(v)
	return Move(8)
}

func hLocalStoreI16(ctx *Ctx, b []byte) Verdict {
	layers, offset := u16At(b, 0), u16At(b, 2)
	v := ctx.Thread.Stack.PopI32()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 2); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint16(region[offset:], uint16(v))
	return Move(8)
}

// _extend variants take the byte offset from the stack instead of the
// immediate field (spec.md §4.4).

func hLocalLoadExtendI32(ctx *Ctx, b []byte) Verdict {
	layers := u16At(b, 0)
	offset := uint16(ctx.Thread.Stack.PopI32())
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI32(int32(binary.LittleEndian.Uint32(region[offset:])))
	return Move(8)
}

func hLocalLoadExtendI64(ctx *Ctx, b []byte) Verdict {
	layers := u16At(b, 0)
	offset := uint16(ctx.Thread.Stack.PopI32())
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	ctx.Thread.Stack.PushI64(int64(binary.LittleEndian.Uint64(region[offset:])))
	return Move(8)
}

func hLocalStoreExtendI32(ctx *Ctx, b []byte) Verdict {
	layers := u16At(b, 0)
	offset := uint16(ctx.Thread.Stack.PopI32())
	v := ctx.Thread.Stack.PopI32()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 4); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint32(region[offset:], uint32(v))
	return Move(8)
}

func hLocalStoreExtendI64(ctx *Ctx, b []byte) Verdict {
	layers := u16At(b, 0)
	offset := uint16(ctx.Thread.Stack.PopI32())
	v := ctx.Thread.Stack.PopI64()
	region := localRegion(ctx, layers)
	if err := checkLocalBounds(region, offset, 8); err != nil {
		return Terminate(err.(*runtime.Trap).Code)
	}
	binary.LittleEndian.PutUint64(region[offset:], uint64(v))
	return Move(8)
}
