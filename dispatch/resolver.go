// Package dispatch implements the instruction decode/execute loop: the
// dense opcode table, the handler families, and the verdict protocol each
// handler returns to the loop driver. It depends on package runtime for
// thread state and on package image only for the few enum types (DataType,
// SegmentKind) needed to describe operands; it never loads images itself.
package dispatch

import "github.com/xyproto/sxvm/image"

// FunctionInfo is everything a handler needs to run or call into a
// function: its code, its parameter/result shape, and the local-region
// layout a new frame for it requires.
type FunctionInfo struct {
	Module         uint32
	Internal       uint32
	Code           []byte
	ParamsCount    int
	ResultsCount   int
	ParamOffsets   []int
	LocalRegionLen int
	LocalListIndex uint32
}

// BlockInfo is the same shape information for a control-flow block, keyed
// by a type index and a local-list index rather than a function index.
type BlockInfo struct {
	ParamsCount    int
	ResultsCount   int
	ParamOffsets   []int
	LocalRegionLen int
}

// ExternalInfo describes one resolved extcall target.
type ExternalInfo struct {
	UnifiedIndex uint32
	ParamTypes   []image.DataType
	ResultTypes  []image.DataType
}

// Resolver bridges dispatch to the loaded-module graph (package engine).
// Every method takes the calling module so public indices resolve within
// the right module's index tables (spec.md §3.4, §9 cross-module indices).
type Resolver interface {
	Function(module, internalIndex uint32) FunctionInfo
	ResolveFunctionIndex(callerModule, publicIndex uint32) (FunctionInfo, error)
	ResolveDataIndex(callerModule, publicIndex uint32) (kind image.SegmentKind, internalIndex, targetModule uint32, err error)
	ResolveExternalFunction(callerModule, externalFunctionIndex uint32) (ExternalInfo, error)
	BlockType(callerModule, typeIndex, localListIndex uint32) BlockInfo
}
