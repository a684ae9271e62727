// Completion: 100% - Cross-module index resolution complete
package engine

import (
	"fmt"

	"github.com/xyproto/sxvm/dispatch"
	"github.com/xyproto/sxvm/image"
)

// Resolver implements dispatch.Resolver over a loaded Context. It is the
// only place that understands the application-only index sections
// (spec.md §3.4): every public-index lookup a handler needs funnels
// through here.
type Resolver struct {
	Ctx *Context
}

var _ dispatch.Resolver = (*Resolver)(nil)

func paramOffsets(ll image.LocalVariableList, paramsCount int) []int {
	offs := make([]int, paramsCount)
	for i := 0; i < paramsCount; i++ {
		offs[i] = int(ll.Slots[i].OffsetInFrame)
	}
	return offs
}

// Function returns the shape and code of a function addressed by its
// internal index within a known module (spec.md §3.2).
func (r *Resolver) Function(module, internalIndex uint32) dispatch.FunctionInfo {
	m := r.Ctx.Modules[module]
	fe := m.Functions.Get(int(internalIndex))
	te := m.Types.Get(int(fe.TypeIndex))
	ll := m.Locals.Get(int(fe.LocalVariableIndex))
	return dispatch.FunctionInfo{
		Module:         module,
		Internal:       internalIndex,
		Code:           m.Functions.Code(int(internalIndex)),
		ParamsCount:    len(te.Params),
		ResultsCount:   len(te.Results),
		ParamOffsets:   paramOffsets(ll, len(te.Params)),
		LocalRegionLen: int(ll.FrameSize()),
		LocalListIndex: fe.LocalVariableIndex,
	}
}

// ResolveFunctionIndex resolves a public function index, scoped to
// callerModule, to its owning module and internal index, then returns
// that function's full shape (spec.md §3.4 FunctionIndex, §4.6 call).
func (r *Resolver) ResolveFunctionIndex(callerModule, publicIndex uint32) (dispatch.FunctionInfo, error) {
	idx := r.Ctx.MainModule().FunctionIndex
	if idx == nil {
		return dispatch.FunctionInfo{}, fmt.Errorf("no FunctionIndex section in main module")
	}
	row, ok := rowForModule(ranges(idx.ModuleCount(), idx), int(callerModule), publicIndex)
	if !ok {
		return dispatch.FunctionInfo{}, fmt.Errorf("public function index %d out of range for module %d", publicIndex, callerModule)
	}
	e := idx.Get(row)
	return r.Function(e.TargetModule, e.InternalIndex), nil
}

// ResolveDataIndex resolves a public data index, scoped to callerModule,
// to its segment kind, internal index, and owning module (spec.md §3.4
// DataIndex).
func (r *Resolver) ResolveDataIndex(callerModule, publicIndex uint32) (kind image.SegmentKind, internalIndex, targetModule uint32, err error) {
	idx := r.Ctx.MainModule().DataIndex
	if idx == nil {
		return 0, 0, 0, fmt.Errorf("no DataIndex section in main module")
	}
	row, ok := rowForModule(dataRanges(idx), int(callerModule), publicIndex)
	if !ok {
		return 0, 0, 0, fmt.Errorf("public data index %d out of range for module %d", publicIndex, callerModule)
	}
	e := idx.Get(row)
	return e.SegmentKind, e.InternalIndex, e.TargetModule, nil
}

// ResolveExternalFunction resolves a per-module external function index
// to its deduplicated unified index and parameter/result type lists
// (spec.md §3.4 ExternalFunctionIndex, §4.5).
func (r *Resolver) ResolveExternalFunction(callerModule, externalFunctionIndex uint32) (dispatch.ExternalInfo, error) {
	idx := r.Ctx.MainModule().ExternalFunctionIndex
	if idx == nil {
		return dispatch.ExternalInfo{}, fmt.Errorf("no ExternalFunctionIndex section in main module")
	}
	row, ok := rowForModule(extFuncRanges(idx), int(callerModule), externalFunctionIndex)
	if !ok {
		return dispatch.ExternalInfo{}, fmt.Errorf("external function index %d out of range for module %d", externalFunctionIndex, callerModule)
	}
	e := idx.Get(row)
	te := r.Ctx.MainModule().Types.Get(int(e.TypeIndex))
	return dispatch.ExternalInfo{UnifiedIndex: e.UnifiedExternalFunctionIndex, ParamTypes: te.Params, ResultTypes: te.Results}, nil
}

// BlockType returns a control-flow block's parameter/result shape and
// local-region size (spec.md §4.6 block/block_alt/block_nez). Blocks are
// always resolved within the calling module's own tables.
func (r *Resolver) BlockType(callerModule, typeIndex, localListIndex uint32) dispatch.BlockInfo {
	m := r.Ctx.Modules[callerModule]
	ll := m.Locals.Get(int(localListIndex))
	te := m.Types.Get(int(typeIndex))
	return dispatch.BlockInfo{
		ParamsCount:    len(te.Params),
		ResultsCount:   len(te.Results),
		ParamOffsets:   paramOffsets(ll, len(te.Params)),
		LocalRegionLen: int(ll.FrameSize()),
	}
}

// ParamCount implements bridge.FunctionShaper: the native bridge needs a
// function's parameter count to size a generated callback stub, but has
// no reason to otherwise depend on package image's type tables.
func (r *Resolver) ParamCount(module, internalIndex uint32) int {
	return r.Function(module, internalIndex).ParamsCount
}

// ranges/dataRanges/extFuncRanges adapt each index section's own Range
// accessor to the uniform []image.RangeItem shape rowForModule expects.
func ranges(n int, idx *image.FunctionIndexSection) []image.RangeItem {
	out := make([]image.RangeItem, n)
	for i := range out {
		out[i] = idx.Range(i)
	}
	return out
}

func dataRanges(idx *image.DataIndexSection) []image.RangeItem {
	out := make([]image.RangeItem, idx.ModuleCount())
	for i := range out {
		out[i] = idx.Range(i)
	}
	return out
}

func extFuncRanges(idx *image.ExternalFunctionIndexSection) []image.RangeItem {
	out := make([]image.RangeItem, idx.ModuleCount())
	for i := range out {
		out[i] = idx.Range(i)
	}
	return out
}
