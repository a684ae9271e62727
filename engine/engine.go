// Completion: 100% - Module graph loader complete
// Package engine is the module-resolution glue between the zero-copy
// image codec (package image) and the dispatch loop (package dispatch):
// it loads one or more module images into a process Context, and answers
// the public-index -> internal-index questions the interpreter needs
// (spec.md §3.4, §9).
package engine

import (
	"fmt"

	"github.com/xyproto/sxvm/image"
)

// Module is one loaded module's parsed section views, held alongside the
// still-borrowed Image bytes for the lifetime of the owning Context
// (spec.md §9: "self-referential module views... one aggregate whose
// lifetime is the thread context's lifetime").
type Module struct {
	Img *image.Image

	Types     *image.TypeSection
	Locals    *image.LocalSection
	Functions *image.FunctionSection
	Common    image.CommonProperty

	ReadOnly  *image.DataSection
	ReadWrite *image.DataSection
	Uninit    *image.DataSection

	FunctionNames *image.NameSection
	DataNames     *image.NameSection

	ImportModules   *image.ImportModuleSection
	ImportFunctions *image.ImportFunctionSection
	ImportData      *image.ImportDataSection

	ExternalLibraries *image.ExternalLibrarySection
	ExternalFunctions *image.ExternalFunctionSection

	// Application-only sections (spec.md §3.4): present only on the
	// linked application's main module (index 0 in a Context).
	FunctionIndex           *image.FunctionIndexSection
	DataIndex               *image.DataIndexSection
	UnifiedExternalLibrary  *image.UnifiedExternalLibrarySection
	UnifiedExternalFunction *image.UnifiedExternalFunctionSection
	ExternalFunctionIndex   *image.ExternalFunctionIndexSection
	ModuleList              *image.ModuleListSection
	IndexProperty           image.IndexProperty
	HasIndexProperty        bool
}

// Context is a process-wide graph of loaded modules (spec.md §6.2:
// load_modules). Module 0 is the linked application's main module and is
// the only one expected to carry the application-only sections.
type Context struct {
	Modules []*Module
}

// LoadModules parses every module image and builds the module graph.
// Essential sections (Type, LocalVariable, Function, CommonProperty) must
// be present in every module; optional sections are read only if their id
// appears in the section table.
func LoadModules(binaries [][]byte) (*Context, error) {
	ctx := &Context{Modules: make([]*Module, len(binaries))}
	for i, b := range binaries {
		img, err := image.Load(b)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		m, err := buildModule(img)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		ctx.Modules[i] = m
	}
	return ctx, nil
}

func buildModule(img *image.Image) (*Module, error) {
	m := &Module{Img: img}

	typeBytes, ok := img.GetSection(image.SectionType)
	if !ok {
		return nil, fmt.Errorf("missing essential Type section")
	}
	m.Types = image.LoadTypeSection(typeBytes)

	localBytes, ok := img.GetSection(image.SectionLocalVariable)
	if !ok {
		return nil, fmt.Errorf("missing essential LocalVariable section")
	}
	m.Locals = image.LoadLocalSection(localBytes)

	fnBytes, ok := img.GetSection(image.SectionFunction)
	if !ok {
		return nil, fmt.Errorf("missing essential Function section")
	}
	m.Functions = image.LoadFunctionSection(fnBytes)

	cpBytes, ok := img.GetSection(image.SectionCommonProperty)
	if !ok {
		return nil, fmt.Errorf("missing essential CommonProperty section")
	}
	m.Common = image.LoadCommonPropertySection(cpBytes)

	if b, ok := img.GetSection(image.SectionReadOnlyData); ok {
		m.ReadOnly = image.LoadDataSection(b)
	} else {
		m.ReadOnly = image.LoadDataSection(image.BuildDataSection(nil, nil))
	}
	if b, ok := img.GetSection(image.SectionReadWriteData); ok {
		m.ReadWrite = image.LoadDataSection(b)
	} else {
		m.ReadWrite = image.LoadDataSection(image.BuildDataSection(nil, nil))
	}
	if b, ok := img.GetSection(image.SectionUninitData); ok {
		m.Uninit = image.LoadDataSection(b)
	} else {
		m.Uninit = image.LoadDataSection(image.BuildDataSection(nil, nil))
	}

	if b, ok := img.GetSection(image.SectionFunctionName); ok {
		m.FunctionNames = image.LoadNameSection(b)
	}
	if b, ok := img.GetSection(image.SectionDataName); ok {
		m.DataNames = image.LoadNameSection(b)
	}
	if b, ok := img.GetSection(image.SectionImportModule); ok {
		m.ImportModules = image.LoadImportModuleSection(b)
	}
	if b, ok := img.GetSection(image.SectionImportFunction); ok {
		m.ImportFunctions = image.LoadImportFunctionSection(b)
	}
	if b, ok := img.GetSection(image.SectionImportData); ok {
		m.ImportData = image.LoadImportDataSection(b)
	}
	if b, ok := img.GetSection(image.SectionExternalLibrary); ok {
		m.ExternalLibraries = image.LoadExternalLibrarySection(b)
	}
	if b, ok := img.GetSection(image.SectionExternalFunction); ok {
		m.ExternalFunctions = image.LoadExternalFunctionSection(b)
	}

	if b, ok := img.GetSection(image.SectionFunctionIndex); ok {
		m.FunctionIndex = image.LoadFunctionIndexSection(b)
	}
	if b, ok := img.GetSection(image.SectionDataIndex); ok {
		m.DataIndex = image.LoadDataIndexSection(b)
	}
	if b, ok := img.GetSection(image.SectionUnifiedExternalLibrary); ok {
		m.UnifiedExternalLibrary = image.LoadUnifiedExternalLibrarySection(b)
	}
	if b, ok := img.GetSection(image.SectionUnifiedExternalFunction); ok {
		m.UnifiedExternalFunction = image.LoadUnifiedExternalFunctionSection(b)
	}
	if b, ok := img.GetSection(image.SectionExternalFunctionIndex); ok {
		m.ExternalFunctionIndex = image.LoadExternalFunctionIndexSection(b)
	}
	if b, ok := img.GetSection(image.SectionModuleList); ok {
		m.ModuleList = image.LoadModuleListSection(b)
	}
	if b, ok := img.GetSection(image.SectionIndexProperty); ok {
		m.IndexProperty = image.LoadIndexPropertySection(b)
		m.HasIndexProperty = true
	}

	return m, nil
}

// MainModule returns the linked application's main module, by convention
// module index 0 (spec.md §3.4).
func (c *Context) MainModule() *Module { return c.Modules[0] }
