// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlslgen

import (
	"fmt"

	"github.com/gogpu/naga/ast"
	"github.com/gogpu/naga/codewriter"
	"github.com/gogpu/naga/internal/strpool"
)

// Options configures a single modernized-HLSL emission run.
type Options struct {
	// Legacy disables the sampler-split and cbuffer-wrapper transforms,
	// re-emitting the program using sampler2D/samplerCUBE directly, the
	// way spec.md §4.3's legacy mode describes.
	Legacy bool
}

// generator holds all per-run state for one Compile call.
type generator struct {
	root    *ast.Root
	structs map[string]*ast.StructDecl
	pool    *strpool.Pool
	legacy  bool

	w  *codewriter.Writer
	nm *namer

	samplers map[string]*samplerGlobal

	usesTex2D, usesCube bool

	tex2DStructName, tex2DCtorName string
	cubeStructName, cubeCtorName   string

	err error
}

// Compile walks root and writes modernized HLSL source using structs,
// the parser's name->declaration table (parser.Parser.Structs()).
func Compile(root *ast.Root, structs map[string]*ast.StructDecl, pool *strpool.Pool, opts Options) (string, error) {
	g := &generator{
		root:    root,
		structs: structs,
		pool:    pool,
		legacy:  opts.Legacy,
		w:       codewriter.New(true),
		nm:      newNamer(pool),
	}

	g.scanSamplers()
	g.chooseSamplerNames()
	g.writeSamplerStructs()
	g.writeTopLevel()

	if g.err != nil {
		return "", g.err
	}
	return g.w.String(), nil
}

// fail records the first error; subsequent calls are no-ops, matching
// the sticky-error-flag propagation rule for emitters.
func (g *generator) fail(format string, args ...any) {
	if g.err == nil {
		g.err = fmt.Errorf(format, args...)
	}
}

// writeTopLevel emits every struct, buffer, global variable, and
// function in source order, preserving HLSL's own syntax throughout
// (unlike glslgen, there is no synthesized entry wrapper: the program is
// re-emitted as itself, just in modernized form).
func (g *generator) writeTopLevel() {
	for _, d := range g.root.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			g.writeStruct(decl)
		case *ast.BufferDecl:
			g.writeBuffer(decl)
		case *ast.VarDecl:
			g.writeGlobalVar(decl)
		case *ast.FunctionDecl:
			if decl.Intrinsic {
				continue
			}
			g.writeFunction(decl)
		}
	}
}

func (g *generator) writeStruct(d *ast.StructDecl) {
	g.w.WriteLine("struct %s {", d.Name)
	g.w.PushIndent()
	for _, f := range d.Fields {
		g.w.WriteLine("%s %s%s;", g.typeName(f.Type), f.Name, g.semanticSuffix(f.Semantic))
	}
	g.w.PopIndent()
	g.w.WriteLine("};")
}

func (g *generator) semanticSuffix(semantic string) string {
	if semantic == "" {
		return ""
	}
	return " : " + semantic
}

// writeBuffer re-emits a cbuffer/tbuffer. Non-legacy mode wraps it
// explicitly and passes register(...) through verbatim (spec.md §4.3);
// legacy mode flattens its fields into plain global declarations since
// D3D9-era HLSL has no cbuffer syntax to target.
func (g *generator) writeBuffer(d *ast.BufferDecl) {
	if g.legacy {
		for _, f := range d.Fields {
			g.w.WriteLine("%s %s;", g.typeName(f.Type), f.Name)
		}
		return
	}
	kw := "cbuffer"
	if d.IsTexBuf {
		kw = "tbuffer"
	}
	g.w.WriteLine("%s %s%s {", kw, d.Name, g.registerSuffix(d.Register))
	g.w.PushIndent()
	for _, f := range d.Fields {
		g.w.WriteLine("%s %s;", g.typeName(f.Type), f.Name)
	}
	g.w.PopIndent()
	g.w.WriteLine("};")
}

func (g *generator) writeGlobalVar(d *ast.VarDecl) {
	if d.Type.Base.IsSampler() {
		g.writeSamplerDecl(d)
		return
	}
	if d.Type.Base == ast.Texture {
		g.w.WriteLine("Texture2D %s%s;", d.Name, g.registerSuffix(d.Register))
		return
	}
	prefix := ""
	if d.Type.IsConst {
		prefix = "const "
	}
	init := ""
	if d.Initializer != nil {
		init = " = " + g.expr(d.Initializer)
	}
	g.w.WriteLine("%s%s %s%s%s%s;", prefix, g.typeName(d.Type), d.Name, g.arraySuffix(d.Type), g.registerSuffix(d.Register), init)
}

func (g *generator) arraySuffix(t ast.Type) string {
	if !t.IsArray {
		return ""
	}
	if t.ArraySize != nil {
		return "[" + g.expr(t.ArraySize) + "]"
	}
	return "[]"
}
