// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"

	"github.com/gogpu/naga/ast"
	"github.com/gogpu/naga/codewriter"
	"github.com/gogpu/naga/internal/strpool"
)

// builtInSemantics maps a semantic name (case-sensitive here; the parser
// and this generator both treat HLSL semantics as written) to the GLSL
// built-in it binds to, taken verbatim from GLSLGenerator.cpp's
// _builtInSemantics table.
var builtInSemantics = map[string]string{
	"SV_POSITION": "gl_Position",
	"DEPTH":       "gl_FragDepth",
}

// Options configures a single GLSL emission run.
type Options struct {
	Stage      Stage
	EntryPoint string
}

// generator holds all per-run state for one Compile call. It is built
// fresh for every invocation; nothing here is safe to share across runs.
type generator struct {
	root    *ast.Root
	structs map[string]*ast.StructDecl
	pool    *strpool.Pool
	stage   Stage
	entry   *ast.FunctionDecl

	w  *codewriter.Writer
	nm *namer

	rename map[string]string

	matrixRowFn     string
	clipFn          string
	tex2DlodFn      string
	texCUBEbiasFn   string
	scalarSwizzleFn map[int]string
	sincosFn        string

	usesClip        bool
	usesTex2Dlod    bool
	usesTexCUBEbias bool
	usesSinCos      bool

	inPrefix  string
	outPrefix string

	curReturn ast.Type

	positionWritten bool

	err error
}

// Compile walks root and writes GLSL 1.40 source for the function named
// opts.EntryPoint, targeting opts.Stage. structs is the parser's
// name->declaration table (parser.Parser.Structs()).
func Compile(root *ast.Root, structs map[string]*ast.StructDecl, pool *strpool.Pool, opts Options) (string, error) {
	g := &generator{
		root:            root,
		structs:         structs,
		pool:            pool,
		stage:           opts.Stage,
		w:               codewriter.New(true),
		nm:              newNamer(pool),
		rename:          make(map[string]string),
		scalarSwizzleFn: make(map[int]string),
	}

	for _, d := range root.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == opts.EntryPoint {
			g.entry = fn
			break
		}
	}
	if g.entry == nil {
		return "", fmt.Errorf("entry point '%s' doesn't exist", opts.EntryPoint)
	}

	if g.stage == Vertex {
		g.inPrefix, g.outPrefix = "", "frag_"
	} else {
		g.inPrefix, g.outPrefix = "frag_", "rast_"
	}

	g.scanUsage()
	g.chooseHelperNames()

	g.w.WriteLine("#version 140")
	g.w.WriteLine("#pragma optionNV(fastmath on)")
	g.w.WriteLine("#pragma optionNV(ifcvt none)")
	g.w.WriteLine("#pragma optionNV(inline all)")
	g.w.WriteLine("#pragma optionNV(strict on)")
	g.w.WriteLine("#pragma optionNV(unroll all)")

	g.writeHelpers()
	g.writeAttributes()
	g.writeTopLevel()
	g.writeEntryWrapper()

	if g.err != nil {
		return "", g.err
	}
	if g.stage == Vertex && !g.positionWritten {
		return "", fmt.Errorf("Vertex shader must output a position")
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

// chooseHelperNames picks unique names for every synthesized helper up
// front, independent of whether the program actually needs each one —
// matching GLSLGenerator::Generate, which always reserves
// matrix_row/clip/tex2Dlod/texCUBEbias/scalar_swizzleN/sincos names
// even for helpers it ends up not emitting.
func (g *generator) chooseHelperNames() {
	g.matrixRowFn = g.nm.unique("matrix_row")
	g.clipFn = g.nm.unique("clip")
	g.tex2DlodFn = g.nm.unique("tex2Dlod")
	g.texCUBEbiasFn = g.nm.unique("texCUBEbias")
	for word := range reservedIdentifiers {
		g.rename[word] = g.nm.unique(word)
	}
	g.scalarSwizzleFn[2] = g.nm.unique("m_scalar_swizzle2")
	g.scalarSwizzleFn[3] = g.nm.unique("m_scalar_swizzle3")
	g.scalarSwizzleFn[4] = g.nm.unique("m_scalar_swizzle4")
	g.sincosFn = g.nm.unique("sincos")
}

// ident renames x if it collides with a GLSL-only reserved word,
// otherwise returns it unchanged.
func (g *generator) ident(name string) string {
	if r, ok := g.rename[name]; ok {
		return r
	}
	return name
}

func (g *generator) writeHelpers() {
	g.w.WriteLine("vec3 %s(mat3 m, int i) { return vec3(m[0][i], m[1][i], m[2][i]); }", g.matrixRowFn)
	g.w.WriteLine("vec4 %s(mat4 m, int i) { return vec4(m[0][i], m[1][i], m[2][i], m[3][i]); }", g.matrixRowFn)

	if g.usesClip {
		discard := ""
		if g.stage == Fragment {
			discard = "discard"
		}
		g.w.WriteLine("void %s(float x) { if (x < 0.0) %s; }", g.clipFn, discard)
		g.w.WriteLine("void %s(vec2 x) { if (any(lessThan(x, vec2(0.0, 0.0)))) %s; }", g.clipFn, discard)
		g.w.WriteLine("void %s(vec3 x) { if (any(lessThan(x, vec3(0.0, 0.0, 0.0)))) %s; }", g.clipFn, discard)
		g.w.WriteLine("void %s(vec4 x) { if (any(lessThan(x, vec4(0.0, 0.0, 0.0, 0.0)))) %s; }", g.clipFn, discard)
	}

	if g.usesTex2Dlod {
		g.w.WriteLine("vec4 %s(sampler2D sampler, vec4 texCoord) { return textureLod(sampler, texCoord.xy, texCoord.w); }", g.tex2DlodFn)
	}

	if g.usesTexCUBEbias {
		if g.stage == Fragment {
			g.w.WriteLine("vec4 %s(samplerCube sampler, vec4 texCoord) { return texture(sampler, texCoord.xyz, texCoord.w); }", g.texCUBEbiasFn)
		} else {
			g.w.WriteLine("vec4 %s(samplerCube sampler, vec4 texCoord) { return texture(sampler, texCoord.xyz); }", g.texCUBEbiasFn)
		}
	}

	g.w.WriteLine("vec2 %s(float x) { return vec2(x, x); }", g.scalarSwizzleFn[2])
	g.w.WriteLine("ivec2 %s(int x) { return ivec2(x, x); }", g.scalarSwizzleFn[2])
	g.w.WriteLine("uvec2 %s(uint x) { return uvec2(x, x); }", g.scalarSwizzleFn[2])

	g.w.WriteLine("vec3 %s(float x) { return vec3(x, x, x); }", g.scalarSwizzleFn[3])
	g.w.WriteLine("ivec3 %s(int x) { return ivec3(x, x, x); }", g.scalarSwizzleFn[3])
	g.w.WriteLine("uvec3 %s(uint x) { return uvec3(x, x, x); }", g.scalarSwizzleFn[3])

	g.w.WriteLine("vec4 %s(float x) { return vec4(x, x, x, x); }", g.scalarSwizzleFn[4])
	g.w.WriteLine("ivec4 %s(int x) { return ivec4(x, x, x, x); }", g.scalarSwizzleFn[4])
	g.w.WriteLine("uvec4 %s(uint x) { return uvec4(x, x, x, x); }", g.scalarSwizzleFn[4])

	if g.usesSinCos {
		for _, t := range []string{"float", "vec2", "vec3", "vec4"} {
			g.w.WriteLine("void %s(%s x, out %s s, out %s c) { s = sin(x); c = cos(x); }", g.sincosFn, t, t, t)
		}
	}
}

// writeTopLevel emits every struct, buffer, and global variable in
// source order, plus every function body (the entry function included —
// it is emitted as an ordinary function and called from the synthesized
// main() wrapper).
func (g *generator) writeTopLevel() {
	for _, d := range g.root.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			g.writeStruct(decl)
		case *ast.BufferDecl:
			g.writeBuffer(decl)
		case *ast.VarDecl:
			g.writeUniform(decl)
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
		g.w.WriteLine("%s %s;", g.typeName(f.Type), g.ident(f.Name))
	}
	g.w.PopIndent()
	g.w.WriteLine("};")
}

func (g *generator) writeUniform(d *ast.VarDecl) {
	if d.Type.Base == ast.Texture {
		return
	}
	g.w.WriteLine("uniform %s %s%s;", g.typeName(d.Type), g.ident(d.Name), g.arraySuffix(d.Type))
}

// writeBuffer emits a cbuffer/tbuffer as a std140 uniform block. Empty
// blocks are omitted entirely; NVIDIA's GLSL compiler rejects them.
func (g *generator) writeBuffer(d *ast.BufferDecl) {
	if len(d.Fields) == 0 {
		return
	}
	g.w.WriteLine("layout(std140) uniform %s {", d.Name)
	g.w.PushIndent()
	for _, f := range d.Fields {
		g.w.WriteLine("%s %s%s;", g.typeName(f.Type), g.ident(f.Name), g.arraySuffix(f.Type))
	}
	g.w.PopIndent()
	g.w.WriteLine("};")
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
