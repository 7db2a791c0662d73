// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlslgen

import (
	"strconv"

	"github.com/gogpu/naga/ast"
)

// textureRegister derives the Texture2D/TextureCube register ("tN") a
// split sampler declaration's texture half binds to, from the original
// sampler register ("sN"). Non-numeric or absent registers are passed
// through unchanged; FakeMissingBindings-style inference is out of scope
// here the same way it is for the rest of this compiler's register
// handling (registers are threaded through verbatim, never invented).
func textureRegister(samplerRegister string) string {
	if len(samplerRegister) < 2 || samplerRegister[0] != 's' {
		return samplerRegister
	}
	if _, err := strconv.Atoi(samplerRegister[1:]); err != nil {
		return samplerRegister
	}
	return "t" + samplerRegister[1:]
}

// samplerGlobal records one global sampler2D/samplerCUBE variable the
// non-legacy backend has split into a Texture2D/TextureCube +
// SamplerState pair.
type samplerGlobal struct {
	name         string
	base         ast.BaseType
	textureName  string
	samplerName  string
	register     string
}

// scanSamplers finds every global sampler2D/samplerCUBE declaration and,
// in non-legacy mode, plans its texture/sampler-state split by choosing
// the texture and sampler-state names; samplerConstructCall later renders
// the constructor call that replaces each reference to it.
func (g *generator) scanSamplers() {
	g.samplers = make(map[string]*samplerGlobal)
	for _, d := range g.root.Decls {
		vd, ok := d.(*ast.VarDecl)
		if !ok || !vd.Type.Base.IsSampler() {
			continue
		}
		sg := &samplerGlobal{
			name:     vd.Name,
			base:     vd.Type.Base,
			register: vd.Register,
		}
		if !g.legacy {
			sg.textureName = g.nm.unique(vd.Name + "_texture")
			sg.samplerName = g.nm.unique(vd.Name + "_sampler")
		}
		g.samplers[vd.Name] = sg
		if sg.base == ast.SamplerCube {
			g.usesCube = true
		} else {
			g.usesTex2D = true
		}
	}
}

// chooseSamplerNames picks the struct/constructor names that
// depend only on which sampler dimensionalities the program actually
// declares, once scanSamplers has populated g.usesTex2D/g.usesCube.
func (g *generator) chooseSamplerNames() {
	if g.legacy {
		return
	}
	if g.usesTex2D {
		g.tex2DStructName = g.nm.unique("TextureSampler2D")
		g.tex2DCtorName = g.nm.unique("Construct" + g.tex2DStructName)
	}
	if g.usesCube {
		g.cubeStructName = g.nm.unique("TextureSamplerCube")
		g.cubeCtorName = g.nm.unique("Construct" + g.cubeStructName)
	}
}

// writeSamplerStructs emits the TextureSamplerNNN struct, its constructor
// function, and its tex2D/tex2Dproj/tex2Dlod or texCUBE/texCUBEbias
// helper overloads, implemented via Sample/SampleLevel/SampleBias.
func (g *generator) writeSamplerStructs() {
	if g.legacy {
		return
	}
	if g.usesTex2D {
		g.w.WriteLine("struct %s {", g.tex2DStructName)
		g.w.PushIndent()
		g.w.WriteLine("Texture2D tex;")
		g.w.WriteLine("SamplerState smp;")
		g.w.PopIndent()
		g.w.WriteLine("};")
		g.w.WriteLine("%s %s(Texture2D t, SamplerState s) {", g.tex2DStructName, g.tex2DCtorName)
		g.w.PushIndent()
		g.w.WriteLine("%s r;", g.tex2DStructName)
		g.w.WriteLine("r.tex = t;")
		g.w.WriteLine("r.smp = s;")
		g.w.WriteLine("return r;")
		g.w.PopIndent()
		g.w.WriteLine("}")
		g.w.WriteLine("float4 tex2D(%s s, float2 tc) { return s.tex.Sample(s.smp, tc); }", g.tex2DStructName)
		g.w.WriteLine("float4 tex2Dproj(%s s, float4 tc) { return s.tex.Sample(s.smp, tc.xy / tc.w); }", g.tex2DStructName)
		g.w.WriteLine("float4 tex2Dlod(%s s, float4 tc) { return s.tex.SampleLevel(s.smp, tc.xy, tc.w); }", g.tex2DStructName)
	}
	if g.usesCube {
		g.w.WriteLine("struct %s {", g.cubeStructName)
		g.w.PushIndent()
		g.w.WriteLine("TextureCube tex;")
		g.w.WriteLine("SamplerState smp;")
		g.w.PopIndent()
		g.w.WriteLine("};")
		g.w.WriteLine("%s %s(TextureCube t, SamplerState s) {", g.cubeStructName, g.cubeCtorName)
		g.w.PushIndent()
		g.w.WriteLine("%s r;", g.cubeStructName)
		g.w.WriteLine("r.tex = t;")
		g.w.WriteLine("r.smp = s;")
		g.w.WriteLine("return r;")
		g.w.PopIndent()
		g.w.WriteLine("}")
		g.w.WriteLine("float4 texCUBE(%s s, float3 tc) { return s.tex.Sample(s.smp, tc); }", g.cubeStructName)
		g.w.WriteLine("float4 texCUBEbias(%s s, float4 tc) { return s.tex.SampleBias(s.smp, tc.xyz, tc.w); }", g.cubeStructName)
	}
}

// writeSamplerDecl emits one global sampler declaration: split into a
// Texture2D/TextureCube plus a SamplerState in non-legacy mode, or the
// bare sampler2D/samplerCUBE declaration in legacy mode.
func (g *generator) writeSamplerDecl(d *ast.VarDecl) {
	sg := g.samplers[d.Name]
	if g.legacy {
		g.w.WriteLine("%s %s%s;", g.typeName(d.Type), d.Name, g.registerSuffix(d.Register))
		return
	}
	texType := "Texture2D"
	if sg.base == ast.SamplerCube {
		texType = "TextureCube"
	}
	g.w.WriteLine("%s %s%s;", texType, sg.textureName, g.registerSuffix(textureRegister(sg.register)))
	g.w.WriteLine("SamplerState %s%s;", sg.samplerName, g.registerSuffix(sg.register))
}

func (g *generator) registerSuffix(reg string) string {
	if reg == "" {
		return ""
	}
	return " : register(" + reg + ")"
}

// samplerConstructCall renders a reference to sampler global name as the
// bundled-struct constructor call this backend rewrites every such
// reference to.
func (g *generator) samplerConstructCall(name string) string {
	sg, ok := g.samplers[name]
	if !ok {
		return name
	}
	if g.legacy {
		return name
	}
	ctor := g.tex2DCtorName
	if sg.base == ast.SamplerCube {
		ctor = g.cubeCtorName
	}
	return ctor + "(" + sg.textureName + ", " + sg.samplerName + ")"
}
