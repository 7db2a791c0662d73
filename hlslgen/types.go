// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlslgen walks a parsed and semantically resolved ast.Root and
// re-emits it as modernized, shader-model-5-style HLSL: the back end
// described in spec.md §4.3, grounded on glslgen's sibling structure
// (itself grounded on glsl/backend.go + glsl/writer.go) generalized from
// "HLSL AST -> GLSL text" to "HLSL AST -> modernized HLSL text", plus
// original_source/src/HLSLGenerator.cpp for the sampler-splitting and
// cbuffer-passthrough behavior spec.md §4.3 describes at design level.
package hlslgen

import "github.com/gogpu/naga/ast"

// hlslTypeNames maps every HLSL base type to its own modernized-HLSL
// spelling. Unlike glslgen, this is nearly the identity map: HLSL source
// re-emitted as HLSL keeps HLSL's own type names, including half-family
// types (GLSL has no half analogue, but HLSL does).
var hlslTypeNames = map[ast.BaseType]string{
	ast.Void: "void",

	ast.Float: "float", ast.Float2: "float2", ast.Float3: "float3", ast.Float4: "float4",
	ast.Half: "half", ast.Half2: "half2", ast.Half3: "half3", ast.Half4: "half4",
	ast.Int: "int", ast.Int2: "int2", ast.Int3: "int3", ast.Int4: "int4",
	ast.UInt: "uint", ast.UInt2: "uint2", ast.UInt3: "uint3", ast.UInt4: "uint4",
	ast.Bool: "bool",

	ast.Float3x3: "float3x3", ast.Float4x4: "float4x4",
	ast.Half3x3: "half3x3", ast.Half4x4: "half4x4",

	ast.Texture: "Texture2D",
}

// typeName renders t as HLSL source text. Sampler base types are passed
// on to g.samplerType, which resolves them to the synthesized
// TextureSamplerNNN struct name (non-legacy) or the bare sampler2D/
// samplerCUBE spelling (legacy), since the result depends on g.legacy.
func (g *generator) typeName(t ast.Type) string {
	if t.Base == ast.UserDefined {
		return t.TypeName
	}
	if t.Base == ast.Sampler2D || t.Base == ast.SamplerCube {
		return g.samplerType(t.Base)
	}
	if n, ok := hlslTypeNames[t.Base]; ok {
		return n
	}
	return "/* unknown type */"
}

// samplerType names the type a sampler-typed variable/parameter is
// declared with: the bundled struct in non-legacy mode, the bare legacy
// spelling otherwise.
func (g *generator) samplerType(b ast.BaseType) string {
	if g.legacy {
		if b == ast.SamplerCube {
			return "samplerCUBE"
		}
		return "sampler2D"
	}
	if b == ast.SamplerCube {
		return g.cubeStructName
	}
	return g.tex2DStructName
}
