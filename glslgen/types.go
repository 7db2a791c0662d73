// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glslgen walks a parsed and semantically resolved ast.Root and
// writes GLSL 1.40 source text: the back end described in spec.md §4.2,
// grounded on glsl/backend.go + glsl/writer.go + glsl/keywords.go +
// glsl/expressions.go + glsl/statements.go + glsl/types.go.
package glslgen

import "github.com/gogpu/naga/ast"

// Stage is the target pipeline stage named on the command line.
type Stage int

const (
	Fragment Stage = iota
	Vertex
)

// glslTypeNames maps every HLSL base type this compiler recognizes to
// its GLSL 1.40 spelling. half-family types have no GLSL analogue and
// are lowered to their float-family equivalent, matching every other
// GLSL transpiler in the ecosystem.
var glslTypeNames = map[ast.BaseType]string{
	ast.Void: "void",

	ast.Float: "float", ast.Float2: "vec2", ast.Float3: "vec3", ast.Float4: "vec4",
	ast.Half: "float", ast.Half2: "vec2", ast.Half3: "vec3", ast.Half4: "vec4",
	ast.Int: "int", ast.Int2: "ivec2", ast.Int3: "ivec3", ast.Int4: "ivec4",
	ast.UInt: "uint", ast.UInt2: "uvec2", ast.UInt3: "uvec3", ast.UInt4: "uvec4",
	ast.Bool: "bool",

	ast.Float3x3: "mat3", ast.Float4x4: "mat4",
	ast.Half3x3: "mat3", ast.Half4x4: "mat4",

	ast.Texture:     "sampler2D",
	ast.Sampler2D:   "sampler2D",
	ast.SamplerCube: "samplerCube",
}

// typeName renders t's base type as GLSL source text. Array brackets are
// not part of the result: callers append them through arraySuffix, since
// the array-size expression needs the same expression emitter as
// everything else.
func (g *generator) typeName(t ast.Type) string {
	if t.Base == ast.UserDefined {
		return t.TypeName
	}
	if n, ok := glslTypeNames[t.Base]; ok {
		return n
	}
	return "/* unknown type */"
}
