// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/gogpu/naga/internal/arena"
	"github.com/gogpu/naga/internal/strpool"
	"github.com/gogpu/naga/parser"
	"github.com/gogpu/naga/token"
)

func mustCompile(t *testing.T, src, entry string, stage Stage) string {
	t.Helper()
	pool := strpool.New()
	ar := arena.New()
	lex := token.NewLexer(src, "test.hlsl")
	p := parser.New(lex, pool, ar, entry)
	root, ok := p.Parse()
	if !ok {
		t.Fatalf("parse error: %v", p.Err())
	}
	out, err := Compile(root, p.Structs(), pool, Options{Stage: stage, EntryPoint: entry})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return out
}

func TestCompileVertexIdentity(t *testing.T) {
	src := `float4 main(float4 p : POSITION) : SV_POSITION { return p; }`
	out := mustCompile(t, src, "main", Vertex)

	for _, want := range []string{
		"#version 140",
		"in vec4 POSITION;",
		"vec4 p;",
		"p = POSITION;",
		"gl_Position = temp * vec4(1,-1,2,1) - vec4(0,0,temp.w,0);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- got ---\n%s", want, out)
		}
	}
}

func TestCompileVertexWithoutPositionFails(t *testing.T) {
	src := `float4 main(float4 p : TEXCOORD0) : TEXCOORD0 { return p; }`
	_, err := func() (string, error) {
		pool := strpool.New()
		ar := arena.New()
		lex := token.NewLexer(src, "test.hlsl")
		p := parser.New(lex, pool, ar, "main")
		root, ok := p.Parse()
		if !ok {
			t.Fatalf("parse error: %v", p.Err())
		}
		return Compile(root, p.Structs(), pool, Options{Stage: Vertex, EntryPoint: "main"})
	}()
	if err == nil {
		t.Fatalf("expected error for vertex shader without position output")
	}
}

func TestCompileSaturateRewrite(t *testing.T) {
	src := `float4 main(float4 c : COLOR) : SV_TARGET { return saturate(c); }`
	out := mustCompile(t, src, "main", Fragment)
	if !strings.Contains(out, "clamp(c, 0.0, 1.0)") {
		t.Errorf("saturate not rewritten to clamp:\n%s", out)
	}
}

func TestCompileMulRewrite(t *testing.T) {
	src := `float4 main(float4 p : POSITION, float4x4 m : TEXCOORD0) : SV_POSITION { return mul(m, p); }`
	out := mustCompile(t, src, "main", Vertex)
	if !strings.Contains(out, "((m) * (p))") {
		t.Errorf("mul not rewritten to multiplication:\n%s", out)
	}
}

func TestCompileStructIO(t *testing.T) {
	src := `
struct VSInput {
    float4 position : POSITION;
    float2 uv : TEXCOORD0;
};
struct VSOutput {
    float4 position : SV_POSITION;
    float2 uv : TEXCOORD0;
};
VSOutput main(VSInput input) {
    VSOutput output;
    output.position = input.position;
    output.uv = input.uv;
    return output;
}`
	out := mustCompile(t, src, "main", Vertex)
	for _, want := range []string{
		"struct VSInput {",
		"struct VSOutput {",
		"in vec4 POSITION;",
		"in vec2 TEXCOORD0;",
		"out vec2 frag_TEXCOORD0;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- got ---\n%s", want, out)
		}
	}
	if regexp.MustCompile(`\b(input|output)\b`).MatchString(out) {
		t.Errorf("reserved identifiers 'input'/'output' were not renamed:\n%s", out)
	}
}

func TestCompileCbufferEmptyOmitted(t *testing.T) {
	src := `
cbuffer Empty {
};
float4 main() : SV_TARGET { return float4(0.0, 0.0, 0.0, 1.0); }`
	out := mustCompile(t, src, "main", Fragment)
	if strings.Contains(out, "Empty") {
		t.Errorf("empty cbuffer should be omitted entirely:\n%s", out)
	}
}

func TestCompileMatrixSwizzle(t *testing.T) {
	src := `float main(float3x3 m : TEXCOORD0) : SV_TARGET { return m._m00; }`
	out := mustCompile(t, src, "main", Fragment)
	if !strings.Contains(out, "[0][0]") {
		t.Errorf("matrix accessor not emitted as column/row index:\n%s", out)
	}
}
