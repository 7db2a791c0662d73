// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlslgen

import (
	"strings"
	"testing"

	"github.com/gogpu/naga/internal/arena"
	"github.com/gogpu/naga/internal/strpool"
	"github.com/gogpu/naga/parser"
	"github.com/gogpu/naga/token"
)

func mustCompile(t *testing.T, src, entry string, opts Options) string {
	t.Helper()
	pool := strpool.New()
	ar := arena.New()
	lex := token.NewLexer(src, "test.hlsl")
	p := parser.New(lex, pool, ar, entry)
	root, ok := p.Parse()
	if !ok {
		t.Fatalf("parse error: %v", p.Err())
	}
	out, err := Compile(root, p.Structs(), pool, opts)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return out
}

func TestCompileIdentity(t *testing.T) {
	src := `float4 main(float4 p : POSITION) : SV_POSITION { return p; }`
	out := mustCompile(t, src, "main", Options{})
	for _, want := range []string{
		"float4 main(float4 p : POSITION) : SV_POSITION {",
		"return p;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- got ---\n%s", want, out)
		}
	}
}

func TestCompileSamplerSplit(t *testing.T) {
	src := `
sampler2D diffuse : register(s3);
float4 main(float2 uv : TEXCOORD0) : SV_TARGET { return tex2D(diffuse, uv); }`
	out := mustCompile(t, src, "main", Options{})
	for _, want := range []string{
		"Texture2D diffuse_texture0 : register(t3);",
		"SamplerState diffuse_sampler0 : register(s3);",
		"struct TextureSampler2D0 {",
		"ConstructTextureSampler2D00(diffuse_texture0, diffuse_sampler0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- got ---\n%s", want, out)
		}
	}
}

func TestCompileLegacyModeKeepsSampler2D(t *testing.T) {
	src := `
sampler2D diffuse : register(s3);
float4 main(float2 uv : TEXCOORD0) : SV_TARGET { return tex2D(diffuse, uv); }`
	out := mustCompile(t, src, "main", Options{Legacy: true})
	if !strings.Contains(out, "sampler2D diffuse : register(s3);") {
		t.Errorf("legacy mode should keep sampler2D declarations verbatim:\n%s", out)
	}
	if strings.Contains(out, "TextureSampler2D") {
		t.Errorf("legacy mode should not synthesize a TextureSampler2D struct:\n%s", out)
	}
	if !strings.Contains(out, "tex2D(diffuse, uv)") {
		t.Errorf("legacy mode should call tex2D with the raw sampler:\n%s", out)
	}
}

func TestCompileCbufferPassthrough(t *testing.T) {
	src := `
cbuffer PerFrame : register(b0) {
    float4x4 viewProj;
};
float4 main(float4 p : POSITION) : SV_POSITION { return mul(viewProj, p); }`
	out := mustCompile(t, src, "main", Options{})
	for _, want := range []string{
		"cbuffer PerFrame : register(b0) {",
		"float4x4 viewProj;",
		"mul(viewProj, p)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- got ---\n%s", want, out)
		}
	}
}

func TestCompileLegacyFlattensCbuffer(t *testing.T) {
	src := `
cbuffer PerFrame : register(b0) {
    float4x4 viewProj;
};
float4 main(float4 p : POSITION) : SV_POSITION { return mul(viewProj, p); }`
	out := mustCompile(t, src, "main", Options{Legacy: true})
	if strings.Contains(out, "cbuffer") {
		t.Errorf("legacy mode should not emit a cbuffer wrapper:\n%s", out)
	}
	if !strings.Contains(out, "float4x4 viewProj;") {
		t.Errorf("legacy mode should flatten cbuffer fields to plain globals:\n%s", out)
	}
}
