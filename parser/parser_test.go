package parser

import (
	"strings"
	"testing"

	"github.com/gogpu/naga/ast"
	"github.com/gogpu/naga/internal/arena"
	"github.com/gogpu/naga/internal/strpool"
	"github.com/gogpu/naga/token"
)

// parseSource parses src with entry as the designated entry point and
// fails the test if parsing reports an error.
func parseSource(t *testing.T, src, entry string) *ast.Root {
	t.Helper()
	pool := strpool.New()
	ar := arena.New()
	lex := token.NewLexer(src, "test.hlsl")
	p := New(lex, pool, ar, entry)
	root, ok := p.Parse()
	if !ok {
		t.Fatalf("parse error: %v", p.Err())
	}
	return root
}

// tryParseSource parses src and returns whatever error the parser
// reports, without failing the test.
func tryParseSource(src, entry string) (*ast.Root, error) {
	pool := strpool.New()
	ar := arena.New()
	lex := token.NewLexer(src, "test.hlsl")
	p := New(lex, pool, ar, entry)
	root, ok := p.Parse()
	if ok {
		return root, nil
	}
	return nil, p.Err()
}

func TestParseSimpleFragmentShader(t *testing.T) {
	src := `float4 main(float2 uv : TEXCOORD0) : SV_TARGET {
	return float4(uv, 0.0, 1.0);
}`
	root := parseSource(t, src, "main")
	if len(root.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(root.Decls))
	}
	fn, ok := root.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", root.Decls[0])
	}
	if fn.Name != "main" {
		t.Errorf("expected name %q, got %q", "main", fn.Name)
	}
	if len(fn.Arguments) != 1 || fn.Arguments[0].Semantic != "TEXCOORD0" {
		t.Errorf("expected one TEXCOORD0 argument, got %+v", fn.Arguments)
	}
	if fn.Semantic != "SV_TARGET" {
		t.Errorf("expected return semantic SV_TARGET, got %q", fn.Semantic)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", fn.Body[0])
	}
	ctor, ok := ret.Value.(*ast.ConstructorExpr)
	if !ok {
		t.Fatalf("expected ConstructorExpr, got %T", ret.Value)
	}
	if len(ctor.Args) != 3 {
		t.Errorf("expected 3 constructor args, got %d", len(ctor.Args))
	}
	if ctor.Type().Base != ast.Float4 {
		t.Errorf("expected float4 result type, got %v", ctor.Type().Base)
	}
}

func TestParseStructDeclaration(t *testing.T) {
	src := `struct VertexOutput {
	float4 position : SV_POSITION;
	float2 uv : TEXCOORD0;
};
float4 main(VertexOutput v) : SV_TARGET { return v.position; }`
	root := parseSource(t, src, "main")
	var st *ast.StructDecl
	for _, d := range root.Decls {
		if s, ok := d.(*ast.StructDecl); ok {
			st = s
		}
	}
	if st == nil {
		t.Fatal("expected a struct declaration")
	}
	if len(st.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Fields))
	}
	if st.Fields[0].Semantic != "SV_POSITION" || st.Fields[1].Semantic != "TEXCOORD0" {
		t.Errorf("unexpected field semantics: %+v", st.Fields)
	}
}

func TestParseCbufferAndRegister(t *testing.T) {
	src := `cbuffer PerFrame : register(b0) {
	float4x4 viewProj;
};
sampler2D diffuse : register(s3);
float4 main(float4 p : POSITION) : SV_POSITION { return mul(viewProj, p); }`
	root := parseSource(t, src, "main")
	var buf *ast.BufferDecl
	var samp *ast.VarDecl
	for _, d := range root.Decls {
		switch decl := d.(type) {
		case *ast.BufferDecl:
			buf = decl
		case *ast.VarDecl:
			samp = decl
		}
	}
	if buf == nil || buf.Register != "b0" {
		t.Fatalf("expected cbuffer with register b0, got %+v", buf)
	}
	if samp == nil || samp.Register != "s3" {
		t.Fatalf("expected sampler2D with register s3, got %+v", samp)
	}
}

func TestParseForLoopAndBreak(t *testing.T) {
	src := `float sum(float n) {
	float total = 0.0;
	for (int i = 0; i < 10; i++) {
		if (i == 5) break;
		total += n;
	}
	return total;
}
float main() : SV_TARGET { return sum(1.0); }`
	root := parseSource(t, src, "main")
	var sum *ast.FunctionDecl
	for _, d := range root.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "sum" {
			sum = fn
		}
	}
	if sum == nil {
		t.Fatal("expected function sum")
	}
	var forStmt *ast.ForStmt
	for _, s := range sum.Body {
		if f, ok := s.(*ast.ForStmt); ok {
			forStmt = f
		}
	}
	if forStmt == nil {
		t.Fatal("expected a for statement")
	}
	body, ok := forStmt.Body.(*ast.BlockStmt)
	if !ok || len(body.Stmts) != 2 {
		t.Fatalf("expected a 2-statement loop body, got %+v", forStmt.Body)
	}
}

func TestOverloadResolutionPicksExactMatch(t *testing.T) {
	src := `float4 main(float4 a, float4 b) : SV_TARGET { return lerp(a, b, 0.5); }`
	root := parseSource(t, src, "main")
	fn := root.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)
	call := ret.Value.(*ast.CallExpr)
	if call.Function == nil {
		t.Fatal("expected lerp to resolve to an intrinsic overload")
	}
	if call.Type().Base != ast.Float4 {
		t.Errorf("expected float4 result, got %v", call.Type().Base)
	}
}

func TestSwizzleAndMatrixAccessorTyping(t *testing.T) {
	src := `float4 main(float4 v, float4x4 m) : SV_TARGET {
	float3 rgb = v.xyz;
	float e = m._m00;
	return float4(rgb, e);
}`
	root := parseSource(t, src, "main")
	fn := root.Decls[0].(*ast.FunctionDecl)
	decl1 := fn.Body[0].(*ast.DeclStmt).Decl
	if decl1.Initializer.Type().Base != ast.Float3 {
		t.Errorf("expected .xyz to type as float3, got %v", decl1.Initializer.Type().Base)
	}
	decl2 := fn.Body[1].(*ast.DeclStmt).Decl
	if decl2.Initializer.Type().Base != ast.Float {
		t.Errorf("expected ._m00 to type as float, got %v", decl2.Initializer.Type().Base)
	}
}

func TestMatrixAccessorOutOfRangeForSmallerMatrixFails(t *testing.T) {
	_, err := tryParseSource(`float main(float3x3 m) : SV_TARGET { return m._m33; }`, "main")
	if err == nil {
		t.Fatal("expected an error: _m33 is out of range for a float3x3")
	}
}

func TestParseUndeclaredIdentifierFails(t *testing.T) {
	_, err := tryParseSource(`float4 main() : SV_TARGET { return undeclared; }`, "main")
	if err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestParseIntLiteralToAbsIsAmbiguousBetweenFloatAndHalf(t *testing.T) {
	// abs is overloaded on both the float and half families; an int
	// argument converts to float and to half with the same rank, so the
	// call cannot be resolved.
	_, err := tryParseSource(`float main() : SV_TARGET { return abs(1); }`, "main")
	if err == nil || !strings.Contains(err.Error(), "'abs' 2 overloads have similar conversions") {
		t.Fatalf("expected abs(int literal) to be ambiguous between abs(float) and abs(half), got %v", err)
	}
}

func TestInterpolationModifierAfterSemanticIsIgnored(t *testing.T) {
	src := `float4 main(float4 pos : SV_POSITION linear) : SV_TARGET { return pos; }`
	root := parseSource(t, src, "main")
	fn := root.Decls[0].(*ast.FunctionDecl)
	if len(fn.Arguments) != 1 || fn.Arguments[0].Modifier != ast.ArgNone {
		t.Fatalf("expected one argument with no modifier, got %+v", fn.Arguments)
	}
	if fn.Arguments[0].Semantic != "SV_POSITION" {
		t.Errorf("expected semantic SV_POSITION, got %q", fn.Arguments[0].Semantic)
	}
}

func TestArrayTypedBufferFieldParses(t *testing.T) {
	src := `cbuffer Bones {
	float4x4 bones[64];
};
float4 main(float4 p : POSITION) : SV_POSITION { return mul(bones[0], p); }`
	root := parseSource(t, src, "main")
	var buf *ast.BufferDecl
	for _, d := range root.Decls {
		if b, ok := d.(*ast.BufferDecl); ok {
			buf = b
		}
	}
	if buf == nil || len(buf.Fields) != 1 {
		t.Fatalf("expected a cbuffer with 1 field, got %+v", buf)
	}
	if !buf.Fields[0].Type.IsArray {
		t.Errorf("expected bones to be an array type, got %+v", buf.Fields[0].Type)
	}
}

func TestAmbiguousOverloadFails(t *testing.T) {
	src := `float g(float a, int b) { return a; }
float g(int a, float b) { return b; }
float main() : SV_TARGET { return g(1, 1); }`
	_, err := tryParseSource(src, "main")
	if err == nil {
		t.Fatal("expected an error: g(1, 1) is ambiguous between g(float,int) and g(int,float)")
	}
}

func TestParseDoesNotRequireTheEntryPointToExistYet(t *testing.T) {
	// Entry-point lookup is the emitter's job (glslgen.Compile/
	// hlslgen.Compile), not the parser's: a translation unit with no
	// function named "main" still parses successfully.
	root := parseSource(t, `float4 other() : SV_TARGET { return float4(0,0,0,1); }`, "main")
	if len(root.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(root.Decls))
	}
}
