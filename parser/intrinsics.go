package parser

import "github.com/gogpu/naga/ast"

// intrinsicTable is the global, immutable-once-built catalogue of
// built-in callables. It is shared process-wide (spec.md §9, "global
// intrinsic table") and consulted alongside the per-compilation user
// function list during overload resolution.
var intrinsicTable map[string][]*ast.FunctionDecl

func init() {
	intrinsicTable = buildIntrinsics()
}

func arg(name string, t ast.BaseType, mod ast.ArgModifier) ast.Argument {
	return ast.Argument{Name: name, Modifier: mod, Type: ast.Type{Base: t}}
}

func intrinsic(name string, ret ast.BaseType, args ...ast.Argument) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name:       name,
		ReturnType: ast.Type{Base: ret},
		Arguments:  args,
		Intrinsic:  true,
	}
}

func addOverload(t map[string][]*ast.FunctionDecl, fn *ast.FunctionDecl) {
	t[fn.Name] = append(t[fn.Name], fn)
}

var floatWidths = []ast.BaseType{ast.Float, ast.Float2, ast.Float3, ast.Float4}
var halfWidths = []ast.BaseType{ast.Half, ast.Half2, ast.Half3, ast.Half4}
var intWidths = []ast.BaseType{ast.Int, ast.Int2, ast.Int3, ast.Int4}
var uintWidths = []ast.BaseType{ast.UInt, ast.UInt2, ast.UInt3, ast.UInt4}

func buildIntrinsics() map[string][]*ast.FunctionDecl {
	t := make(map[string][]*ast.FunctionDecl)

	// single-argument math, same type in and out, float/half widths 1..4.
	unary := []string{"abs", "cos", "sin", "sqrt", "rsqrt", "rcp", "ceil", "floor",
		"frac", "saturate", "sign", "normalize", "ddx", "ddy"}
	for _, name := range unary {
		for _, w := range floatWidths {
			addOverload(t, intrinsic(name, w, arg("x", w, ast.ArgIn)))
		}
		for _, w := range halfWidths {
			addOverload(t, intrinsic(name, w, arg("x", w, ast.ArgIn)))
		}
	}

	// length(floatN|halfN) -> scalar of same family.
	for _, w := range floatWidths {
		addOverload(t, intrinsic("length", ast.Float, arg("x", w, ast.ArgIn)))
	}
	for _, w := range halfWidths {
		addOverload(t, intrinsic("length", ast.Half, arg("x", w, ast.ArgIn)))
	}

	// two-argument, same type both sides, same type result.
	binarySame := []string{"atan2", "fmod", "max", "min", "pow", "step", "reflect"}
	for _, name := range binarySame {
		for _, w := range floatWidths {
			addOverload(t, intrinsic(name, w, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn)))
		}
		for _, w := range halfWidths {
			addOverload(t, intrinsic(name, w, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn)))
		}
	}

	// three-argument, same type throughout.
	ternarySame := []string{"clamp", "lerp", "smoothstep"}
	for _, name := range ternarySame {
		for _, w := range floatWidths {
			addOverload(t, intrinsic(name, w, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn), arg("c", w, ast.ArgIn)))
		}
		for _, w := range halfWidths {
			addOverload(t, intrinsic(name, w, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn), arg("c", w, ast.ArgIn)))
		}
		// scalar-with-vector mix: a scalar edge/min/max against a vector x.
		for i := 1; i < len(floatWidths); i++ {
			addOverload(t, intrinsic(name, floatWidths[i],
				arg("a", ast.Float, ast.ArgIn), arg("b", ast.Float, ast.ArgIn), arg("c", floatWidths[i], ast.ArgIn)))
		}
	}

	// dot(T,T) -> scalar.
	for _, w := range floatWidths {
		addOverload(t, intrinsic("dot", ast.Float, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn)))
	}
	for _, w := range halfWidths {
		addOverload(t, intrinsic("dot", ast.Half, arg("a", w, ast.ArgIn), arg("b", w, ast.ArgIn)))
	}

	// cross(float3,float3) -> float3, and half3.
	addOverload(t, intrinsic("cross", ast.Float3, arg("a", ast.Float3, ast.ArgIn), arg("b", ast.Float3, ast.ArgIn)))
	addOverload(t, intrinsic("cross", ast.Half3, arg("a", ast.Half3, ast.ArgIn), arg("b", ast.Half3, ast.ArgIn)))

	// transpose.
	addOverload(t, intrinsic("transpose", ast.Float3x3, arg("m", ast.Float3x3, ast.ArgIn)))
	addOverload(t, intrinsic("transpose", ast.Float4x4, arg("m", ast.Float4x4, ast.ArgIn)))

	// mul: matrix*matrix, matrix*vector, vector*matrix, each family.
	mulPairs := []struct {
		mat, vec ast.BaseType
	}{
		{ast.Float3x3, ast.Float3}, {ast.Float4x4, ast.Float4},
		{ast.Half3x3, ast.Half3}, {ast.Half4x4, ast.Half4},
	}
	for _, p := range mulPairs {
		addOverload(t, intrinsic("mul", p.mat, arg("a", p.mat, ast.ArgIn), arg("b", p.mat, ast.ArgIn)))
		addOverload(t, intrinsic("mul", p.vec, arg("a", p.vec, ast.ArgIn), arg("b", p.mat, ast.ArgIn)))
		addOverload(t, intrinsic("mul", p.vec, arg("a", p.mat, ast.ArgIn), arg("b", p.vec, ast.ArgIn)))
	}

	// clip(floatN) -> void. Accepted in any stage; the GLSL emitter gives
	// its clip helper a body that discards only in fragment shaders.
	for _, w := range floatWidths {
		addOverload(t, intrinsic("clip", ast.Void, arg("x", w, ast.ArgIn)))
	}

	// sincos(x, out s, out c) -- modeled with inout out-params since this
	// AST has no dedicated `out` modifier.
	for _, w := range floatWidths {
		addOverload(t, intrinsic("sincos", ast.Void,
			arg("x", w, ast.ArgIn), arg("s", w, ast.ArgInout), arg("c", w, ast.ArgInout)))
	}

	// sampler intrinsics.
	addOverload(t, intrinsic("tex2D", ast.Float4, arg("s", ast.Sampler2D, ast.ArgIn), arg("tc", ast.Float2, ast.ArgIn)))
	addOverload(t, intrinsic("tex2Dproj", ast.Float4, arg("s", ast.Sampler2D, ast.ArgIn), arg("tc", ast.Float4, ast.ArgIn)))
	addOverload(t, intrinsic("tex2Dlod", ast.Float4, arg("s", ast.Sampler2D, ast.ArgIn), arg("tc", ast.Float4, ast.ArgIn)))
	addOverload(t, intrinsic("texCUBE", ast.Float4, arg("s", ast.SamplerCube, ast.ArgIn), arg("tc", ast.Float3, ast.ArgIn)))
	addOverload(t, intrinsic("texCUBEbias", ast.Float4, arg("s", ast.SamplerCube, ast.ArgIn), arg("tc", ast.Float4, ast.ArgIn)))

	return t
}

// LookupIntrinsics returns every intrinsic overload with the given name.
func LookupIntrinsics(name string) []*ast.FunctionDecl {
	return intrinsicTable[name]
}
