package parser

import "github.com/gogpu/naga/ast"

// familyRank is the 5x5 numeric-family conversion-rank table from
// spec.md §4.1, rows source family / columns destination family.
var familyRank = map[ast.NumericFamily]map[ast.NumericFamily]int{
	ast.FamilyFloat: {ast.FamilyFloat: 0, ast.FamilyHalf: 4, ast.FamilyBool: 4, ast.FamilyInt: 4, ast.FamilyUint: 4},
	ast.FamilyHalf:  {ast.FamilyFloat: 1, ast.FamilyHalf: 0, ast.FamilyBool: 4, ast.FamilyInt: 4, ast.FamilyUint: 4},
	ast.FamilyBool:  {ast.FamilyFloat: 5, ast.FamilyHalf: 5, ast.FamilyBool: 0, ast.FamilyInt: 5, ast.FamilyUint: 5},
	ast.FamilyInt:   {ast.FamilyFloat: 5, ast.FamilyHalf: 5, ast.FamilyBool: 4, ast.FamilyInt: 0, ast.FamilyUint: 3},
	ast.FamilyUint:  {ast.FamilyFloat: 5, ast.FamilyHalf: 5, ast.FamilyBool: 4, ast.FamilyInt: 2, ast.FamilyUint: 0},
}

// TypeCastRank computes the implicit-cast rank from src to dst per
// spec.md §4.1. -1 means not convertible; lower is better; 0 means
// identical.
func TypeCastRank(src, dst ast.Type) int {
	if src.IsArray || dst.IsArray {
		if src.IsArray != dst.IsArray {
			return -1
		}
		if src.ArraySize != dst.ArraySize {
			return -1
		}
	}

	if src.Base == ast.UserDefined && dst.Base == ast.UserDefined {
		if src.TypeName == dst.TypeName {
			return 0
		}
		return -1
	}
	if src.Base == ast.UserDefined || dst.Base == ast.UserDefined {
		return -1
	}

	if src.Base == dst.Base {
		return 0
	}

	if !src.Base.IsNumeric() || !dst.Base.IsNumeric() {
		return -1
	}

	sd := ast.Descriptions[src.Base]
	dd := ast.Descriptions[dst.Base]

	rank, ok := familyRank[sd.Family][dd.Family]
	if !ok {
		return -1
	}
	rank <<= 1

	srcScalar := sd.NumDimensions == 0
	dstVectorLike := dd.NumDimensions > 0
	switch {
	case srcScalar && dstVectorLike:
		rank |= 1
	case (sd.NumDimensions == dd.NumDimensions && sd.NumComponents > dd.NumComponents) ||
		(sd.NumDimensions > 0 && dd.NumDimensions == 0):
		rank |= 1 << 4
	case sd.NumDimensions != dd.NumDimensions || sd.NumComponents != dd.NumComponents:
		return -1
	}

	return rank
}

// binaryOpTypeLookup is the fixed square table indexed by the two
// operand base types for non-relational binary operators, encoding
// HLSL's scalar/vector/matrix broadcasting rules. Absent entries mean
// "no global operator found which takes these types".
var binaryOpTypeLookup = map[[2]ast.BaseType]ast.BaseType{}

func reg(a, b, result ast.BaseType) {
	binaryOpTypeLookup[[2]ast.BaseType{a, b}] = result
}

func init() {
	numeric := []ast.BaseType{
		ast.Float, ast.Float2, ast.Float3, ast.Float4,
		ast.Half, ast.Half2, ast.Half3, ast.Half4,
		ast.Int, ast.Int2, ast.Int3, ast.Int4,
		ast.UInt, ast.UInt2, ast.UInt3, ast.UInt4,
	}
	// same-type operands produce the same type.
	for _, t := range numeric {
		reg(t, t, t)
	}
	// scalar (op) vector / vector (op) scalar broadcasts to the vector.
	families := map[ast.NumericFamily][]ast.BaseType{
		ast.FamilyFloat: {ast.Float, ast.Float2, ast.Float3, ast.Float4},
		ast.FamilyHalf:  {ast.Half, ast.Half2, ast.Half3, ast.Half4},
		ast.FamilyInt:   {ast.Int, ast.Int2, ast.Int3, ast.Int4},
		ast.FamilyUint:  {ast.UInt, ast.UInt2, ast.UInt3, ast.UInt4},
	}
	for _, list := range families {
		scalar := list[0]
		for _, v := range list[1:] {
			reg(scalar, v, v)
			reg(v, scalar, v)
		}
	}
	// a scalar (op) matrix or matrix (op) scalar broadcasts to the matrix.
	matrices := []ast.BaseType{ast.Float3x3, ast.Float4x4, ast.Half3x3, ast.Half4x4}
	matScalar := map[ast.BaseType]ast.BaseType{
		ast.Float3x3: ast.Float, ast.Float4x4: ast.Float,
		ast.Half3x3: ast.Half, ast.Half4x4: ast.Half,
	}
	for _, m := range matrices {
		reg(m, m, m)
		s := matScalar[m]
		reg(m, s, m)
		reg(s, m, m)
	}
	// bool (op) bool stays bool (logical and relational operators never
	// consult this table; BinaryResultType types them as bool directly).
	reg(ast.Bool, ast.Bool, ast.Bool)
}

// BinaryResultType implements spec.md's "Binary operator typing" rule.
// ok is false when no entry exists ("no global operator found").
func BinaryResultType(op ast.BinaryOp, left, right ast.Type) (ast.Type, bool) {
	if op.IsRelational() {
		return ast.Type{Base: ast.Bool}, true
	}
	if left.IsArray || right.IsArray {
		return ast.Type{}, false
	}
	result, ok := binaryOpTypeLookup[[2]ast.BaseType{left.Base, right.Base}]
	if !ok {
		return ast.Type{}, false
	}
	return ast.Type{Base: result}, true
}
