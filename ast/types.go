// Package ast defines the typed abstract syntax tree: the fixed base-type
// enumeration, per-type descriptions, type records, and the tagged-union
// node hierarchy (declarations, statements, expressions) that the parser
// builds and the emitters walk. Every node carries its source file and
// line; every expression additionally carries a resolved ExpressionType.
package ast

// BaseType enumerates every recognized HLSL base type, scalar through
// matrix, opaque resource types, user-defined structs, and the two
// sentinels Void/Unknown.
type BaseType int

const (
	Unknown BaseType = iota
	Void

	Float
	Float2
	Float3
	Float4
	Half
	Half2
	Half3
	Half4
	Int
	Int2
	Int3
	Int4
	UInt
	UInt2
	UInt3
	UInt4
	Bool

	Float3x3
	Float4x4
	Half3x3
	Half4x4

	Texture
	Sampler2D
	SamplerCube

	UserDefined
)

// NumericFamily groups base types that participate in implicit numeric
// conversion.
type NumericFamily int

const (
	FamilyNone NumericFamily = iota
	FamilyFloat
	FamilyHalf
	FamilyBool
	FamilyInt
	FamilyUint
)

// TypeDescription is the per-base-type metadata spec.md §3 calls for:
// numeric family, component count, and dimension (0 scalar/1 vector/2
// matrix) plus height, consulted by the cast-rank and member/array-access
// typing rules. The binary-op result type is looked up from a separate
// fixed table (casts.go) keyed directly by base-type pair, the same way
// the original's _binaryOpTypeLookup is a hand-written table rather than
// something derived from a per-type rank field.
type TypeDescription struct {
	Name          string
	Family        NumericFamily
	NumComponents int
	NumDimensions int // 0 scalar, 1 vector, 2 matrix
	Height        int // rows, for matrices; 1 otherwise
}

// Descriptions is indexed by BaseType for every type that has numeric
// conversion behavior; opaque/user/void/unknown types are absent and
// handled specially by the type-rank and operator-typing code.
var Descriptions = map[BaseType]TypeDescription{
	Float:  {"float", FamilyFloat, 1, 0, 1},
	Float2: {"float2", FamilyFloat, 2, 1, 1},
	Float3: {"float3", FamilyFloat, 3, 1, 1},
	Float4: {"float4", FamilyFloat, 4, 1, 1},

	Half:  {"half", FamilyHalf, 1, 0, 1},
	Half2: {"half2", FamilyHalf, 2, 1, 1},
	Half3: {"half3", FamilyHalf, 3, 1, 1},
	Half4: {"half4", FamilyHalf, 4, 1, 1},

	Int:  {"int", FamilyInt, 1, 0, 1},
	Int2: {"int2", FamilyInt, 2, 1, 1},
	Int3: {"int3", FamilyInt, 3, 1, 1},
	Int4: {"int4", FamilyInt, 4, 1, 1},

	UInt:  {"uint", FamilyUint, 1, 0, 1},
	UInt2: {"uint2", FamilyUint, 2, 1, 1},
	UInt3: {"uint3", FamilyUint, 3, 1, 1},
	UInt4: {"uint4", FamilyUint, 4, 1, 1},

	Bool: {"bool", FamilyBool, 1, 0, 1},

	Float3x3: {"float3x3", FamilyFloat, 3, 2, 3},
	Float4x4: {"float4x4", FamilyFloat, 4, 2, 4},
	Half3x3:  {"half3x3", FamilyHalf, 3, 2, 3},
	Half4x4:  {"half4x4", FamilyHalf, 4, 2, 4},
}

var baseTypeNames = map[BaseType]string{
	Unknown: "<unknown>", Void: "void",
	Texture: "texture", Sampler2D: "sampler2D", SamplerCube: "samplerCUBE",
}

// Name returns the HLSL spelling of b, falling back to the user-defined
// type name carried alongside it when b == UserDefined (callers index
// Descriptions or Type.TypeName as appropriate).
func (b BaseType) Name() string {
	if d, ok := Descriptions[b]; ok {
		return d.Name
	}
	if n, ok := baseTypeNames[b]; ok {
		return n
	}
	return "user-defined"
}

// IsNumeric reports whether b participates in the numeric conversion
// family table.
func (b BaseType) IsNumeric() bool {
	_, ok := Descriptions[b]
	return ok
}

// IsSampler reports whether b is one of the opaque sampler resource
// types.
func (b BaseType) IsSampler() bool {
	return b == Sampler2D || b == SamplerCube
}

// Type is the full type record: base type, interned name for
// user-defined types, array-ness, and const-ness.
type Type struct {
	Base       BaseType
	TypeName   string // valid when Base == UserDefined
	IsArray    bool
	ArraySize  Expr // nil if unsized or not an array
	IsConst    bool
}

// Equal reports structural identity (used by the array-identity rule in
// the cast-rank algorithm: same is-array flag and the same array-size
// expression identity).
func (t Type) Equal(o Type) bool {
	if t.IsArray != o.IsArray {
		return false
	}
	if t.IsArray && t.ArraySize != o.ArraySize {
		return false
	}
	if t.Base == UserDefined && o.Base == UserDefined {
		return t.TypeName == o.TypeName
	}
	return t.Base == o.Base
}

// String renders the type the way source would spell it, for
// diagnostics.
func (t Type) String() string {
	if t.Base == UserDefined {
		return t.TypeName
	}
	return t.Base.Name()
}
