// Package token defines the lexical token vocabulary for the legacy HLSL
// subset and a Source adapter the parser consumes via peek/next/error,
// matching the "token source" collaborator the parser is written against.
package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Identifier
	IntLiteral
	FloatLiteral
	BoolLiteral

	// Punctuation / operators.
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	Dot
	Question

	Assign
	Plus
	Minus
	Star
	Slash
	Not

	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign

	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	AndAnd
	OrOr
	PlusPlus
	MinusMinus

	// Keywords.
	KwConst
	KwStruct
	KwCBuffer
	KwTBuffer
	KwRegister
	KwPackoffset
	KwIf
	KwElse
	KwFor
	KwReturn
	KwDiscard
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwVoid
	KwIn
	KwInout
	KwUniform
	KwInterp   // interpolation modifier: linear, centroid, nointerpolation, noperspective, sample
	KwTypeName // any of the base-type keywords (float4, int2, sampler2D, ...)
)

var keywords = map[string]Kind{
	"const":      KwConst,
	"struct":     KwStruct,
	"cbuffer":    KwCBuffer,
	"tbuffer":    KwTBuffer,
	"register":   KwRegister,
	"packoffset": KwPackoffset,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"return":     KwReturn,
	"discard":    KwDiscard,
	"break":      KwBreak,
	"continue":   KwContinue,
	"true":       KwTrue,
	"false":      KwFalse,
	"void":       KwVoid,
	"in":         KwIn,
	"inout":      KwInout,
	"uniform":    KwUniform,

	"linear":          KwInterp, // interpolation modifiers: accepted, silently ignored
	"centroid":        KwInterp,
	"nointerpolation": KwInterp,
	"noperspective":   KwInterp,
	"sample":          KwInterp,
}

// TypeNames is the set of recognized base-type keyword spellings; Lookup
// classifies any of these as KwTypeName.
var TypeNames = map[string]bool{
	"float": true, "float2": true, "float3": true, "float4": true,
	"float3x3": true, "float4x4": true,
	"half": true, "half2": true, "half3": true, "half4": true,
	"half3x3": true, "half4x4": true,
	"bool": true,
	"int":  true, "int2": true, "int3": true, "int4": true,
	"uint": true, "uint2": true, "uint3": true, "uint4": true,
	"texture": true, "sampler2D": true, "samplerCUBE": true,
}

// Lookup classifies an identifier spelling as a keyword, a type name, or
// a plain identifier.
func Lookup(ident string) Kind {
	if TypeNames[ident] {
		return KwTypeName
	}
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

// Token is one lexical unit plus its source position and literal payload.
type Token struct {
	Kind       Kind
	Literal    string
	IntValue   int64
	FloatValue float64
	BoolValue  bool
	File       string
	Line       int
}

// String renders a best-effort name for diagnostics, e.g. "near 'foo'".
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case IntLiteral:
		return fmt.Sprintf("%d", t.IntValue)
	case FloatLiteral:
		return fmt.Sprintf("%g", t.FloatValue)
	default:
		return t.Literal
	}
}

// Source is the adapter the parser consumes: peek, consume, current
// position, and error reporting (token formatting for diagnostics is
// Token.String), so swapping the underlying Lexer never touches the
// parser.
type Source interface {
	Peek() Token
	Next() Token
	File() string
	Line() int
	Errorf(format string, args ...any) error
}
