// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlslgen

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga/ast"
	"github.com/gogpu/naga/codewriter"
)

var binOpText = map[ast.BinaryOp]string{
	ast.BinAdd: "+", ast.BinSub: "-", ast.BinMul: "*", ast.BinDiv: "/",
	ast.BinLt: "<", ast.BinGt: ">", ast.BinLe: "<=", ast.BinGe: ">=",
	ast.BinEq: "==", ast.BinNe: "!=", ast.BinAnd: "&&", ast.BinOr: "||",
	ast.BinAssign: "=", ast.BinAddAssign: "+=", ast.BinSubAssign: "-=",
	ast.BinMulAssign: "*=", ast.BinDivAssign: "/=",
}

// expr renders e as modernized-HLSL source text. Re-emission keeps
// source syntax close to verbatim: the only rewrites are the sampler
// reference/call transforms spec.md §4.3 calls for.
func (g *generator) expr(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return g.literal(ex)
	case *ast.IdentExpr:
		return g.ident(ex.Name)
	case *ast.UnaryExpr:
		return g.unary(ex)
	case *ast.BinaryExpr:
		op := binOpText[ex.Op]
		return fmt.Sprintf("(%s %s %s)", g.expr(ex.Left), op, g.expr(ex.Right))
	case *ast.ConditionalExpr:
		return fmt.Sprintf("(%s ? %s : %s)", g.expr(ex.Cond), g.expr(ex.Then), g.expr(ex.Else))
	case *ast.CastExpr:
		return fmt.Sprintf("(%s)%s", g.typeName(ex.Type()), g.expr(ex.X))
	case *ast.ConstructorExpr:
		return g.constructor(ex)
	case *ast.MemberExpr:
		return g.member(ex)
	case *ast.IndexExpr:
		return g.index(ex)
	case *ast.CallExpr:
		return g.call(ex)
	}
	g.fail("hlslgen: unhandled expression node %T", e)
	return ""
}

// ident renders a bare identifier reference, rewriting a global sampler
// name to its bundled-struct constructor call when this run has split
// it into a Texture2D/TextureCube + SamplerState pair.
func (g *generator) ident(name string) string {
	if _, ok := g.samplers[name]; ok {
		return g.samplerConstructCall(name)
	}
	return name
}

func (g *generator) literal(l *ast.LiteralExpr) string {
	switch l.Type().Base {
	case ast.Bool:
		if l.BoolValue {
			return "true"
		}
		return "false"
	case ast.Int:
		return fmt.Sprintf("%d", l.IntValue)
	default:
		return codewriter.FormatFloat(l.FloatValue)
	}
}

func (g *generator) unary(u *ast.UnaryExpr) string {
	x := g.expr(u.X)
	switch u.Op {
	case ast.UnaryPlus:
		return fmt.Sprintf("(+%s)", x)
	case ast.UnaryMinus:
		return fmt.Sprintf("(-%s)", x)
	case ast.UnaryNot:
		return fmt.Sprintf("(!%s)", x)
	case ast.UnaryPreInc:
		return fmt.Sprintf("(++%s)", x)
	case ast.UnaryPreDec:
		return fmt.Sprintf("(--%s)", x)
	case ast.UnaryPostInc:
		return fmt.Sprintf("(%s++)", x)
	case ast.UnaryPostDec:
		return fmt.Sprintf("(%s--)", x)
	}
	return x
}

func (g *generator) constructor(c *ast.ConstructorExpr) string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = g.expr(a)
	}
	return fmt.Sprintf("%s(%s)", g.typeName(c.Type()), strings.Join(parts, ", "))
}

func (g *generator) member(m *ast.MemberExpr) string {
	obj := g.expr(m.Object)
	return fmt.Sprintf("%s.%s", obj, m.Field)
}

func (g *generator) index(x *ast.IndexExpr) string {
	return fmt.Sprintf("%s[%s]", g.expr(x.Array), g.expr(x.Index))
}

func (g *generator) argList(call *ast.CallExpr) []string {
	parts := make([]string, len(call.Args))
	for i, a := range call.Args {
		parts[i] = g.expr(a)
	}
	return parts
}

// call renders a function/intrinsic call verbatim by name. The
// sampler-family intrinsics (tex2D/tex2Dproj/tex2Dlod/texCUBE/
// texCUBEbias) need no special case here: their first argument is a
// plain identifier expression, and g.ident already rewrites a sampler
// reference to the bundled-struct constructor call their
// writeSamplerStructs overloads expect.
func (g *generator) call(c *ast.CallExpr) string {
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(g.argList(c), ", "))
}
