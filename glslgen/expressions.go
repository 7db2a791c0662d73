// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

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

// expr renders e as GLSL source text with no destination-type casting;
// callers that have a destination type in hand should go through castTo
// instead.
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
		if ex.Op.IsAssignment() {
			return fmt.Sprintf("%s %s %s", g.expr(ex.Left), op, g.castTo(ex.Right, ex.Left.Type()))
		}
		return fmt.Sprintf("(%s %s %s)", g.expr(ex.Left), op, g.expr(ex.Right))
	case *ast.ConditionalExpr:
		return fmt.Sprintf("(%s ? %s : %s)", g.castTo(ex.Cond, ast.Type{Base: ast.Bool}), g.expr(ex.Then), g.expr(ex.Else))
	case *ast.CastExpr:
		return fmt.Sprintf("%s(%s)", g.typeName(ex.Type()), g.expr(ex.X))
	case *ast.ConstructorExpr:
		return g.constructor(ex)
	case *ast.MemberExpr:
		return g.member(ex)
	case *ast.IndexExpr:
		return g.index(ex)
	case *ast.CallExpr:
		return g.call(ex)
	}
	g.fail("glslgen: unhandled expression node %T", e)
	return ""
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

// matrixPairs parses a matrix accessor field ("_m00_m11" or "_00_11")
// into zero-based (row, col) pairs, mirroring parser.parseMatrixAccessor
// but returning the indices the parser only counted.
func matrixPairs(field string) [][2]int {
	var pairs [][2]int
	i := 0
	for i < len(field) {
		if field[i] != '_' {
			return pairs
		}
		i++
		zeroBased := false
		if i < len(field) && field[i] == 'm' {
			zeroBased = true
			i++
		}
		if i+1 >= len(field) {
			return pairs
		}
		r := int(field[i] - '0')
		c := int(field[i+1] - '0')
		if !zeroBased {
			r--
			c--
		}
		pairs = append(pairs, [2]int{r, c})
		i += 2
	}
	return pairs
}

func (g *generator) member(m *ast.MemberExpr) string {
	obj := g.expr(m.Object)
	if m.ResolvedField != nil {
		return fmt.Sprintf("%s.%s", obj, g.ident(m.ResolvedField.Name))
	}

	ot := m.Object.Type()
	desc, numeric := ast.Descriptions[ot.Base]
	if !numeric {
		g.fail("glslgen: member access on non-numeric type %s", ot)
		return obj
	}

	if desc.NumDimensions == 2 {
		pairs := matrixPairs(m.Field)
		if len(pairs) == 1 {
			return fmt.Sprintf("(%s)[%d][%d]", obj, pairs[0][1], pairs[0][0])
		}
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = fmt.Sprintf("(%s)[%d][%d]", obj, p[1], p[0])
		}
		return fmt.Sprintf("%s(%s)", g.typeName(m.Type()), strings.Join(parts, ", "))
	}

	if desc.NumDimensions == 0 {
		if len(m.Field) == 1 {
			return obj
		}
		fn, ok := g.scalarSwizzleFn[len(m.Field)]
		if !ok {
			g.fail("glslgen: swizzle length %d on scalar not supported", len(m.Field))
			return obj
		}
		return fmt.Sprintf("%s(%s)", fn, obj)
	}

	return fmt.Sprintf("(%s).%s", obj, m.Field)
}

func (g *generator) index(x *ast.IndexExpr) string {
	arr := g.expr(x.Array)
	idx := g.expr(x.Index)
	at := x.Array.Type()
	if !at.IsArray {
		if desc, ok := ast.Descriptions[at.Base]; ok && desc.NumDimensions == 2 {
			return fmt.Sprintf("%s(%s, %s)", g.matrixRowFn, arr, idx)
		}
	}
	return fmt.Sprintf("(%s)[%s]", arr, idx)
}

// castTo wraps e's text in a GLSL conversion constructor when its type
// differs from dst and e is not already an explicit cast.
func (g *generator) castTo(e ast.Expr, dst ast.Type) string {
	if _, isCast := e.(*ast.CastExpr); isCast {
		return g.expr(e)
	}
	if e.Type().Equal(dst) {
		return g.expr(e)
	}
	return fmt.Sprintf("%s(%s)", g.typeName(dst), g.expr(e))
}

// argList renders call arguments, casting each to the matched function's
// declared parameter type (the "mul casts each operand" rule generalizes
// to every call).
func (g *generator) argList(call *ast.CallExpr) []string {
	parts := make([]string, len(call.Args))
	for i, a := range call.Args {
		if call.Function != nil && i < len(call.Function.Arguments) {
			parts[i] = g.castTo(a, call.Function.Arguments[i].Type)
		} else {
			parts[i] = g.expr(a)
		}
	}
	return parts
}

func (g *generator) call(c *ast.CallExpr) string {
	args := g.argList(c)
	switch c.Name {
	case "tex2D", "texCUBE":
		return fmt.Sprintf("texture(%s)", strings.Join(args, ", "))
	case "tex2Dproj":
		return fmt.Sprintf("texture2DProj(%s)", strings.Join(args, ", "))
	case "atan2":
		return fmt.Sprintf("atan(%s)", strings.Join(args, ", "))
	case "fmod":
		return fmt.Sprintf("mod(%s)", strings.Join(args, ", "))
	case "lerp":
		return fmt.Sprintf("mix(%s)", strings.Join(args, ", "))
	case "saturate":
		if len(args) != 1 {
			g.fail("glslgen: saturate takes exactly 1 argument")
			return ""
		}
		return fmt.Sprintf("clamp(%s, 0.0, 1.0)", args[0])
	case "mul":
		if len(args) != 2 {
			g.fail("glslgen: mul takes exactly 2 arguments")
			return ""
		}
		return fmt.Sprintf("((%s) * (%s))", args[0], args[1])
	case "clip":
		return fmt.Sprintf("%s(%s)", g.clipFn, strings.Join(args, ", "))
	case "tex2Dlod":
		return fmt.Sprintf("%s(%s)", g.tex2DlodFn, strings.Join(args, ", "))
	case "texCUBEbias":
		return fmt.Sprintf("%s(%s)", g.texCUBEbiasFn, strings.Join(args, ", "))
	case "sincos":
		return fmt.Sprintf("%s(%s)", g.sincosFn, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("%s(%s)", g.ident(c.Name), strings.Join(args, ", "))
	}
}
