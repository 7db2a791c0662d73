// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga/ast"
)

func (g *generator) writeFunction(fn *ast.FunctionDecl) {
	prevReturn := g.curReturn
	g.curReturn = fn.ReturnType
	defer func() { g.curReturn = prevReturn }()

	params := make([]string, len(fn.Arguments))
	for i, a := range fn.Arguments {
		prefix := ""
		if a.Modifier == ast.ArgInout {
			prefix = "inout "
		}
		params[i] = fmt.Sprintf("%s%s %s", prefix, g.typeName(a.Type), g.ident(a.Name))
	}
	g.w.WriteLine("%s %s(%s) {", g.typeName(fn.ReturnType), g.ident(fn.Name), strings.Join(params, ", "))
	g.w.PushIndent()
	for _, s := range fn.Body {
		g.writeStmt(s)
	}
	g.w.PopIndent()
	g.w.WriteLine("}")
}

func (g *generator) writeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		g.w.WriteLine("{")
		g.w.PushIndent()
		for _, c := range st.Stmts {
			g.writeStmt(c)
		}
		g.w.PopIndent()
		g.w.WriteLine("}")
	case *ast.DeclStmt:
		g.writeDecl(st.Decl, st.Pos.File, st.Pos.Line)
	case *ast.ExprStmt:
		g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "%s;", g.expr(st.X))
	case *ast.ReturnStmt:
		if st.Value == nil {
			g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "return;")
		} else {
			g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "return %s;", g.castTo(st.Value, g.curReturn))
		}
	case *ast.DiscardStmt:
		g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "discard;")
	case *ast.BreakStmt:
		g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "break;")
	case *ast.ContinueStmt:
		g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "continue;")
	case *ast.IfStmt:
		g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "if (%s)", g.castTo(st.Cond, ast.Type{Base: ast.Bool}))
		g.writeBranch(st.Then)
		if st.Else != nil {
			g.w.WriteLine("else")
			g.writeBranch(st.Else)
		}
	case *ast.ForStmt:
		g.writeFor(st)
	default:
		g.fail("glslgen: unhandled statement node %T", s)
	}
}

// writeBranch emits an if/else arm, wrapping non-block arms in braces so
// the generated text never depends on dangling-else rules.
func (g *generator) writeBranch(s ast.Stmt) {
	if b, ok := s.(*ast.BlockStmt); ok {
		g.writeStmt(b)
		return
	}
	g.w.WriteLine("{")
	g.w.PushIndent()
	g.writeStmt(s)
	g.w.PopIndent()
	g.w.WriteLine("}")
}

func (g *generator) writeFor(st *ast.ForStmt) {
	init := ""
	if st.Init != nil {
		init = g.declText(st.Init.Decl)
	}
	cond := ""
	if st.Cond != nil {
		cond = g.castTo(st.Cond, ast.Type{Base: ast.Bool})
	}
	post := ""
	if st.Post != nil {
		post = g.expr(st.Post)
	}
	g.w.WriteLineAt(st.Pos.File, st.Pos.Line, "for (%s; %s; %s)", init, cond, post)
	g.writeBranch(st.Body)
}

func (g *generator) declText(d *ast.VarDecl) string {
	base := fmt.Sprintf("%s %s%s", g.typeName(d.Type), g.ident(d.Name), g.arraySuffix(d.Type))
	if d.Initializer != nil {
		return fmt.Sprintf("%s = %s", base, g.castTo(d.Initializer, d.Type))
	}
	return base
}

func (g *generator) writeDecl(d *ast.VarDecl, file string, line int) {
	g.w.WriteLineAt(file, line, "%s;", g.declText(d))
}
