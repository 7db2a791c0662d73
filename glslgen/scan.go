// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import "github.com/gogpu/naga/ast"

// scanUsage walks every user function body looking for calls to the four
// intrinsics whose GLSL lowering needs a synthesized helper, mirroring
// HLSLTree::GetContainsString in the original generator.
func (g *generator) scanUsage() {
	for _, d := range g.root.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Intrinsic {
			continue
		}
		for _, s := range fn.Body {
			g.scanStmt(s)
		}
	}
}

func (g *generator) scanStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		for _, c := range st.Stmts {
			g.scanStmt(c)
		}
	case *ast.DeclStmt:
		if st.Decl.Initializer != nil {
			g.scanExpr(st.Decl.Initializer)
		}
	case *ast.ExprStmt:
		g.scanExpr(st.X)
	case *ast.ReturnStmt:
		if st.Value != nil {
			g.scanExpr(st.Value)
		}
	case *ast.IfStmt:
		g.scanExpr(st.Cond)
		g.scanStmt(st.Then)
		if st.Else != nil {
			g.scanStmt(st.Else)
		}
	case *ast.ForStmt:
		if st.Init != nil {
			g.scanStmt(st.Init)
		}
		if st.Cond != nil {
			g.scanExpr(st.Cond)
		}
		if st.Post != nil {
			g.scanExpr(st.Post)
		}
		g.scanStmt(st.Body)
	}
}

func (g *generator) scanExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.UnaryExpr:
		g.scanExpr(ex.X)
	case *ast.BinaryExpr:
		g.scanExpr(ex.Left)
		g.scanExpr(ex.Right)
	case *ast.ConditionalExpr:
		g.scanExpr(ex.Cond)
		g.scanExpr(ex.Then)
		g.scanExpr(ex.Else)
	case *ast.CastExpr:
		g.scanExpr(ex.X)
	case *ast.ConstructorExpr:
		for _, a := range ex.Args {
			g.scanExpr(a)
		}
	case *ast.MemberExpr:
		g.scanExpr(ex.Object)
	case *ast.IndexExpr:
		g.scanExpr(ex.Array)
		g.scanExpr(ex.Index)
	case *ast.CallExpr:
		switch ex.Name {
		case "clip":
			g.usesClip = true
		case "tex2Dlod":
			g.usesTex2Dlod = true
		case "texCUBEbias":
			g.usesTexCUBEbias = true
		case "sincos":
			g.usesSinCos = true
		}
		for _, a := range ex.Args {
			g.scanExpr(a)
		}
	}
}
