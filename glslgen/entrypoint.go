// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga/ast"
)

// semLeaf is one semantic-bearing scalar/vector reachable from an entry
// function's inputs or outputs, after recursing through struct fields.
type semLeaf struct {
	path     string
	typ      ast.Type
	semantic string
}

// collectLeaves recurses into struct fields (each carrying its own
// semantic) and otherwise returns a single leaf for t/semantic, matching
// spec.md §4.2's "For a struct parameter, recurse into its fields'
// semantics."
func (g *generator) collectLeaves(path string, t ast.Type, semantic string) []semLeaf {
	if t.Base != ast.UserDefined {
		return []semLeaf{{path: path, typ: t, semantic: semantic}}
	}
	decl, ok := g.structs[t.TypeName]
	if !ok {
		g.fail("glslgen: unknown struct '%s'", t.TypeName)
		return nil
	}
	var leaves []semLeaf
	for _, f := range decl.Fields {
		leaves = append(leaves, g.collectLeaves(path+"."+g.ident(f.Name), f.Type, f.Semantic)...)
	}
	return leaves
}

// writeAttributes emits one in/out declaration per semantic-bearing leaf
// of the entry function's inputs and outputs, skipping semantics that
// bind to a GLSL built-in.
func (g *generator) writeAttributes() {
	declared := make(map[string]bool)

	for _, a := range g.entry.Arguments {
		for _, leaf := range g.collectLeaves(g.ident(a.Name), a.Type, a.Semantic) {
			if _, builtin := builtInSemantics[leaf.semantic]; builtin {
				continue
			}
			name := g.inPrefix + leaf.semantic
			if declared[name] {
				continue
			}
			declared[name] = true
			g.w.WriteLine("in %s %s;", g.typeName(leaf.typ), name)
		}
	}

	for _, leaf := range g.collectLeaves("temp", g.entry.ReturnType, g.entry.Semantic) {
		if _, builtin := builtInSemantics[leaf.semantic]; builtin {
			continue
		}
		name := g.outPrefix + leaf.semantic
		if declared[name] {
			continue
		}
		declared[name] = true
		g.w.WriteLine("out %s %s;", g.typeName(leaf.typ), name)
	}
}

func (g *generator) inputSource(semantic string) string {
	if b, ok := builtInSemantics[semantic]; ok {
		return b
	}
	return g.inPrefix + semantic
}

// writeEntryWrapper synthesizes the void main() that declares locals for
// the entry function's parameters, feeds them from attributes/built-ins,
// calls the entry function, and distributes its result.
func (g *generator) writeEntryWrapper() {
	fn := g.entry

	g.w.WriteLine("void main() {")
	g.w.PushIndent()

	for _, a := range fn.Arguments {
		g.w.WriteLine("%s %s;", g.typeName(a.Type), g.ident(a.Name))
	}
	for _, a := range fn.Arguments {
		for _, leaf := range g.collectLeaves(g.ident(a.Name), a.Type, a.Semantic) {
			g.w.WriteLine("%s = %s;", leaf.path, g.inputSource(leaf.semantic))
		}
	}

	args := make([]string, len(fn.Arguments))
	for i, a := range fn.Arguments {
		args[i] = g.ident(a.Name)
	}
	call := fmt.Sprintf("%s(%s)", g.ident(fn.Name), strings.Join(args, ", "))

	if fn.ReturnType.Base == ast.Void {
		g.w.WriteLine("%s;", call)
	} else {
		g.w.WriteLine("%s temp = %s;", g.typeName(fn.ReturnType), call)
		for _, leaf := range g.collectLeaves("temp", fn.ReturnType, fn.Semantic) {
			g.writeResultAssign(leaf)
		}
	}

	g.w.PopIndent()
	g.w.WriteLine("}")
}

// writeResultAssign distributes one result leaf into its built-in or
// out-attribute destination, applying the D3D->GL clip-space/Y-flip
// correction for gl_Position and the [0,1] clamp for gl_FragDepth.
func (g *generator) writeResultAssign(leaf semLeaf) {
	if b, builtin := builtInSemantics[leaf.semantic]; builtin {
		switch b {
		case "gl_Position":
			g.w.WriteLine("%s = %s * vec4(1,-1,2,1) - vec4(0,0,%s.w,0);", b, leaf.path, leaf.path)
			g.positionWritten = true
		case "gl_FragDepth":
			g.w.WriteLine("%s = clamp(%s, 0.0, 1.0);", b, leaf.path)
		default:
			g.w.WriteLine("%s = %s;", b, leaf.path)
		}
		return
	}
	g.w.WriteLine("%s = %s;", g.outPrefix+leaf.semantic, leaf.path)
}
