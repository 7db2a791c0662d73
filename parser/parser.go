// Package parser implements the fused recursive-descent parser and
// semantic analyzer: it builds the typed ast.Root directly, resolving
// scopes, overloads, operator types, and member/array access as each
// node is constructed, rather than lowering a separate front-end tree
// into an intermediate representation afterward.
package parser

import (
	"sort"

	"github.com/gogpu/naga/ast"
	"github.com/gogpu/naga/internal/arena"
	"github.com/gogpu/naga/internal/strpool"
	"github.com/gogpu/naga/token"
)

// Parser holds all state for one translation unit: the token source, the
// string pool and node arena (both out of scope per spec.md but threaded
// through so the parser can intern names and allocate nodes), the scope
// stack, and the user-defined struct/function tables.
type Parser struct {
	src   token.Source
	pool  *strpool.Pool
	arena *arena.Arena

	scope   *scopeStack
	structs map[string]*ast.StructDecl
	funcs   map[string][]*ast.FunctionDecl

	entry string
	err   error
}

// New creates a Parser over src, interning names into pool and
// allocating nodes from ar.
func New(src token.Source, pool *strpool.Pool, ar *arena.Arena, entry string) *Parser {
	return &Parser{
		src:     src,
		pool:    pool,
		arena:   ar,
		scope:   newScopeStack(),
		structs: make(map[string]*ast.StructDecl),
		funcs:   make(map[string][]*ast.FunctionDecl),
		entry:   entry,
	}
}

// Parse runs the whole translation unit and returns (root, true) on
// success. On failure a single diagnostic has been produced through the
// token source's error reporting and the returned bool is false; the AST
// must not be used. The diagnostic itself is only reachable through
// (*Parser).Err, which this function does not expose.
func Parse(src token.Source, pool *strpool.Pool, ar *arena.Arena, entry string) (*ast.Root, bool) {
	p := New(src, pool, ar, entry)
	return p.Parse()
}

// Parse runs the whole translation unit on p's token source, returning
// (root, true) on success. Callers that need the resolved struct/function
// tables after a successful parse (the backends do, to walk nested
// struct fields) should go through New followed by this method instead
// of the package-level Parse function.
func (p *Parser) Parse() (*ast.Root, bool) {
	root := p.parseRoot()
	if p.err != nil {
		return nil, false
	}
	return root, true
}

// Err exposes the first diagnostic, if any.
func (p *Parser) Err() error { return p.err }

// Funcs returns every user-defined function by name, for callers that
// need to find the entry point after a successful parse.
func (p *Parser) Funcs() map[string][]*ast.FunctionDecl { return p.funcs }

// Structs returns every user-defined struct by name.
func (p *Parser) Structs() map[string]*ast.StructDecl { return p.structs }

func (p *Parser) fail(format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = p.src.Errorf(format, args...)
}

func (p *Parser) failing() bool { return p.err != nil }

// allocNode bump-allocates a node from the parser's arena and copies v
// into it, so every AST node's storage comes from the arena even though
// construction still reads as an ordinary composite literal.
func allocNode[T any](p *Parser, v T) *T {
	n := arena.Alloc[T](p.arena)
	*n = v
	return n
}

func (p *Parser) intern(s string) string { return p.pool.Intern(s) }

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.src.File(), Line: p.src.Line()}
}

// ---- token cursor helpers ----

func (p *Parser) peek() token.Token { return p.src.Peek() }

func (p *Parser) advance() token.Token { return p.src.Next() }

func (p *Parser) check(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, want string) token.Token {
	t := p.peek()
	if t.Kind != k {
		p.fail("Syntax error: expected '%s' near '%s'", want, t.String())
		return t
	}
	return p.advance()
}

func (p *Parser) expectIdent() string {
	t := p.peek()
	if t.Kind != token.Identifier {
		p.fail("Syntax error: expected 'identifier' near '%s'", t.String())
		return ""
	}
	p.advance()
	return p.intern(t.Literal)
}

// ---- top level ----

func (p *Parser) parseRoot() *ast.Root {
	root := allocNode(p, ast.Root{Pos: p.pos()})
	for !p.failing() && !p.check(token.EOF) {
		d := p.parseTopLevel()
		if p.failing() {
			break
		}
		if d != nil {
			root.Decls = append(root.Decls, d)
		}
	}
	return root
}

func (p *Parser) isTypeStart(t token.Token) bool {
	if t.Kind == token.KwTypeName {
		return true
	}
	if t.Kind == token.Identifier {
		_, ok := p.structs[t.Literal]
		return ok
	}
	return false
}

func (p *Parser) parseTopLevel() ast.Decl {
	switch p.peek().Kind {
	case token.KwStruct:
		return p.parseStructDecl()
	case token.KwCBuffer, token.KwTBuffer:
		return p.parseBufferDecl()
	default:
		isConst := p.match(token.KwConst)
		pos := p.pos()
		typ := p.parseType()
		if p.failing() {
			return nil
		}
		name := p.expectIdent()
		if p.check(token.LParen) {
			return p.parseFunctionDecl(pos, typ, name)
		}
		return p.parseGlobalVarDecl(pos, isConst, typ, name)
	}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.pos()
	p.expect(token.KwStruct, "struct")
	name := p.expectIdent()
	if p.failing() {
		return nil
	}
	if _, exists := p.structs[name]; exists {
		p.fail("redefinition of '%s'", name)
		return nil
	}
	decl := allocNode(p, ast.StructDecl{Pos: pos, Name: name})
	p.structs[name] = decl
	p.expect(token.LBrace, "{")
	for !p.failing() && !p.check(token.RBrace) {
		ft := p.parseType()
		fname := p.expectIdent()
		var semantic string
		if p.match(token.Colon) {
			semantic = p.expectIdent()
		}
		p.expect(token.Semicolon, ";")
		decl.Fields = append(decl.Fields, ast.StructField{Name: fname, Type: ft, Semantic: semantic})
		if p.failing() {
			return nil
		}
	}
	p.expect(token.RBrace, "}")
	p.expect(token.Semicolon, ";")
	return decl
}

func (p *Parser) parseRegisterClause() string {
	if !p.match(token.KwRegister) {
		return ""
	}
	p.expect(token.LParen, "(")
	reg := p.expectIdent()
	for p.match(token.Comma) {
		p.expectIdent()
	}
	p.expect(token.RParen, ")")
	return reg
}

func (p *Parser) parseBufferDecl() *ast.BufferDecl {
	pos := p.pos()
	isTex := p.peek().Kind == token.KwTBuffer
	p.advance()
	name := p.expectIdent()
	decl := allocNode(p, ast.BufferDecl{Pos: pos, Name: name, IsTexBuf: isTex})
	if p.match(token.Colon) {
		decl.Register = p.parseRegisterClause()
	}
	p.expect(token.LBrace, "{")
	for !p.failing() && !p.check(token.RBrace) {
		ft := p.parseType()
		fname := p.expectIdent()
		ft = p.parseArraySuffix(ft)
		if p.match(token.Colon) {
			p.parsePackoffset()
		}
		p.expect(token.Semicolon, ";")
		if p.failing() {
			return nil
		}
		decl.Fields = append(decl.Fields, ast.BufferField{Name: fname, Type: ft})
		p.scope.DeclareGlobal(fname, ft)
	}
	p.expect(token.RBrace, "}")
	p.expect(token.Semicolon, ";")
	return decl
}

func (p *Parser) parsePackoffset() {
	if !p.match(token.KwPackoffset) {
		return
	}
	p.expect(token.LParen, "(")
	for !p.failing() && !p.check(token.RParen) {
		p.advance()
	}
	p.expect(token.RParen, ")")
}

func (p *Parser) parseGlobalVarDecl(pos ast.Pos, isConst bool, typ ast.Type, name string) *ast.VarDecl {
	typ = p.parseArraySuffix(typ)
	vd := allocNode(p, ast.VarDecl{Pos: pos, Name: name, Type: typ})
	typ.IsConst = isConst
	vd.Type = typ
	if p.match(token.Colon) {
		vd.Register = p.parseRegisterClause()
	}
	if p.match(token.Assign) {
		vd.Initializer = p.parseExpression()
		if !p.failing() {
			if TypeCastRank(vd.Initializer.Type(), vd.Type) < 0 {
				p.fail("cannot implicitly convert '%s' to '%s'", vd.Initializer.Type(), vd.Type)
			}
		}
	}
	p.expect(token.Semicolon, ";")
	if p.failing() {
		return nil
	}
	p.scope.DeclareGlobal(name, vd.Type)
	return vd
}

func (p *Parser) parseArraySuffix(typ ast.Type) ast.Type {
	if p.match(token.LBracket) {
		typ.IsArray = true
		if !p.check(token.RBracket) {
			typ.ArraySize = p.parseExpression()
		}
		p.expect(token.RBracket, "]")
	}
	return typ
}

func (p *Parser) parseType() ast.Type {
	t := p.peek()
	switch {
	case t.Kind == token.KwTypeName:
		p.advance()
		return ast.Type{Base: typeNameToBase[t.Literal]}
	case t.Kind == token.KwVoid:
		p.advance()
		return ast.Type{Base: ast.Void}
	case t.Kind == token.Identifier:
		if _, ok := p.structs[t.Literal]; ok {
			p.advance()
			return ast.Type{Base: ast.UserDefined, TypeName: p.intern(t.Literal)}
		}
		p.fail("Syntax error: expected 'type' near '%s'", t.String())
		return ast.Type{Base: ast.Unknown}
	default:
		p.fail("Syntax error: expected 'type' near '%s'", t.String())
		return ast.Type{Base: ast.Unknown}
	}
}

var typeNameToBase = map[string]ast.BaseType{
	"float": ast.Float, "float2": ast.Float2, "float3": ast.Float3, "float4": ast.Float4,
	"float3x3": ast.Float3x3, "float4x4": ast.Float4x4,
	"half": ast.Half, "half2": ast.Half2, "half3": ast.Half3, "half4": ast.Half4,
	"half3x3": ast.Half3x3, "half4x4": ast.Half4x4,
	"bool": ast.Bool,
	"int":  ast.Int, "int2": ast.Int2, "int3": ast.Int3, "int4": ast.Int4,
	"uint": ast.UInt, "uint2": ast.UInt2, "uint3": ast.UInt3, "uint4": ast.UInt4,
	"texture": ast.Texture, "sampler2D": ast.Sampler2D, "samplerCUBE": ast.SamplerCube,
}

func (p *Parser) parseFunctionDecl(pos ast.Pos, ret ast.Type, name string) *ast.FunctionDecl {
	fn := allocNode(p, ast.FunctionDecl{Pos: pos, Name: name, ReturnType: ret})
	p.expect(token.LParen, "(")
	p.scope.PushScope()
	for !p.failing() && !p.check(token.RParen) {
		if len(fn.Arguments) > 0 {
			p.expect(token.Comma, ",")
		}
		mod := ast.ArgNone
		switch p.peek().Kind {
		case token.KwIn:
			mod = ast.ArgIn
			p.advance()
		case token.KwInout:
			mod = ast.ArgInout
			p.advance()
		case token.KwUniform:
			mod = ast.ArgUniform
			p.advance()
		}
		at := p.parseType()
		aname := p.expectIdent()
		at = p.parseArraySuffix(at)
		var semantic string
		if p.match(token.Colon) {
			semantic = p.expectIdent()
		}
		// Optional trailing interpolation modifier (linear, centroid,
		// nointerpolation, noperspective, sample): accepted per spec.md's
		// "Interpolation modifiers... on function parameters are accepted
		// and silently ignored" and never stored on the argument.
		if p.check(token.KwInterp) {
			p.advance()
		}
		fn.Arguments = append(fn.Arguments, ast.Argument{Name: aname, Modifier: mod, Type: at, Semantic: semantic})
		p.scope.Declare(aname, at)
		if p.failing() {
			return nil
		}
	}
	p.expect(token.RParen, ")")
	if p.match(token.Colon) {
		fn.Semantic = p.expectIdent()
	}
	p.funcs[name] = append(p.funcs[name], fn)
	fn.Body = p.parseBlockStmts()
	p.scope.PopScope()
	return fn
}

// ---- statements ----

func (p *Parser) parseBlockStmts() []ast.Stmt {
	p.expect(token.LBrace, "{")
	var stmts []ast.Stmt
	for !p.failing() && !p.check(token.RBrace) {
		s := p.parseStatement()
		if p.failing() {
			return nil
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBrace, "}")
	return stmts
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.pos()
	p.scope.PushScope()
	stmts := p.parseBlockStmts()
	p.scope.PopScope()
	s := allocNode(p, ast.BlockStmt{Stmts: stmts})
	s.Pos = pos
	return s
}

func (p *Parser) parseStatement() ast.Stmt {
	pos := p.pos()
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		p.advance()
		var val ast.Expr
		if !p.check(token.Semicolon) {
			val = p.parseExpression()
		}
		p.expect(token.Semicolon, ";")
		s := allocNode(p, ast.ReturnStmt{Value: val})
		s.Pos = pos
		return s
	case token.KwDiscard:
		p.advance()
		p.expect(token.Semicolon, ";")
		s := allocNode(p, ast.DiscardStmt{})
		s.Pos = pos
		return s
	case token.KwBreak:
		p.advance()
		p.expect(token.Semicolon, ";")
		s := allocNode(p, ast.BreakStmt{})
		s.Pos = pos
		return s
	case token.KwContinue:
		p.advance()
		p.expect(token.Semicolon, ";")
		s := allocNode(p, ast.ContinueStmt{})
		s.Pos = pos
		return s
	case token.Semicolon:
		p.advance()
		s := allocNode(p, ast.BlockStmt{})
		s.Pos = pos
		return s
	default:
		if p.match(token.KwConst) || p.isTypeStart(p.peek()) {
			return p.parseLocalDecl(pos)
		}
		x := p.parseExpression()
		p.expect(token.Semicolon, ";")
		if p.failing() {
			return nil
		}
		s := allocNode(p, ast.ExprStmt{X: x})
		s.Pos = pos
		return s
	}
}

func (p *Parser) parseIf() *ast.IfStmt {
	pos := p.pos()
	p.expect(token.KwIf, "if")
	p.expect(token.LParen, "(")
	cond := p.parseExpression()
	p.expect(token.RParen, ")")
	then := p.parseStatement()
	var els ast.Stmt
	if p.match(token.KwElse) {
		els = p.parseStatement()
	}
	if p.failing() {
		return nil
	}
	s := allocNode(p, ast.IfStmt{Cond: cond, Then: then, Else: els})
	s.Pos = pos
	return s
}

func (p *Parser) parseFor() *ast.ForStmt {
	pos := p.pos()
	p.expect(token.KwFor, "for")
	p.expect(token.LParen, "(")
	p.scope.PushScope()
	var initStmt *ast.DeclStmt
	if !p.check(token.Semicolon) {
		initPos := p.pos()
		p.match(token.KwConst)
		typ := p.parseType()
		name := p.expectIdent()
		vd := p.finishLocalVarDecl(initPos, typ, name)
		initStmt = allocNode(p, ast.DeclStmt{Decl: vd})
		initStmt.Pos = initPos
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(token.Semicolon, ";")
	var post ast.Expr
	if !p.check(token.RParen) {
		post = p.parseExpression()
	}
	p.expect(token.RParen, ")")
	body := p.parseStatement()
	p.scope.PopScope()
	if p.failing() {
		return nil
	}
	s := allocNode(p, ast.ForStmt{Init: initStmt, Cond: cond, Post: post, Body: body})
	s.Pos = pos
	return s
}

func (p *Parser) parseLocalDecl(pos ast.Pos) *ast.DeclStmt {
	typ := p.parseType()
	name := p.expectIdent()
	vd := p.finishLocalVarDecl(pos, typ, name)
	if p.failing() {
		return nil
	}
	s := allocNode(p, ast.DeclStmt{Decl: vd})
	s.Pos = pos
	return s
}

func (p *Parser) finishLocalVarDecl(pos ast.Pos, typ ast.Type, name string) *ast.VarDecl {
	typ = p.parseArraySuffix(typ)
	vd := allocNode(p, ast.VarDecl{Pos: pos, Name: name, Type: typ})
	if p.match(token.Assign) {
		vd.Initializer = p.parseExpression()
		if !p.failing() && TypeCastRank(vd.Initializer.Type(), typ) < 0 {
			p.fail("cannot implicitly convert '%s' to '%s'", vd.Initializer.Type(), typ)
			return nil
		}
	}
	if p.check(token.Comma) {
		p.fail("multiple declarators are not supported")
		return nil
	}
	p.expect(token.Semicolon, ";")
	if p.failing() {
		return nil
	}
	p.scope.Declare(name, typ)
	return vd
}

// ---- expressions ----

// opPriority returns the binary/conditional operator priority of k per
// the table in spec.md §4.1; 0 means "not a binary/conditional operator"
// (assignment operators are handled separately by parseAssignment).
func opPriority(k token.Kind) int {
	switch k {
	case token.OrOr:
		return 1
	case token.Question:
		return 1
	case token.AndAnd:
		return 2
	case token.Eq, token.Ne:
		return 3
	case token.Lt, token.Gt, token.Le, token.Ge:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash:
		return 6
	}
	return 0
}

var tokToBinOp = map[token.Kind]ast.BinaryOp{
	token.Plus: ast.BinAdd, token.Minus: ast.BinSub,
	token.Star: ast.BinMul, token.Slash: ast.BinDiv,
	token.Lt: ast.BinLt, token.Gt: ast.BinGt, token.Le: ast.BinLe, token.Ge: ast.BinGe,
	token.Eq: ast.BinEq, token.Ne: ast.BinNe,
	token.AndAnd: ast.BinAnd, token.OrOr: ast.BinOr,
}

var tokToAssignOp = map[token.Kind]ast.BinaryOp{
	token.Assign:      ast.BinAssign,
	token.PlusAssign:  ast.BinAddAssign,
	token.MinusAssign: ast.BinSubAssign,
	token.StarAssign:  ast.BinMulAssign,
	token.SlashAssign: ast.BinDivAssign,
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseBinary(0)
	if p.failing() {
		return left
	}
	if op, ok := tokToAssignOp[p.peek().Kind]; ok {
		pos := p.pos()
		p.advance()
		right := p.parseAssignment()
		if p.failing() {
			return left
		}
		result := left.Type()
		if !left.Type().Equal(ast.Type{Base: ast.Unknown}) {
			if TypeCastRank(right.Type(), left.Type()) < 0 {
				p.fail("cannot implicitly convert '%s' to '%s'", right.Type(), left.Type())
				return left
			}
		}
		e := allocNode(p, ast.BinaryExpr{Op: op, Left: left, Right: right})
		e.Pos = pos
		e.ExpressionType = result
		return e
	}
	return left
}

func (p *Parser) parseBinary(minPrio int) ast.Expr {
	left := p.parseUnary()
	for {
		if p.failing() {
			return left
		}
		tok := p.peek()
		prio := opPriority(tok.Kind)
		if prio <= minPrio {
			return left
		}
		if tok.Kind == token.Question {
			pos := p.pos()
			p.advance()
			thenE := p.parseAssignment()
			p.expect(token.Colon, ":")
			elseE := p.parseBinary(prio)
			if p.failing() {
				return left
			}
			result := thenE.Type()
			if TypeCastRank(elseE.Type(), result) < 0 && TypeCastRank(result, elseE.Type()) >= 0 {
				result = elseE.Type()
			}
			e := allocNode(p, ast.ConditionalExpr{Cond: left, Then: thenE, Else: elseE})
			e.Pos = pos
			e.ExpressionType = result
			left = e
			continue
		}
		pos := p.pos()
		p.advance()
		right := p.parseBinary(prio)
		if p.failing() {
			return left
		}
		op := tokToBinOp[tok.Kind]
		rt, ok := BinaryResultType(op, left.Type(), right.Type())
		if !ok {
			p.fail("no global operator found which takes types '%s' and '%s'", left.Type(), right.Type())
			return left
		}
		e := allocNode(p, ast.BinaryExpr{Op: op, Left: left, Right: right})
		e.Pos = pos
		e.ExpressionType = rt
		left = e
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	pos := p.pos()
	switch tok.Kind {
	case token.Plus:
		p.advance()
		x := p.parseUnary()
		return unaryAt(p, pos, ast.UnaryPlus, x)
	case token.Minus:
		p.advance()
		x := p.parseUnary()
		return unaryAt(p, pos, ast.UnaryMinus, x)
	case token.Not:
		p.advance()
		x := p.parseUnary()
		e := unaryAt(p, pos, ast.UnaryNot, x)
		e.ExpressionType = ast.Type{Base: ast.Bool}
		return e
	case token.PlusPlus:
		p.advance()
		x := p.parseUnary()
		return unaryAt(p, pos, ast.UnaryPreInc, x)
	case token.MinusMinus:
		p.advance()
		x := p.parseUnary()
		// spec.md §9: the original emits `++` where `--` was arguably
		// intended for PreDecrement; this parser records PreDecrement
		// and both backends emit `--` for it.
		return unaryAt(p, pos, ast.UnaryPreDec, x)
	case token.LParen:
		// A '(' immediately followed by a type keyword is unambiguously
		// a cast `(T)E`: type keywords never start a parenthesized
		// expression on their own (constructors spell `T(...)` with no
		// enclosing parenthesis around T).
		p.advance()
		if p.check(token.KwTypeName) {
			typ := p.parseType()
			p.expect(token.RParen, ")")
			x := p.parseUnary()
			if p.failing() {
				return x
			}
			if TypeCastRank(x.Type(), typ) < 0 {
				p.fail("cannot implicitly convert '%s' to '%s'", x.Type(), typ)
				return x
			}
			e := allocNode(p, ast.CastExpr{X: x})
			e.Pos = pos
			e.ExpressionType = typ
			return e
		}
		x := p.parseExpression()
		p.expect(token.RParen, ")")
		return x
	}
	return p.parsePostfix()
}

func unaryAt(p *Parser, pos ast.Pos, op ast.UnaryOp, x ast.Expr) *ast.UnaryExpr {
	e := allocNode(p, ast.UnaryExpr{Op: op, X: x})
	e.Pos = pos
	e.ExpressionType = x.Type()
	return e
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		if p.failing() {
			return x
		}
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			pos := p.pos()
			field := p.expectIdent()
			x = p.typeMemberAccess(pos, x, field)
		case token.LBracket:
			p.advance()
			pos := p.pos()
			idx := p.parseExpression()
			p.expect(token.RBracket, "]")
			x = p.typeArrayAccess(pos, x, idx)
		case token.PlusPlus:
			pos := p.pos()
			p.advance()
			x = unaryAt(p, pos, ast.UnaryPostInc, x)
		case token.MinusMinus:
			pos := p.pos()
			p.advance()
			x = unaryAt(p, pos, ast.UnaryPostDec, x)
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	pos := p.pos()
	switch tok.Kind {
	case token.IntLiteral:
		p.advance()
		e := allocNode(p, ast.LiteralExpr{IntValue: tok.IntValue})
		e.Pos = pos
		e.ExpressionType = ast.Type{Base: ast.Int}
		return e
	case token.FloatLiteral:
		p.advance()
		e := allocNode(p, ast.LiteralExpr{FloatValue: tok.FloatValue})
		e.Pos = pos
		e.ExpressionType = ast.Type{Base: ast.Float}
		return e
	case token.BoolLiteral:
		p.advance()
		e := allocNode(p, ast.LiteralExpr{BoolValue: tok.BoolValue})
		e.Pos = pos
		e.ExpressionType = ast.Type{Base: ast.Bool}
		return e
	case token.KwTypeName:
		typ := p.parseType()
		p.expect(token.LParen, "(")
		args := p.parseArgList()
		e := allocNode(p, ast.ConstructorExpr{Args: args})
		e.Pos = pos
		e.ExpressionType = typ
		return e
	case token.Identifier:
		name := p.intern(tok.Literal)
		p.advance()
		if p.check(token.LParen) {
			p.advance()
			args := p.parseArgList()
			return p.resolveCall(pos, name, args)
		}
		t, ok := p.scope.Find(name)
		if !ok {
			p.fail("Undeclared identifier '%s'", name)
			e := allocNode(p, ast.IdentExpr{Name: name})
			e.Pos = pos
			return e
		}
		e := allocNode(p, ast.IdentExpr{Name: name, IsGlobal: p.scope.IsGlobal(name)})
		e.Pos = pos
		e.ExpressionType = t
		return e
	default:
		p.fail("Syntax error: expected 'expression' near '%s'", tok.String())
		e := allocNode(p, ast.LiteralExpr{})
		e.Pos = pos
		return e
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for !p.failing() && !p.check(token.RParen) {
		if len(args) > 0 {
			p.expect(token.Comma, ",")
		}
		args = append(args, p.parseAssignment())
	}
	p.expect(token.RParen, ")")
	return args
}

// ---- semantic helpers: member/array access, overload resolution ----

var swizzleFamilyBase = map[ast.NumericFamily][4]ast.BaseType{
	ast.FamilyFloat: {ast.Float, ast.Float2, ast.Float3, ast.Float4},
	ast.FamilyHalf:  {ast.Half, ast.Half2, ast.Half3, ast.Half4},
	ast.FamilyInt:   {ast.Int, ast.Int2, ast.Int3, ast.Int4},
	ast.FamilyUint:  {ast.UInt, ast.UInt2, ast.UInt3, ast.UInt4},
}

const swizzleChars = "xyzwrgba"

func isSwizzleChar(c byte) bool {
	for i := 0; i < len(swizzleChars); i++ {
		if swizzleChars[i] == c {
			return true
		}
	}
	return false
}

func (p *Parser) typeMemberAccess(pos ast.Pos, obj ast.Expr, field string) *ast.MemberExpr {
	e := allocNode(p, ast.MemberExpr{Object: obj, Field: field})
	e.Pos = pos
	if p.failing() {
		return e
	}
	ot := obj.Type()

	if ot.Base == ast.UserDefined {
		decl, ok := p.structs[ot.TypeName]
		if !ok {
			p.fail("unknown struct '%s'", ot.TypeName)
			return e
		}
		for i := range decl.Fields {
			if decl.Fields[i].Name == field {
				e.ResolvedField = &decl.Fields[i]
				e.ExpressionType = decl.Fields[i].Type
				return e
			}
		}
		p.fail("'%s' does not have a field named '%s'", ot.TypeName, field)
		return e
	}

	desc, numeric := ast.Descriptions[ot.Base]
	if !numeric {
		p.fail("invalid member access on '%s'", ot)
		return e
	}

	if desc.NumDimensions <= 1 {
		if len(field) < 1 || len(field) > 4 {
			p.fail("invalid swizzle '%s'", field)
			return e
		}
		for i := 0; i < len(field); i++ {
			if !isSwizzleChar(field[i]) {
				p.fail("invalid swizzle '%s'", field)
				return e
			}
		}
		bases, ok := swizzleFamilyBase[desc.Family]
		if !ok {
			p.fail("invalid swizzle on '%s'", ot)
			return e
		}
		e.ExpressionType = ast.Type{Base: bases[len(field)-1]}
		return e
	}

	// matrix accessor: sequence of _mRC (zero-based) or _RC (one-based)
	// pairs.
	n, maxIndex, ok := parseMatrixAccessor(field)
	if !ok || n == 0 {
		p.fail("invalid matrix accessor '%s'", field)
		return e
	}
	bases, ok := swizzleFamilyBase[desc.Family]
	if !ok || n > 4 {
		p.fail("invalid matrix accessor '%s'", field)
		return e
	}
	if desc.Height > 0 && maxIndex >= desc.Height {
		p.fail("matrix accessor '%s' is out of range for '%s'", field, ot)
		return e
	}
	e.ExpressionType = ast.Type{Base: bases[n-1]}
	return e
}

// parseMatrixAccessor validates and counts the number of row/col pairs
// in a matrix accessor string such as "_m00_m11" or "_00_11", returning
// the pair count and the highest zero-based row/col index referenced
// (so the caller can bounds-check against the matrix's actual height).
func parseMatrixAccessor(field string) (count, maxIndex int, ok bool) {
	i := 0
	for i < len(field) {
		if field[i] != '_' {
			return 0, 0, false
		}
		i++
		zeroBased := false
		if i < len(field) && field[i] == 'm' {
			zeroBased = true
			i++
		}
		if i+1 >= len(field) || !isDigitByte(field[i]) || !isDigitByte(field[i+1]) {
			return 0, 0, false
		}
		r := int(field[i] - '0')
		c := int(field[i+1] - '0')
		if !zeroBased {
			r--
			c--
		}
		if r < 0 || r > 3 || c < 0 || c > 3 {
			return 0, 0, false
		}
		if r > maxIndex {
			maxIndex = r
		}
		if c > maxIndex {
			maxIndex = c
		}
		i += 2
		count++
	}
	return count, maxIndex, true
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func (p *Parser) typeArrayAccess(pos ast.Pos, obj, idx ast.Expr) *ast.IndexExpr {
	e := allocNode(p, ast.IndexExpr{Array: obj, Index: idx})
	e.Pos = pos
	if p.failing() {
		return e
	}
	ot := obj.Type()
	if ot.IsArray {
		elem := ot
		elem.IsArray = false
		elem.ArraySize = nil
		e.ExpressionType = elem
		return e
	}
	desc, numeric := ast.Descriptions[ot.Base]
	if !numeric {
		p.fail("invalid index on '%s'", ot)
		return e
	}
	switch desc.NumDimensions {
	case 1:
		scalar, ok := swizzleFamilyBase[desc.Family]
		if !ok {
			p.fail("invalid index on '%s'", ot)
			return e
		}
		e.ExpressionType = ast.Type{Base: scalar[0]}
	case 2:
		row, ok := swizzleFamilyBase[desc.Family]
		if !ok || desc.NumComponents < 3 {
			p.fail("invalid index on '%s'", ot)
			return e
		}
		e.ExpressionType = ast.Type{Base: row[desc.NumComponents-1]}
	default:
		p.fail("invalid index on '%s'", ot)
	}
	return e
}

// resolveCall implements spec.md's overload-resolution algorithm: gather
// viable candidates (same arity, every argument rank-convertible),
// sort each candidate's rank vector descending, and pick the unique
// element-wise-minimal candidate.
func (p *Parser) resolveCall(pos ast.Pos, name string, args []ast.Expr) *ast.CallExpr {
	e := allocNode(p, ast.CallExpr{Name: name, Args: args})
	e.Pos = pos
	if p.failing() {
		return e
	}

	candidates := append(append([]*ast.FunctionDecl{}, p.funcs[name]...), LookupIntrinsics(name)...)
	if len(candidates) == 0 {
		p.fail("Undeclared identifier '%s'", name)
		return e
	}

	type viableCandidate struct {
		fn    *ast.FunctionDecl
		ranks []int
	}
	var viable []viableCandidate
	for _, fn := range candidates {
		if fn.NumArguments() != len(args) {
			continue
		}
		ranks := make([]int, len(args))
		ok := true
		for i, a := range args {
			r := TypeCastRank(a.Type(), fn.Arguments[i].Type)
			if r < 0 {
				ok = false
				break
			}
			ranks[i] = r
		}
		if !ok {
			continue
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
		viable = append(viable, viableCandidate{fn, ranks})
	}

	if len(viable) == 0 {
		p.fail("'%s' no overloaded function matched all of the arguments", name)
		return e
	}

	less := func(i, j int) bool {
		a, b := viable[i].ranks, viable[j].ranks
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	}
	sort.SliceStable(viable, less)

	tie := 1
	for tie < len(viable) {
		eq := true
		for k := range viable[0].ranks {
			if viable[0].ranks[k] != viable[tie].ranks[k] {
				eq = false
				break
			}
		}
		if !eq {
			break
		}
		tie++
	}
	if tie > 1 {
		p.fail("'%s' %d overloads have similar conversions", name, tie)
		return e
	}

	winner := viable[0].fn
	e.Function = winner
	e.ExpressionType = winner.ReturnType
	return e
}
