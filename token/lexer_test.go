package token

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src, "test.hlsl")
	var toks []Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []Kind
	}{
		{"+ - * /", []Kind{Plus, Minus, Star, Slash, EOF}},
		{"( ) { }", []Kind{LParen, RParen, LBrace, RBrace, EOF}},
		{"[ ] , .", []Kind{LBracket, RBracket, Comma, Dot, EOF}},
		{": ; ?", []Kind{Colon, Semicolon, Question, EOF}},
	}

	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		if len(toks) != len(tt.expected) {
			t.Errorf("%q: expected %d tokens, got %d", tt.input, len(tt.expected), len(toks))
			continue
		}
		for i, tok := range toks {
			if tok.Kind != tt.expected[i] {
				t.Errorf("%q: token %d: expected %v, got %v", tt.input, i, tt.expected[i], tok.Kind)
			}
		}
	}
}

func TestLexerOperators(t *testing.T) {
	input := "== != <= >= && || ++ -- += -= *= /="
	expected := []Kind{
		Eq, Ne, Le, Ge, AndAnd, OrOr, PlusPlus, MinusMinus,
		PlusAssign, MinusAssign, StarAssign, SlashAssign, EOF,
	}
	toks := tokenize(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v", i, expected[i], tok.Kind)
		}
	}
}

func TestLexerKeywordsAndTypeNames(t *testing.T) {
	input := "struct cbuffer register if else for return discard break continue float4 sampler2D"
	expected := []Kind{
		KwStruct, KwCBuffer, KwRegister, KwIf, KwElse, KwFor, KwReturn,
		KwDiscard, KwBreak, KwContinue, KwTypeName, KwTypeName, EOF,
	}
	toks := tokenize(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v", i, expected[i], tok.Kind)
		}
	}
}

func TestLexerInterpolationModifiersAreAcceptedAsInterp(t *testing.T) {
	for _, kw := range []string{"linear", "centroid", "nointerpolation", "noperspective", "sample"} {
		toks := tokenize(t, kw)
		if toks[0].Kind != KwInterp {
			t.Errorf("%q: expected KwInterp, got %v", kw, toks[0].Kind)
		}
	}
}

func TestLexerNumericLiterals(t *testing.T) {
	tests := []struct {
		input     string
		wantKind  Kind
		wantFloat float64
		wantInt   int64
	}{
		{"42", IntLiteral, 0, 42},
		{"3.14", FloatLiteral, 3.14, 0},
		{"1.0f", FloatLiteral, 1.0, 0},
		{"2.5e2", FloatLiteral, 250, 0},
		{"0", IntLiteral, 0, 0},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Kind != tt.wantKind {
			t.Errorf("%q: expected kind %v, got %v", tt.input, tt.wantKind, toks[0].Kind)
			continue
		}
		if tt.wantKind == FloatLiteral && toks[0].FloatValue != tt.wantFloat {
			t.Errorf("%q: expected float %v, got %v", tt.input, tt.wantFloat, toks[0].FloatValue)
		}
		if tt.wantKind == IntLiteral && toks[0].IntValue != tt.wantInt {
			t.Errorf("%q: expected int %v, got %v", tt.input, tt.wantInt, toks[0].IntValue)
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := "1 // line comment\n2 /* block\ncomment */ 3"
	toks := tokenize(t, input)
	var ints []int64
	for _, tok := range toks {
		if tok.Kind == IntLiteral {
			ints = append(ints, tok.IntValue)
		}
	}
	if len(ints) != 3 || ints[0] != 1 || ints[1] != 2 || ints[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", ints)
	}
}

func TestLexerLineTracking(t *testing.T) {
	lex := NewLexer("a\nb\n\nc", "test.hlsl")
	var lines []int
	for {
		tok := lex.Next()
		if tok.Kind == EOF {
			break
		}
		lines = append(lines, tok.Line)
	}
	want := []int{1, 2, 4}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("token %d: expected line %d, got %d", i, want[i], lines[i])
		}
	}
}
