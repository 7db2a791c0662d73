// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codewriter

import "testing"

func TestWriteLineIndent(t *testing.T) {
	w := New(false)
	w.WriteLine("a {")
	w.PushIndent()
	w.WriteLine("b;")
	w.PopIndent()
	w.WriteLine("}")
	want := "a {\n    b;\n}\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteLineAtEmitsLineMarkerOnChange(t *testing.T) {
	w := New(true)
	w.WriteLineAt("foo.hlsl", 3, "float x;")
	w.WriteLineAt("foo.hlsl", 4, "float y;")
	want := "#line 3 \"foo.hlsl\"\nfloat x;\n#line 4 \"foo.hlsl\"\nfloat y;\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteLineAtSkipsMarkerWhenLineMatchesRecordedLine(t *testing.T) {
	w := New(true)
	w.WriteLineAt("foo.hlsl", 10, "float x;")
	w.currentLine = 11 // simulate the writer's recorded position already being line 11
	w.WriteLineAt("foo.hlsl", 11, "float y;")
	want := "#line 10 \"foo.hlsl\"\nfloat x;\nfloat y;\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		1:    "1.0",
		0.5:  "0.5",
		-2:   "-2.0",
		1e20: "1e+20",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
