// Command hlslparser translates a legacy Direct3D-9-style HLSL shader
// into GLSL 1.40+, or re-emits it as modernized shader-model-5 HLSL.
//
// Usage:
//
//	hlslparser [-h|--help] [-fs|-vs] [-hlsl] [-legacy] FILENAME ENTRYNAME
//
// Examples:
//
//	hlslparser shader.hlsl main            # fragment shader -> GLSL
//	hlslparser -vs shader.hlsl VSMain       # vertex shader -> GLSL
//	hlslparser -hlsl shader.hlsl main       # re-emit as modernized HLSL
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/naga/glslgen"
	"github.com/gogpu/naga/hlslgen"
	"github.com/gogpu/naga/internal/arena"
	"github.com/gogpu/naga/internal/strpool"
	"github.com/gogpu/naga/parser"
	"github.com/gogpu/naga/token"
)

var (
	help           = flag.Bool("h", false, "show this help message and exit")
	helpLong       = flag.Bool("help", false, "show this help message and exit")
	fragmentShader = flag.Bool("fs", true, "generate fragment shader (default)")
	vertexShader   = flag.Bool("vs", false, "generate vertex shader")
	hlslMode       = flag.Bool("hlsl", false, "re-emit as modernized shader-model-5 HLSL instead of GLSL")
	legacyMode     = flag.Bool("legacy", false, "with -hlsl, skip the Texture2D/SamplerState and cbuffer modernization")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help || *helpLong {
		usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 2 {
		if len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Too many arguments")
		} else {
			fmt.Fprintln(os.Stderr, "Missing arguments")
		}
		usage()
		os.Exit(1)
	}
	fileName, entryName := args[0], args[1]

	source, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", fileName, err)
		os.Exit(1)
	}

	pool := strpool.New()
	ar := arena.New()
	lex := token.NewLexer(string(source), fileName)
	p := parser.New(lex, pool, ar, entryName)
	root, ok := p.Parse()
	if !ok {
		fmt.Fprintf(os.Stderr, "%v\n", p.Err())
		os.Exit(1)
	}

	var out string
	if *hlslMode {
		out, err = hlslgen.Compile(root, p.Structs(), pool, hlslgen.Options{Legacy: *legacyMode})
	} else {
		stage := glslgen.Fragment
		if *vertexShader {
			stage = glslgen.Vertex
		}
		out, err = glslgen.Compile(root, p.Structs(), pool, glslgen.Options{Stage: stage, EntryPoint: entryName})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Print(out)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: hlslparser [-h] [-fs | -vs] [-hlsl [-legacy]] FILENAME ENTRYNAME\n\n")
	fmt.Fprintf(os.Stderr, "Translate HLSL shader to GLSL shader.\n\n")
	fmt.Fprintf(os.Stderr, "positional arguments:\n")
	fmt.Fprintf(os.Stderr, " FILENAME    input file name\n")
	fmt.Fprintf(os.Stderr, " ENTRYNAME   entry point of the shader\n\n")
	fmt.Fprintf(os.Stderr, "optional arguments:\n")
	flag.PrintDefaults()
}
