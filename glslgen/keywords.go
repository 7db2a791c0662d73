// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"

	"github.com/gogpu/naga/internal/strpool"
)

// reservedIdentifiers is the set spec.md §4.2 calls out by name: plain
// HLSL identifiers that collide with GLSL keywords/built-ins this
// generator otherwise emits verbatim.
var reservedIdentifiers = map[string]bool{
	"output": true, "input": true, "mod": true, "mix": true,
}

// namer implements the "base+N" uniqueness procedure from spec.md §4.4:
// try base0, base1, … base1023 and return the first name the pool has
// never interned. The pool is populated by every identifier the parser
// saw, so collisions with user symbols are impossible.
type namer struct {
	pool *strpool.Pool
	// claimed additionally tracks names this generator itself handed
	// out, so two helper-synthesis calls in the same run never collide
	// with each other even though neither was in the source.
	claimed map[string]bool
}

func newNamer(pool *strpool.Pool) *namer {
	return &namer{pool: pool, claimed: make(map[string]bool)}
}

func (n *namer) unique(base string) string {
	for i := 0; i < 1024; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !n.pool.Has(candidate) && !n.claimed[candidate] {
			n.claimed[candidate] = true
			return candidate
		}
	}
	// Exhausting 1024 suffixes on a real program never happens; fall
	// back to the last candidate tried rather than panic.
	return fmt.Sprintf("%s1023", base)
}
