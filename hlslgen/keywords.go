// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlslgen

import (
	"fmt"

	"github.com/gogpu/naga/internal/strpool"
)

// namer implements the "base+N" uniqueness procedure from spec.md §4.4,
// identical in shape to glslgen's namer: try base0, base1, … base1023,
// returning the first name neither the string pool nor this run's own
// synthesized names have claimed.
type namer struct {
	pool    *strpool.Pool
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
