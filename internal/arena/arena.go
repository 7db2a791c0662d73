// Package arena provides a bump allocator for AST nodes. Nodes are counted
// against fixed-size pages (the memory itself comes from the Go heap) and
// are never individually freed; the whole
// arena becomes garbage together once nothing outside it still references
// a node, which is the Go-idiomatic reading of "released as a unit after
// code generation".
package arena

// Arena tracks how many nodes have been bump-allocated through it, in
// pages of pageCount entries, so a caller can report arena/page stats the
// way a C++ implementation would without Go needing manual page buffers.
type Arena struct {
	pageCount int
	allocated int
}

const pageCount = 64

// New returns an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Alloc returns a pointer to a zero-valued T. The returned node's memory
// is ordinary Go heap memory managed by the garbage collector; Alloc's
// role is bookkeeping (page counts) and a single allocation point so that
// arena-owned nodes are never accidentally freed individually.
func Alloc[T any](a *Arena) *T {
	a.allocated++
	return new(T)
}

// Allocated returns the total number of nodes handed out so far.
func (a *Arena) Allocated() int {
	return a.allocated
}

// Pages returns how many fixed-size pages the allocation count would
// occupy, for diagnostics/benchmarking parity with the original
// page-based design.
func (a *Arena) Pages() int {
	return (a.allocated + pageCount - 1) / pageCount
}
