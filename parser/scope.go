package parser

import "github.com/gogpu/naga/ast"

// scopeEntry is one (name, type) binding, or a scope-boundary sentinel
// when Name == "".
type scopeEntry struct {
	Name string
	Type ast.Type
}

// scopeStack is the flat vector with null-name sentinels spec.md's
// design notes call for: PushScope appends a sentinel, PopScope trims
// back to it, and Find does a reverse linear scan so innermost
// declarations shadow outer ones.
type scopeStack struct {
	entries []scopeEntry
	// globalBoundary is one past the index of the most recent file-scope
	// binding, partitioning global names from local ones.
	globalBoundary int
}

func newScopeStack() *scopeStack {
	return &scopeStack{}
}

// PushScope opens a new nested scope.
func (s *scopeStack) PushScope() {
	s.entries = append(s.entries, scopeEntry{})
}

// PopScope closes the innermost scope, discarding everything declared
// inside it.
func (s *scopeStack) PopScope() {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == "" {
			s.entries = s.entries[:i]
			return
		}
	}
	s.entries = nil
}

// Declare adds a binding to the innermost scope.
func (s *scopeStack) Declare(name string, t ast.Type) {
	s.entries = append(s.entries, scopeEntry{Name: name, Type: t})
}

// DeclareGlobal records a file-scope binding and advances the
// global/local partition index.
func (s *scopeStack) DeclareGlobal(name string, t ast.Type) {
	s.entries = append(s.entries, scopeEntry{Name: name, Type: t})
	s.globalBoundary = len(s.entries)
}

// Find scans from top-of-stack downward for name, returning the nearest
// binding and whether it was found.
func (s *scopeStack) Find(name string) (ast.Type, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			return s.entries[i].Type, true
		}
	}
	return ast.Type{}, false
}

// IsGlobal reports whether name resolves to a binding below the
// global/local partition index.
func (s *scopeStack) IsGlobal(name string) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			return i < s.globalBoundary
		}
	}
	return false
}
