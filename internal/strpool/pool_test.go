package strpool

import "testing"

func TestInternDedupesEqualStrings(t *testing.T) {
	p := New()
	a := p.Intern("diffuse")
	b := p.Intern("diffuse")
	if a != b {
		t.Errorf("expected interned strings to be equal, got %q and %q", a, b)
	}
	if p.Len() != 1 {
		t.Errorf("expected 1 distinct entry, got %d", p.Len())
	}
}

func TestHasReflectsPriorInterning(t *testing.T) {
	p := New()
	if p.Has("foo") {
		t.Error("expected Has to report false before interning")
	}
	p.Intern("foo")
	if !p.Has("foo") {
		t.Error("expected Has to report true after interning")
	}
}

func TestLenCountsDistinctStrings(t *testing.T) {
	p := New()
	p.Intern("a")
	p.Intern("b")
	p.Intern("a")
	if p.Len() != 2 {
		t.Errorf("expected 2 distinct entries, got %d", p.Len())
	}
}
