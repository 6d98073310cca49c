package token

import "testing"

func TestLineCol(t *testing.T) {
	p := New("repl", 3, 7)
	line, col := p.LineCol()
	if line != 3 || col != 7 {
		t.Errorf("want 3,7 got %d,%d", line, col)
	}
	if p.Unknown() {
		t.Error("want known position")
	}
}

func TestUnknown(t *testing.T) {
	var p Position
	if !p.Unknown() {
		t.Error("zero value Position should be unknown")
	}
}

func TestString(t *testing.T) {
	p := New("repl", 1, 5)
	want := "repl, line 1 column 5"
	if got := p.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestSourceNameTruncated(t *testing.T) {
	long := make([]byte, MaxSourceNameLen+10)
	for i := range long {
		long[i] = 'x'
	}
	p := New(string(long), 1, 1)
	if len(p.Source) != MaxSourceNameLen {
		t.Errorf("want truncated to %d, got %d", MaxSourceNameLen, len(p.Source))
	}
}
