package errbuf

import (
	"strings"
	"testing"

	"github.com/codr7/fibr/lang/token"
)

func TestSetFormatsMessage(t *testing.T) {
	var b Buffer
	pos := token.New("repl", 1, 5)
	err := b.Set(pos, "bad thing: %d", 42)
	want := "Error in repl, line 1 column 5: bad thing: 42"
	if b.String() != want {
		t.Errorf("want %q, got %q", want, b.String())
	}
	if err == nil || err.Error() != want {
		t.Errorf("want err %q, got %v", want, err)
	}
	if !b.IsSet() {
		t.Error("want IsSet true after Set")
	}
}

func TestSetOverwritesEarlier(t *testing.T) {
	var b Buffer
	pos := token.New("repl", 1, 1)
	b.Set(pos, "first")
	b.Set(pos, "second")
	if !strings.HasSuffix(b.String(), "second") {
		t.Errorf("want latest error to win, got %q", b.String())
	}
}

func TestSetTruncatesAtMaxLen(t *testing.T) {
	var b Buffer
	pos := token.New("repl", 1, 1)
	long := strings.Repeat("x", MaxLen*2)
	b.Set(pos, "%s", long)
	if len(b.String()) != MaxLen {
		t.Errorf("want truncated to %d, got %d", MaxLen, len(b.String()))
	}
}

func TestReset(t *testing.T) {
	var b Buffer
	pos := token.New("repl", 1, 1)
	b.Set(pos, "boom")
	b.Reset()
	if b.IsSet() {
		t.Error("want IsSet false after Reset")
	}
	if b.String() != "" {
		t.Errorf("want empty string after Reset, got %q", b.String())
	}
}

func TestIsSetFalseInitially(t *testing.T) {
	var b Buffer
	if b.IsSet() {
		t.Error("want IsSet false on zero value")
	}
}
