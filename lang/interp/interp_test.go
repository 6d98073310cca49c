package interp

import (
	"io"
	"strings"
	"testing"

	"github.com/codr7/fibr/lang/types"
)

func newTestInterp(t *testing.T, source string) *Interp {
	t.Helper()
	ip, err := New("test", strings.NewReader(source), DefaultLimits, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return ip
}

// runTurns drives every turn in source and returns the stacks of every
// successful turn, failing the test on the first error.
func runTurns(t *testing.T, ip *Interp) [][]types.Value {
	t.Helper()
	var out [][]types.Value
	for {
		stack, eof, err := ip.Turn()
		if err != nil {
			t.Fatalf("turn failed: %s (%s)", err, ip.LastError())
		}
		if eof {
			return out
		}
		out = append(out, stack)
	}
}

func wantInts(t *testing.T, stack []types.Value, want ...int32) {
	t.Helper()
	if len(stack) != len(want) {
		t.Fatalf("want %d values, got %d (%v)", len(want), len(stack), stack)
	}
	for i, w := range want {
		if stack[i].Int() != w {
			t.Errorf("stack[%d] = %d, want %d", i, stack[i].Int(), w)
		}
	}
}

func wantBools(t *testing.T, stack []types.Value, want ...bool) {
	t.Helper()
	if len(stack) != len(want) {
		t.Fatalf("want %d values, got %d (%v)", len(want), len(stack), stack)
	}
	for i, w := range want {
		if stack[i].Bool() != w {
			t.Errorf("stack[%d] = %v, want %v", i, stack[i].Bool(), w)
		}
	}
}

func TestArithmeticTurn(t *testing.T) {
	ip := newTestInterp(t, "(+ 1 2);")
	turns := runTurns(t, ip)
	if len(turns) != 1 {
		t.Fatalf("want 1 turn, got %d", len(turns))
	}
	wantInts(t, turns[0], 3)
}

func TestNestedArithmetic(t *testing.T) {
	ip := newTestInterp(t, "(+ (- 10 4) 1);")
	turns := runTurns(t, ip)
	wantInts(t, turns[0], 7)
}

func TestEqualMacro(t *testing.T) {
	ip := newTestInterp(t, "(= 3 3); (= 3 4);")
	turns := runTurns(t, ip)
	if len(turns) != 2 {
		t.Fatalf("want 2 turns, got %d", len(turns))
	}
	// The operand stack persists across turns, so the second turn's result
	// sits on top of the first's.
	wantBools(t, turns[0], true)
	wantBools(t, turns[1], true, false)
}

func TestIfMacroConsumesCondition(t *testing.T) {
	// The condition value itself never reaches the final stack: BRANCH pops
	// it before selecting a branch (spec 4.6), so only the chosen branch's
	// value is added. The stack persists across turns, so the second turn
	// ends with the first turn's 1 under its own 2.
	ip := newTestInterp(t, "(if T 1 2); (if F 1 2);")
	turns := runTurns(t, ip)
	wantInts(t, turns[0], 1)
	wantInts(t, turns[1], 1, 2)
}

func TestDropIdentifier(t *testing.T) {
	ip := newTestInterp(t, "1 2 dd;")
	turns := runTurns(t, ip)
	if len(turns[0]) != 0 {
		t.Errorf("want empty stack after dd, got %v", turns[0])
	}
}

func TestFuncDefinitionAndCall(t *testing.T) {
	ip := newTestInterp(t, "func add(x y) (Int) (+ x y); add 3 4;")
	turns := runTurns(t, ip)
	if len(turns) != 2 {
		t.Fatalf("want 2 turns, got %d", len(turns))
	}
	// Defining a function produces no stack output of its own.
	if len(turns[0]) != 0 {
		t.Errorf("want empty stack after func definition, got %v", turns[0])
	}
	wantInts(t, turns[1], 7)
}

func TestRecursiveFibonacci(t *testing.T) {
	ip := newTestInterp(t, `func fib(n) (Int)
		(if (= n 0) 0
			(if (= n 1) 1
				(+ (fib (- n 1)) (fib (- n 2)))));
		fib 10;`)
	turns := runTurns(t, ip)
	if len(turns) != 2 {
		t.Fatalf("want 2 turns, got %d", len(turns))
	}
	wantInts(t, turns[1], 55)
}

func TestUnboundIdentifierIsError(t *testing.T) {
	ip := newTestInterp(t, "nope;")
	_, _, err := ip.Turn()
	if err == nil {
		t.Fatal("want error compiling an unbound identifier")
	}
	if ip.LastError() == "" {
		t.Error("want LastError populated after a failed turn")
	}
}

func TestErrorDoesNotPersistPastNextTurn(t *testing.T) {
	ip := newTestInterp(t, "nope; 1;")
	if _, _, err := ip.Turn(); err == nil {
		t.Fatal("want first turn to fail")
	}
	stack, _, err := ip.Turn()
	if err != nil {
		t.Fatalf("want second turn to succeed, got %s", err)
	}
	wantInts(t, stack, 1)
	if ip.LastError() != "" {
		t.Errorf("want LastError cleared after a successful turn, got %q", ip.LastError())
	}
}

func TestBareSemicolonsAreEmptyTurns(t *testing.T) {
	ip := newTestInterp(t, ";;; 5;")
	turns := runTurns(t, ip)
	if len(turns) != 4 {
		t.Fatalf("want 4 turns (three empty, one with a value), got %d", len(turns))
	}
	for i := 0; i < 3; i++ {
		if len(turns[i]) != 0 {
			t.Errorf("turn %d: want empty stack, got %v", i, turns[i])
		}
	}
	wantInts(t, turns[3], 5)
}

func TestEOFWithNoPendingFormsReturnsEOF(t *testing.T) {
	ip := newTestInterp(t, "")
	_, eof, err := ip.Turn()
	if err != nil {
		t.Fatal(err)
	}
	if !eof {
		t.Error("want eof on an empty source")
	}
}
