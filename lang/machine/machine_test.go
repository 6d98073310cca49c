package machine

import (
	"io"
	"testing"

	"github.com/codr7/fibr/lang/compiler"
	"github.com/codr7/fibr/lang/errbuf"
	"github.com/codr7/fibr/lang/types"
)

func newTestMachine(storeCap int, limits Limits) (*Machine, *compiler.Store, *compiler.Compiler) {
	store := compiler.NewStore(storeCap)
	errs := &errbuf.Buffer{}
	m := New(store, errs, limits, io.Discard)
	c := compiler.New(store, nil, nil, errs)
	return m, store, c
}

func smallLimits() Limits {
	return Limits{StackCap: 16, RegCap: 4, FrameDepth: 4}
}

func TestPushPopTopSetTop(t *testing.T) {
	m, _, _ := newTestMachine(4, smallLimits())
	m.Push(types.IntValue(1))
	m.Push(types.IntValue(2))
	if m.Top().Int() != 2 {
		t.Fatalf("want top 2, got %d", m.Top().Int())
	}
	m.SetTop(types.IntValue(9))
	if m.Top().Int() != 9 {
		t.Fatalf("want top 9, got %d", m.Top().Int())
	}
	if got := m.Pop().Int(); got != 9 {
		t.Fatalf("want pop 9, got %d", got)
	}
	if got := m.Pop().Int(); got != 1 {
		t.Fatalf("want pop 1, got %d", got)
	}
}

func TestPushPastCapacityPanics(t *testing.T) {
	m, _, _ := newTestMachine(4, Limits{StackCap: 1, RegCap: 1, FrameDepth: 1})
	m.Push(types.IntValue(1))
	defer func() {
		if recover() == nil {
			t.Error("want panic pushing past stack capacity")
		}
	}()
	m.Push(types.IntValue(2))
}

func TestRunPushDropStop(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Push(types.IntValue(3))
	c.Push(types.IntValue(4))
	c.Drop(1)
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 {
		t.Fatalf("want 1 value left, got %d", m.StackLen())
	}
	if m.Top().Int() != 3 {
		t.Fatalf("want 3 left on stack, got %d", m.Top().Int())
	}
}

func TestRunBranchTakesTrueFallthrough(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Push(types.BoolValue(true))
	branchPC := c.Branch()
	c.Push(types.IntValue(111))
	c.PatchBranch(branchPC, c.PC())
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 || m.Top().Int() != 111 {
		t.Fatalf("want [111], got len=%d top=%v", m.StackLen(), m.Top())
	}
}

func TestRunBranchTakesFalseTarget(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Push(types.BoolValue(false))
	branchPC := c.Branch()
	c.Push(types.IntValue(111)) // skipped on false
	c.PatchBranch(branchPC, c.PC())
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 0 {
		t.Fatalf("want empty stack (true branch skipped), got %d", m.StackLen())
	}
}

func TestRunJump(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	jumpPC := c.Jump()
	c.Push(types.IntValue(999)) // skipped
	c.PatchJump(jumpPC, c.PC())
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 0 {
		t.Fatalf("want empty stack, got %d", m.StackLen())
	}
}

func TestRunEqualPopsBothOperands(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Push(types.IntValue(5))
	c.Push(types.IntValue(5))
	c.Equal(nil, nil)
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 || !m.Top().Bool() {
		t.Fatalf("want [T], got len=%d top=%v", m.StackLen(), m.Top())
	}
}

func TestRunEqualWithInlinedOperands(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	x := types.IntValue(5)
	y := types.IntValue(6)
	c.Equal(&x, &y)
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 || m.Top().Bool() {
		t.Fatalf("want [F], got len=%d top=%v", m.StackLen(), m.Top())
	}
}

func TestLoadStoreRegister(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Push(types.IntValue(42))
	c.Load(0)
	c.Store(0)
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 || m.Top().Int() != 42 {
		t.Fatalf("want [42], got len=%d top=%v", m.StackLen(), m.Top())
	}
}

// TestCallAndReturnShareOperandStack hand-assembles the same shape the
// 'func' macro emits for `func identity(x) (Int) x; identity 7;`: an
// argument-binding prologue (LOAD into a fresh register), the body
// (STORE to push it back), and RET. It exercises the core design
// decision that the operand stack spans the call boundary, so a
// function's result is simply whatever it leaves on top of the shared
// stack when RET runs.
func TestCallAndReturnShareOperandStack(t *testing.T) {
	m, _, c := newTestMachine(16, smallLimits())

	fn := types.NewUserFunction("identity", 1)

	jumpPC := c.Jump()
	fn.StartPC = c.PC()
	c.Load(0)
	c.Store(0)
	c.Ret(fn)
	c.PatchJump(jumpPC, c.PC())

	c.Push(types.IntValue(7))
	c.Call(fn)
	c.Stop()

	if err := m.Run(0); err != nil {
		t.Fatal(err)
	}
	if m.StackLen() != 1 || m.Top().Int() != 7 {
		t.Fatalf("want call result [7] on the shared stack, got len=%d top=%v", m.StackLen(), m.Top())
	}
}

func TestRetWithNoFramePropagatesError(t *testing.T) {
	m, _, c := newTestMachine(8, smallLimits())
	c.Ret(&types.Function{Name: "f"})

	if err := m.Run(0); err == nil {
		t.Error("want error returning with no active call frame")
	}
}

func TestPushFramePastDepthPanics(t *testing.T) {
	m, _, _ := newTestMachine(4, Limits{StackCap: 8, RegCap: 2, FrameDepth: 1})
	fn := &types.Function{Name: "f"}
	m.PushFrame(fn, 0)
	defer func() {
		if recover() == nil {
			t.Error("want panic pushing past frame depth")
		}
	}()
	m.PushFrame(fn, 0)
}

func TestDebugToggle(t *testing.T) {
	m, _, _ := newTestMachine(4, smallLimits())
	if m.Debug() {
		t.Fatal("want debug off initially")
	}
	if !m.SetDebug(true) {
		t.Error("want SetDebug(true) to return true")
	}
	if !m.Debug() {
		t.Error("want Debug() true after SetDebug(true)")
	}
}
