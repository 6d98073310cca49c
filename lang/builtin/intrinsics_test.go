package builtin

import (
	"testing"

	"github.com/codr7/fibr/lang/types"
)

// fakeMachine is a minimal types.Machine good enough to exercise an
// intrinsic Function body in isolation, without a full evaluator.
type fakeMachine struct {
	stack []types.Value
	debug bool
}

func (m *fakeMachine) Pop() types.Value {
	n := len(m.stack) - 1
	v := m.stack[n]
	m.stack = m.stack[:n]
	return v
}
func (m *fakeMachine) Push(v types.Value)             { m.stack = append(m.stack, v) }
func (m *fakeMachine) Top() types.Value               { return m.stack[len(m.stack)-1] }
func (m *fakeMachine) SetTop(v types.Value)           { m.stack[len(m.stack)-1] = v }
func (m *fakeMachine) PushFrame(*types.Function, int) {}
func (m *fakeMachine) Debug() bool                    { return m.debug }
func (m *fakeMachine) SetDebug(v bool) bool           { m.debug = v; return m.debug }

func TestAddPopsYAndMutatesTop(t *testing.T) {
	m := &fakeMachine{stack: []types.Value{types.IntValue(3), types.IntValue(4)}}
	next, err := Add(m, nil, 42)
	if err != nil {
		t.Fatal(err)
	}
	if next != 42 {
		t.Errorf("want returnPC 42, got %d", next)
	}
	if len(m.stack) != 1 || m.stack[0].Int() != 7 {
		t.Errorf("want [7], got %v", m.stack)
	}
}

func TestAddWraps32Bit(t *testing.T) {
	m := &fakeMachine{stack: []types.Value{
		types.IntValue(2147483647),
		types.IntValue(1),
	}}
	if _, err := Add(m, nil, 0); err != nil {
		t.Fatal(err)
	}
	if m.stack[0].Int() != -2147483648 {
		t.Errorf("want silent wrap to math.MinInt32, got %d", m.stack[0].Int())
	}
}

func TestSubPopsYAndMutatesTop(t *testing.T) {
	m := &fakeMachine{stack: []types.Value{types.IntValue(10), types.IntValue(3)}}
	if _, err := Sub(m, nil, 0); err != nil {
		t.Fatal(err)
	}
	if len(m.stack) != 1 || m.stack[0].Int() != 7 {
		t.Errorf("want [7], got %v", m.stack)
	}
}

func TestDebugTogglesAndPushesNewValue(t *testing.T) {
	m := &fakeMachine{}
	if _, err := Debug(m, nil, 0); err != nil {
		t.Fatal(err)
	}
	if len(m.stack) != 1 || !m.stack[0].Bool() {
		t.Errorf("want [T] after first toggle, got %v", m.stack)
	}
	if !m.debug {
		t.Error("want debug flag now on")
	}

	if _, err := Debug(m, nil, 0); err != nil {
		t.Fatal(err)
	}
	if len(m.stack) != 2 || m.stack[1].Bool() {
		t.Errorf("want [T F] after second toggle, got %v", m.stack)
	}
}
