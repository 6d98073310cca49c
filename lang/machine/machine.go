// Package machine implements the threaded dispatch evaluator: it
// interprets the opcode stream lang/compiler produces, manipulating an
// operand stack, a register file and call frames (spec 3/4.6:
// "Evaluator", "Stack/frame manager").
package machine

import (
	"fmt"
	"io"

	"github.com/codr7/fibr/lang/compiler"
	"github.com/codr7/fibr/lang/errbuf"
	"github.com/codr7/fibr/lang/types"
)

// Limits bounds every fixed-capacity working set the evaluator owns (spec
// section 5: "Capacity bounds").
type Limits struct {
	StackCap   int // operand stack depth
	RegCap     int // register file size, per call frame
	FrameDepth int // maximum nested call frames
}

// DefaultLimits is a small-embedded-profile set of capacities, generous
// enough for the Fibonacci-shaped programs spec.md's examples exercise.
var DefaultLimits = Limits{
	StackCap:   256,
	RegCap:     32,
	FrameDepth: 512,
}

// frame is a call's saved return PC plus its own register file (spec 3:
// "Call frame"). The operand stack, by contrast, is shared by every frame:
// a function's parameters arrive on it (pushed by the caller's
// argument-evaluation prologue, spec 4.2) and its result, if any, is
// whatever it leaves there when RET runs — there is no separate
// value-return channel, so the stack must span the call boundary for a
// function's result to ever reach its caller. Only the register file
// (the storage named parameters are bound to, spec 4.5's 'func') is fresh
// per call, so recursive calls don't collide over parameter storage.
type frame struct {
	fn       *types.Function
	returnPC int
	regs     []types.Value
}

// Machine is the evaluator: threaded dispatch over compiler.Op kinds
// (spec: "Evaluator"). It implements types.Machine, the capability
// surface an intrinsic Function.Body needs.
type Machine struct {
	store  *compiler.Store
	errs   *errbuf.Buffer
	limits Limits
	debug  bool
	debugW io.Writer

	stack  []types.Value
	frames []frame
	// baseRegs is the REPL top level's register file; top-level code never
	// binds a register-valued identifier (only a 'func' body does), but
	// every PushScope/PopScope pair at the top level still needs somewhere
	// to resolve against symmetrically with nested frames.
	baseRegs []types.Value
}

// New returns a Machine reading opcodes from store and reporting runtime
// errors through errs. debugW receives the disassembly trace when debug
// mode is on (spec 4.6); it is never read from.
func New(store *compiler.Store, errs *errbuf.Buffer, limits Limits, debugW io.Writer) *Machine {
	return &Machine{
		store:    store,
		errs:     errs,
		limits:   limits,
		debugW:   debugW,
		stack:    make([]types.Value, 0, limits.StackCap),
		baseRegs: make([]types.Value, limits.RegCap),
	}
}

func (m *Machine) topRegs() []types.Value {
	if n := len(m.frames); n > 0 {
		return m.frames[n-1].regs
	}
	return m.baseRegs
}

// Pop implements types.Machine.
func (m *Machine) Pop() types.Value {
	n := len(m.stack) - 1
	v := m.stack[n]
	m.stack = m.stack[:n]
	return v
}

// Push implements types.Machine.
func (m *Machine) Push(v types.Value) {
	if len(m.stack) >= m.limits.StackCap {
		panic(fmt.Sprintf("operand stack exhausted (capacity %d)", m.limits.StackCap))
	}
	m.stack = append(m.stack, v)
}

// Top implements types.Machine.
func (m *Machine) Top() types.Value { return m.stack[len(m.stack)-1] }

// SetTop implements types.Machine.
func (m *Machine) SetTop(v types.Value) { m.stack[len(m.stack)-1] = v }

// StackLen reports the live size of the operand stack.
func (m *Machine) StackLen() int { return len(m.stack) }

// StackValues returns a copy of the operand stack, bottom first, for the
// REPL to dump at the end of a turn (spec 6: "the resulting operand stack
// is printed").
func (m *Machine) StackValues() []types.Value {
	out := make([]types.Value, len(m.stack))
	copy(out, m.stack)
	return out
}

// LoadReg implements the LOAD opcode (spec 4.6: "pop; store into register
// r"): pop the operand stack's top value into register r of the current
// frame.
func (m *Machine) LoadReg(r int) { m.topRegs()[r] = m.Pop() }

// StoreReg implements the STORE opcode (spec 4.6: "read register r; push a
// copy").
func (m *Machine) StoreReg(r int) { m.Push(m.topRegs()[r]) }

// PushFrame implements types.Machine: it pushes a new call frame for fn,
// with a fresh register file (spec 3: Call frame) but the same, shared
// operand stack — see the frame type's doc comment for why the stack
// itself is not reset.
func (m *Machine) PushFrame(fn *types.Function, returnPC int) {
	if len(m.frames) >= m.limits.FrameDepth {
		panic(fmt.Sprintf("call frame depth exhausted (max %d)", m.limits.FrameDepth))
	}
	m.frames = append(m.frames, frame{
		fn:       fn,
		returnPC: returnPC,
		regs:     make([]types.Value, m.limits.RegCap),
	})
}

// popFrame pops the innermost call frame, returning the PC execution
// should resume at.
func (m *Machine) popFrame() (int, error) {
	if len(m.frames) == 0 {
		return 0, fmt.Errorf("no active call frame to return from")
	}
	n := len(m.frames) - 1
	f := m.frames[n]
	m.frames = m.frames[:n]
	return f.returnPC, nil
}

// Debug implements types.Machine.
func (m *Machine) Debug() bool { return m.debug }

// SetDebug implements types.Machine.
func (m *Machine) SetDebug(v bool) bool {
	m.debug = v
	return m.debug
}
