// Package compiler drains a form list, resolves identifiers against the
// scope stack, and dispatches each value to its type's Emit method,
// producing a flat opcode stream for lang/machine to execute (spec:
// "Compiler (emit)", "Bytecode store").
package compiler

import (
	"fmt"

	"github.com/codr7/fibr/lang/token"
	"github.com/codr7/fibr/lang/types"
)

// Kind discriminates the opcodes the compiler emits (spec 3: "Opcode").
// lang/machine dispatches on it with a switch; the enumeration order only
// matters for indexing kindNames.
type Kind uint8

const (
	PUSH Kind = iota
	DROP
	LOAD
	STORE
	BRANCH
	JUMP
	EQUAL
	CALL
	RET
	NOP
	STOP
)

var kindNames = [...]string{
	PUSH:   "PUSH",
	DROP:   "DROP",
	LOAD:   "LOAD",
	STORE:  "STORE",
	BRANCH: "BRANCH",
	JUMP:   "JUMP",
	EQUAL:  "EQUAL",
	CALL:   "CALL",
	RET:    "RET",
	NOP:    "NOP",
	STOP:   "STOP",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Op is a single instruction: a Kind, the position of the source form it
// was emitted for, and a kind-specific payload (spec 3: "Opcode"). Position
// is carried by value rather than a pointer back into the form arena: it's
// all any diagnostic ever needs, and it keeps Op trivially copyable.
type Op struct {
	Kind Kind
	Pos  token.Position

	Count  int             // DROP
	Reg    int             // LOAD, STORE
	Target int             // BRANCH false-target, JUMP target
	Fn     *types.Function // CALL, RET (informational)
	Push   types.Value     // PUSH immediate

	// EQUAL's inlined operands; nil means "pop this operand at run time"
	// (spec 4.5/4.6).
	X, Y *types.Value
}

// String renders a one-line disassembly of op, used by the evaluator's
// debug mode (spec 4.6).
func (op Op) String() string {
	switch op.Kind {
	case PUSH:
		return fmt.Sprintf("PUSH %s", op.Push)
	case DROP:
		return fmt.Sprintf("DROP %d", op.Count)
	case LOAD:
		return fmt.Sprintf("LOAD %d", op.Reg)
	case STORE:
		return fmt.Sprintf("STORE %d", op.Reg)
	case BRANCH:
		return fmt.Sprintf("BRANCH %d", op.Target)
	case JUMP:
		return fmt.Sprintf("JUMP %d", op.Target)
	case EQUAL:
		return fmt.Sprintf("EQUAL %s %s", operandString(op.X), operandString(op.Y))
	case CALL:
		return fmt.Sprintf("CALL %s", op.Fn.Name)
	case RET:
		return fmt.Sprintf("RET %s", op.Fn.Name)
	case NOP:
		return "NOP"
	case STOP:
		return "STOP"
	default:
		return op.Kind.String()
	}
}

func operandString(v *types.Value) string {
	if v == nil {
		return "<pop>"
	}
	return v.String()
}
