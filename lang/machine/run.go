package machine

import (
	"fmt"

	"github.com/codr7/fibr/lang/compiler"
	"github.com/codr7/fibr/lang/types"
)

// Run executes the opcode stream starting at pc until a STOP opcode halts
// evaluation cleanly, or an opcode raises an error (spec 4.6: "Threaded
// dispatch over opcode kinds. Each opcode finishes by selecting the next
// PC and dispatching").
func (m *Machine) Run(pc int) error {
	for {
		op := m.store.Get(pc)
		if m.debug {
			fmt.Fprintf(m.debugW, "%04d: %s\n", pc, op)
		}

		switch op.Kind {
		case compiler.PUSH:
			m.Push(op.Push)
			pc++

		case compiler.DROP:
			if len(m.stack) < op.Count {
				return m.errs.Set(op.Pos, "Not enough values")
			}
			m.stack = m.stack[:len(m.stack)-op.Count]
			pc++

		case compiler.LOAD:
			m.LoadReg(op.Reg)
			pc++

		case compiler.STORE:
			m.StoreReg(op.Reg)
			pc++

		case compiler.BRANCH:
			v := m.Pop()
			if v.IsTrue() {
				pc++
			} else {
				pc = op.Target
			}

		case compiler.JUMP:
			pc = op.Target

		case compiler.EQUAL:
			var x, y types.Value
			if op.Y != nil {
				y = *op.Y
			} else {
				y = m.Pop()
			}
			if op.X != nil {
				x = *op.X
			} else {
				x = m.Pop()
			}
			m.Push(types.BoolValue(x.Equal(y)))
			pc++

		case compiler.CALL:
			next, err := op.Fn.Body(m, op.Fn, pc+1)
			if err != nil {
				return m.errs.Set(op.Pos, "%s", err)
			}
			pc = next

		case compiler.RET:
			next, err := m.popFrame()
			if err != nil {
				return m.errs.Set(op.Pos, "%s", err)
			}
			pc = next

		case compiler.NOP:
			pc++

		case compiler.STOP:
			return nil

		default:
			panic(fmt.Sprintf("machine: unknown opcode kind %v", op.Kind))
		}
	}
}
