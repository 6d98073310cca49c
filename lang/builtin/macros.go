// Package builtin implements the macros and intrinsic functions bound at
// interpreter startup (spec 4.5/4.6, spec 6: "Built-in bindings").
package builtin

import (
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
	"github.com/codr7/fibr/lang/types"
)

// Equal is the '=' macro (spec 4.5, arity 2): compile-time literals are
// inlined into the EQUAL opcode's immediate slots; anything else is
// compiled so its value lands on the operand stack for EQUAL to pop at
// run time.
func Equal(mac *types.Macro, self form.Form, rest *form.List, e types.Emitter) error {
	xForm, _ := rest.PopFront()
	yForm, _ := rest.PopFront()

	var xv, yv *types.Value
	if v, ok := types.FormLiteral(xForm, e); ok {
		xv = &v
	} else if err := e.EmitForm(xForm, rest); err != nil {
		return err
	}
	if v, ok := types.FormLiteral(yForm, e); ok {
		yv = &v
	} else if err := e.EmitForm(yForm, rest); err != nil {
		return err
	}

	e.Equal(xv, yv)
	return nil
}

// If is the 'if' macro (spec 4.5, arity 3).
func If(mac *types.Macro, self form.Form, rest *form.List, e types.Emitter) error {
	condForm, _ := rest.PopFront()
	trueForm, _ := rest.PopFront()
	falseForm, _ := rest.PopFront()

	if err := e.EmitForm(condForm, rest); err != nil {
		return err
	}
	branchPC := e.Branch()
	if err := e.EmitForm(trueForm, rest); err != nil {
		return err
	}
	jumpPC := e.Jump()
	e.PatchBranch(branchPC, e.PC())
	if err := e.EmitForm(falseForm, rest); err != nil {
		return err
	}
	e.PatchJump(jumpPC, e.PC())
	return nil
}

// Placeholder is the '_' macro (spec 4.5, arity 0): a no-op used wherever
// the grammar expects a form but nothing should be compiled for it.
func Placeholder(mac *types.Macro, self form.Form, rest *form.List, e types.Emitter) error {
	return nil
}

// Func is the 'func' macro (spec 4.5, arity 4): it reads a name, an args
// group, a rets form (parsed and discarded, spec's Open Question
// resolution: "types ignored at call time") and a body form, then
// compiles the body out-of-line behind an unconditional jump.
func Func(mac *types.Macro, self form.Form, rest *form.List, e types.Emitter) error {
	nameForm, _ := rest.PopFront()
	argsForm, _ := rest.PopFront()
	_, _ = rest.PopFront() // rets form: parsed for arity of the macro call, never used
	bodyForm, _ := rest.PopFront()

	if nameForm.Kind != fkind.Identifier {
		return types.Errorf(e, "func: name must be an identifier")
	}
	if argsForm.Kind != fkind.Group {
		return types.Errorf(e, "func: args must be a group")
	}

	paramNames := make([]string, 0, len(argsForm.Children))
	for _, id := range argsForm.Children {
		arg := e.FormAt(id)
		if arg.Kind != fkind.Identifier {
			return types.Errorf(e, "func: arg must be an identifier")
		}
		paramNames = append(paramNames, arg.Name)
	}
	arity := len(paramNames)

	fn := types.NewUserFunction(nameForm.Name, arity)
	anonymous := nameForm.Name == "_"
	if !anonymous {
		if err := e.Bind(nameForm.Name, types.FuncValue(fn)); err != nil {
			return err
		}
	}

	jumpPC := e.Jump()
	fn.StartPC = e.PC()

	e.PushScope()
	regs := make([]int, arity)
	for i := range regs {
		regs[i] = e.AllocReg()
	}
	// The call site pushed arguments in declaration order (spec 4.2), so
	// the last parameter's value sits on top of the (shared) operand
	// stack; LOAD them off in reverse to land each in its own register.
	for i := arity - 1; i >= 0; i-- {
		e.Load(regs[i])
	}
	for i, name := range paramNames {
		if err := e.Bind(name, types.RegValue(regs[i])); err != nil {
			return err
		}
	}

	if err := e.EmitForm(bodyForm, form.NewList(nil, nil)); err != nil {
		return err
	}
	e.Ret(fn)
	e.PopScope()
	e.PatchJump(jumpPC, e.PC())

	if anonymous {
		e.Push(types.FuncValue(fn))
	}
	return nil
}
