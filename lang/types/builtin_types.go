package types

import (
	"fmt"
	"io"

	"github.com/codr7/fibr/lang/form"
)

// MetaType is the type of type values themselves (spec: "Meta
// (type-of-types)").
var MetaType = &Type{
	Name: "Meta",
	Dump: func(v Value, out io.Writer) { fmt.Fprint(out, v.TypeRef().Name) },
	Equal: func(x, y Value) bool {
		return x.TypeRef() == y.TypeRef()
	},
}

// BoolType is the type of Bool values.
var BoolType = &Type{
	Name: "Bool",
	Dump: func(v Value, out io.Writer) {
		if v.Bool() {
			fmt.Fprint(out, "T")
		} else {
			fmt.Fprint(out, "F")
		}
	},
	Equal:  func(x, y Value) bool { return x.Bool() == y.Bool() },
	IsTrue: func(v Value) bool { return v.Bool() },
}

// IntType is the type of Int values.
var IntType = &Type{
	Name:   "Int",
	Dump:   func(v Value, out io.Writer) { fmt.Fprintf(out, "%d", v.Int()) },
	Equal:  func(x, y Value) bool { return x.Int() == y.Int() },
	IsTrue: func(v Value) bool { return v.Int() != 0 },
}

// FuncType is the type of Function values.
var FuncType = &Type{
	Name:    "Func",
	Dump:    func(v Value, out io.Writer) { fmt.Fprintf(out, "Func(%s)", v.Func().Name) },
	Emit:    emitFuncCall,
	Literal: NotALiteral,
}

// MacroType is the type of Macro values.
var MacroType = &Type{
	Name:    "Macro",
	Dump:    func(v Value, out io.Writer) { fmt.Fprintf(out, "Macro(%s)", v.Macro().Name) },
	Emit:    emitMacroCall,
	Literal: NotALiteral,
}

// RegType is the type of values bound to a VM register, e.g. a function
// parameter (spec 3: Value payload "register index"). Referencing a
// register-bound identifier compiles to STORE of that register (spec
// 4.6: "STORE(r): read register r; push a copy") — the register was
// already populated by the function prologue's LOAD opcodes when the
// call's arguments were popped off the stack.
var RegType = &Type{
	Name: "Reg",
	Dump: func(v Value, out io.Writer) { fmt.Fprintf(out, "reg(%d)", v.Reg()) },
	Emit: func(v Value, self form.Form, rest *form.List, e Emitter) error {
		e.Store(v.Reg())
		return nil
	},
	Literal: NotALiteral,
}

// emitFuncCall implements spec 4.2's default emit for Function values:
// "emit an argument-evaluation prologue of length equal to arity ...
// then a CALL with the function reference".
func emitFuncCall(v Value, self form.Form, rest *form.List, e Emitter) error {
	fn := v.Func()
	for i := 0; i < fn.Arity; i++ {
		argForm, ok := rest.PopFront()
		if !ok {
			return Errorf(e, "Missing function arguments: %s %d", fn.Name, fn.Arity-i)
		}
		if err := e.EmitForm(argForm, rest); err != nil {
			return err
		}
	}
	e.Call(fn)
	return nil
}

// emitMacroCall implements spec 4.2/4.5: pre-check that Arity forms remain,
// then hand off to the macro's Body.
func emitMacroCall(v Value, self form.Form, rest *form.List, e Emitter) error {
	m := v.Macro()
	if rest.Len() < m.Arity {
		return Errorf(e, "Missing macro arguments: %s %d", m.Name, rest.Len())
	}
	return m.Body(m, self, rest, e)
}
