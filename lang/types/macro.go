package types

import "github.com/codr7/fibr/lang/form"

// MacroBody is invoked at compile time with the macro's own source form
// and the still-unprocessed remaining forms; it emits opcodes and/or
// consumes forms through e (spec: "Macro protocol").
type MacroBody func(m *Macro, self form.Form, rest *form.List, e Emitter) error

// Macro is a compile-time callable bound to an identifier (spec: "Macro").
type Macro struct {
	Name  string
	Arity int
	Body  MacroBody
}

// NewMacro constructs a Macro.
func NewMacro(name string, arity int, body MacroBody) *Macro {
	return &Macro{Name: name, Arity: arity, Body: body}
}
