// Package types implements the value representation shared by the reader,
// compiler and evaluator (spec: "Value/Type registry"). Following the
// spec's own Design Note, a Value is a discriminated sum over its possible
// payloads, and per-type behavior is attached through a Type: a named
// method table ("vtable") identified by its address, not by a Go
// interface-per-capability or class hierarchy.
package types

import (
	"fmt"
	"io"

	"github.com/codr7/fibr/lang/form"
	"github.com/codr7/fibr/lang/token"
)

// Type is a named vtable of value behavior (spec: "Type"). Two Types are
// the same type iff they are the same pointer; Types live for the lifetime
// of the interpreter.
type Type struct {
	Name string

	// Dump writes a human-readable representation of v to out. Required if a
	// value of this type is ever printed (e.g. dumped to the operand stack).
	Dump func(v Value, out io.Writer)

	// Emit compiles an identifier resolved to v. self is the identifier form
	// that resolved to v; rest is the remaining, not yet compiled forms
	// (which a function or macro value may consume further from). The
	// default is DefaultEmit: push v as a literal.
	Emit func(v Value, self form.Form, rest *form.List, e Emitter) error

	// Equal reports whether x and y, both of this type, are equal. Required
	// if values of this type are ever compared with '='.
	Equal func(x, y Value) bool

	// IsTrue reports the truthiness of v, used by BRANCH. Defaults to always
	// true.
	IsTrue func(v Value) bool

	// Literal returns the "compile-time value" of v: the value the compiler
	// may inline as an operand instead of compiling code to produce it. The
	// second return is false if v is not a compile-time constant (so the
	// compiler must evaluate it at run time instead), which is the case for
	// Function and Macro values. Defaults to (v, true).
	Literal func(v Value) (Value, bool)
}

func (t *Type) String() string { return t.Name }

// DefaultEmit is the Type.Emit behavior inherited by any type that does not
// override it: push the value as an immediate (spec 4.2: "Default: emit
// one PUSH with the value as immediate").
func DefaultEmit(v Value, self form.Form, rest *form.List, e Emitter) error {
	e.Push(v)
	return nil
}

// DefaultIsTrue is the Type.IsTrue behavior inherited by any type that does
// not override it: every value of the type is truthy.
func DefaultIsTrue(Value) bool { return true }

// DefaultLiteral is the Type.Literal behavior inherited by any type that
// does not override it: the value is its own compile-time constant.
func DefaultLiteral(v Value) (Value, bool) { return v, true }

// NotALiteral is used by Function and Macro types: those values are never
// compile-time constants the compiler can inline (spec 4.2).
func NotALiteral(Value) (Value, bool) { return Value{}, false }

// Emitter is the callback surface the compiler exposes to a Type's Emit
// method and to a Macro's Body: the capabilities a value needs in order to
// participate in its own compilation (spec: "Macro protocol", "Function
// protocol"). lang/compiler implements this interface; lang/types depends
// only on the interface, never on the compiler package, so there is no
// import cycle between the value representation and the stage that drives
// it.
type Emitter interface {
	// Position returns the position of the form currently being compiled.
	Position() token.Position

	// PC returns the index the next emitted opcode will occupy.
	PC() int

	// Push emits PUSH v.
	Push(v Value)
	// Drop emits DROP n.
	Drop(n int)
	// Load emits LOAD reg.
	Load(reg int)
	// Store emits STORE reg.
	Store(reg int)
	// Branch emits BRANCH with a placeholder target and returns its PC, to
	// be patched later with PatchBranch.
	Branch() int
	// PatchBranch sets the false-target of the BRANCH opcode at pc.
	PatchBranch(pc int, target int)
	// Jump emits JUMP with a placeholder target and returns its PC, to be
	// patched later with PatchJump.
	Jump() int
	// PatchJump sets the target of the JUMP opcode at pc.
	PatchJump(pc int, target int)
	// Equal emits EQUAL with the given inlined operands; a nil pointer means
	// "pop this operand from the stack at run time" (spec 4.5/4.6).
	Equal(x, y *Value)
	// Call emits CALL fn.
	Call(fn *Function)
	// Ret emits RET fn (informational, spec 3).
	Ret(fn *Function)
	// Nop emits NOP.
	Nop()

	// EmitForm compiles f (which may be of any Kind), draining further
	// forms from rest if f resolves to a Function or Macro value that
	// itself consumes arguments.
	EmitForm(f form.Form, rest *form.List) error

	// Bind binds name to v in the current (innermost) scope.
	Bind(name string, v Value) error
	// Lookup resolves name against the scope stack, innermost first.
	Lookup(name string) (Value, bool)

	// AllocReg reserves the next free register in the current (innermost)
	// scope and returns its index (spec 3: Scope "registers allocated in a
	// child don't collide with the parent's").
	AllocReg() int
	// PushScope opens a new innermost scope with register numbering reset
	// to zero, for a function body's own call frame (spec 3/4.5: "func").
	PushScope()
	// PopScope closes the innermost scope opened by PushScope.
	PopScope()

	// FormAt resolves id against the form arena, for a macro that needs to
	// inspect a child of a Group form it received (e.g. 'func' inspecting
	// its args form's children).
	FormAt(id form.ID) form.Form

	// Fail aborts compilation with msg, positioned at the form currently
	// being compiled.
	Fail(msg string) error
}

// Errorf is a small helper so callers of Emitter.Fail can format messages
// the same way the rest of the codebase does.
func Errorf(e Emitter, format string, args ...any) error {
	return e.Fail(fmt.Sprintf(format, args...))
}
