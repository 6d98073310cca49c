package types

import (
	"bytes"
	"fmt"

	"github.com/codr7/fibr/lang/form"
)

// VKind discriminates the payload actually stored in a Value, independent
// of its Type (spec 3: "Invariant: every value has a non-null type; the
// payload variant matches the type").
type VKind uint8

const (
	VBool VKind = iota
	VInt
	VFunc
	VMacro
	VTypeRef
	VReg
)

// Value is a tagged union of the payloads the language manipulates: a
// Type pointer plus exactly one live payload field, selected by Kind.
// Values are small and are always copied by value (stack, registers,
// opcode immediates, environment entries — spec 3).
type Value struct {
	typ  *Type
	kind VKind

	b   bool
	i   int32
	fn  *Function
	mac *Macro
	tv  *Type
	reg int
}

// Type returns the value's type. The zero Value has a nil Type and must
// never be observed outside of "no value" sentinels (e.g. Type.Literal's
// second return being false).
func (v Value) Type() *Type { return v.typ }

// Kind returns the discriminant of the live payload.
func (v Value) Kind() VKind { return v.kind }

// Bool returns the payload of a VBool value. It panics if v is not VBool.
func (v Value) Bool() bool {
	if v.kind != VBool {
		panic("types: Value.Bool on non-bool value")
	}
	return v.b
}

// Int returns the payload of a VInt value. It panics if v is not VInt.
func (v Value) Int() int32 {
	if v.kind != VInt {
		panic("types: Value.Int on non-int value")
	}
	return v.i
}

// Func returns the payload of a VFunc value. It panics if v is not VFunc.
func (v Value) Func() *Function {
	if v.kind != VFunc {
		panic("types: Value.Func on non-function value")
	}
	return v.fn
}

// Macro returns the payload of a VMacro value. It panics if v is not VMacro.
func (v Value) Macro() *Macro {
	if v.kind != VMacro {
		panic("types: Value.Macro on non-macro value")
	}
	return v.mac
}

// TypeRef returns the payload of a VTypeRef value (a value denoting a
// Type). It panics if v is not VTypeRef.
func (v Value) TypeRef() *Type {
	if v.kind != VTypeRef {
		panic("types: Value.TypeRef on non-type value")
	}
	return v.tv
}

// Reg returns the payload of a VReg value (a register index). It panics if
// v is not VReg.
func (v Value) Reg() int {
	if v.kind != VReg {
		panic("types: Value.Reg on non-register value")
	}
	return v.reg
}

// IsTrue reports v's truthiness, per its type (spec 4.2).
func (v Value) IsTrue() bool {
	if v.typ.IsTrue == nil {
		return DefaultIsTrue(v)
	}
	return v.typ.IsTrue(v)
}

// Literal returns v's compile-time constant projection, per its type.
func (v Value) Literal() (Value, bool) {
	if v.typ.Literal == nil {
		return DefaultLiteral(v)
	}
	return v.typ.Literal(v)
}

// Emit compiles an identifier resolved to v, per its type (spec 4.2). self
// is the identifier form that resolved to v; rest is the remaining,
// not-yet-compiled forms.
func (v Value) Emit(self form.Form, rest *form.List, e Emitter) error {
	if v.typ.Emit == nil {
		return DefaultEmit(v, self, rest, e)
	}
	return v.typ.Emit(v, self, rest, e)
}

// Equal reports whether v and y are equal, per v's type. It is the
// caller's responsibility to ensure v and y share a type, as spec 4.2
// requires ('=' of two values is true iff the first operand's type's
// equal returns true).
func (v Value) Equal(y Value) bool {
	if v.typ.Equal == nil {
		panic(fmt.Sprintf("types: %s does not implement Equal", v.typ))
	}
	return v.typ.Equal(v, y)
}

// String dumps v through its type's Dump method, for debugging and tests.
func (v Value) String() string {
	if v.typ == nil {
		return "<no value>"
	}
	var buf bytes.Buffer
	if v.typ.Dump == nil {
		fmt.Fprintf(&buf, "<%s>", v.typ.Name)
	} else {
		v.typ.Dump(v, &buf)
	}
	return buf.String()
}

// BoolValue constructs a VBool Value.
func BoolValue(b bool) Value { return Value{typ: BoolType, kind: VBool, b: b} }

// IntValue constructs a VInt Value.
func IntValue(i int32) Value { return Value{typ: IntType, kind: VInt, i: i} }

// FuncValue constructs a VFunc Value.
func FuncValue(fn *Function) Value { return Value{typ: FuncType, kind: VFunc, fn: fn} }

// MacroValue constructs a VMacro Value.
func MacroValue(m *Macro) Value { return Value{typ: MacroType, kind: VMacro, mac: m} }

// TypeValue constructs a VTypeRef Value denoting t.
func TypeValue(t *Type) Value { return Value{typ: MetaType, kind: VTypeRef, tv: t} }

// RegValue constructs a VReg Value denoting register index r.
func RegValue(r int) Value { return Value{typ: RegType, kind: VReg, reg: r} }
