package types

import (
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
)

// FormLiteral reports the compile-time constant value denoted by f, if
// any: an integer literal form denotes itself, and an identifier form
// denotes its bound value's Literal projection (spec 4.5: "if the form
// denotes a compile-time literal (literal form, or identifier bound to a
// value whose literal projection is non-nil)"). Any other form, or an
// identifier that is unbound or bound to a non-constant (Function, Macro),
// is reported as not a literal.
func FormLiteral(f form.Form, e Emitter) (Value, bool) {
	switch f.Kind {
	case fkind.Literal:
		return IntValue(f.Int), true
	case fkind.Identifier:
		v, ok := e.Lookup(f.Name)
		if !ok {
			return Value{}, false
		}
		return v.Literal()
	default:
		return Value{}, false
	}
}
