package builtin

import (
	"fmt"

	"github.com/codr7/fibr/lang/env"
	"github.com/codr7/fibr/lang/types"
)

// Install binds every built-in type, constant, function and macro into
// scopes' current (outermost) scope (spec 6: "Built-in bindings"). It is
// called once, right after the interpreter's root scope is pushed.
func Install(scopes *env.Scopes) error {
	bindings := []struct {
		name string
		val  types.Value
	}{
		{"Meta", types.TypeValue(types.MetaType)},
		{"Bool", types.TypeValue(types.BoolType)},
		{"Int", types.TypeValue(types.IntType)},
		{"Func", types.TypeValue(types.FuncType)},
		{"Macro", types.TypeValue(types.MacroType)},

		{"T", types.BoolValue(true)},
		{"F", types.BoolValue(false)},

		{"+", types.FuncValue(types.NewFunction("+", 2, Add))},
		{"-", types.FuncValue(types.NewFunction("-", 2, Sub))},
		{"debug", types.FuncValue(types.NewFunction("debug", 0, Debug))},

		{"=", types.MacroValue(types.NewMacro("=", 2, Equal))},
		{"if", types.MacroValue(types.NewMacro("if", 3, If))},
		{"func", types.MacroValue(types.NewMacro("func", 4, Func))},
		{"_", types.MacroValue(types.NewMacro("_", 0, Placeholder))},
	}

	for _, b := range bindings {
		if err := scopes.Bind(b.name, b.val); err != nil {
			return fmt.Errorf("builtin: binding %s: %w", b.name, err)
		}
	}
	return nil
}
