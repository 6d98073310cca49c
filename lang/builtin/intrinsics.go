package builtin

import "github.com/codr7/fibr/lang/types"

// Add is the '+' intrinsic (spec 4.6): pops y, mutates top by addition.
// 32-bit overflow wraps silently (spec's Open Question resolution).
func Add(m types.Machine, fn *types.Function, returnPC int) (int, error) {
	y := m.Pop()
	x := m.Top()
	m.SetTop(types.IntValue(x.Int() + y.Int()))
	return returnPC, nil
}

// Sub is the '-' intrinsic (spec 4.6): pops y, mutates top by
// subtraction.
func Sub(m types.Machine, fn *types.Function, returnPC int) (int, error) {
	y := m.Pop()
	x := m.Top()
	m.SetTop(types.IntValue(x.Int() - y.Int()))
	return returnPC, nil
}

// Debug is the 'debug' intrinsic (spec 4.6): toggles disassembly-on-
// dispatch and pushes its new value.
func Debug(m types.Machine, fn *types.Function, returnPC int) (int, error) {
	v := m.SetDebug(!m.Debug())
	m.Push(types.BoolValue(v))
	return returnPC, nil
}
