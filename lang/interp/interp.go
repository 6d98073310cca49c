// Package interp wires the reader, compiler and evaluator into the "core"
// pipeline spec.md section 1 describes: "reader → form tree → compiler
// (emit) → bytecode → threaded evaluator". The REPL shell (outside the
// core, per spec 1) drives it through Turn, which reads a turn's forms,
// compiles them, evaluates from the pre-compilation program counter and
// returns the operand stack, and LastError.
package interp

import (
	"io"

	"github.com/codr7/fibr/lang/builtin"
	"github.com/codr7/fibr/lang/compiler"
	"github.com/codr7/fibr/lang/env"
	"github.com/codr7/fibr/lang/errbuf"
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
	"github.com/codr7/fibr/lang/machine"
	"github.com/codr7/fibr/lang/reader"
	"github.com/codr7/fibr/lang/types"
)

// Limits bounds every fixed-capacity working set the interpreter owns
// (spec section 5: "Capacity bounds"), beyond the evaluator's own
// machine.Limits.
type Limits struct {
	FormArenaCap int // form arena capacity
	ScopeDepth   int // maximum nested scopes
	EnvCap       int // entries per environment/scope
	OpcodeCap    int // opcode store capacity
	Machine      machine.Limits
}

// DefaultLimits is a small-embedded-profile set of capacities, generous
// enough for the kind of session spec section 8's scenarios exercise.
var DefaultLimits = Limits{
	FormArenaCap: 8192,
	ScopeDepth:   64,
	EnvCap:       256,
	OpcodeCap:    16384,
	Machine:      machine.DefaultLimits,
}

// Interp is one interpreter instance: every working set spec section 5
// lists as shared state — environments, bytecode store, form arena,
// operand stack, register file, frame stack, error buffer — bound
// together for the lifetime of one REPL session.
type Interp struct {
	errs   *errbuf.Buffer
	arena  *form.Arena
	scopes *env.Scopes
	store  *compiler.Store
	comp   *compiler.Compiler
	vm     *machine.Machine
	rd     *reader.Reader
}

// New constructs an Interp reading characters from in (named source for
// positions), with the built-in bindings installed (spec 6) and debug
// disassembly, if ever toggled on, written to debugOut.
func New(source string, in io.Reader, limits Limits, debugOut io.Writer) (*Interp, error) {
	errs := &errbuf.Buffer{}
	arena := form.NewArena(limits.FormArenaCap)
	scopes := env.NewScopes(limits.ScopeDepth, limits.EnvCap)
	scopes.Push()
	if err := builtin.Install(scopes); err != nil {
		return nil, err
	}
	store := compiler.NewStore(limits.OpcodeCap)
	comp := compiler.New(store, scopes, arena, errs)
	vm := machine.New(store, errs, limits.Machine, debugOut)
	rd := reader.New(source, in, errs)

	return &Interp{
		errs:   errs,
		arena:  arena,
		scopes: scopes,
		store:  store,
		comp:   comp,
		vm:     vm,
		rd:     rd,
	}, nil
}

// Turn runs one REPL turn (spec 2, spec 6: "REPL protocol"): it reads
// forms until a ';' terminator or end of input, compiles them, appends a
// STOP and evaluates from the pre-compilation PC. On success it returns
// the resulting operand stack (bottom first); eof is true once the
// character source is exhausted with nothing left to compile.
func (ip *Interp) Turn() (stack []types.Value, eof bool, err error) {
	ip.errs.Reset()

	var ids []form.ID
	for {
		id, atEOF, ferr := ip.rd.ReadForm(ip.arena)
		if ferr != nil {
			return nil, false, ferr
		}
		if atEOF {
			if len(ids) == 0 {
				return nil, true, nil
			}
			break
		}
		f := ip.arena.Get(id)
		if f.Kind == fkind.Semicolon {
			break
		}
		ids = append(ids, id)
	}

	startPC := ip.store.PC()
	rest := form.NewList(ip.arena, ids)
	if err := ip.comp.EmitForms(rest); err != nil {
		return nil, false, err
	}
	ip.comp.Stop()

	if err := ip.vm.Run(startPC); err != nil {
		return nil, false, err
	}
	return ip.vm.StackValues(), false, nil
}

// LastError returns the most recently buffered diagnostic, formatted per
// spec 4.7. It is only meaningful immediately after Turn returns a non-nil
// error.
func (ip *Interp) LastError() string { return ip.errs.String() }
