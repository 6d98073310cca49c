package compiler

import (
	"github.com/codr7/fibr/lang/env"
	"github.com/codr7/fibr/lang/errbuf"
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
	"github.com/codr7/fibr/lang/token"
	"github.com/codr7/fibr/lang/types"
)

// Compiler drives emission: it implements types.Emitter, the capability
// surface a Value's Emit method and a Macro's Body use to participate in
// their own compilation (spec 4.4: "Compiler (emit)").
type Compiler struct {
	store  *Store
	scopes *env.Scopes
	arena  *form.Arena
	errs   *errbuf.Buffer
	pos    token.Position // position of the form currently being compiled
}

// New returns a Compiler that appends to store, resolving identifiers
// against scopes and reporting errors through errs.
func New(store *Store, scopes *env.Scopes, arena *form.Arena, errs *errbuf.Buffer) *Compiler {
	return &Compiler{store: store, scopes: scopes, arena: arena, errs: errs}
}

// EmitForms repeatedly detaches the head of rest and compiles it, until
// rest is empty or a form fails to compile (spec 4.4: driver "emit_forms").
func (c *Compiler) EmitForms(rest *form.List) error {
	for !rest.Empty() {
		f, _ := rest.PopFront()
		if err := c.EmitForm(f, rest); err != nil {
			return err
		}
	}
	return nil
}

// EmitForm compiles a single form f, possibly draining further forms from
// rest (spec 4.4: "Identifier").
func (c *Compiler) EmitForm(f form.Form, rest *form.List) error {
	prevPos := c.pos
	c.pos = f.Pos
	defer func() { c.pos = prevPos }()

	switch f.Kind {
	case fkind.Literal:
		c.Push(types.IntValue(f.Int))
		return nil

	case fkind.Group:
		children := form.NewList(c.arena, f.Children)
		return c.EmitForms(children)

	case fkind.Semicolon:
		return types.Errorf(c, "Semi emit")

	case fkind.Identifier:
		return c.emitIdentifier(f, rest)

	default:
		return types.Errorf(c, "Unknown form kind: %s", f.Kind)
	}
}

func (c *Compiler) emitIdentifier(f form.Form, rest *form.List) error {
	name := f.Name
	if env.IsDropName(name) {
		c.Drop(len(name))
		return nil
	}

	v, ok := c.Lookup(name)
	if !ok {
		return types.Errorf(c, "Unknown id: %s", name)
	}
	return v.Emit(f, rest, c)
}

// Position implements types.Emitter.
func (c *Compiler) Position() token.Position { return c.pos }

// PC implements types.Emitter.
func (c *Compiler) PC() int { return c.store.PC() }

// Push implements types.Emitter.
func (c *Compiler) Push(v types.Value) { c.store.emit(Op{Kind: PUSH, Pos: c.pos, Push: v}) }

// Drop implements types.Emitter.
func (c *Compiler) Drop(n int) { c.store.emit(Op{Kind: DROP, Pos: c.pos, Count: n}) }

// Load implements types.Emitter.
func (c *Compiler) Load(reg int) { c.store.emit(Op{Kind: LOAD, Pos: c.pos, Reg: reg}) }

// Store implements types.Emitter.
func (c *Compiler) Store(reg int) { c.store.emit(Op{Kind: STORE, Pos: c.pos, Reg: reg}) }

// Branch implements types.Emitter: emits a BRANCH with a placeholder
// target and returns its PC for a later PatchBranch.
func (c *Compiler) Branch() int { return c.store.emit(Op{Kind: BRANCH, Pos: c.pos}) }

// PatchBranch implements types.Emitter.
func (c *Compiler) PatchBranch(pc, target int) { c.store.patchTarget(pc, target) }

// Jump implements types.Emitter: emits a JUMP with a placeholder target
// and returns its PC for a later PatchJump.
func (c *Compiler) Jump() int { return c.store.emit(Op{Kind: JUMP, Pos: c.pos}) }

// PatchJump implements types.Emitter.
func (c *Compiler) PatchJump(pc, target int) { c.store.patchTarget(pc, target) }

// Equal implements types.Emitter.
func (c *Compiler) Equal(x, y *types.Value) {
	c.store.emit(Op{Kind: EQUAL, Pos: c.pos, X: x, Y: y})
}

// Call implements types.Emitter.
func (c *Compiler) Call(fn *types.Function) { c.store.emit(Op{Kind: CALL, Pos: c.pos, Fn: fn}) }

// Ret implements types.Emitter.
func (c *Compiler) Ret(fn *types.Function) { c.store.emit(Op{Kind: RET, Pos: c.pos, Fn: fn}) }

// Nop implements types.Emitter.
func (c *Compiler) Nop() { c.store.emit(Op{Kind: NOP, Pos: c.pos}) }

// Stop emits the turn's terminating STOP (spec 2: "a STOP terminator is
// appended" once the form list has drained). It is not part of
// types.Emitter: only the REPL turn driver appends it, never a value or
// macro's Emit/Body.
func (c *Compiler) Stop() int { return c.store.emit(Op{Kind: STOP, Pos: c.pos}) }

// Bind implements types.Emitter.
func (c *Compiler) Bind(name string, v types.Value) error {
	if err := c.scopes.Bind(name, v); err != nil {
		return types.Errorf(c, "%s", err)
	}
	return nil
}

// Lookup implements types.Emitter.
func (c *Compiler) Lookup(name string) (types.Value, bool) { return c.scopes.Find(name) }

// AllocReg implements types.Emitter.
func (c *Compiler) AllocReg() int { return c.scopes.Top().AllocReg() }

// PushScope implements types.Emitter.
func (c *Compiler) PushScope() { c.scopes.PushRoot() }

// PopScope implements types.Emitter.
func (c *Compiler) PopScope() { c.scopes.Pop() }

// FormAt implements types.Emitter.
func (c *Compiler) FormAt(id form.ID) form.Form { return c.arena.Get(id) }

// Fail implements types.Emitter.
func (c *Compiler) Fail(msg string) error { return c.errs.Set(c.pos, "%s", msg) }
