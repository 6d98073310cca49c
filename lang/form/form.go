// Package form implements the in-memory source representation produced by
// the reader and consumed by the compiler (spec: "Form tree").
//
// Forms are allocated from a fixed-capacity Arena and referenced by ID
// (an index), following the spec's Design Note that a rewrite should use
// indices rather than raw pointers for form references. The remaining,
// not-yet-compiled forms of a turn are tracked in a List, a slice-backed
// deque standing in for the original's intrusive doubly-linked list: a
// macro consumes from the front of a List exactly as it would unlink nodes
// from the front of a linked list, without the unsafe aliasing.
package form

import (
	"fmt"

	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/token"
)

// ID identifies a Form inside an Arena: its index, so the first form
// allocated gets ID 0. Invalid (-1) stands for "no form".
type ID int

// Invalid is the ID returned where no form applies.
const Invalid ID = -1

// Form is a single parsed source element: an identifier, an integer
// literal, a parenthesized group of child forms, or a semicolon terminator.
// Every Form carries the Position it was read at.
type Form struct {
	Kind fkind.Kind
	Pos  token.Position

	Name     string // valid when Kind == fkind.Identifier
	Int      int32  // valid when Kind == fkind.Literal (the only literal kind the reader produces)
	Children []ID   // valid when Kind == fkind.Group
}

// Arena is the fixed-capacity pool forms are allocated from for the
// lifetime of one interpreter (spec: "forms are allocated from a fixed
// arena with no reclamation within a REPL session").
type Arena struct {
	forms []Form
	cap   int
}

// NewArena creates an Arena with room for exactly capacity forms.
func NewArena(capacity int) *Arena {
	return &Arena{forms: make([]Form, 0, capacity), cap: capacity}
}

// New allocates a new Form in the arena and returns its ID. It panics if the
// arena's fixed capacity is exceeded: per spec section 5, capacity limits
// are design limits enforced as fatal assertions, not recoverable errors.
func (a *Arena) New(f Form) ID {
	if len(a.forms) >= a.cap {
		panic(fmt.Sprintf("form arena exhausted (capacity %d)", a.cap))
	}
	a.forms = append(a.forms, f)
	return ID(len(a.forms) - 1)
}

// Get returns the Form for id. It panics on an invalid or out-of-range id,
// which can only happen from an internal compiler bug (ids never escape to
// user input).
func (a *Arena) Get(id ID) Form {
	if id < 0 || int(id) >= len(a.forms) {
		panic(fmt.Sprintf("form: invalid id %d", id))
	}
	return a.forms[id]
}

// Len reports how many forms have been allocated so far.
func (a *Arena) Len() int { return len(a.forms) }

// List is an ordered, consumable sequence of forms: the "remaining forms"
// a macro or a function call's argument prologue drains from the front,
// possibly leaving forms unconsumed for the next driver iteration (spec
// 4.4/4.5). It resolves IDs against its Arena so callers deal in Forms,
// never raw IDs.
type List struct {
	arena *Arena
	ids   []ID
	pos   int
}

// NewList wraps ids (resolved against arena) in a List starting at its
// first element.
func NewList(arena *Arena, ids []ID) *List {
	return &List{arena: arena, ids: ids}
}

// Len reports how many forms remain.
func (l *List) Len() int { return len(l.ids) - l.pos }

// Empty reports whether no forms remain.
func (l *List) Empty() bool { return l.Len() <= 0 }

// PeekFront returns the next form without consuming it.
func (l *List) PeekFront() (Form, bool) {
	if l.Empty() {
		return Form{}, false
	}
	return l.arena.Get(l.ids[l.pos]), true
}

// PopFront consumes and returns the next form.
func (l *List) PopFront() (Form, bool) {
	f, ok := l.PeekFront()
	if ok {
		l.pos++
	}
	return f, ok
}
