package env

import (
	"fmt"

	"github.com/codr7/fibr/lang/types"
)

// Scope is one lexical nesting level: an Environment plus the register
// count inherited from its parent at push time, so registers allocated in
// a child scope never collide with its parent's (spec 3: "Scope").
type Scope struct {
	parent   *Scope
	env      *Environment
	regCount int
}

// AllocReg reserves the next free register in this scope and returns its
// index.
func (s *Scope) AllocReg() int {
	r := s.regCount
	s.regCount++
	return r
}

// Scopes is the LIFO scope stack a compiler resolves identifiers against
// (spec 4.3). Scopes are drawn from a fixed-capacity pool; only the top
// scope is ever mutated.
type Scopes struct {
	pool     []Scope
	stack    []*Scope
	envCap   int
	maxDepth int
}

// NewScopes returns a Scopes stack with room for at most maxDepth nested
// scopes, each with an Environment capacity of envCap entries. pool is
// allocated at its full length up front and reused by index across
// repeated push/pop cycles, so its backing array never reallocates — a
// reallocation would invalidate the *Scope pointers already held in stack
// and in each Scope's parent link.
func NewScopes(maxDepth, envCap int) *Scopes {
	return &Scopes{
		pool:     make([]Scope, maxDepth),
		stack:    make([]*Scope, 0, maxDepth),
		envCap:   envCap,
		maxDepth: maxDepth,
	}
}

// Push opens a new innermost scope, inheriting the current scope's
// register count. It panics if the maximum scope depth is exceeded (a
// fixed capacity limit, spec section 5).
func (s *Scopes) Push() { s.push(false) }

// PushRoot opens a new innermost scope with its register numbering reset
// to zero, used for a function body: it executes in its own call frame
// with a fresh register file at run time (spec 3: Call frame "push of a
// frame pushes a fresh operand-stack/register-file state"), so its
// compile-time register numbering must not continue the caller's.
func (s *Scopes) PushRoot() { s.push(true) }

func (s *Scopes) push(resetRegs bool) {
	depth := len(s.stack)
	if depth >= s.maxDepth {
		panic(fmt.Sprintf("scope depth exhausted (max %d)", s.maxDepth))
	}
	regCount := 0
	var parent *Scope
	if top := s.Top(); top != nil {
		parent = top
		if !resetRegs {
			regCount = top.regCount
		}
	}
	s.pool[depth] = Scope{parent: parent, env: NewEnvironment(s.envCap), regCount: regCount}
	s.stack = append(s.stack, &s.pool[depth])
}

// Pop closes the innermost scope.
func (s *Scopes) Pop() {
	if len(s.stack) == 0 {
		panic("env: Pop on empty scope stack")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Top returns the innermost scope, or nil if the stack is empty.
func (s *Scopes) Top() *Scope {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Depth reports how many scopes are currently open.
func (s *Scopes) Depth() int { return len(s.stack) }

// Bind writes name=value to the innermost (top) scope (spec 4.3: "bind
// writes to the top scope").
func (s *Scopes) Bind(name string, value types.Value) error {
	top := s.Top()
	if top == nil {
		panic("env: Bind on empty scope stack")
	}
	return top.env.Bind(name, value)
}

// Find resolves name against the scope stack, innermost first (spec 4.3:
// "find reads from the top scope (nested lookup is a permitted
// extension)"). fibr takes the permitted extension: an unbound name in the
// top scope falls through to its ancestors.
func (s *Scopes) Find(name string) (types.Value, bool) {
	for sc := s.Top(); sc != nil; sc = sc.parent {
		if v, ok := sc.env.Lookup(name); ok {
			return v, true
		}
	}
	return types.Value{}, false
}
