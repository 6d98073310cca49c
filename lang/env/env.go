// Package env implements the environment and scope stack the compiler
// resolves identifiers against (spec 3/4.3: "Environment entry", "Scope",
// "Environment and scopes").
package env

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/codr7/fibr/lang/types"
)

// dropPattern matches the 'd+' identifiers the compiler recognizes
// directly as DROP (spec 4.4/4.6). Per spec's Open Question resolution,
// such names are forbidden as user bindings so a binding can never shadow
// the DROP recognition.
var dropPattern = regexp.MustCompile(`^d+$`)

// IsDropName reports whether name is a run of one or more 'd' characters,
// the pattern the compiler recognizes directly as DROP without looking it
// up in the environment (spec 4.4: "If the name consists solely of the
// letter d ... emit DROP"; spec 4.6/6). Exported so the compiler can check
// this before attempting a lookup, in the same order spec 4.4 describes.
func IsDropName(name string) bool { return dropPattern.MatchString(name) }

// entry is one (name, value) pair of an Environment.
type entry struct {
	name  string
	value types.Value
}

// Environment is an ordered set of (name, value) pairs with unique names,
// kept sorted by name so lookups and insertions both work by the same
// binary search (spec 4.3).
type Environment struct {
	entries []entry
}

// NewEnvironment returns an empty Environment with room for capacity
// entries.
func NewEnvironment(capacity int) *Environment {
	return &Environment{entries: make([]entry, 0, capacity)}
}

// search returns the index of name if present, and the index it would be
// inserted at (the first entry whose name is >= name) otherwise.
func (e *Environment) search(name string) (int, bool) {
	i := sort.Search(len(e.entries), func(i int) bool { return e.entries[i].name >= name })
	if i < len(e.entries) && e.entries[i].name == name {
		return i, true
	}
	return i, false
}

// Bind inserts name=value, keeping entries sorted by name. It fails if name
// is already bound in this Environment, or if name matches the reserved
// 'd+' DROP pattern.
func (e *Environment) Bind(name string, value types.Value) error {
	if dropPattern.MatchString(name) {
		return fmt.Errorf("reserved identifier: %s", name)
	}
	i, found := e.search(name)
	if found {
		return fmt.Errorf("already bound: %s", name)
	}
	if len(e.entries) >= cap(e.entries) {
		panic(fmt.Sprintf("environment exhausted (capacity %d)", cap(e.entries)))
	}
	e.entries = append(e.entries, entry{})
	copy(e.entries[i+1:], e.entries[i:])
	e.entries[i] = entry{name: name, value: value}
	return nil
}

// Lookup returns the value bound to name in this Environment, if any.
func (e *Environment) Lookup(name string) (types.Value, bool) {
	i, found := e.search(name)
	if !found {
		return types.Value{}, false
	}
	return e.entries[i].value, true
}

// Len reports how many names are bound.
func (e *Environment) Len() int { return len(e.entries) }
