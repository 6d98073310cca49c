package env

import "github.com/dolthub/swiss"

// Interner deduplicates identifier text read from the character stream, so
// re-scanning the same name within a session doesn't keep allocating new Go
// strings for it. The user-visible environment itself stays the ordered,
// sorted structure spec 4.3 describes; this is purely a reader-side cache.
type Interner struct {
	m *swiss.Map[string, string]
}

// NewInterner returns an Interner with initial room for at least capacity
// distinct identifiers.
func NewInterner(capacity int) *Interner {
	return &Interner{m: swiss.NewMap[string, string](uint32(capacity))}
}

// Intern returns the canonical string equal to s, caching s itself the
// first time it is seen.
func (it *Interner) Intern(s string) string {
	if v, ok := it.m.Get(s); ok {
		return v
	}
	it.m.Put(s, s)
	return s
}
