// Package errbuf implements the single-slot formatted error diagnostic
// shared by the reader, compiler and evaluator (spec 4.7: "Error buffer").
package errbuf

import (
	"fmt"

	"github.com/codr7/fibr/lang/token"
)

// MaxLen bounds the formatted message, per the fixed-capacity profile
// (spec section 5: "error buffer length").
const MaxLen = 256

// Buffer holds at most one formatted diagnostic at a time. A later Set
// overwrites an earlier one (spec 4.7: "Later errors overwrite earlier
// ones"); callers surface the buffer's contents after any stage returns
// ERROR and abort the current REPL turn.
type Buffer struct {
	msg string
	set bool
}

// Set formats "Error in <source>, line <line> column <column>: <message>"
// and stores it, overwriting any previously buffered error. It returns an
// error wrapping the formatted message, for convenient use as a Go return
// value at call sites that plumb `error` (reader, compiler, evaluator all
// return a status alongside the buffer).
func (b *Buffer) Set(pos token.Position, format string, args ...any) error {
	msg := fmt.Sprintf("Error in %s: %s", pos, fmt.Sprintf(format, args...))
	if len(msg) > MaxLen {
		msg = msg[:MaxLen]
	}
	b.msg = msg
	b.set = true
	return fmt.Errorf("%s", msg)
}

// String returns the currently buffered message, or "" if none has been
// set.
func (b *Buffer) String() string { return b.msg }

// IsSet reports whether an error has been buffered since the last Reset.
func (b *Buffer) IsSet() bool { return b.set }

// Reset clears the buffer, so a later successful stage doesn't leak a
// stale message into the next turn's diagnostics.
func (b *Buffer) Reset() {
	b.msg = ""
	b.set = false
}
