package reader

import (
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
)

// readInteger matches an optional leading '-' followed by at least one
// decimal digit (spec 4.1: "Integer"). Overflow wraps silently, following
// ordinary 32-bit two's-complement arithmetic (spec's own Open Question
// resolution). If '-' is not followed by a digit, both characters are
// restored and Null is returned.
func (r *Reader) readInteger(a *form.Arena) (form.ID, Status, error) {
	ch, pos, ok, err := r.next()
	if err != nil {
		return form.Invalid, Err, err
	}
	if !ok {
		return form.Invalid, Null, nil
	}

	start := pos
	neg := false
	var digits []rune

	if ch == '-' {
		ch2, pos2, ok2, err2 := r.next()
		if err2 != nil {
			return form.Invalid, Err, err2
		}
		if !ok2 || !isDigit(ch2) {
			if ok2 {
				r.unread(ch2, pos2)
			}
			r.unread(ch, pos)
			return form.Invalid, Null, nil
		}
		neg = true
		digits = append(digits, ch2)
	} else if isDigit(ch) {
		digits = append(digits, ch)
	} else {
		r.unread(ch, pos)
		return form.Invalid, Null, nil
	}

	for {
		ch, pos, ok, err := r.next()
		if err != nil {
			return form.Invalid, Err, err
		}
		if !ok || !isDigit(ch) {
			if ok {
				r.unread(ch, pos)
			}
			break
		}
		digits = append(digits, ch)
	}

	var v int32
	for _, d := range digits {
		v = v*10 + int32(d-'0') // silent 32-bit wrap on overflow, per spec
	}
	if neg {
		v = -v
	}

	return a.New(form.Form{Kind: fkind.Literal, Pos: start, Int: v}), OK, nil
}
