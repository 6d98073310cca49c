package reader

import (
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
)

// maxIdentLen bounds identifier length, per the fixed-capacity profile
// (spec section 5: "identifier length").
const maxIdentLen = 256

// readIdentifier matches a greedy run of characters that are neither
// whitespace nor one of '(', ')', ';' (spec 4.1: "Identifier"). A
// zero-length match yields Null.
func (r *Reader) readIdentifier(a *form.Arena) (form.ID, Status, error) {
	ch, pos, ok, err := r.next()
	if err != nil {
		return form.Invalid, Err, err
	}
	if !ok {
		return form.Invalid, Null, nil
	}
	if isWhitespace(ch) || isDelim(ch) {
		r.unread(ch, pos)
		return form.Invalid, Null, nil
	}

	name := make([]rune, 0, 8)
	name = append(name, ch)

	for {
		ch, cpos, ok, err := r.next()
		if err != nil {
			return form.Invalid, Err, err
		}
		if !ok || isWhitespace(ch) || isDelim(ch) {
			if ok {
				r.unread(ch, cpos)
			}
			break
		}
		if len(name) >= maxIdentLen {
			return form.Invalid, Err, r.errs.Set(pos, "Identifier too long")
		}
		name = append(name, ch)
	}

	interned := r.intern.Intern(string(name))
	return a.New(form.Form{Kind: fkind.Identifier, Pos: pos, Name: interned}), OK, nil
}
