package reader

import (
	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
)

// readGroup matches '(' forms ')', recursively reading child forms until
// the closing ')' or end of input (spec 4.1: "Group"). EOF before ')' is
// an error positioned at the opening '(' ("Open group").
func (r *Reader) readGroup(a *form.Arena) (form.ID, Status, error) {
	ch, pos, ok, err := r.next()
	if err != nil {
		return form.Invalid, Err, err
	}
	if !ok {
		return form.Invalid, Null, nil
	}
	if ch != '(' {
		r.unread(ch, pos)
		return form.Invalid, Null, nil
	}

	var children []form.ID
	for {
		if st, err := r.skipWhitespace(); err != nil || st == Err {
			return form.Invalid, Err, err
		}

		ch, cpos, ok, err := r.next()
		if err != nil {
			return form.Invalid, Err, err
		}
		if !ok {
			return form.Invalid, Err, r.errs.Set(pos, "Open group")
		}
		if ch == ')' {
			return a.New(form.Form{Kind: fkind.Group, Pos: pos, Children: children}), OK, nil
		}
		r.unread(ch, cpos)

		childID, eof, err := r.ReadForm(a)
		if err != nil {
			return form.Invalid, Err, err
		}
		if eof {
			return form.Invalid, Err, r.errs.Set(pos, "Open group")
		}
		children = append(children, childID)
	}
}
