package form_test

import (
	"testing"

	"github.com/codr7/fibr/lang/fkind"
	"github.com/codr7/fibr/lang/form"
	"github.com/codr7/fibr/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaNewAndGet(t *testing.T) {
	a := form.NewArena(4)
	id := a.New(form.Form{Kind: fkind.Literal, Pos: token.New("repl", 1, 1), Int: 42})
	got := a.Get(id)
	assert.Equal(t, int32(42), got.Int)
	assert.Equal(t, 1, a.Len())
}

func TestArenaExhaustedPanics(t *testing.T) {
	a := form.NewArena(1)
	a.New(form.Form{Kind: fkind.Semicolon})
	assert.Panics(t, func() {
		a.New(form.Form{Kind: fkind.Semicolon})
	})
}

func TestListDrain(t *testing.T) {
	a := form.NewArena(4)
	id1 := a.New(form.Form{Kind: fkind.Literal, Int: 1})
	id2 := a.New(form.Form{Kind: fkind.Literal, Int: 2})
	l := form.NewList(a, []form.ID{id1, id2})

	require.Equal(t, 2, l.Len())
	f, ok := l.PeekFront()
	require.True(t, ok)
	assert.Equal(t, int32(1), f.Int)
	assert.Equal(t, 2, l.Len(), "peek must not consume")

	f, ok = l.PopFront()
	require.True(t, ok)
	assert.Equal(t, int32(1), f.Int)
	assert.Equal(t, 1, l.Len())

	f, ok = l.PopFront()
	require.True(t, ok)
	assert.Equal(t, int32(2), f.Int)
	assert.True(t, l.Empty())

	_, ok = l.PopFront()
	assert.False(t, ok)
}
