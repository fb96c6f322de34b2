package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr8co/secd/value"
)

func TestReadAtoms(t *testing.T) {
	v, err := Read("t")
	require.NoError(t, err)
	assert.Equal(t, value.TheTrue, v)

	v, err = Read("nil")
	require.NoError(t, err)
	assert.Equal(t, value.TheNil, v)

	v, err = Read("-123")
	require.NoError(t, err)
	assert.Equal(t, value.Integer{N: -123}, v)

	v, err = Read("42")
	require.NoError(t, err)
	assert.Equal(t, value.Integer{N: 42}, v)

	v, err = Read("hello-world!")
	require.NoError(t, err)
	assert.Equal(t, value.Symbol{Name: "hello-world!"}, v)

	v, err = Read("-")
	require.NoError(t, err)
	assert.Equal(t, value.Symbol{Name: "-"}, v)
}

func TestReadList(t *testing.T) {
	v, err := Read("(1 2 3)")
	require.NoError(t, err)

	want := value.Cons(value.Integer{N: 1},
		value.Cons(value.Integer{N: 2},
			value.Cons(value.Integer{N: 3}, value.TheNil)))
	assert.Equal(t, want, v)
}

func TestReadNestedList(t *testing.T) {
	v, err := Read("(+ (* 3 3) (* 4 4))")
	require.NoError(t, err)
	assert.Equal(t, "(+ (* 3 3) (* 4 4))", v.String())
}

func TestReadEmptyInputIsEOF(t *testing.T) {
	_, err := Read("   ")
	assert.ErrorIs(t, err, ErrEOF)
}

func TestReadUnterminatedListIsError(t *testing.T) {
	_, err := Read("(1 2")
	require.Error(t, err)
}

func TestReadAllMultipleForms(t *testing.T) {
	vs, err := ReadAll("1 2 (+ 1 2)")
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, value.Integer{N: 1}, vs[0])
	assert.Equal(t, value.Integer{N: 2}, vs[1])
	assert.Equal(t, "(+ 1 2)", vs[2].String())
}
