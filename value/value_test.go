package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr8co/secd/rerr"
)

func TestPrintRules(t *testing.T) {
	assert.Equal(t, "nil", Nil{}.String())
	assert.Equal(t, "t", True{}.String())
	assert.Equal(t, "42", Integer{N: 42}.String())
	assert.Equal(t, "foo", Symbol{Name: "foo"}.String())
	assert.Equal(t, "#<func>", (&Closure{}).String())
}

func TestPairPrintsAsProperList(t *testing.T) {
	list := Cons(Integer{N: 1}, Cons(Integer{N: 2}, Cons(Integer{N: 3}, TheNil)))
	assert.Equal(t, "(1 2 3)", list.String())
}

func TestPairPrintsDottedWhenImproper(t *testing.T) {
	p := Cons(Integer{N: 1}, Integer{N: 2})
	assert.Equal(t, "(1 . 2)", p.String())
}

func TestFromBoolToBool(t *testing.T) {
	assert.Equal(t, TheTrue, FromBool(true))
	assert.Equal(t, TheNil, FromBool(false))
	assert.True(t, ToBool(TheTrue))
	assert.True(t, ToBool(Integer{N: 0}))
	assert.False(t, ToBool(TheNil))
}

func TestCarCdrTotalOnNil(t *testing.T) {
	v, err := Car(TheNil)
	require.NoError(t, err)
	assert.Equal(t, TheNil, v)

	v, err = Cdr(TheNil)
	require.NoError(t, err)
	assert.Equal(t, TheNil, v)
}

func TestCarCdrFailOnNonPair(t *testing.T) {
	_, err := Car(Integer{N: 1})
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Type))

	_, err = Cdr(Integer{N: 1})
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Type))
}

func TestIsAtomIsNull(t *testing.T) {
	assert.True(t, IsAtom(TheNil))
	assert.True(t, IsAtom(Integer{N: 1}))
	assert.False(t, IsAtom(Cons(TheNil, TheNil)))

	assert.True(t, IsNull(TheNil))
	assert.False(t, IsNull(TheTrue))
}

func TestListToVecProperAndImproper(t *testing.T) {
	list := Cons(Integer{N: 1}, Cons(Integer{N: 2}, TheNil))
	vs, err := ListToVec(list)
	require.NoError(t, err)
	assert.Equal(t, []Value{Integer{N: 1}, Integer{N: 2}}, vs)

	improper := Cons(Integer{N: 1}, Integer{N: 2})
	_, err = ListToVec(improper)
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Type))
}

func TestToIntegerFailsOnNonInteger(t *testing.T) {
	_, err := ToInteger(TheNil)
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Type))
}
