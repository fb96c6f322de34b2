package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr8co/secd/rerr"
)

func TestEnvLocateAcrossFrames(t *testing.T) {
	outer := PushFrame(nil, []Value{Integer{N: 1}, Integer{N: 2}})
	inner := PushFrame(outer, []Value{Integer{N: 10}})

	v, err := inner.Locate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Integer{N: 10}, v)

	v, err = inner.Locate(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Integer{N: 2}, v)
}

func TestEnvLocateOutOfRangeIsInternalError(t *testing.T) {
	frame := PushFrame(nil, []Value{Integer{N: 1}})

	_, err := frame.Locate(5, 0)
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Internal))

	_, err = frame.Locate(0, 9)
	require.Error(t, err)
	assert.True(t, rerr.Is(err, rerr.Internal))
}

// TestEnvSharingIsPersistent ensures extending an environment never
// mutates the frame it extends — closures capturing the outer chain
// must be unaffected by later PushFrame calls.
func TestEnvSharingIsPersistent(t *testing.T) {
	outer := PushFrame(nil, []Value{Integer{N: 1}})
	_ = PushFrame(outer, []Value{Integer{N: 2}})

	v, err := outer.Locate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Integer{N: 1}, v)
}
