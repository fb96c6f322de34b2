package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionStringRendering(t *testing.T) {
	assert.Equal(t, "PushConst 3", PushConst(Integer{N: 3}).String())
	assert.Equal(t, "Load (1,0)", Load(Location{Frame: 1, Slot: 0}).String())
	assert.Equal(t, "Add", AddInsn.String())

	sel := Select(Code{AddInsn}, Code{SubInsn, JoinInsn})
	assert.Equal(t, "Select <1 insns> <2 insns>", sel.String())

	clo := MakeClosure(Code{AddInsn, ReturnInsn})
	assert.Equal(t, "MakeClosure <2 insns>", clo.String())
}

func TestCodeStringJoinsLines(t *testing.T) {
	code := Code{PushConst(Integer{N: 1}), PushConst(Integer{N: 2}), AddInsn}
	assert.Equal(t, "PushConst 1\nPushConst 2\nAdd", code.String())
}

func TestOpcodeStringRendersCanonicalNames(t *testing.T) {
	assert.Equal(t, "PushNil", OpPushNil.String())
	assert.Equal(t, "MakeClosure", OpMakeClosure.String())
	assert.Equal(t, "Return", OpReturn.String())
}

// TestCodeEqualityIsStructural verifies two independently built code
// sequences with the same instructions compare equal, since compiler
// determinism tests are checked this way.
func TestCodeEqualityIsStructural(t *testing.T) {
	a := Code{PushConst(Integer{N: 3}), AddInsn}
	b := Code{PushConst(Integer{N: 3}), AddInsn}
	assert.Equal(t, a, b)
}
