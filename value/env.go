package value

import "github.com/dr8co/secd/rerr"

// Env is a persistent chain of activation frames. Extending the
// environment never mutates an existing frame: [PushFrame] allocates
// one new link pointing at the old chain, so a closure that captured
// an earlier *Env is unaffected by frames pushed after capture.
type Env struct {
	values []Value
	parent *Env
}

// PushFrame prepends frame onto parent, returning the new chain head.
// parent may be nil (the empty environment).
func PushFrame(parent *Env, frame []Value) *Env {
	return &Env{values: frame, parent: parent}
}

// Locate returns the j-th value of the i-th frame from the top of the
// chain (i=0 is the innermost frame). Fails with a [rerr.Internal]
// error if i or j falls outside the chain — which a well-formed
// compiled program never does.
func (e *Env) Locate(i, j int) (Value, error) {
	fr := e
	for ; i > 0; i-- {
		if fr == nil {
			return nil, rerr.InternalErrorf("load: frame depth %d exceeds environment chain", i)
		}
		fr = fr.parent
	}
	if fr == nil || j < 0 || j >= len(fr.values) {
		return nil, rerr.InternalErrorf("load: slot %d out of range for frame", j)
	}
	return fr.values[j], nil
}
