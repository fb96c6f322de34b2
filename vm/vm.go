// Package vm implements the SECD-style virtual machine: the fetch/
// dispatch loop that executes a [value.Code] sequence against four
// registers — operand stack, environment, code, and program counter —
// plus a dump of saved continuations for conditionals and calls.
package vm

import (
	"github.com/dr8co/secd/rerr"
	"github.com/dr8co/secd/value"
)

// dumpEntry is a saved continuation. Select pushes a selEntry and Join
// may only pop one; Apply pushes an apEntry and Return may only pop
// one. Keeping the two as distinct types (rather than one struct with
// unused fields) lets the pop sites verify the shape they expect.
type dumpEntry interface {
	isDumpEntry()
}

type selEntry struct {
	code value.Code
	pc   int
}

func (selEntry) isDumpEntry() {}

type apEntry struct {
	stack []value.Value
	env   *value.Env
	code  value.Code
	pc    int
}

func (apEntry) isDumpEntry() {}

// machine holds the four SECD registers plus the dump.
type machine struct {
	stack []value.Value
	env   *value.Env
	code  value.Code
	pc    int
	dump  []dumpEntry
}

// Run executes code on a fresh machine (S=∅, E=∅, C=code, P=0, D=∅)
// and returns the single value left on the stack, or Nil if the stack
// is empty at halt.
func Run(code value.Code) (value.Value, error) {
	m := &machine{code: code}
	if err := m.run(); err != nil {
		return nil, err
	}
	if len(m.stack) == 0 {
		return value.TheNil, nil
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *machine) run() error {
	for m.pc < len(m.code) {
		insn := m.code[m.pc]
		jumped, err := m.exec(insn)
		if err != nil {
			return err
		}
		if !jumped {
			m.pc++
		}
	}
	if len(m.dump) != 0 {
		return rerr.InternalErrorf("machine halted with a non-empty dump")
	}
	return nil
}

func (m *machine) push(v value.Value) { m.stack = append(m.stack, v) }

func (m *machine) pop() (value.Value, error) {
	n := len(m.stack)
	if n == 0 {
		return nil, rerr.InternalErrorf("stack underflow")
	}
	v := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return v, nil
}

func (m *machine) pushDump(e dumpEntry) { m.dump = append(m.dump, e) }

func (m *machine) popDump() (dumpEntry, error) {
	n := len(m.dump)
	if n == 0 {
		return nil, rerr.InternalErrorf("dump underflow")
	}
	e := m.dump[n-1]
	m.dump = m.dump[:n-1]
	return e, nil
}

// exec performs insn's effect, returning jumped=true if it altered
// code/pc directly (so run must not also advance pc).
func (m *machine) exec(insn value.Instruction) (jumped bool, err error) {
	switch insn.Op {
	case value.OpPushNil:
		m.push(value.TheNil)

	case value.OpPushConst:
		m.push(insn.Const)

	case value.OpLoad:
		v, err := m.env.Locate(insn.Loc.Frame, insn.Loc.Slot)
		if err != nil {
			return false, err
		}
		m.push(v)

	case value.OpIsAtom:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.push(value.FromBool(value.IsAtom(v)))

	case value.OpIsNull:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.push(value.FromBool(value.IsNull(v)))

	case value.OpCar:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		r, err := value.Car(v)
		if err != nil {
			return false, err
		}
		m.push(r)

	case value.OpCdr:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		r, err := value.Cdr(v)
		if err != nil {
			return false, err
		}
		m.push(r)

	case value.OpCons:
		a, err := m.pop()
		if err != nil {
			return false, err
		}
		b, err := m.pop()
		if err != nil {
			return false, err
		}
		m.push(value.Cons(a, b))

	case value.OpAdd:
		return false, m.arith(func(x, y int32) (int32, error) { return x + y, nil })
	case value.OpSub:
		return false, m.arith(func(x, y int32) (int32, error) { return x - y, nil })
	case value.OpMul:
		return false, m.arith(func(x, y int32) (int32, error) { return x * y, nil })
	case value.OpDiv:
		return false, m.arith(func(x, y int32) (int32, error) {
			if y == 0 {
				return 0, rerr.ArithmeticErrorf("division by zero")
			}
			return x / y, nil
		})

	case value.OpEq:
		return false, m.compare(func(x, y int32) bool { return x == y })
	case value.OpGt:
		return false, m.compare(func(x, y int32) bool { return x > y })
	case value.OpLt:
		return false, m.compare(func(x, y int32) bool { return x < y })
	case value.OpGte:
		return false, m.compare(func(x, y int32) bool { return x >= y })
	case value.OpLte:
		return false, m.compare(func(x, y int32) bool { return x <= y })

	case value.OpSelect:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.pushDump(selEntry{code: m.code, pc: m.pc + 1})
		if value.ToBool(v) {
			m.code = insn.Then
		} else {
			m.code = insn.Else
		}
		m.pc = 0
		return true, nil

	case value.OpJoin:
		e, err := m.popDump()
		if err != nil {
			return false, err
		}
		sel, ok := e.(selEntry)
		if !ok {
			return false, rerr.InternalErrorf("join: dump top is not a select continuation")
		}
		m.code = sel.code
		m.pc = sel.pc
		return true, nil

	case value.OpMakeClosure:
		m.push(&value.Closure{Body: insn.Body, Env: m.env})

	case value.OpApply:
		return m.apply()

	case value.OpReturn:
		return m.ret()

	default:
		return false, rerr.InternalErrorf("unrecognized opcode %v", insn.Op)
	}
	return false, nil
}

func (m *machine) arith(op func(x, y int32) (int32, error)) error {
	yv, err := m.pop()
	if err != nil {
		return err
	}
	xv, err := m.pop()
	if err != nil {
		return err
	}
	y, err := value.ToInteger(yv)
	if err != nil {
		return err
	}
	x, err := value.ToInteger(xv)
	if err != nil {
		return err
	}
	r, err := op(x, y)
	if err != nil {
		return err
	}
	m.push(value.Integer{N: r})
	return nil
}

func (m *machine) compare(op func(x, y int32) bool) error {
	yv, err := m.pop()
	if err != nil {
		return err
	}
	xv, err := m.pop()
	if err != nil {
		return err
	}
	y, err := value.ToInteger(yv)
	if err != nil {
		return err
	}
	x, err := value.ToInteger(xv)
	if err != nil {
		return err
	}
	m.push(value.FromBool(op(x, y)))
	return nil
}

func (m *machine) apply() (bool, error) {
	f, err := m.pop()
	if err != nil {
		return false, err
	}
	cl, ok := f.(*value.Closure)
	if !ok {
		return false, rerr.TypeErrorf("not applicable")
	}
	argsVal, err := m.pop()
	if err != nil {
		return false, err
	}
	frame, err := value.ListToVec(argsVal)
	if err != nil {
		return false, err
	}
	m.pushDump(apEntry{stack: m.stack, env: m.env, code: m.code, pc: m.pc + 1})
	m.stack = nil
	m.env = value.PushFrame(cl.Env, frame)
	m.code = cl.Body
	m.pc = 0
	return true, nil
}

func (m *machine) ret() (bool, error) {
	v, err := m.pop()
	if err != nil {
		return false, err
	}
	e, err := m.popDump()
	if err != nil {
		return false, err
	}
	ap, ok := e.(apEntry)
	if !ok {
		return false, rerr.InternalErrorf("return: dump top is not an apply continuation")
	}
	m.stack = append(ap.stack, v)
	m.env = ap.env
	m.code = ap.code
	m.pc = ap.pc
	return true, nil
}
