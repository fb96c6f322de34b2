package value

import (
	"fmt"
	"strings"
)

// Location is a compile-time lexical coordinate: frame depth i (0 is
// the innermost enclosing frame at the point of reference) and slot
// index j within that frame.
type Location struct {
	Frame int
	Slot  int
}

// String renders the location as "(i,j)".
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Frame, l.Slot)
}

// Opcode identifies the operation an [Instruction] performs.
type Opcode int

const (
	// OpPushNil pushes Nil onto S.
	OpPushNil Opcode = iota

	// OpPushConst pushes Const onto S.
	OpPushConst

	// OpLoad pushes E.locate(Loc) onto S.
	OpLoad

	// OpIsAtom pops v, pushes FromBool(IsAtom(v)).
	OpIsAtom

	// OpIsNull pops v, pushes FromBool(IsNull(v)).
	OpIsNull

	// OpCar pops v, pushes Car(v).
	OpCar

	// OpCdr pops v, pushes Cdr(v).
	OpCdr

	// OpCons pops x then y, pushes Cons(x, y).
	OpCons

	// OpAdd pops y then x, pushes Integer(x + y).
	OpAdd

	// OpSub pops y then x, pushes Integer(x - y).
	OpSub

	// OpMul pops y then x, pushes Integer(x * y).
	OpMul

	// OpDiv pops y then x, pushes Integer(x / y).
	OpDiv

	// OpEq pops y then x, pushes FromBool(x == y).
	OpEq

	// OpGt pops y then x, pushes FromBool(x > y).
	OpGt

	// OpLt pops y then x, pushes FromBool(x < y).
	OpLt

	// OpGte pops y then x, pushes FromBool(x >= y).
	OpGte

	// OpLte pops y then x, pushes FromBool(x <= y).
	OpLte

	// OpSelect pops v, pushes a Sel continuation, and transfers
	// control to Then if v is truthy, otherwise to Else.
	OpSelect

	// OpJoin pops a Sel continuation off the dump and restores C/P
	// from it.
	OpJoin

	// OpMakeClosure pushes a Closure over Body, capturing the
	// current E by reference.
	OpMakeClosure

	// OpApply pops a closure then an argument list, pushes an Ap
	// continuation, and transfers control into the closure's body
	// with a freshly extended E.
	OpApply

	// OpReturn pops the return value, pops an Ap continuation off the
	// dump, and restores S/E/C/P from it with the value pushed back
	// onto the restored S.
	OpReturn
)

// String returns the opcode's spec-level name, e.g. "PushConst".
func (op Opcode) String() string {
	switch op {
	case OpPushNil:
		return "PushNil"
	case OpPushConst:
		return "PushConst"
	case OpLoad:
		return "Load"
	case OpIsAtom:
		return "IsAtom"
	case OpIsNull:
		return "IsNull"
	case OpCar:
		return "Car"
	case OpCdr:
		return "Cdr"
	case OpCons:
		return "Cons"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpEq:
		return "Eq"
	case OpGt:
		return "Gt"
	case OpLt:
		return "Lt"
	case OpGte:
		return "Gte"
	case OpLte:
		return "Lte"
	case OpSelect:
		return "Select"
	case OpJoin:
		return "Join"
	case OpMakeClosure:
		return "MakeClosure"
	case OpApply:
		return "Apply"
	case OpReturn:
		return "Return"
	default:
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
}

// Instruction is a single bytecode instruction. Only the fields
// relevant to Op are populated; the rest are left at their zero
// value. Select and MakeClosure embed further [Code] sequences
// directly rather than referencing a global code table.
type Instruction struct {
	Op Opcode

	// Const holds the immediate for OpPushConst.
	Const Value

	// Loc holds the immediate for OpLoad.
	Loc Location

	// Then and Else hold the branch code for OpSelect.
	Then, Else Code

	// Body holds the closure body for OpMakeClosure.
	Body Code
}

// String renders the instruction in disassembly form, e.g. "PushConst 3".
func (in Instruction) String() string {
	switch in.Op {
	case OpPushConst:
		return fmt.Sprintf("%s %s", in.Op, in.Const)
	case OpLoad:
		return fmt.Sprintf("%s %s", in.Op, in.Loc)
	case OpSelect:
		return fmt.Sprintf("%s <%d insns> <%d insns>", in.Op, len(in.Then), len(in.Else))
	case OpMakeClosure:
		return fmt.Sprintf("%s <%d insns>", in.Op, len(in.Body))
	default:
		return in.Op.String()
	}
}

// Code is a shared, immutable, ordered sequence of instructions.
type Code []Instruction

// String renders the whole sequence, one instruction per line.
func (c Code) String() string {
	var b strings.Builder
	for i, in := range c {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(in.String())
	}
	return b.String()
}

// Simple, zero-immediate instruction constructors.
var (
	IsAtomInsn  = Instruction{Op: OpIsAtom}
	IsNullInsn  = Instruction{Op: OpIsNull}
	CarInsn     = Instruction{Op: OpCar}
	CdrInsn     = Instruction{Op: OpCdr}
	ConsInsn    = Instruction{Op: OpCons}
	AddInsn     = Instruction{Op: OpAdd}
	SubInsn     = Instruction{Op: OpSub}
	MulInsn     = Instruction{Op: OpMul}
	DivInsn     = Instruction{Op: OpDiv}
	EqInsn      = Instruction{Op: OpEq}
	GtInsn      = Instruction{Op: OpGt}
	LtInsn      = Instruction{Op: OpLt}
	GteInsn     = Instruction{Op: OpGte}
	LteInsn     = Instruction{Op: OpLte}
	JoinInsn    = Instruction{Op: OpJoin}
	ApplyInsn   = Instruction{Op: OpApply}
	ReturnInsn  = Instruction{Op: OpReturn}
	PushNilInsn = Instruction{Op: OpPushNil}
)

// PushConst builds an OpPushConst instruction carrying v.
func PushConst(v Value) Instruction {
	return Instruction{Op: OpPushConst, Const: v}
}

// Load builds an OpLoad instruction addressing loc.
func Load(loc Location) Instruction {
	return Instruction{Op: OpLoad, Loc: loc}
}

// Select builds an OpSelect instruction branching to then or els.
func Select(then, els Code) Instruction {
	return Instruction{Op: OpSelect, Then: then, Else: els}
}

// MakeClosure builds an OpMakeClosure instruction over body.
func MakeClosure(body Code) Instruction {
	return Instruction{Op: OpMakeClosure, Body: body}
}
