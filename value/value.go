// Package value implements the runtime value model, the bytecode
// instruction set, and the persistent lexical environment shared by
// the compiler and virtual machine.
//
// These three concerns live in one package rather than three because
// the instruction set embeds values directly: PushConst carries a
// Value, Select and MakeClosure carry nested Code, and a Closure
// carries both Code and an Env. Splitting Value and Code into
// separate packages (keeping a constant pool out of the bytecode
// stream, as some bytecode compilers do) would create an import cycle
// here, since this instruction set has no constant pool: instructions
// carry their Value/Code operands directly rather than indexing into
// a table.
//
// Values are immutable once constructed. Atoms (Nil, True, Integer,
// Symbol) are plain Go values; Pair and Closure are always held behind
// a pointer so that shared sub-structure is never copied.
package value

import (
	"strconv"
	"strings"

	"github.com/dr8co/secd/rerr"
)

// Kind identifies which case of the [Value] tagged union a value is.
type Kind int

const (
	// KindNil identifies the canonical Nil value.
	KindNil Kind = iota

	// KindTrue identifies the canonical True value.
	KindTrue

	// KindInteger identifies a signed 32-bit integer.
	KindInteger

	// KindSymbol identifies an identifier compared by name.
	KindSymbol

	// KindPair identifies a cons cell.
	KindPair

	// KindClosure identifies a code/environment pair.
	KindClosure
)

// Value is the interface implemented by every runtime value.
type Value interface {
	// Kind reports which case of the tagged union the value is.
	Kind() Kind

	// String renders the value's printed representation.
	String() string
}

// Nil is the empty list and the sole falsy value.
type Nil struct{}

// Kind returns [KindNil].
func (Nil) Kind() Kind { return KindNil }

// String returns "nil".
func (Nil) String() string { return "nil" }

// True is the canonical truth marker. Any value other than Nil is
// truthy, but comparisons and the reader produce this specific value
// for the literal "t".
type True struct{}

// Kind returns [KindTrue].
func (True) Kind() Kind { return KindTrue }

// String returns "t".
func (True) String() string { return "t" }

// TheNil and TheTrue are the canonical singleton values, handed out by
// [FromBool] and the reader so callers rarely need to construct Nil{}
// or True{} literals directly.
var (
	TheNil  Value = Nil{}
	TheTrue Value = True{}
)

// Integer is a signed 32-bit machine integer.
type Integer struct {
	N int32
}

// Kind returns [KindInteger].
func (Integer) Kind() Kind { return KindInteger }

// String renders the integer in decimal.
func (i Integer) String() string { return strconv.FormatInt(int64(i.N), 10) }

// Symbol is an immutable identifier, compared by name.
type Symbol struct {
	Name string
}

// Kind returns [KindSymbol].
func (Symbol) Kind() Kind { return KindSymbol }

// String returns the symbol's name.
func (s Symbol) String() string { return s.Name }

// Pair is an ordered pair; proper lists are right-nested chains of
// Pairs terminated by Nil. Pairs are always referenced through a
// pointer so that shared structure is never duplicated.
type Pair struct {
	Car, Cdr Value
}

// Kind returns [KindPair].
func (*Pair) Kind() Kind { return KindPair }

// String renders the pair as a space-separated list in parentheses
// when the spine terminates in Nil, otherwise in dotted form.
func (p *Pair) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writePairBody(&b, p)
	b.WriteByte(')')
	return b.String()
}

func writePairBody(b *strings.Builder, p *Pair) {
	b.WriteString(p.Car.String())
	switch cdr := p.Cdr.(type) {
	case Nil:
		// Proper list spine ends here; nothing more to print.
	case *Pair:
		b.WriteByte(' ')
		writePairBody(b, cdr)
	default:
		b.WriteString(" . ")
		b.WriteString(cdr.String())
	}
}

// Closure pairs a compiled instruction sequence with the lexical
// environment chain captured at the moment the closure was created.
type Closure struct {
	Body Code
	Env  *Env
}

// Kind returns [KindClosure].
func (*Closure) Kind() Kind { return KindClosure }

// String returns the closure's printed representation.
func (*Closure) String() string { return "#<func>" }

// FromBool converts a Go bool to the canonical [True]/[Nil] value.
func FromBool(b bool) Value {
	if b {
		return TheTrue
	}
	return TheNil
}

// ToBool reports whether v is truthy: false iff v is Nil.
func ToBool(v Value) bool {
	_, isNil := v.(Nil)
	return !isNil
}

// ToInteger extracts the underlying int32, or fails with a
// [rerr.Type] error if v is not an [Integer].
func ToInteger(v Value) (int32, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, rerr.TypeErrorf("not a number")
	}
	return i.N, nil
}

// Car returns the first projection of v. Total on Nil (returns Nil);
// fails with a [rerr.Type] error for any non-pair, non-nil value.
func Car(v Value) (Value, error) {
	switch p := v.(type) {
	case Nil:
		return TheNil, nil
	case *Pair:
		return p.Car, nil
	default:
		return nil, rerr.TypeErrorf("not a pair")
	}
}

// Cdr returns the second projection of v. Total on Nil (returns Nil);
// fails with a [rerr.Type] error for any non-pair, non-nil value.
func Cdr(v Value) (Value, error) {
	switch p := v.(type) {
	case Nil:
		return TheNil, nil
	case *Pair:
		return p.Cdr, nil
	default:
		return nil, rerr.TypeErrorf("not a pair")
	}
}

// IsAtom reports whether v is anything other than a [Pair].
func IsAtom(v Value) bool {
	_, isPair := v.(*Pair)
	return !isPair
}

// IsNull reports whether v is [Nil].
func IsNull(v Value) bool {
	_, isNil := v.(Nil)
	return isNil
}

// ListToVec walks the cdr spine of v, collecting each car in order.
// Fails with a [rerr.Type] error ("improper list") if the spine
// terminates in anything other than Nil.
func ListToVec(v Value) ([]Value, error) {
	var out []Value
	cur := v
	for {
		switch c := cur.(type) {
		case Nil:
			return out, nil
		case *Pair:
			out = append(out, c.Car)
			cur = c.Cdr
		default:
			return nil, rerr.TypeErrorf("improper list")
		}
	}
}

// Cons builds a new Pair with car x and cdr y.
func Cons(x, y Value) Value {
	return &Pair{Car: x, Cdr: y}
}
