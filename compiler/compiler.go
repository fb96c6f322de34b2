// Package compiler translates a [value.Value] expression tree into a
// flat, SECD-style [value.Code] sequence.
//
// The compiler is a single recursive tree walk. There is no separate
// AST: the value tree produced by the reader (or constructed directly,
// e.g. in tests) *is* the syntax the compiler consumes, dispatching on
// the head of each Pair to either a built-in special form/primitive or
// a general function application.
//
// Variable references are resolved at compile time into
// [value.Location] coordinates — a (frame-depth, slot) pair relative
// to the point of reference — so the virtual machine never needs to
// know a symbol's name.
package compiler

import (
	"github.com/dr8co/secd/rerr"
	"github.com/dr8co/secd/value"
)

// scope is the compile-time lexical environment: a chain of frames,
// each holding the ordered parameter names bound by one enclosing
// lambda. Unlike a runtime environment, a scope is only ever consulted
// for name resolution; it never holds values.
type scope struct {
	vars   []string
	parent *scope
}

// resolve looks up name in s and its ancestors, returning the
// relative frame distance (0 = the innermost frame) and slot index of
// the nearest binding.
func (s *scope) resolve(name string) (value.Location, bool) {
	depth := 0
	for sc := s; sc != nil; sc = sc.parent {
		for j, v := range sc.vars {
			if v == name {
				return value.Location{Frame: depth, Slot: j}, true
			}
		}
		depth++
	}
	return value.Location{}, false
}

// Compile translates expr into a [value.Code] sequence, resolving
// variable references against the empty top-level scope.
func Compile(expr value.Value) (value.Code, error) {
	return compile(expr, nil)
}

func compile(expr value.Value, sc *scope) (value.Code, error) {
	switch e := expr.(type) {
	case value.Nil:
		return value.Code{value.PushNilInsn}, nil

	case value.True:
		return value.Code{value.PushConst(e)}, nil

	case value.Integer:
		return value.Code{value.PushConst(e)}, nil

	case value.Symbol:
		loc, ok := sc.resolve(e.Name)
		if !ok {
			return nil, rerr.NameErrorf("unknown variable: %s", e.Name)
		}
		return value.Code{value.Load(loc)}, nil

	case *value.Pair:
		return compilePair(e, sc)

	default:
		return nil, rerr.InternalErrorf("compile: unrecognized value %T", expr)
	}
}

func compilePair(p *value.Pair, sc *scope) (value.Code, error) {
	head := p.Car
	rest := p.Cdr

	if sym, ok := head.(value.Symbol); ok {
		if form, ok := specialForms[sym.Name]; ok {
			return form(rest, sc)
		}
		return compileApply(head, rest, sc)
	}

	switch head.(type) {
	case value.Nil, value.True, value.Integer:
		return nil, rerr.TypeErrorf("%s is not applicable", head.String())
	}

	// Pair-headed forms (e.g. ((lambda (x) x) 5)) are applications.
	return compileApply(head, rest, sc)
}

// takeArgs extracts exactly n actuals from a form's argument list,
// failing with a fixed-arity [rerr.Arity] error when the count or
// shape doesn't match.
func takeArgs(rest value.Value, n int) ([]value.Value, error) {
	args, err := value.ListToVec(rest)
	if err != nil {
		return nil, rerr.ArityErrorf("arglist must be proper list")
	}
	if len(args) < n {
		return nil, rerr.ArityErrorf("too few arguments")
	}
	if len(args) > n {
		return nil, rerr.ArityErrorf("too many arguments")
	}
	return args, nil
}

// compileSeq compiles each actual in args in order and concatenates
// the resulting code.
func compileSeq(args []value.Value, sc *scope) (value.Code, error) {
	var out value.Code
	for _, a := range args {
		c, err := compile(a, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

// compileBinaryOp compiles a fixed-arity-2 form, emitting the two
// actuals in source order followed by op.
func compileBinaryOp(rest value.Value, sc *scope, op value.Instruction) (value.Code, error) {
	args, err := takeArgs(rest, 2)
	if err != nil {
		return nil, err
	}
	code, err := compileSeq(args, sc)
	if err != nil {
		return nil, err
	}
	return append(code, op), nil
}

// compileUnaryOp compiles a fixed-arity-1 form, emitting the actual
// followed by op.
func compileUnaryOp(rest value.Value, sc *scope, op value.Instruction) (value.Code, error) {
	args, err := takeArgs(rest, 1)
	if err != nil {
		return nil, err
	}
	code, err := compile(args[0], sc)
	if err != nil {
		return nil, err
	}
	return append(code, op), nil
}

// compileCons compiles (cons a b). The two actuals are emitted in
// reverse order (b, then a) so that the shared Cons opcode — whose
// semantics ("the value popped first becomes car") is fixed by its use
// in application argument-list building, see compileApply — yields a
// pair whose car is a and whose cdr is b, i.e. car(cons(x, y)) = x.
func compileCons(rest value.Value, sc *scope) (value.Code, error) {
	args, err := takeArgs(rest, 2)
	if err != nil {
		return nil, err
	}
	code, err := compileSeq([]value.Value{args[1], args[0]}, sc)
	if err != nil {
		return nil, err
	}
	return append(code, value.ConsInsn), nil
}

// compileIf compiles (if test then else) into a test followed by a
// Select over two Join-terminated branches.
func compileIf(rest value.Value, sc *scope) (value.Code, error) {
	args, err := takeArgs(rest, 3)
	if err != nil {
		return nil, err
	}
	testCode, err := compile(args[0], sc)
	if err != nil {
		return nil, err
	}
	thenCode, err := compile(args[1], sc)
	if err != nil {
		return nil, err
	}
	thenCode = append(thenCode, value.JoinInsn)
	elseCode, err := compile(args[2], sc)
	if err != nil {
		return nil, err
	}
	elseCode = append(elseCode, value.JoinInsn)

	return append(testCode, value.Select(thenCode, elseCode)), nil
}

// paramNames extracts a lambda's parameter list as an ordered slice of
// names, failing if the list is improper or any element isn't a
// symbol.
func paramNames(v value.Value) ([]string, error) {
	elems, err := value.ListToVec(v)
	if err != nil {
		return nil, rerr.SyntaxErrorf("lambda parameter list must be a proper list")
	}
	names := make([]string, len(elems))
	for i, e := range elems {
		sym, ok := e.(value.Symbol)
		if !ok {
			return nil, rerr.SyntaxErrorf("lambda parameters must be symbols")
		}
		names[i] = sym.Name
	}
	return names, nil
}

// compileLambda compiles (lambda (params...) body) into a MakeClosure
// over a Return-terminated body, compiled in a scope extended with one
// new innermost frame binding the parameters.
func compileLambda(rest value.Value, sc *scope) (value.Code, error) {
	args, err := takeArgs(rest, 2)
	if err != nil {
		return nil, err
	}
	params, err := paramNames(args[0])
	if err != nil {
		return nil, err
	}
	bodyScope := &scope{vars: params, parent: sc}
	bodyCode, err := compile(args[1], bodyScope)
	if err != nil {
		return nil, err
	}
	bodyCode = append(bodyCode, value.ReturnInsn)
	return value.Code{value.MakeClosure(bodyCode)}, nil
}

// compileApply compiles (f a1 a2 ... an) into code that builds an
// argument list in source order and applies f to it.
//
// The argument list is built by pushing Nil and then, for each actual
// in *reverse* source order, compiling it and emitting Cons. Because
// Cons takes the value popped first (the top of the stack) as car,
// compiling a3 then a2 then a1 (each followed by Cons) prepends onto
// the growing list in the right order, leaving (a1 a2 a3) on top.
func compileApply(fn value.Value, restArgs value.Value, sc *scope) (value.Code, error) {
	args, err := value.ListToVec(restArgs)
	if err != nil {
		return nil, rerr.ArityErrorf("arglist must be proper list")
	}

	code := value.Code{value.PushNilInsn}
	for i := len(args) - 1; i >= 0; i-- {
		argCode, err := compile(args[i], sc)
		if err != nil {
			return nil, err
		}
		code = append(code, argCode...)
		code = append(code, value.ConsInsn)
	}

	fnCode, err := compile(fn, sc)
	if err != nil {
		return nil, err
	}
	code = append(code, fnCode...)
	code = append(code, value.ApplyInsn)
	return code, nil
}

// specialFormFunc compiles the argument list of a dispatched built-in
// special form or primitive.
type specialFormFunc func(rest value.Value, sc *scope) (value.Code, error)

// specialForms maps each built-in name to its compilation rule.
var specialForms = map[string]specialFormFunc{
	"+":      opForm(value.AddInsn),
	"-":      opForm(value.SubInsn),
	"*":      opForm(value.MulInsn),
	"/":      opForm(value.DivInsn),
	"=":      opForm(value.EqInsn),
	"<":      opForm(value.LtInsn),
	">":      opForm(value.GtInsn),
	"<=":     opForm(value.LteInsn),
	">=":     opForm(value.GteInsn),
	"cons":   compileCons,
	"car":    unaryForm(value.CarInsn),
	"cdr":    unaryForm(value.CdrInsn),
	"null":   unaryForm(value.IsNullInsn),
	"atom":   unaryForm(value.IsAtomInsn),
	"if":     compileIf,
	"lambda": compileLambda,
}

func opForm(op value.Instruction) specialFormFunc {
	return func(rest value.Value, sc *scope) (value.Code, error) {
		return compileBinaryOp(rest, sc, op)
	}
}

func unaryForm(op value.Instruction) specialFormFunc {
	return func(rest value.Value, sc *scope) (value.Code, error) {
		return compileUnaryOp(rest, sc, op)
	}
}
