// Package reader parses the textual surface syntax into [value.Value]
// trees the compiler consumes. It is a single-pass, byte-at-a-time
// scanner with no separate tokenization stage — lists, numbers, and
// symbols are each read directly off the input.
package reader

import (
	"errors"
	"strconv"

	"github.com/dr8co/secd/rerr"
	"github.com/dr8co/secd/value"
)

// ErrEOF is returned by [Reader.ReadForm] when the input is exhausted
// (after skipping any trailing whitespace) without yielding a form.
var ErrEOF = errors.New("reader: end of input")

// Reader scans one string for value forms. position always indexes the
// current character (ch); readPosition indexes the next one. At end of
// input ch is 0 and position settles at len(input).
type Reader struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

// New creates a Reader positioned at the start of input.
func New(input string) *Reader {
	r := &Reader{input: input}
	r.readChar()
	return r
}

func (r *Reader) readChar() {
	if r.readPosition >= len(r.input) {
		r.ch = 0
	} else {
		r.ch = r.input[r.readPosition]
	}
	r.position = r.readPosition
	r.readPosition++
}

func (r *Reader) peekChar() byte {
	if r.readPosition >= len(r.input) {
		return 0
	}
	return r.input[r.readPosition]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDelimiter(ch byte) bool {
	return ch == 0 || ch == '(' || ch == ')' || ch == '\'' || ch == ',' || isSpace(ch)
}

func (r *Reader) skipWhitespace() {
	for isSpace(r.ch) {
		r.readChar()
	}
}

// ReadForm reads and returns exactly one form, or [ErrEOF] if only
// whitespace remains.
func (r *Reader) ReadForm() (value.Value, error) {
	r.skipWhitespace()
	switch {
	case r.ch == 0:
		return nil, ErrEOF
	case r.ch == ')':
		return nil, rerr.SyntaxErrorf("unexpected )")
	case r.ch == '(':
		return r.readList()
	case r.ch == '-' && isDigit(r.peekChar()), isDigit(r.ch):
		return r.readNumber(), nil
	default:
		return r.readSymbol(), nil
	}
}

func (r *Reader) readNumber() value.Value {
	start := r.position
	if r.ch == '-' {
		r.readChar()
	}
	for isDigit(r.ch) {
		r.readChar()
	}
	n, _ := strconv.ParseInt(r.input[start:r.position], 10, 32)
	return value.Integer{N: int32(n)}
}

func (r *Reader) readSymbol() value.Value {
	start := r.position
	for !isDelimiter(r.ch) {
		r.readChar()
	}
	name := r.input[start:r.position]
	switch name {
	case "t":
		return value.TheTrue
	case "nil":
		return value.TheNil
	default:
		return value.Symbol{Name: name}
	}
}

func (r *Reader) readList() (value.Value, error) {
	r.readChar() // consume '('
	var elems []value.Value
	for {
		r.skipWhitespace()
		if r.ch == 0 {
			return nil, rerr.SyntaxErrorf("unexpected end of input in list")
		}
		if r.ch == ')' {
			r.readChar()
			break
		}
		v, err := r.ReadForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	var out value.Value = value.TheNil
	for i := len(elems) - 1; i >= 0; i-- {
		out = value.Cons(elems[i], out)
	}
	return out, nil
}

// Read parses exactly one form from input.
func Read(input string) (value.Value, error) {
	return New(input).ReadForm()
}

// ReadAll parses every top-level form in input in order.
func ReadAll(input string) ([]value.Value, error) {
	r := New(input)
	var out []value.Value
	for {
		r.skipWhitespace()
		if r.ch == 0 {
			break
		}
		v, err := r.ReadForm()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
