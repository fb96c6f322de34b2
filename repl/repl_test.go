package repl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunByteExactTranscript(t *testing.T) {
	in := strings.NewReader("(+ 1 2)\n\nfoo\n(car 5)\n")
	var out strings.Builder

	Run(in, &out, Options{})

	want := "> 3\n" + // (+ 1 2)
		"> " + // blank line: silently skipped, re-prompt
		"> " + // "foo": unbound variable is a compile error, printed
		"Error: unknown variable: foo\n" +
		"> Error: not a pair\n" +
		"> "
	assert.Equal(t, want, out.String())
}

func TestRunByteExactTranscriptColorOn(t *testing.T) {
	in := strings.NewReader("(+ 1 2)\n\nfoo\n(car 5)\n")
	var out strings.Builder

	Run(in, &out, Options{Color: true})

	want := "> " + resultStyle.Render("3") + "\n" +
		"> " + // blank line: silently skipped, re-prompt
		"> " + // "foo": unbound variable is a compile error, printed
		errorStyle.Render("Error: unknown variable: foo") + "\n" +
		"> " + errorStyle.Render("Error: not a pair") + "\n" +
		"> "
	assert.Equal(t, want, out.String())
}

func TestRunStopsAtEOF(t *testing.T) {
	in := strings.NewReader("")
	var out strings.Builder

	Run(in, &out, Options{})

	assert.Equal(t, Prompt, out.String())
}

func TestEvalSkipsEmptyLine(t *testing.T) {
	v, err := Eval("")
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestEvalSkipsUnparseableLine(t *testing.T) {
	v, err := Eval(")")
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestEvalReturnsCompileError(t *testing.T) {
	_, err := Eval("(+ 1)")
	assert.Error(t, err)
}

func TestEvalReturnsRuntimeError(t *testing.T) {
	_, err := Eval("(car 5)")
	assert.Error(t, err)
}

func TestEvalReturnsResult(t *testing.T) {
	v, err := Eval("(* 6 7)")
	assert.NoError(t, err)
	assert.Equal(t, "42", v.String())
}
