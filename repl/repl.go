// Package repl implements the read-eval-print loop: a line-oriented
// driver over [reader.Read], [compiler.Compile], and [vm.Run].
//
// Unlike the interactive terminal UI this is adapted from, the loop
// here is a plain blocking read over an io.Reader so that it behaves
// identically whether stdin is a terminal or a pipe. Color is opt-in
// styling only; it never changes which lines are printed.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dr8co/secd/compiler"
	"github.com/dr8co/secd/reader"
	"github.com/dr8co/secd/value"
	"github.com/dr8co/secd/vm"
)

// Prompt is printed before each line is read, with no trailing
// newline.
const Prompt = "> "

// Options configures the loop's presentation. It never affects which
// lines are read or what gets printed on them, only how.
type Options struct {
	// Color enables lipgloss-styled results and errors.
	Color bool
}

var (
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// Run reads lines from in until EOF, evaluating each and writing its
// result or error to out.
func Run(in io.Reader, out io.Writer, opts Options) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			return
		}
		result, err := Eval(scanner.Text())
		switch {
		case err != nil:
			printError(out, err, opts)
		case result != nil:
			printResult(out, result, opts)
		}
		// result == nil, err == nil: the line was empty or didn't
		// parse into a form; skip it silently.
	}
}

// Eval compiles and runs one line. It returns (nil, nil) for a line
// that is empty or doesn't parse into a form — the caller should skip
// such a line silently rather than report an error.
func Eval(line string) (value.Value, error) {
	expr, err := reader.Read(line)
	if err != nil {
		return nil, nil
	}
	code, err := compiler.Compile(expr)
	if err != nil {
		return nil, err
	}
	return vm.Run(code)
}

func printResult(out io.Writer, v value.Value, opts Options) {
	fmt.Fprintln(out, FormatResult(v, opts.Color))
}

func printError(out io.Writer, err error, opts Options) {
	fmt.Fprintln(out, FormatError(err, opts.Color))
}

// FormatResult renders a result value the way the loop prints it, so
// the CLI's -e/-f modes can share the same styling as the REPL.
func FormatResult(v value.Value, color bool) string {
	s := v.String()
	if color {
		s = resultStyle.Render(s)
	}
	return s
}

// FormatError renders an error the way the loop prints it, so the
// CLI's -e/-f modes can share the same styling as the REPL.
func FormatError(err error, color bool) string {
	msg := fmt.Sprintf("Error: %s", err.Error())
	if color {
		msg = errorStyle.Render(msg)
	}
	return msg
}
