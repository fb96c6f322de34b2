// Command secd compiles and runs a small Lisp-like language on an
// SECD-style virtual machine. Without flags it starts an interactive
// REPL; -e evaluates a single expression; -f runs every top-level form
// in a file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dr8co/secd/compiler"
	"github.com/dr8co/secd/reader"
	"github.com/dr8co/secd/repl"
	"github.com/dr8co/secd/vm"
)

const version = "0.1.0"

func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, `secd v%s

USAGE:
    %s [OPTIONS]

DESCRIPTION:
    secd compiles and runs a small Lisp-like language on an SECD-style
    virtual machine. Without any flags, it starts an interactive
    read-eval-print loop.

OPTIONS:
    -f, --file <path>    Run every top-level form in a file
    -e, --eval <code>    Evaluate a single expression and print the result
    --color              Enable colored REPL output
    -v, --version        Show version information
    -h, --help           Show this help message

EXAMPLES:
    %s
    %s -f program.secd
    %s -e "(+ (* 3 3) (* 4 4))"

`, version, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func main() {
	flag.Usage = printUsage

	fileFlag := flag.String("file", "", "run every top-level form in a file")
	evalFlag := flag.String("eval", "", "evaluate a single expression")
	colorFlag := flag.Bool("color", false, "enable colored REPL output")
	versionFlag := flag.Bool("version", false, "show version information")

	flag.StringVar(fileFlag, "f", "", "run every top-level form in a file")
	flag.StringVar(evalFlag, "e", "", "evaluate a single expression")
	flag.BoolVar(versionFlag, "v", false, "show version information")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("secd v%s\n", version)
		return
	}

	if *fileFlag != "" {
		runFile(*fileFlag, *colorFlag)
		return
	}

	if *evalFlag != "" {
		runEval(*evalFlag, *colorFlag)
		return
	}

	repl.Run(os.Stdin, os.Stdout, repl.Options{Color: *colorFlag})
}

// runFile reads filename and runs each top-level form it contains
// under its own fresh machine, in order. Each form gets the same
// per-form isolation the REPL gives each line: a compile or run error
// is printed and the next form starts with a fresh machine rather than
// aborting the rest of the file.
func runFile(filename string, color bool) {
	//nolint:gosec // reading a user-supplied script path is the point
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
		os.Exit(1)
	}

	forms, err := reader.ReadAll(string(content))
	if err != nil {
		fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
		os.Exit(1)
	}

	for _, form := range forms {
		code, err := compiler.Compile(form)
		if err != nil {
			fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
			continue
		}
		result, err := vm.Run(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
			continue
		}
		fmt.Println(repl.FormatResult(result, color))
	}
}

func runEval(src string, color bool) {
	expr, err := reader.Read(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
		os.Exit(1)
	}
	code, err := compiler.Compile(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
		os.Exit(1)
	}
	result, err := vm.Run(code)
	if err != nil {
		fmt.Fprintln(os.Stderr, repl.FormatError(err, color))
		os.Exit(1)
	}
	fmt.Println(repl.FormatResult(result, color))
}
