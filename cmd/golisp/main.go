// Command golisp is the CLI entry point: a version banner, a `run`
// subcommand that loads source files on startup, and (with no arguments)
// the interactive REPL. spec.md §1 treats all three as external
// collaborators to the interpreter core in lisp/ and reader/.
package main

import "github.com/steshaw/golisp/cmd"

func main() {
	cmd.Execute()
}
