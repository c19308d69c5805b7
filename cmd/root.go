// Package cmd implements golisp's command-line surface: the root command
// (version banner, launches the REPL with no arguments) and the `run`
// subcommand (loads and evaluates a file of source text on startup).
// Both are named as external collaborators in spec.md §1, outside the
// interpreter core. Grounded on the teacher's cmd/run.go: the same
// spf13/cobra root-command-plus-subcommand shape.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steshaw/golisp/bootstrap"
	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/repl"
)

var rootCmd = &cobra.Command{
	Use:     "golisp",
	Short:   "golisp is a small Lisp interpreter",
	Long:    "golisp is a small Lisp interpreter: a tagged-value reader, a trampolined evaluator, and a mark-and-sweep garbage collector.",
	Version: bannerVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Banner())
		in := lisp.New()
		if err := bootstrap.Load(in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		repl.RunRepl(in, "golisp> ")
	},
}

// Execute runs golisp's root command, exiting the process on error the
// way a generated cobra scaffold does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
