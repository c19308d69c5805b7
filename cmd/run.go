package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steshaw/golisp/bootstrap"
	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/repl"
)

var runRepl bool

// runCmd loads and evaluates one or more files of source text on startup
// (spec.md §1's "loading and evaluating a file of source text on startup").
// Each top-level form is evaluated in order; the values are not printed,
// and the first read or evaluation error stops the run.
var runCmd = &cobra.Command{
	Use:   "run [file ...]",
	Short: "Load and evaluate lisp source files",
	Long:  "Load and evaluate one or more files of lisp source, form by form, without printing the values, then optionally drop into the REPL with the resulting environment.",
	Run: func(cmd *cobra.Command, args []string) {
		in := lisp.New()
		if err := bootstrap.Load(in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, path := range args {
			if err := runFile(in, path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		if runRepl {
			repl.RunRepl(in, "golisp> ")
		}
	},
}

func runFile(in *lisp.Interp, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if lerr := bootstrap.LoadString(in, string(src)); lerr != nil {
		return fmt.Errorf("%s: %w", path, lerr)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runRepl, "repl", "i", false,
		"drop into an interactive REPL after loading the given files")
}
