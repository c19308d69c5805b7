// Package repl implements the interactive prompt loop spec.md §1 and §9
// name as an external collaborator to the interpreter core: line editing,
// a history file, and tab-completion over the current environment's
// bindings. Grounded directly on the teacher's repl/repl.go (readline
// construction, continuation-prompt handling on an incomplete form,
// interrupt handling), extended with a completer type implementing
// readline's AutoCompleter over lisp.EnvNames — a feature the teacher's
// repl has no analogue for.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/reader"
)

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".golisp_history"
	}
	return filepath.Join(home, ".golisp_history")
}

// completer rebuilds its candidate list from in's root environment on
// every keystroke readline asks for one, so names DEFINEd during the
// session are immediately tab-completable.
type completer struct {
	in *lisp.Interp
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	word, start := lastWord(line, pos)
	if word == "" {
		return nil, 0
	}
	upper := strings.ToUpper(word)
	var matches [][]rune
	for _, name := range lisp.EnvNames(c.in.Root) {
		if strings.HasPrefix(name, upper) {
			matches = append(matches, []rune(name[len(upper):]))
		}
	}
	return matches, pos - start
}

func lastWord(line []rune, pos int) (string, int) {
	start := pos
	for start > 0 && !isDelimRune(line[start-1]) {
		start--
	}
	return string(line[start:pos]), start
}

func isDelimRune(r rune) bool {
	return r == '(' || r == ')' || r == ' ' || r == '\t' || r == '\n'
}

// RunRepl runs the interactive prompt loop against in until end-of-input
// or the user interrupts it. Multi-line forms are supported: when a
// partial read leaves an unclosed "(", the continuation prompt (the same
// width as prompt, blank, matching the teacher's strings.Repeat(" ",
// len(prompt))) is shown until the form completes.
func RunRepl(in *lisp.Interp, prompt string) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile(),
		AutoComplete:    &completer{in: in},
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	contPrompt := strings.Repeat(" ", len(prompt))

	var buf string
	var line string
	for {
		line, err = rl.Readline()
		if err == readline.ErrInterrupt {
			buf = ""
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			break
		}
		if buf != "" {
			buf += "\n" + line
		} else {
			buf = line
		}
		if strings.TrimSpace(buf) == ":q" {
			errln("bye")
			break
		}
		if strings.TrimSpace(buf) == "" {
			buf = ""
			continue
		}

		rest, ok := evalAll(in, buf)
		if ok {
			buf = ""
			rl.SetPrompt(prompt)
			continue
		}
		// A dangling open form: keep buffering and show the continuation
		// prompt, the same way the teacher's repl does on an incomplete
		// parse.
		buf = rest
		rl.SetPrompt(contPrompt)
	}

	if err != nil && err != io.EOF {
		errln(err)
		return
	}

	// A final collection at the top-level evaluator's exit, per spec.md
	// §4.6 and §5, so no heap garbage from the session lingers afterward.
	in.Collect(lisp.Nil, in.Root, nil)
}

// evalAll reads and evaluates every complete top-level form in src,
// printing each result. It returns (remainder, true) once src is
// exhausted of complete forms with nothing left but whitespace, or
// (remainder, false) if src ends mid-form and more input is needed.
// remainder is only the text of the not-yet-evaluated tail: forms already
// read and evaluated earlier in src must not be handed back, or the next
// call would read and evaluate them a second time.
func evalAll(in *lisp.Interp, src string) (string, bool) {
	p := reader.New(in, src)
	for {
		unread := p.Rest()
		v, err, eof := p.ReadExpr()
		if eof {
			return "", true
		}
		if err != nil {
			if reader.Incomplete(err) {
				// The form starting at unread isn't finished yet; ask for
				// another line and resume parsing from there, not from the
				// start of src, since everything before unread was already
				// evaluated above.
				return unread, false
			}
			errln(err)
			return "", true
		}
		result, err := lisp.Eval(in, v, in.Root)
		if err != nil {
			errln(err)
			continue
		}
		fmt.Println(lisp.Print(result))
	}
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
