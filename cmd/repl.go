package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cfgs/common"
	"cfgs/logging"
	"cfgs/syntax"
	"cfgs/walk"

	"github.com/peterh/liner"
)

const (
	promptMain = "cfgs> "
	promptCont = "  ... "
)

const replHelp = `$help                 show this message
$exit                 leave the REPL
$clear                clear the screen
$load <file>          load the declarations of a file
$call <name(args)>    call a function and print its result
$reset                discard all variables and declarations`

// prompter reads a line of input after displaying a prompt
type prompter interface {
	Prompt(prompt string) (string, error)
}

// repl is an interactive session.  All inputs share a single interpreter
// until the session is reset.
type repl struct {
	in  *walk.Interpreter
	rc  *runConfig
	out io.Writer
}

func newREPL(rc *runConfig) *repl {
	return &repl{in: rc.newInterpreter(), rc: rc, out: rc.out}
}

// runREPL runs an interactive session on the terminal until the user exits
func runREPL(rc *runConfig) {
	logging.PrintInfoMessage("CFGS v"+common.CFGSVersion, "type $help for a list of commands")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := common.HistoryFileName
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, common.HistoryFileName)
	}

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	r := newREPL(rc)
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if !r.handle(input) {
			return
		}
	}
}

// readInput reads a complete input.  Lines are accumulated for as long as
// the parser reports that the input is incomplete.  REPL commands are always
// a single line.  The second return is false at the end of the input.
func readInput(p prompter) (string, bool) {
	var sb strings.Builder

	for {
		prompt := promptMain
		if sb.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) && sb.Len() > 0 {
				// abandon the current input only
				sb.Reset()
				continue
			}

			return "", false
		}

		if sb.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), "$") {
			return line, true
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		src := sb.String()
		if _, err := syntax.ParseSource(src); err != nil {
			if f, ok := err.(*logging.Fault); ok && f.Incomplete {
				continue
			}
		}

		return src, true
	}
}

// handle processes a single input.  It returns false when the session should
// end.
func (r *repl) handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "$") {
		if err := r.in.RunSource(input); err != nil {
			logging.LogScriptError(&logging.LogContext{Source: input}, err)
		}

		return true
	}

	command, arg := trimmed, ""
	if ndx := strings.IndexAny(trimmed, " \t"); ndx > -1 {
		command, arg = trimmed[:ndx], strings.TrimSpace(trimmed[ndx+1:])
	}

	switch strings.ToLower(command) {
	case "$help":
		fmt.Fprintln(r.out, replHelp)
	case "$exit":
		return false
	case "$clear":
		fmt.Fprint(r.out, "\x1b[H\x1b[2J")
	case "$load":
		if arg == "" {
			logging.LogConfigError("REPL", "usage: $load <file>")
		} else if err := r.in.LoadFile(arg); err != nil {
			logging.LogScriptError(&logging.LogContext{FilePath: arg}, err)
		}
	case "$call":
		if arg == "" {
			logging.LogConfigError("REPL", "usage: $call <name(args)>")
		} else if err := evalCall(r.in, arg, "", r.out); err != nil {
			logging.LogScriptError(&logging.LogContext{Source: arg}, err)
		}
	case "$reset":
		r.in = r.rc.newInterpreter()
	default:
		logging.LogConfigError("REPL", fmt.Sprintf("unknown command `%s`; type $help for a list of commands", command))
	}

	return true
}
