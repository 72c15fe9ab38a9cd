package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds the commands the REPL itself intercepts before any
// pipeline is built. Built-ins that affect pipelines (cd, export, kill,
// jobs, ...) live in the dispatcher instead.
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Exit quits the shell after the current line.
func Exit(s *Shell, args []string) int {
	s.quit = true
	return 0
}

func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Runner.Stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "Display or manipulate the history list.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return 1
	}

	if *clear {
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.Runner.Stdout, "% 5d  %s\n", i+1, line)
	}
	return 0
}

func Help(s *Shell, args []string) int {
	w := s.Runner.Stdout
	fmt.Fprintln(w, "quash, quite a shell")
	fmt.Fprintln(w, "These commands are handled by the shell itself:")
	fmt.Fprintln(w)

	var builtins []string
	for k := range AllBuiltins {
		builtins = append(builtins, k)
	}
	sort.Strings(builtins)

	fmt.Fprintln(w, strings.Join(builtins, "\n"))
	return 0
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["quit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
}
