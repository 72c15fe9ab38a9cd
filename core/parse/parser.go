package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// ErrSyntax reports a line the parser could not turn into a pipeline.
var ErrSyntax = errors.New("syntax error")

// Parse turns one input line into a pipeline. A blank line yields an empty
// pipeline. At most one pipe is allowed per line, and the |, <, > and &
// operators must be separated from their operands by whitespace.
func Parse(line string) (Pipeline, error) {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	background := false
	if tokens[len(tokens)-1] == "&" {
		background = true
		tokens = tokens[:len(tokens)-1]
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: nothing before '&'", ErrSyntax)
		}
	}

	stages := splitStages(tokens)
	if len(stages) > 2 {
		return nil, fmt.Errorf("%w: pipelines longer than two commands are not supported", ErrSyntax)
	}

	var pipeline Pipeline
	for i, stage := range stages {
		holder, err := buildHolder(stage)
		if err != nil {
			return nil, err
		}
		if i < len(stages)-1 {
			holder.Flags |= PipeOut
		}
		pipeline = append(pipeline, holder)
	}

	if background {
		pipeline[0].Flags |= Background
	}

	return pipeline, nil
}

func splitStages(tokens []string) [][]string {
	var stages [][]string
	start := 0
	for i, tok := range tokens {
		if tok == "|" {
			stages = append(stages, tokens[start:i])
			start = i + 1
		}
	}
	return append(stages, tokens[start:])
}

func buildHolder(tokens []string) (Holder, error) {
	var holder Holder
	var argv []string

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "<":
			if i+1 >= len(tokens) {
				return holder, fmt.Errorf("%w: missing path after '<'", ErrSyntax)
			}
			i++
			holder.RedirectIn = tokens[i]
			holder.Flags |= RedirectIn
		case ">":
			if i+1 >= len(tokens) {
				return holder, fmt.Errorf("%w: missing path after '>'", ErrSyntax)
			}
			i++
			holder.RedirectOut = tokens[i]
			holder.Flags |= RedirectOut
		default:
			argv = append(argv, tokens[i])
		}
	}

	if len(argv) == 0 {
		return holder, fmt.Errorf("%w: empty command", ErrSyntax)
	}

	cmd, err := buildCommand(argv)
	if err != nil {
		return holder, err
	}
	holder.Cmd = cmd
	return holder, nil
}

func buildCommand(argv []string) (Command, error) {
	switch argv[0] {
	case "echo":
		return Echo{Args: argv[1:]}, nil

	case "export":
		if len(argv) != 2 {
			return nil, fmt.Errorf("%w: usage: export NAME=VALUE", ErrSyntax)
		}
		name, value, _ := strings.Cut(argv[1], "=")
		if name == "" {
			return nil, fmt.Errorf("%w: usage: export NAME=VALUE", ErrSyntax)
		}
		return Export{Var: name, Value: value}, nil

	case "cd":
		switch len(argv) {
		case 1:
			return Cd{}, nil
		case 2:
			return Cd{Dir: argv[1]}, nil
		default:
			return nil, fmt.Errorf("%w: cd: too many arguments", ErrSyntax)
		}

	case "kill":
		if len(argv) != 3 {
			return nil, fmt.Errorf("%w: usage: kill SIGNUM PID", ErrSyntax)
		}
		sig, err := strconv.Atoi(strings.TrimPrefix(argv[1], "-"))
		if err != nil {
			return nil, fmt.Errorf("%w: kill: bad signal number %q", ErrSyntax, argv[1])
		}
		pid, err := strconv.Atoi(argv[2])
		if err != nil {
			return nil, fmt.Errorf("%w: kill: bad pid %q", ErrSyntax, argv[2])
		}
		return Kill{Sig: sig, Job: pid}, nil

	case "pwd":
		return Pwd{}, nil

	case "jobs":
		return Jobs{}, nil

	default:
		return Generic{Args: argv}, nil
	}
}
