// Package shell implements the interactive read-eval-print loop on top of
// the pipeline runner.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"

	"github.com/quash-sh/quash/core/config"
	"github.com/quash-sh/quash/core/env"
	"github.com/quash-sh/quash/core/execute"
	"github.com/quash-sh/quash/core/jobs"
	"github.com/quash-sh/quash/core/parse"
)

var (
	colorUserHost = color.New(color.FgGreen, color.Bold)
	colorWorkDir  = color.New(color.FgBlue, color.Bold)
)

type Shell struct {
	Env      env.Env
	Runner   *execute.Runner
	Config   *config.Configuration
	Readline *readline.Instance

	history []string
	quit    bool
}

// New builds an interactive shell over the OS standard streams.
func New(cfg *config.Configuration, e env.Env, table *jobs.Table) (*Shell, error) {
	s := &Shell{
		Env:    e,
		Config: cfg,
		Runner: &execute.Runner{
			Env:    e,
			Jobs:   table,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	}
	s.Init()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      s.Prompt(),
		HistoryFile: s.historyPath(),
	})
	if err != nil {
		return nil, err
	}
	s.Readline = rl

	return s, nil
}

// Init fills in the environment variables the shell relies on when the
// login environment left them unset.
func (s *Shell) Init() {
	if _, ok := s.Env.LookupEnv(env.EnvPath); !ok {
		_ = s.Env.Setenv(env.EnvPath, s.Config.DefaultPath)
	}
	if _, ok := s.Env.LookupEnv(env.EnvPrompt); !ok {
		_ = s.Env.Setenv(env.EnvPrompt, s.Config.Prompt)
	}
	if _, ok := s.Env.LookupEnv(env.EnvHostname); !ok {
		if host, err := os.Hostname(); err == nil {
			_ = s.Env.Setenv(env.EnvHostname, host)
		}
	}
	if wd, err := s.Env.Getwd(); err == nil {
		_ = s.Env.Setenv(env.EnvPWD, wd)
	}
}

// historyPath resolves the on-disk history file under $HOME. History is not
// persisted when no file is configured or HOME is unset, rather than
// scattering history files over whatever directory the shell starts in.
func (s *Shell) historyPath() string {
	if s.Config.HistoryFile == "" {
		return ""
	}
	home, ok := s.Env.LookupEnv(env.EnvHome)
	if !ok || home == "" {
		return ""
	}
	return filepath.Join(home, s.Config.HistoryFile)
}

// Prompt renders the PS1 template.
func (s *Shell) Prompt() string {
	prompt := s.Env.Getenv(env.EnvPrompt)
	if prompt == "" {
		prompt = s.Config.Prompt
	}

	prompt = strings.ReplaceAll(prompt, `\u`, colorUserHost.Sprint(s.Env.Getenv(env.EnvUser)))
	prompt = strings.ReplaceAll(prompt, `\h`, colorUserHost.Sprint(s.Env.Getenv(env.EnvHostname)))

	pwd, _ := s.Env.Getwd()
	if home := s.Env.Getenv(env.EnvHome); home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, colorWorkDir.Sprint(pwd))

	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

// Run loops reading lines until EOF or the exit builtin.
func (s *Shell) Run() error {
	for !s.quit {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue
		}

		s.Eval(line)
	}
	return nil
}

// Eval runs one input line.
func (s *Shell) Eval(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	s.history = append(s.history, line)

	fields := strings.Fields(line)
	if builtin, ok := AllBuiltins[fields[0]]; ok {
		builtin.Main(s, fields)
		return
	}

	pipeline, err := parse.Parse(line)
	if err != nil {
		fmt.Fprintf(s.Runner.Stderr, "quash: %v\n", err)
		return
	}
	s.Runner.Run(pipeline)
}

func (s *Shell) Close() error {
	if s.Readline != nil {
		return s.Readline.Close()
	}
	return nil
}
