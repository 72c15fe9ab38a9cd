package shell

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quash-sh/quash/core/config"
	"github.com/quash-sh/quash/core/env"
	"github.com/quash-sh/quash/core/execute"
	"github.com/quash-sh/quash/core/jobs"
)

func newTestShell(t *testing.T) (*Shell, *env.MapEnv, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/user", 0755))
	e := env.NewMapEnv(fs)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	s := &Shell{
		Env:    e,
		Config: config.Default(),
		Runner: &execute.Runner{
			Env:    e,
			Jobs:   jobs.NewTable(),
			Stdout: stdout,
			Stderr: stderr,
		},
	}
	return s, e, stdout, stderr
}

func TestPromptExpansion(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	s, e, _, _ := newTestShell(t)
	require.NoError(t, e.Setenv(env.EnvUser, "alice"))
	require.NoError(t, e.Setenv(env.EnvHostname, "box"))
	require.NoError(t, e.Setenv(env.EnvHome, "/home/user"))
	require.NoError(t, e.Setenv(env.EnvPrompt, `\u@\h:\w\$ `))
	require.NoError(t, e.Chdir("/home/user"))

	got := s.Prompt()
	assert.Contains(t, got, "alice@box")
	// The home directory collapses to ~.
	assert.Contains(t, got, ":~")
	assert.NotContains(t, got, "/home/user")
}

func TestInitSeedsEnvironment(t *testing.T) {
	s, e, _, _ := newTestShell(t)
	s.Init()

	assert.Equal(t, config.DefaultPath, e.Getenv(env.EnvPath))
	assert.Equal(t, config.DefaultPrompt, e.Getenv(env.EnvPrompt))
	assert.Equal(t, "/", e.Getenv(env.EnvPWD))
}

func TestInitKeepsExistingPath(t *testing.T) {
	s, e, _, _ := newTestShell(t)
	require.NoError(t, e.Setenv(env.EnvPath, "/custom/bin"))
	s.Init()

	assert.Equal(t, "/custom/bin", e.Getenv(env.EnvPath))
}

func TestHistoryPathRequiresHome(t *testing.T) {
	s, e, _, _ := newTestShell(t)

	// Without HOME the history must not land in the starting directory.
	assert.Empty(t, s.historyPath())

	require.NoError(t, e.Setenv(env.EnvHome, "/home/user"))
	assert.Equal(t, "/home/user/"+config.DefaultHistoryFile, s.historyPath())

	s.Config.HistoryFile = ""
	assert.Empty(t, s.historyPath())
}

func TestEvalRunsPipelines(t *testing.T) {
	s, _, stdout, stderr := newTestShell(t)

	s.Eval("echo hello")
	assert.Equal(t, "hello \n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestEvalReportsSyntaxErrors(t *testing.T) {
	s, _, _, stderr := newTestShell(t)

	s.Eval("cat <")
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestExitBuiltin(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	s.Eval("exit")
	assert.True(t, s.quit)
}

func TestHistoryBuiltin(t *testing.T) {
	s, _, stdout, _ := newTestShell(t)

	s.Eval("echo one")
	s.Eval("history")

	out := stdout.String()
	assert.Contains(t, out, "echo one")
	assert.Contains(t, out, "history")
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"exit", "quit", "help", "history"} {
		assert.Contains(t, AllBuiltins, name)
	}
}
