package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Pipeline
	}{
		{
			name: "blank line",
			line: "   ",
			want: nil,
		},
		{
			name: "generic keeps full argv",
			line: "ls -la /tmp",
			want: Pipeline{{Cmd: Generic{Args: []string{"ls", "-la", "/tmp"}}}},
		},
		{
			name: "quoted arguments",
			line: `grep "hello world" file.txt`,
			want: Pipeline{{Cmd: Generic{Args: []string{"grep", "hello world", "file.txt"}}}},
		},
		{
			name: "echo",
			line: "echo hi there",
			want: Pipeline{{Cmd: Echo{Args: []string{"hi", "there"}}}},
		},
		{
			name: "export",
			line: "export FOO=bar",
			want: Pipeline{{Cmd: Export{Var: "FOO", Value: "bar"}}},
		},
		{
			name: "export empty value",
			line: "export FOO=",
			want: Pipeline{{Cmd: Export{Var: "FOO", Value: ""}}},
		},
		{
			name: "cd with directory",
			line: "cd /tmp",
			want: Pipeline{{Cmd: Cd{Dir: "/tmp"}}},
		},
		{
			name: "cd bare",
			line: "cd",
			want: Pipeline{{Cmd: Cd{}}},
		},
		{
			name: "kill",
			line: "kill 9 1234",
			want: Pipeline{{Cmd: Kill{Sig: 9, Job: 1234}}},
		},
		{
			name: "kill with dash signal",
			line: "kill -15 1234",
			want: Pipeline{{Cmd: Kill{Sig: 15, Job: 1234}}},
		},
		{
			name: "pwd",
			line: "pwd",
			want: Pipeline{{Cmd: Pwd{}}},
		},
		{
			name: "jobs",
			line: "jobs",
			want: Pipeline{{Cmd: Jobs{}}},
		},
		{
			name: "redirect in and out",
			line: "tr a-z A-Z < in.txt > out.txt",
			want: Pipeline{{
				Cmd:         Generic{Args: []string{"tr", "a-z", "A-Z"}},
				Flags:       RedirectIn | RedirectOut,
				RedirectIn:  "in.txt",
				RedirectOut: "out.txt",
			}},
		},
		{
			name: "two stage pipe",
			line: "echo hi | cat",
			want: Pipeline{
				{Cmd: Echo{Args: []string{"hi"}}, Flags: PipeOut},
				{Cmd: Generic{Args: []string{"cat"}}},
			},
		},
		{
			name: "background",
			line: "sleep 5 &",
			want: Pipeline{{Cmd: Generic{Args: []string{"sleep", "5"}}, Flags: Background}},
		},
		{
			name: "background pipeline flags first holder only",
			line: "echo hi | cat &",
			want: Pipeline{
				{Cmd: Echo{Args: []string{"hi"}}, Flags: Background | PipeOut},
				{Cmd: Generic{Args: []string{"cat"}}},
			},
		},
		{
			name: "pipe and output redirect both recorded",
			line: "echo hi > out.txt | cat",
			want: Pipeline{
				{
					Cmd:         Echo{Args: []string{"hi"}},
					Flags:       PipeOut | RedirectOut,
					RedirectOut: "out.txt",
				},
				{Cmd: Generic{Args: []string{"cat"}}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{name: "lone ampersand", line: "&"},
		{name: "missing redirect in path", line: "cat <"},
		{name: "missing redirect out path", line: "cat >"},
		{name: "empty pipe stage", line: "echo hi |"},
		{name: "three stage pipeline", line: "a | b | c"},
		{name: "export without assignment", line: "export FOO"},
		{name: "export without name", line: "export =bar"},
		{name: "cd too many arguments", line: "cd a b"},
		{name: "kill bad signal", line: "kill TERM 123"},
		{name: "kill bad pid", line: "kill 9 abc"},
		{name: "kill missing pid", line: "kill 9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "ls", Generic{Args: []string{"ls", "-l"}}.Name())
	assert.Equal(t, "", Generic{}.Name())
	assert.Equal(t, "echo", Echo{}.Name())
	assert.Equal(t, "export", Export{}.Name())
	assert.Equal(t, "cd", Cd{}.Name())
	assert.Equal(t, "kill", Kill{}.Name())
	assert.Equal(t, "pwd", Pwd{}.Name())
	assert.Equal(t, "jobs", Jobs{}.Name())
}
