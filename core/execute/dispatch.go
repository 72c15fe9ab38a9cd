// Package execute runs parsed pipelines: it wires redirections and pipes,
// launches a process per stage, routes builtins to the parent or child
// execution context, and applies the pipeline's wait policy.
package execute

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/quash-sh/quash/core/env"
	"github.com/quash-sh/quash/core/jobs"
	"github.com/quash-sh/quash/core/parse"
)

// JobTable is the external owner of background job records. The runner only
// registers new jobs and drains completions; it never deletes or reorders
// records itself.
type JobTable interface {
	// Add registers a background job and returns its job ID. The table
	// waits on wait to observe the job's completion.
	Add(pid int, cmd string, wait func() error) int
	// Jobs returns a snapshot of the running jobs.
	Jobs() []jobs.Job
	// Finished drains the jobs that completed since the last call.
	Finished() []jobs.Job
}

var _ JobTable = (*jobs.Table)(nil)

// Runner executes pipelines against an environment, a job table, and the
// shell's standard streams.
type Runner struct {
	Env  env.Env
	Jobs JobTable

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// childRun executes the builtin half of the child context against the wired
// streams for its stage. Generic commands never reach here; the orchestrator
// execs them as real processes. The switch is exhaustive over the command
// variants: the parent-only ones share the unknown-command diagnostic the
// child context gives anything it cannot run.
func (r *Runner) childRun(cmd parse.Command, stdout io.Writer) int {
	switch c := cmd.(type) {
	case parse.Echo:
		return runEcho(c, stdout)
	case parse.Pwd:
		return r.runPwd(stdout)
	case parse.Jobs:
		return r.runJobs(stdout)
	default:
		fmt.Fprintf(r.Stderr, "quash: unknown command type: %s\n", cmd.Name())
		return 1
	}
}

// parentRun executes the commands whose effects must land in the shell's own
// process: running them in a spawned context would make the mutation
// invisible to every future command. Child-context commands are an explicit
// no-op here.
func (r *Runner) parentRun(cmd parse.Command) {
	switch c := cmd.(type) {
	case parse.Export:
		r.runExport(c)
	case parse.Cd:
		r.runCd(c)
	case parse.Kill:
		r.runKill(c)
	case parse.Generic, parse.Echo, parse.Pwd, parse.Jobs:
		// Handled in the child context.
	}
}

// isParentCommand reports whether cmd runs in the shell's own process.
func isParentCommand(cmd parse.Command) bool {
	switch cmd.(type) {
	case parse.Export, parse.Cd, parse.Kill:
		return true
	}
	return false
}

func runEcho(c parse.Echo, w io.Writer) int {
	for _, arg := range c.Args {
		fmt.Fprintf(w, "%s ", arg)
	}
	fmt.Fprintln(w)
	return 0
}

func (r *Runner) runPwd(w io.Writer) int {
	wd, err := r.Env.Getwd()
	if err != nil {
		fmt.Fprintf(r.Stderr, "quash: failed to get current directory: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, wd)
	return 0
}

func (r *Runner) runJobs(w io.Writer) int {
	for _, j := range r.Jobs.Jobs() {
		jobs.PrintJob(w, j)
	}
	return 0
}

func (r *Runner) runExport(c parse.Export) {
	if err := r.Env.Setenv(c.Var, c.Value); err != nil {
		fmt.Fprintf(r.Stderr, "quash: failed to set environment variable: %v\n", err)
	}
}

func (r *Runner) runCd(c parse.Cd) {
	dir := c.Dir
	if dir == "" {
		dir = r.Env.Getenv(env.EnvHome)
	}
	if dir == "" {
		fmt.Fprintln(r.Stderr, "quash: cd: failed to resolve path")
		return
	}

	if err := r.Env.Chdir(dir); err != nil {
		fmt.Fprintf(r.Stderr, "quash: cd: %v\n", err)
	}
}

func (r *Runner) runKill(c parse.Kill) {
	if err := unix.Kill(c.Job, unix.Signal(c.Sig)); err != nil {
		fmt.Fprintf(r.Stderr, "quash: kill: failed to send signal: %v\n", err)
	}
}
