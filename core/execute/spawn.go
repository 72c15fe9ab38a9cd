package execute

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/quash-sh/quash/core/parse"
)

// ErrOutputConflict reports a stage that both redirects stdout to a file and
// pipes it to the next stage. The two targets cannot both receive the
// output, so the stage is rejected instead of letting one silently win.
var ErrOutputConflict = errors.New("conflicting output redirect and pipe")

// process is a handle over one launched pipeline stage.
type process interface {
	Pid() int
	Wait() error
}

// execProcess is a stage backed by a real OS process.
type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}

// builtinProcess is a stage backed by a goroutine running a child-context
// builtin against the stage's wired streams.
type builtinProcess struct {
	done   chan struct{}
	status int
}

func (p *builtinProcess) Pid() int {
	// Builtins run inside the shell; there is no child to name.
	return os.Getpid()
}

func (p *builtinProcess) Wait() error {
	<-p.done
	if p.status != 0 {
		return fmt.Errorf("exit status %d", p.status)
	}
	return nil
}

// spawn launches one pipeline stage. stdinPipe is the read end of the
// previous stage's pipe, or nil. It returns the stage's process handle and,
// when the stage pipes out, the read end the next stage inherits as stdin.
//
// Descriptor discipline: every file opened here is either handed to the
// launched process and closed once duplicated, or closed before returning on
// a failure path. When a failure happens after the pipe exists, the write
// end is closed and the read end is still returned so the next stage sees
// EOF, which is what it would observe had the stage died after starting.
func (r *Runner) spawn(h parse.Holder, stdinPipe *os.File) (process, *os.File, error) {
	if h.Flags.Has(parse.PipeOut) && h.Flags.Has(parse.RedirectOut) {
		closeFile(stdinPipe)
		// The next stage still inherits a drained pipe, never the
		// shell's own stdin.
		pipeRead, _ := eofPipe()
		return nil, pipeRead, ErrOutputConflict
	}

	// Parent-context commands spawn no process; their stage only
	// participates in pipe bookkeeping so neighbouring stages see EOF.
	if isParentCommand(h.Cmd) {
		closeFile(stdinPipe)
		var pipeRead *os.File
		if h.Flags.Has(parse.PipeOut) {
			pr, err := eofPipe()
			if err != nil {
				return nil, nil, err
			}
			pipeRead = pr
		}
		return nil, pipeRead, nil
	}

	// The pipe is created before anything else, matching the order the
	// stage's descriptors become visible to its neighbours.
	var pipeRead, pipeWrite *os.File
	if h.Flags.Has(parse.PipeOut) {
		var err error
		pipeRead, pipeWrite, err = os.Pipe()
		if err != nil {
			closeFile(stdinPipe)
			return nil, nil, fmt.Errorf("failed to create pipe: %w", err)
		}
	}

	fail := func(err error, open ...*os.File) (process, *os.File, error) {
		for _, fd := range open {
			closeFile(fd)
		}
		closeFile(pipeWrite)
		return nil, pipeRead, err
	}

	// Standard input: an input redirect beats the inherited pipe, which
	// beats the shell's own stdin.
	stdin := r.Stdin
	if stdinPipe != nil {
		stdin = stdinPipe
	}
	var redirIn *os.File
	if h.Flags.Has(parse.RedirectIn) {
		fd, err := os.Open(h.RedirectIn)
		if err != nil {
			return fail(fmt.Errorf("failed to open %s: %w", h.RedirectIn, err), stdinPipe)
		}
		redirIn = fd
		stdin = fd
	}

	// Standard output: the pipe's write end, an output redirect, or the
	// shell's own stdout.
	stdout := r.Stdout
	var redirOut *os.File
	if h.Flags.Has(parse.RedirectOut) {
		fd, err := os.OpenFile(h.RedirectOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fail(fmt.Errorf("failed to open %s: %w", h.RedirectOut, err), stdinPipe, redirIn)
		}
		redirOut = fd
		stdout = fd
	}
	if pipeWrite != nil {
		stdout = pipeWrite
	}

	if generic, ok := h.Cmd.(parse.Generic); ok {
		proc, err := r.startGeneric(generic, stdin, stdout)
		// The parent's copies were duplicated into the child (or are dead
		// on a failed start); close them either way.
		closeFile(stdinPipe)
		closeFile(redirIn)
		closeFile(redirOut)
		closeFile(pipeWrite)
		if err != nil {
			return nil, pipeRead, err
		}
		return proc, pipeRead, nil
	}

	// Child-context builtin: the goroutine owns the stage's descriptors and
	// releases them when the builtin returns.
	proc := r.startBuiltin(h.Cmd, stdout, stdinPipe, redirIn, redirOut, pipeWrite)
	return proc, pipeRead, nil
}

// startGeneric replaces the stage with a real process running the named
// program with its full argument vector, argv[0] included.
func (r *Runner) startGeneric(c parse.Generic, stdin io.Reader, stdout io.Writer) (process, error) {
	if len(c.Args) == 0 {
		return nil, errors.New("no command provided")
	}

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr
	// Environment and working directory come from the adapter so a fake
	// environment carries through to spawned processes.
	cmd.Env = r.Env.Environ()
	if wd, err := r.Env.Getwd(); err == nil {
		cmd.Dir = wd
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to execute command: %w", err)
	}
	return &execProcess{cmd: cmd}, nil
}

func (r *Runner) startBuiltin(cmd parse.Command, stdout io.Writer, owned ...*os.File) process {
	p := &builtinProcess{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.status = r.childRun(cmd, stdout)
		for _, fd := range owned {
			closeFile(fd)
		}
	}()
	return p
}

// eofPipe returns the read end of a pipe whose write end is already closed,
// so any reader observes immediate EOF.
func eofPipe() (*os.File, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	pw.Close()
	return pr, nil
}

func closeFile(fd *os.File) {
	if fd != nil {
		fd.Close()
	}
}
