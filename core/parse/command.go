// Package parse defines the shell's command data model and turns input
// lines into executable pipelines.
package parse

// Command is one parsed shell command. The set of implementations is closed;
// dispatch over a Command is an exhaustive type switch, never a tag compare.
type Command interface {
	// Name returns the display name of the command, argv[0] for external
	// programs and the builtin keyword otherwise.
	Name() string
}

// Generic is an external program invocation. Args holds the full argument
// vector including the program as Args[0].
type Generic struct {
	Args []string
}

func (c Generic) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Echo prints its arguments.
type Echo struct {
	Args []string
}

func (Echo) Name() string { return "echo" }

// Export sets an environment variable in the shell's own process.
type Export struct {
	Var   string
	Value string
}

func (Export) Name() string { return "export" }

// Cd changes the shell's working directory. An empty Dir means no directory
// was given; the dispatcher substitutes $HOME.
type Cd struct {
	Dir string
}

func (Cd) Name() string { return "cd" }

// Kill delivers signal Sig to process Job. The target is not validated to
// belong to a job this shell launched.
type Kill struct {
	Sig int
	Job int
}

func (Kill) Name() string { return "kill" }

// Pwd prints the shell's working directory.
type Pwd struct{}

func (Pwd) Name() string { return "pwd" }

// Jobs lists the running background jobs.
type Jobs struct{}

func (Jobs) Name() string { return "jobs" }

// Flags is the set of I/O wiring flags attached to one pipeline stage.
type Flags uint8

const (
	// Background runs the whole pipeline without waiting. It is read only
	// from the first holder and applies to every stage.
	Background Flags = 1 << iota
	// PipeOut feeds this stage's stdout to the next stage's stdin.
	PipeOut
	// RedirectIn reads stdin from Holder.RedirectIn.
	RedirectIn
	// RedirectOut truncates or creates Holder.RedirectOut for stdout.
	RedirectOut
)

// Has reports whether flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Holder is a single pipeline stage: one command plus its I/O wiring.
type Holder struct {
	Cmd         Command
	Flags       Flags
	RedirectIn  string
	RedirectOut string
}

// Pipeline is the ordered list of stages for one shell input line. An empty
// pipeline is a no-op line.
type Pipeline []Holder
