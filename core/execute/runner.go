package execute

import (
	"fmt"
	"os"

	"github.com/quash-sh/quash/core/jobs"
	"github.com/quash-sh/quash/core/parse"
)

type spawned struct {
	proc process
	name string
}

// Run executes one pipeline. Pending background-job completions are
// reported first, then every stage is launched in order. Unless the
// pipeline is a background job, Run blocks until every launched stage has
// exited; otherwise the stages are registered with the job table and Run
// returns immediately.
//
// Stage failures are reported to stderr and never abort the pipeline or the
// shell; a failed stage contributes no process and none of its effects run.
func (r *Runner) Run(pipeline parse.Pipeline) {
	if len(pipeline) == 0 {
		return
	}

	r.CheckBackgroundJobs()

	var procs []spawned
	var nextStdin *os.File
	for _, holder := range pipeline {
		proc, pipeRead, err := r.spawn(holder, nextStdin)
		nextStdin = pipeRead
		if err != nil {
			// A rejected holder runs in neither context.
			fmt.Fprintf(r.Stderr, "quash: %s: %v\n", holder.Cmd.Name(), err)
			continue
		}
		if proc != nil {
			procs = append(procs, spawned{proc: proc, name: holder.Cmd.Name()})
		}

		r.parentRun(holder.Cmd)
	}
	// A trailing pipe read end has no consumer.
	closeFile(nextStdin)

	if pipeline[0].Flags.Has(parse.Background) {
		for _, s := range procs {
			job := jobs.Job{PID: s.proc.Pid(), Cmd: s.name}
			job.ID = r.Jobs.Add(job.PID, job.Cmd, s.proc.Wait)
			jobs.PrintJobStart(r.Stdout, job)
		}
		return
	}

	for _, s := range procs {
		// Exit statuses are not inspected; foreground failure detection
		// is out of scope for the shell itself.
		_ = s.proc.Wait()
	}
}

// CheckBackgroundJobs reports every background job that completed since the
// last check, in the order the job table yields them. The runner calls this
// before spawning anything so stale completion messages land ahead of new
// process output.
func (r *Runner) CheckBackgroundJobs() {
	for _, j := range r.Jobs.Finished() {
		jobs.PrintJobComplete(r.Stdout, j)
	}
}
