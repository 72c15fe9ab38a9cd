// Package jobs tracks background jobs launched by the shell and formats
// their lifecycle report lines.
package jobs

import "sync"

// Job is one background job record.
type Job struct {
	// ID is the shell-assigned job number, starting at 1.
	ID int
	// PID of the process backing the job.
	PID int
	// Cmd is the display name of the command, typically argv[0].
	Cmd string
}

// Table owns all background job records. A waiter goroutine started by Add
// retires each job once its process exits, so completed jobs never rely on
// an external polling cadence to be reaped.
type Table struct {
	mu       sync.Mutex
	nextID   int
	running  []Job
	finished []Job
}

func NewTable() *Table {
	return &Table{}
}

// Add registers a running background job and returns its job ID. If wait is
// non-nil it is invoked on a new goroutine; when it returns the job moves to
// the finished list.
func (t *Table) Add(pid int, cmd string, wait func() error) int {
	t.mu.Lock()
	t.nextID++
	job := Job{ID: t.nextID, PID: pid, Cmd: cmd}
	t.running = append(t.running, job)
	t.mu.Unlock()

	if wait != nil {
		go func() {
			// The exit status of a background job is not inspected,
			// matching the shell's foreground wait policy.
			_ = wait()
			t.retire(job.ID)
		}()
	}

	return job.ID
}

func (t *Table) retire(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, job := range t.running {
		if job.ID == id {
			t.running = append(t.running[:i], t.running[i+1:]...)
			t.finished = append(t.finished, job)
			return
		}
	}
}

// Jobs returns a snapshot of the running jobs in launch order.
func (t *Table) Jobs() []Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Job, len(t.running))
	copy(out, t.running)
	return out
}

// Finished drains and returns the jobs that completed since the last call,
// in completion order.
func (t *Table) Finished() []Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.finished
	t.finished = nil
	return out
}
