package jobs

import (
	"fmt"
	"io"
)

// PrintJob writes the tab-aligned job status line. Writers are expected to
// be unbuffered so the line is visible before any process output that
// follows it.
func PrintJob(w io.Writer, j Job) {
	fmt.Fprintf(w, "[%d]\t%8d\t%s\n", j.ID, j.PID, j.Cmd)
}

// PrintJobStart writes the launch announcement for a background job.
func PrintJobStart(w io.Writer, j Job) {
	fmt.Fprint(w, "Background job started: ")
	PrintJob(w, j)
}

// PrintJobComplete writes the completion announcement for a background job.
func PrintJobComplete(w io.Writer, j Job) {
	fmt.Fprint(w, "Completed: \t")
	PrintJob(w, j)
}
