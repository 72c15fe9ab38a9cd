package jobs

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAddAssignsSequentialIDs(t *testing.T) {
	table := NewTable()

	assert.Equal(t, 1, table.Add(100, "sleep", nil))
	assert.Equal(t, 2, table.Add(101, "cat", nil))

	running := table.Jobs()
	require.Len(t, running, 2)
	assert.Equal(t, Job{ID: 1, PID: 100, Cmd: "sleep"}, running[0])
	assert.Equal(t, Job{ID: 2, PID: 101, Cmd: "cat"}, running[1])
}

func TestTableLifecycle(t *testing.T) {
	table := NewTable()

	exited := make(chan struct{})
	id := table.Add(42, "sleep", func() error {
		<-exited
		return nil
	})

	require.Len(t, table.Jobs(), 1)
	assert.Empty(t, table.Finished())

	close(exited)

	require.Eventually(t, func() bool {
		return len(table.Jobs()) == 0
	}, time.Second, 5*time.Millisecond)

	finished := table.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, Job{ID: id, PID: 42, Cmd: "sleep"}, finished[0])

	// A second poll yields nothing; the first drained the queue.
	assert.Empty(t, table.Finished())
}

func TestTableFinishedOrder(t *testing.T) {
	table := NewTable()

	first := make(chan struct{})
	second := make(chan struct{})
	table.Add(1, "a", func() error { <-first; return nil })
	table.Add(2, "b", func() error { <-second; return nil })

	close(second)
	require.Eventually(t, func() bool {
		return len(table.Jobs()) == 1
	}, time.Second, 5*time.Millisecond)
	close(first)
	require.Eventually(t, func() bool {
		return len(table.Jobs()) == 0
	}, time.Second, 5*time.Millisecond)

	finished := table.Finished()
	require.Len(t, finished, 2)
	assert.Equal(t, "b", finished[0].Cmd)
	assert.Equal(t, "a", finished[1].Cmd)
}

func TestPrintJobFormat(t *testing.T) {
	var buf bytes.Buffer
	PrintJob(&buf, Job{ID: 3, PID: 77, Cmd: "cat"})

	assert.Equal(t, "[3]\t      77\tcat\n", buf.String())
}

func TestReportLinesGolden(t *testing.T) {
	var buf bytes.Buffer
	PrintJobStart(&buf, Job{ID: 1, PID: 4242, Cmd: "sleep"})
	PrintJob(&buf, Job{ID: 2, PID: 77, Cmd: "cat"})
	PrintJobComplete(&buf, Job{ID: 1, PID: 4242, Cmd: "sleep"})

	g := goldie.New(t)
	g.Assert(t, "report_lines", buf.Bytes())
}
