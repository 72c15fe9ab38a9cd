package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quash-sh/quash/core/env"
	"github.com/quash-sh/quash/core/execute"
	"github.com/quash-sh/quash/core/jobs"
	"github.com/quash-sh/quash/core/parse"
)

// scriptCmd runs a flat list of command lines from a file, one pipeline per
// line, without the interactive loop.
var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run commands from a file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		runner := &execute.Runner{
			Env:    env.NewOSEnv(),
			Jobs:   jobs.NewTable(),
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		}

		scanner := bufio.NewScanner(fd)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			pipeline, err := parse.Parse(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "quash: %v\n", err)
				continue
			}
			runner.Run(pipeline)
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		// Report any background jobs that finished during the run.
		runner.CheckBackgroundJobs()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}
