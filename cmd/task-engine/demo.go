package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kubev2v/task-engine/internal/config"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

var (
	executingColor = color.New(color.FgYellow)
	completedColor = color.New(color.FgGreen)
	stepColor      = color.New(color.FgCyan, color.Bold)
)

// printTask writes one line when it executes and one when it completes.
type printTask struct {
	id  int
	out io.Writer
}

func (t *printTask) Execute() {
	_, _ = executingColor.Fprintf(t.out, "executing %d\n", t.id)
}

func (t *printTask) Complete() {
	_, _ = completedColor.Fprintf(t.out, "completed %d\n", t.id)
}

type demoWaits struct {
	first  time.Duration
	second time.Duration
}

func newDemoCommand(cfg *config.Configuration) *cobra.Command {
	waits := demoWaits{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Submit a scripted batch of print tasks and run them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := newPool(cfg)
			if err != nil {
				return err
			}
			runDemo(pool, cmd.OutOrStdout(), waits)
			return nil
		},
	}

	cmd.Flags().DurationVar(&waits.first, "first-wait", 2*time.Second, "wait after the first run")
	cmd.Flags().DurationVar(&waits.second, "second-wait", 3*time.Second, "wait after the second run")

	return cmd
}

// runDemo submits tasks 0-4, runs, waits, submits 5-6, runs again, waits
// and terminates the pool.
func runDemo(pool taskmanager.Pool, out io.Writer, waits demoWaits) {
	step := func(msg string) {
		_, _ = stepColor.Fprintln(out, msg)
	}

	step("Adding tasks")
	for i := range 5 {
		pool.Submit(&printTask{id: i, out: out})
	}

	step("Executing pool")
	pool.Run()

	step("Waiting for tasks to complete")
	time.Sleep(waits.first)

	step("Adding more tasks")
	for i := 5; i < 7; i++ {
		pool.Submit(&printTask{id: i, out: out})
	}
	// parallel workers exit once the queue drains, so start them again
	pool.Run()

	step("Waiting for tasks to complete")
	time.Sleep(waits.second)

	step("Terminating pool")
	pool.Terminate()

	stats := pool.Stats()
	_, _ = fmt.Fprintf(out, "done: model=%s queued=%d in_flight=%d\n", stats.Model, stats.Queued, stats.InFlight)
}
