package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

// syncBuffer guards a bytes.Buffer written by several task goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ = Describe("demo", func() {
	waits := demoWaits{first: 200 * time.Millisecond, second: 200 * time.Millisecond}

	DescribeTable("should execute and complete all seven tasks",
		func(pool taskmanager.Pool) {
			out := &syncBuffer{}

			runDemo(pool, out, waits)

			text := out.String()
			for i := range 7 {
				Expect(text).To(ContainSubstring("executing %d\n", i))
				Expect(text).To(ContainSubstring("completed %d\n", i))
			}
			Expect(text).To(ContainSubstring("queued=0"))
		},
		Entry("parallel", taskmanager.NewParallelPool(4)),
		Entry("cooperative", taskmanager.NewCooperativePool()),
	)

	It("should keep FIFO order with a single worker", func() {
		out := &syncBuffer{}

		runDemo(taskmanager.NewParallelPool(1), out, waits)

		var lines []string
		for _, l := range strings.Split(out.String(), "\n") {
			if strings.HasPrefix(l, "executing") || strings.HasPrefix(l, "completed") {
				lines = append(lines, l)
			}
		}
		Expect(lines).To(HaveLen(14))
		Expect(lines[:4]).To(Equal([]string{"executing 0", "completed 0", "executing 1", "completed 1"}))
		Expect(lines[12:]).To(Equal([]string{"executing 6", "completed 6"}))
	})
})

var _ = Describe("root command", func() {
	run := func(args ...string) error {
		cmd := NewRootCommand()
		cmd.SetArgs(args)
		cmd.SetOut(&syncBuffer{})
		cmd.SetErr(&syncBuffer{})
		return cmd.Execute()
	}

	It("should run the demo with flag overrides", func() {
		Expect(run("demo", "--pool-model", "cooperative", "--log-level", "error",
			"--first-wait", "50ms", "--second-wait", "50ms")).To(Succeed())
	})

	It("should reject an unknown pool model", func() {
		Expect(run("demo", "--pool-model", "fibers")).NotTo(Succeed())
	})

	// Given a config file setting the pool model
	// When the environment sets a different one
	// Then the environment wins
	It("should prefer the environment over the config file", func() {
		// Arrange
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.yaml")
		Expect(os.WriteFile(path, []byte("pool-model: fibers\nlog-level: error\n"), 0o600)).To(Succeed())

		// Act & Assert
		Expect(run("demo", "--config", path, "--first-wait", "10ms", "--second-wait", "10ms")).NotTo(Succeed())

		GinkgoT().Setenv("TASK_ENGINE_POOL_MODEL", "parallel")
		Expect(run("demo", "--config", path, "--first-wait", "10ms", "--second-wait", "10ms")).To(Succeed())
	})

	It("should explain how to start parallel workers in the serve help", func() {
		out := &syncBuffer{}
		cmd := NewRootCommand()
		cmd.SetArgs([]string{"serve", "--help"})
		cmd.SetOut(out)
		cmd.SetErr(&syncBuffer{})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("workers exit as soon as the queue is empty"))
		Expect(out.String()).To(ContainSubstring("POST /api/v1/pool/run"))
	})

	It("should fail on a missing config file", func() {
		Expect(run("demo", "--config", "/nonexistent/task-engine.yaml")).NotTo(Succeed())
	})
})
