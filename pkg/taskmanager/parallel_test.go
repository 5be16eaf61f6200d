package taskmanager_test

import (
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

var _ = Describe("ParallelPool", func() {
	var (
		pool *taskmanager.ParallelPool
		j    *journal
	)

	BeforeEach(func() {
		j = &journal{}
	})

	AfterEach(func() {
		if pool != nil {
			pool.Terminate()
		}
	})

	Describe("NewParallelPool", func() {
		It("should create the requested number of workers", func() {
			pool = taskmanager.NewParallelPool(4)
			Expect(pool.Size()).To(Equal(4))
			Expect(pool.RunningWorkers()).To(Equal(0))
			Expect(pool.IsEmpty()).To(BeTrue())
		})

		It("should default to the number of CPUs", func() {
			pool = taskmanager.NewParallelPool(0)
			Expect(pool.Size()).To(Equal(runtime.NumCPU()))
		})
	})

	Describe("Run", func() {
		// Given a pool with a single worker and tasks 0, 1 and 2
		// When the pool runs
		// Then every task executes and completes before the next one starts
		It("should run tasks in strict FIFO order with one worker", func() {
			// Arrange
			pool = taskmanager.NewParallelPool(1)
			tasks := []*testTask{newTestTask(0, j), newTestTask(1, j), newTestTask(2, j)}
			for _, t := range tasks {
				pool.Submit(t)
			}

			// Act
			pool.Run()

			// Assert
			Eventually(j.Events, 2*time.Second).Should(Equal([]string{
				"executing 0", "completed 0",
				"executing 1", "completed 1",
				"executing 2", "completed 2",
			}))
		})

		It("should run every task exactly once with several workers", func() {
			pool = taskmanager.NewParallelPool(4)
			tasks := make([]*testTask, 0, 5)
			for i := range 5 {
				t := newTestTask(i, j)
				tasks = append(tasks, t)
				pool.Submit(t)
			}

			pool.Run()

			Eventually(func() int { return len(j.Events()) }, 2*time.Second).Should(Equal(10))
			for _, t := range tasks {
				Expect(t.Executed()).To(Equal(int32(1)))
				Expect(t.Completed()).To(Equal(int32(1)))
			}
		})

		It("should let workers exit once the queue is drained", func() {
			pool = taskmanager.NewParallelPool(2)
			first := newTestTask(0, j)
			pool.Submit(first)
			pool.Run()

			Eventually(first.Completed, time.Second).Should(Equal(int32(1)))
			Eventually(pool.RunningWorkers, time.Second).Should(Equal(0))

			// new work waits for the next Run
			second := newTestTask(1, j)
			pool.Submit(second)
			Consistently(second.Executed, 200*time.Millisecond).Should(Equal(int32(0)))
			Expect(pool.Len()).To(Equal(1))

			pool.Run()
			Eventually(second.Completed, time.Second).Should(Equal(int32(1)))
		})

		It("should not start a second goroutine for a busy worker", func() {
			pool = taskmanager.NewParallelPool(1)
			blocking := newGatedTask(0, j)
			next := newTestTask(1, j)
			pool.Submit(blocking)
			pool.Submit(next)

			pool.Run()
			Eventually(blocking.started, time.Second).Should(BeClosed())
			pool.Run()
			pool.Run()

			Consistently(next.Executed, 200*time.Millisecond).Should(Equal(int32(0)))
			Expect(pool.RunningWorkers()).To(Equal(1))

			close(blocking.gate)
			Eventually(next.Completed, time.Second).Should(Equal(int32(1)))
			Expect(blocking.Executed()).To(Equal(int32(1)))
		})

		It("should run a task submitted twice only once", func() {
			pool = taskmanager.NewParallelPool(2)
			t := newTestTask(0, j)
			pool.Submit(t)
			pool.Submit(t)
			Expect(pool.Len()).To(Equal(1))

			pool.Run()

			Eventually(t.Completed, time.Second).Should(Equal(int32(1)))
			Consistently(t.Executed, 100*time.Millisecond).Should(Equal(int32(1)))
		})
	})

	Describe("Cancel", func() {
		// Given a task that is still queued
		// When it is cancelled before the pool runs
		// Then it never executes
		It("should drop a queued task", func() {
			// Arrange
			pool = taskmanager.NewParallelPool(1)
			cancelled := newTestTask(0, j)
			kept := newTestTask(1, j)
			pool.Submit(cancelled)
			pool.Submit(kept)

			// Act
			removed := pool.Cancel(cancelled)
			pool.Run()

			// Assert
			Expect(removed).To(BeTrue())
			Eventually(kept.Completed, time.Second).Should(Equal(int32(1)))
			Expect(cancelled.Executed()).To(Equal(int32(0)))
			Expect(j.Events()).To(Equal([]string{"executing 1", "completed 1"}))
		})

		It("should not interrupt a running task", func() {
			pool = taskmanager.NewParallelPool(1)
			t := newGatedTask(0, j)
			pool.Submit(t)
			pool.Run()
			Eventually(t.started, time.Second).Should(BeClosed())

			Expect(pool.Cancel(t)).To(BeFalse())

			close(t.gate)
			Eventually(t.Completed, time.Second).Should(Equal(int32(1)))
		})

		It("should be a no-op for unknown tasks", func() {
			pool = taskmanager.NewParallelPool(1)
			Expect(pool.Cancel(newTestTask(0, j))).To(BeFalse())
			Expect(pool.Cancel(nil)).To(BeFalse())
		})
	})

	Describe("Terminate", func() {
		It("should wait for in-flight work before returning", func() {
			pool = taskmanager.NewParallelPool(1)
			t := newGatedTask(0, j)
			pool.Submit(t)
			pool.Run()
			Eventually(t.started, time.Second).Should(BeClosed())

			terminated := make(chan struct{})
			go func() {
				pool.Terminate()
				close(terminated)
			}()

			Consistently(terminated, 200*time.Millisecond).ShouldNot(BeClosed())
			close(t.gate)
			Eventually(terminated, time.Second).Should(BeClosed())
			Expect(pool.RunningWorkers()).To(Equal(0))
			Expect(t.Completed()).To(Equal(int32(1)))
		})

		It("should keep the backlog for a later Run", func() {
			pool = taskmanager.NewParallelPool(1)
			first := newGatedTask(0, j)
			second := newTestTask(1, j)
			pool.Submit(first)
			pool.Submit(second)
			pool.Run()
			Eventually(first.started, time.Second).Should(BeClosed())

			terminated := make(chan struct{})
			go func() {
				pool.Terminate()
				close(terminated)
			}()
			Consistently(terminated, 100*time.Millisecond).ShouldNot(BeClosed())
			close(first.gate)
			Eventually(terminated, time.Second).Should(BeClosed())

			Expect(second.Executed()).To(Equal(int32(0)))
			Expect(pool.Len()).To(Equal(1))

			pool.Run()
			Eventually(second.Completed, time.Second).Should(Equal(int32(1)))
		})

		It("should drop nothing itself and leave the backlog to Clear", func() {
			pool = taskmanager.NewParallelPool(4)
			tasks := make([]*testTask, 0, 200)
			for i := range 200 {
				t := newTestTask(i, nil)
				tasks = append(tasks, t)
				pool.Submit(t)
			}
			pool.Run()

			dropped := pool.Clear()
			Expect(pool.Terminate()).To(BeEmpty())

			ran := 0
			for _, t := range tasks {
				ran += int(t.Completed())
			}
			Expect(ran + len(dropped)).To(Equal(len(tasks)))
			for _, t := range dropped {
				Expect(t.(*testTask).Executed()).To(Equal(int32(0)))
			}
		})

		It("should accept submissions after terminate", func() {
			pool = taskmanager.NewParallelPool(2)
			pool.Run()
			pool.Terminate()

			t := newTestTask(0, j)
			Expect(func() { pool.Submit(t) }).NotTo(Panic())
			Expect(pool.Len()).To(Equal(1))

			pool.Run()
			Eventually(t.Completed, time.Second).Should(Equal(int32(1)))
		})

		It("should be safe to call on a pool that never ran", func() {
			pool = taskmanager.NewParallelPool(3)
			Expect(func() { pool.Terminate() }).NotTo(Panic())
		})
	})

	Describe("Task faults", func() {
		// Given a task that panics followed by a healthy task
		// When the single worker runs the panicking task
		// Then the worker exits, the fault is reported and the healthy task waits for the next Run
		It("should end the worker goroutine and report the panic", func() {
			// Arrange
			var faults atomic.Int32
			var lastErr atomic.Value
			pool = taskmanager.NewParallelPool(1, taskmanager.WithHooks(taskmanager.Hooks{
				OnPanic: func(err error) {
					faults.Add(1)
					lastErr.Store(err)
				},
			}))
			bad := newTestTask(0, j)
			bad.panics = true
			good := newTestTask(1, j)
			pool.Submit(bad)
			pool.Submit(good)

			// Act
			pool.Run()

			// Assert
			Eventually(faults.Load, time.Second).Should(Equal(int32(1)))
			Expect(srvErrors.IsTaskPanicError(lastErr.Load().(error))).To(BeTrue())
			Eventually(pool.RunningWorkers, time.Second).Should(Equal(0))
			Expect(bad.Completed()).To(Equal(int32(0)))
			Expect(good.Executed()).To(Equal(int32(0)))
			Expect(pool.Len()).To(Equal(1))

			pool.Run()
			Eventually(good.Completed, time.Second).Should(Equal(int32(1)))
		})
	})

	Describe("Hooks", func() {
		It("should report submissions, cancellations and completions", func() {
			var submitted, cancelled, started, completed, workersUp, workersDown atomic.Int32
			pool = taskmanager.NewParallelPool(2, taskmanager.WithHooks(taskmanager.Hooks{
				OnSubmit:      func() { submitted.Add(1) },
				OnCancel:      func() { cancelled.Add(1) },
				OnStart:       func() { started.Add(1) },
				OnComplete:    func(time.Duration) { completed.Add(1) },
				OnWorkerStart: func() { workersUp.Add(1) },
				OnWorkerStop:  func() { workersDown.Add(1) },
			}))

			tasks := []*testTask{newTestTask(0, j), newTestTask(1, j), newTestTask(2, j)}
			for _, t := range tasks {
				pool.Submit(t)
			}
			pool.Cancel(tasks[2])
			pool.Run()

			Eventually(completed.Load, time.Second).Should(Equal(int32(2)))
			Eventually(workersDown.Load, time.Second).Should(Equal(int32(2)))
			Expect(submitted.Load()).To(Equal(int32(3)))
			Expect(cancelled.Load()).To(Equal(int32(1)))
			Expect(started.Load()).To(Equal(int32(2)))
			Expect(workersUp.Load()).To(Equal(int32(2)))
		})
	})

	Describe("Stats", func() {
		It("should report workers, queue and in-flight tasks", func() {
			pool = taskmanager.NewParallelPool(2)
			t := newGatedTask(0, j)
			pool.Submit(t)
			pool.Submit(newTestTask(1, j))

			stats := pool.Stats()
			Expect(stats.Model).To(Equal(taskmanager.ModelParallel))
			Expect(stats.Workers).To(Equal(2))
			Expect(stats.Queued).To(Equal(2))
			Expect(stats.Scheduling).To(BeFalse())

			pool.Run()
			Eventually(t.started, time.Second).Should(BeClosed())
			Eventually(func() int { return pool.Stats().InFlight }, time.Second).Should(Equal(1))
			Expect(pool.Stats().Scheduling).To(BeTrue())

			close(t.gate)
			Eventually(func() int { return pool.Stats().RunningWorkers }, time.Second).Should(Equal(0))
		})
	})
})
