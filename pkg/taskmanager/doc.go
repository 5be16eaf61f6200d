// Package taskmanager implements a task execution engine with two
// scheduling models behind one Pool interface.
//
// A Task is anything with Execute and Complete. Callers Submit tasks, which
// land in a shared FIFO TaskQueue, and Run the pool to drain it. The engine
// never looks inside a task and never returns a result to the submitter.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Pool                                   │
//	│                                                                     │
//	│   Submit(t) ──► ┌───────────────────────────────────────────┐       │
//	│                 │                TaskQueue                  │       │
//	│   Cancel(t) ──► │  [task1] [task2] [task3] ...   (FIFO)     │       │
//	│     (Erase)     └─────────────────────┬─────────────────────┘       │
//	│                                       │ Dequeue                     │
//	│            ┌──────────────────────────┴─────────────────┐           │
//	│            ▼                                            ▼           │
//	│   ParallelPool                               CooperativePool        │
//	│   ┌────────────┐ ┌────────────┐              ┌──────────────┐       │
//	│   │ Executor 1 │ │ Executor N │              │ loop()       │       │
//	│   └────────────┘ └────────────┘              └──────┬───────┘       │
//	│   fixed goroutines, each runs                       │ go job(t)     │
//	│   Execute+Complete inline                   one goroutine per task  │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Parallel Model
//
// NewParallelPool(n) creates n Executors up front; none of them runs until
// Run is called. Each Executor goroutine repeatedly dequeues a task, runs
// Execute then Complete, and loops. It exits when it observes the queue
// empty, so the pool is not a long-lived service:
//
//	pool := taskmanager.NewParallelPool(4)
//	pool.Submit(t1)
//	pool.Run()      // workers drain the queue, then exit
//	pool.Submit(t2) // stays queued...
//	pool.Run()      // ...until the next Run
//
// Run is idempotent: a worker whose goroutine is still alive is left alone,
// and one whose goroutine already exited is reaped and restarted.
//
// Terminate sets each worker's stopping flag and waits for its goroutine to
// exit. The task a worker is running finishes first. Tasks still queued are
// kept; call Clear to drop them. Clear returns the dropped tasks, and none
// of them will run.
//
// # Cooperative Model
//
// NewCooperativePool() has no worker count. Run starts one scheduler loop in
// the background:
//
//	for !terminated {
//	    if t, ok := queue.Dequeue(); ok {
//	        go run(t)            // fire and forget
//	        continue
//	    }
//	    runtime.Gosched()
//	    wait(idle backoff | Submit wake-up | Terminate)
//	}
//
// Terminate stops the loop and clears the queue. It does not wait for
// dispatched jobs; InFlight reports how many are still running.
//
// # Cancellation
//
// Cancel removes a task that is still queued; it will never run. A task
// that was already dequeued runs to completion: there is no interruption
// of running work. The parallel pool asks each Executor whether it is
// running the task (CancelIfRunning), which is informational only.
//
// Cancel and a concurrent Dequeue of the same task race; either outcome is
// valid.
//
// # Task Faults
//
// A panic in Execute or Complete is recovered at the goroutine boundary and
// reported as a TaskPanicError through the logger and Hooks.OnPanic.
//
//   - Parallel: the worker goroutine exits, reducing capacity until Run.
//   - Cooperative: only that job ends.
//
// Nothing is retried.
//
// # Ordering
//
// Dequeue order is submit order. With one parallel worker, tasks run
// strictly one after the other in that order. With several workers, or in
// the cooperative model, execution across goroutines is not ordered; each
// task still runs at most once.
//
// # Usage Example
//
//	pool, err := taskmanager.New(taskmanager.ModelParallel, 4,
//	    taskmanager.WithLogger(zap.S().Named("pool")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer pool.Terminate()
//
//	pool.Submit(taskmanager.TaskFunc(
//	    func() { fmt.Println("executing") },
//	    func() { fmt.Println("completed") },
//	))
//	pool.Run()
package taskmanager
