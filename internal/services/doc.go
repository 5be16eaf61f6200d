// Package services implements the business logic layer of the task engine.
//
// Services sit between the HTTP handlers and the task pool. The pool only
// knows tasks by identity; the services layer gives every task an ID, a
// name and a state so callers can find, list and cancel it later.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    └── TaskService ──► taskmanager.Pool (parallel or cooperative)
//
// # TaskService
//
// TaskService wraps every submitted workload in a trackedTask, which is the
// taskmanager.Task handed to the pool. The tracked task updates its own
// state from Execute and Complete.
//
// State Machine:
//
//	┌────────┐  Execute   ┌─────────┐  Complete  ┌───────────┐
//	│ Queued │──────────►│ Running │──────────►│ Completed │
//	└────────┘            └─────────┘            └───────────┘
//	    │                      │
//	    │ Cancel / Clear       │ panic
//	    ▼                      ▼
//	┌──────────┐          ┌────────┐
//	│ Canceled │          │ Failed │
//	└──────────┘          └────────┘
//
// Key behaviors:
//   - Cancel only succeeds while the task is still queued; a running task is
//     returned unchanged because the pool never interrupts work
//   - Cancel racing with a worker's dequeue may lose; the task then runs
//   - Clear, and Terminate on a cooperative pool, cancel exactly the tasks
//     the pool reports it removed from the queue; a parallel pool keeps its
//     backlog on Terminate
//   - A panicking workload is recorded as Failed and the panic is passed on
//     to the pool, which logs it and drops the goroutine
//   - Finished tasks beyond the history cap are forgotten, oldest first
//
// Workloads:
//
//	┌───────┬─────────────┬──────────────────────────────────────┐
//	│ Kind  │ Parameter   │ Behavior                             │
//	├───────┼─────────────┼──────────────────────────────────────┤
//	│ sleep │ Duration    │ Sleeps for Duration (0 < d <= 10m)   │
//	│ log   │ Message     │ Logs Message at info level           │
//	└───────┴─────────────┴──────────────────────────────────────┘
//
// Usage:
//
//	pool := taskmanager.NewParallelPool(4)
//	svc := services.NewTaskService(pool, 1000)
//
//	info, err := svc.Submit(services.SubmitParams{
//	    Name:     "warmup",
//	    Kind:     models.WorkloadSleep,
//	    Duration: time.Second,
//	})
//	svc.Run()
//	info, err = svc.Cancel(info.ID)
//	status := svc.Status()
//
// # Thread Safety
//
// The task registry is protected by a sync.Mutex; each tracked task guards
// its own state with a separate mutex so that workers never contend on the
// registry lock.
package services
