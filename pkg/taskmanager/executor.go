package taskmanager

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
)

// run executes t and turns a panic into a TaskPanicError.
// Complete is skipped when Execute panics.
func run(t Task, hooks Hooks) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = srvErrors.NewTaskPanicError(rec)
		}
	}()

	hooks.start()
	started := time.Now()
	t.Execute()
	t.Complete()
	hooks.complete(time.Since(started))
	return nil
}

// Executor is one worker slot of a ParallelPool.
//
// Its goroutine drains the shared queue and exits as soon as the queue is
// observed empty, so a pool has to be Run again after new submissions.
type Executor struct {
	id    int
	queue *TaskQueue
	log   *zap.SugaredLogger
	hooks Hooks

	// lifecycle serializes Start and Terminate.
	lifecycle sync.Mutex
	done      chan struct{}
	stopping  atomic.Bool

	mu      sync.Mutex
	current Task
}

func newExecutor(id int, q *TaskQueue, o options) *Executor {
	return &Executor{
		id:    id,
		queue: q,
		log:   o.log,
		hooks: o.hooks,
	}
}

// Start launches the worker goroutine unless one is still alive.
// A goroutine that already exited is reaped and replaced.
func (e *Executor) Start() bool {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.alive() {
		return false
	}

	done := make(chan struct{})
	e.done = done
	e.hooks.workerStart()
	go e.loop(done)
	return true
}

// Terminate asks the worker to stop and blocks until its goroutine has
// exited. A task in flight is allowed to finish; queued tasks stay queued.
func (e *Executor) Terminate() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.done == nil {
		return
	}

	e.stopping.Store(true)
	<-e.done
	e.done = nil
	e.stopping.Store(false)
}

func (e *Executor) Running() bool {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()
	return e.alive()
}

// Current returns the task being executed, or nil when idle.
func (e *Executor) Current() Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// CancelIfRunning reports whether t is the task currently running on this
// worker. Running tasks are never interrupted.
func (e *Executor) CancelIfRunning(t Task) bool {
	if t == nil || e.Current() != t {
		return false
	}
	e.log.Debugw("task is already running and cannot be interrupted", "worker", e.id)
	return true
}

// alive must be called with lifecycle held.
func (e *Executor) alive() bool {
	if e.done == nil {
		return false
	}
	select {
	case <-e.done:
		e.done = nil
		return false
	default:
		return true
	}
}

func (e *Executor) setCurrent(t Task) {
	e.mu.Lock()
	e.current = t
	e.mu.Unlock()
}

func (e *Executor) loop(done chan struct{}) {
	defer func() {
		e.setCurrent(nil)
		e.hooks.workerStop()
		close(done)
	}()

	e.log.Debugw("worker started", "worker", e.id)

	for !e.stopping.Load() {
		t, ok := e.queue.Dequeue()
		if !ok {
			// another worker may have taken the last task between our
			// dequeue and this check; only quit once the queue looks empty
			if e.queue.IsEmpty() {
				e.log.Debugw("queue drained, worker exiting", "worker", e.id)
				return
			}
			runtime.Gosched()
			continue
		}

		e.setCurrent(t)
		err := run(t, e.hooks)
		e.setCurrent(nil)

		if err != nil {
			e.log.Errorw("task failed, worker exiting", "worker", e.id, "error", err)
			e.hooks.panicked(err)
			return
		}
	}

	e.log.Debugw("worker stopped", "worker", e.id)
}
