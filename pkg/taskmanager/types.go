package taskmanager

import (
	"time"

	"go.uber.org/zap"
)

// Task is a unit of work run by a pool.
//
// Complete is called exactly once, right after Execute returns, on the same
// goroutine. Tasks are identified by interface equality, so implementations
// should use pointer receivers: two tasks with identical fields are then
// still distinct.
type Task interface {
	Execute()
	Complete()
}

type funcTask struct {
	execute  func()
	complete func()
}

func (t *funcTask) Execute() {
	if t.execute != nil {
		t.execute()
	}
}

func (t *funcTask) Complete() {
	if t.complete != nil {
		t.complete()
	}
}

// TaskFunc builds a Task from two closures. Either may be nil.
func TaskFunc(execute, complete func()) Task {
	return &funcTask{execute: execute, complete: complete}
}

// Hooks let callers observe the pool. Nil callbacks are skipped.
type Hooks struct {
	OnSubmit      func()
	OnCancel      func()
	OnStart       func()
	OnComplete    func(elapsed time.Duration)
	OnPanic       func(err error)
	OnWorkerStart func()
	OnWorkerStop  func()
}

func (h Hooks) submit() {
	if h.OnSubmit != nil {
		h.OnSubmit()
	}
}

func (h Hooks) cancel() {
	if h.OnCancel != nil {
		h.OnCancel()
	}
}

func (h Hooks) start() {
	if h.OnStart != nil {
		h.OnStart()
	}
}

func (h Hooks) complete(elapsed time.Duration) {
	if h.OnComplete != nil {
		h.OnComplete(elapsed)
	}
}

func (h Hooks) panicked(err error) {
	if h.OnPanic != nil {
		h.OnPanic(err)
	}
}

func (h Hooks) workerStart() {
	if h.OnWorkerStart != nil {
		h.OnWorkerStart()
	}
}

func (h Hooks) workerStop() {
	if h.OnWorkerStop != nil {
		h.OnWorkerStop()
	}
}

const (
	defaultIdleBackoffInitial = time.Millisecond
	defaultIdleBackoffMax     = 50 * time.Millisecond
)

type options struct {
	log            *zap.SugaredLogger
	hooks          Hooks
	idleBackoffMin time.Duration
	idleBackoffMax time.Duration
}

func newOptions(name string, opts []Option) options {
	o := options{
		idleBackoffMin: defaultIdleBackoffInitial,
		idleBackoffMax: defaultIdleBackoffMax,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.S().Named(name)
	}
	if o.idleBackoffMin <= 0 {
		o.idleBackoffMin = defaultIdleBackoffInitial
	}
	if o.idleBackoffMax < o.idleBackoffMin {
		o.idleBackoffMax = o.idleBackoffMin
	}
	return o
}

// Option configures a pool at construction time.
type Option func(*options)

// WithLogger replaces the named global logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithHooks attaches lifecycle callbacks, typically metrics.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithIdleBackoff bounds how long the cooperative scheduler waits between
// polls of an empty queue. It has no effect on the parallel pool.
func WithIdleBackoff(initial, maxInterval time.Duration) Option {
	return func(o *options) {
		o.idleBackoffMin = initial
		o.idleBackoffMax = maxInterval
	}
}
