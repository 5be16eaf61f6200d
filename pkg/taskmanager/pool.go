package taskmanager

import (
	"strings"

	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
)

// Pool is the caller-facing side of both scheduling models.
type Pool interface {
	// Submit enqueues t. There is no backpressure.
	Submit(t Task)

	// Cancel removes t from the queue if it has not been picked up yet and
	// reports whether it did. A task that is already running keeps running.
	Cancel(t Task) bool

	// Run starts execution. Calling it again while running is a no-op.
	Run()

	// Terminate stops execution and returns the tasks it removed from the
	// queue, if any. See the concrete types for how much each model waits for.
	Terminate() []Task

	// Clear drops all queued tasks and returns exactly those tasks. None of
	// them will run.
	Clear() []Task

	// Contains reports whether t is still waiting in the queue.
	Contains(t Task) bool

	IsEmpty() bool
	Len() int
	Stats() Stats
}

// Stats is a point-in-time view of a pool.
type Stats struct {
	Model Model
	// Workers is the configured worker count; zero for the cooperative model.
	Workers        int
	RunningWorkers int
	Queued         int
	InFlight       int
	Scheduling     bool
}

type Model string

const (
	ModelParallel    Model = "parallel"
	ModelCooperative Model = "cooperative"
)

func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case ModelParallel:
		return ModelParallel, nil
	case ModelCooperative:
		return ModelCooperative, nil
	default:
		return "", srvErrors.NewUnknownModelError(s)
	}
}

// New builds a pool for the given model. size is ignored by the
// cooperative model.
func New(model Model, size int, opts ...Option) (Pool, error) {
	switch model {
	case ModelParallel:
		return NewParallelPool(size, opts...), nil
	case ModelCooperative:
		return NewCooperativePool(opts...), nil
	default:
		return nil, srvErrors.NewUnknownModelError(string(model))
	}
}

var (
	_ Pool = (*ParallelPool)(nil)
	_ Pool = (*CooperativePool)(nil)
)
