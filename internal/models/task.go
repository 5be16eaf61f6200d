package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskState is the lifecycle state of a submitted task as seen by the service.
type TaskState string

const (
	// TaskStateQueued - waiting in the pool queue
	TaskStateQueued TaskState = "queued"
	// TaskStateRunning - picked up by a worker
	TaskStateRunning TaskState = "running"
	// TaskStateCompleted - execute and complete both returned
	TaskStateCompleted TaskState = "completed"
	// TaskStateCanceled - removed from the queue before it ran
	TaskStateCanceled TaskState = "canceled"
	// TaskStateFailed - the task panicked
	TaskStateFailed TaskState = "failed"
)

func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed:
		return true
	default:
		return false
	}
}

func ParseTaskState(s string) (TaskState, error) {
	switch TaskState(s) {
	case TaskStateQueued, TaskStateRunning, TaskStateCompleted, TaskStateCanceled, TaskStateFailed:
		return TaskState(s), nil
	default:
		return "", fmt.Errorf("invalid task state: %s", s)
	}
}

type WorkloadKind string

const (
	WorkloadSleep WorkloadKind = "sleep"
	WorkloadLog   WorkloadKind = "log"
)

// TaskInfo is a snapshot of a tracked task.
type TaskInfo struct {
	ID          uuid.UUID
	Name        string
	Kind        WorkloadKind
	State       TaskState
	Error       error
	SubmittedAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

// PoolStatus is a snapshot of the pool behind the service.
type PoolStatus struct {
	Model          string
	Workers        int
	RunningWorkers int
	Queued         int
	InFlight       int
	Scheduling     bool
}
