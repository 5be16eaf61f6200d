package v1

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for TaskState.
const (
	TaskStateQueued    TaskState = "queued"
	TaskStateRunning   TaskState = "running"
	TaskStateCompleted TaskState = "completed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateFailed    TaskState = "failed"
)

// Defines values for TaskKind.
const (
	TaskKindSleep TaskKind = "sleep"
	TaskKindLog   TaskKind = "log"
)

// Defines values for PoolStatusModel.
const (
	PoolStatusModelParallel    PoolStatusModel = "parallel"
	PoolStatusModelCooperative PoolStatusModel = "cooperative"
)

// TaskState defines model for Task.State.
type TaskState string

// TaskKind defines model for Task.Kind.
type TaskKind string

// PoolStatusModel defines model for PoolStatus.Model.
type PoolStatusModel string

// Task defines model for Task.
type Task struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Kind        TaskKind           `json:"kind"`
	State       TaskState          `json:"state"`
	Error       *string            `json:"error,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt"`
	StartedAt   *time.Time         `json:"startedAt,omitempty"`
	FinishedAt  *time.Time         `json:"finishedAt,omitempty"`
}

// TaskList defines model for TaskList.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// CreateTaskRequest defines model for CreateTaskRequest.
type CreateTaskRequest struct {
	Name *string  `json:"name,omitempty"`
	Kind TaskKind `json:"kind"`

	// Duration is a Go duration string ("250ms", "2s"); sleep tasks only.
	Duration *string `json:"duration,omitempty"`

	// Message is logged by log tasks.
	Message *string `json:"message,omitempty"`
}

// PoolStatus defines model for PoolStatus.
type PoolStatus struct {
	Model          PoolStatusModel `json:"model"`
	Workers        int             `json:"workers"`
	RunningWorkers int             `json:"runningWorkers"`
	Queued         int             `json:"queued"`
	InFlight       int             `json:"inFlight"`
	Scheduling     bool            `json:"scheduling"`
}

// ClearResponse defines model for ClearResponse.
type ClearResponse struct {
	Dropped int `json:"dropped"`
}

// ListTasksParams defines parameters for ListTasks.
type ListTasksParams struct {
	// State filter; repeated values are OR-ed.
	State *[]TaskState `form:"state,omitempty" json:"state,omitempty"`
}

// CreateTaskJSONRequestBody defines body for CreateTask for application/json ContentType.
type CreateTaskJSONRequestBody = CreateTaskRequest
