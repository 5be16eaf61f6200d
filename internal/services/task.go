package services

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/task-engine/internal/models"
	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

// trackedTask is the taskmanager.Task submitted for every service task.
// It records its own state transitions.
type trackedTask struct {
	mu   sync.Mutex
	info models.TaskInfo
	work func()
}

func (t *trackedTask) Execute() {
	now := time.Now()
	t.mu.Lock()
	t.info.State = models.TaskStateRunning
	t.info.StartedAt = &now
	t.mu.Unlock()

	// record the failure but let the pool see the panic
	defer func() {
		if rec := recover(); rec != nil {
			t.finish(models.TaskStateFailed, srvErrors.NewTaskPanicError(rec))
			panic(rec)
		}
	}()

	t.work()
}

func (t *trackedTask) Complete() {
	t.finish(models.TaskStateCompleted, nil)
}

func (t *trackedTask) finish(state models.TaskState, err error) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info.State = state
	t.info.Error = err
	t.info.FinishedAt = &now
}

func (t *trackedTask) snapshot() models.TaskInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.info
}

func (t *trackedTask) state() models.TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.info.State
}

// TaskService tracks tasks submitted to a pool by ID.
type TaskService struct {
	pool    taskmanager.Pool
	history int

	mu    sync.Mutex
	tasks map[uuid.UUID]*trackedTask
	order []uuid.UUID
}

// NewTaskService wraps pool. history caps how many finished tasks are kept.
func NewTaskService(pool taskmanager.Pool, history int) *TaskService {
	return &TaskService{
		pool:    pool,
		history: history,
		tasks:   make(map[uuid.UUID]*trackedTask),
	}
}

func (s *TaskService) Submit(params SubmitParams) (models.TaskInfo, error) {
	work, err := buildWorkload(params)
	if err != nil {
		return models.TaskInfo{}, err
	}

	id := uuid.New()
	name := params.Name
	if name == "" {
		name = id.String()
	}
	t := &trackedTask{
		info: models.TaskInfo{
			ID:          id,
			Name:        name,
			Kind:        params.Kind,
			State:       models.TaskStateQueued,
			SubmittedAt: time.Now(),
		},
		work: work,
	}

	s.mu.Lock()
	s.tasks[id] = t
	s.order = append(s.order, id)
	s.prune()
	s.mu.Unlock()

	s.pool.Submit(t)
	zap.S().Named("task_service").Debugw("task submitted", "id", id, "name", name, "kind", params.Kind)

	return t.snapshot(), nil
}

// Cancel removes a queued task. A task that already started is returned
// unchanged: running work is never interrupted.
func (s *TaskService) Cancel(id uuid.UUID) (models.TaskInfo, error) {
	t, err := s.lookup(id)
	if err != nil {
		return models.TaskInfo{}, err
	}

	if s.pool.Cancel(t) {
		t.finish(models.TaskStateCanceled, nil)
		zap.S().Named("task_service").Infow("task canceled", "id", id)
	} else {
		zap.S().Named("task_service").Debugw("task not canceled: no longer queued", "id", id, "state", t.state())
	}

	return t.snapshot(), nil
}

func (s *TaskService) Get(id uuid.UUID) (models.TaskInfo, error) {
	t, err := s.lookup(id)
	if err != nil {
		return models.TaskInfo{}, err
	}
	return t.snapshot(), nil
}

// List returns tasks in submission order, optionally filtered by state.
func (s *TaskService) List(states ...models.TaskState) []models.TaskInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.TaskInfo, 0, len(s.order))
	for _, id := range s.order {
		info := s.tasks[id].snapshot()
		if len(states) > 0 && !slices.Contains(states, info.State) {
			continue
		}
		result = append(result, info)
	}
	return result
}

func (s *TaskService) Run() {
	s.pool.Run()
	zap.S().Named("task_service").Infow("pool running", "queued", s.pool.Len())
}

// Terminate stops the pool. Whatever the pool dropped from its queue in the
// process is marked canceled.
func (s *TaskService) Terminate() {
	n := s.markDropped(s.pool.Terminate())
	zap.S().Named("task_service").Infow("pool terminated", "dropped", n, "queued", s.pool.Len())
}

// Clear drops every queued task and returns how many were dropped.
func (s *TaskService) Clear() int {
	n := s.markDropped(s.pool.Clear())
	zap.S().Named("task_service").Infow("queue cleared", "dropped", n)
	return n
}

func (s *TaskService) Status() models.PoolStatus {
	stats := s.pool.Stats()
	return models.PoolStatus{
		Model:          string(stats.Model),
		Workers:        stats.Workers,
		RunningWorkers: stats.RunningWorkers,
		Queued:         stats.Queued,
		InFlight:       stats.InFlight,
		Scheduling:     stats.Scheduling,
	}
}

func (s *TaskService) lookup(id uuid.UUID) (*trackedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, srvErrors.NewTaskNotFoundError(id.String())
	}
	return t, nil
}

// markDropped cancels the tasks the pool removed from its queue. The pool
// guarantees none of them will run. Tasks not submitted through the service
// are skipped.
func (s *TaskService) markDropped(dropped []taskmanager.Task) int {
	n := 0
	for _, task := range dropped {
		t, ok := task.(*trackedTask)
		if !ok {
			continue
		}
		t.finish(models.TaskStateCanceled, nil)
		n++
	}
	return n
}

// prune forgets the oldest finished tasks beyond the history cap.
// Must be called with mu held.
func (s *TaskService) prune() {
	finished := 0
	for _, id := range s.order {
		if s.tasks[id].state().Terminal() {
			finished++
		}
	}

	excess := finished - s.history
	if excess <= 0 {
		return
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if excess > 0 && s.tasks[id].state().Terminal() {
			delete(s.tasks, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}
