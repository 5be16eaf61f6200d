package v1

import (
	"github.com/kubev2v/task-engine/internal/models"
)

// NewTaskFromModel converts a models.TaskInfo to an API Task.
func NewTaskFromModel(m models.TaskInfo) Task {
	t := Task{
		Id:          m.ID,
		Name:        m.Name,
		Kind:        TaskKind(m.Kind),
		State:       TaskState(m.State),
		SubmittedAt: m.SubmittedAt,
		StartedAt:   m.StartedAt,
		FinishedAt:  m.FinishedAt,
	}

	if m.Error != nil {
		msg := m.Error.Error()
		t.Error = &msg
	}

	return t
}

// NewTaskListFromModel converts tasks to an API TaskList.
func NewTaskListFromModel(tasks []models.TaskInfo) TaskList {
	list := TaskList{
		Tasks: make([]Task, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		list.Tasks = append(list.Tasks, NewTaskFromModel(t))
	}
	return list
}

func (p *PoolStatus) FromModel(m models.PoolStatus) {
	p.Model = PoolStatusModel(m.Model)
	p.Workers = m.Workers
	p.RunningWorkers = m.RunningWorkers
	p.Queued = m.Queued
	p.InFlight = m.InFlight
	p.Scheduling = m.Scheduling
}

// ParseTaskStates converts API state filters to model states.
// Unknown values are reported as an error.
func ParseTaskStates(states []TaskState) ([]models.TaskState, error) {
	result := make([]models.TaskState, 0, len(states))
	for _, s := range states {
		state, err := models.ParseTaskState(string(s))
		if err != nil {
			return nil, err
		}
		result = append(result, state)
	}
	return result, nil
}
