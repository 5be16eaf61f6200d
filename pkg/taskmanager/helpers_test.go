package taskmanager_test

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// journal collects task events in the order they happen.
type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

func (j *journal) Events() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

type testTask struct {
	id      int
	journal *journal

	// gate, when set, blocks Execute until it is closed.
	gate    chan struct{}
	started chan struct{}
	panics  bool
	once    sync.Once

	executed  atomic.Int32
	completed atomic.Int32
}

func newTestTask(id int, j *journal) *testTask {
	return &testTask{id: id, journal: j, started: make(chan struct{})}
}

func newGatedTask(id int, j *journal) *testTask {
	t := newTestTask(id, j)
	t.gate = make(chan struct{})
	return t
}

func (t *testTask) Execute() {
	if t.journal != nil {
		t.journal.add("executing %d", t.id)
	}
	t.once.Do(func() { close(t.started) })
	if t.gate != nil {
		<-t.gate
	}
	if t.panics {
		panic(fmt.Sprintf("task %d exploded", t.id))
	}
	t.executed.Add(1)
}

func (t *testTask) Complete() {
	if t.journal != nil {
		t.journal.add("completed %d", t.id)
	}
	t.completed.Add(1)
}

func (t *testTask) Executed() int32 { return t.executed.Load() }

func (t *testTask) Completed() int32 { return t.completed.Load() }
