package taskmanager

import "sync"

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

// TaskQueue is the FIFO shared by a pool and all of its workers.
//
// Every method takes the queue lock, but composites are not atomic: an
// IsEmpty followed by Dequeue may still find the queue empty.
type TaskQueue struct {
	mu    sync.Mutex
	tasks queue[Task]
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Enqueue appends t to the tail. It returns false, leaving the queue
// unchanged, when t is nil or already queued.
func (q *TaskQueue) Enqueue(t Task) bool {
	if t == nil {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.indexOf(t) >= 0 {
		return false
	}
	q.tasks.Push(t)
	return true
}

// Dequeue removes and returns the head of the queue.
func (q *TaskQueue) Dequeue() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tasks.Len() == 0 {
		return nil, false
	}
	return q.tasks.Pop(), true
}

// Erase removes t if it is still queued and reports whether it did.
func (q *TaskQueue) Erase(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(t)
	if i < 0 {
		return false
	}
	copy(q.tasks[i:], q.tasks[i+1:])
	q.tasks[len(q.tasks)-1] = nil
	q.tasks = q.tasks[:len(q.tasks)-1]
	return true
}

// Clear drops every queued task and returns them in queue order.
// Tasks already dequeued are not affected and never appear in the result.
func (q *TaskQueue) Clear() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := []Task(q.tasks)
	q.tasks = nil
	return dropped
}

func (q *TaskQueue) Contains(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexOf(t) >= 0
}

func (q *TaskQueue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Len()
}

// indexOf must be called with mu held.
func (q *TaskQueue) indexOf(t Task) int {
	if t == nil {
		return -1
	}
	for i, queued := range q.tasks {
		if queued == t {
			return i
		}
	}
	return -1
}
