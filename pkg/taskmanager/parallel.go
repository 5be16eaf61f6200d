package taskmanager

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ParallelPool runs tasks on a fixed set of Executors sharing one queue.
type ParallelPool struct {
	queue   *TaskQueue
	workers []*Executor
	log     *zap.SugaredLogger
	hooks   Hooks

	// mu serializes Run and Terminate.
	mu sync.Mutex
}

// NewParallelPool creates a pool with size workers. A size <= 0 is
// normalized to runtime.NumCPU(). No goroutine is started until Run.
func NewParallelPool(size int, opts ...Option) *ParallelPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	o := newOptions("parallel_pool", opts)
	p := &ParallelPool{
		queue:   NewTaskQueue(),
		workers: make([]*Executor, 0, size),
		log:     o.log,
		hooks:   o.hooks,
	}
	for i := range size {
		p.workers = append(p.workers, newExecutor(i, p.queue, o))
	}
	return p
}

func (p *ParallelPool) Submit(t Task) {
	if !p.queue.Enqueue(t) {
		p.log.Debugw("task ignored: nil or already queued")
		return
	}
	p.hooks.submit()
}

// Cancel erases t from the queue and asks every worker whether it is
// running t. A task racing with a worker's dequeue may still run.
func (p *ParallelPool) Cancel(t Task) bool {
	removed := p.queue.Erase(t)
	if removed {
		p.hooks.cancel()
	}

	for _, w := range p.workers {
		if w.CancelIfRunning(t) {
			break
		}
	}
	return removed
}

// Run starts every worker that has no live goroutine.
func (p *ParallelPool) Run() {
	p.mu.Lock()
	defer p.mu.Unlock()

	started := 0
	for _, w := range p.workers {
		if w.Start() {
			started++
		}
	}
	p.log.Debugw("pool run", "started", started, "workers", len(p.workers), "queued", p.queue.Len())
}

// Terminate stops every worker and waits for each goroutine to exit.
// The queue is left as-is so the backlog survives a later Run, and no task
// is reported as dropped.
func (p *ParallelPool) Terminate() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, w := range p.workers {
		w.Terminate()
	}
	p.log.Debugw("pool terminated", "queued", p.queue.Len())
	return nil
}

func (p *ParallelPool) Clear() []Task {
	dropped := p.queue.Clear()
	p.log.Debugw("queue cleared", "dropped", len(dropped))
	return dropped
}

func (p *ParallelPool) Contains(t Task) bool { return p.queue.Contains(t) }

func (p *ParallelPool) IsEmpty() bool { return p.queue.IsEmpty() }

func (p *ParallelPool) Len() int { return p.queue.Len() }

func (p *ParallelPool) Size() int { return len(p.workers) }

func (p *ParallelPool) RunningWorkers() int {
	n := 0
	for _, w := range p.workers {
		if w.Running() {
			n++
		}
	}
	return n
}

func (p *ParallelPool) Stats() Stats {
	s := Stats{
		Model:   ModelParallel,
		Workers: len(p.workers),
		Queued:  p.queue.Len(),
	}
	for _, w := range p.workers {
		if w.Running() {
			s.RunningWorkers++
		}
		if w.Current() != nil {
			s.InFlight++
		}
	}
	s.Scheduling = s.RunningWorkers > 0
	return s
}
