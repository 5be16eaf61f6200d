package taskmanager

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// CooperativePool runs a single scheduler loop that hands every dequeued
// task to its own goroutine. There is no worker bound.
//
// Terminate only stops the loop and clears the queue: jobs that were already
// dispatched are not waited for. Unlike ParallelPool.Terminate this gives
// no guarantee that no task is still running when it returns.
type CooperativePool struct {
	queue *TaskQueue
	log   *zap.SugaredLogger
	hooks Hooks

	idleMin time.Duration
	idleMax time.Duration

	// wake is poked by Submit so an idle loop does not sleep out its backoff.
	wake chan struct{}

	mu       sync.Mutex
	stop     chan struct{}
	loopDone chan struct{}

	inFlight atomic.Int64
}

func NewCooperativePool(opts ...Option) *CooperativePool {
	o := newOptions("cooperative_pool", opts)
	return &CooperativePool{
		queue:   NewTaskQueue(),
		log:     o.log,
		hooks:   o.hooks,
		idleMin: o.idleBackoffMin,
		idleMax: o.idleBackoffMax,
		wake:    make(chan struct{}, 1),
	}
}

func (p *CooperativePool) Submit(t Task) {
	if !p.queue.Enqueue(t) {
		p.log.Debugw("task ignored: nil or already queued")
		return
	}
	p.hooks.submit()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Cancel erases t from the queue. Dispatched jobs cannot be reached.
func (p *CooperativePool) Cancel(t Task) bool {
	removed := p.queue.Erase(t)
	if removed {
		p.hooks.cancel()
	}
	return removed
}

// Run starts the scheduler loop in the background and returns immediately.
func (p *CooperativePool) Run() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		return
	}

	p.stop = make(chan struct{})
	p.loopDone = make(chan struct{})
	go p.loop(p.stop, p.loopDone)
	p.log.Debugw("scheduler started", "queued", p.queue.Len())
}

// Terminate signals the loop, waits for the loop itself to return and
// clears the queue. The cleared tasks are returned.
func (p *CooperativePool) Terminate() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
		<-p.loopDone
		p.stop = nil
		p.loopDone = nil
	}

	dropped := p.queue.Clear()
	p.log.Debugw("scheduler terminated", "dropped", len(dropped), "in_flight", p.InFlight())
	return dropped
}

func (p *CooperativePool) Clear() []Task {
	dropped := p.queue.Clear()
	p.log.Debugw("queue cleared", "dropped", len(dropped))
	return dropped
}

func (p *CooperativePool) Contains(t Task) bool { return p.queue.Contains(t) }

func (p *CooperativePool) IsEmpty() bool { return p.queue.IsEmpty() }

func (p *CooperativePool) Len() int { return p.queue.Len() }

// InFlight is the number of dispatched jobs that have not returned yet.
func (p *CooperativePool) InFlight() int { return int(p.inFlight.Load()) }

func (p *CooperativePool) Stats() Stats {
	p.mu.Lock()
	scheduling := p.stop != nil
	p.mu.Unlock()

	return Stats{
		Model:      ModelCooperative,
		Queued:     p.queue.Len(),
		InFlight:   p.InFlight(),
		Scheduling: scheduling,
	}
}

func (p *CooperativePool) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	idle := backoff.NewExponentialBackOff()
	idle.InitialInterval = p.idleMin
	idle.MaxInterval = p.idleMax
	idle.Reset()

	for {
		select {
		case <-stop:
			return
		default:
		}

		if t, ok := p.queue.Dequeue(); ok {
			idle.Reset()
			p.dispatch(t)
			continue
		}

		runtime.Gosched()
		if !p.queue.IsEmpty() {
			continue
		}

		timer := time.NewTimer(idle.NextBackOff())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-p.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// dispatch runs t on its own goroutine. A panic only ends that job.
func (p *CooperativePool) dispatch(t Task) {
	p.inFlight.Add(1)
	go func() {
		defer p.inFlight.Add(-1)
		if err := run(t, p.hooks); err != nil {
			p.log.Errorw("dispatched task failed", "error", err)
			p.hooks.panicked(err)
		}
	}()
}
