// Package pipeline runs heavy raster work off the caller's main loop
// through an explicit queue owned by the caller. There is no package
// state: every queue, correlation id and result channel is handed out
// explicitly, so task lifecycle stays visible at the call site.
package pipeline

import (
	"context"
	"errors"
	"sync"
)

// OffloadThreshold is the pixel count above which raster operations are
// worth dispatching off the interactive path.
const OffloadThreshold = 100_000

// Offload reports whether a w×h raster clears the threshold.
func Offload(w, h int) bool {
	return w*h > OffloadThreshold
}

// Task computes a value. Tasks must be self-contained: they own their
// inputs and outputs and never share buffers with the submitter. A task
// runs to completion once started; cancellation only prevents a queued
// task from starting.
type Task func() (any, error)

// Result pairs a finished task's output with its correlation id.
type Result struct {
	ID    uint64
	Value any
	Err   error
}

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("pipeline: queue closed")

type pending struct {
	id   uint64
	ctx  context.Context
	task Task
	out  chan Result
}

// Queue executes tasks one at a time in submission order on a single
// worker goroutine. Operations racing on shared output must be submitted
// to the same queue; independent inputs may use independent queues.
type Queue struct {
	mu         sync.Mutex
	nextID     uint64
	work       chan pending
	done       chan struct{}
	closed     bool
	submitters sync.WaitGroup
}

func NewQueue(depth int) *Queue {
	q := &Queue{
		work: make(chan pending, max(depth, 1)),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for p := range q.work {
		if p.ctx.Err() != nil {
			p.out <- Result{ID: p.id, Err: p.ctx.Err()}
			continue
		}
		v, err := p.task()
		p.out <- Result{ID: p.id, Value: v, Err: err}
	}
}

// Submit enqueues a task and returns its correlation id and a buffered
// channel that will carry exactly one Result. The send never blocks the
// worker, so callers may drop the channel to discard an unwanted result.
func (q *Queue) Submit(ctx context.Context, task Task) (uint64, <-chan Result, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0, nil, ErrClosed
	}
	q.submitters.Add(1)
	q.nextID++
	id := q.nextID
	q.mu.Unlock()
	defer q.submitters.Done()

	// The send happens outside the lock: a full buffer must never block
	// Close, only delay it until the worker drains. Close waits for
	// in-flight submitters before closing q.work, so this send cannot
	// race the close.
	out := make(chan Result, 1)
	select {
	case q.work <- pending{id: id, ctx: ctx, task: task, out: out}:
		return id, out, nil
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	}
}

// Close stops accepting work and waits for queued tasks to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.mu.Unlock()
	// No new submitter can register past the closed flag; once the
	// in-flight ones finish their sends the channel is ours to close.
	q.submitters.Wait()
	close(q.work)
	<-q.done
}
