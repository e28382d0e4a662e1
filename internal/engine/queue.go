package engine

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Queue methods after Close.
var ErrQueueClosed = errors.New("engine queue closed")

// #region queue
// Queue serializes access to an Engine. One goroutine owns the engine and
// applies submitted work in arrival order, so counters stay consistent when
// several transports feed the same session.
type Queue struct {
	engine *Engine
	jobs   chan func(*Engine)
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts the worker goroutine. buffer bounds pending submissions.
func NewQueue(e *Engine, buffer int) *Queue {
	if buffer < 0 {
		buffer = 0
	}
	q := &Queue{
		engine: e,
		jobs:   make(chan func(*Engine), buffer),
		done:   make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for job := range q.jobs {
		job(q.engine)
	}
}

// Do runs fn on the worker goroutine and waits for it. ctx only bounds the
// wait for a free slot; once the job is accepted it runs to completion and
// Do reports its outcome.
func (q *Queue) Do(ctx context.Context, fn func(*Engine)) error {
	finished := make(chan struct{})
	job := func(e *Engine) {
		defer close(finished)
		fn(e)
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		q.mu.RUnlock()
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}

	<-finished
	return nil
}

// Submit executes one input.
func (q *Queue) Submit(ctx context.Context, input string) (Response, error) {
	var resp Response
	if err := q.Do(ctx, func(e *Engine) { resp = e.Execute(input) }); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Converse routes a question through the worker.
func (q *Queue) Converse(ctx context.Context, question string, r Responder) (Response, error) {
	var resp Response
	if err := q.Do(ctx, func(e *Engine) { resp = e.Converse(ctx, question, r) }); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Snapshot returns a copy of the session state.
func (q *Queue) Snapshot(ctx context.Context) (State, error) {
	var st State
	if err := q.Do(ctx, func(e *Engine) { st = e.Snapshot() }); err != nil {
		return State{}, err
	}
	return st, nil
}

// Close stops accepting work, runs what is already queued and waits for the
// worker to exit. Calling Close twice is safe.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	<-q.done
}
// #endregion queue
