// Package worker runs verification jobs concurrently over a bounded
// pool.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces.
type Result interface {
	GetError() error
}

// Pool executes jobs on a fixed number of workers. Usage is
// single-shot: Start, Submit everything, then Wait.
type Pool struct {
	workers  int
	jobQueue chan Job
	results  chan Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Close marks submission complete. Call once, after the last Submit.
func (p *Pool) Close() {
	close(p.jobQueue)
}

// Wait drains results until every worker exits and returns them in
// completion order. Drain concurrently with submission (submit from a
// separate goroutine, then Close); draining afterwards can deadlock
// once jobs outnumber the channel buffers.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	p.cancel()
	return results
}
