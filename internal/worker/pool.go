// Package worker spreads the root moves of a move-tree count over a fixed
// set of goroutines.
package worker

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chesscore/internal/chess"
)

// ErrStopped marks the result of an item that was skipped because the pool
// had been stopped before a worker reached it.
var ErrStopped = errors.New("worker pool stopped")

// WorkItem is one root move to expand. Board is owned by the item: the
// worker may mutate it freely.
type WorkItem struct {
	Board *chess.Board
	Move  chess.Move
	Depth int
	Index int // position in the caller's move list
}

// ProcessResult is the outcome of expanding a work item.
type ProcessResult struct {
	Move  chess.Move
	Index int
	Nodes uint64
	Error error
}

// ProcessFunc expands one item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool hands work items to a fixed number of goroutines. Every item
// submitted before Close yields exactly one result, so a caller can count
// results against submissions even after Stop. The first item that fails
// stops the pool.
type Pool struct {
	workers int
	buffer  int
	expand  ProcessFunc

	items   chan WorkItem
	results chan ProcessResult

	running   sync.WaitGroup
	stopped   atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of goroutines; values below one are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the item and result queues; values
// below one are ignored.
func WithBufferSize(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.buffer = n
		}
	}
}

// NewPool returns a pool of one worker with queues of ten unless the
// options say otherwise. The workers are not started until Start or Run.
func NewPool(expand ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{workers: 1, buffer: 10, expand: expand}
	for _, opt := range opts {
		opt(p)
	}
	p.items = make(chan WorkItem, p.buffer)
	p.results = make(chan ProcessResult, p.buffer)
	return p
}

// Start launches the workers. Calls after the first do nothing.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.running.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go p.loop()
		}
	})
}

func (p *Pool) loop() {
	defer p.running.Done()
	for item := range p.items {
		p.results <- p.process(item)
	}
}

func (p *Pool) process(item WorkItem) ProcessResult {
	if p.stopped.Load() {
		return ProcessResult{Move: item.Move, Index: item.Index, Error: ErrStopped}
	}
	r := p.expand(item)
	if r.Error != nil {
		p.Stop()
	}
	return r
}

// Submit queues an item, blocking while the item queue is full.
func (p *Pool) Submit(item WorkItem) {
	p.items <- item
}

// Stop makes the workers skip every item they have not begun. Skipped
// items still produce a result, carrying ErrStopped.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission and waits for the workers to drain the queue, then
// closes the results channel. It is safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.items)
		p.running.Wait()
		close(p.results)
	})
}

// Results is the stream of processed items, closed by Close.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Run processes items to completion and returns their results indexed by
// WorkItem.Index.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	p.Start()
	go func() {
		defer p.Close()
		for _, item := range items {
			p.Submit(item)
		}
	}()

	out := make([]ProcessResult, len(items))
	for r := range p.Results() {
		if r.Index >= 0 && r.Index < len(out) {
			out[r.Index] = r
		}
	}
	return out
}
