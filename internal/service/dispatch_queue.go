package service

import (
	"log"
	"sync"
)

// DispatchQueue is a bounded in-process worker pool for delivery jobs.
// Submitted work runs after the triggering request has returned; there is no
// completion signal back to the caller.
type DispatchQueue struct {
	jobs chan func()
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatchQueue(workers, buffer int) *DispatchQueue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 1
	}
	q := &DispatchQueue{jobs: make(chan func(), buffer)}
	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

func (q *DispatchQueue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.run(job)
	}
}

func (q *DispatchQueue) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[DISPATCH] recovered from panic in delivery job: %v", r)
		}
	}()
	job()
}

// Submit queues a job. Blocks when the buffer is full so producers cannot
// outrun the workers unbounded. Jobs submitted after Stop are dropped.
func (q *DispatchQueue) Submit(job func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		log.Printf("[DISPATCH] queue stopped, dropping job")
		return
	}
	q.jobs <- job
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (q *DispatchQueue) Stop() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
