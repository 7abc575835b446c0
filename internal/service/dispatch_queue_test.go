package service

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchQueue_RunsAllJobs(t *testing.T) {
	q := NewDispatchQueue(4, 16)
	var done int64
	for i := 0; i < 50; i++ {
		q.Submit(func() { atomic.AddInt64(&done, 1) })
	}
	q.Stop()
	assert.EqualValues(t, 50, atomic.LoadInt64(&done))
}

func TestDispatchQueue_RecoversFromPanic(t *testing.T) {
	q := NewDispatchQueue(1, 4)
	var done int64
	q.Submit(func() { panic("boom") })
	q.Submit(func() { atomic.AddInt64(&done, 1) })
	q.Stop()
	assert.EqualValues(t, 1, atomic.LoadInt64(&done), "a panicking job must not take the worker down")
}

func TestDispatchQueue_SubmitAfterStopIsDropped(t *testing.T) {
	q := NewDispatchQueue(1, 4)
	q.Stop()
	var done int64
	q.Submit(func() { atomic.AddInt64(&done, 1) })
	assert.Zero(t, atomic.LoadInt64(&done))
}
