package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOnZeroSize(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-1) })
}

func TestExecuteJoin(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter int64
	for i := 0; i < 100; i++ {
		p.Execute(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	p.Join()

	if got := atomic.LoadInt64(&counter); got != 100 {
		t.Fatalf("counter = %d, want 100", got)
	}
}

func TestJoinRepeatable(t *testing.T) {
	p := New(2)
	defer p.Close()

	var counter int64
	for round := 0; round < 3; round++ {
		for i := 0; i < 10; i++ {
			p.Execute(func() { atomic.AddInt64(&counter, 1) })
		}
		p.Join()
		if got := atomic.LoadInt64(&counter); got != int64((round+1)*10) {
			t.Fatalf("round %d: counter = %d, want %d", round, got, (round+1)*10)
		}
	}
}

func TestClosePropagatesPanic(t *testing.T) {
	p := New(1)

	p.Execute(func() { panic("boom") })
	p.Join()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Close should re-panic after a job panicked")
		}
		if r != "boom" {
			t.Fatalf("recovered %v, want boom", r)
		}
	}()
	_ = p.Close()
}

func TestJoinDoesNotDeadlockOnPanic(t *testing.T) {
	p := New(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Execute(func() { panic("boom") })
		p.Join()
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Join deadlocked after a job panicked")
	}

	func() {
		defer func() { recover() }()
		_ = p.Close()
	}()
}

func TestPoolDrainsOnClose(t *testing.T) {
	p := New(8)

	var wg sync.WaitGroup
	var ran int64
	const jobs = 500
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		p.Execute(func() {
			atomic.AddInt64(&ran, 1)
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("not all jobs submitted before Close ran to completion")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if got := atomic.LoadInt64(&ran); got != jobs {
		t.Fatalf("ran = %d jobs, want %d", got, jobs)
	}
}
