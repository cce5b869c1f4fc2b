// Package scheduler runs recurring callbacks behind a cancellable handle.
package scheduler

import (
	"fmt"
	"sync"
	"time"
)

// Task is a handle on a scheduled recurring callback
type Task interface {
	// Cancel stops the task. It is safe to call more than once.
	Cancel()
}

// Scheduler schedules recurring callbacks. Every panics when interval is not positive.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

func checkInterval(interval time.Duration) {
	if interval <= 0 {
		panic(fmt.Sprintf("scheduler: non-positive interval %s", interval))
	}
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker
type TickerScheduler struct{}

// NewTickerScheduler creates a scheduler backed by the wall clock
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Every calls fn every interval until the returned task is cancelled
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Task {
	checkInterval(interval)
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(fn func()) {
	defer t.ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// A tick and a cancel can be ready together; cancel wins
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() {
		close(t.done)
	})
}
