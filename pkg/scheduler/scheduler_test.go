package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerSchedulerRunsUntilCancelled(t *testing.T) {
	var calls atomic.Int64
	task := NewTickerScheduler().Every(2*time.Millisecond, func() {
		calls.Add(1)
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	task.Cancel()
	task.Cancel()
	// allow an in-flight callback to finish
	time.Sleep(10 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, stopped, calls.Load())
}

func TestManualSchedulerFiresOnInterval(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	sched.Every(100*time.Millisecond, func() { calls++ })

	sched.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, calls)

	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	sched.Advance(5 * time.Second)
	assert.Equal(t, 51, calls)
	assert.Equal(t, 5100*time.Millisecond, sched.Now())
}

func TestManualSchedulerCancel(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	task := sched.Every(time.Second, func() { calls++ })
	assert.Equal(t, 1, sched.Live())

	sched.Advance(time.Second)
	task.Cancel()
	task.Cancel()
	sched.Advance(time.Minute)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, sched.Live())
}

func TestManualSchedulerOrdersByDeadline(t *testing.T) {
	sched := NewManualScheduler()
	var order []string
	sched.Every(300*time.Millisecond, func() { order = append(order, "slow") })
	sched.Every(200*time.Millisecond, func() { order = append(order, "fast") })

	sched.Advance(600 * time.Millisecond)

	assert.Equal(t, []string{"fast", "slow", "fast", "slow", "fast"}, order)
}

func TestManualSchedulerCallbackCanReschedule(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	var task Task
	var schedule func()
	schedule = func() {
		task = sched.Every(time.Second, func() {
			calls++
			task.Cancel()
			schedule()
		})
	}
	schedule()

	sched.Advance(3 * time.Second)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, sched.Live())
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	schedulers := map[string]Scheduler{
		"ticker": NewTickerScheduler(),
		"manual": NewManualScheduler(),
	}

	for name, sched := range schedulers {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, func() { sched.Every(0, func() {}) })
			assert.Panics(t, func() { sched.Every(-time.Millisecond, func() {}) })
		})
	}
}
