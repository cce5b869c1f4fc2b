package scheduler

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler driven by an explicit clock. Time only
// moves when Advance is called, which makes tick sequences reproducible.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s        *ManualScheduler
	seq      int
	interval time.Duration
	next     time.Duration
	fn       func()
}

// NewManualScheduler creates a scheduler whose clock starts at zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn to run each time the clock passes another interval
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	checkInterval(interval)
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{
		s:        m,
		seq:      m.seq,
		interval: interval,
		next:     m.now + interval,
		fn:       fn,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls due
// in deadline order. Callbacks run without the scheduler lock held, so they
// may schedule or cancel tasks.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		t := m.nextDueLocked(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.interval
		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// Now returns the elapsed time on the manual clock
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Live returns the number of tasks that have not been cancelled
func (m *ManualScheduler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *ManualScheduler) nextDueLocked(target time.Duration) *manualTask {
	var due *manualTask
	for _, t := range m.tasks {
		if t.next > target {
			continue
		}
		if due == nil || t.next < due.next || (t.next == due.next && t.seq < due.seq) {
			due = t
		}
	}
	return due
}

func (t *manualTask) Cancel() {
	m := t.s
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}
