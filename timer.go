package sprig

import (
	"container/heap"
	"sync"
	"time"
)

// Clock supplies the current time to a Scheduler.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. A Display built with
// a ManualClock runs its timers from Scheduler.Advance instead of a
// goroutine, which makes tap-hold, double-tap and auto-hide deterministic in
// tests and headless replays.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualClock) set(t time.Time) {
	m.mu.Lock()
	if t.After(m.now) {
		m.now = t
	}
	m.mu.Unlock()
}

// Task is a scheduled callback.
type Task struct {
	when     time.Time
	interval time.Duration // > 0 for repeating tasks
	fn       func()
	index    int // heap index, -1 when not queued
	sched    *Scheduler
}

// Cancel stops the task. It reports whether the task was still pending.
// Cancelling from inside the task's own callback stops a repeating task.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	t.interval = 0
	if t.index < 0 {
		return false
	}
	heap.Remove(&s.queue, t.index)
	return true
}

type taskQueue []*Task

func (q taskQueue) Len() int           { return len(q) }
func (q taskQueue) Less(i, j int) bool { return q[i].when.Before(q[j].when) }
func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs delayed and periodic callbacks for a Display. Callbacks are
// serialized with input dispatch through the display's dispatch lock, so a
// timer never races a touch handler.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	queue taskQueue
	post  func(func())

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// newScheduler creates a scheduler. With a real clock it starts a goroutine
// that fires due tasks; with a ManualClock tasks fire only from Advance.
// post wraps each callback invocation.
func newScheduler(clock Clock, post func(func())) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	s := &Scheduler{
		clock: clock,
		post:  post,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	if _, manual := clock.(*ManualClock); !manual {
		go s.loop()
	}
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// After schedules fn to run once after d.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every d until the task is cancelled. Panics if d
// is not positive.
func (s *Scheduler) Every(d time.Duration, fn func()) *Task {
	if d <= 0 {
		panic("sprig: non-positive interval")
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, interval time.Duration, fn func()) *Task {
	if fn == nil {
		panic("sprig: nil task func")
	}
	t := &Task{when: s.clock.Now().Add(d), interval: interval, fn: fn, index: -1, sched: s}
	s.mu.Lock()
	heap.Push(&s.queue, t)
	first := s.queue[0] == t
	s.mu.Unlock()
	if first {
		s.poke()
	}
	return t
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Advance moves a ManualClock forward by d, running every task that falls
// due in deadline order with the clock set to that task's deadline. Panics
// when the scheduler runs on a real clock.
func (s *Scheduler) Advance(d time.Duration) {
	mc, ok := s.clock.(*ManualClock)
	if !ok {
		panic("sprig: Advance requires a ManualClock")
	}
	target := mc.Now().Add(d)
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		mc.set(t.when)
		s.run(t)
	}
	mc.set(target)
}

// popDue removes and returns the earliest task due at or before limit.
func (s *Scheduler) popDue(limit time.Time) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 || s.queue[0].when.After(limit) {
		return nil
	}
	return heap.Pop(&s.queue).(*Task)
}

func (s *Scheduler) run(t *Task) {
	s.post(t.fn)
	s.mu.Lock()
	if t.interval > 0 && t.index < 0 {
		t.when = t.when.Add(t.interval)
		heap.Push(&s.queue, t)
	}
	s.mu.Unlock()
}

func (s *Scheduler) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		s.mu.Lock()
		wait := time.Hour
		if len(s.queue) > 0 {
			wait = max(s.queue[0].when.Sub(s.clock.Now()), 0)
		}
		s.mu.Unlock()
		timer.Reset(wait)

		select {
		case <-s.done:
			return
		case <-s.wake:
			continue
		case <-timer.C:
		}
		now := s.clock.Now()
		for {
			t := s.popDue(now)
			if t == nil {
				break
			}
			s.run(t)
		}
	}
}

// Close stops the scheduler goroutine and drops all pending tasks.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		for _, t := range s.queue {
			t.index = -1
		}
		s.queue = nil
		s.mu.Unlock()
	})
}
