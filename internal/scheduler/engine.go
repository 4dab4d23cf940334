// Package scheduler delivers time-based alerts (task due dates, day rollover)
// on a channel. It never touches assistant state; the consumer decides what
// an alert means when it arrives.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidAt = errors.New("scheduler: alert time is required")
	ErrStopped   = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	KindDue      Kind = "due"
	KindRollover Kind = "rollover"
)

type Alert struct {
	ID     string
	TaskID string
	Kind   Kind
	At     time.Time
}

type alertHeap []Alert

func (h alertHeap) Len() int           { return len(h) }
func (h alertHeap) Less(i, j int) bool { return h[i].At.Before(h[j].At) }
func (h alertHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *alertHeap) Push(x any)        { *h = append(*h, x.(Alert)) }

func (h *alertHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Engine holds pending alerts ordered by time. Alerts scheduled under an id
// that is already pending replace the earlier one.
type Engine struct {
	mu      sync.Mutex
	pending alertHeap
	now     func() time.Time
	out     chan Alert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int, now func() time.Time) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		now:    now,
		out:    make(chan Alert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C is closed after Stop returns.
func (e *Engine) C() <-chan Alert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.pending)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(a Alert) error {
	if a.At.IsZero() {
		return ErrInvalidAt
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if a.ID != "" {
		e.removeLocked(func(p Alert) bool { return p.ID == a.ID })
	}
	heap.Push(&e.pending, a)
	e.signalWakeup()
	return nil
}

// CancelTask drops every pending alert for taskID and reports how many.
func (e *Engine) CancelTask(taskID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.removeLocked(func(p Alert) bool { return p.TaskID == taskID })
	if n > 0 {
		e.signalWakeup()
	}
	return n
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Dropped counts alerts discarded because the consumer was not keeping up.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) removeLocked(match func(Alert) bool) int {
	kept := e.pending[:0]
	removed := 0
	for _, p := range e.pending {
		if match(p) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	e.pending = kept
	heap.Init(&e.pending)
	return removed
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.At.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, a := range e.popDue(e.now()) {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return Alert{}, false
	}
	return e.pending[0], true
}

func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Alert
	for len(e.pending) > 0 && !e.pending[0].At.After(now) {
		out = append(out, heap.Pop(&e.pending).(Alert))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
