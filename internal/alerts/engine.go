// Package alerts surfaces due care tasks as in-process events. It keeps a
// min-heap of pending alerts and emits each one on a channel when its due
// time arrives; delivering them beyond the running program is the
// consumer's business.
package alerts

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidDueTime = errors.New("alerts: invalid due time")

type TaskAlert struct {
	TaskID string
	PetID  string
	Title  string
	DueAt  time.Time
}

type queueItem struct {
	alert TaskAlert
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

// Less orders by due time, then pet, then task, so twice-daily doses
// landing on the same instant always emit in the same order.
func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i].alert, pq[j].alert
	if !a.DueAt.Equal(b.DueAt) {
		return a.DueAt.Before(b.DueAt)
	}
	if a.PetID != b.PetID {
		return a.PetID < b.PetID
	}
	return a.TaskID < b.TaskID
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan TaskAlert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan TaskAlert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan TaskAlert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues an alert for emission at its due time. A task has at
// most one pending alert: scheduling a TaskID that is already queued
// re-arms it at the new due time instead of duplicating it, so completing
// a dose early moves its follow-up alert rather than stacking a second
// one.
func (e *Engine) Schedule(alert TaskAlert) error {
	if alert.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("alerts: engine stopped")
	}

	for i := range e.queue {
		if e.queue[i].alert.TaskID == alert.TaskID {
			e.queue[i].alert = alert
			heap.Fix(&e.queue, i)
			e.signalWakeup()
			return nil
		}
	}
	heap.Push(&e.queue, queueItem{alert: alert})
	e.signalWakeup()
	return nil
}

// Dropped reports how many alerts a slow consumer has lost.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, alert := range due {
				select {
				case e.out <- alert:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
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

func (e *Engine) peek() (TaskAlert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return TaskAlert{}, false
	}
	return e.queue[0].alert, true
}

func (e *Engine) popDue(now time.Time) []TaskAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]TaskAlert, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alert
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alert)
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
