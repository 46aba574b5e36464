package engine

import (
	"sync"
	"sync/atomic"

	"github.com/vsariola/polyvoice"
)

// EventQueue is a bounded queue of control events with many producers and a
// single consumer. Producers serialize among themselves with a mutex; the
// consumer (the render goroutine) only touches the atomic cursors and never
// blocks.
type EventQueue struct {
	events      []polyvoice.Event
	mask        uint32
	read, write atomic.Uint32
	mu          sync.Mutex
}

// NewEventQueue returns a queue holding at most size events; size must be a
// power of two.
func NewEventQueue(size int) *EventQueue {
	if size <= 0 || size&(size-1) != 0 {
		panic("event queue size must be a power of 2")
	}
	return &EventQueue{
		events: make([]polyvoice.Event, size),
		mask:   uint32(size - 1),
	}
}

// Push appends the event to the queue. If the queue is full, the event is
// dropped and Push returns false.
func (q *EventQueue) Push(e polyvoice.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	write := q.write.Load()
	if write-q.read.Load() == uint32(len(q.events)) {
		return false
	}
	q.events[write&q.mask] = e
	q.write.Store(write + 1)
	return true
}

// Pop removes the oldest event from the queue. Only one goroutine may call
// Pop.
func (q *EventQueue) Pop() (e polyvoice.Event, ok bool) {
	read := q.read.Load()
	if read == q.write.Load() {
		return e, false
	}
	e = q.events[read&q.mask]
	q.events[read&q.mask] = polyvoice.Event{}
	q.read.Store(read + 1)
	return e, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return int(q.write.Load() - q.read.Load())
}

func (q *EventQueue) Cap() int { return len(q.events) }
