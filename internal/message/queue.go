package message

import "sync"

// Sender is the producer side of the queue.
type Sender interface {
	Send(Message)
}

// Queue is an unbounded multi-producer, single-consumer FIFO.
// Send never blocks; sends after Close are discarded.
type Queue struct {
	mu     sync.Mutex
	items  []Message
	closed bool
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Send(m Message) {
	if m == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, m)
}

// Drain removes and returns everything queued, oldest first.
// It returns nil when nothing is pending.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Close stops accepting messages and drops anything still pending.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}
