// Package notify delivers notifications off the request path. Delivery is
// best effort and at most once: failures are logged and never retried.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Message is one notification. A nil Recipients list is a broadcast to
// every user.
type Message struct {
	Recipients []string `json:"recipients,omitempty"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Type       string   `json:"type"`
	RelatedID  string   `json:"relatedId,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Queue hands messages to a fixed pool of workers through a bounded buffer.
type Queue struct {
	sender  Sender
	log     *logrus.Entry
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	ch     chan Message
	wg     sync.WaitGroup
}

func NewQueue(sender Sender, workers, size int, log *logrus.Entry) *Queue {
	q := &Queue{
		sender:  sender,
		log:     log.WithField("component", "notify"),
		timeout: 10 * time.Second,
		ch:      make(chan Message, size),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

// Enqueue schedules m without blocking. It reports false when the message
// was dropped because the buffer is full or the queue is closed.
func (q *Queue) Enqueue(m Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.log.WithField("title", m.Title).Warn("notification dropped, queue closed")
		return false
	}
	select {
	case q.ch <- m:
		return true
	default:
		q.log.WithField("title", m.Title).Warn("notification dropped, queue full")
		return false
	}
}

// Close stops accepting messages and waits until the buffered ones are sent.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()
	for m := range q.ch {
		q.deliver(m)
	}
}

func (q *Queue) deliver(m Message) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	log := q.log.WithFields(logrus.Fields{"title": m.Title, "type": m.Type, "recipients": len(m.Recipients)})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("notification sender panicked")
		}
	}()
	if err := q.sender.Send(ctx, m); err != nil {
		log.WithError(err).Error("notification delivery failed")
		return
	}
	log.Debug("notification delivered")
}
