package queue

import (
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/ports"
)

// MemoryQueue delivers messages to in-process subscribers. Each message is
// handled on its own goroutine, like a broker callback would be.
type MemoryQueue struct {
	mu       sync.RWMutex
	handlers map[string][]func([]byte) error
	closed   bool
	wg       sync.WaitGroup
	log      *zap.Logger
}

func NewMemoryQueue(log *zap.Logger) ports.MessageQueue {
	log.Info("Using in-process message queue")
	return &MemoryQueue{
		handlers: make(map[string][]func([]byte) error),
		log:      log,
	}
}

func (q *MemoryQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return nil
	}

	for _, h := range q.handlers[subject] {
		msg := append([]byte(nil), data...)
		q.wg.Add(1)
		go func(h func([]byte) error) {
			defer q.wg.Done()
			if err := h(msg); err != nil {
				q.log.Error("Error processing message", zap.String("subject", subject), zap.Error(err))
			}
		}(h)
	}
	return nil
}

func (q *MemoryQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[subject] = append(q.handlers[subject], handler)
	return nil
}

// Close stops accepting messages and waits for in-flight handlers.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wg.Wait()
	return nil
}
