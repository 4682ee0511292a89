// Package queue carries dataset events between the services and the
// websocket hub. The backend is picked from the URL scheme.
package queue

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/ports"
)

// New connects to the broker named by url: nats:// selects NATS, amqp:// or
// amqps:// selects RabbitMQ and an empty url keeps events in process.
func New(url string, log *zap.Logger) (ports.MessageQueue, error) {
	switch {
	case url == "":
		return NewMemoryQueue(log), nil
	case strings.HasPrefix(url, "nats://"), strings.HasPrefix(url, "tls://"):
		return NewNATSQueue(url, log)
	case strings.HasPrefix(url, "amqp://"), strings.HasPrefix(url, "amqps://"):
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unsupported queue url %q", url)
	}
}

// Pinger is implemented by queues that can report broker connectivity.
type Pinger interface {
	Ping() error
}
