package ports

import (
	"context"
	"time"
)

// Cache is a string key/value store with expiry. Get reports a miss as an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// MessageQueue is a fire-and-forget pub/sub bus.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// GenerateOptions tunes a single LLM call.
type GenerateOptions struct {
	JSON              bool
	Temperature       float32
	SystemInstruction string
}

// TextGenerator sends a prompt to a large language model and returns its text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Notifier pushes a payload to every live connection of a user.
type Notifier interface {
	SendToUser(userID string, payload interface{})
}
