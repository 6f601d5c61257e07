package events

import "context"

type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type PublishResult struct {
	Partition int32
	Offset    int64
}

// Publisher 领域事件对外投递。Kafka 未启用时注入 NoopPublisher
type Publisher interface {
	Publish(ctx context.Context, msg Message) (PublishResult, error)
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(_ context.Context, _ Message) (PublishResult, error) {
	return PublishResult{}, nil
}

func (noopPublisher) Close() error { return nil }
