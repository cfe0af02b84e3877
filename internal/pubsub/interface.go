package pubsub

// PubSubClient publishes msgpack-encoded events and decodes pushed payloads.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
