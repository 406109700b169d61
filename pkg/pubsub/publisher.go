package pubsub

import "context"

// Pack is one published message: a partition key and an opaque payload.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
	Stop(ctx context.Context) error
}
