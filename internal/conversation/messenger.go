package conversation

import "context"

// ReplyMessenger delivers outbound replies to the sender's messaging
// platform. Implementations live in the messaging package.
type ReplyMessenger interface {
	SendText(ctx context.Context, to, body string) error
}
