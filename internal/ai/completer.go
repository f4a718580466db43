package ai

import "context"

// FallbackReply is what the user sees when the completion provider fails.
const FallbackReply = "Sorry, I didn't quite get that. You can say \"appointment\" to book a meeting with me."

// Completer produces a free-form reply for messages the booking flow does
// not recognise.
type Completer interface {
	Complete(ctx context.Context, userText string) (string, error)
}
