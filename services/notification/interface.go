package notification

import "context"

// Messenger is the fire-and-forget message delivery collaborator. There is no
// delivery guarantee and no ordering across recipients; callers treat a send
// failure like any other swallowed best-effort failure.
type Messenger interface {
	Send(ctx context.Context, to, message string) error
}
