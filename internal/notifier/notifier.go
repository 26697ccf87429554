package notifier

import (
	"context"
	"errors"
)

var ErrEndpointStatus = errors.New("notification endpoint returned a non-success status")

// Payload is the body accepted by the notification endpoint.
type Payload struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Sender interface {
	SendSubscription(ctx context.Context, payload Payload) error
}
